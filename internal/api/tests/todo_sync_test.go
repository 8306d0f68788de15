package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tberezin/lifehub-server/internal/api/testutils"
	"github.com/tberezin/lifehub-server/internal/models"
)

func createTodo(t *testing.T, testCtx *testutils.TestContext, token string, req models.CreateTodoRequest) models.Todo {
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/todos",
		req,
		testutils.AuthHeaders(token),
	)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp models.TodoResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Todo)
	return *resp.Todo
}

func listTodos(t *testing.T, testCtx *testutils.TestContext, token string) []models.Todo {
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/todos",
		nil,
		testutils.AuthHeaders(token),
	)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.TodoListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Todos
}

func TestCreateTodoWithSync(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	todo := createTodo(t, testCtx, testCtx.TestUserJWT, models.CreateTodoRequest{
		Text:  "Buy milk",
		Date:  "2024-01-10",
		Sync:  true,
		Color: "purple",
	})

	require.NotNil(t, todo.SyncedEventID)

	// Exactly one new event exists, titled with the prefix, and the todo
	// references it
	events := listEvents(t, testCtx, testCtx.TestUserJWT)
	require.Len(t, events, 1)
	assert.Equal(t, "[Todo] Buy milk", events[0].Title)
	assert.Equal(t, "2024-01-10", events[0].Date)
	assert.Equal(t, "purple", events[0].Color)
	assert.Equal(t, events[0].ID, *todo.SyncedEventID)
}

func TestCreateTodoWithoutSync(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	todo := createTodo(t, testCtx, testCtx.TestUserJWT, models.CreateTodoRequest{
		Text: "Water plants",
		Date: "2024-01-11",
	})

	assert.Nil(t, todo.SyncedEventID)
	assert.Empty(t, listEvents(t, testCtx, testCtx.TestUserJWT))
}

func TestLateSync(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	todo := createTodo(t, testCtx, testCtx.TestUserJWT, models.CreateTodoRequest{
		Text: "Call dentist",
		Date: "2024-01-12",
	})

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		fmt.Sprintf("/api/todos/%s/sync", todo.ID),
		models.SyncTodoRequest{Color: "red"},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	var synced models.TodoResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &synced))
	require.NotNil(t, synced.Todo.SyncedEventID)

	events := listEvents(t, testCtx, testCtx.TestUserJWT)
	require.Len(t, events, 1)
	assert.Equal(t, "[Todo] Call dentist", events[0].Title)
	assert.Equal(t, "red", events[0].Color)

	// Second sync fails and does not create a second event
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		fmt.Sprintf("/api/todos/%s/sync", todo.ID),
		models.SyncTodoRequest{Color: "blue"},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Len(t, listEvents(t, testCtx, testCtx.TestUserJWT), 1)
}

func TestTogglePropagation(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	todo := createTodo(t, testCtx, testCtx.TestUserJWT, models.CreateTodoRequest{
		Text: "Buy milk",
		Date: "2024-01-10",
		Sync: true,
	})

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		fmt.Sprintf("/api/todos/%s/toggle", todo.ID),
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	todos := listTodos(t, testCtx, testCtx.TestUserJWT)
	require.Len(t, todos, 1)
	assert.True(t, todos[0].IsCompleted)

	events := listEvents(t, testCtx, testCtx.TestUserJWT)
	require.Len(t, events, 1)
	assert.True(t, events[0].IsCompleted)

	// Toggling back clears both sides
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		fmt.Sprintf("/api/todos/%s/toggle", todo.ID),
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	events = listEvents(t, testCtx, testCtx.TestUserJWT)
	require.Len(t, events, 1)
	assert.False(t, events[0].IsCompleted)
}

func TestRenamePropagation(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	todo := createTodo(t, testCtx, testCtx.TestUserJWT, models.CreateTodoRequest{
		Text: "Buy milk",
		Date: "2024-01-10",
		Sync: true,
	})

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPut,
		fmt.Sprintf("/api/todos/%s", todo.ID),
		models.UpdateTodoRequest{Text: "Buy oat milk"},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	events := listEvents(t, testCtx, testCtx.TestUserJWT)
	require.Len(t, events, 1)
	assert.Equal(t, "[Todo] Buy oat milk", events[0].Title)
}

func TestEventEditsDoNotPropagateBack(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	todo := createTodo(t, testCtx, testCtx.TestUserJWT, models.CreateTodoRequest{
		Text: "Buy milk",
		Date: "2024-01-10",
		Sync: true,
	})

	// Completing the mirrored event leaves the todo untouched
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		fmt.Sprintf("/api/events/%s/toggle", *todo.SyncedEventID),
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	todos := listTodos(t, testCtx, testCtx.TestUserJWT)
	require.Len(t, todos, 1)
	assert.False(t, todos[0].IsCompleted)
}

func TestUnlinkTodo(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	todo := createTodo(t, testCtx, testCtx.TestUserJWT, models.CreateTodoRequest{
		Text: "Buy milk",
		Date: "2024-01-10",
		Sync: true,
	})

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		fmt.Sprintf("/api/todos/%s/unlink", todo.ID),
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	// The event is gone and the todo survives, unsynced
	assert.Empty(t, listEvents(t, testCtx, testCtx.TestUserJWT))
	todos := listTodos(t, testCtx, testCtx.TestUserJWT)
	require.Len(t, todos, 1)
	assert.Nil(t, todos[0].SyncedEventID)

	// Unlinking an unsynced todo fails
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		fmt.Sprintf("/api/todos/%s/unlink", todo.ID),
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCascadeDeleteBothDirections(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	// Deleting the todo removes the linked event
	todo := createTodo(t, testCtx, testCtx.TestUserJWT, models.CreateTodoRequest{
		Text: "First",
		Date: "2024-01-10",
		Sync: true,
	})

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodDelete,
		fmt.Sprintf("/api/todos/%s", todo.ID),
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, listTodos(t, testCtx, testCtx.TestUserJWT))
	assert.Empty(t, listEvents(t, testCtx, testCtx.TestUserJWT))

	// Deleting the event removes the linked todo
	todo = createTodo(t, testCtx, testCtx.TestUserJWT, models.CreateTodoRequest{
		Text: "Second",
		Date: "2024-01-11",
		Sync: true,
	})

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodDelete,
		fmt.Sprintf("/api/events/%s", *todo.SyncedEventID),
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, listTodos(t, testCtx, testCtx.TestUserJWT))
	assert.Empty(t, listEvents(t, testCtx, testCtx.TestUserJWT))
}

func TestTodoOwnership(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	todo := createTodo(t, testCtx, testCtx.TestUserJWT, models.CreateTodoRequest{
		Text: "Mine",
		Date: "2024-01-10",
	})

	_, otherToken := testutils.CreateTestUser(t, testCtx.Repository, "intruder@example.com", "Intruder")

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodDelete,
		fmt.Sprintf("/api/todos/%s", todo.ID),
		nil,
		testutils.AuthHeaders(otherToken),
	)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The record persists
	assert.Len(t, listTodos(t, testCtx, testCtx.TestUserJWT), 1)
}
