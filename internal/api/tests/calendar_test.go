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

func createEvent(t *testing.T, testCtx *testutils.TestContext, token string, req models.CreateEventRequest) models.Event {
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/events",
		req,
		testutils.AuthHeaders(token),
	)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp models.EventResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Event)
	return *resp.Event
}

func listEvents(t *testing.T, testCtx *testutils.TestContext, token string) []models.Event {
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/events",
		nil,
		testutils.AuthHeaders(token),
	)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.EventListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Events
}

func TestEventLifecycle(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	event := createEvent(t, testCtx, testCtx.TestUserJWT, models.CreateEventRequest{
		Title: "Standup",
		Date:  "2024-01-10",
	})
	assert.Equal(t, "blue", event.Color) // default color
	assert.Equal(t, testCtx.TestUserID, event.OwnerID)

	// list returns exactly the one event
	events := listEvents(t, testCtx, testCtx.TestUserJWT)
	require.Len(t, events, 1)
	assert.Equal(t, "Standup", events[0].Title)
	assert.Equal(t, "2024-01-10", events[0].Date)

	// update
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPut,
		fmt.Sprintf("/api/events/%s", event.ID),
		models.UpdateEventRequest{Title: "Daily standup", Date: "2024-01-11", Color: "green"},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	events = listEvents(t, testCtx, testCtx.TestUserJWT)
	require.Len(t, events, 1)
	assert.Equal(t, "Daily standup", events[0].Title)
	assert.Equal(t, "green", events[0].Color)

	// toggle completion
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		fmt.Sprintf("/api/events/%s/toggle", event.ID),
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	var toggled models.EventResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &toggled))
	assert.True(t, toggled.Event.IsCompleted)

	// delete
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodDelete,
		fmt.Sprintf("/api/events/%s", event.ID),
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Empty(t, listEvents(t, testCtx, testCtx.TestUserJWT))
}

func TestEventValidation(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	// Missing date
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/events",
		models.CreateEventRequest{Title: "No date"},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown color
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/events",
		models.CreateEventRequest{Title: "Bad color", Date: "2024-01-10", Color: "magenta"},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEventOwnership(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	event := createEvent(t, testCtx, testCtx.TestUserJWT, models.CreateEventRequest{
		Title: "Private",
		Date:  "2024-02-01",
	})

	_, otherToken := testutils.CreateTestUser(t, testCtx.Repository, "other@example.com", "Other User")

	// Another user cannot see, update, or delete it
	assert.Empty(t, listEvents(t, testCtx, otherToken))

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPut,
		fmt.Sprintf("/api/events/%s", event.ID),
		models.UpdateEventRequest{Title: "Hijacked", Date: "2024-02-01"},
		testutils.AuthHeaders(otherToken),
	)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodDelete,
		fmt.Sprintf("/api/events/%s", event.ID),
		nil,
		testutils.AuthHeaders(otherToken),
	)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The record persists untouched
	events := listEvents(t, testCtx, testCtx.TestUserJWT)
	require.Len(t, events, 1)
	assert.Equal(t, "Private", events[0].Title)

	// Unknown id is a 404, not a 403
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodDelete,
		"/api/events/no-such-id",
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEventSharing(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	friendID, friendToken := testutils.CreateTestUser(t, testCtx.Repository, "friend@example.com", "Friend")

	event := createEvent(t, testCtx, testCtx.TestUserJWT, models.CreateEventRequest{
		Title: "Party",
		Date:  "2024-03-01",
		Color: "orange",
	})

	// Sharing with a non-friend is rejected
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		fmt.Sprintf("/api/events/%s/share", event.ID),
		models.ShareRequest{UserID: friendID},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Establish the friendship
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/friends/requests",
		models.SendFriendRequestRequest{Email: "friend@example.com"},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	require.Equal(t, http.StatusOK, w.Code)

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		fmt.Sprintf("/api/friends/requests/%s/accept", testCtx.TestUserID),
		nil,
		testutils.AuthHeaders(friendToken),
	)
	require.Equal(t, http.StatusOK, w.Code)

	// Now sharing succeeds and the friend sees the event
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		fmt.Sprintf("/api/events/%s/share", event.ID),
		models.ShareRequest{UserID: friendID},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	shared := listEvents(t, testCtx, friendToken)
	require.Len(t, shared, 1)
	assert.Equal(t, "Party", shared[0].Title)
	assert.Equal(t, testCtx.TestUserID, shared[0].OwnerID)

	// But a shared event is still not writable by the friend
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodDelete,
		fmt.Sprintf("/api/events/%s", event.ID),
		nil,
		testutils.AuthHeaders(friendToken),
	)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
