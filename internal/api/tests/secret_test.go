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

func createSecretItem(t *testing.T, testCtx *testutils.TestContext, token string, req models.CreateSecretItemRequest) models.SecretItem {
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/secret/items",
		req,
		testutils.AuthHeaders(token),
	)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp models.SecretItemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Item)
	return *resp.Item
}

func listSecretItems(t *testing.T, testCtx *testutils.TestContext, token string) []models.SecretItem {
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/secret/items",
		nil,
		testutils.AuthHeaders(token),
	)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.SecretItemListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Items
}

func TestSecretItemCreateAndRename(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	folder := createSecretItem(t, testCtx, testCtx.TestUserJWT, models.CreateSecretItemRequest{
		Type: "folder", Name: "Journal",
	})
	assert.Nil(t, folder.ParentID)

	note := createSecretItem(t, testCtx, testCtx.TestUserJWT, models.CreateSecretItemRequest{
		Type: "note", Name: "Entry 1", ParentID: &folder.ID,
	})
	require.NotNil(t, note.ParentID)
	assert.Equal(t, folder.ID, *note.ParentID)

	// Rename
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPut,
		fmt.Sprintf("/api/secret/items/%s", note.ID),
		models.RenameSecretItemRequest{Name: "January entry"},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	// Note content
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPut,
		fmt.Sprintf("/api/secret/items/%s/content", note.ID),
		models.UpdateNoteContentRequest{Content: "Dear diary"},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.SecretItemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Dear diary", updated.Item.Content)

	// Folders have no content
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPut,
		fmt.Sprintf("/api/secret/items/%s/content", folder.ID),
		models.UpdateNoteContentRequest{Content: "nope"},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSecretItemParentValidation(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	note := createSecretItem(t, testCtx, testCtx.TestUserJWT, models.CreateSecretItemRequest{
		Type: "note", Name: "Loose note",
	})

	// A note cannot be a parent
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/secret/items",
		models.CreateSecretItemRequest{Type: "note", Name: "Child", ParentID: &note.ID},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// A missing parent is rejected
	missing := "no-such-id"
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/secret/items",
		models.CreateSecretItemRequest{Type: "note", Name: "Orphan", ParentID: &missing},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Another user's folder is rejected
	_, otherToken := testutils.CreateTestUser(t, testCtx.Repository, "other@example.com", "Other")
	otherFolder := createSecretItem(t, testCtx, otherToken, models.CreateSecretItemRequest{
		Type: "folder", Name: "Theirs",
	})

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/secret/items",
		models.CreateSecretItemRequest{Type: "note", Name: "Sneaky", ParentID: &otherFolder.ID},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRecursiveDelete(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	// root
	//   sub
	//     note1
	//     note2
	//   note3
	// outside (must survive)
	root := createSecretItem(t, testCtx, testCtx.TestUserJWT, models.CreateSecretItemRequest{
		Type: "folder", Name: "root",
	})
	sub := createSecretItem(t, testCtx, testCtx.TestUserJWT, models.CreateSecretItemRequest{
		Type: "folder", Name: "sub", ParentID: &root.ID,
	})
	createSecretItem(t, testCtx, testCtx.TestUserJWT, models.CreateSecretItemRequest{
		Type: "note", Name: "note1", ParentID: &sub.ID,
	})
	createSecretItem(t, testCtx, testCtx.TestUserJWT, models.CreateSecretItemRequest{
		Type: "note", Name: "note2", ParentID: &sub.ID,
	})
	createSecretItem(t, testCtx, testCtx.TestUserJWT, models.CreateSecretItemRequest{
		Type: "note", Name: "note3", ParentID: &root.ID,
	})
	outside := createSecretItem(t, testCtx, testCtx.TestUserJWT, models.CreateSecretItemRequest{
		Type: "note", Name: "outside",
	})

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodDelete,
		fmt.Sprintf("/api/secret/items/%s", root.ID),
		nil,
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.DeleteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 5, resp.Deleted) // root + sub + 3 notes

	items := listSecretItems(t, testCtx, testCtx.TestUserJWT)
	require.Len(t, items, 1)
	assert.Equal(t, outside.ID, items[0].ID)
}

func TestMoveSecretItem(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	a := createSecretItem(t, testCtx, testCtx.TestUserJWT, models.CreateSecretItemRequest{
		Type: "folder", Name: "a",
	})
	b := createSecretItem(t, testCtx, testCtx.TestUserJWT, models.CreateSecretItemRequest{
		Type: "folder", Name: "b", ParentID: &a.ID,
	})
	note := createSecretItem(t, testCtx, testCtx.TestUserJWT, models.CreateSecretItemRequest{
		Type: "note", Name: "n", ParentID: &a.ID,
	})

	// Move the note under b
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		fmt.Sprintf("/api/secret/items/%s/move", note.ID),
		models.MoveSecretItemRequest{ParentID: &b.ID},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	var moved models.SecretItemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &moved))
	require.NotNil(t, moved.Item.ParentID)
	assert.Equal(t, b.ID, *moved.Item.ParentID)

	// Moving a into its own descendant b would create a cycle
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		fmt.Sprintf("/api/secret/items/%s/move", a.ID),
		models.MoveSecretItemRequest{ParentID: &b.ID},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Moving to root level is fine
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		fmt.Sprintf("/api/secret/items/%s/move", b.ID),
		models.MoveSecretItemRequest{},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSecretSharing(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	friendID, friendToken := testutils.CreateTestUser(t, testCtx.Repository, "confidant@example.com", "Confidant")

	note := createSecretItem(t, testCtx, testCtx.TestUserJWT, models.CreateSecretItemRequest{
		Type: "note", Name: "Shared thoughts",
	})

	// Not friends yet
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		fmt.Sprintf("/api/secret/items/%s/share", note.ID),
		models.ShareRequest{UserID: friendID},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Befriend, then share
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/friends/requests",
		models.SendFriendRequestRequest{Email: "confidant@example.com"},
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

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		fmt.Sprintf("/api/secret/items/%s/share", note.ID),
		models.ShareRequest{UserID: friendID},
		testutils.AuthHeaders(testCtx.TestUserJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	shared := listSecretItems(t, testCtx, friendToken)
	require.Len(t, shared, 1)
	assert.Equal(t, "Shared thoughts", shared[0].Name)
}
