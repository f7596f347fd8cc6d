package server

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createPostType(t *testing.T, app *fiber.App, token, name string) {
	t.Helper()
	resp, body := doJSON(t, app, http.MethodPost, "/api/post-types", token, map[string]string{
		"name": name,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "%v", body)
}

func TestPostLifecycle(t *testing.T) {
	app, _ := setupTestApp(t)
	token, _ := registerTestUser(t, app, "alice")
	createPostType(t, app, token, "text")
	createPostType(t, app, token, "link")

	// A text post never keeps its URL.
	resp, body := doJSON(t, app, http.MethodPost, "/api/posts", token, map[string]interface{}{
		"title":     "hello",
		"url":       "https://example.com",
		"content":   "world",
		"tags":      "go,testing",
		"post_type": "text",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "%v", body)
	assert.Nil(t, body["url"])
	postID, _ := body["id"].(string)
	require.NotEmpty(t, postID)

	// Single posts are publicly readable.
	resp, body = doJSON(t, app, http.MethodGet, "/api/posts/"+postID, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "hello", body["title"])

	// Creator can update; switching type revives the URL rule.
	resp, body = doJSON(t, app, http.MethodPatch, "/api/posts/"+postID, token, map[string]interface{}{
		"post_type": "link",
		"url":       "https://example.com",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, "%v", body)
	assert.Equal(t, "https://example.com", body["url"])

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/posts/"+postID, token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/posts/"+postID, "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreatePostUnknownTypeRejected(t *testing.T) {
	app, _ := setupTestApp(t)
	token, _ := registerTestUser(t, app, "alice")

	resp, _ := doJSON(t, app, http.MethodPost, "/api/posts", token, map[string]interface{}{
		"title":     "hello",
		"content":   "world",
		"post_type": "hologram",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdatePostCreatorOnlyEndpoint(t *testing.T) {
	app, _ := setupTestApp(t)
	aliceToken, _ := registerTestUser(t, app, "alice")
	bobToken, _ := registerTestUser(t, app, "bob")
	createPostType(t, app, aliceToken, "text")

	resp, body := doJSON(t, app, http.MethodPost, "/api/posts", aliceToken, map[string]interface{}{
		"title":     "hello",
		"content":   "world",
		"post_type": "text",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	postID, _ := body["id"].(string)

	resp, _ = doJSON(t, app, http.MethodPatch, "/api/posts/"+postID, bobToken, map[string]interface{}{
		"title": "hijacked",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/posts/"+postID, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestGetPostMalformedID(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/posts/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDuplicatePostTypeConflicts(t *testing.T) {
	app, _ := setupTestApp(t)
	token, _ := registerTestUser(t, app, "alice")
	createPostType(t, app, token, "text")

	resp, _ := doJSON(t, app, http.MethodPost, "/api/post-types", token, map[string]string{
		"name": "text",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPostTypesPubliclyListable(t *testing.T) {
	app, _ := setupTestApp(t)
	token, _ := registerTestUser(t, app, "alice")
	createPostType(t, app, token, "text")

	resp, _ := doJSON(t, app, http.MethodGet, "/api/post-types", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Creating one without auth is rejected.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/post-types", "", map[string]string{
		"name": "link",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
