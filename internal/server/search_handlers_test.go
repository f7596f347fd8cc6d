package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchByUsernameStripsEmail(t *testing.T) {
	app, _ := setupTestApp(t)
	resp, _ := doJSON(t, app, http.MethodPost, "/api/register", "", map[string]string{
		"username":   "alice",
		"email":      "alice@example.com",
		"password":   "password123",
		"first_name": "Alice",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodGet, "/api/search?username=alice", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "alice", body["username"])
	_, hasEmail := body["email"]
	assert.False(t, hasEmail)

	profile, ok := body["profile"].(map[string]interface{})
	require.True(t, ok, "profile should be embedded, got %v", body["profile"])
	assert.Equal(t, "Alice", profile["first_name"])
}

func TestSearchByUsernameUnknown(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/search?username=ghost", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSearchByTagAndTitle(t *testing.T) {
	app, _ := setupTestApp(t)
	token, _ := registerTestUser(t, app, "alice")
	createPostType(t, app, token, "text")

	resp, _ := doJSON(t, app, http.MethodPost, "/api/posts", token, map[string]interface{}{
		"title":     "gopher things",
		"content":   "content",
		"tags":      "golang,backend",
		"post_type": "text",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Tag search is a substring match.
	posts := getJSONList(t, app, "/api/search?tag=gola", "")
	require.Len(t, posts, 1)
	assert.Equal(t, "gopher things", posts[0]["title"])

	// Title search is exact.
	posts = getJSONList(t, app, "/api/search?post=gopher+things", "")
	require.Len(t, posts, 1)

	posts = getJSONList(t, app, "/api/search?post=gopher", "")
	assert.Empty(t, posts)
}

func TestSearchWithoutParameters(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/search", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
