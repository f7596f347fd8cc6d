package service

import (
	"context"
	"testing"

	"ripple/internal/models"
	"ripple/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createFeedPost(t *testing.T, db *gorm.DB, creator *models.User, title string, archived bool) *models.Post {
	t.Helper()
	post := &models.Post{
		CreatorID: creator.ID,
		Title:     title,
		Content:   "content",
		PostType:  models.PostTypeText,
	}
	post.Archive = archived
	require.NoError(t, db.Create(post).Error)
	return post
}

func TestGetFeedEmptyWithoutConnections(t *testing.T) {
	db := setupServiceTestDB(t)
	feed := NewFeedService(
		repository.NewConnectionRepository(db),
		repository.NewPostRepository(db))

	alice := createTestUser(t, db, "alice")
	createFeedPost(t, db, alice, "own post", false)

	posts, err := feed.GetFeed(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestGetFeedFromAcceptedConnections(t *testing.T) {
	db := setupServiceTestDB(t)
	connSvc := NewConnectionService(db,
		repository.NewConnectionRepository(db),
		repository.NewUserRepository(db))
	feed := NewFeedService(
		repository.NewConnectionRepository(db),
		repository.NewPostRepository(db))

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	// alice -> bob accepted, carol -> alice accepted: both are alice's peers.
	conn, err := connSvc.SendFollowRequest(context.Background(), alice, "bob")
	require.NoError(t, err)
	_, err = connSvc.RespondToFollowRequest(context.Background(), bob, conn.ID, DecisionAccept)
	require.NoError(t, err)

	conn, err = connSvc.SendFollowRequest(context.Background(), carol, "alice")
	require.NoError(t, err)
	_, err = connSvc.RespondToFollowRequest(context.Background(), alice, conn.ID, DecisionAccept)
	require.NoError(t, err)

	createFeedPost(t, db, bob, "from bob", false)
	createFeedPost(t, db, carol, "from carol", false)
	createFeedPost(t, db, alice, "own post", false)
	createFeedPost(t, db, bob, "archived", true)

	posts, err := feed.GetFeed(context.Background(), alice.ID)
	require.NoError(t, err)

	titles := make([]string, 0, len(posts))
	for _, p := range posts {
		titles = append(titles, p.Title)
	}
	assert.ElementsMatch(t, []string{"from bob", "from carol"}, titles)
}

func TestGetFeedExcludesPendingConnections(t *testing.T) {
	db := setupServiceTestDB(t)
	connSvc := NewConnectionService(db,
		repository.NewConnectionRepository(db),
		repository.NewUserRepository(db))
	feed := NewFeedService(
		repository.NewConnectionRepository(db),
		repository.NewPostRepository(db))

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	_, err := connSvc.SendFollowRequest(context.Background(), alice, "bob")
	require.NoError(t, err)

	createFeedPost(t, db, bob, "from bob", false)

	posts, err := feed.GetFeed(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Empty(t, posts)
}
