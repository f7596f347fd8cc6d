package service

import (
	"context"
	"testing"

	"ripple/internal/models"
	"ripple/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendFollowRequest(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewConnectionService(db,
		repository.NewConnectionRepository(db),
		repository.NewUserRepository(db))

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	conn, err := svc.SendFollowRequest(context.Background(), alice, "bob")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, conn.SenderID)
	assert.Equal(t, bob.ID, conn.ReceiverID)
	assert.False(t, conn.Accepted)

	view := conn.ViewFor(alice.ID)
	assert.Equal(t, "bob", view.User)

	var notifs []models.Notification
	require.NoError(t, db.Find(&notifs).Error)
	require.Len(t, notifs, 1)
	assert.Equal(t, bob.ID, notifs[0].UserID)
	assert.Equal(t, "You have a new follow request from alice", notifs[0].Msg)
}

func TestSendFollowRequestToSelf(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewConnectionService(db,
		repository.NewConnectionRepository(db),
		repository.NewUserRepository(db))

	alice := createTestUser(t, db, "alice")

	_, err := svc.SendFollowRequest(context.Background(), alice, "alice")
	require.Error(t, err)
	assert.Equal(t, models.CodeInvalidArgument, errCode(t, err))
}

func TestSendFollowRequestUnknownTarget(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewConnectionService(db,
		repository.NewConnectionRepository(db),
		repository.NewUserRepository(db))

	alice := createTestUser(t, db, "alice")

	_, err := svc.SendFollowRequest(context.Background(), alice, "ghost")
	require.Error(t, err)
	assert.Equal(t, models.CodeNotFound, errCode(t, err))
}

func TestSendFollowRequestDuplicatePair(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewConnectionService(db,
		repository.NewConnectionRepository(db),
		repository.NewUserRepository(db))

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	_, err := svc.SendFollowRequest(context.Background(), alice, "bob")
	require.NoError(t, err)

	// Same direction.
	_, err = svc.SendFollowRequest(context.Background(), alice, "bob")
	require.Error(t, err)
	assert.Equal(t, models.CodeConflict, errCode(t, err))

	// Opposite direction is still the same pair.
	_, err = svc.SendFollowRequest(context.Background(), bob, "alice")
	require.Error(t, err)
	assert.Equal(t, models.CodeConflict, errCode(t, err))
}

func TestRespondToFollowRequestAccept(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewConnectionService(db,
		repository.NewConnectionRepository(db),
		repository.NewUserRepository(db))

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	conn, err := svc.SendFollowRequest(context.Background(), alice, "bob")
	require.NoError(t, err)

	accepted, err := svc.RespondToFollowRequest(context.Background(), bob, conn.ID, DecisionAccept)
	require.NoError(t, err)
	assert.True(t, accepted.Accepted)

	var notifs []models.Notification
	require.NoError(t, db.Where("user_id = ?", alice.ID).Find(&notifs).Error)
	require.Len(t, notifs, 1)
	assert.Equal(t, "bob accepted your follow request", notifs[0].Msg)
}

func TestRespondToFollowRequestReject(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewConnectionService(db,
		repository.NewConnectionRepository(db),
		repository.NewUserRepository(db))

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	conn, err := svc.SendFollowRequest(context.Background(), alice, "bob")
	require.NoError(t, err)

	rejected, err := svc.RespondToFollowRequest(context.Background(), bob, conn.ID, DecisionReject)
	require.NoError(t, err)
	assert.Nil(t, rejected)

	// The connection row is gone, not archived.
	var count int64
	require.NoError(t, db.Model(&models.Connection{}).Where("id = ?", conn.ID).Count(&count).Error)
	assert.Zero(t, count)

	var notifs []models.Notification
	require.NoError(t, db.Where("user_id = ?", alice.ID).Find(&notifs).Error)
	require.Len(t, notifs, 1)
	assert.Equal(t, "bob rejected your follow request", notifs[0].Msg)
}

func TestRespondToFollowRequestWrongResponder(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewConnectionService(db,
		repository.NewConnectionRepository(db),
		repository.NewUserRepository(db))

	alice := createTestUser(t, db, "alice")
	createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	conn, err := svc.SendFollowRequest(context.Background(), alice, "bob")
	require.NoError(t, err)

	// Neither the sender nor a third party may respond.
	_, err = svc.RespondToFollowRequest(context.Background(), alice, conn.ID, DecisionAccept)
	require.Error(t, err)
	assert.Equal(t, models.CodeForbidden, errCode(t, err))

	_, err = svc.RespondToFollowRequest(context.Background(), carol, conn.ID, DecisionAccept)
	require.Error(t, err)
	assert.Equal(t, models.CodeForbidden, errCode(t, err))
}

func TestRespondToFollowRequestAlreadyAccepted(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewConnectionService(db,
		repository.NewConnectionRepository(db),
		repository.NewUserRepository(db))

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	conn, err := svc.SendFollowRequest(context.Background(), alice, "bob")
	require.NoError(t, err)

	_, err = svc.RespondToFollowRequest(context.Background(), bob, conn.ID, DecisionAccept)
	require.NoError(t, err)

	// Re-accepting and rejecting an accepted connection both conflict.
	_, err = svc.RespondToFollowRequest(context.Background(), bob, conn.ID, DecisionAccept)
	require.Error(t, err)
	assert.Equal(t, models.CodeConflict, errCode(t, err))

	_, err = svc.RespondToFollowRequest(context.Background(), bob, conn.ID, DecisionReject)
	require.Error(t, err)
	assert.Equal(t, models.CodeConflict, errCode(t, err))

	// The connection survived untouched.
	var stored models.Connection
	require.NoError(t, db.First(&stored, "id = ?", conn.ID).Error)
	assert.True(t, stored.Accepted)
}

func TestRespondToFollowRequestUnknownDecision(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewConnectionService(db,
		repository.NewConnectionRepository(db),
		repository.NewUserRepository(db))

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	conn, err := svc.SendFollowRequest(context.Background(), alice, "bob")
	require.NoError(t, err)

	_, err = svc.RespondToFollowRequest(context.Background(), bob, conn.ID, "maybe")
	require.Error(t, err)
	assert.Equal(t, models.CodeInvalidArgument, errCode(t, err))
}

func TestListConnectionsPeerNormalized(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewConnectionService(db,
		repository.NewConnectionRepository(db),
		repository.NewUserRepository(db))

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	conn, err := svc.SendFollowRequest(context.Background(), alice, "bob")
	require.NoError(t, err)
	_, err = svc.RespondToFollowRequest(context.Background(), bob, conn.ID, DecisionAccept)
	require.NoError(t, err)

	// Each side sees the other as the peer of the same connection.
	fromAlice, err := svc.ListActiveConnections(context.Background(), alice.ID)
	require.NoError(t, err)
	require.Len(t, fromAlice, 1)
	assert.Equal(t, "bob", fromAlice[0].User)

	fromBob, err := svc.ListActiveConnections(context.Background(), bob.ID)
	require.NoError(t, err)
	require.Len(t, fromBob, 1)
	assert.Equal(t, "alice", fromBob[0].User)
	assert.Equal(t, fromAlice[0].ID, fromBob[0].ID)
}

func TestListPendingRequests(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewConnectionService(db,
		repository.NewConnectionRepository(db),
		repository.NewUserRepository(db))

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	_, err := svc.SendFollowRequest(context.Background(), alice, "bob")
	require.NoError(t, err)

	// Pending requests are listed for the receiver, not the sender.
	pending, err := svc.ListPendingRequests(context.Background(), bob.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "alice", pending[0].User)
	assert.False(t, pending[0].Accepted)

	pending, err = svc.ListPendingRequests(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestRemoveConnection(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewConnectionService(db,
		repository.NewConnectionRepository(db),
		repository.NewUserRepository(db))

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	conn, err := svc.SendFollowRequest(context.Background(), alice, "bob")
	require.NoError(t, err)
	_, err = svc.RespondToFollowRequest(context.Background(), bob, conn.ID, DecisionAccept)
	require.NoError(t, err)

	err = svc.RemoveConnection(context.Background(), carol.ID, conn.ID)
	require.Error(t, err)
	assert.Equal(t, models.CodeForbidden, errCode(t, err))

	// Either participant may remove; here the original sender does.
	require.NoError(t, svc.RemoveConnection(context.Background(), alice.ID, conn.ID))

	var count int64
	require.NoError(t, db.Model(&models.Connection{}).Where("id = ?", conn.ID).Count(&count).Error)
	assert.Zero(t, count)
}
