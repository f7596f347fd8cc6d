package repository

import (
	"context"
	"testing"

	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupConnectionRepoTest(t *testing.T) (*gorm.DB, ConnectionRepository, *models.User, *models.User) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Profile{}, &models.Connection{}); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	alice := &models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x"}
	bob := &models.User{Username: "bob", Email: "bob@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(alice).Error)
	require.NoError(t, db.Create(bob).Error)

	return db, NewConnectionRepository(db), alice, bob
}

func TestGetBetweenUsersIsDirectionless(t *testing.T) {
	db, repo, alice, bob := setupConnectionRepoTest(t)

	conn := &models.Connection{SenderID: alice.ID, ReceiverID: bob.ID}
	require.NoError(t, db.Create(conn).Error)

	found, err := repo.GetBetweenUsers(context.Background(), alice.ID, bob.ID)
	require.NoError(t, err)
	require.NotNil(t, found)

	found, err = repo.GetBetweenUsers(context.Background(), bob.ID, alice.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, conn.ID, found.ID)
}

func TestGetBetweenUsersMissingPair(t *testing.T) {
	_, repo, alice, bob := setupConnectionRepoTest(t)

	found, err := repo.GetBetweenUsers(context.Background(), alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestArchiveActiveForUserSparesPending(t *testing.T) {
	db, repo, alice, bob := setupConnectionRepoTest(t)

	carol := &models.User{Username: "carol", Email: "carol@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(carol).Error)

	accepted := &models.Connection{SenderID: alice.ID, ReceiverID: bob.ID, Accepted: true}
	pending := &models.Connection{SenderID: alice.ID, ReceiverID: carol.ID}
	unrelated := &models.Connection{SenderID: bob.ID, ReceiverID: carol.ID, Accepted: true}
	require.NoError(t, db.Create(accepted).Error)
	require.NoError(t, db.Create(pending).Error)
	require.NoError(t, db.Create(unrelated).Error)

	require.NoError(t, repo.ArchiveActiveForUser(context.Background(), alice.ID))

	var stored models.Connection
	require.NoError(t, db.First(&stored, "id = ?", accepted.ID).Error)
	assert.True(t, stored.Archive)

	stored = models.Connection{}
	require.NoError(t, db.First(&stored, "id = ?", pending.ID).Error)
	assert.False(t, stored.Archive)

	stored = models.Connection{}
	require.NoError(t, db.First(&stored, "id = ?", unrelated.ID).Error)
	assert.False(t, stored.Archive)
}

func TestListActiveForUserSkipsArchived(t *testing.T) {
	db, repo, alice, bob := setupConnectionRepoTest(t)

	active := &models.Connection{SenderID: alice.ID, ReceiverID: bob.ID, Accepted: true}
	require.NoError(t, db.Create(active).Error)

	conns, err := repo.ListActiveForUser(context.Background(), alice.ID)
	require.NoError(t, err)
	require.Len(t, conns, 1)

	require.NoError(t, repo.ArchiveActiveForUser(context.Background(), bob.ID))

	conns, err = repo.ListActiveForUser(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Empty(t, conns)
}

func TestConnectionPairIndexRejectsDuplicateInsert(t *testing.T) {
	db, _, alice, bob := setupConnectionRepoTest(t)

	first := &models.Connection{SenderID: alice.ID, ReceiverID: bob.ID}
	require.NoError(t, db.Create(first).Error)

	// A same-direction duplicate written without going through the service
	// check must still be refused by the composite unique index.
	dup := &models.Connection{SenderID: alice.ID, ReceiverID: bob.ID}
	assert.Error(t, db.Create(dup).Error)

	var count int64
	require.NoError(t, db.Model(&models.Connection{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
