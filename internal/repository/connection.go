package repository

import (
	"context"
	"errors"

	"ripple/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConnectionRepository defines persistence operations for follow connections.
type ConnectionRepository interface {
	Create(ctx context.Context, connection *models.Connection) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Connection, error)
	GetBetweenUsers(ctx context.Context, userID1, userID2 uuid.UUID) (*models.Connection, error)
	ListActiveForUser(ctx context.Context, userID uuid.UUID) ([]models.Connection, error)
	ListPendingForReceiver(ctx context.Context, userID uuid.UUID) ([]models.Connection, error)
	Accept(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	ArchiveActiveForUser(ctx context.Context, userID uuid.UUID) error
}

type connectionRepository struct {
	db *gorm.DB
}

// NewConnectionRepository returns a new ConnectionRepository implementation.
func NewConnectionRepository(db *gorm.DB) ConnectionRepository {
	return &connectionRepository{db: db}
}

func (r *connectionRepository) Create(ctx context.Context, connection *models.Connection) error {
	if err := r.db.WithContext(ctx).Create(connection).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *connectionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Connection, error) {
	var connection models.Connection
	if err := r.db.WithContext(ctx).
		Preload("Sender").Preload("Receiver").
		First(&connection, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Connection", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &connection, nil
}

// GetBetweenUsers finds the connection between two users in either direction,
// regardless of accepted or archive state. Returns nil when no row exists.
func (r *connectionRepository) GetBetweenUsers(ctx context.Context, userID1, userID2 uuid.UUID) (*models.Connection, error) {
	var connection models.Connection
	if err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID1, userID2, userID2, userID1).
		First(&connection).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &connection, nil
}

// ListActiveForUser returns accepted, non-archived connections involving the
// user, with both participants preloaded for peer presentation.
func (r *connectionRepository) ListActiveForUser(ctx context.Context, userID uuid.UUID) ([]models.Connection, error) {
	var connections []models.Connection
	if err := r.db.WithContext(ctx).Scopes(models.Active).
		Where("accepted = ?", true).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Preload("Sender").Preload("Receiver").
		Find(&connections).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return connections, nil
}

func (r *connectionRepository) ListPendingForReceiver(ctx context.Context, userID uuid.UUID) ([]models.Connection, error) {
	var connections []models.Connection
	if err := r.db.WithContext(ctx).
		Where("receiver_id = ? AND accepted = ?", userID, false).
		Preload("Sender").Preload("Receiver").
		Find(&connections).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return connections, nil
}

func (r *connectionRepository) Accept(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Connection{}).
		Where("id = ?", id).
		Update("accepted", true).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *connectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&models.Connection{}, "id = ?", id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// ArchiveActiveForUser marks every active connection involving the user as
// archived. Pending requests are left alone; they are invisible to feeds
// already and rejecting them stays possible for the other party.
func (r *connectionRepository) ArchiveActiveForUser(ctx context.Context, userID uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Connection{}).
		Where("accepted = ? AND archive = ?", true, false).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Update("archive", true).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
