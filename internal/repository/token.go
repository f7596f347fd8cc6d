package repository

import (
	"context"
	"time"

	"ripple/internal/models"

	"gorm.io/gorm"
)

// TokenRepository is the credential denylist store.
type TokenRepository interface {
	Add(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
	PruneExpired(ctx context.Context) (int64, error)
}

type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository returns a new TokenRepository implementation.
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Add(ctx context.Context, jti string, expiresAt time.Time) error {
	revoked := models.RevokedToken{JTI: jti, ExpiresAt: expiresAt}
	if err := r.db.WithContext(ctx).Create(&revoked).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *tokenRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.RevokedToken{}).
		Where("jti = ?", jti).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// PruneExpired removes denylist rows whose token would no longer validate
// anyway.
func (r *tokenRepository) PruneExpired(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&models.RevokedToken{})
	if res.Error != nil {
		return 0, models.NewInternalError(res.Error)
	}
	return res.RowsAffected, nil
}
