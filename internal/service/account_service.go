package service

import (
	"context"

	"ripple/internal/credentials"
	"ripple/internal/models"
	"ripple/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccountService owns account removal: a cascading soft-delete across the
// user's posts, active connections, profile, and the user row itself, plus
// revocation of the session credential that authorized the request. The whole
// cascade is one transaction; a half-archived account is a data-integrity
// defect, not a degraded state.
type AccountService struct {
	db *gorm.DB
}

// NewAccountService returns a new AccountService.
func NewAccountService(db *gorm.DB) *AccountService {
	return &AccountService{db: db}
}

// ArchiveAccount archives the target account. Only the account owner may do
// this; claims identify the session credential to denylist alongside.
func (s *AccountService) ArchiveAccount(ctx context.Context, actor *models.User, targetID uuid.UUID, claims *credentials.Claims) error {
	if actor.ID != targetID {
		return models.NewForbiddenError("you can only delete your own account")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repository.NewPostRepository(tx).ArchiveByCreator(ctx, targetID); err != nil {
			return err
		}
		if err := repository.NewConnectionRepository(tx).ArchiveActiveForUser(ctx, targetID); err != nil {
			return err
		}

		profileRepo := repository.NewProfileRepository(tx)
		profile, err := profileRepo.GetByUserID(ctx, targetID)
		if err != nil {
			return err
		}
		profile.Archive = true
		if err := profileRepo.Save(ctx, profile); err != nil {
			return err
		}

		actor.Archive = true
		if err := repository.NewUserRepository(tx).Save(ctx, actor); err != nil {
			return err
		}

		return repository.NewTokenRepository(tx).Add(ctx, claims.JTI, claims.ExpiresAt)
	})
}
