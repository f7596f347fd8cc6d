package service

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/repository"

	"github.com/google/uuid"
)

// NotificationService reads and mutates a user's notification log.
type NotificationService struct {
	notifRepo repository.NotificationRepository
}

// NewNotificationService returns a new NotificationService.
func NewNotificationService(notifRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{notifRepo: notifRepo}
}

// ListForUser returns every notification for the user, read or not.
func (s *NotificationService) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Notification, error) {
	notifications, err := s.notifRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	return notifications, nil
}

// MarkRead flags a single notification as read. Only its owner may do so.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	notification, err := s.notifRepo.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if notification.UserID != userID {
		return models.NewForbiddenError("Unauthorized")
	}
	return s.notifRepo.MarkRead(ctx, notificationID)
}

// MarkAllRead flags every unread notification for the user as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.notifRepo.MarkAllRead(ctx, userID)
}
