// Package service implements the application's business logic on top of the
// repository layer.
package service

import (
	"context"
	"fmt"

	"ripple/internal/models"
	"ripple/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Follow-request decisions accepted by RespondToFollowRequest.
const (
	DecisionAccept = "accept"
	DecisionReject = "reject"
)

// ConnectionService implements the follow-request state machine and the
// queries over a user's connection graph. Multi-step writes (request + its
// notification, response + its notification) run in a single transaction,
// so the service holds the DB handle in addition to its repositories.
type ConnectionService struct {
	db       *gorm.DB
	connRepo repository.ConnectionRepository
	userRepo repository.UserRepository
}

// NewConnectionService returns a new ConnectionService.
func NewConnectionService(db *gorm.DB, connRepo repository.ConnectionRepository, userRepo repository.UserRepository) *ConnectionService {
	return &ConnectionService{db: db, connRepo: connRepo, userRepo: userRepo}
}

// SendFollowRequest creates a pending connection from sender to the user named
// by targetUsername and notifies the target. At most one connection may exist
// between a pair of users, in either direction and regardless of state.
func (s *ConnectionService) SendFollowRequest(ctx context.Context, sender *models.User, targetUsername string) (*models.Connection, error) {
	target, err := s.userRepo.GetActiveByUsername(ctx, targetUsername)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, models.NewNotFoundError("User", targetUsername)
	}
	if target.ID == sender.ID {
		return nil, models.NewInvalidArgumentError("You can't send follow request to yourself")
	}

	connection := &models.Connection{SenderID: sender.ID, ReceiverID: target.ID}

	// The pair check and the insert must share a transaction; the composite
	// unique index only covers the same-direction race.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		connRepo := repository.NewConnectionRepository(tx)

		existing, err := connRepo.GetBetweenUsers(ctx, sender.ID, target.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return models.NewConflictError("connection already exists")
		}

		if err := connRepo.Create(ctx, connection); err != nil {
			return err
		}

		notification := &models.Notification{
			UserID: target.ID,
			Msg:    fmt.Sprintf("You have a new follow request from %s", sender.Username),
		}
		return repository.NewNotificationRepository(tx).Create(ctx, notification)
	})
	if err != nil {
		return nil, err
	}

	return s.connRepo.GetByID(ctx, connection.ID)
}

// RespondToFollowRequest applies the receiver's decision to a pending request.
// Accept marks the connection accepted; reject deletes it outright. Either way
// the original sender is notified. A connection that is already accepted can
// be neither re-accepted nor rejected through this path; rejecting an
// established connection would be a disguised unfollow.
func (s *ConnectionService) RespondToFollowRequest(ctx context.Context, responder *models.User, connectionID uuid.UUID, decision string) (*models.Connection, error) {
	if decision != DecisionAccept && decision != DecisionReject {
		return nil, models.NewInvalidArgumentError(fmt.Sprintf("unknown response %q", decision))
	}

	connection, err := s.connRepo.GetByID(ctx, connectionID)
	if err != nil {
		return nil, err
	}
	if connection.ReceiverID != responder.ID {
		return nil, models.NewForbiddenError("you are not authorised for this follow request!")
	}
	if connection.Accepted {
		return nil, models.NewConflictError("follow request already accepted")
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		connRepo := repository.NewConnectionRepository(tx)
		notifRepo := repository.NewNotificationRepository(tx)

		if decision == DecisionAccept {
			if err := connRepo.Accept(ctx, connectionID); err != nil {
				return err
			}
			return notifRepo.Create(ctx, &models.Notification{
				UserID: connection.SenderID,
				Msg:    fmt.Sprintf("%s accepted your follow request", responder.Username),
			})
		}

		if err := notifRepo.Create(ctx, &models.Notification{
			UserID: connection.SenderID,
			Msg:    fmt.Sprintf("%s rejected your follow request", responder.Username),
		}); err != nil {
			return err
		}
		return connRepo.Delete(ctx, connectionID)
	})
	if err != nil {
		return nil, err
	}

	if decision == DecisionReject {
		return nil, nil
	}
	return s.connRepo.GetByID(ctx, connectionID)
}

// ListActiveConnections returns the user's accepted, non-archived connections,
// each presented from the caller's point of view.
func (s *ConnectionService) ListActiveConnections(ctx context.Context, userID uuid.UUID) ([]models.PeerConnection, error) {
	connections, err := s.connRepo.ListActiveForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	views := make([]models.PeerConnection, 0, len(connections))
	for i := range connections {
		views = append(views, connections[i].ViewFor(userID))
	}
	return views, nil
}

// ListPendingRequests returns follow requests awaiting the user's decision,
// presented with the sender as the peer.
func (s *ConnectionService) ListPendingRequests(ctx context.Context, userID uuid.UUID) ([]models.PeerConnection, error) {
	connections, err := s.connRepo.ListPendingForReceiver(ctx, userID)
	if err != nil {
		return nil, err
	}
	views := make([]models.PeerConnection, 0, len(connections))
	for i := range connections {
		views = append(views, connections[i].ViewFor(userID))
	}
	return views, nil
}

// RemoveConnection hard-deletes a connection on behalf of either participant.
func (s *ConnectionService) RemoveConnection(ctx context.Context, actorID, connectionID uuid.UUID) error {
	connection, err := s.connRepo.GetByID(ctx, connectionID)
	if err != nil {
		return err
	}
	if !connection.Involves(actorID) {
		return models.NewForbiddenError("you are not authorised!")
	}
	return s.connRepo.Delete(ctx, connectionID)
}
