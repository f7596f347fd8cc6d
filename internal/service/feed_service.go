package service

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/repository"

	"github.com/google/uuid"
)

// FeedService composes a user's feed from their connection graph.
type FeedService struct {
	connRepo repository.ConnectionRepository
	postRepo repository.PostRepository
}

// NewFeedService returns a new FeedService.
func NewFeedService(connRepo repository.ConnectionRepository, postRepo repository.PostRepository) *FeedService {
	return &FeedService{connRepo: connRepo, postRepo: postRepo}
}

// GetFeed returns the non-archived posts authored by the user's peers: every
// counterpart of an accepted, non-archived connection, whether the user sent
// or received it. The caller's own posts never appear. Order is the store's
// natural order.
func (s *FeedService) GetFeed(ctx context.Context, userID uuid.UUID) ([]models.Post, error) {
	connections, err := s.connRepo.ListActiveForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(connections) == 0 {
		return []models.Post{}, nil
	}

	seen := make(map[uuid.UUID]struct{}, len(connections))
	peers := make([]uuid.UUID, 0, len(connections))
	for i := range connections {
		peer := connections[i].PeerID(userID)
		if peer == userID {
			continue
		}
		if _, ok := seen[peer]; ok {
			continue
		}
		seen[peer] = struct{}{}
		peers = append(peers, peer)
	}

	posts, err := s.postRepo.ListActiveByCreators(ctx, peers)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return posts, nil
}
