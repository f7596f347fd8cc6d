package repository

import (
	"context"
	"errors"

	"ripple/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Post, error)
	ListActive(ctx context.Context) ([]models.Post, error)
	ListActiveByCreators(ctx context.Context, creatorIDs []uuid.UUID) ([]models.Post, error)
	SearchByTag(ctx context.Context, tag string) ([]models.Post, error)
	SearchByTitle(ctx context.Context, title string) ([]models.Post, error)
	Save(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uuid.UUID) error
	ArchiveByCreator(ctx context.Context, creatorID uuid.UUID) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) ListActive(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.WithContext(ctx).Scopes(models.Active).Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// ListActiveByCreators returns non-archived posts authored by any of the given
// users, in the store's natural order.
func (r *postRepository) ListActiveByCreators(ctx context.Context, creatorIDs []uuid.UUID) ([]models.Post, error) {
	if len(creatorIDs) == 0 {
		return nil, nil
	}
	var posts []models.Post
	if err := r.db.WithContext(ctx).Scopes(models.Active).
		Where("creator_id IN ?", creatorIDs).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) SearchByTag(ctx context.Context, tag string) ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.WithContext(ctx).Scopes(models.Active).
		Where("tags LIKE ?", "%"+tag+"%").
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) SearchByTitle(ctx context.Context, title string) ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.WithContext(ctx).Scopes(models.Active).
		Where("title = ?", title).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) Save(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Omit("Creator").Save(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&models.Post{}, "id = ?", id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// ArchiveByCreator marks every post by the user as archived.
func (r *postRepository) ArchiveByCreator(ctx context.Context, creatorID uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("creator_id = ? AND archive = ?", creatorID, false).
		Update("archive", true).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
