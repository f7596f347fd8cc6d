package repository

import (
	"context"
	"errors"

	"ripple/internal/models"

	"gorm.io/gorm"
)

// PostTypeRepository defines persistence operations for post types.
type PostTypeRepository interface {
	Create(ctx context.Context, postType *models.PostType) error
	GetByName(ctx context.Context, name string) (*models.PostType, error)
	List(ctx context.Context) ([]models.PostType, error)
}

type postTypeRepository struct {
	db *gorm.DB
}

// NewPostTypeRepository returns a new PostTypeRepository implementation.
func NewPostTypeRepository(db *gorm.DB) PostTypeRepository {
	return &postTypeRepository{db: db}
}

func (r *postTypeRepository) Create(ctx context.Context, postType *models.PostType) error {
	if err := r.db.WithContext(ctx).Create(postType).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// GetByName returns the post type with the given name, or nil when absent.
func (r *postTypeRepository) GetByName(ctx context.Context, name string) (*models.PostType, error) {
	var postType models.PostType
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&postType).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &postType, nil
}

func (r *postTypeRepository) List(ctx context.Context) ([]models.PostType, error) {
	var postTypes []models.PostType
	if err := r.db.WithContext(ctx).Find(&postTypes).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return postTypes, nil
}
