package service

import (
	"context"
	"fmt"

	"ripple/internal/models"
	"ripple/internal/repository"

	"github.com/google/uuid"
)

// PostInput carries the fields of a post creation request.
type PostInput struct {
	Title    string  `json:"title"`
	URL      *string `json:"url"`
	Content  string  `json:"content"`
	Tags     string  `json:"tags"`
	PostType string  `json:"post_type"`
}

// PostPatch carries the optional fields of a post update request. Nil means
// the field is untouched.
type PostPatch struct {
	Title    *string `json:"title"`
	URL      *string `json:"url"`
	Content  *string `json:"content"`
	Tags     *string `json:"tags"`
	PostType *string `json:"post_type"`
}

// PostService provides post and post-type CRUD with ownership checks.
type PostService struct {
	postRepo repository.PostRepository
	typeRepo repository.PostTypeRepository
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository, typeRepo repository.PostTypeRepository) *PostService {
	return &PostService{postRepo: postRepo, typeRepo: typeRepo}
}

// CreatePost stores a new post for the creator. The post type must reference
// an existing PostType; text posts never carry a URL regardless of input.
func (s *PostService) CreatePost(ctx context.Context, creatorID uuid.UUID, input PostInput) (*models.Post, error) {
	if err := s.checkPostType(ctx, input.PostType); err != nil {
		return nil, err
	}

	url := input.URL
	if input.PostType == models.PostTypeText {
		url = nil
	}

	post := &models.Post{
		CreatorID: creatorID,
		Title:     input.Title,
		URL:       url,
		Content:   input.Content,
		Tags:      input.Tags,
		PostType:  input.PostType,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetPost returns a post by id, archived or not.
func (s *PostService) GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// ListPosts returns all non-archived posts.
func (s *PostService) ListPosts(ctx context.Context) ([]models.Post, error) {
	posts, err := s.postRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return posts, nil
}

// UpdatePost applies a patch to a post. Only the creator may mutate it; the
// text-type URL rule is re-enforced against the post's resulting type.
func (s *PostService) UpdatePost(ctx context.Context, actorID, postID uuid.UUID, patch PostPatch) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.CreatorID != actorID {
		return nil, models.NewForbiddenError("Unauthorized")
	}

	if patch.PostType != nil && *patch.PostType != post.PostType {
		if err := s.checkPostType(ctx, *patch.PostType); err != nil {
			return nil, err
		}
		post.PostType = *patch.PostType
	}
	if patch.Title != nil {
		post.Title = *patch.Title
	}
	if patch.URL != nil {
		post.URL = patch.URL
	}
	if patch.Content != nil {
		post.Content = *patch.Content
	}
	if patch.Tags != nil {
		post.Tags = *patch.Tags
	}
	if post.PostType == models.PostTypeText {
		post.URL = nil
	}

	if err := s.postRepo.Save(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost hard-deletes a post. Only the creator may do so.
func (s *PostService) DeletePost(ctx context.Context, actorID, postID uuid.UUID) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.CreatorID != actorID {
		return models.NewForbiddenError("Unauthorized")
	}
	return s.postRepo.Delete(ctx, postID)
}

// CreatePostType adds a name to the post-type vocabulary.
func (s *PostService) CreatePostType(ctx context.Context, name string) (*models.PostType, error) {
	if name == "" {
		return nil, models.NewInvalidArgumentError("name is required")
	}
	existing, err := s.typeRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("Post Type already exists")
	}
	postType := &models.PostType{Name: name}
	if err := s.typeRepo.Create(ctx, postType); err != nil {
		return nil, err
	}
	return postType, nil
}

// ListPostTypes returns the whole post-type vocabulary.
func (s *PostService) ListPostTypes(ctx context.Context) ([]models.PostType, error) {
	postTypes, err := s.typeRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if postTypes == nil {
		postTypes = []models.PostType{}
	}
	return postTypes, nil
}

func (s *PostService) checkPostType(ctx context.Context, name string) error {
	postType, err := s.typeRepo.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if postType == nil {
		return models.NewInvalidReferenceError(fmt.Sprintf("unknown post type %q", name))
	}
	return nil
}
