package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/blog-api/internal/domain"
	"github.com/phrazzld/blog-api/internal/platform/logger"
	"github.com/phrazzld/blog-api/internal/store"
)

// Pagination describes where a page sits in the full result set.
type Pagination struct {
	TotalItems   int64
	CurrentPage  int
	LastPage     int
	ItemsPerPage int
}

// PaginatedPosts is one page of posts plus its pagination metadata.
type PaginatedPosts struct {
	Data       []*domain.Post
	Pagination Pagination
}

// PostService provides post-related operations
type PostService interface {
	// SavePost creates a new post.
	SavePost(ctx context.Context, title, content string) (*domain.Post, error)

	// GetPostByID retrieves a post. Returns ErrPostNotFound if it does not exist.
	GetPostByID(ctx context.Context, id int64) (*domain.Post, error)

	// UpdatePost replaces title and content of a post.
	// Returns ErrPostNotFound if it does not exist.
	UpdatePost(ctx context.Context, id int64, title, content string) (*domain.Post, error)

	// DeletePost removes a post. Returns ErrPostNotFound if it does not exist.
	DeletePost(ctx context.Context, id int64) error

	// GetAllPostsPaginated returns the requested page of posts in ID order.
	GetAllPostsPaginated(ctx context.Context, page, limit int) (*PaginatedPosts, error)
}

// postServiceImpl implements the PostService interface
type postServiceImpl struct {
	postStore store.PostStore
	logger    *slog.Logger
}

// NewPostService creates a new PostService
// It returns an error if the store is nil.
func NewPostService(postStore store.PostStore, logger *slog.Logger) (PostService, error) {
	if postStore == nil {
		return nil, domain.NewValidationError("postStore cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &postServiceImpl{
		postStore: postStore,
		logger:    logger.With(slog.String("component", "post_service")),
	}, nil
}

// SavePost implements PostService.SavePost
func (s *postServiceImpl) SavePost(ctx context.Context, title, content string) (*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := domain.ValidatePost(title, content); err != nil {
		log.Debug("rejected invalid post", slog.String("error", err.Error()))
		return nil, err
	}

	post, err := s.postStore.Create(ctx, title, content)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return nil, err
		}
		log.Error("failed to save post", slog.String("error", err.Error()))
		return nil, NewPostServiceError("save_post", "failed to save post", err)
	}

	log.Debug("post saved", slog.Int64("post_id", post.ID))
	return post, nil
}

// GetPostByID implements PostService.GetPostByID
func (s *postServiceImpl) GetPostByID(ctx context.Context, id int64) (*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	post, err := s.postStore.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("post not found", slog.Int64("post_id", id))
			return nil, ErrPostNotFound
		}
		log.Error("failed to get post",
			slog.String("error", err.Error()),
			slog.Int64("post_id", id))
		return nil, NewPostServiceError("get_post", "failed to retrieve post", err)
	}
	return post, nil
}

// UpdatePost implements PostService.UpdatePost
//
// Existence is checked before validation, so an unknown ID reports not found
// even when the payload is also invalid.
func (s *postServiceImpl) UpdatePost(ctx context.Context, id int64, title, content string) (*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.GetPostByID(ctx, id); err != nil {
		return nil, err
	}

	if err := domain.ValidatePost(title, content); err != nil {
		log.Debug("rejected invalid post update",
			slog.String("error", err.Error()),
			slog.Int64("post_id", id))
		return nil, err
	}

	post, err := s.postStore.Update(ctx, id, title, content)
	if err != nil {
		switch {
		case store.IsNotFoundError(err):
			// deleted between the existence check and the write
			log.Debug("post not found for update", slog.Int64("post_id", id))
			return nil, ErrPostNotFound
		case errors.Is(err, domain.ErrValidation):
			return nil, err
		}
		log.Error("failed to update post",
			slog.String("error", err.Error()),
			slog.Int64("post_id", id))
		return nil, NewPostServiceError("update_post", "failed to update post", err)
	}

	log.Debug("post updated", slog.Int64("post_id", id))
	return post, nil
}

// DeletePost implements PostService.DeletePost
func (s *postServiceImpl) DeletePost(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.postStore.Delete(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("post not found for delete", slog.Int64("post_id", id))
			return ErrPostNotFound
		}
		log.Error("failed to delete post",
			slog.String("error", err.Error()),
			slog.Int64("post_id", id))
		return NewPostServiceError("delete_post", "failed to delete post", err)
	}

	log.Debug("post deleted", slog.Int64("post_id", id))
	return nil
}

// GetAllPostsPaginated implements PostService.GetAllPostsPaginated
func (s *postServiceImpl) GetAllPostsPaginated(ctx context.Context, page, limit int) (*PaginatedPosts, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.postStore.ListPage(ctx, page, limit)
	if err != nil {
		log.Error("failed to list posts",
			slog.String("error", err.Error()),
			slog.Int("page", page),
			slog.Int("limit", limit))
		return nil, NewPostServiceError("list_posts", "failed to list posts", err)
	}

	items := result.Items
	if items == nil {
		items = []*domain.Post{}
	}

	return &PaginatedPosts{
		Data: items,
		Pagination: Pagination{
			TotalItems:   result.TotalItems,
			CurrentPage:  result.Page,
			LastPage:     result.TotalPages,
			ItemsPerPage: result.PageSize,
		},
	}, nil
}
