// Package memory provides an in-process implementation of store.PostStore.
// It backs the "memory" database driver and keeps no state across restarts.
package memory

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/phrazzld/blog-api/internal/domain"
	"github.com/phrazzld/blog-api/internal/platform/logger"
	"github.com/phrazzld/blog-api/internal/store"
)

// PostStore implements store.PostStore on a mutex-guarded map.
// IDs come from a monotonically increasing counter and are never reused.
type PostStore struct {
	mu     sync.RWMutex
	posts  map[int64]*domain.Post
	nextID int64
	now    func() time.Time
	logger *slog.Logger
}

// Ensure PostStore implements store.PostStore interface
var _ store.PostStore = (*PostStore)(nil)

// NewPostStore creates an empty store. If logger is nil, a default logger will be used.
func NewPostStore(logger *slog.Logger) *PostStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostStore{
		posts:  make(map[int64]*domain.Post),
		nextID: 1,
		now:    time.Now,
		logger: logger.With(slog.String("component", "memory_post_store")),
	}
}

// WithClock replaces the time source; used by tests.
func (s *PostStore) WithClock(now func() time.Time) *PostStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
	return s
}

// Create implements store.PostStore.Create
func (s *PostStore) Create(ctx context.Context, title, content string) (*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := domain.ValidatePost(title, content); err != nil {
		log.Warn("post validation failed during create", slog.String("error", err.Error()))
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	post := &domain.Post{
		ID:        s.nextID,
		Title:     title,
		Content:   content,
		CreatedAt: s.now().UTC(),
	}
	s.nextID++
	s.posts[post.ID] = post

	log.Info("post created successfully", slog.Int64("post_id", post.ID))
	return clonePost(post), nil
}

// GetByID implements store.PostStore.GetByID
func (s *PostStore) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	post, ok := s.posts[id]
	if !ok {
		logger.FromContextOrDefault(ctx, s.logger).
			Debug("post not found", slog.Int64("post_id", id))
		return nil, store.ErrPostNotFound
	}
	return clonePost(post), nil
}

// Update implements store.PostStore.Update
func (s *PostStore) Update(ctx context.Context, id int64, title, content string) (*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := domain.ValidatePost(title, content); err != nil {
		log.Warn("post validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("post_id", id))
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[id]
	if !ok {
		log.Debug("post not found for update", slog.Int64("post_id", id))
		return nil, store.ErrPostNotFound
	}
	post.Touch(title, content, s.now())

	log.Info("post updated successfully", slog.Int64("post_id", id))
	return clonePost(post), nil
}

// Delete implements store.PostStore.Delete
func (s *PostStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[id]; !ok {
		log.Debug("post not found for delete", slog.Int64("post_id", id))
		return store.ErrPostNotFound
	}
	delete(s.posts, id)

	log.Info("post deleted successfully", slog.Int64("post_id", id))
	return nil
}

// ListPage implements store.PostStore.ListPage
func (s *PostStore) ListPage(ctx context.Context, page, pageSize int) (*store.PostPage, error) {
	page, pageSize = store.NormalizePage(page, pageSize)

	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.posts))
	for id := range s.posts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	total := int64(len(ids))
	items := []*domain.Post{}
	if offset, ok := store.PageOffset(page, pageSize, total); ok {
		end := len(ids)
		if pageSize < end-offset {
			end = offset + pageSize
		}
		for _, id := range ids[offset:end] {
			items = append(items, clonePost(s.posts[id]))
		}
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("listed posts",
		slog.Int("page", page),
		slog.Int("page_size", pageSize),
		slog.Int("count", len(items)),
		slog.Int64("total", total))
	return store.NewPostPage(items, total, page, pageSize), nil
}

// clonePost returns a copy so callers never alias stored records.
func clonePost(p *domain.Post) *domain.Post {
	c := *p
	if p.UpdatedAt != nil {
		t := *p.UpdatedAt
		c.UpdatedAt = &t
	}
	return &c
}
