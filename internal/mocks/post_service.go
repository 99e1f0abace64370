package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/blog-api/internal/domain"
	"github.com/phrazzld/blog-api/internal/service"
)

// MockPostService implements service.PostService for testing
type MockPostService struct {
	// Custom behavior functions
	SavePostFn             func(ctx context.Context, title, content string) (*domain.Post, error)
	GetPostByIDFn          func(ctx context.Context, id int64) (*domain.Post, error)
	UpdatePostFn           func(ctx context.Context, id int64, title, content string) (*domain.Post, error)
	DeletePostFn           func(ctx context.Context, id int64) error
	GetAllPostsPaginatedFn func(ctx context.Context, page, limit int) (*service.PaginatedPosts, error)

	// Default response values
	Post  *domain.Post
	Page  *service.PaginatedPosts
	Err   error
	Calls MockPostServiceCalls

	mu sync.Mutex
}

// MockPostServiceCalls records the arguments of calls made to a MockPostService.
type MockPostServiceCalls struct {
	SavePost      int
	GetPostByID   []int64
	UpdatePost    []int64
	DeletePost    []int64
	ListPageLimit [][2]int
}

// Ensure MockPostService implements service.PostService
var _ service.PostService = (*MockPostService)(nil)

// SavePost implements the service.PostService interface
func (m *MockPostService) SavePost(ctx context.Context, title, content string) (*domain.Post, error) {
	m.mu.Lock()
	m.Calls.SavePost++
	m.mu.Unlock()

	if m.SavePostFn != nil {
		return m.SavePostFn(ctx, title, content)
	}
	return m.Post, m.Err
}

// GetPostByID implements the service.PostService interface
func (m *MockPostService) GetPostByID(ctx context.Context, id int64) (*domain.Post, error) {
	m.mu.Lock()
	m.Calls.GetPostByID = append(m.Calls.GetPostByID, id)
	m.mu.Unlock()

	if m.GetPostByIDFn != nil {
		return m.GetPostByIDFn(ctx, id)
	}
	return m.Post, m.Err
}

// UpdatePost implements the service.PostService interface
func (m *MockPostService) UpdatePost(ctx context.Context, id int64, title, content string) (*domain.Post, error) {
	m.mu.Lock()
	m.Calls.UpdatePost = append(m.Calls.UpdatePost, id)
	m.mu.Unlock()

	if m.UpdatePostFn != nil {
		return m.UpdatePostFn(ctx, id, title, content)
	}
	return m.Post, m.Err
}

// DeletePost implements the service.PostService interface
func (m *MockPostService) DeletePost(ctx context.Context, id int64) error {
	m.mu.Lock()
	m.Calls.DeletePost = append(m.Calls.DeletePost, id)
	m.mu.Unlock()

	if m.DeletePostFn != nil {
		return m.DeletePostFn(ctx, id)
	}
	return m.Err
}

// GetAllPostsPaginated implements the service.PostService interface
func (m *MockPostService) GetAllPostsPaginated(ctx context.Context, page, limit int) (*service.PaginatedPosts, error) {
	m.mu.Lock()
	m.Calls.ListPageLimit = append(m.Calls.ListPageLimit, [2]int{page, limit})
	m.mu.Unlock()

	if m.GetAllPostsPaginatedFn != nil {
		return m.GetAllPostsPaginatedFn(ctx, page, limit)
	}
	return m.Page, m.Err
}
