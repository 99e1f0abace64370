package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/phrazzld/blog-api/internal/domain"
	"github.com/phrazzld/blog-api/internal/platform/memory"
	"github.com/phrazzld/blog-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var errDatabase = errors.New("database unavailable")

func newTestPost(id int64) *domain.Post {
	return &domain.Post{
		ID:        id,
		Title:     "My Test Post",
		Content:   "This is the content of the test post.",
		CreatedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestNewPostService(t *testing.T) {
	t.Run("nil store", func(t *testing.T) {
		svc, err := NewPostService(nil, nil)
		assert.Nil(t, svc)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("nil logger uses default", func(t *testing.T) {
		svc, err := NewPostService(&MockPostStore{}, nil)
		require.NoError(t, err)
		assert.NotNil(t, svc)
	})
}

func TestPostService_SavePost(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mockStore := &MockPostStore{}
		post := newTestPost(1)
		mockStore.On("Create", mock.Anything, post.Title, post.Content).Return(post, nil)

		svc, err := NewPostService(mockStore, nil)
		require.NoError(t, err)

		got, err := svc.SavePost(ctx, post.Title, post.Content)
		require.NoError(t, err)
		assert.Equal(t, post, got)
		mockStore.AssertExpectations(t)
	})

	t.Run("validation error never reaches the store", func(t *testing.T) {
		mockStore := &MockPostStore{}
		svc, err := NewPostService(mockStore, nil)
		require.NoError(t, err)

		_, err = svc.SavePost(ctx, "", "")
		require.Error(t, err)

		var validationErr *domain.ValidationError
		require.True(t, errors.As(err, &validationErr))
		assert.Equal(t, []string{domain.MsgTitleBlank, domain.MsgContentBlank}, validationErr.Messages)
		mockStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		mockStore := &MockPostStore{}
		mockStore.On("Create", mock.Anything, "title", "content").Return(nil, errDatabase)

		svc, err := NewPostService(mockStore, nil)
		require.NoError(t, err)

		_, err = svc.SavePost(ctx, "title", "content")
		var serviceErr *PostServiceError
		require.True(t, errors.As(err, &serviceErr))
		assert.Equal(t, "save_post", serviceErr.Operation)
		assert.ErrorIs(t, err, errDatabase)
	})
}

func TestPostService_GetPostByID(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		storeErr error
		wantErr  error
	}{
		{name: "found"},
		{name: "not found", storeErr: store.ErrPostNotFound, wantErr: ErrPostNotFound},
		{name: "generic not found", storeErr: store.ErrNotFound, wantErr: ErrPostNotFound},
		{name: "database error", storeErr: errDatabase, wantErr: errDatabase},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStore := &MockPostStore{}
			if tt.storeErr != nil {
				mockStore.On("GetByID", mock.Anything, int64(5)).Return(nil, tt.storeErr)
			} else {
				mockStore.On("GetByID", mock.Anything, int64(5)).Return(newTestPost(5), nil)
			}

			svc, err := NewPostService(mockStore, nil)
			require.NoError(t, err)

			post, err := svc.GetPostByID(ctx, 5)
			if tt.wantErr != nil {
				assert.Nil(t, post)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(5), post.ID)
		})
	}
}

func TestPostService_UpdatePost(t *testing.T) {
	ctx := context.Background()

	t.Run("not found is reported before validation", func(t *testing.T) {
		mockStore := &MockPostStore{}
		mockStore.On("GetByID", mock.Anything, int64(999999)).Return(nil, store.ErrPostNotFound)

		svc, err := NewPostService(mockStore, nil)
		require.NoError(t, err)

		_, err = svc.UpdatePost(ctx, 999999, "", "")
		assert.ErrorIs(t, err, ErrPostNotFound)
		assert.NotErrorIs(t, err, domain.ErrValidation)
		mockStore.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid payload on existing post", func(t *testing.T) {
		mockStore := &MockPostStore{}
		mockStore.On("GetByID", mock.Anything, int64(1)).Return(newTestPost(1), nil)

		svc, err := NewPostService(mockStore, nil)
		require.NoError(t, err)

		_, err = svc.UpdatePost(ctx, 1, "", "content")
		var validationErr *domain.ValidationError
		require.True(t, errors.As(err, &validationErr))
		assert.Equal(t, []string{domain.MsgTitleBlank}, validationErr.Messages)
	})

	t.Run("success", func(t *testing.T) {
		updatedAt := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)
		updated := newTestPost(1)
		updated.Title = "Updated Test Post"
		updated.UpdatedAt = &updatedAt

		mockStore := &MockPostStore{}
		mockStore.On("GetByID", mock.Anything, int64(1)).Return(newTestPost(1), nil)
		mockStore.On("Update", mock.Anything, int64(1), "Updated Test Post", updated.Content).Return(updated, nil)

		svc, err := NewPostService(mockStore, nil)
		require.NoError(t, err)

		got, err := svc.UpdatePost(ctx, 1, "Updated Test Post", updated.Content)
		require.NoError(t, err)
		assert.Equal(t, updated, got)
		mockStore.AssertExpectations(t)
	})

	t.Run("post removed concurrently", func(t *testing.T) {
		mockStore := &MockPostStore{}
		mockStore.On("GetByID", mock.Anything, int64(1)).Return(newTestPost(1), nil)
		mockStore.On("Update", mock.Anything, int64(1), "t", "c").Return(nil, store.ErrPostNotFound)

		svc, err := NewPostService(mockStore, nil)
		require.NoError(t, err)

		_, err = svc.UpdatePost(ctx, 1, "t", "c")
		assert.ErrorIs(t, err, ErrPostNotFound)
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		mockStore := &MockPostStore{}
		mockStore.On("GetByID", mock.Anything, int64(1)).Return(newTestPost(1), nil)
		mockStore.On("Update", mock.Anything, int64(1), "t", "c").Return(nil, errDatabase)

		svc, err := NewPostService(mockStore, nil)
		require.NoError(t, err)

		_, err = svc.UpdatePost(ctx, 1, "t", "c")
		var serviceErr *PostServiceError
		require.True(t, errors.As(err, &serviceErr))
		assert.Equal(t, "update_post", serviceErr.Operation)
	})
}

func TestPostService_DeletePost(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		storeErr error
		wantErr  error
	}{
		{name: "success"},
		{name: "not found", storeErr: store.ErrPostNotFound, wantErr: ErrPostNotFound},
		{name: "database error", storeErr: errDatabase, wantErr: errDatabase},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStore := &MockPostStore{}
			mockStore.On("Delete", mock.Anything, int64(3)).Return(tt.storeErr)

			svc, err := NewPostService(mockStore, nil)
			require.NoError(t, err)

			err = svc.DeletePost(ctx, 3)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPostService_GetAllPostsPaginated(t *testing.T) {
	ctx := context.Background()

	t.Run("shapes the page", func(t *testing.T) {
		mockStore := &MockPostStore{}
		items := []*domain.Post{newTestPost(11), newTestPost(12)}
		mockStore.On("ListPage", mock.Anything, 2, 10).
			Return(store.NewPostPage(items, 12, 2, 10), nil)

		svc, err := NewPostService(mockStore, nil)
		require.NoError(t, err)

		result, err := svc.GetAllPostsPaginated(ctx, 2, 10)
		require.NoError(t, err)
		assert.Equal(t, items, result.Data)
		assert.Equal(t, Pagination{TotalItems: 12, CurrentPage: 2, LastPage: 2, ItemsPerPage: 10}, result.Pagination)
	})

	t.Run("empty page has non-nil data", func(t *testing.T) {
		mockStore := &MockPostStore{}
		mockStore.On("ListPage", mock.Anything, 1, 10).
			Return(&store.PostPage{TotalItems: 0, TotalPages: 1, Page: 1, PageSize: 10}, nil)

		svc, err := NewPostService(mockStore, nil)
		require.NoError(t, err)

		result, err := svc.GetAllPostsPaginated(ctx, 1, 10)
		require.NoError(t, err)
		assert.NotNil(t, result.Data)
		assert.Empty(t, result.Data)
		assert.Equal(t, 1, result.Pagination.LastPage)
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		mockStore := &MockPostStore{}
		mockStore.On("ListPage", mock.Anything, 1, 10).Return(nil, errDatabase)

		svc, err := NewPostService(mockStore, nil)
		require.NoError(t, err)

		_, err = svc.GetAllPostsPaginated(ctx, 1, 10)
		var serviceErr *PostServiceError
		require.True(t, errors.As(err, &serviceErr))
		assert.ErrorIs(t, err, errDatabase)
	})
}

// TestPostService_Lifecycle runs the service against the in-memory store.
func TestPostService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	svc, err := NewPostService(memory.NewPostStore(nil), nil)
	require.NoError(t, err)

	created, err := svc.SavePost(ctx, "My Test Post", "This is the content of the test post.")
	require.NoError(t, err)

	got, err := svc.GetPostByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	updated, err := svc.UpdatePost(ctx, created.ID, "Updated", "Updated content")
	require.NoError(t, err)
	require.NotNil(t, updated.UpdatedAt)
	assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))

	for i := 0; i < 14; i++ {
		_, err := svc.SavePost(ctx, "Post", "Content")
		require.NoError(t, err)
	}

	page, err := svc.GetAllPostsPaginated(ctx, 1, 10)
	require.NoError(t, err)
	assert.Len(t, page.Data, 10)
	assert.Equal(t, Pagination{TotalItems: 15, CurrentPage: 1, LastPage: 2, ItemsPerPage: 10}, page.Pagination)

	require.NoError(t, svc.DeletePost(ctx, created.ID))
	_, err = svc.GetPostByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)
}
