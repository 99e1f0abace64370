package testutils

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/phrazzld/blog-api/internal/domain"
	"github.com/phrazzld/blog-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// PostStoreFactory returns a fresh, empty store for one subtest.
type PostStoreFactory func(t *testing.T) store.PostStore

// RunPostStoreContract runs the behavioral contract every store.PostStore
// implementation must satisfy. newStore is called once per subtest and must
// hand back an empty store.
func RunPostStoreContract(t *testing.T, newStore PostStoreFactory) {
	t.Helper()

	t.Run("create assigns id and creation time", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		post, err := s.Create(ctx, "My Valid Test Post", "This is the content of the valid test post.")
		require.NoError(t, err)
		require.NotNil(t, post)

		assert.Positive(t, post.ID)
		assert.Equal(t, "My Valid Test Post", post.Title)
		assert.Equal(t, "This is the content of the valid test post.", post.Content)
		assert.False(t, post.CreatedAt.IsZero(), "CreatedAt should be set")
		assert.Nil(t, post.UpdatedAt, "UpdatedAt should be absent until the first update")

		second, err := s.Create(ctx, "Second", "Second content")
		require.NoError(t, err)
		assert.Greater(t, second.ID, post.ID, "IDs should increase")
	})

	t.Run("create rejects invalid data", func(t *testing.T) {
		s := newStore(t)

		post, err := s.Create(context.Background(), "", "")
		assert.Nil(t, post)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrValidation), "expected validation error, got %v", err)
	})

	t.Run("get returns the stored post", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		created := MustCreatePost(ctx, t, s, "My Test Post", "This is the content of the test post.")

		got, err := s.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, created.Title, got.Title)
		assert.Equal(t, created.Content, got.Content)
		assert.True(t, created.CreatedAt.Equal(got.CreatedAt),
			"CreatedAt mismatch: created %v, got %v", created.CreatedAt, got.CreatedAt)
		assert.Nil(t, got.UpdatedAt)

		again, err := s.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, got, again, "repeated reads should be identical")
	})

	t.Run("get unknown id", func(t *testing.T) {
		s := newStore(t)

		post, err := s.GetByID(context.Background(), 999999)
		assert.Nil(t, post)
		assert.ErrorIs(t, err, store.ErrPostNotFound)
	})

	t.Run("update replaces fields and stamps update time", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		created := MustCreatePost(ctx, t, s, "My Test Post", "This is the content of the test post.")

		updated, err := s.Update(ctx, created.ID, "Updated Test Post", "This is the updated content of the test post.")
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "Updated Test Post", updated.Title)
		assert.Equal(t, "This is the updated content of the test post.", updated.Content)
		assert.True(t, created.CreatedAt.Equal(updated.CreatedAt), "CreatedAt must not change")
		require.NotNil(t, updated.UpdatedAt)
		assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt), "UpdatedAt must not precede CreatedAt")

		got, err := s.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Updated Test Post", got.Title)
		require.NotNil(t, got.UpdatedAt)
		assert.True(t, updated.UpdatedAt.Equal(*got.UpdatedAt))
	})

	t.Run("update unknown id", func(t *testing.T) {
		s := newStore(t)

		post, err := s.Update(context.Background(), 999999, "title", "content")
		assert.Nil(t, post)
		assert.ErrorIs(t, err, store.ErrPostNotFound)
	})

	t.Run("update rejects invalid data", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		created := MustCreatePost(ctx, t, s, "title", "content")

		_, err := s.Update(ctx, created.ID, "", "content")
		assert.ErrorIs(t, err, domain.ErrValidation)

		got, err := s.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "title", got.Title, "failed update must not modify the post")
	})

	t.Run("delete removes the post", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		created := MustCreatePost(ctx, t, s, "title", "content")

		require.NoError(t, s.Delete(ctx, created.ID))

		_, err := s.GetByID(ctx, created.ID)
		assert.ErrorIs(t, err, store.ErrPostNotFound)

		assert.ErrorIs(t, s.Delete(ctx, created.ID), store.ErrPostNotFound,
			"deleting twice should report not found")
	})

	t.Run("ids are not reused after delete", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		first := MustCreatePost(ctx, t, s, "first", "content")
		require.NoError(t, s.Delete(ctx, first.ID))

		second := MustCreatePost(ctx, t, s, "second", "content")
		assert.Greater(t, second.ID, first.ID)
	})

	t.Run("list pages in id order with totals", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		var ids []int64
		for i := 1; i <= 25; i++ {
			p := MustCreatePost(ctx, t, s, fmt.Sprintf("Post %d", i), fmt.Sprintf("Content %d", i))
			ids = append(ids, p.ID)
		}

		page, err := s.ListPage(ctx, 1, 10)
		require.NoError(t, err)
		assert.Len(t, page.Items, 10)
		assert.Equal(t, int64(25), page.TotalItems)
		assert.Equal(t, 3, page.TotalPages)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 10, page.PageSize)
		for i, item := range page.Items {
			assert.Equal(t, ids[i], item.ID, "items should be ordered by id")
		}

		last, err := s.ListPage(ctx, 3, 10)
		require.NoError(t, err)
		require.Len(t, last.Items, 5)
		assert.Equal(t, ids[20], last.Items[0].ID)
		assert.Equal(t, ids[24], last.Items[4].ID)

		beyond, err := s.ListPage(ctx, 4, 10)
		require.NoError(t, err)
		assert.NotNil(t, beyond.Items)
		assert.Empty(t, beyond.Items)
		assert.Equal(t, int64(25), beyond.TotalItems, "totals stay accurate past the last page")
		assert.Equal(t, 3, beyond.TotalPages)
	})

	t.Run("list clamps page and page size", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		first := MustCreatePost(ctx, t, s, "one", "content")
		MustCreatePost(ctx, t, s, "two", "content")

		page, err := s.ListPage(ctx, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 1, page.PageSize)
		require.Len(t, page.Items, 1)
		assert.Equal(t, first.ID, page.Items[0].ID)
		assert.Equal(t, int64(2), page.TotalItems)
		assert.Equal(t, 2, page.TotalPages)
	})

	t.Run("list huge page numbers are past the end", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		for i := 1; i <= 3; i++ {
			MustCreatePost(ctx, t, s, fmt.Sprintf("Post %d", i), "content")
		}

		tests := []struct {
			name     string
			page     int
			pageSize int
		}{
			{name: "max page", page: math.MaxInt, pageSize: 2},
			// (page-1)*pageSize wraps to 0 on 64-bit ints
			{name: "wrapping offset", page: math.MaxInt/2 + 2, pageSize: 4},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				page, err := s.ListPage(ctx, tc.page, tc.pageSize)
				require.NoError(t, err)
				assert.NotNil(t, page.Items)
				assert.Empty(t, page.Items)
				assert.Equal(t, tc.page, page.Page)
				assert.Equal(t, int64(3), page.TotalItems)
			})
		}

		all, err := s.ListPage(ctx, 1, math.MaxInt)
		require.NoError(t, err)
		assert.Len(t, all.Items, 3, "huge page size returns every post")
		assert.Equal(t, 1, all.TotalPages)
	})

	t.Run("list empty store", func(t *testing.T) {
		s := newStore(t)

		page, err := s.ListPage(context.Background(), 1, 10)
		require.NoError(t, err)
		assert.Empty(t, page.Items)
		assert.Equal(t, int64(0), page.TotalItems)
		assert.Equal(t, 1, page.TotalPages)
	})

	t.Run("list includes update time", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		created := MustCreatePost(ctx, t, s, "title", "content")
		_, err := s.Update(ctx, created.ID, "new title", "new content")
		require.NoError(t, err)

		page, err := s.ListPage(ctx, 1, 10)
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "new title", page.Items[0].Title)
		assert.NotNil(t, page.Items[0].UpdatedAt)
	})
}

// MustCreatePost creates a post through s and fails the test on error.
func MustCreatePost(ctx context.Context, t *testing.T, s store.PostStore, title, content string) *domain.Post {
	t.Helper()
	post, err := s.Create(ctx, title, content)
	require.NoError(t, err, "failed to create post")
	return post
}
