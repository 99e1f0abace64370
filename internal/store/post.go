package store

import (
	"context"

	"github.com/phrazzld/blog-api/internal/domain"
)

// PostStore defines the interface for post data persistence.
// Every method is a single atomic unit against the backend.
type PostStore interface {
	// Create assigns a new unique ID and a creation timestamp, persists the
	// post and returns it. Returns validation errors if the data is invalid.
	Create(ctx context.Context, title, content string) (*domain.Post, error)

	// GetByID retrieves a post by its ID.
	// Returns ErrPostNotFound if the post does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Post, error)

	// Update replaces title and content of an existing post and stamps its
	// update time. Returns ErrPostNotFound if the post does not exist.
	Update(ctx context.Context, id int64, title, content string) (*domain.Post, error)

	// Delete removes a post permanently.
	// Returns ErrPostNotFound if the post does not exist.
	Delete(ctx context.Context, id int64) error

	// ListPage returns one page of posts ordered by ID ascending together
	// with the total count. page is 1-based; see NormalizePage.
	// A page past the end yields no items but accurate totals.
	ListPage(ctx context.Context, page, pageSize int) (*PostPage, error)
}

// PostPage is a bounded slice of posts plus the totals needed to paginate.
type PostPage struct {
	Items      []*domain.Post
	TotalItems int64
	TotalPages int
	Page       int
	PageSize   int
}

// NormalizePage clamps a requested page number and page size to at least 1.
func NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	return page, pageSize
}

// PageOffset returns the number of rows to skip for a normalized page, and
// false when the page starts past the last of totalItems rows. The page
// number is compared against the filled page count before multiplying, so
// huge page numbers never overflow into a valid offset.
func PageOffset(page, pageSize int, totalItems int64) (int, bool) {
	if int64(page-1) >= filledPages(totalItems, pageSize) {
		return 0, false
	}
	return (page - 1) * pageSize, true
}

// filledPages is the number of pages holding at least one of totalItems rows.
func filledPages(totalItems int64, pageSize int) int64 {
	if totalItems <= 0 {
		return 0
	}
	size := int64(pageSize)
	pages := totalItems / size
	if totalItems%size != 0 {
		pages++
	}
	return pages
}

// TotalPages computes the page count for total items. An empty result set
// still has a single (empty) page.
func TotalPages(totalItems int64, pageSize int) int {
	if pageSize < 1 {
		pageSize = 1
	}
	pages := filledPages(totalItems, pageSize)
	if pages < 1 {
		return 1
	}
	return int(pages)
}

// NewPostPage assembles a PostPage, substituting an empty slice for nil items.
func NewPostPage(items []*domain.Post, totalItems int64, page, pageSize int) *PostPage {
	if items == nil {
		items = []*domain.Post{}
	}
	return &PostPage{
		Items:      items,
		TotalItems: totalItems,
		TotalPages: TotalPages(totalItems, pageSize),
		Page:       page,
		PageSize:   pageSize,
	}
}
