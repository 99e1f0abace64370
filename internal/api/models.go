package api

import (
	"github.com/phrazzld/blog-api/internal/domain"
	"github.com/phrazzld/blog-api/internal/service"
)

// Common request/response structures

// PostRequest is the payload of the create and update endpoints.
type PostRequest struct {
	Title   string `json:"title"   validate:"required,max=255"`
	Content string `json:"content" validate:"required"`
}

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	Token string `json:"token"`
}

// PostResponse is the payload of the create and get endpoints.
type PostResponse struct {
	ID        int64   `json:"id"`
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	CreatedAt *string `json:"created_at"`
}

// PostDetailResponse is the payload of the update endpoint and the list
// items. UpdatedAt is null until the post is first updated.
type PostDetailResponse struct {
	ID        int64   `json:"id"`
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	CreatedAt *string `json:"created_at"`
	UpdatedAt *string `json:"updated_at"`
}

// PaginationResponse carries page metadata of a list response.
type PaginationResponse struct {
	TotalItems   int64 `json:"total_items"`
	CurrentPage  int   `json:"current_page"`
	LastPage     int   `json:"last_page"`
	ItemsPerPage int   `json:"items_per_page"`
}

// PostListResponse is the payload of the list endpoint.
type PostListResponse struct {
	Data       []PostDetailResponse `json:"data"`
	Pagination PaginationResponse   `json:"pagination"`
}

// StatusResponse is a bare status payload, used for delete and not-found.
type StatusResponse struct {
	Status string `json:"status"`
}

// ValidationErrorResponse lists every validation failure of a request.
type ValidationErrorResponse struct {
	Status string   `json:"status"`
	Errors []string `json:"errors"`
}

func postToResponse(post *domain.Post) PostResponse {
	return PostResponse{
		ID:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		CreatedAt: post.FormattedCreatedAt(),
	}
}

func postToDetailResponse(post *domain.Post) PostDetailResponse {
	return PostDetailResponse{
		ID:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		CreatedAt: post.FormattedCreatedAt(),
		UpdatedAt: post.FormattedUpdatedAt(),
	}
}

func pageToResponse(page *service.PaginatedPosts) PostListResponse {
	data := make([]PostDetailResponse, 0, len(page.Data))
	for _, post := range page.Data {
		data = append(data, postToDetailResponse(post))
	}
	return PostListResponse{
		Data: data,
		Pagination: PaginationResponse{
			TotalItems:   page.Pagination.TotalItems,
			CurrentPage:  page.Pagination.CurrentPage,
			LastPage:     page.Pagination.LastPage,
			ItemsPerPage: page.Pagination.ItemsPerPage,
		},
	}
}
