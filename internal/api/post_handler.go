package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/blog-api/internal/api/middleware"
	"github.com/phrazzld/blog-api/internal/api/shared"
	"github.com/phrazzld/blog-api/internal/config"
	"github.com/phrazzld/blog-api/internal/platform/logger"
	"github.com/phrazzld/blog-api/internal/service"
)

// Query parameters of the list endpoint.
const (
	pageParam  = "page"
	limitParam = "limit"
	idParam    = "id"
)

// PostHandler handles post-related HTTP requests
type PostHandler struct {
	postService service.PostService
	pagination  config.PaginationConfig
	logger      *slog.Logger
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(
	postService service.PostService,
	pagination config.PaginationConfig,
	logger *slog.Logger,
) *PostHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if pagination.DefaultLimit < 1 {
		pagination.DefaultLimit = 10
	}
	if pagination.MaxLimit < pagination.DefaultLimit {
		pagination.MaxLimit = pagination.DefaultLimit
	}
	return &PostHandler{
		postService: postService,
		pagination:  pagination,
		logger:      logger.With(slog.String("component", "post_handler")),
	}
}

// decodePostRequest reads a PostRequest. A malformed or empty body yields an
// empty request, which then fails validation on both fields. Only an
// oversized body is returned as an error.
func (h *PostHandler) decodePostRequest(w http.ResponseWriter, r *http.Request) (PostRequest, error) {
	var req PostRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		if shared.IsBodyTooLarge(err) {
			return PostRequest{}, err
		}
		logger.FromContextOrDefault(r.Context(), h.logger).
			Debug("treating undecodable body as empty payload", slog.String("error", err.Error()))
		return PostRequest{}, nil
	}
	return req, nil
}

// requestLogger returns the request logger annotated with the authenticated
// principal, if any.
func (h *PostHandler) requestLogger(r *http.Request) *slog.Logger {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	if username, ok := middleware.GetUsername(r); ok {
		log = log.With(slog.String("username", username))
	}
	return log
}

// CreatePost handles POST /api/posts requests
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	req, err := h.decodePostRequest(w, r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		if messages, ok := validationMessages(err); ok {
			respondValidationErrors(w, r, messages)
			return
		}
		HandleAPIError(w, r, err)
		return
	}

	post, err := h.postService.SavePost(r.Context(), req.Title, req.Content)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	h.requestLogger(r).Info("post created", slog.Int64("post_id", post.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, postToResponse(post))
}

// ListPosts handles GET /api/posts requests
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	page := getQueryInt(r, pageParam, 1)
	limit := getQueryInt(r, limitParam, h.pagination.DefaultLimit)
	if limit > h.pagination.MaxLimit {
		limit = h.pagination.MaxLimit
	}

	result, err := h.postService.GetAllPostsPaginated(r.Context(), page, limit)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, pageToResponse(result))
}

// GetPost handles GET /api/posts/{id} requests
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, idParam)
	if err != nil {
		respondPostNotFound(w, r)
		return
	}

	post, err := h.postService.GetPostByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, postToResponse(post))
}

// UpdatePost handles PUT /api/posts/{id} requests
//
// Both fields are required. The service checks that the post exists before
// validating the payload, so an unknown ID is a 404 even with a bad body.
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, idParam)
	if err != nil {
		respondPostNotFound(w, r)
		return
	}

	req, err := h.decodePostRequest(w, r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	post, err := h.postService.UpdatePost(r.Context(), id, req.Title, req.Content)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	h.requestLogger(r).Info("post updated", slog.Int64("post_id", post.ID))
	shared.RespondWithJSON(w, r, http.StatusOK, postToDetailResponse(post))
}

// DeletePost handles DELETE /api/posts/{id} requests
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, idParam)
	if err != nil {
		respondPostNotFound(w, r)
		return
	}

	if err := h.postService.DeletePost(r.Context(), id); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	h.requestLogger(r).Info("post deleted", slog.Int64("post_id", id))
	shared.RespondWithJSON(w, r, http.StatusOK, StatusResponse{Status: MsgPostDeleted})
}
