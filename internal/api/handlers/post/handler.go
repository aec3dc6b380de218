package post

import (
	"log/slog"
	"net/http"

	"Blogsync/internal/api/handlers"
	"Blogsync/internal/core/posts"

	"github.com/go-chi/chi/v5"
)

// Handler serves the /posts resource
type Handler struct {
	service posts.Service
	logger  *slog.Logger
}

// NewHandler creates a post handler
// logger may be nil, in which case slog.Default() is used
func NewHandler(service posts.Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleList handles GET /posts
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListPosts(r.Context())
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}
	if result == nil {
		result = []posts.Post{}
	}
	handlers.WriteJSON(w, http.StatusOK, result)
}

// HandleGet handles GET /posts/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	post, err := h.service.GetPost(r.Context(), pathID(r))
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, post)
}

// HandleCreate handles POST /posts
// Body: {"title", "body", "userId"}; the server assigns the id
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req posts.CreatePostRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	post, err := h.service.CreatePost(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}
	handlers.WriteJSON(w, http.StatusCreated, post)
}

// HandlePatch handles PATCH /posts/{id}
// Absent fields are left untouched
func (h *Handler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	var req posts.PatchPostRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	post, err := h.service.PatchPost(r.Context(), pathID(r), req)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, post)
}

// HandlePut handles PUT /posts/{id}
// Body is the full representation; the path id wins over any body id
func (h *Handler) HandlePut(w http.ResponseWriter, r *http.Request) {
	var req posts.PutPostRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	post, err := h.service.PutPost(r.Context(), pathID(r), req)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, post)
}

// HandleDelete handles DELETE /posts/{id}
// Response: {}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeletePost(r.Context(), pathID(r)); err != nil {
		handleServiceError(w, h.logger, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, struct{}{})
}

func pathID(r *http.Request) posts.PostID {
	return posts.PostID(chi.URLParam(r, "id"))
}
