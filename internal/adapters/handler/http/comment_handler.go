package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vncsmyrnk/voteapp/internal/core/domain"
	"github.com/vncsmyrnk/voteapp/internal/core/ports"
)

type CommentHandler struct {
	service ports.CommentService
}

func NewCommentHandler(service ports.CommentService) *CommentHandler {
	return &CommentHandler{
		service: service,
	}
}

type commentRequest struct {
	Content string `json:"content"`
}

// ListComments godoc
// @Summary      Lists the comments of a poll
// @Tags         comments
// @Produce      json
// @Param        id   path      string  true  "Poll id"
// @Success      200  {array}   domain.CommentView
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /comments/vote/{id} [get]
func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.service.List(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, comments)
}

// CreateComment godoc
// @Summary      Comments on a poll
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Poll id"
// @Param        body  body      commentRequest  true  "Comment"
// @Success      200   {object}  domain.CommentView
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /comments/vote/{id} [post]
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		respondError(w, r, domain.ErrUnauthenticated)
		return
	}

	var req commentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	comment, err := h.service.Create(r.Context(), ports.CreateCommentInput{
		PollID:  chi.URLParam(r, "id"),
		Content: req.Content,
		Author:  user,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, comment)
}

// UpdateComment godoc
// @Summary      Edits a comment
// @Description  Only the author may edit.
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Comment id"
// @Param        body  body      commentRequest  true  "New content"
// @Success      200   {object}  domain.CommentView
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /comments/{id} [put]
func (h *CommentHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		respondError(w, r, domain.ErrUnauthenticated)
		return
	}

	var req commentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	comment, err := h.service.Update(r.Context(), ports.UpdateCommentInput{
		CommentID: chi.URLParam(r, "id"),
		Content:   req.Content,
		Caller:    user,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, comment)
}

// DeleteComment godoc
// @Summary      Deletes a comment
// @Description  Only the author may delete.
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Comment id"
// @Success      200  {object}  MessageResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /comments/{id} [delete]
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		respondError(w, r, domain.ErrUnauthenticated)
		return
	}

	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id"), user); err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, MessageResponse{Message: "Comment deleted successfully"})
}
