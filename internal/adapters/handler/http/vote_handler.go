package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vncsmyrnk/voteapp/internal/core/domain"
	"github.com/vncsmyrnk/voteapp/internal/core/ports"
)

type VoteHandler struct {
	service ports.VoteService
}

func NewVoteHandler(service ports.VoteService) *VoteHandler {
	return &VoteHandler{
		service: service,
	}
}

type voteRequest struct {
	OptionIndex *int `json:"optionIndex" validate:"required"`
}

// VoteOnPoll godoc
// @Summary      Casts a ballot
// @Description  One ballot per user and poll, only while the poll is active.
// @Tags         votes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Poll id"
// @Param        body  body      voteRequest  true  "Chosen option"
// @Success      200   {object}  domain.PollView
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /votes/{id}/vote [post]
func (h *VoteHandler) VoteOnPoll(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		respondError(w, r, domain.ErrUnauthenticated)
		return
	}

	var req voteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	poll, err := h.service.Vote(r.Context(), ports.VoteInput{
		PollID:      chi.URLParam(r, "id"),
		OptionIndex: *req.OptionIndex,
		UserID:      user.ID,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, poll)
}
