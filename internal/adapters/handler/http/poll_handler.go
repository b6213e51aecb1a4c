package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vncsmyrnk/voteapp/internal/core/domain"
	"github.com/vncsmyrnk/voteapp/internal/core/ports"
)

type PollHandler struct {
	service ports.PollService
}

func NewPollHandler(service ports.PollService) *PollHandler {
	return &PollHandler{
		service: service,
	}
}

type createPollRequest struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	Options     []string   `json:"options" validate:"required"`
	IsAnonymous bool       `json:"isAnonymous"`
	StartTime   *Timestamp `json:"startTime" validate:"required"`
	EndTime     *Timestamp `json:"endTime" validate:"required"`
}

// ListPolls godoc
// @Summary      Lists every poll
// @Description  Newest first, with status, vote totals and creator.
// @Tags         votes
// @Produce      json
// @Success      200  {array}  domain.PollView
// @Router       /votes [get]
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	polls, err := h.service.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, polls)
}

// CreatePoll godoc
// @Summary      Creates a poll
// @Description  Needs a title, at least two options and an end time after the start time.
// @Tags         votes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPollRequest  true  "Poll"
// @Success      200   {object}  domain.PollView
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Router       /votes [post]
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		respondError(w, r, domain.ErrUnauthenticated)
		return
	}

	var req createPollRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	poll, err := h.service.Create(r.Context(), ports.CreatePollInput{
		Title:       req.Title,
		Description: req.Description,
		Options:     req.Options,
		IsAnonymous: req.IsAnonymous,
		StartTime:   req.StartTime.Time,
		EndTime:     req.EndTime.Time,
		Creator:     user,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, poll)
}

// GetPoll godoc
// @Summary      Returns a poll
// @Description  Every call counts as a view. Voters are listed only for non-anonymous polls.
// @Tags         votes
// @Produce      json
// @Param        id   path      string  true  "Poll id"
// @Success      200  {object}  domain.PollView
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /votes/{id} [get]
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	poll, err := h.service.GetPoll(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, poll)
}

// BestToday godoc
// @Summary      Top three polls created today
// @Description  Ranked by views plus three points per ballot.
// @Tags         votes
// @Produce      json
// @Success      200  {array}  domain.PollView
// @Router       /votes/best/today [get]
func (h *PollHandler) BestToday(w http.ResponseWriter, r *http.Request) {
	polls, err := h.service.BestToday(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, polls)
}
