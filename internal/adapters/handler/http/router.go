// Package http exposes the services as a JSON API under /api.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/vncsmyrnk/voteapp/docs"
	"github.com/vncsmyrnk/voteapp/internal/core/ports"
)

const apiVersion = "1.0.0"

type Handlers struct {
	Auth     *AuthHandler
	Users    *UserHandler
	Polls    *PollHandler
	Votes    *VoteHandler
	Comments *CommentHandler
}

func NewHandler(h Handlers, verifier ports.TokenVerifier, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler)

	authenticated := RequireAuth(verifier)

	r.Route("/api", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]string{
				"message": "Vote App API",
				"version": apiVersion,
			})
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.With(authenticated).Get("/me", h.Users.GetMe)
		})

		r.Route("/votes", func(r chi.Router) {
			r.Get("/", h.Polls.ListPolls)
			r.Get("/best/today", h.Polls.BestToday)
			r.Get("/{id}", h.Polls.GetPoll)

			r.Group(func(r chi.Router) {
				r.Use(authenticated)
				r.Post("/", h.Polls.CreatePoll)
				r.Post("/{id}/vote", h.Votes.VoteOnPoll)
			})
		})

		r.Route("/comments", func(r chi.Router) {
			r.Get("/vote/{id}", h.Comments.ListComments)

			r.Group(func(r chi.Router) {
				r.Use(authenticated)
				r.Post("/vote/{id}", h.Comments.CreateComment)
				r.Put("/{id}", h.Comments.UpdateComment)
				r.Delete("/{id}", h.Comments.DeleteComment)
			})
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	return r
}
