// @title           Vote App API
// @version         1.0.0
// @description     Timed polls with single-ballot voting and comments.
// @BasePath        /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the token.
package main

import (
	"context"
	"errors"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/vncsmyrnk/voteapp/internal/adapters/handler/http"
	"github.com/vncsmyrnk/voteapp/internal/adapters/hasher"
	"github.com/vncsmyrnk/voteapp/internal/adapters/repository"
	"github.com/vncsmyrnk/voteapp/internal/adapters/token"
	"github.com/vncsmyrnk/voteapp/internal/config"
	"github.com/vncsmyrnk/voteapp/internal/core/services"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Error("failed to load .env file", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	st, err := repository.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	tokens, err := token.NewJWTCodec(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.TokenTTL)
	if err != nil {
		return err
	}

	authSvc := services.NewAuthService(st.Users, hasher.NewBcryptHasher(0), tokens, nil)
	pollSvc := services.NewPollService(st.Polls, st.Users, nil)
	voteSvc := services.NewVoteService(st.Polls, st.Users, nil)
	commentSvc := services.NewCommentService(st.Comments, st.Polls, st.Users, nil)

	handler := http.NewHandler(http.Handlers{
		Auth:     http.NewAuthHandler(authSvc),
		Users:    http.NewUserHandler(),
		Polls:    http.NewPollHandler(pollSvc),
		Votes:    http.NewVoteHandler(voteSvc),
		Comments: http.NewCommentHandler(commentSvc),
	}, services.NewTokenVerifier(tokens, st.Users), cfg.CORSOrigins)

	server := &stdhttp.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", server.Addr, "store", cfg.StoreDriver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	slog.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
