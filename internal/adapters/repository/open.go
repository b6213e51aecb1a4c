// Package repository selects and opens the store named by the configuration.
package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vncsmyrnk/voteapp/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/voteapp/internal/adapters/repository/mongodb"
	"github.com/vncsmyrnk/voteapp/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/voteapp/internal/config"
	"github.com/vncsmyrnk/voteapp/internal/core/ports"
)

type Stores struct {
	Users    ports.UserRepository
	Polls    ports.PollRepository
	Comments ports.CommentRepository
	// Close releases the underlying connection.
	Close func()
}

func Open(ctx context.Context, cfg config.Config) (*Stores, error) {
	switch cfg.StoreDriver {
	case config.StoreMongo:
		client, err := mongodb.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.MongoDatabase)
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		return &Stores{
			Users:    mongodb.NewUserRepository(db),
			Polls:    mongodb.NewPollRepository(db),
			Comments: mongodb.NewCommentRepository(db),
			Close: func() {
				if err := client.Disconnect(context.Background()); err != nil {
					slog.Error("failed to disconnect from mongodb", "error", err)
				}
			},
		}, nil

	case config.StorePostgres:
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return &Stores{
			Users:    postgres.NewUserRepository(db),
			Polls:    postgres.NewPollRepository(db),
			Comments: postgres.NewCommentRepository(db),
			Close: func() {
				if err := db.Close(); err != nil {
					slog.Error("failed to close postgres", "error", err)
				}
			},
		}, nil

	case config.StoreMemory:
		slog.Warn("using the in-memory store; data is lost on restart")
		db := memory.NewDB()
		return &Stores{
			Users:    memory.NewUserRepository(db),
			Polls:    memory.NewPollRepository(db),
			Comments: memory.NewCommentRepository(db),
			Close:    func() {},
		}, nil
	}

	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
