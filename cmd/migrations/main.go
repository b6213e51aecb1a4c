package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/vncsmyrnk/voteapp/internal/adapters/repository/mongodb"
	"github.com/vncsmyrnk/voteapp/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/voteapp/internal/config"
)

// Usage:
//
//	migrations [-store postgres] <name>   applies the postgres migration whose file ends with <name>.sql
//	migrations -store mongo               creates the mongodb indexes
func main() {
	store := flag.String("store", config.StorePostgres, "target store: postgres or mongo")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	switch *store {
	case config.StorePostgres:
		if flag.NArg() < 1 {
			log.Fatal("a migration name is required.")
		}
		if err := migratePostgres(ctx, flag.Arg(0)); err != nil {
			log.Fatal(err)
		}
		fmt.Println("Migration file executed successfully.")

	case config.StoreMongo:
		if err := migrateMongo(ctx); err != nil {
			log.Fatal(err)
		}
		fmt.Println("MongoDB indexes created successfully.")

	default:
		log.Fatalf("unsupported store %q", *store)
	}
}

func migratePostgres(ctx context.Context, name string) error {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		return errors.New("DATABASE_URL is required")
	}

	content, err := postgres.MigrationFile(name)
	if err != nil {
		return err
	}

	db, err := postgres.Open(ctx, url)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, string(content)); err != nil {
		return fmt.Errorf("failed to execute SQL file: %w", err)
	}
	return nil
}

func migrateMongo(ctx context.Context) error {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017/voteApp"
	}
	database := os.Getenv("MONGO_DATABASE")
	if database == "" {
		database = "voteApp"
	}

	client, err := mongodb.Connect(ctx, uri)
	if err != nil {
		return err
	}
	defer client.Disconnect(context.Background())

	return mongodb.EnsureIndexes(ctx, client.Database(database))
}
