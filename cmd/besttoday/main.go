// Command besttoday prints the day's three most popular polls as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/vncsmyrnk/voteapp/internal/adapters/repository"
	"github.com/vncsmyrnk/voteapp/internal/config"
	"github.com/vncsmyrnk/voteapp/internal/core/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Config{}
	flag.StringVar(&cfg.StoreDriver, "store", envOr("STORE_DRIVER", config.StoreMongo), "Store driver: mongo or postgres")
	flag.StringVar(&cfg.MongoURI, "mongo-uri", envOr("MONGO_URI", "mongodb://localhost:27017/voteApp"), "MongoDB connection URI")
	flag.StringVar(&cfg.MongoDatabase, "mongo-db", envOr("MONGO_DATABASE", "voteApp"), "MongoDB database name")
	flag.StringVar(&cfg.DatabaseURL, "database-url", os.Getenv("DATABASE_URL"), "Postgres connection URL")
	flag.Parse()

	// Use a timeout for the job execution to prevent it from hanging indefinitely
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	st, err := repository.Open(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer st.Close()

	best, err := services.NewPollService(st.Polls, st.Users, nil).BestToday(ctx)
	if err != nil {
		log.Fatalf("Error ranking polls: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(best); err != nil {
		log.Fatal(err)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
