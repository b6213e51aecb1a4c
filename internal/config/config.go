// Package config reads the service configuration from the process environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

var supportedAlgorithms = []string{"HS256", "HS384", "HS512"}

type Config struct {
	Port          int
	StoreDriver   string
	MongoURI      string
	MongoDatabase string
	DatabaseURL   string
	JWTSecret     string
	JWTAlgorithm  string
	TokenTTL      time.Duration
	CORSOrigins   []string
	LogLevel      slog.Level
}

// Load builds a Config from environment variables, applying defaults and validating the result.
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	env := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		StoreDriver:   env("STORE_DRIVER", StoreMongo),
		MongoURI:      env("MONGO_URI", "mongodb://localhost:27017/voteApp"),
		MongoDatabase: env("MONGO_DATABASE", "voteApp"),
		DatabaseURL:   env("DATABASE_URL", ""),
		JWTSecret:     getenv("JWT_SECRET"),
		JWTAlgorithm:  env("JWT_ALGORITHM", "HS256"),
	}

	port, err := strconv.Atoi(env("PORT", "8080"))
	if err != nil || port <= 0 || port > 65535 {
		return Config{}, fmt.Errorf("invalid PORT %q", getenv("PORT"))
	}
	cfg.Port = port

	minutes, err := strconv.Atoi(env("ACCESS_TOKEN_EXPIRE_MINUTES", "43200"))
	if err != nil || minutes <= 0 {
		return Config{}, fmt.Errorf("invalid ACCESS_TOKEN_EXPIRE_MINUTES %q", getenv("ACCESS_TOKEN_EXPIRE_MINUTES"))
	}
	cfg.TokenTTL = time.Duration(minutes) * time.Minute

	for _, origin := range strings.Split(env("CORS_ORIGINS", "http://localhost:3000"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(env("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET required")
	}

	supported := false
	for _, alg := range supportedAlgorithms {
		if c.JWTAlgorithm == alg {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("unsupported JWT_ALGORITHM %q (want one of %s)", c.JWTAlgorithm, strings.Join(supportedAlgorithms, ", "))
	}

	switch c.StoreDriver {
	case StoreMongo, StoreMemory:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL required when STORE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	return nil
}

func (c Config) Addr() string {
	return "0.0.0.0:" + strconv.Itoa(c.Port)
}
