// Package storage persists the companion conversation and mood log.
package storage

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/easeaico/virtual-companion/internal/types"
)

// Backend names accepted by Open.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Backend is a store that holds a connection.
type Backend interface {
	LoadMessages(ctx context.Context) ([]types.Message, error)
	SaveMessages(ctx context.Context, messages []types.Message) error
	LoadMoods(ctx context.Context) ([]types.MoodEntry, error)
	SaveMoods(ctx context.Context, moods []types.MoodEntry) error
	Close() error
}

// Options selects and configures a backend.
type Options struct {
	Backend       string
	UserID        string
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Open connects the configured backend.
func Open(ctx context.Context, opts Options) (Backend, error) {
	switch strings.ToLower(opts.Backend) {
	case BackendMemory, "":
		return NewMemory(), nil
	case BackendPostgres:
		return OpenPostgres(ctx, opts.DatabaseURL, opts.UserID)
	case BackendRedis:
		return OpenRedis(ctx, opts.RedisAddr, opts.RedisPassword, opts.RedisDB, opts.UserID)
	default:
		return nil, goerr.New("unknown storage backend", goerr.V("backend", opts.Backend))
	}
}
