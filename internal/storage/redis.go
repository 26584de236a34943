package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/m-mizutani/goerr/v2"

	"github.com/easeaico/virtual-companion/internal/types"
)

// Redis stores each collection as one JSON document per user.
type Redis struct {
	client *redis.Client
	userID string
}

// OpenRedis connects to addr and verifies the connection.
func OpenRedis(ctx context.Context, addr, password string, db int, userID string) (*Redis, error) {
	if addr == "" {
		return nil, goerr.New("redis address is required")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, goerr.Wrap(err, "failed to connect to redis", goerr.V("addr", addr))
	}
	return NewRedis(client, userID), nil
}

// NewRedis wraps an existing client.
func NewRedis(client *redis.Client, userID string) *Redis {
	return &Redis{client: client, userID: userID}
}

func (r *Redis) messagesKey() string {
	return fmt.Sprintf("companion:%s:messages", r.userID)
}

func (r *Redis) moodsKey() string {
	return fmt.Sprintf("companion:%s:moods", r.userID)
}

func (r *Redis) LoadMessages(ctx context.Context) ([]types.Message, error) {
	var messages []types.Message
	if err := r.load(ctx, r.messagesKey(), &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *Redis) SaveMessages(ctx context.Context, messages []types.Message) error {
	return r.save(ctx, r.messagesKey(), messages)
}

func (r *Redis) LoadMoods(ctx context.Context) ([]types.MoodEntry, error) {
	var moods []types.MoodEntry
	if err := r.load(ctx, r.moodsKey(), &moods); err != nil {
		return nil, err
	}
	return moods, nil
}

func (r *Redis) SaveMoods(ctx context.Context, moods []types.MoodEntry) error {
	return r.save(ctx, r.moodsKey(), moods)
}

func (r *Redis) load(ctx context.Context, key string, dst any) error {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return goerr.Wrap(err, "failed to get collection", goerr.V("key", key))
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return goerr.Wrap(err, "failed to unmarshal collection", goerr.V("key", key))
	}
	return nil
}

func (r *Redis) save(ctx context.Context, key string, src any) error {
	data, err := json.Marshal(src)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal collection", goerr.V("key", key))
	}
	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return goerr.Wrap(err, "failed to set collection", goerr.V("key", key))
	}
	return nil
}

func (r *Redis) Close() error {
	if err := r.client.Close(); err != nil {
		return goerr.Wrap(err, "failed to close redis client")
	}
	return nil
}
