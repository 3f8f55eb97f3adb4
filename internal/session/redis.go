package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "roicalc:result:"

// RedisStore keeps entries as JSON values with a TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func key(id string) string {
	return keyPrefix + id
}

func (s *RedisStore) Put(ctx context.Context, e Entry) (string, error) {
	e.ID = newID()
	data, err := json.Marshal(e)
	if err != nil {
		return "", fmt.Errorf("encoding result: %w", err)
	}
	if err := s.client.Set(ctx, key(e.ID), data, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("storing result: %w", err)
	}
	return e.ID, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (Entry, error) {
	if !validID(id) {
		return Entry{}, ErrNotFound
	}
	data, err := s.client.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, fmt.Errorf("loading result: %w", err)
	}

	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return Entry{}, fmt.Errorf("decoding result: %w", err)
	}
	return e, nil
}

// Check pings the server for the health endpoint.
func (s *RedisStore) Check(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
