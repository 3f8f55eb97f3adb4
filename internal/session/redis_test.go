package session

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "roicalc:result:abc", key("abc"))
}

func TestRedisStoreRejectsMalformedID(t *testing.T) {
	// The client is never dialled for an id that fails validation.
	s := NewRedisStore(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}), time.Minute)

	_, err := s.Get(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrNotFound)
}

func newMiniRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestRedisStoreRoundTrip(t *testing.T) {
	mr, client := newMiniRedis(t)
	ctx := context.Background()
	s := NewRedisStore(client, time.Minute)

	id, err := s.Put(ctx, sampleEntry())
	require.NoError(t, err)
	assert.True(t, validID(id))
	assert.True(t, mr.Exists(key(id)))
	assert.Equal(t, time.Minute, mr.TTL(key(id)))

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, sampleEntry().Answers, got.Answers)
	assert.Equal(t, sampleEntry().Results, got.Results)

	_, err = s.Get(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Check(ctx))
}

func TestRedisStoreExpiry(t *testing.T) {
	mr, client := newMiniRedis(t)
	ctx := context.Background()
	s := NewRedisStore(client, time.Minute)

	id, err := s.Put(ctx, sampleEntry())
	require.NoError(t, err)

	mr.FastForward(time.Minute + time.Second)

	_, err = s.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreCorruptValue(t *testing.T) {
	mr, client := newMiniRedis(t)
	s := NewRedisStore(client, time.Minute)

	id := "11111111-1111-4111-8111-111111111111"
	require.NoError(t, mr.Set(key(id), "{not json"))

	_, err := s.Get(context.Background(), id)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

// TestRedisStore runs against a live server when TEST_REDIS_URL is set.
func TestRedisStore(t *testing.T) {
	rawURL := os.Getenv("TEST_REDIS_URL")
	if rawURL == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	opt, err := redis.ParseURL(rawURL)
	require.NoError(t, err)
	client := redis.NewClient(opt)
	t.Cleanup(func() { client.Close() })

	ctx := context.Background()
	s := NewRedisStore(client, time.Minute)

	id, err := s.Put(ctx, sampleEntry())
	require.NoError(t, err)
	t.Cleanup(func() { client.Del(ctx, key(id)) })

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, sampleEntry().Results, got.Results)

	ttl, err := client.TTL(ctx, key(id)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	_, err = s.Get(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreCheckUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "localhost:1",
		DialTimeout: 10 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { client.Close() })

	assert.Error(t, NewRedisStore(client, time.Minute).Check(context.Background()))
}
