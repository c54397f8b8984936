package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unreachableRedis points at a port nothing listens on.
func unreachableRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 200 * time.Millisecond,
	})
}

func TestRedisErrorsAreNotMisses(t *testing.T) {
	r := NewRedisFromClient(unreachableRedis())
	defer r.Close()
	ctx := context.Background()

	require.Error(t, r.Ping(ctx))

	_, err := r.Get(ctx, "match:NA1_1")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrMiss), "connection failure must not look like a miss")
	assert.Contains(t, err.Error(), "match:NA1_1")

	assert.Error(t, r.Set(ctx, "match:NA1_1", []byte("x"), time.Minute))
}

func TestNewRedisFailsWithoutServer(t *testing.T) {
	_, err := NewRedis(context.Background(), RedisOptions{Host: "127.0.0.1", Port: "1"})
	assert.Error(t, err)
}
