package idempotency

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb, err := NewRedisClient(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	return NewRedisStore(rdb, time.Minute), mr
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisClient(context.Background(), "redis://"+addr)
	assert.Error(t, err)

	_, err = NewRedisClient(context.Background(), "not a url")
	assert.Error(t, err)
}

func TestRedisStore_Lifecycle(t *testing.T) {
	s, mr := newRedisStore(t)
	ctx := context.Background()

	res, err := s.Begin(ctx, "k1", "fp-a")
	require.NoError(t, err)
	assert.Equal(t, StateNew, res.State)
	assert.True(t, mr.Exists(keyPrefix+"k1"))
	assert.Equal(t, time.Minute, mr.TTL(keyPrefix+"k1"))

	res, err = s.Begin(ctx, "k1", "fp-a")
	require.NoError(t, err)
	assert.Equal(t, StateInFlight, res.State)

	require.NoError(t, s.Complete(ctx, "k1", "fp-a", 201, []byte(`{"id":1}`)))

	res, err = s.Begin(ctx, "k1", "fp-a")
	require.NoError(t, err)
	assert.Equal(t, StateDone, res.State)
	assert.Equal(t, 201, res.Status)
	assert.JSONEq(t, `{"id":1}`, string(res.Body))
}

func TestRedisStore_ReleaseAllowsRetry(t *testing.T) {
	s, mr := newRedisStore(t)
	ctx := context.Background()

	_, err := s.Begin(ctx, "k1", "fp-a")
	require.NoError(t, err)
	require.NoError(t, s.Release(ctx, "k1"))
	assert.False(t, mr.Exists(keyPrefix+"k1"))

	res, err := s.Begin(ctx, "k1", "fp-a")
	require.NoError(t, err)
	assert.Equal(t, StateNew, res.State)
}

func TestRedisStore_Expiry(t *testing.T) {
	s, mr := newRedisStore(t)
	ctx := context.Background()

	_, err := s.Begin(ctx, "k1", "fp-a")
	require.NoError(t, err)
	require.NoError(t, s.Complete(ctx, "k1", "fp-a", 201, []byte(`{}`)))

	mr.FastForward(2 * time.Minute)

	res, err := s.Begin(ctx, "k1", "fp-a")
	require.NoError(t, err)
	assert.Equal(t, StateNew, res.State)
}

func TestRedisStore_DifferentRequestSameKey(t *testing.T) {
	s, _ := newRedisStore(t)
	ctx := context.Background()

	_, err := s.Begin(ctx, "k1", "fp-a")
	require.NoError(t, err)

	res, err := s.Begin(ctx, "k1", "fp-b")
	require.NoError(t, err)
	assert.Equal(t, StateMismatch, res.State)

	require.NoError(t, s.Complete(ctx, "k1", "fp-a", 201, []byte(`{"id":1}`)))

	res, err = s.Begin(ctx, "k1", "fp-b")
	require.NoError(t, err)
	assert.Equal(t, StateMismatch, res.State)
}

func TestRedisStore_CorruptValue(t *testing.T) {
	s, mr := newRedisStore(t)
	require.NoError(t, mr.Set(keyPrefix+"k1", "garbage"))

	_, err := s.Begin(context.Background(), "k1", "fp-a")
	assert.Error(t, err)
}

func TestRedisStore_ServerDown(t *testing.T) {
	s, mr := newRedisStore(t)
	mr.Close()

	_, err := s.Begin(context.Background(), "k1", "fp-a")
	assert.Error(t, err)
}
