package idempotency

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/goccy/go-json"
)

const keyPrefix = "clinic:idempotency:"

// record is the value kept under a key. Status 0 marks a request still
// being processed.
type record struct {
	Fingerprint string `json:"fingerprint,omitempty"`
	Status      int    `json:"status,omitempty"`
	Body        []byte `json:"body,omitempty"`
}

type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

// NewRedisClient parses a redis:// URL and checks the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

func (s *RedisStore) Begin(ctx context.Context, key, fingerprint string) (Result, error) {
	k := keyPrefix + key

	pending, err := json.Marshal(record{Fingerprint: fingerprint})
	if err != nil {
		return Result{}, err
	}

	// a stored value can expire between SetNX and Get, so try twice
	for attempt := 0; attempt < 2; attempt++ {
		ok, err := s.rdb.SetNX(ctx, k, pending, s.ttl).Result()
		if err != nil {
			return Result{}, err
		}
		if ok {
			return Result{State: StateNew}, nil
		}

		raw, err := s.rdb.Get(ctx, k).Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return Result{}, err
		}

		var rec record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return Result{}, err
		}
		held := Result{State: StateInFlight}
		if rec.Status != 0 {
			held = Result{State: StateDone, Status: rec.Status, Body: rec.Body}
		}
		return check(rec.Fingerprint, fingerprint, held), nil
	}

	return Result{State: StateInFlight}, nil
}

func (s *RedisStore) Complete(ctx context.Context, key, fingerprint string, status int, body []byte) error {
	b, err := json.Marshal(record{Fingerprint: fingerprint, Status: status, Body: body})
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, keyPrefix+key, b, s.ttl).Err()
}

func (s *RedisStore) Release(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, keyPrefix+key).Err()
}

var _ Store = (*RedisStore)(nil)
