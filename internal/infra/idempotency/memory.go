// Package idempotency remembers the outcome of create requests keyed by a
// client-supplied Idempotency-Key so that a repeated submission does not
// insert twice.
package idempotency

import (
	"context"
	"sync"
	"time"
)

type State int

const (
	// StateNew means the caller now owns the key and must Complete or Release it.
	StateNew State = iota
	// StateInFlight means another request holds the key.
	StateInFlight
	// StateDone means a response was stored for the key.
	StateDone
	// StateMismatch means the key was first used with a different request.
	StateMismatch
)

type Result struct {
	State  State
	Status int
	Body   []byte
}

// Store claims keys for requests identified by fingerprint. A key claimed
// or completed under one fingerprint reports StateMismatch for any other.
type Store interface {
	Begin(ctx context.Context, key, fingerprint string) (Result, error)
	Complete(ctx context.Context, key, fingerprint string, status int, body []byte) error
	Release(ctx context.Context, key string) error
}

// check resolves a key that is already held by a request with stored.
func check(stored, fingerprint string, held Result) Result {
	if stored != "" && fingerprint != "" && stored != fingerprint {
		return Result{State: StateMismatch}
	}
	return held
}

type memoryEntry struct {
	fingerprint string
	result      Result
	expires     time.Time
}

// MemoryStore keeps keys in process memory.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Begin(_ context.Context, key, fingerprint string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if e, ok := s.entries[key]; ok && now.Before(e.expires) {
		return check(e.fingerprint, fingerprint, e.result), nil
	}

	s.entries[key] = memoryEntry{
		fingerprint: fingerprint,
		result:      Result{State: StateInFlight},
		expires:     now.Add(s.ttl),
	}
	return Result{State: StateNew}, nil
}

func (s *MemoryStore) Complete(_ context.Context, key, fingerprint string, status int, body []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = memoryEntry{
		fingerprint: fingerprint,
		result:      Result{State: StateDone, Status: status, Body: body},
		expires:     s.now().Add(s.ttl),
	}
	return nil
}

func (s *MemoryStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}

var _ Store = (*MemoryStore)(nil)
