// Package cooldown rate-limits named actions with a persisted "locked until" deadline.
//
// Entries are stored as {action}_cooldown -> epoch milliseconds. An entry whose deadline
// has passed counts as absent and is removed the next time it is read.
package cooldown

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

const keySuffix = "_cooldown"

// Status is the result of a cooldown check.
type Status struct {
	Active           bool  `json:"active"`
	RemainingSeconds int64 `json:"remaining_seconds"`
}

type Store struct {
	kv  KV
	now func() time.Time
}

func NewStore(kv KV) *Store {
	return &Store{kv: kv, now: time.Now}
}

// WithClock replaces the wall clock, mostly for tests.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Set locks key for d from now, replacing any previous deadline.
func (s *Store) Set(ctx context.Context, key string, d time.Duration) error {
	expiresAt := s.now().Add(d).UnixMilli()
	if err := s.kv.Set(ctx, storageKey(key), strconv.FormatInt(expiresAt, 10)); err != nil {
		return fmt.Errorf("set cooldown %s: %w", key, err)
	}
	return nil
}

// Check reports whether key is still locked.
func (s *Store) Check(ctx context.Context, key string) (Status, error) {
	raw, ok, err := s.kv.Get(ctx, storageKey(key))
	if err != nil {
		return Status{}, fmt.Errorf("check cooldown %s: %w", key, err)
	}
	if !ok {
		return Status{}, nil
	}

	expiresAt, err := strconv.ParseInt(raw, 10, 64)
	now := s.now().UnixMilli()
	if err != nil || expiresAt <= now {
		// garbage or expired: clean up lazily
		if err := s.kv.Delete(ctx, storageKey(key)); err != nil {
			return Status{}, fmt.Errorf("expire cooldown %s: %w", key, err)
		}
		return Status{}, nil
	}

	remainingMs := expiresAt - now
	return Status{
		Active:           true,
		RemainingSeconds: (remainingMs + 999) / 1000,
	}, nil
}

// Clear removes any deadline for key.
func (s *Store) Clear(ctx context.Context, key string) error {
	if err := s.kv.Delete(ctx, storageKey(key)); err != nil {
		return fmt.Errorf("clear cooldown %s: %w", key, err)
	}
	return nil
}

func storageKey(key string) string {
	return key + keySuffix
}
