// Package cache provides the time-based get-or-compute store that keeps the
// repository snapshot between invocations.
package cache

import (
	"context"
	"time"

	"emperror.dev/errors"
	"github.com/vmihailenco/msgpack/v5"
)

// DefaultTTL is how long a computed value is served before it is recomputed.
const DefaultTTL = 24 * time.Hour

// ErrClosed is returned by stores used after Close.
var ErrClosed = errors.New("cache store is closed")

// Producer computes the value for a missing or expired key.
type Producer func(ctx context.Context) ([]byte, error)

// FetchFn is the typed form of Producer used with GetOrCompute.
type FetchFn[T any] func(ctx context.Context) (T, error)

// EntryInfo describes one stored entry.
// CreatedAt and ExpiresAt are zero when the backend does not track them.
type EntryInfo struct {
	Key       string
	Size      int
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the entry is past its expiry at now.
func (e EntryInfo) Expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && !now.Before(e.ExpiresAt)
}

// Store is a single-namespace cache with one TTL for every entry.
//
// GetOrCompute returns the unexpired value stored under key without calling
// producer. Otherwise it calls producer, stores the result and returns it.
// A producer error is returned unchanged and nothing is written.
type Store interface {
	GetOrCompute(ctx context.Context, key string, producer Producer) ([]byte, error)
	InvalidateAll(ctx context.Context) error
	Info(ctx context.Context) ([]EntryInfo, error)
	Close() error
}

// GetOrCompute is a typed wrapper around Store.GetOrCompute that encodes
// values with msgpack.
func GetOrCompute[T any](ctx context.Context, store Store, key string, fetchFn FetchFn[T]) (T, error) {
	var zero T
	data, err := store.GetOrCompute(ctx, key, func(ctx context.Context) ([]byte, error) {
		v, err := fetchFn(ctx)
		if err != nil {
			return nil, err
		}
		data, err := msgpack.Marshal(v)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode cache value")
		}
		return data, nil
	})
	if err != nil {
		return zero, err
	}

	var v T
	if err := msgpack.Unmarshal(data, &v); err != nil {
		return zero, errors.Wrapf(err, "failed to decode cache value for key %q", key)
	}
	return v, nil
}
