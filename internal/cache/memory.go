package cache

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/viccon/sturdyc"
)

const (
	memoryCapacity           = 64
	memoryShards             = 1
	memoryEvictionPercentage = 10
)

// MemoryStore is a Store that lives only as long as the process.
// It is backed by a sturdyc client.
type MemoryStore struct {
	client *sturdyc.Client[[]byte]
	logger logrus.FieldLogger
	closed bool
}

// NewMemory returns an empty MemoryStore whose entries expire after ttl.
func NewMemory(ttl time.Duration, logger logrus.FieldLogger) *MemoryStore {
	return &MemoryStore{
		client: sturdyc.New[[]byte](memoryCapacity, memoryShards, ttl, memoryEvictionPercentage),
		logger: logger,
	}
}

func (s *MemoryStore) GetOrCompute(ctx context.Context, key string, producer Producer) ([]byte, error) {
	if s.closed {
		return nil, ErrClosed
	}
	if v, ok := s.client.Get(key); ok {
		s.logger.WithField("key", key).Debug("cache hit")
		return v, nil
	}
	s.logger.WithField("key", key).Debug("cache miss")
	return s.client.GetOrFetch(ctx, key, func(ctx context.Context) ([]byte, error) {
		return producer(ctx)
	})
}

func (s *MemoryStore) InvalidateAll(_ context.Context) error {
	if s.closed {
		return ErrClosed
	}
	keys := s.client.ScanKeys()
	for _, key := range keys {
		s.client.Delete(key)
	}
	s.logger.WithField("entries", len(keys)).Debug("cache cleared")
	return nil
}

func (s *MemoryStore) Info(_ context.Context) ([]EntryInfo, error) {
	if s.closed {
		return nil, ErrClosed
	}
	var entries []EntryInfo
	for _, key := range s.client.ScanKeys() {
		v, ok := s.client.Get(key)
		if !ok {
			continue
		}
		entries = append(entries, EntryInfo{Key: key, Size: len(v)})
	}
	return entries, nil
}

func (s *MemoryStore) Close() error {
	s.closed = true
	return nil
}
