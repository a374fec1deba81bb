package cache

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"emperror.dev/errors"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// DatabaseFile is the name of the sqlite file created inside the cache directory.
const DatabaseFile = "cache.db"

const schema = `CREATE TABLE IF NOT EXISTS cache_entries (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	created_at INTEGER NOT NULL,
	expires_at INTEGER NOT NULL
)`

// DiskStore is a Store persisted in a sqlite database inside a directory.
type DiskStore struct {
	db     *sql.DB
	ttl    time.Duration
	now    func() time.Time
	logger logrus.FieldLogger
}

// DiskOption configures a DiskStore.
type DiskOption func(*DiskStore)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) DiskOption {
	return func(s *DiskStore) { s.now = now }
}

// OpenDisk opens (or creates) the cache database in dir.
// Pass ":memory:" as dir for an in-memory database (used by tests).
func OpenDisk(dir string, ttl time.Duration, logger logrus.FieldLogger, opts ...DiskOption) (*DiskStore, error) {
	var dsn string
	if dir == ":memory:" {
		dsn = ":memory:"
	} else {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(err, "failed to create cache directory")
		}
		dsn = filepath.Join(dir, DatabaseFile)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open cache database")
	}
	// A single connection keeps ":memory:" databases alive and avoids "database is locked".
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to set busy timeout")
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to create cache schema")
	}

	s := &DiskStore{db: db, ttl: ttl, now: time.Now, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *DiskStore) GetOrCompute(ctx context.Context, key string, producer Producer) ([]byte, error) {
	if s.db == nil {
		return nil, ErrClosed
	}

	now := s.now()
	var (
		value     []byte
		expiresAt int64
	)
	err := s.db.QueryRowContext(ctx, "SELECT value, expires_at FROM cache_entries WHERE key = ?", key).Scan(&value, &expiresAt)
	switch {
	case err == nil && now.UnixNano() < expiresAt:
		s.logger.WithField("key", key).Debug("cache hit")
		return value, nil
	case err == nil:
		s.logger.WithField("key", key).Debug("cache entry expired")
	case errors.Is(err, sql.ErrNoRows):
		s.logger.WithField("key", key).Debug("cache miss")
	default:
		return nil, errors.Wrapf(err, "failed to read cache entry %q", key)
	}

	value, err = producer(ctx)
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO cache_entries (key, value, created_at, expires_at) VALUES (?, ?, ?, ?)",
		key, value, now.UnixNano(), now.Add(s.ttl).UnixNano())
	if err != nil {
		return nil, errors.Wrapf(err, "failed to write cache entry %q", key)
	}
	return value, nil
}

func (s *DiskStore) InvalidateAll(ctx context.Context) error {
	if s.db == nil {
		return ErrClosed
	}
	res, err := s.db.ExecContext(ctx, "DELETE FROM cache_entries")
	if err != nil {
		return errors.Wrap(err, "failed to clear cache")
	}
	if n, err := res.RowsAffected(); err == nil {
		s.logger.WithField("entries", n).Debug("cache cleared")
	}
	return nil
}

func (s *DiskStore) Info(ctx context.Context) ([]EntryInfo, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	rows, err := s.db.QueryContext(ctx, "SELECT key, length(value), created_at, expires_at FROM cache_entries ORDER BY key")
	if err != nil {
		return nil, errors.Wrap(err, "failed to list cache entries")
	}
	defer rows.Close()

	var entries []EntryInfo
	for rows.Next() {
		var (
			e                  EntryInfo
			created, expiresAt int64
		)
		if err := rows.Scan(&e.Key, &e.Size, &created, &expiresAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan cache entry")
		}
		e.CreatedAt = time.Unix(0, created)
		e.ExpiresAt = time.Unix(0, expiresAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the underlying database. It is safe to call more than once.
func (s *DiskStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
