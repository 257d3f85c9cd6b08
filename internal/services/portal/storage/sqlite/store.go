// Package sqlite persists the portal response cache in SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/louisbranch/crmportal/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/crmportal/internal/services/portal/storage"
	"github.com/louisbranch/crmportal/internal/services/portal/storage/sqlite/migrations"
)

var errNotConfigured = errors.New("storage is not configured")

// Store provides SQLite-backed cache persistence.
type Store struct {
	sqlDB *sql.DB
}

// Open opens and migrates a cache database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlitemigrate.Apply(ctx, sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// GetCacheEntry loads one entry by key.
func (s *Store) GetCacheEntry(ctx context.Context, key string) (storage.CacheEntry, bool, error) {
	if s == nil || s.sqlDB == nil {
		return storage.CacheEntry{}, false, errNotConfigured
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return storage.CacheEntry{}, false, fmt.Errorf("cache key is required")
	}

	var entry storage.CacheEntry
	var fetchedAt, expiresAt int64
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT cache_key, scope, owner, payload, fetched_at, expires_at
		 FROM cache_entries
		 WHERE cache_key = ?`,
		key,
	).Scan(&entry.Key, &entry.Scope, &entry.Owner, &entry.Payload, &fetchedAt, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.CacheEntry{}, false, nil
	}
	if err != nil {
		return storage.CacheEntry{}, false, fmt.Errorf("get cache entry: %w", err)
	}
	entry.FetchedAt = unixMillisToTime(fetchedAt)
	entry.ExpiresAt = unixMillisToTime(expiresAt)
	return entry, true, nil
}

// PutCacheEntry inserts or replaces an entry.
func (s *Store) PutCacheEntry(ctx context.Context, entry storage.CacheEntry) error {
	if s == nil || s.sqlDB == nil {
		return errNotConfigured
	}
	entry.Key = strings.TrimSpace(entry.Key)
	if entry.Key == "" {
		return fmt.Errorf("cache key is required")
	}
	entry.Scope = strings.TrimSpace(entry.Scope)
	if entry.Scope == "" {
		return fmt.Errorf("cache scope is required")
	}
	if strings.TrimSpace(entry.Owner) == "" {
		return fmt.Errorf("cache owner is required")
	}
	if len(entry.Payload) == 0 {
		return fmt.Errorf("cache payload is required")
	}
	if entry.FetchedAt.IsZero() {
		entry.FetchedAt = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO cache_entries (cache_key, scope, owner, payload, fetched_at, expires_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(cache_key) DO UPDATE SET
		    scope = excluded.scope,
		    owner = excluded.owner,
		    payload = excluded.payload,
		    fetched_at = excluded.fetched_at,
		    expires_at = excluded.expires_at`,
		entry.Key,
		entry.Scope,
		strings.TrimSpace(entry.Owner),
		entry.Payload,
		timeToUnixMillis(entry.FetchedAt),
		timeToUnixMillis(entry.ExpiresAt),
	)
	if err != nil {
		return fmt.Errorf("put cache entry: %w", err)
	}
	return nil
}

// DeleteCacheEntry removes one entry by key.
func (s *Store) DeleteCacheEntry(ctx context.Context, key string) error {
	if s == nil || s.sqlDB == nil {
		return errNotConfigured
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("cache key is required")
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM cache_entries WHERE cache_key = ?`, key); err != nil {
		return fmt.Errorf("delete cache entry: %w", err)
	}
	return nil
}

// DeleteOwnerEntries drops every entry fetched with one token.
func (s *Store) DeleteOwnerEntries(ctx context.Context, owner string) (int64, error) {
	if s == nil || s.sqlDB == nil {
		return 0, errNotConfigured
	}
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return 0, fmt.Errorf("cache owner is required")
	}
	res, err := s.sqlDB.ExecContext(ctx, `DELETE FROM cache_entries WHERE owner = ?`, owner)
	if err != nil {
		return 0, fmt.Errorf("delete owner entries: %w", err)
	}
	return res.RowsAffected()
}

// PurgeExpired drops entries whose expiry is at or before now.
func (s *Store) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	if s == nil || s.sqlDB == nil {
		return 0, errNotConfigured
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}
	res, err := s.sqlDB.ExecContext(ctx, `DELETE FROM cache_entries WHERE expires_at <= ?`, timeToUnixMillis(now))
	if err != nil {
		return 0, fmt.Errorf("purge expired entries: %w", err)
	}
	return res.RowsAffected()
}

func timeToUnixMillis(value time.Time) int64 {
	if value.IsZero() {
		return 0
	}
	return value.UTC().UnixMilli()
}

func unixMillisToTime(value int64) time.Time {
	if value <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(value).UTC()
}

var _ storage.Store = (*Store)(nil)
