// Package storage declares persistence for portal-owned derived data.
//
// The portal only caches CRM API reads. Every entry can be dropped and
// rebuilt from the API, which stays the source of truth.
package storage

import (
	"context"
	"encoding/hex"
	"strings"
	"time"

	"github.com/zeebo/blake3"
)

// CacheEntry is one cached API response page.
type CacheEntry struct {
	Key string
	// Scope names the API resource the payload came from.
	Scope string
	// Owner is OwnerKey of the access token that fetched the payload.
	Owner     string
	Payload   []byte
	FetchedAt time.Time
	ExpiresAt time.Time
}

// Fresh reports whether the entry may still be served at now.
func (e CacheEntry) Fresh(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.Before(e.ExpiresAt)
}

// Store persists cache entries.
type Store interface {
	Close() error
	GetCacheEntry(ctx context.Context, key string) (CacheEntry, bool, error)
	PutCacheEntry(ctx context.Context, entry CacheEntry) error
	DeleteCacheEntry(ctx context.Context, key string) error
	DeleteOwnerEntries(ctx context.Context, owner string) (int64, error)
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// OwnerKey derives a stable cache owner from an access token so raw tokens
// never reach disk.
func OwnerKey(token string) string {
	token = strings.TrimSpace(token)
	if token == "" {
		return ""
	}
	sum := blake3.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
