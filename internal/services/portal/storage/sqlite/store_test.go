package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/louisbranch/crmportal/internal/services/portal/storage"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "portal-cache.db")
	store, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	})
	return store, path
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(context.Background(), " "); err == nil {
		t.Fatalf("expected error")
	}
}

func TestOpenRunsMigrations(t *testing.T) {
	_, path := openTestStore(t)

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer func() {
		_ = sqlDB.Close()
	}()
	var name string
	if err := sqlDB.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='cache_entries'`).Scan(&name); err != nil {
		t.Fatalf("cache_entries table missing: %v", err)
	}
}

func TestOpenIsRepeatable(t *testing.T) {
	store, path := openTestStore(t)
	_ = store

	again, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if err := again.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestCacheEntryRoundTrip(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()
	fetched := time.Now().UTC().Truncate(time.Millisecond)
	entry := storage.CacheEntry{
		Key:       "contacts|page=1",
		Scope:     "contacts",
		Owner:     storage.OwnerKey("tok-1"),
		Payload:   []byte(`{"items":[]}`),
		FetchedAt: fetched,
		ExpiresAt: fetched.Add(time.Minute),
	}
	if err := store.PutCacheEntry(ctx, entry); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, found, err := store.GetCacheEntry(ctx, entry.Key)
	if err != nil || !found {
		t.Fatalf("get = (%v, %v)", found, err)
	}
	if got.Scope != entry.Scope || got.Owner != entry.Owner || string(got.Payload) != string(entry.Payload) {
		t.Fatalf("entry = %+v, want %+v", got, entry)
	}
	if !got.FetchedAt.Equal(fetched) || !got.ExpiresAt.Equal(entry.ExpiresAt) {
		t.Fatalf("times = (%v, %v), want (%v, %v)", got.FetchedAt, got.ExpiresAt, fetched, entry.ExpiresAt)
	}

	entry.Payload = []byte(`{"items":[1]}`)
	if err := store.PutCacheEntry(ctx, entry); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	got, _, _ = store.GetCacheEntry(ctx, entry.Key)
	if string(got.Payload) != `{"items":[1]}` {
		t.Fatalf("payload after upsert = %s", got.Payload)
	}

	if err := store.DeleteCacheEntry(ctx, entry.Key); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, found, err := store.GetCacheEntry(ctx, entry.Key); err != nil || found {
		t.Fatalf("get after delete = (%v, %v), want miss", found, err)
	}
}

func TestPutCacheEntryValidates(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()
	valid := storage.CacheEntry{Key: "k", Scope: "tasks", Owner: "o", Payload: []byte("{}")}

	tests := map[string]func(storage.CacheEntry) storage.CacheEntry{
		"key":     func(e storage.CacheEntry) storage.CacheEntry { e.Key = ""; return e },
		"scope":   func(e storage.CacheEntry) storage.CacheEntry { e.Scope = " "; return e },
		"owner":   func(e storage.CacheEntry) storage.CacheEntry { e.Owner = ""; return e },
		"payload": func(e storage.CacheEntry) storage.CacheEntry { e.Payload = nil; return e },
	}
	for name, mutate := range tests {
		if err := store.PutCacheEntry(ctx, mutate(valid)); err == nil {
			t.Fatalf("expected missing %s to fail", name)
		}
	}
}

func TestDeleteOwnerEntries(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()
	alice, bob := storage.OwnerKey("alice"), storage.OwnerKey("bob")
	for key, owner := range map[string]string{"a1": alice, "a2": alice, "b1": bob} {
		if err := store.PutCacheEntry(ctx, storage.CacheEntry{Key: key, Scope: "tasks", Owner: owner, Payload: []byte("{}")}); err != nil {
			t.Fatalf("put %s: %v", key, err)
		}
	}

	removed, err := store.DeleteOwnerEntries(ctx, alice)
	if err != nil {
		t.Fatalf("delete owner: %v", err)
	}
	if removed != 2 {
		t.Fatalf("removed = %d, want 2", removed)
	}
	if _, found, _ := store.GetCacheEntry(ctx, "b1"); !found {
		t.Fatalf("expected other owner entry to remain")
	}
}

func TestPurgeExpired(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()
	entries := []storage.CacheEntry{
		{Key: "old", Scope: "tasks", Owner: "o", Payload: []byte("{}"), ExpiresAt: now.Add(-time.Minute)},
		{Key: "new", Scope: "tasks", Owner: "o", Payload: []byte("{}"), ExpiresAt: now.Add(time.Minute)},
	}
	for _, entry := range entries {
		if err := store.PutCacheEntry(ctx, entry); err != nil {
			t.Fatalf("put %s: %v", entry.Key, err)
		}
	}

	removed, err := store.PurgeExpired(ctx, now)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if _, found, _ := store.GetCacheEntry(ctx, "new"); !found {
		t.Fatalf("expected unexpired entry to remain")
	}
}

func TestNilStoreIsNotConfigured(t *testing.T) {
	var store *Store
	if err := store.Close(); err != nil {
		t.Fatalf("Close() = %v, want nil", err)
	}
	if _, _, err := store.GetCacheEntry(context.Background(), "k"); err == nil {
		t.Fatalf("expected error from nil store")
	}
}
