package crmapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/louisbranch/crmportal/internal/services/portal/storage"
)

// Cached pages are JSON compressed with zstd. The encoder and decoder are
// safe for concurrent use and shared by every CachedLister.
var (
	pageEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	pageDecoder, _ = zstd.NewReader(nil)
)

func encodePage(page Page) ([]byte, error) {
	raw, err := json.Marshal(page)
	if err != nil {
		return nil, fmt.Errorf("marshal page: %w", err)
	}
	return pageEncoder.EncodeAll(raw, nil), nil
}

func decodePage(payload []byte) (Page, error) {
	raw, err := pageDecoder.DecodeAll(payload, nil)
	if err != nil {
		return Page{}, fmt.Errorf("decompress page: %w", err)
	}
	var page Page
	if err := json.Unmarshal(raw, &page); err != nil {
		return Page{}, fmt.Errorf("unmarshal page: %w", err)
	}
	return page, nil
}

// CachedLister serves list pages from a store while they are fresh and
// falls back to the wrapped lister otherwise. Store failures are logged and
// never fail the read.
type CachedLister struct {
	next   Lister
	store  storage.Store
	ttl    time.Duration
	logger *log.Logger
	now    func() time.Time
}

// NewCachedLister wraps next. A nil store or non-positive ttl disables
// caching and every call goes straight to next.
func NewCachedLister(next Lister, store storage.Store, ttl time.Duration, logger *log.Logger) *CachedLister {
	if logger == nil {
		logger = log.Default()
	}
	return &CachedLister{next: next, store: store, ttl: ttl, logger: logger, now: time.Now}
}

func (c *CachedLister) enabled() bool {
	return c.store != nil && c.ttl > 0
}

// List implements Lister.
func (c *CachedLister) List(ctx context.Context, token string, resource Resource, query ListQuery) (Page, error) {
	query = query.Normalize()
	owner := storage.OwnerKey(token)
	if !c.enabled() || owner == "" {
		return c.next.List(ctx, token, resource, query)
	}

	key := cacheKey(owner, resource, query)
	now := c.now().UTC()
	if entry, found, err := c.store.GetCacheEntry(ctx, key); err != nil {
		c.logger.Printf("cache read failed key_scope=%s err=%v", resource, err)
	} else if found && entry.Fresh(now) {
		page, err := decodePage(entry.Payload)
		if err == nil {
			return page, nil
		}
		c.logger.Printf("cache entry undecodable key_scope=%s err=%v", resource, err)
	}

	page, err := c.next.List(ctx, token, resource, query)
	if err != nil {
		return Page{}, err
	}
	payload, err := encodePage(page)
	if err != nil {
		c.logger.Printf("cache encode failed key_scope=%s err=%v", resource, err)
		return page, nil
	}
	if err := c.store.PutCacheEntry(ctx, storage.CacheEntry{
		Key:       key,
		Scope:     string(resource),
		Owner:     owner,
		Payload:   payload,
		FetchedAt: now,
		ExpiresAt: now.Add(c.ttl),
	}); err != nil {
		c.logger.Printf("cache write failed key_scope=%s err=%v", resource, err)
	}
	return page, nil
}

// Forget drops every page cached for token, used on logout.
func (c *CachedLister) Forget(ctx context.Context, token string) {
	owner := storage.OwnerKey(token)
	if c.store == nil || owner == "" {
		return
	}
	if _, err := c.store.DeleteOwnerEntries(ctx, owner); err != nil {
		c.logger.Printf("cache forget failed err=%v", err)
	}
}

func cacheKey(owner string, resource Resource, query ListQuery) string {
	return strings.Join([]string{owner, string(resource), query.Values().Encode()}, "|")
}

var _ Lister = (*CachedLister)(nil)
