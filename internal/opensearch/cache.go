// Package opensearch discovers remote sites' OpenSearch descriptor documents
// and caches the search-URL templates they advertise.
package opensearch

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// Options configures a Cache. Zero values fall back to the defaults below.
type Options struct {
	// Capacity bounds the number of resident entries; the least-recently-used
	// entry is evicted when the bound is exceeded.
	Capacity int
	// TTL is how long a discovered template is served without refetching.
	TTL time.Duration
	// NegativeTTL is how long a failed fetch suppresses retries, so a site
	// that blocks automated fetches is not re-hammered on every lookup.
	NegativeTTL time.Duration
	// FetchTimeout bounds one whole discovery attempt (all candidate URLs).
	FetchTimeout time.Duration
	// MaxBodyBytes bounds a single response body.
	MaxBodyBytes int64
	// Client overrides the HTTP client (tests).
	Client *http.Client
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

const (
	defaultCapacity     = 128
	defaultTTL          = time.Hour
	defaultNegativeTTL  = 5 * time.Minute
	defaultFetchTimeout = 5 * time.Second
	defaultMaxBodyBytes = 1 << 20
)

// entry is one cached fetch outcome. Entries are immutable once inserted;
// refreshes replace the whole entry, so readers never see partial state.
type entry struct {
	template  Template
	failed    bool
	fetchedAt time.Time
	ttl       time.Duration
}

// Cache is the process-wide descriptor cache. All methods are safe for
// concurrent use.
type Cache struct {
	entries      *lru.Cache[string, *entry]
	group        singleflight.Group
	client       *http.Client
	logger       *slog.Logger
	ttl          time.Duration
	negativeTTL  time.Duration
	fetchTimeout time.Duration
	maxBodyBytes int64

	// now is replaceable in tests.
	now func() time.Time
}

// NewCache creates a descriptor cache with the given options.
func NewCache(opts Options) *Cache {
	if opts.Capacity <= 0 {
		opts.Capacity = defaultCapacity
	}
	if opts.TTL <= 0 {
		opts.TTL = defaultTTL
	}
	if opts.NegativeTTL <= 0 {
		opts.NegativeTTL = defaultNegativeTTL
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = defaultFetchTimeout
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: opts.FetchTimeout}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	entries, _ := lru.New[string, *entry](opts.Capacity)
	return &Cache{
		entries:      entries,
		client:       opts.Client,
		logger:       opts.Logger,
		ttl:          opts.TTL,
		negativeTTL:  opts.NegativeTTL,
		fetchTimeout: opts.FetchTimeout,
		maxBodyBytes: opts.MaxBodyBytes,
		now:          time.Now,
	}
}

// Template returns the search template for the site behind linkURL. A false
// return is a cache miss: no descriptor is discoverable right now, and the
// caller should fall back to the link's stored URL.
func (c *Cache) Template(ctx context.Context, linkURL string) (Template, bool) {
	base, err := normalizeBase(linkURL)
	if err != nil {
		return Template{}, false
	}

	if e, ok := c.fresh(base); ok {
		return e.template, !e.failed
	}

	// Exactly one fetch per key: concurrent callers share this flight's
	// outcome instead of issuing duplicate network calls.
	v, _, _ := c.group.Do(base, func() (any, error) {
		// Another caller may have completed the fetch while this one was
		// queued behind the flight.
		if e, ok := c.fresh(base); ok {
			return e, nil
		}
		return c.refresh(ctx, base), nil
	})

	e := v.(*entry)
	return e.template, !e.failed
}

// Forget drops the cached entry for the site behind linkURL, forcing the
// next lookup to refetch.
func (c *Cache) Forget(linkURL string) {
	if base, err := normalizeBase(linkURL); err == nil {
		c.entries.Remove(base)
	}
}

// Purge drops all cached entries and forgets in-flight failures.
func (c *Cache) Purge() {
	c.entries.Purge()
}

// Len returns the number of resident entries.
func (c *Cache) Len() int {
	return c.entries.Len()
}

// fresh returns the entry for key if present and inside its TTL. Expired
// entries are dropped so the next lookup refetches.
func (c *Cache) fresh(key string) (*entry, bool) {
	e, ok := c.entries.Get(key)
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.fetchedAt) > e.ttl {
		c.entries.Remove(key)
		return nil, false
	}
	return e, true
}

// refresh performs one descriptor fetch for key and records the outcome.
// The fetch runs on a context detached from the requester: a caller's
// disconnect must not cancel a flight other callers are awaiting.
func (c *Cache) refresh(ctx context.Context, key string) *entry {
	fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.fetchTimeout)
	defer cancel()

	e := &entry{fetchedAt: c.now()}
	tmpl, err := c.fetchTemplate(fetchCtx, key)
	if err != nil {
		c.logger.Debug("descriptor fetch failed", "site", key, "err", err)
		e.failed = true
		e.ttl = c.negativeTTL
	} else {
		e.template = tmpl
		e.ttl = c.ttl
	}

	c.entries.Add(key, e)
	return e
}
