package trust

import (
	"context"
	"sync"
	"time"

	"go.trai.ch/drift/internal/core/domain"
	"go.trai.ch/drift/internal/core/ports"
	"golang.org/x/sync/singleflight"
)

// Cache makes graph builds idempotent, cached and safe under concurrent
// callers. At most one entry exists per (root, maxDepth) key and at most one
// build runs per key at any time; concurrent callers for the same key all
// observe the same resulting graph.
type Cache struct {
	builder  *Builder
	contacts ports.ContactSource
	log      ports.Logger
	tel      ports.Telemetry
	ttl      time.Duration

	// mu guards entries and inflight only. It is never held across a build
	// or a network fetch.
	mu       sync.RWMutex
	entries  map[domain.GraphKey]entry
	inflight map[domain.GraphKey]struct{}
	flight   singleflight.Group
}

type entry struct {
	graph   *domain.TrustGraph
	builtAt time.Time
	// rootFP is the fingerprint of the root's contact list at build time,
	// used by Refresh to detect that the root edited their follows.
	rootFP uint64
}

// NewCache creates a Cache over the given builder. The contact source is the
// same one the builder fetches through, so the root's list is already cached
// when the fingerprint is taken.
func NewCache(builder *Builder, contacts ports.ContactSource, log ports.Logger, tel ports.Telemetry, p domain.Params) *Cache {
	return &Cache{
		builder:  builder,
		contacts: contacts,
		log:      log,
		tel:      tel,
		ttl:      p.GraphTTL,
		entries:  make(map[domain.GraphKey]entry),
		inflight: make(map[domain.GraphKey]struct{}),
	}
}

// Get returns the trust graph for (root, maxDepth), building it at most once
// per TTL window. Concurrent calls for an uncached key coalesce onto a
// single build; the in-flight marker is removed when the build finishes even
// on failure, so a later caller can retry.
func (c *Cache) Get(ctx context.Context, root domain.Identity, maxDepth int) (*domain.TrustGraph, error) {
	key := domain.GraphKey{Root: root, MaxDepth: maxDepth}

	if g, ok := c.lookup(key); ok {
		_, vertex := c.tel.Record(ctx, "trust graph "+key.Root.Short())
		vertex.Cached()
		return g, nil
	}

	v, err, shared := c.flight.Do(key.String(), func() (any, error) {
		// A build that finished while this caller queued on the flight
		// group already stored a fresh entry.
		if g, ok := c.lookup(key); ok {
			return g, nil
		}
		return c.build(ctx, key)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.log.Debug("coalesced concurrent graph build", "root", root.Short(), "max_depth", maxDepth)
	}
	return v.(*domain.TrustGraph), nil
}

func (c *Cache) build(ctx context.Context, key domain.GraphKey) (*domain.TrustGraph, error) {
	c.mu.Lock()
	c.inflight[key] = struct{}{}
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		delete(c.inflight, key)
		c.mu.Unlock()
	}()

	vctx, vertex := c.tel.Record(ctx, "trust graph "+key.Root.Short())
	started := time.Now()

	graph, err := c.builder.Build(vctx, key.Root, key.MaxDepth)
	vertex.Complete(err)
	if err != nil {
		return nil, err
	}

	rootList, err := c.contacts.FetchOne(ctx, key.Root)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = entry{graph: graph, builtAt: time.Now(), rootFP: rootList.Fingerprint()}
	c.mu.Unlock()

	c.log.Info("trust graph built",
		"root", key.Root.Short(),
		"max_depth", key.MaxDepth,
		"size", graph.Size(),
		"took", time.Since(started))
	return graph, nil
}

// Refresh re-fetches the root's own follow list and rebuilds the graph if
// the list changed since it was built. It reports whether a rebuild
// happened. Used when the application suspects a local follow edit.
func (c *Cache) Refresh(ctx context.Context, root domain.Identity, maxDepth int) (*domain.TrustGraph, bool, error) {
	key := domain.GraphKey{Root: root, MaxDepth: maxDepth}

	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		g, err := c.Get(ctx, root, maxDepth)
		return g, true, err
	}

	c.contacts.Invalidate(root)
	rootList, err := c.contacts.FetchOne(ctx, root)
	if err != nil {
		return nil, false, err
	}
	if rootList.Fingerprint() == e.rootFP {
		return e.graph, false, nil
	}

	c.Invalidate(root)
	g, err := c.Get(ctx, root, maxDepth)
	return g, true, err
}

// Invalidate drops every cache entry and in-flight marker whose key's root
// matches. Used when the active identity changes or the user's own follow
// list is edited locally.
func (c *Cache) Invalidate(root domain.Identity) {
	c.mu.Lock()
	for key := range c.entries {
		if key.Root == root {
			delete(c.entries, key)
		}
	}
	for key := range c.inflight {
		if key.Root == root {
			c.flight.Forget(key.String())
			delete(c.inflight, key)
		}
	}
	c.mu.Unlock()
}

// InvalidateAll drops every entry and in-flight marker. Used on logout and
// identity switch.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	for key := range c.inflight {
		c.flight.Forget(key.String())
	}
	c.entries = make(map[domain.GraphKey]entry)
	c.inflight = make(map[domain.GraphKey]struct{})
	c.mu.Unlock()
}

// Len reports the number of cached graphs.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) lookup(key domain.GraphKey) (*domain.TrustGraph, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || time.Since(e.builtAt) >= c.ttl {
		return nil, false
	}
	return e.graph, true
}
