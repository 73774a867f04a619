// Package contacts implements the cached contact-list store.
package contacts

import (
	"context"
	"sync"
	"time"

	"go.trai.ch/drift/internal/core/domain"
	"go.trai.ch/drift/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// Store maps an identity to its current follow list, with TTL caching and
// batched network fetch. It implements ports.ContactSource.
//
// A fetch failure for one identity is cached as an empty follow list so a
// flaky or missing contact list does not hammer the network on every build.
type Store struct {
	fetcher      ports.ContactListFetcher
	log          ports.Logger
	ttl          time.Duration
	batchSize    int
	fetchTimeout time.Duration

	mu      sync.RWMutex
	entries map[domain.Identity]domain.ContactList
}

// NewStore creates a Store over the given fetcher. Params must be validated
// by the caller.
func NewStore(fetcher ports.ContactListFetcher, log ports.Logger, p domain.Params) *Store {
	return &Store{
		fetcher:      fetcher,
		log:          log,
		ttl:          p.ContactTTL,
		batchSize:    p.FetchBatchSize,
		fetchTimeout: p.FetchTimeout,
		entries:      make(map[domain.Identity]domain.ContactList),
	}
}

// FetchOne returns the follow list for one identity, served from cache while
// its age is below the TTL.
func (s *Store) FetchOne(ctx context.Context, id domain.Identity) (domain.ContactList, error) {
	if cl, ok := s.fresh(id, time.Now()); ok {
		return cl, nil
	}

	fctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	follows, err := s.fetcher.Fetch(fctx, id)
	if err != nil {
		// Cancellation is the caller's signal, not a fetch failure; do not
		// cache an empty list for it.
		if ctx.Err() != nil {
			return domain.ContactList{}, ctx.Err()
		}
		s.log.Warn("contact list fetch failed", "identity", id.Short(), "err", err)
		follows = nil
	}

	cl := domain.NewContactList(id, follows, time.Now())
	s.mu.Lock()
	s.entries[id] = cl
	s.mu.Unlock()
	return cl, nil
}

// FetchMany returns follow lists for every given identity. Cached fresh
// entries are served immediately; the rest are fetched in fixed-size batches
// issued concurrently, with the whole call awaiting every batch.
func (s *Store) FetchMany(ctx context.Context, ids []domain.Identity) (map[domain.Identity][]domain.Identity, error) {
	out := make(map[domain.Identity][]domain.Identity, len(ids))
	var stale []domain.Identity

	now := time.Now()
	s.mu.RLock()
	for _, id := range ids {
		if _, done := out[id]; done || id == "" {
			continue
		}
		if e, ok := s.entries[id]; ok && e.Age(now) < s.ttl {
			out[id] = e.Follows
		} else {
			out[id] = nil
			stale = append(stale, id)
		}
	}
	s.mu.RUnlock()

	if len(stale) == 0 {
		return out, nil
	}

	fetched := make([]domain.ContactList, len(stale))
	g, gctx := errgroup.WithContext(ctx)
	for start := 0; start < len(stale); start += s.batchSize {
		batch := stale[start:min(start+s.batchSize, len(stale))]
		offset := start
		g.Go(func() error {
			return s.fetchBatch(gctx, batch, fetched[offset:offset+len(batch)])
		})
	}
	if err := g.Wait(); err != nil {
		return out, err
	}

	s.mu.Lock()
	for _, cl := range fetched {
		s.entries[cl.Owner] = cl
		out[cl.Owner] = cl.Follows
	}
	s.mu.Unlock()
	return out, nil
}

// fetchBatch fetches one batch under a per-batch deadline. Individual
// failures degrade to empty lists; only context cancellation aborts.
func (s *Store) fetchBatch(ctx context.Context, batch []domain.Identity, results []domain.ContactList) error {
	bctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	for i, id := range batch {
		follows, err := s.fetcher.Fetch(bctx, id)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.log.Warn("contact list fetch failed", "identity", id.Short(), "err", err)
			follows = nil
		}
		results[i] = domain.NewContactList(id, follows, time.Now())
	}
	return nil
}

// Invalidate drops the cached entry for one identity.
func (s *Store) Invalidate(id domain.Identity) {
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
}

// InvalidateAll drops every cached entry.
func (s *Store) InvalidateAll() {
	s.mu.Lock()
	s.entries = make(map[domain.Identity]domain.ContactList)
	s.mu.Unlock()
}

// Len reports the number of cached entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Store) fresh(id domain.Identity, now time.Time) (domain.ContactList, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	if !ok || e.Age(now) >= s.ttl {
		return domain.ContactList{}, false
	}
	return e, true
}
