// Package app implements the trust query API exposed to the rest of the
// client: score and distance lookups, trusted-set filtering, post
// filtering/ranking and mutual-follow checks, all layered over a graph built
// for the current root identity.
package app

import (
	"context"
	"sort"
	"sync"

	"go.trai.ch/drift/internal/core/domain"
	"go.trai.ch/drift/internal/core/ports"
	"go.trai.ch/drift/internal/engine/trust"
)

// Service is the read side of the trust engine. The only stateful transition
// a consumer can observe is the current root identity; every transition
// invalidates all cached graphs tied to the previous root.
//
// Query methods never surface engine errors to the caller: trust filtering
// fails open, degrading to "unreachable" (infinite distance) so the feed is
// never blocked on the trust engine.
type Service struct {
	contacts ports.ContactSource
	cache    *trust.Cache
	log      ports.Logger
	params   domain.Params

	mu   sync.RWMutex
	root domain.Identity
}

// New creates a Service. No root is set initially; every query reports
// absent/empty until SetRoot is called.
func New(contacts ports.ContactSource, cache *trust.Cache, log ports.Logger, params domain.Params) (*Service, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Service{
		contacts: contacts,
		cache:    cache,
		log:      log,
		params:   params,
	}, nil
}

// SetRoot switches the current root identity. Passing an empty identity
// corresponds to logout. Any change drops all cached graphs.
func (s *Service) SetRoot(id domain.Identity) {
	s.mu.Lock()
	prev := s.root
	s.root = id
	s.mu.Unlock()

	if prev != id {
		s.cache.InvalidateAll()
		s.log.Info("trust root changed", "root", id.Short())
	}
}

// Root returns the current root identity, or false if none is set.
func (s *Service) Root() (domain.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.root, s.root != ""
}

// graph builds or fetches the graph for the current root. A nil graph with a
// nil error means no root is set.
func (s *Service) graph(ctx context.Context) *domain.TrustGraph {
	root, ok := s.Root()
	if !ok {
		return nil
	}
	g, err := s.cache.Get(ctx, root, s.params.MaxDepth)
	if err != nil {
		// Only context cancellation reaches here; treat it like any other
		// degraded state and fail open.
		s.log.Debug("trust graph unavailable", "root", root.Short(), "err", err)
		return nil
	}
	return g
}

// Score returns the trust node for an identity, or false when it is
// unreachable within the engine's depth bound. Unreachable does not
// necessarily mean untrusted; the caller decides the default treatment.
func (s *Service) Score(ctx context.Context, id domain.Identity) (domain.TrustNode, bool) {
	g := s.graph(ctx)
	if g == nil {
		return domain.TrustNode{}, false
	}
	n, ok := g.Node(id)
	if !ok {
		return domain.TrustNode{}, false
	}
	return *n, true
}

// Distance returns the hop distance from the current root to an identity, or
// domain.InfiniteDistance when it is unreachable or no root is set.
func (s *Service) Distance(ctx context.Context, id domain.Identity) int {
	g := s.graph(ctx)
	if g == nil {
		return domain.InfiniteDistance
	}
	return g.Distance(id)
}

// IsWithinDistance reports whether an identity sits at most maxDistance hops
// from the current root.
func (s *Service) IsWithinDistance(ctx context.Context, id domain.Identity, maxDistance int) bool {
	return s.Distance(ctx, id) <= maxDistance
}

// IsTrusted applies the default trust policy: self, direct follows and
// friends-of-friends are trusted.
func (s *Service) IsTrusted(ctx context.Context, id domain.Identity) bool {
	return s.IsWithinDistance(ctx, id, s.params.TrustedMaxDistance)
}

// FilterTrusted returns the subsequence of ids within maxDistance of the
// current root, preserving input order.
func (s *Service) FilterTrusted(ctx context.Context, ids []domain.Identity, maxDistance int) []domain.Identity {
	g := s.graph(ctx)
	if g == nil {
		return nil
	}
	out := make([]domain.Identity, 0, len(ids))
	for _, id := range ids {
		if g.Distance(id) <= maxDistance {
			out = append(out, id)
		}
	}
	return out
}

// FilterPosts returns the posts whose author is within maxDistance of the
// current root. Posts without an author pubkey pass through unfiltered:
// absence of an author is not evidence of spam, so filtering fails open for
// them, while posts by a known-but-unreachable author are dropped.
func (s *Service) FilterPosts(ctx context.Context, posts []domain.Post, maxDistance int) []domain.Post {
	g := s.graph(ctx)
	if g == nil {
		return posts
	}
	out := make([]domain.Post, 0, len(posts))
	for _, p := range posts {
		if p.Author == "" || g.Distance(p.Author) <= maxDistance {
			out = append(out, p)
		}
	}
	return out
}

// SortPostsByTrust orders posts by descending author trust score. Posts
// without an author or with an unreachable author score 0 and sort below
// every scored post. The sort is stable, so equally scored posts keep their
// input order. The input slice is not modified.
func (s *Service) SortPostsByTrust(ctx context.Context, posts []domain.Post) []domain.Post {
	g := s.graph(ctx)
	out := make([]domain.Post, len(posts))
	copy(out, posts)
	if g == nil {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		return g.Score(out[i].Author) > g.Score(out[j].Author)
	})
	return out
}

// AreMutualFollows reports whether a and b follow each other. It consults
// the follow lists directly rather than the trust graph, so it works for
// identities outside the current root's graph.
func (s *Service) AreMutualFollows(ctx context.Context, a, b domain.Identity) (bool, error) {
	listA, err := s.contacts.FetchOne(ctx, a)
	if err != nil {
		return false, err
	}
	if !listA.Contains(b) {
		return false, nil
	}
	listB, err := s.contacts.FetchOne(ctx, b)
	if err != nil {
		return false, err
	}
	return listB.Contains(a), nil
}

// MutualFollows returns the identities followed by both the current root and
// other, in the order of the root's follow list. Without a root it returns
// an empty result.
func (s *Service) MutualFollows(ctx context.Context, other domain.Identity) ([]domain.Identity, error) {
	root, ok := s.Root()
	if !ok {
		return nil, nil
	}
	rootList, err := s.contacts.FetchOne(ctx, root)
	if err != nil {
		return nil, err
	}
	otherList, err := s.contacts.FetchOne(ctx, other)
	if err != nil {
		return nil, err
	}
	theirs := make(map[domain.Identity]struct{}, len(otherList.Follows))
	for _, f := range otherList.Follows {
		theirs[f] = struct{}{}
	}
	var out []domain.Identity
	for _, f := range rootList.Follows {
		if _, ok := theirs[f]; ok {
			out = append(out, f)
		}
	}
	return out, nil
}

// RefreshRoot re-checks the current root's own follow list and rebuilds the
// graph if it changed. It reports whether a rebuild happened.
func (s *Service) RefreshRoot(ctx context.Context) (bool, error) {
	root, ok := s.Root()
	if !ok {
		return false, domain.ErrNoRoot
	}
	_, rebuilt, err := s.cache.Refresh(ctx, root, s.params.MaxDepth)
	return rebuilt, err
}

// Invalidate drops every cached graph for the given root.
func (s *Service) Invalidate(root domain.Identity) {
	s.cache.Invalidate(root)
}

// ClearCache drops every cached graph and contact list.
func (s *Service) ClearCache() {
	s.cache.InvalidateAll()
	s.contacts.InvalidateAll()
}

// CacheStats reports the size of the engine's caches.
func (s *Service) CacheStats() domain.CacheStats {
	return domain.CacheStats{
		ContactListEntries: s.contacts.Len(),
		GraphEntries:       s.cache.Len(),
	}
}

// Graph exposes the current root's graph for read-only inspection, e.g. the
// CLI's trusted-set listing. It returns false when no root is set or the
// build was cancelled.
func (s *Service) Graph(ctx context.Context) (*domain.TrustGraph, bool) {
	g := s.graph(ctx)
	return g, g != nil
}
