// Package trust implements the web-of-trust graph engine: a bounded
// breadth-first builder over fetched follow lists, and a TTL cache that
// coalesces concurrent builds for the same root.
package trust

import (
	"context"
	"fmt"

	"go.trai.ch/drift/internal/core/domain"
	"go.trai.ch/drift/internal/core/ports"
)

// Builder produces a complete trust graph for one root within a bounded
// number of hops. A Builder holds no per-build state and is safe for
// concurrent use.
type Builder struct {
	contacts   ports.ContactSource
	log        ports.Logger
	maxFollows int
	decay      float64
}

// NewBuilder creates a Builder over the given contact source.
func NewBuilder(contacts ports.ContactSource, log ports.Logger, p domain.Params) *Builder {
	return &Builder{
		contacts:   contacts,
		log:        log,
		maxFollows: p.MaxFollowsPerLevel,
		decay:      p.DecayFactor,
	}
}

// Build runs a level-synchronous BFS from root to at most maxDepth hops and
// returns a freshly allocated graph. All nodes at depth d are processed
// before any node at depth d+1, so the first discovery of an identity is at
// its minimum distance and its score is never reassigned. Cycles terminate
// because an identity is only ever inserted once.
//
// The returned error is non-nil only when ctx is done; fetch failures have
// already been degraded to empty lists by the contact source.
func (b *Builder) Build(ctx context.Context, root domain.Identity, maxDepth int) (*domain.TrustGraph, error) {
	nodes := map[domain.Identity]*domain.TrustNode{
		root: {
			Pubkey:     root,
			Distance:   0,
			Score:      1.0,
			FollowedBy: make(map[domain.Identity]struct{}),
		},
	}
	frontier := []domain.Identity{root}

	vertex := ports.VertexFromContext(ctx)

	for depth := 1; depth <= maxDepth && len(frontier) > 0; depth++ {
		lists, err := b.contacts.FetchMany(ctx, frontier)
		if err != nil {
			return nil, err
		}
		if vertex != nil {
			vertex.Log(fmt.Sprintf("level %d: %d identities fetched", depth, len(frontier)))
		}

		score := domain.ScoreForDistance(b.decay, depth)
		var next []domain.Identity

		// Iterate the frontier slice rather than the result map so node
		// discovery order is deterministic for a fixed fetch result.
		for _, follower := range frontier {
			follows := lists[follower]
			if len(follows) > b.maxFollows {
				b.log.Debug("follow list truncated",
					"identity", follower.Short(), "len", len(follows), "cap", b.maxFollows)
				follows = follows[:b.maxFollows]
			}
			for _, followed := range follows {
				if followed == follower || followed == "" {
					continue
				}
				if existing, ok := nodes[followed]; ok {
					// Already discovered at an equal or lower depth; only
					// record the extra provenance edge.
					existing.FollowedBy[follower] = struct{}{}
					continue
				}
				nodes[followed] = &domain.TrustNode{
					Pubkey:     followed,
					Distance:   depth,
					Score:      score,
					FollowedBy: map[domain.Identity]struct{}{follower: {}},
				}
				next = append(next, followed)
			}
		}

		// next contains each newly inserted identity exactly once, so it is
		// already a deduplicated frontier.
		frontier = next
	}

	return domain.NewTrustGraph(root, nodes), nil
}
