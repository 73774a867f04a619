package domain

import (
	"iter"
	"math"
	"strconv"
)

// InfiniteDistance is the distance reported for identities that were not
// reached within the build depth. Callers treat it as "untrusted by default".
const InfiniteDistance = math.MaxInt

// TrustNode is one identity's position in a trust graph.
//
// Distance is the minimum number of hops from the root found anywhere in the
// discovered portion of the graph. Score is DecayFactor^Distance, so the
// root is always (0, 1.0). FollowedBy records which already-visited
// identities follow this one (provenance, not a full reverse index).
type TrustNode struct {
	Pubkey     Identity
	Distance   int
	Score      float64
	FollowedBy map[Identity]struct{}
}

// IsFollowedBy reports whether the given identity is recorded as a follower
// of this node.
func (n *TrustNode) IsFollowedBy(id Identity) bool {
	_, ok := n.FollowedBy[id]
	return ok
}

// ScoreForDistance computes the decayed trust score for a hop distance.
func ScoreForDistance(decay float64, distance int) float64 {
	return math.Pow(decay, float64(distance))
}

// TrustGraph holds every identity reachable from one root within a bounded
// number of hops, keyed by identity. Once published by the builder a graph
// is immutable and may be read concurrently without synchronization.
type TrustGraph struct {
	root  Identity
	nodes map[Identity]*TrustNode
}

// NewTrustGraph wraps a fully built node map. The builder hands the map over
// and never touches it again.
func NewTrustGraph(root Identity, nodes map[Identity]*TrustNode) *TrustGraph {
	return &TrustGraph{root: root, nodes: nodes}
}

// Root returns the identity the graph was built for.
func (g *TrustGraph) Root() Identity { return g.root }

// Node returns the trust node for an identity, or false if it was not
// reached within the build depth.
func (g *TrustGraph) Node(id Identity) (*TrustNode, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Contains reports whether the identity was reached within the build depth.
func (g *TrustGraph) Contains(id Identity) bool {
	_, ok := g.nodes[id]
	return ok
}

// Distance returns the hop distance for an identity, or InfiniteDistance if
// it was not reached.
func (g *TrustGraph) Distance(id Identity) int {
	if n, ok := g.nodes[id]; ok {
		return n.Distance
	}
	return InfiniteDistance
}

// Score returns the decayed trust score for an identity, or 0 if it was not
// reached.
func (g *TrustGraph) Score(id Identity) float64 {
	if n, ok := g.nodes[id]; ok {
		return n.Score
	}
	return 0
}

// Size returns the number of identities in the graph, including the root.
func (g *TrustGraph) Size() int { return len(g.nodes) }

// Nodes returns an iterator over all trust nodes. Iteration order is
// unspecified.
func (g *TrustGraph) Nodes() iter.Seq[*TrustNode] {
	return func(yield func(*TrustNode) bool) {
		for _, n := range g.nodes {
			if !yield(n) {
				return
			}
		}
	}
}

// GraphKey identifies one cached trust graph build.
type GraphKey struct {
	Root     Identity
	MaxDepth int
}

// String renders the key in a form usable as a singleflight key.
func (k GraphKey) String() string {
	return string(k.Root) + "#" + strconv.Itoa(k.MaxDepth)
}

// CacheStats reports the size of the engine's two caches.
type CacheStats struct {
	ContactListEntries int
	GraphEntries       int
}
