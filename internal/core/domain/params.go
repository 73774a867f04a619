package domain

import (
	"time"

	"go.trai.ch/zerr"
)

// Params bundles the tunables of the trust engine. Constructed once and
// injected into every component; the zero value is not usable, start from
// DefaultParams.
type Params struct {
	// ContactTTL bounds how long a fetched follow list is served from cache.
	// Follow graphs change slowly; a short TTL keeps spam-resistance data
	// fresh without re-fetching on every render.
	ContactTTL time.Duration
	// GraphTTL bounds how long a built trust graph is served from cache.
	GraphTTL time.Duration
	// FetchBatchSize is the number of identities fetched per network batch.
	FetchBatchSize int
	// FetchTimeout bounds a single network batch, not a whole graph build.
	FetchTimeout time.Duration
	// MaxFollowsPerLevel caps how many entries of one follow list the
	// builder consumes. A defensive cap against adversarially huge lists,
	// not a quality filter.
	MaxFollowsPerLevel int
	// MaxDepth is the hop bound for graph builds.
	MaxDepth int
	// DecayFactor is the per-hop score multiplier, in (0, 1].
	DecayFactor float64
	// TrustedMaxDistance is the default policy cutoff for IsTrusted:
	// self, direct follow and friend-of-friend.
	TrustedMaxDistance int
}

// DefaultParams returns the production defaults.
func DefaultParams() Params {
	return Params{
		ContactTTL:         5 * time.Minute,
		GraphTTL:           5 * time.Minute,
		FetchBatchSize:     20,
		FetchTimeout:       10 * time.Second,
		MaxFollowsPerLevel: 500,
		MaxDepth:           3,
		DecayFactor:        0.5,
		TrustedMaxDistance: 2,
	}
}

// Validate checks every field for a usable value.
func (p Params) Validate() error {
	switch {
	case p.ContactTTL <= 0:
		return zerr.With(ErrInvalidParams, "field", "contact_ttl")
	case p.GraphTTL <= 0:
		return zerr.With(ErrInvalidParams, "field", "graph_ttl")
	case p.FetchBatchSize <= 0:
		return zerr.With(ErrInvalidParams, "field", "fetch_batch_size")
	case p.FetchTimeout <= 0:
		return zerr.With(ErrInvalidParams, "field", "fetch_timeout")
	case p.MaxFollowsPerLevel <= 0:
		return zerr.With(ErrInvalidParams, "field", "max_follows_per_level")
	case p.MaxDepth <= 0:
		return zerr.With(ErrInvalidParams, "field", "max_depth")
	case p.DecayFactor <= 0 || p.DecayFactor > 1:
		return zerr.With(ErrInvalidParams, "field", "decay_factor")
	case p.TrustedMaxDistance < 0:
		return zerr.With(ErrInvalidParams, "field", "trusted_max_distance")
	}
	return nil
}
