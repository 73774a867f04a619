package trust_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/drift/internal/adapters/contacts"
	"go.trai.ch/drift/internal/adapters/logger"
	"go.trai.ch/drift/internal/core/domain"
	"go.trai.ch/drift/internal/core/ports"
	"go.trai.ch/drift/internal/core/ports/mocks"
	"go.trai.ch/drift/internal/engine/trust"
	"go.uber.org/mock/gomock"
)

func quietLogger() ports.Logger {
	return logger.NewWithWriter(io.Discard, slog.LevelError)
}

// graphFetcher wires a static follow graph behind the mock fetcher.
func graphFetcher(ctrl *gomock.Controller, follows map[domain.Identity][]domain.Identity) *mocks.MockContactListFetcher {
	fetcher := mocks.NewMockContactListFetcher(ctrl)
	fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id domain.Identity) ([]domain.Identity, error) {
			return follows[id], nil
		}).
		AnyTimes()
	return fetcher
}

func newBuilder(t *testing.T, follows map[domain.Identity][]domain.Identity, p domain.Params) *trust.Builder {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	store := contacts.NewStore(graphFetcher(ctrl, follows), quietLogger(), p)
	return trust.NewBuilder(store, quietLogger(), p)
}

func TestBuilder_ScenarioTwoLevels(t *testing.T) {
	// R follows {B, C}; B follows {D}; C follows nobody.
	follows := map[domain.Identity][]domain.Identity{
		"R": {"B", "C"},
		"B": {"D"},
	}
	b := newBuilder(t, follows, domain.DefaultParams())

	g, err := b.Build(context.Background(), "R", 2)
	require.NoError(t, err)

	assert.Equal(t, 4, g.Size())
	assert.Equal(t, 0, g.Distance("R"))
	assert.Equal(t, 1.0, g.Score("R"))
	assert.Equal(t, 1, g.Distance("B"))
	assert.Equal(t, 0.5, g.Score("B"))
	assert.Equal(t, 1, g.Distance("C"))
	assert.Equal(t, 0.5, g.Score("C"))
	assert.Equal(t, 2, g.Distance("D"))
	assert.Equal(t, 0.25, g.Score("D"))
}

func TestBuilder_MutualFollowCycle(t *testing.T) {
	// R and B follow each other; the build must terminate with exactly
	// R(0) and B(1).
	follows := map[domain.Identity][]domain.Identity{
		"R": {"B"},
		"B": {"R"},
	}
	b := newBuilder(t, follows, domain.DefaultParams())

	g, err := b.Build(context.Background(), "R", 3)
	require.NoError(t, err)

	assert.Equal(t, 2, g.Size())
	assert.Equal(t, 0, g.Distance("R"))
	assert.Equal(t, 1, g.Distance("B"))

	// B's follow of R is still recorded as provenance on the root node.
	root, _ := g.Node("R")
	assert.True(t, root.IsFollowedBy("B"))
}

func TestBuilder_LongerCycle(t *testing.T) {
	follows := map[domain.Identity][]domain.Identity{
		"A": {"B"},
		"B": {"C"},
		"C": {"A"},
	}
	b := newBuilder(t, follows, domain.DefaultParams())

	g, err := b.Build(context.Background(), "A", 5)
	require.NoError(t, err)

	assert.Equal(t, 3, g.Size())
	assert.Equal(t, 0, g.Distance("A"))
	assert.Equal(t, 1, g.Distance("B"))
	assert.Equal(t, 2, g.Distance("C"))
}

func TestBuilder_MinimumDistanceWins(t *testing.T) {
	// D is reachable at depth 1 via a direct follow and at depth 2 via B.
	// Its distance and score must reflect the shorter path, with both
	// followers recorded.
	follows := map[domain.Identity][]domain.Identity{
		"R": {"B", "D"},
		"B": {"D"},
	}
	b := newBuilder(t, follows, domain.DefaultParams())

	g, err := b.Build(context.Background(), "R", 3)
	require.NoError(t, err)

	d, ok := g.Node("D")
	require.True(t, ok)
	assert.Equal(t, 1, d.Distance)
	assert.Equal(t, 0.5, d.Score)
	assert.True(t, d.IsFollowedBy("R"))
	assert.True(t, d.IsFollowedBy("B"))
}

func TestBuilder_SelfLoopIgnored(t *testing.T) {
	follows := map[domain.Identity][]domain.Identity{
		"R": {"R", "B"},
		"B": {"B"},
	}
	b := newBuilder(t, follows, domain.DefaultParams())

	g, err := b.Build(context.Background(), "R", 2)
	require.NoError(t, err)

	assert.Equal(t, 2, g.Size())
	assert.Equal(t, 0, g.Distance("R"))
	assert.Equal(t, 1, g.Distance("B"))
}

func TestBuilder_DepthBound(t *testing.T) {
	follows := map[domain.Identity][]domain.Identity{
		"A": {"B"},
		"B": {"C"},
		"C": {"D"},
		"D": {"E"},
	}
	b := newBuilder(t, follows, domain.DefaultParams())

	g, err := b.Build(context.Background(), "A", 2)
	require.NoError(t, err)

	assert.True(t, g.Contains("C"))
	assert.False(t, g.Contains("D"), "identities beyond maxDepth must not be discovered")
	assert.Equal(t, domain.InfiniteDistance, g.Distance("D"))
}

func TestBuilder_TruncatesHugeFollowLists(t *testing.T) {
	huge := make([]domain.Identity, 0, 40)
	for i := range 40 {
		huge = append(huge, domain.Identity(fmt.Sprintf("spam-%02d", i)))
	}
	follows := map[domain.Identity][]domain.Identity{"R": huge}

	p := domain.DefaultParams()
	p.MaxFollowsPerLevel = 10
	b := newBuilder(t, follows, p)

	g, err := b.Build(context.Background(), "R", 1)
	require.NoError(t, err)

	// Root plus the first 10 entries, in fetch order.
	assert.Equal(t, 11, g.Size())
	assert.True(t, g.Contains("spam-09"))
	assert.False(t, g.Contains("spam-10"))
}

func TestBuilder_FetchFailureFailsOpen(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fetcher := mocks.NewMockContactListFetcher(ctrl)
	fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id domain.Identity) ([]domain.Identity, error) {
			switch id {
			case "R":
				return []domain.Identity{"B", "broken"}, nil
			case "B":
				return []domain.Identity{"C"}, nil
			default:
				return nil, errors.New("relay timeout")
			}
		}).
		AnyTimes()

	p := domain.DefaultParams()
	store := contacts.NewStore(fetcher, quietLogger(), p)
	b := trust.NewBuilder(store, quietLogger(), p)

	g, err := b.Build(context.Background(), "R", 2)
	require.NoError(t, err, "a single identity's fetch failure must not abort the build")

	assert.Equal(t, 1, g.Distance("broken"), "the failing identity itself is still discovered")
	assert.Equal(t, 2, g.Distance("C"), "the healthy branch is fully explored")
}

func TestBuilder_EmptyRootFollows(t *testing.T) {
	b := newBuilder(t, nil, domain.DefaultParams())

	g, err := b.Build(context.Background(), "loner", 3)
	require.NoError(t, err)

	assert.Equal(t, 1, g.Size())
	assert.Equal(t, 0, g.Distance("loner"))
	assert.Equal(t, 1.0, g.Score("loner"))
}

func TestBuilder_ScorePerDistance(t *testing.T) {
	follows := map[domain.Identity][]domain.Identity{
		"A": {"B"},
		"B": {"C"},
		"C": {"D"},
	}
	b := newBuilder(t, follows, domain.DefaultParams())

	g, err := b.Build(context.Background(), "A", 3)
	require.NoError(t, err)

	for n := range g.Nodes() {
		assert.Equal(t, domain.ScoreForDistance(0.5, n.Distance), n.Score,
			"score must equal decay^distance for %s", n.Pubkey)
	}
}
