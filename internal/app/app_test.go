package app_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/drift/internal/adapters/contacts"
	"go.trai.ch/drift/internal/adapters/logger"
	"go.trai.ch/drift/internal/adapters/telemetry"
	"go.trai.ch/drift/internal/app"
	"go.trai.ch/drift/internal/core/domain"
	"go.trai.ch/drift/internal/core/ports/mocks"
	"go.trai.ch/drift/internal/engine/trust"
	"go.uber.org/mock/gomock"
)

// testStack is the full engine over a mutable in-memory follow graph.
type testStack struct {
	svc   *app.Service
	store *contacts.Store

	mu      sync.Mutex
	follows map[domain.Identity][]domain.Identity
}

func newTestStack(t *testing.T, follows map[domain.Identity][]domain.Identity) *testStack {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	ts := &testStack{follows: follows}
	if ts.follows == nil {
		ts.follows = make(map[domain.Identity][]domain.Identity)
	}

	fetcher := mocks.NewMockContactListFetcher(ctrl)
	fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id domain.Identity) ([]domain.Identity, error) {
			ts.mu.Lock()
			defer ts.mu.Unlock()
			return ts.follows[id], nil
		}).
		AnyTimes()

	log := logger.NewWithWriter(io.Discard, slog.LevelError)
	params := domain.DefaultParams()
	ts.store = contacts.NewStore(fetcher, log, params)
	builder := trust.NewBuilder(ts.store, log, params)
	cache := trust.NewCache(builder, ts.store, log, telemetry.NewNoop(), params)

	svc, err := app.New(ts.store, cache, log, params)
	require.NoError(t, err)
	ts.svc = svc
	return ts
}

func TestService_New_RejectsInvalidParams(t *testing.T) {
	bad := domain.DefaultParams()
	bad.MaxDepth = 0

	_, err := app.New(nil, nil, logger.NewWithWriter(io.Discard, slog.LevelError), bad)
	assert.ErrorIs(t, err, domain.ErrInvalidParams)
}

func TestService_NoRootFailsOpen(t *testing.T) {
	ts := newTestStack(t, nil)
	ctx := context.Background()

	_, ok := ts.svc.Root()
	assert.False(t, ok)

	_, found := ts.svc.Score(ctx, "bob")
	assert.False(t, found)
	assert.Equal(t, domain.InfiniteDistance, ts.svc.Distance(ctx, "bob"))
	assert.False(t, ts.svc.IsTrusted(ctx, "bob"))
	assert.Empty(t, ts.svc.FilterTrusted(ctx, []domain.Identity{"bob"}, 2))

	// Post filtering must never block the feed: with no root, everything
	// passes through untouched.
	posts := []domain.Post{{ID: "1", Author: "bob"}, {ID: "2"}}
	assert.Equal(t, posts, ts.svc.FilterPosts(ctx, posts, 2))
	assert.Equal(t, posts, ts.svc.SortPostsByTrust(ctx, posts))

	mutuals, err := ts.svc.MutualFollows(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, mutuals)

	_, err = ts.svc.RefreshRoot(ctx)
	assert.ErrorIs(t, err, domain.ErrNoRoot)
}

func TestService_ScoreAndDistance(t *testing.T) {
	ts := newTestStack(t, map[domain.Identity][]domain.Identity{
		"root":   {"friend"},
		"friend": {"fof"},
		"fof":    {"deep"},
	})
	ts.svc.SetRoot("root")
	ctx := context.Background()

	self, ok := ts.svc.Score(ctx, "root")
	require.True(t, ok)
	assert.Equal(t, 0, self.Distance)
	assert.Equal(t, 1.0, self.Score)

	node, ok := ts.svc.Score(ctx, "fof")
	require.True(t, ok)
	assert.Equal(t, 2, node.Distance)
	assert.Equal(t, 0.25, node.Score)

	assert.Equal(t, 3, ts.svc.Distance(ctx, "deep"))
	assert.Equal(t, domain.InfiniteDistance, ts.svc.Distance(ctx, "stranger"))

	assert.True(t, ts.svc.IsWithinDistance(ctx, "friend", 1))
	assert.False(t, ts.svc.IsWithinDistance(ctx, "fof", 1))

	// Default policy: self, follows and friends-of-friends are trusted.
	assert.True(t, ts.svc.IsTrusted(ctx, "root"))
	assert.True(t, ts.svc.IsTrusted(ctx, "friend"))
	assert.True(t, ts.svc.IsTrusted(ctx, "fof"))
	assert.False(t, ts.svc.IsTrusted(ctx, "deep"))
	assert.False(t, ts.svc.IsTrusted(ctx, "stranger"))
}

func TestService_FilterTrustedPreservesOrder(t *testing.T) {
	ts := newTestStack(t, map[domain.Identity][]domain.Identity{
		"root": {"b", "c"},
		"b":    {"d"},
	})
	ts.svc.SetRoot("root")

	in := []domain.Identity{"d", "stranger", "root", "b", "other", "c"}
	out := ts.svc.FilterTrusted(context.Background(), in, 2)

	assert.Equal(t, []domain.Identity{"d", "root", "b", "c"}, out)
}

func TestService_FilterPosts(t *testing.T) {
	ts := newTestStack(t, map[domain.Identity][]domain.Identity{
		"root": {"b"},
	})
	ts.svc.SetRoot("root")

	posts := []domain.Post{
		{ID: "by-friend", Author: "b"},
		{ID: "anonymous"}, // no author pubkey: passes through (fail-open)
		{ID: "by-stranger", Author: "z"},
	}
	out := ts.svc.FilterPosts(context.Background(), posts, 2)

	require.Len(t, out, 2)
	assert.Equal(t, "by-friend", out[0].ID)
	assert.Equal(t, "anonymous", out[1].ID)
}

func TestService_SortPostsByTrust(t *testing.T) {
	ts := newTestStack(t, map[domain.Identity][]domain.Identity{
		"root": {"near"},
		"near": {"far"},
	})
	ts.svc.SetRoot("root")

	now := time.Now()
	posts := []domain.Post{
		{ID: "anonymous", CreatedAt: now},
		{ID: "from-far", Author: "far", CreatedAt: now},
		{ID: "from-stranger", Author: "nobody", CreatedAt: now},
		{ID: "from-near", Author: "near", CreatedAt: now},
		{ID: "from-root", Author: "root", CreatedAt: now},
	}
	out := ts.svc.SortPostsByTrust(context.Background(), posts)

	require.Len(t, out, 5)
	assert.Equal(t, "from-root", out[0].ID)
	assert.Equal(t, "from-near", out[1].ID)
	assert.Equal(t, "from-far", out[2].ID)
	// Zero-score posts keep their relative input order (stable sort).
	assert.Equal(t, "anonymous", out[3].ID)
	assert.Equal(t, "from-stranger", out[4].ID)

	// The input slice is untouched.
	assert.Equal(t, "anonymous", posts[0].ID)
}

func TestService_MutualFollows(t *testing.T) {
	ts := newTestStack(t, map[domain.Identity][]domain.Identity{
		"root":  {"a", "b", "c"},
		"other": {"b", "c", "d"},
		"a":     {"root"},
	})
	ts.svc.SetRoot("root")
	ctx := context.Background()

	mutual, err := ts.svc.AreMutualFollows(ctx, "root", "a")
	require.NoError(t, err)
	assert.True(t, mutual)

	mutual, err = ts.svc.AreMutualFollows(ctx, "root", "b")
	require.NoError(t, err)
	assert.False(t, mutual, "b does not follow root back")

	shared, err := ts.svc.MutualFollows(ctx, "other")
	require.NoError(t, err)
	assert.Equal(t, []domain.Identity{"b", "c"}, shared, "intersection in root's list order")
}

func TestService_SetRootTransitions(t *testing.T) {
	ts := newTestStack(t, map[domain.Identity][]domain.Identity{
		"alice": {"x"},
		"bob":   {"y"},
	})
	ctx := context.Background()

	// unset -> set
	ts.svc.SetRoot("alice")
	assert.Equal(t, 1, ts.svc.Distance(ctx, "x"))
	assert.Equal(t, 1, ts.svc.CacheStats().GraphEntries)

	// set -> different value: previous graphs dropped.
	ts.svc.SetRoot("bob")
	assert.Equal(t, 0, ts.svc.CacheStats().GraphEntries)
	assert.Equal(t, 1, ts.svc.Distance(ctx, "y"))
	assert.Equal(t, domain.InfiniteDistance, ts.svc.Distance(ctx, "x"))

	// set -> unset (logout): queries fail open again.
	ts.svc.SetRoot("")
	assert.Equal(t, 0, ts.svc.CacheStats().GraphEntries)
	assert.Equal(t, domain.InfiniteDistance, ts.svc.Distance(ctx, "y"))

	// Re-setting the same (empty) root is not a transition.
	ts.svc.SetRoot("")
	_, ok := ts.svc.Root()
	assert.False(t, ok)
}

func TestService_RefreshRoot(t *testing.T) {
	ts := newTestStack(t, map[domain.Identity][]domain.Identity{
		"root": {"b"},
	})
	ts.svc.SetRoot("root")
	ctx := context.Background()

	require.Equal(t, 1, ts.svc.Distance(ctx, "b"))

	rebuilt, err := ts.svc.RefreshRoot(ctx)
	require.NoError(t, err)
	assert.False(t, rebuilt, "unchanged follow list needs no rebuild")

	ts.mu.Lock()
	ts.follows["root"] = []domain.Identity{"b", "c"}
	ts.mu.Unlock()

	rebuilt, err = ts.svc.RefreshRoot(ctx)
	require.NoError(t, err)
	assert.True(t, rebuilt)
	assert.Equal(t, 1, ts.svc.Distance(ctx, "c"))
}

func TestService_ClearCacheAndStats(t *testing.T) {
	ts := newTestStack(t, map[domain.Identity][]domain.Identity{
		"root": {"b"},
	})
	ts.svc.SetRoot("root")
	ctx := context.Background()

	_ = ts.svc.Distance(ctx, "b")
	stats := ts.svc.CacheStats()
	assert.Equal(t, 1, stats.GraphEntries)
	assert.Equal(t, 2, stats.ContactListEntries, "root and b were fetched")

	ts.svc.ClearCache()
	stats = ts.svc.CacheStats()
	assert.Equal(t, 0, stats.GraphEntries)
	assert.Equal(t, 0, stats.ContactListEntries)
}

func TestService_InvalidateRoot(t *testing.T) {
	ts := newTestStack(t, map[domain.Identity][]domain.Identity{
		"root": {"b"},
	})
	ts.svc.SetRoot("root")
	ctx := context.Background()

	_ = ts.svc.Distance(ctx, "b")
	require.Equal(t, 1, ts.svc.CacheStats().GraphEntries)

	ts.svc.Invalidate("root")
	assert.Equal(t, 0, ts.svc.CacheStats().GraphEntries)
}
