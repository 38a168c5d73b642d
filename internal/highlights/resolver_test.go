package highlights

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rlucioni/cyclebot/internal/testutil"
	"github.com/rlucioni/cyclebot/pkg/models"
)

const gameKey = 123456

func newTestResolver(index Index, cache Cache) *Resolver {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := NewResolver(index, cache, 900*time.Second, "2500K", logger)
	return r.WithClock(func() time.Time { return testutil.Now })
}

func highlight(id string, playerIDs, svIDs []string) models.Highlight {
	return models.Highlight{
		ID:          id,
		Description: "something happened",
		SvIDs:       svIDs,
		PlayerIDs:   playerIDs,
		Playbacks: []string{
			"https://www.example.com/" + id + "/1800K.mp4",
			"https://www.example.com/" + id + "/2500K.mp4",
		},
	}
}

func freshPlay() models.Play {
	return models.Play{
		ID:       "sv-1",
		BatterID: 202020,
		EndTime:  testutil.PlayEnd,
	}
}

func TestResolvePrefersSvID(t *testing.T) {
	index := testutil.NewMemIndex()
	cache := testutil.NewMemCache()
	r := newTestResolver(index, cache)
	ctx := context.Background()

	// Both correlate to the batter, only one carries the play's signature
	byPlayer := highlight("111", []string{"202020"}, nil)
	bySv := highlight("222", []string{"999"}, []string{"sv-1"})

	require.NoError(t, index.Record(ctx, gameKey, "111", testutil.Now))
	require.NoError(t, index.Record(ctx, gameKey, "222", testutil.Now))

	resolved, err := r.Resolve(ctx, gameKey, freshPlay(), []models.Highlight{byPlayer, bySv})
	require.NoError(t, err)
	require.NotNil(t, resolved)
	require.Equal(t, "https://www.example.com/222/2500K.mp4", resolved.PlaybackURL)
}

func TestResolveFallsBackToPlayerID(t *testing.T) {
	index := testutil.NewMemIndex()
	cache := testutil.NewMemCache()
	r := newTestResolver(index, cache)
	ctx := context.Background()

	byPlayer := highlight("111", []string{"202020"}, nil)
	require.NoError(t, index.Record(ctx, gameKey, "111", testutil.Now))

	resolved, err := r.Resolve(ctx, gameKey, freshPlay(), []models.Highlight{byPlayer})
	require.NoError(t, err)
	require.NotNil(t, resolved)
	require.Equal(t, "https://www.example.com/111/2500K.mp4", resolved.PlaybackURL)
	require.Equal(t, "something happened", resolved.Description)
}

func TestResolveStalePlayNeverAlerts(t *testing.T) {
	index := testutil.NewMemIndex()
	cache := testutil.NewMemCache()
	r := newTestResolver(index, cache)
	ctx := context.Background()

	h := highlight("111", nil, []string{"sv-1"})
	require.NoError(t, index.Record(ctx, gameKey, "111", testutil.Now))

	play := freshPlay()
	play.EndTime = testutil.Now.Add(-1 * time.Hour)

	// Matching highlight exists and the cache is empty, but the play is
	// past the staleness horizon
	resolved, err := r.Resolve(ctx, gameKey, play, []models.Highlight{h})
	require.NoError(t, err)
	require.Nil(t, resolved)
}

func TestResolveSkipsAlreadyAlerted(t *testing.T) {
	index := testutil.NewMemIndex()
	cache := testutil.NewMemCache()
	r := newTestResolver(index, cache)
	ctx := context.Background()

	h := highlight("111", nil, []string{"sv-1"})
	require.NoError(t, index.Record(ctx, gameKey, "111", testutil.Now))
	require.NoError(t, cache.Mark(ctx, "highlight", "sv-1"))

	resolved, err := r.Resolve(ctx, gameKey, freshPlay(), []models.Highlight{h})
	require.NoError(t, err)
	require.Nil(t, resolved)
}

func TestResolveUnavailableDoesNotMark(t *testing.T) {
	index := testutil.NewMemIndex()
	cache := testutil.NewMemCache()
	r := newTestResolver(index, cache)
	ctx := context.Background()

	resolved, err := r.Resolve(ctx, gameKey, freshPlay(), nil)
	require.NoError(t, err)
	require.Nil(t, resolved)

	// A future poll must still be able to resolve this play
	seen, err := cache.Seen(ctx, "highlight", "sv-1")
	require.NoError(t, err)
	require.False(t, seen)
}

func TestResolveIgnoresHighlightsBeforePlayEnd(t *testing.T) {
	index := testutil.NewMemIndex()
	cache := testutil.NewMemCache()
	r := newTestResolver(index, cache)
	ctx := context.Background()

	// First seen before the play ended: cannot be this play's highlight
	h := highlight("111", nil, []string{"sv-1"})
	require.NoError(t, index.Record(ctx, gameKey, "111", testutil.PlayEnd.Add(-1*time.Minute)))

	resolved, err := r.Resolve(ctx, gameKey, freshPlay(), []models.Highlight{h})
	require.NoError(t, err)
	require.Nil(t, resolved)
}

func TestResolveNoMatchingRendition(t *testing.T) {
	index := testutil.NewMemIndex()
	cache := testutil.NewMemCache()
	r := newTestResolver(index, cache)
	ctx := context.Background()

	h := highlight("111", nil, []string{"sv-1"})
	h.Playbacks = []string{"https://www.example.com/111/1800K.mp4"}
	require.NoError(t, index.Record(ctx, gameKey, "111", testutil.Now))

	resolved, err := r.Resolve(ctx, gameKey, freshPlay(), []models.Highlight{h})
	require.NoError(t, err)
	require.Nil(t, resolved)
}

func TestResolveSkipsPlayWithoutID(t *testing.T) {
	index := testutil.NewMemIndex()
	cache := testutil.NewMemCache()
	r := newTestResolver(index, cache)
	ctx := context.Background()

	play := freshPlay()
	play.ID = ""

	resolved, err := r.Resolve(ctx, gameKey, play, nil)
	require.NoError(t, err)
	require.Nil(t, resolved)
}
