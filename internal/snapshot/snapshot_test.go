package snapshot

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rlucioni/cyclebot/internal/mlb"
	"github.com/rlucioni/cyclebot/internal/testutil"
)

func TestBuild(t *testing.T) {
	alice := testutil.BoxPlayer(101010, "alice", testutil.WithPitchingLine(0, 0, 86, "7.0"))
	bob := testutil.BoxPlayer(202020, "bob",
		testutil.WithGameBatting(4, 5),
		testutil.WithSeasonHomeRuns(14),
	)
	carol := testutil.BoxPlayer(303030, "carol")

	feed := testutil.Feed(
		testutil.WithRosters([]mlb.BoxPlayer{alice, bob}, []mlb.BoxPlayer{carol}),
		testutil.WithPlays(
			testutil.Play(202020, testutil.WithEvent("Single"), testutil.WithPlayID("sv-1")),
			testutil.Play(202020, testutil.WithEvent("Double"), testutil.WithPlayID("sv-2")),
		),
		testutil.WithInning("7th"),
	)

	snap := Build(123456, feed)

	require.Equal(t, 123456, snap.GameKey)
	require.Equal(t, "7th", snap.InningOrdinal)

	// Feed order preserved
	require.Len(t, snap.Plays, 2)
	require.Equal(t, "sv-1", snap.Plays[0].ID)
	require.Equal(t, "Single", snap.Plays[0].Event)
	require.Equal(t, "sv-2", snap.Plays[1].ID)

	require.Len(t, snap.Players, 3)
	require.Equal(t, "New York Yankees", snap.Players[202020].Team)
	require.Equal(t, "Boston Red Sox", snap.Players[303030].Team)
	require.Equal(t, 4, snap.Players[202020].Batting.Hits)
	require.Equal(t, 5, snap.Players[202020].Batting.AtBats)
	require.Equal(t, 14, snap.Players[202020].SeasonBatting.HomeRuns)
	require.Equal(t, "7.0", snap.Players[101010].Pitching.InningsPitched)

	require.ElementsMatch(t, []int{101010, 303030}, snap.ProbablePitchers)
}

func TestBuildDegradesOnMissingFields(t *testing.T) {
	snap := Build(123456, &mlb.Feed{})

	require.Empty(t, snap.Plays)
	require.Empty(t, snap.Players)
	require.Empty(t, snap.ProbablePitchers)
	require.Equal(t, "", snap.InningOrdinal)
}

func TestBuildDefaultsInningsPitched(t *testing.T) {
	player := testutil.BoxPlayer(101010, "alice")
	player.Stats.Pitching.InningsPitched = ""

	feed := testutil.Feed(testutil.WithRosters(
		[]mlb.BoxPlayer{player},
		[]mlb.BoxPlayer{testutil.BoxPlayer(303030, "carol")},
	))

	snap := Build(123456, feed)
	require.Equal(t, "0.0", snap.Players[101010].Pitching.InningsPitched)
}

func TestHighlights(t *testing.T) {
	content := testutil.Content(
		testutil.HighlightItem("123", 202020, "sv-1"),
		testutil.HighlightItem("456", 303030, ""),
	)

	highlights := Highlights(content)
	require.Len(t, highlights, 2)

	first := highlights[0]
	require.Equal(t, "123", first.ID)
	require.Equal(t, "something happened", first.Description)
	require.Equal(t, []string{"sv-1"}, first.SvIDs)
	require.Equal(t, []string{"202020"}, first.PlayerIDs)
	require.Equal(t, []string{
		"https://www.example.com/123/1800K.mp4",
		"https://www.example.com/123/2500K.mp4",
	}, first.Playbacks)

	require.Empty(t, highlights[1].SvIDs)
}

func TestHighlightsSkipsItemsWithoutID(t *testing.T) {
	item := testutil.HighlightItem("", 202020, "sv-1")
	content := testutil.Content(item)

	require.Empty(t, Highlights(content))
}

func TestHighlightsEmptyContent(t *testing.T) {
	require.Empty(t, Highlights(&mlb.Content{}))
}
