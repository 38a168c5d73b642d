// Package testutil provides feed fixtures with sensible defaults and
// in-memory fakes for the cache, index, and notifier collaborators.
package testutil

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rlucioni/cyclebot/internal/mlb"
)

// Frozen reference times shared by tests: the default play ends a few
// minutes before "now"
var (
	Now       = time.Date(2018, 4, 13, 14, 15, 0, 0, time.UTC)
	PlayStart = time.Date(2018, 4, 13, 14, 9, 57, 0, time.UTC)
	PlayEnd   = time.Date(2018, 4, 13, 14, 11, 10, 0, time.UTC)
)

// Schedule creates a schedule response listing games under one date
func Schedule(date string, games ...mlb.ScheduledGame) *mlb.Schedule {
	if len(games) == 0 {
		return &mlb.Schedule{}
	}

	return &mlb.Schedule{
		Dates: []mlb.ScheduleDate{
			{Date: date, Games: games},
		},
	}
}

// Game creates a scheduled game with default team names
func Game(key int, state string, overrides ...func(*mlb.ScheduledGame)) mlb.ScheduledGame {
	game := mlb.ScheduledGame{
		GamePk: key,
		Status: mlb.GameStatus{
			AbstractGameState: state,
			DetailedState:     state,
		},
	}
	game.Teams.Away.Team.Name = "New York Yankees"
	game.Teams.Home.Team.Name = "Boston Red Sox"

	for _, override := range overrides {
		override(&game)
	}

	return game
}

// Feed creates a live-feed response with functional overrides
func Feed(overrides ...func(*mlb.Feed)) *mlb.Feed {
	feed := &mlb.Feed{}
	feed.LiveData.Linescore.CurrentInningOrdinal = "1st"
	feed.LiveData.Boxscore.Teams.Away.Team.Name = "New York Yankees"
	feed.LiveData.Boxscore.Teams.Home.Team.Name = "Boston Red Sox"

	for _, override := range overrides {
		override(feed)
	}

	return feed
}

// WithRosters fills both boxscore sides. Players listed first are assumed
// to be the probable pitchers, matching the feed convention the tests for
// the original relied on.
func WithRosters(away, home []mlb.BoxPlayer) func(*mlb.Feed) {
	return func(feed *mlb.Feed) {
		feed.LiveData.Boxscore.Teams.Away.Players = playerMap(away)
		feed.LiveData.Boxscore.Teams.Home.Players = playerMap(home)

		if len(away) > 0 && len(home) > 0 {
			feed.GameData.ProbablePitchers = map[string]mlb.PersonRef{
				"away": {ID: away[0].Person.ID},
				"home": {ID: home[0].Person.ID},
			}
		}
	}
}

// WithPlays sets the chronological play log, least to most recent
func WithPlays(plays ...mlb.Play) func(*mlb.Feed) {
	return func(feed *mlb.Feed) {
		feed.LiveData.Plays.AllPlays = plays
	}
}

// WithInning sets the current inning ordinal
func WithInning(ordinal string) func(*mlb.Feed) {
	return func(feed *mlb.Feed) {
		feed.LiveData.Linescore.CurrentInningOrdinal = ordinal
	}
}

func playerMap(players []mlb.BoxPlayer) map[string]mlb.BoxPlayer {
	m := make(map[string]mlb.BoxPlayer, len(players))
	for _, p := range players {
		m[fmt.Sprintf("ID%d", p.Person.ID)] = p
	}
	return m
}

// BoxPlayer creates a roster entry with zeroed stats
func BoxPlayer(id int, name string, overrides ...func(*mlb.BoxPlayer)) mlb.BoxPlayer {
	player := mlb.BoxPlayer{}
	player.Person.ID = id
	player.Person.FullName = name
	player.Stats.Pitching.InningsPitched = "0.0"
	player.SeasonStats.Pitching.InningsPitched = "0.0"

	for _, override := range overrides {
		override(&player)
	}

	return player
}

// WithGameBatting sets in-game hits and at-bats
func WithGameBatting(hits, atBats int) func(*mlb.BoxPlayer) {
	return func(p *mlb.BoxPlayer) {
		p.Stats.Batting.Hits = hits
		p.Stats.Batting.AtBats = atBats
	}
}

// WithSeasonHomeRuns sets the season-to-date home run count
func WithSeasonHomeRuns(hr int) func(*mlb.BoxPlayer) {
	return func(p *mlb.BoxPlayer) {
		p.SeasonStats.Batting.HomeRuns = hr
	}
}

// WithPitchingLine sets the in-game pitching counters
func WithPitchingLine(hits, runs, pitches int, innings string) func(*mlb.BoxPlayer) {
	return func(p *mlb.BoxPlayer) {
		p.Stats.Pitching.Hits = hits
		p.Stats.Pitching.Runs = runs
		p.Stats.Pitching.PitchesThrown = pitches
		p.Stats.Pitching.InningsPitched = innings
	}
}

// Play creates a play with a generated id and default timing
func Play(batterID int, overrides ...func(*mlb.Play)) mlb.Play {
	play := mlb.Play{}
	play.Result.Event = "Single"
	play.About.StartTime = PlayStart
	play.About.EndTime = PlayEnd
	play.Matchup.Batter.ID = batterID
	play.PlayEvents = []mlb.PlayEvent{{PlayID: uuid.NewString()}}

	for _, override := range overrides {
		override(&play)
	}

	return play
}

// WithEvent sets the play's event label
func WithEvent(event string) func(*mlb.Play) {
	return func(p *mlb.Play) {
		p.Result.Event = event
	}
}

// WithRBI sets the play's RBI count
func WithRBI(rbi int) func(*mlb.Play) {
	return func(p *mlb.Play) {
		p.Result.RBI = rbi
	}
}

// WithCaptivatingIndex sets the feed's excitement score
func WithCaptivatingIndex(ci int) func(*mlb.Play) {
	return func(p *mlb.Play) {
		p.About.CaptivatingIndex = ci
	}
}

// WithPlayID sets the play's signature; empty clears it
func WithPlayID(id string) func(*mlb.Play) {
	return func(p *mlb.Play) {
		if id == "" {
			p.PlayEvents = nil
			return
		}
		p.PlayEvents = []mlb.PlayEvent{{PlayID: id}}
	}
}

// WithEndTime sets when the play ended
func WithEndTime(t time.Time) func(*mlb.Play) {
	return func(p *mlb.Play) {
		p.About.EndTime = t
	}
}

// Content creates a content response from highlight items
func Content(items ...mlb.HighlightItem) *mlb.Content {
	content := &mlb.Content{}
	content.Highlights.Live.Items = items
	return content
}

// HighlightItem creates a highlight with the standard two renditions
func HighlightItem(id string, playerID int, svID string) mlb.HighlightItem {
	item := mlb.HighlightItem{
		ID:          id,
		Description: "something happened",
		KeywordsAll: []mlb.Keyword{
			{Type: "player_id", Value: mlb.FlexString(fmt.Sprintf("%d", playerID))},
		},
		Playbacks: []mlb.Playback{
			{URL: fmt.Sprintf("https://www.example.com/%s/1800K.mp4", id)},
			{URL: fmt.Sprintf("https://www.example.com/%s/2500K.mp4", id)},
		},
	}

	if svID != "" {
		item.KeywordsAll = append(item.KeywordsAll, mlb.Keyword{Type: "sv_id", Value: mlb.FlexString(svID)})
	}

	return item
}
