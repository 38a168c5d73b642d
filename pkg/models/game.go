package models

import "time"

// GameState is the MLB abstract game state
type GameState string

const (
	StatePreview GameState = "preview"
	StateLive    GameState = "live"
	StateFinal   GameState = "final"
)

// Game is one entry from the schedule endpoint. Games are rediscovered on
// every poll and never persisted beyond the current cycle.
type Game struct {
	Key      int       `json:"key"`
	State    GameState `json:"state"`
	HomeTeam string    `json:"home_team"`
	AwayTeam string    `json:"away_team"`
	Series   string    `json:"series,omitempty"` // e.g. "Spring Training"
}

// HitType is the closed set of hit codes tracked for cycle detection
type HitType string

const (
	HitSingle  HitType = "1B"
	HitDouble  HitType = "2B"
	HitTriple  HitType = "3B"
	HitHomeRun HitType = "HR"
)

// Play is one element of a game's chronological play log. Plays are
// immutable once observed; the same play reappears verbatim across polls.
type Play struct {
	ID               string    `json:"id"` // per-play signature (sv_id); may be empty
	BatterID         int       `json:"batter_id"`
	Event            string    `json:"event"` // free-text label, e.g. "Home Run"
	RBI              int       `json:"rbi"`
	CaptivatingIndex int       `json:"captivating_index"` // 0-100 feed heuristic
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
}

// Batting holds cumulative batting counters
type Batting struct {
	Hits     int `json:"hits"`
	AtBats   int `json:"at_bats"`
	HomeRuns int `json:"home_runs"`
}

// Pitching holds cumulative pitching counters. InningsPitched keeps the
// feed's raw form ("7.1"): the fractional digit counts outs beyond full
// innings, not true tenths, so it is never converted to a real fraction.
type Pitching struct {
	Hits           int    `json:"hits"`
	Runs           int    `json:"runs"`
	PitchesThrown  int    `json:"pitches_thrown"`
	InningsPitched string `json:"innings_pitched"`
}

// Player is one boxscore entry, rebuilt fresh each poll from the feed's
// authoritative counters.
type Player struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Team          string   `json:"team"`
	Batting       Batting  `json:"batting"`
	SeasonBatting Batting  `json:"season_batting"`
	Pitching      Pitching `json:"pitching"`
}

// Snapshot is everything the detector needs from one live-feed response
type Snapshot struct {
	GameKey          int
	Plays            []Play // feed order, least to most recent
	Players          map[int]*Player
	ProbablePitchers []int
	InningOrdinal    string // e.g. "7th"
}

// Highlight is one media item from the content endpoint. Highlights are
// fetched in full each poll and indexed by first-seen time, never cached.
type Highlight struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	SvIDs       []string `json:"sv_ids"`     // per-play correlation signatures
	PlayerIDs   []string `json:"player_ids"` // batter correlation fallback
	Playbacks   []string `json:"playbacks"`  // resolution-tagged URLs
}
