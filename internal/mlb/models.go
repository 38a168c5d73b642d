package mlb

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Schedule is the /api/v1/schedule response
type Schedule struct {
	Dates []ScheduleDate `json:"dates"`
}

// ScheduleDate groups a date's games. The dates array can be empty or
// contain multiple dates, so callers filter by the Date field.
type ScheduleDate struct {
	Date  string          `json:"date"`
	Games []ScheduledGame `json:"games"`
}

// ScheduledGame is one game from the schedule endpoint
type ScheduledGame struct {
	GamePk            int        `json:"gamePk"`
	GameDate          string     `json:"gameDate"`
	SeriesDescription string     `json:"seriesDescription"`
	Status            GameStatus `json:"status"`
	Teams             GameTeams  `json:"teams"`
}

// GameStatus carries the game's lifecycle state
type GameStatus struct {
	AbstractGameState string `json:"abstractGameState"`
	DetailedState     string `json:"detailedState"`
}

// GameTeams names the two sides of a scheduled game
type GameTeams struct {
	Away TeamSide `json:"away"`
	Home TeamSide `json:"home"`
}

// TeamSide wraps one side's team reference
type TeamSide struct {
	Team TeamRef `json:"team"`
}

// TeamRef is a team name reference
type TeamRef struct {
	Name string `json:"name"`
}

// Feed is the /api/v1.1/game/{key}/feed/live response, reduced to the
// fields the snapshot builder consumes
type Feed struct {
	GameData GameData `json:"gameData"`
	LiveData LiveData `json:"liveData"`
}

// GameData holds pre-game metadata
type GameData struct {
	ProbablePitchers map[string]PersonRef `json:"probablePitchers"`
}

// PersonRef is a player id reference
type PersonRef struct {
	ID int `json:"id"`
}

// LiveData holds in-game state
type LiveData struct {
	Plays     Plays     `json:"plays"`
	Linescore Linescore `json:"linescore"`
	Boxscore  Boxscore  `json:"boxscore"`
}

// Plays wraps the chronological play log, ordered least to most recent
type Plays struct {
	AllPlays []Play `json:"allPlays"`
}

// Play is one raw play from the feed
type Play struct {
	Result     PlayResult  `json:"result"`
	About      PlayAbout   `json:"about"`
	Matchup    PlayMatchup `json:"matchup"`
	PlayEvents []PlayEvent `json:"playEvents"`
}

// PlayResult holds the play's outcome
type PlayResult struct {
	Event string `json:"event"`
	RBI   int    `json:"rbi"`
}

// PlayAbout holds play timing and the feed's excitement heuristic
type PlayAbout struct {
	StartTime        time.Time `json:"startTime"`
	EndTime          time.Time `json:"endTime"`
	CaptivatingIndex int       `json:"captivatingIndex"`
}

// PlayMatchup identifies the batter
type PlayMatchup struct {
	Batter PersonRef `json:"batter"`
}

// PlayEvent carries the per-pitch play id; the last event's id is the
// play's sv_id signature
type PlayEvent struct {
	PlayID string `json:"playId"`
}

// PlayID returns the play's signature: the last non-empty playId, or ""
// when the feed omits it
func (p Play) PlayID() string {
	for i := len(p.PlayEvents) - 1; i >= 0; i-- {
		if id := p.PlayEvents[i].PlayID; id != "" {
			return id
		}
	}
	return ""
}

// Linescore holds the current inning display value
type Linescore struct {
	CurrentInningOrdinal string `json:"currentInningOrdinal"`
}

// Boxscore wraps both teams' rosters
type Boxscore struct {
	Teams BoxTeams `json:"teams"`
}

// BoxTeams names both boxscore sides
type BoxTeams struct {
	Away BoxTeam `json:"away"`
	Home BoxTeam `json:"home"`
}

// BoxTeam is one side's roster, keyed "ID{playerId}"
type BoxTeam struct {
	Team    TeamRef              `json:"team"`
	Players map[string]BoxPlayer `json:"players"`
}

// BoxPlayer is one roster entry with in-game and season-to-date stats
type BoxPlayer struct {
	Person      Person     `json:"person"`
	Stats       StatGroups `json:"stats"`
	SeasonStats StatGroups `json:"seasonStats"`
}

// Person identifies a player
type Person struct {
	ID       int    `json:"id"`
	FullName string `json:"fullName"`
}

// StatGroups holds a player's batting and pitching lines
type StatGroups struct {
	Batting  BattingStats  `json:"batting"`
	Pitching PitchingStats `json:"pitching"`
}

// BattingStats holds cumulative batting counters
type BattingStats struct {
	Hits     int `json:"hits"`
	AtBats   int `json:"atBats"`
	HomeRuns int `json:"homeRuns"`
}

// PitchingStats holds cumulative pitching counters. InningsPitched is a
// string like "7.1" where the fractional digit counts outs.
type PitchingStats struct {
	Hits           int    `json:"hits"`
	Runs           int    `json:"runs"`
	PitchesThrown  int    `json:"pitchesThrown"`
	InningsPitched string `json:"inningsPitched"`
}

// Content is the /api/v1/game/{key}/content response
type Content struct {
	Highlights ContentHighlights `json:"highlights"`
}

// ContentHighlights wraps the live highlight reel
type ContentHighlights struct {
	Live HighlightList `json:"live"`
}

// HighlightList holds highlight items, ordered most to least recent
type HighlightList struct {
	Items []HighlightItem `json:"items"`
}

// HighlightItem is one media highlight with its keyword correlations
type HighlightItem struct {
	ID          string     `json:"id"`
	Description string     `json:"description"`
	KeywordsAll []Keyword  `json:"keywordsAll"`
	Playbacks   []Playback `json:"playbacks"`
}

// Keyword is a typed correlation value, e.g. sv_id or player_id
type Keyword struct {
	Type  string     `json:"type"`
	Value FlexString `json:"value"`
}

// Playback is one resolution-tagged rendition URL
type Playback struct {
	URL string `json:"url"`
}

// FlexString decodes a JSON string, number, or null to a string. The
// content feed is inconsistent about keyword value types: player_id
// arrives as a number, sv_id as a string.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexString) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*f = ""
		return nil
	}

	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*f = FlexString(str)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}

	// Numbers like 202020.0 should still render as integer ids
	if i, err := num.Int64(); err == nil {
		*f = FlexString(strconv.FormatInt(i, 10))
		return nil
	}

	*f = FlexString(num.String())
	return nil
}
