// Package snapshot transforms raw feed and content responses into the
// working set one detection pass operates on.
package snapshot

import (
	"github.com/rlucioni/cyclebot/internal/mlb"
	"github.com/rlucioni/cyclebot/pkg/models"
)

// Build produces a game snapshot from one live-feed response: the ordered
// play log, the roster keyed by player id, and the probable pitchers.
// Missing optional fields degrade to empty values, never fail the build.
func Build(gameKey int, feed *mlb.Feed) *models.Snapshot {
	snap := &models.Snapshot{
		GameKey:       gameKey,
		Players:       make(map[int]*models.Player),
		InningOrdinal: feed.LiveData.Linescore.CurrentInningOrdinal,
	}

	// Feed order is authoritative: least to most recent. Detection depends
	// on this ordering to report unique hits in the order they happened.
	for _, raw := range feed.LiveData.Plays.AllPlays {
		snap.Plays = append(snap.Plays, models.Play{
			ID:               raw.PlayID(),
			BatterID:         raw.Matchup.Batter.ID,
			Event:            raw.Result.Event,
			RBI:              raw.Result.RBI,
			CaptivatingIndex: raw.About.CaptivatingIndex,
			StartTime:        raw.About.StartTime,
			EndTime:          raw.About.EndTime,
		})
	}

	addTeam(snap, feed.LiveData.Boxscore.Teams.Away)
	addTeam(snap, feed.LiveData.Boxscore.Teams.Home)

	for _, ref := range feed.GameData.ProbablePitchers {
		if ref.ID != 0 {
			snap.ProbablePitchers = append(snap.ProbablePitchers, ref.ID)
		}
	}

	return snap
}

func addTeam(snap *models.Snapshot, team mlb.BoxTeam) {
	for _, raw := range team.Players {
		if raw.Person.ID == 0 {
			continue
		}

		innings := raw.Stats.Pitching.InningsPitched
		if innings == "" {
			innings = "0.0"
		}

		snap.Players[raw.Person.ID] = &models.Player{
			ID:   raw.Person.ID,
			Name: raw.Person.FullName,
			Team: team.Team.Name,
			Batting: models.Batting{
				Hits:   raw.Stats.Batting.Hits,
				AtBats: raw.Stats.Batting.AtBats,
			},
			SeasonBatting: models.Batting{
				HomeRuns: raw.SeasonStats.Batting.HomeRuns,
			},
			Pitching: models.Pitching{
				Hits:           raw.Stats.Pitching.Hits,
				Runs:           raw.Stats.Pitching.Runs,
				PitchesThrown:  raw.Stats.Pitching.PitchesThrown,
				InningsPitched: innings,
			},
		}
	}
}

// Highlights flattens a content response into highlight models, splitting
// keyword correlations by type.
func Highlights(content *mlb.Content) []models.Highlight {
	var highlights []models.Highlight

	for _, item := range content.Highlights.Live.Items {
		if item.ID == "" {
			continue
		}

		h := models.Highlight{
			ID:          item.ID,
			Description: item.Description,
		}

		for _, kw := range item.KeywordsAll {
			value := string(kw.Value)
			if value == "" {
				continue
			}

			switch kw.Type {
			case "sv_id":
				h.SvIDs = append(h.SvIDs, value)
			case "player_id":
				h.PlayerIDs = append(h.PlayerIDs, value)
			}
		}

		for _, pb := range item.Playbacks {
			if pb.URL != "" {
				h.Playbacks = append(h.Playbacks, pb.URL)
			}
		}

		highlights = append(highlights, h)
	}

	return highlights
}
