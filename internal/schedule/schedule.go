// Package schedule determines which games are in the working set for a
// poll: live games from today and yesterday, Eastern time. Yesterday is
// included to catch games still running past local midnight.
package schedule

import (
	"strings"
	"time"

	"github.com/rlucioni/cyclebot/internal/mlb"
	"github.com/rlucioni/cyclebot/pkg/models"
)

var eastern *time.Location

func init() {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		// MLB schedules are published in Eastern time; without tzdata we
		// fall back to UTC and accept a skewed date window.
		loc = time.UTC
	}
	eastern = loc
}

// Dates returns the schedule dates to query for a poll instant:
// yesterday then today, ISO-formatted in Eastern time.
func Dates(now time.Time) []string {
	today := now.In(eastern)
	yesterday := today.AddDate(0, 0, -1)

	return []string{
		yesterday.Format("2006-01-02"),
		today.Format("2006-01-02"),
	}
}

// Games extracts the games listed for date from a schedule response. The
// returned dates array can be empty or contain multiple dates, so entries
// are filtered to the requested date.
func Games(s *mlb.Schedule, date string) []models.Game {
	var games []models.Game

	for _, d := range s.Dates {
		if d.Date != date {
			continue
		}

		for _, g := range d.Games {
			games = append(games, models.Game{
				Key:      g.GamePk,
				State:    models.GameState(strings.ToLower(g.Status.AbstractGameState)),
				HomeTeam: g.Teams.Home.Team.Name,
				AwayTeam: g.Teams.Away.Team.Name,
				Series:   g.SeriesDescription,
			})
		}
	}

	return games
}
