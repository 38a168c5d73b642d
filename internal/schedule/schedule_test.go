package schedule

import (
	"testing"
	"time"

	"github.com/rlucioni/cyclebot/internal/mlb"
	"github.com/rlucioni/cyclebot/internal/testutil"
	"github.com/rlucioni/cyclebot/pkg/models"
)

func TestDates(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want []string
	}{
		{
			name: "mid-afternoon eastern",
			now:  time.Date(2018, 4, 13, 14, 15, 0, 0, time.UTC),
			want: []string{"2018-04-12", "2018-04-13"},
		},
		{
			// 02:00 UTC is still the previous evening in New York, so the
			// window slides back with it
			name: "after UTC midnight",
			now:  time.Date(2018, 4, 14, 2, 0, 0, 0, time.UTC),
			want: []string{"2018-04-12", "2018-04-13"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Dates(tt.now)

			if len(got) != 2 || got[0] != tt.want[0] || got[1] != tt.want[1] {
				t.Errorf("Dates() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGamesFiltersToRequestedDate(t *testing.T) {
	sched := &mlb.Schedule{
		Dates: []mlb.ScheduleDate{
			{Date: "2018-04-12", Games: []mlb.ScheduledGame{testutil.Game(111, "Final")}},
			{Date: "2018-04-13", Games: []mlb.ScheduledGame{testutil.Game(222, "Live")}},
		},
	}

	games := Games(sched, "2018-04-13")

	if len(games) != 1 {
		t.Fatalf("expected 1 game, got %d", len(games))
	}
	if games[0].Key != 222 {
		t.Errorf("expected game 222, got %d", games[0].Key)
	}
}

func TestGamesNormalizesState(t *testing.T) {
	sched := testutil.Schedule("2018-04-13", testutil.Game(123456, "Live"))

	games := Games(sched, "2018-04-13")

	if len(games) != 1 {
		t.Fatalf("expected 1 game, got %d", len(games))
	}

	game := games[0]
	if game.State != models.StateLive {
		t.Errorf("expected state live, got %q", game.State)
	}
	if game.AwayTeam != "New York Yankees" || game.HomeTeam != "Boston Red Sox" {
		t.Errorf("unexpected teams: %q vs %q", game.AwayTeam, game.HomeTeam)
	}
}

func TestGamesEmptySchedule(t *testing.T) {
	if games := Games(&mlb.Schedule{}, "2018-04-13"); len(games) != 0 {
		t.Errorf("expected no games, got %d", len(games))
	}
}
