package alert

import (
	"fmt"
	"strings"

	"github.com/rlucioni/cyclebot/pkg/models"
)

// Kind identifies an alert type. Kinds participate in dedup fingerprints,
// so renaming one invalidates its cached entries.
type Kind string

const (
	KindHomeRun   Kind = "home-run"
	KindHighlight Kind = "highlight"
	KindCycle     Kind = "cycle"
	KindNoHitter  Kind = "no-hitter"
	KindCGSO      Kind = "cgso"
)

// HomeRunLabel classifies a home run by its RBI count
func HomeRunLabel(rbi int) string {
	switch rbi {
	case 1:
		return "SOLO HR"
	case 4:
		return "GRAND SLAM HR"
	default:
		return fmt.Sprintf("%d-RUN HR", rbi)
	}
}

// HomeRunMessage formats a home run alert
func HomeRunMessage(batter *models.Player, rbi int) string {
	return fmt.Sprintf("%s ALERT: %s, %s (%d HR)",
		HomeRunLabel(rbi), batter.Name, batter.Team, batter.SeasonBatting.HomeRuns)
}

// HighlightMessage formats a highlight alert as a Slack-style link
func HighlightMessage(playbackURL, description string) string {
	return fmt.Sprintf("<%s|%s>", playbackURL, description)
}

// CycleMessage formats a cycle alert. A batter with all four hit types has
// hit for the cycle; otherwise the message lists the hit types achieved so
// far, in first-occurrence order.
func CycleMessage(batter *models.Player, hits []models.HitType, inningOrdinal string) string {
	if len(hits) == 4 {
		return fmt.Sprintf("CYCLE ALERT: %s (%s) %d-%d has hit for the cycle!",
			batter.Name, batter.Team, batter.Batting.Hits, batter.Batting.AtBats)
	}

	labels := make([]string, len(hits))
	for i, h := range hits {
		labels[i] = string(h)
	}

	return fmt.Sprintf("CYCLE ALERT: %s (%s) %d-%d with %s in the %s inning",
		batter.Name, batter.Team, batter.Batting.Hits, batter.Batting.AtBats,
		strings.Join(labels, ", "), inningOrdinal)
}

// PitchingMessage formats a no-hitter or CGSO alert
func PitchingMessage(kind Kind, pitcher *models.Player) string {
	var label, adjective string
	if kind == KindNoHitter {
		label, adjective = "NO-HITTER", "hitless"
	} else {
		label, adjective = "CGSO", "scoreless"
	}

	return fmt.Sprintf("%s ALERT: %s (%s) has thrown %d pitches over %s %s innings",
		label, pitcher.Name, pitcher.Team,
		pitcher.Pitching.PitchesThrown, pitcher.Pitching.InningsPitched, adjective)
}
