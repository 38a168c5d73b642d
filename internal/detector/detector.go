// Package detector holds the per-play state machine: hit classification,
// unique-hit tracking for cycle watching, highlight-seeking triggers, and
// pitching milestone checks.
package detector

import (
	"strconv"
	"strings"

	"github.com/rlucioni/cyclebot/internal/alert"
	"github.com/rlucioni/cyclebot/pkg/models"
)

// hitTypes maps lowercased feed event labels to the closed hit-type set.
// Non-hit events are ignored by the cycle tracker.
var hitTypes = map[string]models.HitType{
	"single":   models.HitSingle,
	"double":   models.HitDouble,
	"triple":   models.HitTriple,
	"home run": models.HitHomeRun,
}

// HitTypeFor maps a free-text event label to a hit-type code
func HitTypeFor(event string) (models.HitType, bool) {
	ht, ok := hitTypes[strings.ToLower(event)]
	return ht, ok
}

// Trigger decides whether a play is worth seeking a highlight for
type Trigger struct {
	minCaptivatingIndex int
	favorites           map[int]struct{}
}

// NewTrigger creates a trigger from the captivating-index threshold and
// the favorite-player list
func NewTrigger(minCaptivatingIndex int, favoritePlayerIDs []int) Trigger {
	favorites := make(map[int]struct{}, len(favoritePlayerIDs))
	for _, id := range favoritePlayerIDs {
		favorites[id] = struct{}{}
	}

	return Trigger{
		minCaptivatingIndex: minCaptivatingIndex,
		favorites:           favorites,
	}
}

// SeekHighlight reports whether the play qualifies for highlight seeking.
// Evaluated per play, not per batter: a batter can trigger multiple times
// per game.
func (t Trigger) SeekHighlight(play models.Play) bool {
	if ht, ok := HitTypeFor(play.Event); ok && ht == models.HitHomeRun {
		return true
	}

	if play.CaptivatingIndex >= t.minCaptivatingIndex {
		return true
	}

	_, favorite := t.favorites[play.BatterID]
	return favorite
}

// HitLog tracks each batter's unique hit types for one game, preserving
// first-occurrence order for message composition.
type HitLog struct {
	order []int
	hits  map[int][]models.HitType
}

// NewHitLog creates an empty hit log
func NewHitLog() *HitLog {
	return &HitLog{
		hits: make(map[int][]models.HitType),
	}
}

// Record adds a hit type for a batter if it's new this game, returning
// whether it was appended
func (l *HitLog) Record(batterID int, ht models.HitType) bool {
	existing, tracked := l.hits[batterID]
	for _, h := range existing {
		if h == ht {
			return false
		}
	}

	if !tracked {
		l.order = append(l.order, batterID)
	}
	l.hits[batterID] = append(existing, ht)

	return true
}

// Batters returns batter ids in the order they first recorded a hit
func (l *HitLog) Batters() []int {
	return l.order
}

// Hits returns a batter's unique hit types in first-occurrence order
func (l *HitLog) Hits(batterID int) []models.HitType {
	return l.hits[batterID]
}

// PitchingMilestone checks a pitcher snapshot for an active no-hitter or
// complete-game-shutout bid. A pitcher with zero hits also has zero runs,
// so the no-hitter check runs first and short-circuits CGSO.
func PitchingMilestone(p models.Pitching, minInnings int) (alert.Kind, bool) {
	innings, err := strconv.ParseFloat(p.InningsPitched, 64)
	if err != nil || innings < float64(minInnings) {
		return "", false
	}

	if p.Hits == 0 {
		return alert.KindNoHitter, true
	}

	if p.Runs == 0 {
		return alert.KindCGSO, true
	}

	return "", false
}
