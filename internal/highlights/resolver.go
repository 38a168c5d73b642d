// Package highlights joins triggering plays to media highlights using the
// content index plus a two-tier key fallback: exact sv_id match first,
// then batter id.
package highlights

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/rlucioni/cyclebot/pkg/models"
)

// Index is the content index read contract
type Index interface {
	Since(ctx context.Context, gameKey int, min time.Time) ([]string, error)
}

// Cache is the seen-check side of the idempotency cache. Marking happens
// after dispatch, in the dispatcher.
type Cache interface {
	Seen(ctx context.Context, parts ...string) (bool, error)
}

// Resolved is a highlight ready to dispatch
type Resolved struct {
	PlaybackURL string
	Description string
}

// Resolver resolves a triggering play to a highlight, subject to the
// staleness horizon
type Resolver struct {
	index      Index
	cache      Cache
	staleAfter time.Duration
	resolution string
	logger     *slog.Logger
	now        func() time.Time
}

// NewResolver creates a new highlight resolver
func NewResolver(index Index, cache Cache, staleAfter time.Duration, resolution string, logger *slog.Logger) *Resolver {
	return &Resolver{
		index:      index,
		cache:      cache,
		staleAfter: staleAfter,
		resolution: resolution,
		logger:     logger,
		now:        time.Now,
	}
}

// WithClock overrides the resolver's clock, for tests
func (r *Resolver) WithClock(now func() time.Time) *Resolver {
	r.now = now
	return r
}

// Resolve returns the play's highlight, or nil when none has published
// yet. An unresolved play is not cached, so a future poll can still
// resolve it while it's fresh. Stale plays never alert, even on first
// sight, regardless of cache state.
func (r *Resolver) Resolve(ctx context.Context, gameKey int, play models.Play, available []models.Highlight) (*Resolved, error) {
	if play.ID == "" {
		// No signature to dedup or correlate on; see DESIGN.md
		r.logger.Info("skipping play with no id", "game", gameKey, "batter", play.BatterID)
		return nil, nil
	}

	if r.now().Sub(play.EndTime) > r.staleAfter {
		r.logger.Info("skipping stale play", "game", gameKey, "play", play.ID, "ended", play.EndTime)
		return nil, nil
	}

	seen, err := r.cache.Seen(ctx, "highlight", play.ID)
	if err != nil {
		return nil, err
	}
	if seen {
		return nil, nil
	}

	// Highlights published before the play ended cannot be its highlight
	candidates, err := r.index.Since(ctx, gameKey, play.EndTime)
	if err != nil {
		return nil, err
	}

	match := correlate(play, filterByID(available, candidates))
	if match == nil {
		// Expected while waiting for the highlight to publish
		r.logger.Info("highlight unavailable", "game", gameKey, "play", play.ID)
		return nil, nil
	}

	playback := r.pickPlayback(match)
	if playback == "" {
		r.logger.Info("no playback at preferred resolution", "game", gameKey, "highlight", match.ID)
		return nil, nil
	}

	return &Resolved{
		PlaybackURL: playback,
		Description: match.Description,
	}, nil
}

// correlate prefers an exact sv_id match on the play's id, falling back
// to a player_id match on the batter
func correlate(play models.Play, candidates []models.Highlight) *models.Highlight {
	bySvID := make(map[string]*models.Highlight)
	byPlayerID := make(map[string]*models.Highlight)

	for i := range candidates {
		h := &candidates[i]
		for _, sv := range h.SvIDs {
			bySvID[sv] = h
		}
		for _, pid := range h.PlayerIDs {
			byPlayerID[pid] = h
		}
	}

	if h, ok := bySvID[play.ID]; ok {
		return h
	}

	if h, ok := byPlayerID[strconv.Itoa(play.BatterID)]; ok {
		return h
	}

	return nil
}

func filterByID(available []models.Highlight, ids []string) []models.Highlight {
	allowed := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		allowed[id] = struct{}{}
	}

	var filtered []models.Highlight
	for _, h := range available {
		if _, ok := allowed[h.ID]; ok {
			filtered = append(filtered, h)
		}
	}

	return filtered
}

func (r *Resolver) pickPlayback(h *models.Highlight) string {
	for _, url := range h.Playbacks {
		if strings.Contains(url, r.resolution) {
			return url
		}
	}

	return ""
}
