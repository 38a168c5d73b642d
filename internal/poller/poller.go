// Package poller drives one polling cycle: discovery, per-game snapshots,
// per-play detection, highlight resolution, and per-player checks. Failure
// is isolated per date, per game, and per play so siblings still process.
package poller

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rlucioni/cyclebot/internal/alert"
	"github.com/rlucioni/cyclebot/internal/detector"
	"github.com/rlucioni/cyclebot/internal/highlights"
	"github.com/rlucioni/cyclebot/internal/mlb"
	"github.com/rlucioni/cyclebot/internal/schedule"
	"github.com/rlucioni/cyclebot/internal/snapshot"
	"github.com/rlucioni/cyclebot/pkg/models"
)

// StatsClient is the feed fetch collaborator: three read-only, idempotent,
// full-snapshot lookups
type StatsClient interface {
	Schedule(ctx context.Context, date string) (*mlb.Schedule, error)
	LiveFeed(ctx context.Context, gameKey int) (*mlb.Feed, error)
	Content(ctx context.Context, gameKey int) (*mlb.Content, error)
}

// ContentIndex is the write side of the time-indexed highlight index
type ContentIndex interface {
	Record(ctx context.Context, gameKey int, highlightID string, at time.Time) error
}

// Config holds detection thresholds
type Config struct {
	MinCaptivatingIndex  int
	FavoritePlayerIDs    []int
	CycleAlertHits       int
	PitchingAlertInnings int
}

// Poller runs polling cycles. Processing is strictly sequential: the
// workload is tens of plays across a handful of live games, and the shared
// cache and index are external, so there is no internal fan-out.
type Poller struct {
	stats      StatsClient
	index      ContentIndex
	resolver   *highlights.Resolver
	dispatcher *alert.Dispatcher
	trigger    detector.Trigger
	cfg        Config
	logger     *slog.Logger
	now        func() time.Time
}

// New creates a new poller
func New(
	stats StatsClient,
	index ContentIndex,
	resolver *highlights.Resolver,
	dispatcher *alert.Dispatcher,
	cfg Config,
	logger *slog.Logger,
) *Poller {
	return &Poller{
		stats:      stats,
		index:      index,
		resolver:   resolver,
		dispatcher: dispatcher,
		trigger:    detector.NewTrigger(cfg.MinCaptivatingIndex, cfg.FavoritePlayerIDs),
		cfg:        cfg,
		logger:     logger,
		now:        time.Now,
	}
}

// WithClock overrides the poller's clock, for tests
func (p *Poller) WithClock(now func() time.Time) *Poller {
	p.now = now
	return p
}

// Run polls on a fixed interval until ctx is done, starting immediately
func (p *Poller) Run(ctx context.Context, interval time.Duration) {
	p.logger.Info("starting poller", "interval", interval)

	p.Poll(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("stopping poller")
			return
		case <-ticker.C:
			p.Poll(ctx)
		}
	}
}

// Poll performs one full cycle. It never reports failure to the caller:
// the invoking scheduler must not retry, since live-game state is
// re-derived every poll anyway.
func (p *Poller) Poll(ctx context.Context) {
	logger := p.logger.With("cycle", uuid.NewString()[:8])

	defer func() {
		if r := recover(); r != nil {
			logger.Error("poll cycle panicked", "panic", r)
		}
	}()

	games := p.discover(ctx, logger)
	logger.Info("discovered live games", "count", len(games))

	for _, game := range games {
		if err := p.processGame(ctx, logger, game); err != nil {
			logger.Error("game processing failed", "game", game.Key, "error", err)
		}
	}
}

// discover collects live games across yesterday and today. A fetch failure
// for one date must not prevent processing the other date's results.
func (p *Poller) discover(ctx context.Context, logger *slog.Logger) []models.Game {
	seen := make(map[int]struct{})
	var live []models.Game

	for _, date := range schedule.Dates(p.now()) {
		logger.Info("getting game keys", "date", date)

		sched, err := p.stats.Schedule(ctx, date)
		if err != nil {
			logger.Error("schedule fetch failed", "date", date, "error", err)
			continue
		}

		for _, game := range schedule.Games(sched, date) {
			if game.State != models.StateLive {
				logger.Info("skipping game", "game", game.Key, "state", string(game.State))
				continue
			}

			if game.Series == "Spring Training" {
				logger.Info("skipping spring training game", "game", game.Key)
				continue
			}

			if _, dup := seen[game.Key]; dup {
				continue
			}
			seen[game.Key] = struct{}{}
			live = append(live, game)
		}
	}

	return live
}

// processGame runs detection for one game: snapshot, content indexing,
// per-play checks, then per-batter cycle and per-pitcher milestone checks
func (p *Poller) processGame(ctx context.Context, logger *slog.Logger, game models.Game) error {
	logger.Info("processing game", "game", game.Key, "away", game.AwayTeam, "home", game.HomeTeam)

	feed, err := p.stats.LiveFeed(ctx, game.Key)
	if err != nil {
		return fmt.Errorf("fetching live feed: %w", err)
	}

	snap := snapshot.Build(game.Key, feed)

	content, err := p.stats.Content(ctx, game.Key)
	if err != nil {
		return fmt.Errorf("fetching content: %w", err)
	}

	available := snapshot.Highlights(content)
	now := p.now()
	for _, h := range available {
		if err := p.index.Record(ctx, game.Key, h.ID, now); err != nil {
			logger.Error("indexing highlight failed", "game", game.Key, "highlight", h.ID, "error", err)
		}
	}

	hitLog := detector.NewHitLog()

	for i, play := range snap.Plays {
		if err := p.processPlay(ctx, game.Key, snap, play, hitLog, available); err != nil {
			logger.Error("play processing failed", "game", game.Key, "play_index", i, "error", err)
		}
	}

	p.checkCycles(ctx, logger, snap, hitLog)
	p.checkPitchers(ctx, logger, snap)

	return nil
}

// processPlay runs the per-play state machine for one play
func (p *Poller) processPlay(
	ctx context.Context,
	gameKey int,
	snap *models.Snapshot,
	play models.Play,
	hitLog *detector.HitLog,
	available []models.Highlight,
) error {
	batter, ok := snap.Players[play.BatterID]
	if !ok {
		return fmt.Errorf("batter %d not in boxscore", play.BatterID)
	}

	hitType, isHit := detector.HitTypeFor(play.Event)
	if isHit {
		hitLog.Record(play.BatterID, hitType)
	}

	// Home run classification is evaluated on every home run play,
	// independent of hit-type uniqueness. Plays with no id are excluded
	// from play-scoped alerting; see DESIGN.md.
	if isHit && hitType == models.HitHomeRun && play.ID != "" {
		if err := p.dispatcher.HomeRun(ctx, gameKey, play, batter); err != nil {
			return fmt.Errorf("home run alert: %w", err)
		}
	}

	if !p.trigger.SeekHighlight(play) {
		return nil
	}

	resolved, err := p.resolver.Resolve(ctx, gameKey, play, available)
	if err != nil {
		return fmt.Errorf("resolving highlight: %w", err)
	}
	if resolved == nil {
		return nil
	}

	if err := p.dispatcher.Highlight(ctx, gameKey, play, resolved.PlaybackURL, resolved.Description); err != nil {
		return fmt.Errorf("highlight alert: %w", err)
	}

	return nil
}

// checkCycles emits cycle alerts for batters whose unique-hit count has
// reached the threshold
func (p *Poller) checkCycles(ctx context.Context, logger *slog.Logger, snap *models.Snapshot, hitLog *detector.HitLog) {
	for _, batterID := range hitLog.Batters() {
		hits := hitLog.Hits(batterID)
		if len(hits) < p.cfg.CycleAlertHits {
			continue
		}

		batter, ok := snap.Players[batterID]
		if !ok {
			logger.Error("batter missing from boxscore", "game", snap.GameKey, "batter", batterID)
			continue
		}

		if err := p.dispatcher.Cycle(ctx, snap.GameKey, batter, hits, snap.InningOrdinal); err != nil {
			logger.Error("cycle alert failed", "game", snap.GameKey, "batter", batterID, "error", err)
		}
	}
}

// checkPitchers runs the milestone check once per probable-pitcher
// snapshot, not per play
func (p *Poller) checkPitchers(ctx context.Context, logger *slog.Logger, snap *models.Snapshot) {
	for _, pitcherID := range snap.ProbablePitchers {
		pitcher, ok := snap.Players[pitcherID]
		if !ok {
			continue
		}

		kind, ok := detector.PitchingMilestone(pitcher.Pitching, p.cfg.PitchingAlertInnings)
		if !ok {
			continue
		}

		if err := p.dispatcher.Pitching(ctx, snap.GameKey, kind, pitcher); err != nil {
			logger.Error("pitching alert failed", "game", snap.GameKey, "pitcher", pitcherID, "error", err)
		}
	}
}
