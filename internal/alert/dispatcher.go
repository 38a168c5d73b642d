// Package alert formats and idempotently emits alerts, delegating actual
// delivery to the notifier collaborators.
package alert

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/rlucioni/cyclebot/internal/history"
	"github.com/rlucioni/cyclebot/internal/notifier"
	"github.com/rlucioni/cyclebot/pkg/models"
)

// Cache is the idempotency cache contract the dispatcher deduplicates with
type Cache interface {
	Seen(ctx context.Context, parts ...string) (bool, error)
	Mark(ctx context.Context, parts ...string) error
}

// Dispatcher emits at most one alert per fingerprint. For home run, cycle,
// and pitching alerts it checks and marks the cache before dispatch, so a
// delivery failure is not retried (duplicate suppression wins over
// delivery). Highlight alerts are checked upstream by the resolver and
// marked here after dispatch.
type Dispatcher struct {
	cache     Cache
	messenger notifier.Messenger
	submitter notifier.Submitter
	history   history.Recorder
	logger    *slog.Logger
	now       func() time.Time
}

// NewDispatcher creates a new alert dispatcher
func NewDispatcher(
	cache Cache,
	messenger notifier.Messenger,
	submitter notifier.Submitter,
	recorder history.Recorder,
	logger *slog.Logger,
) *Dispatcher {
	return &Dispatcher{
		cache:     cache,
		messenger: messenger,
		submitter: submitter,
		history:   recorder,
		logger:    logger,
		now:       time.Now,
	}
}

// HomeRun emits a home run alert, deduplicated by play id
func (d *Dispatcher) HomeRun(ctx context.Context, gameKey int, play models.Play, batter *models.Player) error {
	seen, err := d.cache.Seen(ctx, string(KindHomeRun), play.ID)
	if err != nil {
		return err
	}
	if seen {
		return nil
	}

	if err := d.cache.Mark(ctx, string(KindHomeRun), play.ID); err != nil {
		return err
	}

	d.send(ctx, KindHomeRun, gameKey, batter.ID, HomeRunMessage(batter, play.RBI))
	return nil
}

// Cycle emits a cycle progress alert, deduplicated by game, batter, and
// unique-hit count so progress re-triggers but repeated polls do not
func (d *Dispatcher) Cycle(ctx context.Context, gameKey int, batter *models.Player, hits []models.HitType, inningOrdinal string) error {
	parts := []string{
		string(KindCycle),
		strconv.Itoa(gameKey),
		strconv.Itoa(batter.ID),
		strconv.Itoa(len(hits)),
	}

	seen, err := d.cache.Seen(ctx, parts...)
	if err != nil {
		return err
	}
	if seen {
		return nil
	}

	if err := d.cache.Mark(ctx, parts...); err != nil {
		return err
	}

	d.send(ctx, KindCycle, gameKey, batter.ID, CycleMessage(batter, hits, inningOrdinal))
	return nil
}

// Pitching emits a no-hitter or CGSO alert. The fingerprint includes the
// raw innings-pitched value: repeated polls at the same innings count are
// suppressed, but each additional partial inning re-triggers.
func (d *Dispatcher) Pitching(ctx context.Context, gameKey int, kind Kind, pitcher *models.Player) error {
	parts := []string{
		string(kind),
		strconv.Itoa(gameKey),
		strconv.Itoa(pitcher.ID),
		pitcher.Pitching.InningsPitched,
	}

	seen, err := d.cache.Seen(ctx, parts...)
	if err != nil {
		return err
	}
	if seen {
		return nil
	}

	if err := d.cache.Mark(ctx, parts...); err != nil {
		return err
	}

	d.send(ctx, kind, gameKey, pitcher.ID, PitchingMessage(kind, pitcher))
	return nil
}

// Highlight emits a highlight alert to both the messenger and the link
// submitter, then marks the play's fingerprint. Dispatch and mark are not
// atomic: a crash in between re-delivers on the next poll.
func (d *Dispatcher) Highlight(ctx context.Context, gameKey int, play models.Play, playbackURL, description string) error {
	d.send(ctx, KindHighlight, gameKey, play.BatterID, HighlightMessage(playbackURL, description))

	if err := d.submitter.Submit(ctx, description, playbackURL); err != nil {
		d.logger.Error("link submission failed", "error", err, "highlight_url", playbackURL)
	}

	return d.cache.Mark(ctx, string(KindHighlight), play.ID)
}

// send delivers a message and records it, logging failures without
// propagating them
func (d *Dispatcher) send(ctx context.Context, kind Kind, gameKey, playerID int, message string) {
	d.logger.Info("dispatching alert", "kind", string(kind), "game", gameKey, "player", playerID, "message", message)

	if err := d.messenger.Post(ctx, message); err != nil {
		d.logger.Error("alert delivery failed", "kind", string(kind), "error", err)
	}

	entry := history.Entry{
		Kind:     string(kind),
		GameKey:  gameKey,
		PlayerID: playerID,
		Message:  message,
		SentAt:   d.now(),
	}
	if err := d.history.Record(ctx, entry); err != nil {
		d.logger.Error("recording alert history failed", "kind", string(kind), "error", err)
	}
}
