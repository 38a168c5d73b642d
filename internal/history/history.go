// Package history keeps an audit trail of dispatched alerts. Recording is
// best-effort: failures are logged by callers and never block dispatch.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Entry is one dispatched alert
type Entry struct {
	Kind     string
	GameKey  int
	PlayerID int
	Message  string
	SentAt   time.Time
}

// Recorder records dispatched alerts
type Recorder interface {
	Record(ctx context.Context, entry Entry) error
}

// Postgres writes alert history to the alert_history table:
//
//	CREATE TABLE alert_history (
//	    id SERIAL PRIMARY KEY,
//	    kind TEXT NOT NULL,
//	    game_key BIGINT NOT NULL,
//	    player_id BIGINT NOT NULL,
//	    message TEXT NOT NULL,
//	    sent_at TIMESTAMPTZ NOT NULL
//	);
type Postgres struct {
	db *sql.DB
}

// NewPostgres creates a new Postgres recorder
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Record implements Recorder
func (p *Postgres) Record(ctx context.Context, entry Entry) error {
	query := `
		INSERT INTO alert_history (kind, game_key, player_id, message, sent_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := p.db.ExecContext(ctx, query,
		entry.Kind,
		entry.GameKey,
		entry.PlayerID,
		entry.Message,
		entry.SentAt,
	)
	if err != nil {
		return fmt.Errorf("inserting alert history: %w", err)
	}

	return nil
}

// Noop discards history when no database is configured
type Noop struct{}

// Record implements Recorder
func (Noop) Record(ctx context.Context, entry Entry) error {
	return nil
}
