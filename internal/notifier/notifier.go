// Package notifier holds the outbound collaborators: a message-posting
// capability and a link-submission capability. Both have no-op variants
// selected at construction time when credentials are absent, so detection
// runs identically in environments without live credentials.
package notifier

import (
	"context"
	"log/slog"
)

// Messenger posts a text message to a channel bound at construction
type Messenger interface {
	Post(ctx context.Context, text string) error
}

// Submitter submits a titled link
type Submitter interface {
	Submit(ctx context.Context, title, linkURL string) error
}

// NoopMessenger silently accepts posts when messaging is unconfigured
type NoopMessenger struct {
	logger *slog.Logger
}

// NewNoopMessenger creates a messenger that only logs
func NewNoopMessenger(logger *slog.Logger) *NoopMessenger {
	return &NoopMessenger{logger: logger}
}

// Post implements Messenger
func (n *NoopMessenger) Post(ctx context.Context, text string) error {
	n.logger.Info("messaging disabled, dropping message", "text", text)
	return nil
}

// NoopSubmitter silently accepts submissions when unconfigured
type NoopSubmitter struct {
	logger *slog.Logger
}

// NewNoopSubmitter creates a submitter that only logs
func NewNoopSubmitter(logger *slog.Logger) *NoopSubmitter {
	return &NoopSubmitter{logger: logger}
}

// Submit implements Submitter
func (n *NoopSubmitter) Submit(ctx context.Context, title, linkURL string) error {
	n.logger.Info("submissions disabled, dropping link", "title", title, "url", linkURL)
	return nil
}
