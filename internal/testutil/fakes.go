package testutil

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MemCache is an in-memory stand-in for the Redis idempotency cache
type MemCache struct {
	mu      sync.Mutex
	entries map[string]struct{}
}

// NewMemCache creates an empty cache
func NewMemCache() *MemCache {
	return &MemCache{entries: make(map[string]struct{})}
}

// Seen implements the cache contract
func (c *MemCache) Seen(ctx context.Context, parts ...string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.entries[strings.Join(parts, ":")]
	return ok, nil
}

// Mark implements the cache contract
func (c *MemCache) Mark(ctx context.Context, parts ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[strings.Join(parts, ":")] = struct{}{}
	return nil
}

// Flush clears all entries, like FLUSHALL
func (c *MemCache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]struct{})
}

// MemIndex is an in-memory stand-in for the Redis content index
type MemIndex struct {
	mu    sync.Mutex
	games map[int]map[string]time.Time
}

// NewMemIndex creates an empty index
func NewMemIndex() *MemIndex {
	return &MemIndex{games: make(map[int]map[string]time.Time)}
}

// Record implements insert-if-absent with first-seen time winning
func (i *MemIndex) Record(ctx context.Context, gameKey int, highlightID string, at time.Time) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	game, ok := i.games[gameKey]
	if !ok {
		game = make(map[string]time.Time)
		i.games[gameKey] = game
	}

	if _, exists := game[highlightID]; !exists {
		game[highlightID] = at
	}
	return nil
}

// Since returns ids first seen at or after min
func (i *MemIndex) Since(ctx context.Context, gameKey int, min time.Time) ([]string, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	var ids []string
	for id, at := range i.games[gameKey] {
		if !at.Before(min) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// RecordingMessenger captures posted messages
type RecordingMessenger struct {
	mu       sync.Mutex
	Messages []string
	Err      error // returned from Post when set
}

// Post implements notifier.Messenger
func (m *RecordingMessenger) Post(ctx context.Context, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	m.Messages = append(m.Messages, text)
	return nil
}

// Reset clears captured messages
func (m *RecordingMessenger) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Messages = nil
}

// RecordingSubmitter captures submitted links
type RecordingSubmitter struct {
	mu    sync.Mutex
	Links []SubmittedLink
}

// SubmittedLink is one captured submission
type SubmittedLink struct {
	Title string
	URL   string
}

// Submit implements notifier.Submitter
func (s *RecordingSubmitter) Submit(ctx context.Context, title, linkURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Links = append(s.Links, SubmittedLink{Title: title, URL: linkURL})
	return nil
}
