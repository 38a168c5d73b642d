package mlb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rlucioni/cyclebot/internal/retry"
)

const (
	// DefaultOrigin is the public MLB Stats API origin
	DefaultOrigin = "https://statsapi.mlb.com"
)

// Client handles MLB Stats API requests. All three lookups are read-only,
// idempotent, full-snapshot fetches.
type Client struct {
	origin     string
	httpClient *http.Client
	retry      *retry.Policy
	userAgent  string
}

// New creates a new MLB Stats API client
func New(origin string) *Client {
	if origin == "" {
		origin = DefaultOrigin
	}

	return &Client{
		origin: origin,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		retry:     retry.NewPolicy(3, 1*time.Second),
		userAgent: "Mozilla/5.0 (compatible; cyclebot/1.0)",
	}
}

// Schedule fetches the schedule for a date (ISO format, e.g. 2018-04-13)
func (c *Client) Schedule(ctx context.Context, date string) (*Schedule, error) {
	url := fmt.Sprintf("%s/api/v1/schedule?sportId=1&date=%s", c.origin, date)

	var schedule Schedule
	if err := c.get(ctx, url, &schedule); err != nil {
		return nil, err
	}

	return &schedule, nil
}

// LiveFeed fetches the live feed for a game
func (c *Client) LiveFeed(ctx context.Context, gameKey int) (*Feed, error) {
	url := fmt.Sprintf("%s/api/v1.1/game/%d/feed/live", c.origin, gameKey)

	var feed Feed
	if err := c.get(ctx, url, &feed); err != nil {
		return nil, err
	}

	return &feed, nil
}

// Content fetches media content for a game, including highlights
func (c *Client) Content(ctx context.Context, gameKey int) (*Content, error) {
	url := fmt.Sprintf("%s/api/v1/game/%d/content", c.origin, gameKey)

	var content Content
	if err := c.get(ctx, url, &content); err != nil {
		return nil, err
	}

	return &content, nil
}

// get makes an HTTP GET request with retries and decodes the JSON response
func (c *Client) get(ctx context.Context, url string, out interface{}) error {
	return c.retry.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}

		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("making request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			return fmt.Errorf("MLB API error: status=%d, body=%s", resp.StatusCode, string(body))
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}

		return nil
	})
}
