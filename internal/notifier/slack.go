package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultSlackOrigin = "https://slack.com"

// Slack posts messages to a channel via chat.postMessage
type Slack struct {
	origin     string
	token      string
	channel    string
	httpClient *http.Client
}

// NewSlack creates a new Slack messenger
func NewSlack(token, channel string) *Slack {
	return &Slack{
		origin:  defaultSlackOrigin,
		token:   token,
		channel: channel,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Post implements Messenger
func (s *Slack) Post(ctx context.Context, text string) error {
	form := url.Values{}
	form.Set("channel", s.channel)
	form.Set("text", text)

	endpoint := s.origin + "/api/chat.postMessage"
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("posting to Slack: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Slack returned status %d", resp.StatusCode)
	}

	var result struct {
		OK    bool   `json:"ok"`
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decoding Slack response: %w", err)
	}

	if !result.OK {
		return fmt.Errorf("Slack error: %s", result.Error)
	}

	return nil
}
