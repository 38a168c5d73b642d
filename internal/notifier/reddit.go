package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	defaultRedditAuthOrigin = "https://www.reddit.com"
	defaultRedditAPIOrigin  = "https://oauth.reddit.com"
)

// RedditCredentials holds script-app credentials for the password grant
type RedditCredentials struct {
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
}

// Reddit submits links to a subreddit as a script app
type Reddit struct {
	authOrigin string
	apiOrigin  string
	creds      RedditCredentials
	subreddit  string
	userAgent  string
	httpClient *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewReddit creates a new Reddit submitter
func NewReddit(creds RedditCredentials, subreddit string) *Reddit {
	return &Reddit{
		authOrigin: defaultRedditAuthOrigin,
		apiOrigin:  defaultRedditAPIOrigin,
		creds:      creds,
		subreddit:  subreddit,
		userAgent:  "cyclebot/1.0",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Submit implements Submitter
func (r *Reddit) Submit(ctx context.Context, title, linkURL string) error {
	token, err := r.ensureToken(ctx)
	if err != nil {
		return err
	}

	form := url.Values{}
	form.Set("api_type", "json")
	form.Set("kind", "link")
	form.Set("sr", r.subreddit)
	form.Set("title", title)
	form.Set("url", linkURL)
	form.Set("resubmit", "true")

	endpoint := r.apiOrigin + "/api/submit"
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("submitting to Reddit: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Reddit returned status %d", resp.StatusCode)
	}

	return nil
}

// ensureToken fetches an OAuth token via the password grant, reusing it
// until shortly before expiry
func (r *Reddit) ensureToken(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.accessToken != "" && time.Now().Before(r.tokenExpiry) {
		return r.accessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", r.creds.Username)
	form.Set("password", r.creds.Password)

	endpoint := r.authOrigin + "/api/v1/access_token"
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("creating token request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", r.userAgent)
	req.SetBasicAuth(r.creds.ClientID, r.creds.ClientSecret)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching Reddit token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Reddit token endpoint returned status %d", resp.StatusCode)
	}

	var result struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding token response: %w", err)
	}

	if result.AccessToken == "" {
		return "", fmt.Errorf("Reddit token response missing access_token")
	}

	r.accessToken = result.AccessToken
	r.tokenExpiry = time.Now().Add(time.Duration(result.ExpiresIn)*time.Second - 1*time.Minute)

	return r.accessToken, nil
}
