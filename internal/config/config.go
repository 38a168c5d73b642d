// Package config loads configuration from environment variables, with a
// .env file picked up when present.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Feed and storage
	MLBAPIOrigin string
	RedisURL     string
	DatabaseURL  string // optional; alert history is disabled when empty

	// Notifiers; each degrades to no-op when its credentials are absent
	SlackAPIToken      string
	SlackChannel       string
	RedditClientID     string
	RedditClientSecret string
	RedditUsername     string
	RedditPassword     string
	RedditSubreddit    string

	// Detection thresholds
	MinCaptivatingIndex  int
	StalePlaySeconds     int
	CycleAlertHits       int
	PitchingAlertInnings int
	PlaybackResolution   string
	FavoritePlayerIDs    []int

	// Idempotency cache
	CacheKeyVersion string
	CacheTTLSeconds int

	// Scheduling
	PollIntervalSeconds int
	RunOnce             bool

	LogLevel string
}

// Load reads configuration from the environment
func Load() Config {
	_ = godotenv.Load()

	return Config{
		MLBAPIOrigin: getEnv("MLB_API_ORIGIN", "https://statsapi.mlb.com"),
		RedisURL:     getEnv("REDIS_URL", "redis://localhost:6379"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),

		SlackAPIToken:      os.Getenv("SLACK_API_TOKEN"),
		SlackChannel:       getEnv("SLACK_CHANNEL", "#cyclebot"),
		RedditClientID:     os.Getenv("REDDIT_CLIENT_ID"),
		RedditClientSecret: os.Getenv("REDDIT_CLIENT_SECRET"),
		RedditUsername:     os.Getenv("REDDIT_USERNAME"),
		RedditPassword:     os.Getenv("REDDIT_PASSWORD"),
		RedditSubreddit:    getEnv("REDDIT_SUBREDDIT", "baseball"),

		MinCaptivatingIndex:  getEnvInt("MIN_CAPTIVATING_INDEX", 75),
		StalePlaySeconds:     getEnvInt("STALE_PLAY_SECONDS", 900),
		CycleAlertHits:       getEnvInt("CYCLE_ALERT_HITS", 3),
		PitchingAlertInnings: getEnvInt("PITCHING_ALERT_INNINGS", 7),
		PlaybackResolution:   getEnv("PLAYBACK_RESOLUTION", "2500K"),
		FavoritePlayerIDs:    getEnvInts("FAVORITE_PLAYER_IDS", []int{545361, 592450}),

		CacheKeyVersion: getEnv("CACHE_KEY_VERSION", "1"),
		CacheTTLSeconds: getEnvInt("CACHE_TTL_SECONDS", 86400),

		PollIntervalSeconds: getEnvInt("POLL_INTERVAL_SECONDS", 60),
		RunOnce:             getEnvBool("RUN_ONCE", false),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// SlackConfigured reports whether real Slack delivery is possible
func (c Config) SlackConfigured() bool {
	return c.SlackAPIToken != ""
}

// RedditConfigured reports whether real Reddit delivery is possible
func (c Config) RedditConfigured() bool {
	return c.RedditClientID != "" && c.RedditClientSecret != "" &&
		c.RedditUsername != "" && c.RedditPassword != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInts(key string, defaultValue []int) []int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var ids []int
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if parsed, err := strconv.Atoi(part); err == nil {
			ids = append(ids, parsed)
		}
	}

	if len(ids) == 0 {
		return defaultValue
	}
	return ids
}
