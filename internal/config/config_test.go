package config

import (
	"os"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	os.Clearenv()

	cfg := Load()

	if cfg.MLBAPIOrigin != "https://statsapi.mlb.com" {
		t.Errorf("unexpected MLB origin %q", cfg.MLBAPIOrigin)
	}
	if cfg.RedisURL != "redis://localhost:6379" {
		t.Errorf("unexpected Redis URL %q", cfg.RedisURL)
	}
	if cfg.SlackChannel != "#cyclebot" {
		t.Errorf("unexpected Slack channel %q", cfg.SlackChannel)
	}
	if cfg.MinCaptivatingIndex != 75 {
		t.Errorf("expected captivating index 75, got %d", cfg.MinCaptivatingIndex)
	}
	if cfg.StalePlaySeconds != 900 {
		t.Errorf("expected stale play seconds 900, got %d", cfg.StalePlaySeconds)
	}
	if cfg.CycleAlertHits != 3 {
		t.Errorf("expected cycle alert hits 3, got %d", cfg.CycleAlertHits)
	}
	if cfg.PitchingAlertInnings != 7 {
		t.Errorf("expected pitching alert innings 7, got %d", cfg.PitchingAlertInnings)
	}
	if cfg.PlaybackResolution != "2500K" {
		t.Errorf("expected playback resolution 2500K, got %q", cfg.PlaybackResolution)
	}
	if len(cfg.FavoritePlayerIDs) != 2 {
		t.Errorf("expected 2 default favorite players, got %v", cfg.FavoritePlayerIDs)
	}
	if cfg.CacheTTLSeconds != 86400 {
		t.Errorf("expected cache TTL 86400, got %d", cfg.CacheTTLSeconds)
	}
	if cfg.SlackConfigured() {
		t.Error("Slack should not be configured without a token")
	}
	if cfg.RedditConfigured() {
		t.Error("Reddit should not be configured without credentials")
	}
}

func TestLoadCustomValues(t *testing.T) {
	os.Clearenv()
	os.Setenv("MIN_CAPTIVATING_INDEX", "90")
	os.Setenv("STALE_PLAY_SECONDS", "1800")
	os.Setenv("FAVORITE_PLAYER_IDS", "111, 222,333")
	os.Setenv("SLACK_API_TOKEN", "fake-token")
	os.Setenv("RUN_ONCE", "true")
	defer os.Clearenv()

	cfg := Load()

	if cfg.MinCaptivatingIndex != 90 {
		t.Errorf("expected captivating index 90, got %d", cfg.MinCaptivatingIndex)
	}
	if cfg.StalePlaySeconds != 1800 {
		t.Errorf("expected stale play seconds 1800, got %d", cfg.StalePlaySeconds)
	}

	want := []int{111, 222, 333}
	if len(cfg.FavoritePlayerIDs) != len(want) {
		t.Fatalf("expected %v, got %v", want, cfg.FavoritePlayerIDs)
	}
	for i, id := range want {
		if cfg.FavoritePlayerIDs[i] != id {
			t.Errorf("expected favorite %d at index %d, got %d", id, i, cfg.FavoritePlayerIDs[i])
		}
	}

	if !cfg.SlackConfigured() {
		t.Error("Slack should be configured with a token")
	}
	if !cfg.RunOnce {
		t.Error("expected run-once mode")
	}
}

func TestLoadIgnoresMalformedInts(t *testing.T) {
	os.Clearenv()
	os.Setenv("MIN_CAPTIVATING_INDEX", "not-a-number")
	defer os.Clearenv()

	cfg := Load()

	if cfg.MinCaptivatingIndex != 75 {
		t.Errorf("malformed value should fall back to default, got %d", cfg.MinCaptivatingIndex)
	}
}
