package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/rlucioni/cyclebot/internal/alert"
	"github.com/rlucioni/cyclebot/internal/config"
	"github.com/rlucioni/cyclebot/internal/contentindex"
	"github.com/rlucioni/cyclebot/internal/dedup"
	"github.com/rlucioni/cyclebot/internal/highlights"
	"github.com/rlucioni/cyclebot/internal/history"
	"github.com/rlucioni/cyclebot/internal/mlb"
	"github.com/rlucioni/cyclebot/internal/notifier"
	"github.com/rlucioni/cyclebot/internal/poller"
)

func main() {
	cfg := config.Load()
	logger := newLogger(cfg.LogLevel)

	logger.Info("starting cyclebot")

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Error("failed to parse Redis URL", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(opts)
	defer redisClient.Close()

	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error("failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to Redis")

	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cache := dedup.New(redisClient, cfg.CacheKeyVersion, cacheTTL)
	index := contentindex.New(redisClient, cacheTTL)

	var messenger notifier.Messenger
	if cfg.SlackConfigured() {
		messenger = notifier.NewSlack(cfg.SlackAPIToken, cfg.SlackChannel)
	} else {
		logger.Warn("SLACK_API_TOKEN not set, messages will be logged only")
		messenger = notifier.NewNoopMessenger(logger)
	}

	var submitter notifier.Submitter
	if cfg.RedditConfigured() {
		submitter = notifier.NewReddit(notifier.RedditCredentials{
			ClientID:     cfg.RedditClientID,
			ClientSecret: cfg.RedditClientSecret,
			Username:     cfg.RedditUsername,
			Password:     cfg.RedditPassword,
		}, cfg.RedditSubreddit)
	} else {
		logger.Warn("Reddit credentials not set, submissions will be logged only")
		submitter = notifier.NewNoopSubmitter(logger)
	}

	var recorder history.Recorder = history.Noop{}
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := db.PingContext(ctx); err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		logger.Info("connected to Postgres, alert history enabled")
		recorder = history.NewPostgres(db)
	}

	dispatcher := alert.NewDispatcher(cache, messenger, submitter, recorder, logger)

	staleAfter := time.Duration(cfg.StalePlaySeconds) * time.Second
	resolver := highlights.NewResolver(index, cache, staleAfter, cfg.PlaybackResolution, logger)

	statsClient := mlb.New(cfg.MLBAPIOrigin)

	p := poller.New(statsClient, index, resolver, dispatcher, poller.Config{
		MinCaptivatingIndex:  cfg.MinCaptivatingIndex,
		FavoritePlayerIDs:    cfg.FavoritePlayerIDs,
		CycleAlertHits:       cfg.CycleAlertHits,
		PitchingAlertInnings: cfg.PitchingAlertInnings,
	}, logger)

	if cfg.RunOnce {
		p.Poll(ctx)
		logger.Info("poll complete")
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("received shutdown signal")
		cancel()
	}()

	p.Run(runCtx, time.Duration(cfg.PollIntervalSeconds)*time.Second)

	logger.Info("cyclebot stopped")
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
