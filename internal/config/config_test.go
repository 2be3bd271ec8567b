package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Port)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Fatalf("expected wildcard cors origin, got %v", cfg.CORSOrigins)
	}
	if cfg.Feed.Source != defaultFeedSource {
		t.Fatalf("expected default feed source %s, got %s", defaultFeedSource, cfg.Feed.Source)
	}
	if cfg.Feed.URL != defaultFeedURL {
		t.Fatalf("expected default feed url %s, got %s", defaultFeedURL, cfg.Feed.URL)
	}
	if cfg.Feed.PollInterval != defaultFeedPollInterval {
		t.Fatalf("expected default poll interval %s, got %s", defaultFeedPollInterval, cfg.Feed.PollInterval)
	}
	if cfg.Feed.Classification != "fbs" {
		t.Fatalf("expected fbs classification, got %s", cfg.Feed.Classification)
	}
	if cfg.Feed.RedisChannel != defaultRedisChannel {
		t.Fatalf("expected default redis channel, got %s", cfg.Feed.RedisChannel)
	}
	if cfg.Rotation.PageSize != 9 {
		t.Fatalf("expected page size 9, got %d", cfg.Rotation.PageSize)
	}
	if cfg.Rotation.SetInterval != 15*time.Second || cfg.Rotation.FeaturedInterval != 33*time.Second {
		t.Fatalf("unexpected rotation intervals %+v", cfg.Rotation)
	}
	if cfg.Rotation.FadeDelay != 500*time.Millisecond {
		t.Fatalf("expected 500ms fade, got %s", cfg.Rotation.FadeDelay)
	}
	if cfg.Rotation.FeaturedGames != nil {
		t.Fatalf("expected no featured games, got %v", cfg.Rotation.FeaturedGames)
	}
	if cfg.Highlights.RequestsPerMinute != defaultHighlightsRPM {
		t.Fatalf("expected default rpm, got %d", cfg.Highlights.RequestsPerMinute)
	}
	if cfg.Metrics.ServiceName != defaultServiceName {
		t.Fatalf("expected service name %s, got %s", defaultServiceName, cfg.Metrics.ServiceName)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv(envPort, "5000")
	t.Setenv(envFeedSource, "redis")
	t.Setenv(envRedisAddr, "localhost:6379")
	t.Setenv(envFeedPollInterval, "45s")
	t.Setenv(envFeedClassification, "fcs")
	t.Setenv(envRotationPageSize, "6")
	t.Setenv(envFeaturedGames, "401628374, 401628375,,")
	t.Setenv(envCORSOrigins, "http://localhost:3000,https://saturday.example")
	t.Setenv(envHighlightsRPM, "30")
	t.Setenv(envTeamsFile, "/etc/teams.yaml")
	t.Setenv(envLogFormat, "json")

	cfg := Load()

	if cfg.Port != "5000" {
		t.Fatalf("expected port 5000, got %s", cfg.Port)
	}
	if cfg.Feed.Source != "redis" || cfg.Feed.RedisAddr != "localhost:6379" {
		t.Fatalf("unexpected feed config %+v", cfg.Feed)
	}
	if cfg.Feed.PollInterval != 45*time.Second {
		t.Fatalf("expected poll interval 45s, got %s", cfg.Feed.PollInterval)
	}
	if cfg.Feed.Classification != "fcs" {
		t.Fatalf("expected fcs, got %s", cfg.Feed.Classification)
	}
	if cfg.Rotation.PageSize != 6 {
		t.Fatalf("expected page size 6, got %d", cfg.Rotation.PageSize)
	}
	if len(cfg.Rotation.FeaturedGames) != 2 || cfg.Rotation.FeaturedGames[1] != "401628375" {
		t.Fatalf("unexpected featured games %v", cfg.Rotation.FeaturedGames)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Fatalf("expected two cors origins, got %v", cfg.CORSOrigins)
	}
	if cfg.Highlights.RequestsPerMinute != 30 {
		t.Fatalf("expected rpm 30, got %d", cfg.Highlights.RequestsPerMinute)
	}
	if cfg.TeamsFile != "/etc/teams.yaml" || cfg.LogFormat != "json" {
		t.Fatalf("unexpected overrides %+v", cfg)
	}
}

func TestLoadInvalidDurationFallsBack(t *testing.T) {
	t.Setenv(envRotationSetInterval, "not-a-duration")

	cfg := Load()

	if cfg.Rotation.SetInterval != defaultSetInterval {
		t.Fatalf("expected default set interval on invalid value, got %s", cfg.Rotation.SetInterval)
	}
}

func TestLoadNonPositiveDurationFallsBack(t *testing.T) {
	t.Setenv(envFeedPollInterval, "0s")

	cfg := Load()

	if cfg.Feed.PollInterval != defaultFeedPollInterval {
		t.Fatalf("expected default poll interval on non-positive value, got %s", cfg.Feed.PollInterval)
	}
}

func TestLoadMetricsPortAcceptsColonPrefix(t *testing.T) {
	t.Setenv(envMetricsPort, ":9191")
	t.Setenv(envMetricsOn, "false")
	cfg := Load()
	if cfg.Metrics.Port != "9191" || cfg.Metrics.Enabled {
		t.Fatalf("expected port 9191 disabled, got %+v", cfg.Metrics)
	}
}
