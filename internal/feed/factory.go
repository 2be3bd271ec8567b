package feed

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/preston-bernstein/saturday-stats/internal/domain/teams"
	"github.com/preston-bernstein/saturday-stats/internal/metrics"
)

// Source kinds accepted by New.
const (
	KindFixture   = "fixture"
	KindWebSocket = "websocket"
	KindRedis     = "redis"
	KindPoll      = "poll"
)

// Config selects and configures a source.
type Config struct {
	Kind         string
	URL          string
	PollInterval time.Duration
	RedisAddr    string
	RedisChannel string
	Backoff      BackoffConfig
}

// New builds the configured source. roster feeds the fixture source only.
func New(cfg Config, roster []teams.Team, logger *slog.Logger, recorder *metrics.Recorder) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Kind)) {
	case KindFixture, "":
		return NewFixture(roster, cfg.PollInterval, logger), nil
	case KindWebSocket, "ws":
		return NewWebSocket(cfg.URL, cfg.Backoff, logger, recorder)
	case KindRedis:
		return NewRedis(cfg.RedisAddr, cfg.RedisChannel, cfg.Backoff, logger, recorder)
	case KindPoll, "http":
		return NewPoll(cfg.URL, cfg.PollInterval, nil, logger, recorder)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, cfg.Kind)
	}
}
