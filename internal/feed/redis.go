package feed

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/preston-bernstein/saturday-stats/internal/logging"
	"github.com/preston-bernstein/saturday-stats/internal/metrics"
)

// DefaultRedisChannel is the pub/sub channel scoreboard batches are published on.
const DefaultRedisChannel = "scoreboard"

// subscription is the slice of *redis.PubSub the source needs.
type subscription interface {
	ReceiveMessage(ctx context.Context) (*redis.Message, error)
	Close() error
}

// Redis reads scoreboard batches from a Redis pub/sub channel.
type Redis struct {
	client    *redis.Client
	channel   string
	subscribe func(ctx context.Context) (subscription, error)
	backoff   BackoffConfig
	logger    *slog.Logger
	metrics   *metrics.Recorder
	tracker   *tracker
}

// NewRedis builds a pub/sub source against addr.
func NewRedis(addr, channel string, backoffCfg BackoffConfig, logger *slog.Logger, recorder *metrics.Recorder) (*Redis, error) {
	if strings.TrimSpace(addr) == "" {
		return nil, ErrMissingURL
	}
	if channel == "" {
		channel = DefaultRedisChannel
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	r := &Redis{
		client:  client,
		channel: channel,
		backoff: backoffCfg,
		logger:  logger,
		metrics: recorder,
		tracker: newTracker("redis"),
	}
	r.subscribe = func(ctx context.Context) (subscription, error) {
		ps := client.Subscribe(ctx, channel)
		// Receive the subscription confirmation so connection errors surface here.
		if _, err := ps.Receive(ctx); err != nil {
			_ = ps.Close()
			return nil, err
		}
		return ps, nil
	}
	return r, nil
}

func (r *Redis) Name() string { return "redis" }

func (r *Redis) Status() Status { return r.tracker.snapshot() }

// Run subscribes until ctx is cancelled, resubscribing with backoff on error.
func (r *Redis) Run(ctx context.Context, handle Handler) error {
	defer r.close()
	b := r.backoff.build()
	for attempt := 1; ; attempt++ {
		start := time.Now()
		sub, err := r.subscribe(ctx)
		r.metrics.RecordSourceAttempt(r.Name(), time.Since(start), err)
		if err == nil {
			b.Reset()
			attempt = 0
			err = r.consume(ctx, sub, handle)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		r.tracker.disconnected(err)
		r.tracker.reconnecting()
		r.metrics.RecordReconnect(r.Name())
		delay := b.NextBackOff()
		logging.Warn(r.logger, "feed subscription lost",
			logging.FieldSource, r.Name(),
			logging.FieldAttempt, attempt,
			"channel", r.channel,
			"retryIn", delay.String(),
			"error", err,
		)
		if !sleep(ctx, delay) {
			return ctx.Err()
		}
	}
}

func (r *Redis) consume(ctx context.Context, sub subscription, handle Handler) error {
	defer sub.Close()
	r.tracker.connected()
	logging.Info(r.logger, "feed subscribed", logging.FieldSource, r.Name(), "channel", r.channel)

	for {
		msg, err := sub.ReceiveMessage(ctx)
		if err != nil {
			if errors.Is(err, redis.ErrClosed) {
				return ErrSourceClosed
			}
			return err
		}
		deliver(ctx, r.Name(), handle, []byte(msg.Payload), r.tracker, r.logger)
	}
}

func (r *Redis) close() {
	if r.client != nil {
		_ = r.client.Close()
	}
}
