package feed

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/saturday-stats/internal/logging"
	"github.com/preston-bernstein/saturday-stats/internal/metrics"
)

const (
	defaultPollInterval = 30 * time.Second
	defaultPollTimeout  = 10 * time.Second
	maxPayloadBytes     = 8 << 20
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Poll fetches the scoreboard envelope over HTTP on a fixed interval.
type Poll struct {
	url      string
	client   httpDoer
	interval time.Duration
	logger   *slog.Logger
	metrics  *metrics.Recorder
	tracker  *tracker
}

// NewPoll builds a polling source. A nil client gets a default with a timeout.
func NewPoll(url string, interval time.Duration, client *http.Client, logger *slog.Logger, recorder *metrics.Recorder) (*Poll, error) {
	if strings.TrimSpace(url) == "" {
		return nil, ErrMissingURL
	}
	if interval <= 0 {
		interval = defaultPollInterval
	}
	var doer httpDoer = client
	if client == nil {
		doer = &http.Client{Timeout: defaultPollTimeout}
	}
	return &Poll{
		url:      url,
		client:   doer,
		interval: interval,
		logger:   logger,
		metrics:  recorder,
		tracker:  newTracker("poll"),
	}, nil
}

func (p *Poll) Name() string { return "poll" }

func (p *Poll) Status() Status { return p.tracker.snapshot() }

// Run fetches once immediately to warm data on boot, then on every tick.
func (p *Poll) Run(ctx context.Context, handle Handler) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	defer p.tracker.disconnected(nil)

	logging.Info(p.logger, "poller started", slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()))
	for {
		p.fetchOnce(ctx, handle)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (p *Poll) fetchOnce(ctx context.Context, handle Handler) {
	start := time.Now()
	payload, err := p.fetch(ctx)
	p.metrics.RecordPollerCycle(time.Since(start), err)
	p.metrics.RecordSourceAttempt(p.Name(), time.Since(start), err)
	if err != nil {
		if se, ok := AsStatusError(err); ok && se.StatusCode == http.StatusTooManyRequests {
			p.metrics.RecordRateLimit(p.Name(), se.RetryAfter)
		}
		p.tracker.disconnected(err)
		logging.Error(p.logger, "poller fetch failed", err,
			slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()),
		)
		return
	}
	p.tracker.connected()
	deliver(ctx, p.Name(), handle, payload, p.tracker, p.logger)
}

func (p *Poll) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{
			Source:     p.Name(),
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Body:       strings.TrimSpace(string(body)),
		}
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
}

func parseRetryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
