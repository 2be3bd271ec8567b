// Package highlights fetches highlight clip URLs for a game from the ESPN
// summary API. Lookups never fail from the caller's point of view: every
// error resolves to an empty list.
package highlights

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/preston-bernstein/saturday-stats/internal/logging"
	"github.com/preston-bernstein/saturday-stats/internal/metrics"
)

// Config controls how the client reaches the summary API.
type Config struct {
	BaseURL           string
	HTTPClient        *http.Client
	Timeout           time.Duration
	RequestsPerMinute int
}

// Client looks up HD clip URLs per game.
type Client struct {
	baseURL    string
	httpClient httpDoer
	limiter    *rate.Limiter
	timeout    time.Duration
	group      singleflight.Group
	logger     *slog.Logger
	metrics    *metrics.Recorder
}

// NewClient constructs a highlights client with the provided configuration.
func NewClient(cfg Config, logger *slog.Logger, recorder *metrics.Recorder) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		limiter:    resolveLimiter(cfg.RequestsPerMinute),
		timeout:    resolveTimeout(cfg.Timeout),
		logger:     logger,
		metrics:    recorder,
	}
}

// Clips returns HD clip URLs for gameID ordered by original publish time.
// The result is never nil; concurrent calls for the same game share one
// request, which outlives any single caller's cancellation.
func (c *Client) Clips(ctx context.Context, gameID string) []string {
	gameID = strings.TrimSpace(gameID)
	if c == nil || gameID == "" {
		return []string{}
	}

	ch := c.group.DoChan(gameID, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()
		return c.fetch(fetchCtx, gameID)
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return []string{}
	case res = <-ch:
	}
	if res.Err != nil {
		logging.Warn(c.logger, "highlights unavailable",
			logging.FieldGameID, gameID,
			"error", res.Err,
		)
		return []string{}
	}
	shared := res.Val.([]string)
	out := make([]string, len(shared))
	copy(out, shared)
	return out
}

func (c *Client) fetch(ctx context.Context, gameID string) ([]string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		c.metrics.RecordRateLimit(sourceName, 0)
		return nil, err
	}

	start := time.Now()
	clips, err := c.request(ctx, gameID)
	c.metrics.RecordSourceAttempt(sourceName, time.Since(start), err)
	return clips, err
}

func (c *Client) request(ctx context.Context, gameID string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/summary", nil)
	if err != nil {
		return nil, err
	}
	q := req.URL.Query()
	q.Set("event", gameID)
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("highlights: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload summaryResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxSummaryBytes)).Decode(&payload); err != nil {
		return nil, fmt.Errorf("highlights: decode summary: %w", err)
	}
	return hdLinks(payload.Videos), nil
}

// hdLinks orders videos by publish time and keeps those with an HD source.
// Videos with an unparseable date sort first.
func hdLinks(videos []video) []string {
	sorted := make([]video, len(videos))
	copy(sorted, videos)
	sort.SliceStable(sorted, func(i, j int) bool {
		return publishedAt(sorted[i]).Before(publishedAt(sorted[j]))
	})

	links := make([]string, 0, len(sorted))
	for _, v := range sorted {
		if href := strings.TrimSpace(v.Links.Source.HD.Href); href != "" {
			links = append(links, href)
		}
	}
	return links
}

func publishedAt(v video) time.Time {
	t, err := time.Parse(time.RFC3339, v.OriginalPublishDate)
	if err != nil {
		return time.Time{}
	}
	return t
}
