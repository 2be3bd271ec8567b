package highlights

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

func resolveHTTPClient(client *http.Client, timeout time.Duration) httpDoer {
	if client != nil {
		return client
	}
	return &http.Client{Timeout: resolveTimeout(timeout)}
}

func resolveTimeout(timeout time.Duration) time.Duration {
	if timeout <= 0 {
		return defaultHTTPTimeout
	}
	return timeout
}

func normalizeBaseURL(raw string) string {
	if strings.TrimSpace(raw) == "" {
		raw = defaultBaseURL
	}
	return strings.TrimSuffix(raw, "/")
}

// resolveLimiter spreads rpm requests evenly across a minute with a burst of one.
func resolveLimiter(rpm int) *rate.Limiter {
	if rpm <= 0 {
		rpm = defaultRequestsPerMinute
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), 1)
}
