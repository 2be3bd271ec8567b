package metrics

import (
	"sync"
	"time"
)

type sourceStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	reconnects      int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

type ingestStats struct {
	batches   int
	rejected  int
	dropped   int
	lastCount int
}

// Recorder captures lightweight, in-memory metrics about upstream sources,
// ingestion and rotation. When built by Setup it also forwards to OpenTelemetry.
type Recorder struct {
	mu        sync.Mutex
	stats     map[string]*sourceStats
	ingest    ingestStats
	rotations map[string]int
	otel      *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats:     make(map[string]*sourceStats),
		rotations: make(map[string]int),
		otel:      otel,
	}
}

// RecordSourceAttempt increments counters for an upstream call (feed fetch,
// highlight lookup) and stores the last observed latency.
func (r *Recorder) RecordSourceAttempt(source string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(source)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordSourceAttempt(source, duration, err)
	}
}

// RecordRateLimit tracks that an upstream responded 429 and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(source string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(source)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordRateLimit(source, retryAfter)
	}
}

// RecordReconnect counts a streaming source re-establishing its connection.
func (r *Recorder) RecordReconnect(source string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.ensureStats(source).reconnects++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordReconnect(source)
	}
}

// RecordIngest tracks one inbound payload. accepted is the size of the list
// that replaced the previous one; dropped counts malformed records that were
// skipped. A non-nil err means the whole payload was rejected.
func (r *Recorder) RecordIngest(accepted, dropped int, duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.ingest.batches++
	r.ingest.dropped += dropped
	if err != nil {
		r.ingest.rejected++
	} else {
		r.ingest.lastCount = accepted
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordIngest(accepted, dropped, duration, err)
	}
}

// RecordRotation counts a rotation step such as "set" or "featured".
func (r *Recorder) RecordRotation(kind string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.rotations[kind]++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordRotation(kind)
	}
}

// RecordHubClients adjusts the connected websocket client gauge.
func (r *Recorder) RecordHubClients(delta int) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHubClients(delta)
}

// SourceCalls returns the total attempts recorded for a source.
func (r *Recorder) SourceCalls(source string) int {
	return r.Snapshot(source).Calls
}

// SourceErrors returns the total failed attempts recorded for a source.
func (r *Recorder) SourceErrors(source string) int {
	return r.Snapshot(source).Errors
}

// RateLimitHits returns the number of rate limit events seen for a source.
func (r *Recorder) RateLimitHits(source string) int {
	return r.Snapshot(source).RateLimitHits
}

// LastRetryAfter returns the most recent Retry-After recorded for a source.
func (r *Recorder) LastRetryAfter(source string) time.Duration {
	return r.Snapshot(source).LastRetryAfter
}

// LastCallLatency returns the last recorded latency for a source call.
func (r *Recorder) LastCallLatency(source string) time.Duration {
	return r.Snapshot(source).LastCallLatency
}

// Rotations returns how many rotation steps of kind were recorded.
func (r *Recorder) Rotations(kind string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rotations[kind]
}

// Snapshot returns a copy of the current stats for the source.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	Reconnects      int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(source string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stats, ok := r.stats[source]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		Reconnects:      stats.reconnects,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// IngestSnapshot summarizes ingestion so far.
type IngestSnapshot struct {
	Batches   int
	Rejected  int
	Dropped   int
	LastCount int
}

func (r *Recorder) Ingest() IngestSnapshot {
	if r == nil {
		return IngestSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return IngestSnapshot{
		Batches:   r.ingest.batches,
		Rejected:  r.ingest.rejected,
		Dropped:   r.ingest.dropped,
		LastCount: r.ingest.lastCount,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordPollerCycle tracks poll-source cycles and errors.
func (r *Recorder) RecordPollerCycle(duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordPoller(duration, err)
}

// ensureStats must be called with r.mu held.
func (r *Recorder) ensureStats(source string) *sourceStats {
	stats, ok := r.stats[source]
	if !ok {
		stats = &sourceStats{}
		r.stats[source] = stats
	}
	return stats
}
