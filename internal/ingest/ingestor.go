package ingest

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/saturday-stats/internal/domain/games"
	"github.com/preston-bernstein/saturday-stats/internal/logging"
	"github.com/preston-bernstein/saturday-stats/internal/metrics"
)

// Consumer receives every accepted list. Lists are fresh slices and must be
// treated as read-only.
type Consumer interface {
	ReplaceGames(list []games.Game)
}

// ConsumerFunc adapts a function to Consumer.
type ConsumerFunc func(list []games.Game)

func (f ConsumerFunc) ReplaceGames(list []games.Game) { f(list) }

// Status describes recent ingestion health.
type Status struct {
	ConsecutiveFailures int       `json:"consecutiveFailures"`
	LastError           string    `json:"lastError,omitempty"`
	LastAttempt         time.Time `json:"lastAttempt"`
	LastSuccess         time.Time `json:"lastSuccess"`
	Games               int       `json:"games"`
	Dropped             int       `json:"dropped"`
}

// IsReady reports whether at least one payload was accepted and recent
// payloads are not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// Ingestor turns raw feed payloads into the ordered game list and hands it
// to consumers. Payloads are handled one at a time.
type Ingestor struct {
	classification string
	consumers      []Consumer
	logger         *slog.Logger
	metrics        *metrics.Recorder
	now            func() time.Time

	handleMu sync.Mutex

	statusMu sync.RWMutex
	status   Status
}

// New constructs an Ingestor filtering to classification.
func New(classification string, logger *slog.Logger, recorder *metrics.Recorder, consumers ...Consumer) *Ingestor {
	return &Ingestor{
		classification: classification,
		consumers:      consumers,
		logger:         logger,
		metrics:        recorder,
		now:            time.Now,
	}
}

// Handle ingests one payload. On an envelope error the previous list stays in
// place and the error is returned for the caller to log or count.
func (i *Ingestor) Handle(ctx context.Context, payload []byte) error {
	i.handleMu.Lock()
	defer i.handleMu.Unlock()

	start := time.Now()
	i.recordAttempt(i.now())

	decoded, skipped, err := Decode(payload)
	if err != nil {
		i.metrics.RecordIngest(0, 0, time.Since(start), err)
		i.recordFailure(err)
		logging.Warn(logging.FromContext(ctx, i.logger), "ingest rejected payload",
			"error", err,
			"bytes", len(payload),
		)
		return err
	}
	for _, rec := range skipped {
		logging.Warn(logging.FromContext(ctx, i.logger), "ingest skipped record",
			"index", rec.Index,
			"error", rec.Err,
		)
	}

	list := Prepare(decoded, i.classification)
	for _, c := range i.consumers {
		c.ReplaceGames(list)
	}

	i.metrics.RecordIngest(len(list), len(skipped), time.Since(start), nil)
	i.recordSuccess(len(list), len(skipped))
	logging.Debug(logging.FromContext(ctx, i.logger), "ingest accepted payload",
		logging.FieldCount, len(list),
		logging.FieldDropped, len(skipped),
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return nil
}

// Status returns a snapshot of recent ingestion health.
func (i *Ingestor) Status() Status {
	i.statusMu.RLock()
	defer i.statusMu.RUnlock()
	return i.status
}

func (i *Ingestor) recordAttempt(at time.Time) {
	i.statusMu.Lock()
	defer i.statusMu.Unlock()
	i.status.LastAttempt = at
}

func (i *Ingestor) recordSuccess(count, dropped int) {
	i.statusMu.Lock()
	defer i.statusMu.Unlock()
	i.status.ConsecutiveFailures = 0
	i.status.LastError = ""
	i.status.LastSuccess = i.status.LastAttempt
	i.status.Games = count
	i.status.Dropped += dropped
}

func (i *Ingestor) recordFailure(err error) {
	i.statusMu.Lock()
	defer i.statusMu.Unlock()
	i.status.ConsecutiveFailures++
	if err != nil {
		i.status.LastError = err.Error()
	}
}
