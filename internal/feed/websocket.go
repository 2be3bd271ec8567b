package feed

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/preston-bernstein/saturday-stats/internal/logging"
	"github.com/preston-bernstein/saturday-stats/internal/metrics"
)

const wsHandshakeTimeout = 10 * time.Second

// WebSocket reads scoreboard batches pushed over a websocket, reconnecting
// with exponential backoff whenever the connection drops.
type WebSocket struct {
	url     string
	dialer  *websocket.Dialer
	backoff BackoffConfig
	logger  *slog.Logger
	metrics *metrics.Recorder
	tracker *tracker
}

// NewWebSocket builds a websocket source for url (ws:// or wss://).
func NewWebSocket(url string, backoffCfg BackoffConfig, logger *slog.Logger, recorder *metrics.Recorder) (*WebSocket, error) {
	if strings.TrimSpace(url) == "" {
		return nil, ErrMissingURL
	}
	return &WebSocket{
		url: url,
		dialer: &websocket.Dialer{
			HandshakeTimeout: wsHandshakeTimeout,
		},
		backoff: backoffCfg,
		logger:  logger,
		metrics: recorder,
		tracker: newTracker("websocket"),
	}, nil
}

func (w *WebSocket) Name() string { return "websocket" }

func (w *WebSocket) Status() Status { return w.tracker.snapshot() }

// Run keeps a connection open until ctx is cancelled. Connection errors are
// logged and retried; they never end the run.
func (w *WebSocket) Run(ctx context.Context, handle Handler) error {
	b := w.backoff.build()
	for attempt := 1; ; attempt++ {
		start := time.Now()
		conn, _, err := w.dialer.DialContext(ctx, w.url, nil)
		w.metrics.RecordSourceAttempt(w.Name(), time.Since(start), err)
		if err == nil {
			// A dropped connection is the first failure of a new streak.
			b.Reset()
			attempt = 1
			err = w.consume(ctx, conn, handle)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		w.tracker.disconnected(err)
		w.tracker.reconnecting()
		w.metrics.RecordReconnect(w.Name())
		delay := b.NextBackOff()
		msg := "feed connection lost"
		if errors.Is(err, ErrSourceClosed) {
			msg = "feed closed by upstream"
		}
		logging.Warn(w.logger, msg,
			logging.FieldSource, w.Name(),
			logging.FieldAttempt, attempt,
			"retryIn", delay.String(),
			"error", err,
		)
		if !sleep(ctx, delay) {
			return ctx.Err()
		}
	}
}

func (w *WebSocket) consume(ctx context.Context, conn *websocket.Conn, handle Handler) error {
	w.tracker.connected()
	logging.Info(w.logger, "feed connected", logging.FieldSource, w.Name())

	// Closing the connection is the only way to unblock ReadMessage.
	stop := context.AfterFunc(ctx, func() {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		_ = conn.Close()
	})
	defer func() {
		stop()
		_ = conn.Close()
	}()

	for {
		msgType, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return ErrSourceClosed
			}
			return err
		}
		if msgType != websocket.TextMessage && msgType != websocket.BinaryMessage {
			continue
		}
		deliver(ctx, w.Name(), handle, payload, w.tracker, w.logger)
	}
}
