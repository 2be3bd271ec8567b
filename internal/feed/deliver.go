package feed

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/saturday-stats/internal/logging"
)

// deliver hands payload to handle, recording the message and any rejection.
func deliver(ctx context.Context, name string, handle Handler, payload []byte, tr *tracker, logger *slog.Logger) {
	tr.message()
	if handle == nil {
		return
	}
	if err := handle(ctx, payload); err != nil {
		tr.failed(err)
		logging.Warn(logger, "feed payload rejected",
			logging.FieldSource, name,
			"error", err,
		)
	}
}
