package ports

import (
	"context"

	"dispatch/internal/core/domain/model/address"
)

// MetricFlusher hands a drained batch of geocoding metric events to an
// independent execution context. Implementations must not block the caller:
// delivery is best-effort, at-most-once, and abandoned on shutdown.
type MetricFlusher interface {
	Flush(events []address.MetricEvent)
}

// MetricRepository persists geocoding metric events.
type MetricRepository interface {
	AddBatch(ctx context.Context, events []address.MetricEvent) error
}
