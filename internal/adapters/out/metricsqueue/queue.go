// Package metricsqueue provides the in-memory handoff between request
// handling and metric persistence. Requests enqueue their drained metric
// events without blocking; a background job drains the queue in batches.
// Delivery is at-most-once: a full queue drops events and shutdown abandons
// whatever is still buffered.
package metricsqueue

import (
	"log/slog"

	"dispatch/internal/core/domain/model/address"
)

// DefaultCapacity bounds the queue when no explicit capacity is configured.
const DefaultCapacity = 1024

// Queue is a bounded FIFO of metric events. It implements
// ports.MetricFlusher on the producer side.
type Queue struct {
	events chan address.MetricEvent
	logger *slog.Logger
}

// NewQueue creates a queue with the given capacity.
func NewQueue(capacity int, logger *slog.Logger) *Queue {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	return &Queue{
		events: make(chan address.MetricEvent, capacity),
		logger: logger.With("component", "metrics_queue"),
	}
}

// Flush enqueues a batch without blocking. Events that do not fit are
// dropped and counted in a single log line.
func (q *Queue) Flush(events []address.MetricEvent) {
	dropped := 0
	for _, event := range events {
		select {
		case q.events <- event:
		default:
			dropped++
		}
	}

	if dropped > 0 {
		q.logger.Warn("Metric queue full, dropping events", "dropped", dropped)
	}
}

// Drain removes and returns everything currently queued without blocking.
// Returns nil when the queue is empty.
func (q *Queue) Drain() []address.MetricEvent {
	var events []address.MetricEvent
	for {
		select {
		case event := <-q.events:
			events = append(events, event)
		default:
			return events
		}
	}
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	return len(q.events)
}
