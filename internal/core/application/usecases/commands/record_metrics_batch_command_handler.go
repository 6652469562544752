package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// RecordMetricsBatchCommandHandler persists geocoding metric batches.
// Unlike the dispatch path, persistence failures here are returned to the
// caller: the flush job logs them and the batch is lost (at-most-once).
type RecordMetricsBatchCommandHandler struct {
	metrics ports.MetricRepository
}

// NewRecordMetricsBatchCommandHandler creates a handler for metric batch
// persistence.
func NewRecordMetricsBatchCommandHandler(
	metrics ports.MetricRepository,
) RecordMetricsBatchCommandHandler {
	return RecordMetricsBatchCommandHandler{
		metrics: metrics,
	}
}

// Handle validates the command and writes the batch in one call.
func (h RecordMetricsBatchCommandHandler) Handle(
	ctx context.Context, command RecordMetricsBatchCommand,
) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return h.metrics.AddBatch(ctx, command.Events())
}
