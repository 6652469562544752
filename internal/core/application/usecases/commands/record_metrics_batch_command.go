package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/address"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrRecordMetricsBatchCommandIsNotConstructed = errors.New(
	"RecordMetricsBatchCommand must be created via NewRecordMetricsBatchCommand constructor",
)

// RecordMetricsBatchCommand represents a request to persist a batch of
// geocoding metric events. Batches arrive from the background flush job and
// from the out-of-band metrics callback on the HTTP surface.
type RecordMetricsBatchCommand struct { //nolint:recvcheck //using for validation
	events []address.MetricEvent

	guard guard.ConstructorGuard
}

// NewRecordMetricsBatchCommand creates a command carrying the given events.
// The batch must be non-empty.
func NewRecordMetricsBatchCommand(events []address.MetricEvent) (RecordMetricsBatchCommand, error) {
	if len(events) == 0 {
		return RecordMetricsBatchCommand{}, errs.NewValueIsRequiredError("events")
	}

	return RecordMetricsBatchCommand{
		events: events,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRecordMetricsBatchCommandIsNotConstructed if validation fails.
func (c RecordMetricsBatchCommand) Validate() error {
	return c.guard.Validate(ErrRecordMetricsBatchCommandIsNotConstructed)
}

// Events returns the metric events to persist.
func (c RecordMetricsBatchCommand) Events() []address.MetricEvent {
	return c.events
}
