package address

import "time"

// MetricEvent records a single geocoding attempt: which variant was tried,
// whether the provider returned a usable position, and when.
type MetricEvent struct {
	Variant   VariantKind
	Success   bool
	Timestamp time.Time
}

// MetricBuffer accumulates metric events during one dispatch request.
// A fresh buffer is created per request and threaded explicitly through the
// resolution pipeline, so no cross-request state is shared. The buffer is
// drained exactly once at the end of the request and handed to the flusher.
type MetricBuffer struct {
	events []MetricEvent
	now    func() time.Time
}

// NewMetricBuffer creates an empty buffer using wall-clock timestamps.
func NewMetricBuffer() *MetricBuffer {
	return &MetricBuffer{now: time.Now}
}

// NewMetricBufferWithClock creates a buffer with an injectable clock for
// tests.
func NewMetricBufferWithClock(now func() time.Time) *MetricBuffer {
	return &MetricBuffer{now: now}
}

// Record appends an event for the given variant attempt.
func (b *MetricBuffer) Record(variant VariantKind, success bool) {
	b.events = append(b.events, MetricEvent{
		Variant:   variant,
		Success:   success,
		Timestamp: b.now(),
	})
}

// Len returns the number of buffered events.
func (b *MetricBuffer) Len() int {
	return len(b.events)
}

// Drain returns the buffered events and empties the buffer.
func (b *MetricBuffer) Drain() []MetricEvent {
	events := b.events
	b.events = nil
	return events
}
