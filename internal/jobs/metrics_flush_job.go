package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/address"

	"github.com/robfig/cron/v3"
)

// metricDrainer is the queue side the job consumes.
type metricDrainer interface {
	Drain() []address.MetricEvent
}

// MetricsFlushJob periodically drains the metric queue and persists the
// batch. Runs every ten seconds; an empty queue is a no-op.
type MetricsFlushJob struct {
	queue   metricDrainer
	handler commands.RecordMetricsBatchCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewMetricsFlushJob creates a new job flushing queued metric events.
func NewMetricsFlushJob(
	queue metricDrainer,
	handler commands.RecordMetricsBatchCommandHandler,
	logger *slog.Logger,
) *MetricsFlushJob {
	return &MetricsFlushJob{
		queue:   queue,
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "metrics_flush_job"),
	}
}

// Start begins the metrics flush job to run every ten seconds.
func (j *MetricsFlushJob) Start() error {
	_, err := j.cron.AddFunc("*/10 * * * * *", j.Run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Metrics flush job started (running every ten seconds)")
	return nil
}

// Run executes one flush cycle.
func (j *MetricsFlushJob) Run() {
	ctx := context.Background()

	events := j.queue.Drain()
	if len(events) == 0 {
		return
	}

	cmd, err := commands.NewRecordMetricsBatchCommand(events)
	if err != nil {
		j.logger.ErrorContext(ctx, "Could not build metrics batch command", "error", err)
		return
	}

	if err := j.handler.Handle(ctx, cmd); err != nil {
		// The batch is lost: delivery is at-most-once.
		j.logger.ErrorContext(ctx, "Metrics flush failed",
			"events", len(events), "error", err)
		return
	}

	j.logger.InfoContext(ctx, "Flushed metric events", "events", len(events))
}

// Stop stops the metrics flush job. Events still queued are abandoned.
func (j *MetricsFlushJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Metrics flush job stopped")
}
