package jobs

import (
	"fmt"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	metricsFlushJob *MetricsFlushJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes the metric queue and command handler as dependencies to wire up the
// job execution.
func NewJobManager(
	queue metricDrainer,
	recordMetricsHandler commands.RecordMetricsBatchCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		metricsFlushJob: NewMetricsFlushJob(queue, recordMetricsHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.metricsFlushJob.Start(); err != nil {
		return fmt.Errorf("failed to start metrics flush job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully. Events still queued are
// abandoned, consistent with at-most-once metric delivery.
func (jm *JobManager) StopAll() {
	jm.metricsFlushJob.Stop()
}
