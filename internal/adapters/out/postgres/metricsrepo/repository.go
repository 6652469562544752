package metricsrepo

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/address"

	"gorm.io/gorm"
)

// GormMetricRepository implements MetricRepository using GORM.
type GormMetricRepository struct {
	db *gorm.DB
}

// NewGormMetricRepository creates a new GORM metric repository.
func NewGormMetricRepository(db *gorm.DB) *GormMetricRepository {
	return &GormMetricRepository{db: db}
}

// AddBatch writes a batch of metric events in a single insert. An empty
// batch is a no-op. Expired rows are swept on the way in so the table stays
// bounded without a dedicated cleanup job.
func (r *GormMetricRepository) AddBatch(ctx context.Context, events []address.MetricEvent) error {
	if len(events) == 0 {
		return nil
	}

	dtos := make([]MetricDTO, 0, len(events))
	for _, event := range events {
		dtos = append(dtos, fromDomain(event))
	}

	if err := r.db.WithContext(ctx).Create(&dtos).Error; err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&MetricDTO{}).Error
}
