// Package metricsrepo provides persistence for geocoding metric events.
// Rows record which address rewrite each geocoding attempt used and whether
// it produced a position, which is the raw material for tuning the variant
// order over time.
package metricsrepo

import (
	"time"

	"dispatch/internal/core/domain/model/address"

	"github.com/google/uuid"
)

// metricRetention is how long a metric row stays relevant. Expired rows are
// ignored by readers and swept opportunistically.
const metricRetention = 30 * 24 * time.Hour

// MetricDTO represents one geocoding attempt in the database.
type MetricDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Variant    string    `gorm:"type:varchar(32);not null;index"`
	Success    bool      `gorm:"not null"`
	RecordedAt time.Time `gorm:"not null"`
	ExpiresAt  time.Time `gorm:"not null;index"`
}

// TableName specifies the database table name for metric entities.
// Overrides GORM's default naming convention to use "geocode_metrics"
// instead of "metric_dtos".
func (MetricDTO) TableName() string {
	return "geocode_metrics"
}

// fromDomain converts a metric event to its database representation, minting
// the row identity and expiry here.
func fromDomain(event address.MetricEvent) MetricDTO {
	return MetricDTO{
		ID:         uuid.New(),
		Variant:    string(event.Variant),
		Success:    event.Success,
		RecordedAt: event.Timestamp,
		ExpiresAt:  event.Timestamp.Add(metricRetention),
	}
}
