// Package ports defines the interfaces between the dispatch core and its
// external collaborators: the technician store, the geocoding and routing
// providers, the credential store, the availability cache, and the metrics
// flusher. These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/technician"
)

// TechnicianRepository defines the persistence contract for technician
// aggregates.
type TechnicianRepository interface {
	// Add persists a new technician aggregate to storage.
	Add(ctx context.Context, tech *technician.Technician) error

	// Get retrieves a technician by company and identifier.
	Get(ctx context.Context, company string, id string) (*technician.Technician, error)

	// GetAllByCompany retrieves every technician record for a company,
	// ordered by identifier. Listing order is an implementation detail of
	// the store; callers must not rely on it beyond determinism within one
	// store.
	GetAllByCompany(ctx context.Context, company string) ([]*technician.Technician, error)

	// UpdateBaseLocation persists a technician's resolved base location.
	// The write happens at most once per technician record; later dispatches
	// reuse the cached value.
	UpdateBaseLocation(ctx context.Context, tech *technician.Technician) error
}
