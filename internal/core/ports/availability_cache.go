package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
)

// AvailabilityEntry is the ephemeral record of the latest dispatch decision
// for a company. It is best-effort and never authoritative: entries are
// overwritten on every dispatch and expire on their own.
type AvailabilityEntry struct {
	Company       string
	TechnicianID  *string
	TravelMinutes int
	JobAddress    string
	Point         *kernel.GeoPoint
}

// AvailabilityCache stores the most recent dispatch decision per company
// with a short expiry.
type AvailabilityCache interface {
	// Put writes the entry, replacing any previous one for the company.
	Put(ctx context.Context, entry AvailabilityEntry) error

	// Get returns the current entry for a company. The second return value
	// is false when no entry exists or it has expired.
	Get(ctx context.Context, company string) (AvailabilityEntry, bool, error)
}
