package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrGetNextAvailableQueryIsNotConstructed = errors.New(
	"GetNextAvailableQuery must be created via NewGetNextAvailableQuery constructor",
)

// GetNextAvailableQuery retrieves the most recent dispatch decision for a
// company from the availability cache. Entries expire on their own, so a
// miss means the company has not been evaluated recently.
type GetNextAvailableQuery struct { //nolint:recvcheck //using for validation
	company string

	guard guard.ConstructorGuard
}

// NewGetNextAvailableQuery creates a query for a company's cached
// availability. The company must be non-empty.
func NewGetNextAvailableQuery(company string) (GetNextAvailableQuery, error) {
	if company == "" {
		return GetNextAvailableQuery{}, errs.NewValueIsRequiredError("company")
	}

	return GetNextAvailableQuery{
		company: company,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetNextAvailableQueryIsNotConstructed if validation fails.
func (q GetNextAvailableQuery) Validate() error {
	return q.guard.Validate(ErrGetNextAvailableQueryIsNotConstructed)
}

// Company returns the company whose cache entry is requested.
func (q GetNextAvailableQuery) Company() string {
	return q.company
}

// GetNextAvailableQueryResponse is the cached dispatch decision read model.
// TechnicianID is nil when the last evaluation excluded every technician.
type GetNextAvailableQueryResponse struct {
	Company       string
	TechnicianID  *string
	TravelMinutes int
	JobAddress    string
	Point         *kernel.GeoPoint
}
