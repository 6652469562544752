// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrGetAllTechniciansQueryIsNotConstructed = errors.New(
	"GetAllTechniciansQuery must be created via NewGetAllTechniciansQuery constructor",
)

// GetAllTechniciansQuery retrieves information about all technicians in the
// system. Returns identity and queue depth per technician for operational
// visibility.
//
// Example:
//
//	query := NewGetAllTechniciansQuery()
//	handler := NewGetAllTechniciansQueryHandler(db)
//
//	technicians, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve technicians: %w", err)
//	}
type GetAllTechniciansQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAllTechniciansQuery creates a query to retrieve all technicians.
// This is a parameterless query that fetches the complete technician list.
func NewGetAllTechniciansQuery() GetAllTechniciansQuery {
	return GetAllTechniciansQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAllTechniciansQueryIsNotConstructed if validation fails.
func (q GetAllTechniciansQuery) Validate() error {
	return q.guard.Validate(ErrGetAllTechniciansQueryIsNotConstructed)
}

// GetAllTechniciansQueryResponse represents one technician in the read model.
type GetAllTechniciansQueryResponse struct {
	ID              string
	Company         string
	QueuedJobs      int
	HasBaseLocation bool
}
