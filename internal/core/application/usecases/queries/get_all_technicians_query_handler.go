package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetAllTechniciansQueryHandler retrieves all technician information from the
// database. Uses direct SQL queries for optimal read performance in the CQRS
// pattern.
//
// Example:
//
//	handler := NewGetAllTechniciansQueryHandler(db)
//	query := NewGetAllTechniciansQuery()
//
//	technicians, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get technicians: %v", err)
//	    return err
//	}
type GetAllTechniciansQueryHandler struct {
	db *gorm.DB
}

// NewGetAllTechniciansQueryHandler creates a handler for technician retrieval
// queries. Requires a GORM database connection for query execution.
func NewGetAllTechniciansQueryHandler(db *gorm.DB) GetAllTechniciansQueryHandler {
	return GetAllTechniciansQueryHandler{db: db}
}

// Handle executes the query to retrieve all technicians.
// Returns one row per technician with the current queue depth, sorted by
// company then identifier for consistent output.
func (h GetAllTechniciansQueryHandler) Handle(
	ctx context.Context,
	query GetAllTechniciansQuery,
) ([]GetAllTechniciansQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	technicians := make([]GetAllTechniciansQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			t.id,
			t.company,
			COUNT(j.position) AS queued_jobs,
			t.base_address IS NOT NULL AS has_base_location
		FROM technicians t
		LEFT JOIN technician_jobs j
			ON j.company = t.company AND j.technician_id = t.id
		GROUP BY t.id, t.company, t.base_address
		ORDER BY t.company, t.id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var technician GetAllTechniciansQueryResponse

		err = rows.Scan(
			&technician.ID,
			&technician.Company,
			&technician.QueuedJobs,
			&technician.HasBaseLocation,
		)
		if err != nil {
			return nil, err
		}

		technicians = append(technicians, technician)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return technicians, nil
}
