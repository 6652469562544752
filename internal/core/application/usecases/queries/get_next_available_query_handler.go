package queries

import (
	"context"

	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// GetNextAvailableQueryHandler reads the availability cache populated by the
// dispatch path. Unlike the other read models it goes through the cache port
// rather than the database: the entry is ephemeral and expires on its own.
type GetNextAvailableQueryHandler struct {
	cache ports.AvailabilityCache
}

// NewGetNextAvailableQueryHandler creates a handler over the availability
// cache.
func NewGetNextAvailableQueryHandler(cache ports.AvailabilityCache) GetNextAvailableQueryHandler {
	return GetNextAvailableQueryHandler{cache: cache}
}

// Handle returns the cached entry for the company. A missing or expired
// entry is reported as errs.ObjectNotFoundError.
func (h GetNextAvailableQueryHandler) Handle(
	ctx context.Context,
	query GetNextAvailableQuery,
) (GetNextAvailableQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetNextAvailableQueryResponse{}, err
	}

	entry, found, err := h.cache.Get(ctx, query.Company())
	if err != nil {
		return GetNextAvailableQueryResponse{}, err
	}
	if !found {
		return GetNextAvailableQueryResponse{},
			errs.NewObjectNotFoundError("company", query.Company())
	}

	return GetNextAvailableQueryResponse{
		Company:       entry.Company,
		TechnicianID:  entry.TechnicianID,
		TravelMinutes: entry.TravelMinutes,
		JobAddress:    entry.JobAddress,
		Point:         entry.Point,
	}, nil
}
