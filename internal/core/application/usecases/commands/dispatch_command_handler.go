package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/address"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

var ErrNoTechniciansFound = errors.New("no technicians found")

// metricFlushMinRemaining is the request-deadline headroom below which the
// metric flush is skipped entirely.
const metricFlushMinRemaining = 500 * time.Millisecond

// DispatchResult is the outcome of a dispatch evaluation.
// TechnicianID and EtaMinutes are nil when every technician was excluded.
type DispatchResult struct {
	TechnicianID  *string
	EtaMinutes    *float64
	TravelMinutes int
}

// DispatchCommandHandler orchestrates the dispatch evaluation: it resolves
// the job address, scores every technician of the company through the
// availability calculator, and keeps the one with the strictly lowest ETA.
//
// Side effects are best-effort and never fail the request: newly resolved
// base locations are persisted, the availability cache entry is written, and
// the request's geocoding metrics are handed to the flusher.
type DispatchCommandHandler struct {
	technicians   ports.TechnicianRepository
	resolver      *services.GeocodeResolver
	calculator    *services.AvailabilityCalculator
	cache         ports.AvailabilityCache
	flusher       ports.MetricFlusher
	baseAddresses map[string]string
	logger        *slog.Logger
}

// NewDispatchCommandHandler creates a handler for dispatch operations.
// baseAddresses is the per-company base address directory; it doubles as the
// set of companies the service dispatches for.
func NewDispatchCommandHandler(
	technicians ports.TechnicianRepository,
	resolver *services.GeocodeResolver,
	calculator *services.AvailabilityCalculator,
	cache ports.AvailabilityCache,
	flusher ports.MetricFlusher,
	baseAddresses map[string]string,
	logger *slog.Logger,
) DispatchCommandHandler {
	return DispatchCommandHandler{
		technicians:   technicians,
		resolver:      resolver,
		calculator:    calculator,
		cache:         cache,
		flusher:       flusher,
		baseAddresses: baseAddresses,
		logger:        logger.With("component", "dispatch_handler"),
	}
}

// Handle processes the dispatch command.
//
// Returns ErrNoTechniciansFound when the company has no technician records
// (the cache is not written in that case). A company absent from the base
// address directory is a validation error. Upstream degradation never fails
// the request: technicians the calculator excludes simply do not win, and a
// request where every technician is excluded returns a result with no
// technician ID.
func (h DispatchCommandHandler) Handle(
	ctx context.Context, command DispatchCommand,
) (DispatchResult, error) {
	if err := command.Validate(); err != nil {
		return DispatchResult{}, err
	}

	if _, ok := h.baseAddresses[command.Company()]; !ok {
		return DispatchResult{}, errs.NewValueIsInvalidError("company")
	}

	buf := address.NewMetricBuffer()
	defer h.flushMetrics(ctx, buf)

	target := services.Endpoint{Address: command.JobAddress()}
	if point, err := h.resolver.Resolve(ctx, buf, command.JobAddress()); err == nil {
		target.Point = &point
	}

	techs, err := h.technicians.GetAllByCompany(ctx, command.Company())
	if err != nil {
		// A store failure degrades to "no records", same as an empty scan.
		h.logger.ErrorContext(ctx, "Could not load technicians",
			"company", command.Company(), "error", err)
		techs = nil
	}
	if len(techs) == 0 {
		return DispatchResult{}, ErrNoTechniciansFound
	}

	var best *services.Availability
	for _, tech := range techs {
		hadBaseLocation := tech.BaseLocation() != nil

		availability, err := h.calculator.Calculate(ctx, buf, tech, target)
		if err != nil {
			return DispatchResult{}, err
		}

		if !hadBaseLocation && tech.BaseLocation() != nil {
			if err := h.technicians.UpdateBaseLocation(ctx, tech); err != nil {
				h.logger.WarnContext(ctx, "Could not persist base location",
					"technician", tech.ID(), "error", err)
			}
		}

		if best == nil || availability.EtaMinutes < best.EtaMinutes {
			chosen := availability
			best = &chosen
		}
	}

	result := h.buildResult(best)
	h.writeCacheEntry(ctx, command, result, target)

	return result, nil
}

func (h DispatchCommandHandler) buildResult(best *services.Availability) DispatchResult {
	if best == nil || best.Excluded() {
		return DispatchResult{}
	}

	technicianID := best.TechnicianID
	eta := best.EtaMinutes
	return DispatchResult{
		TechnicianID:  &technicianID,
		EtaMinutes:    &eta,
		TravelMinutes: best.TravelMinutes,
	}
}

// writeCacheEntry records the decision for later availability reads. The
// entry is written even when no technician won, so consumers can tell "the
// company was evaluated and nobody is available" from "never evaluated".
func (h DispatchCommandHandler) writeCacheEntry(
	ctx context.Context,
	command DispatchCommand,
	result DispatchResult,
	target services.Endpoint,
) {
	entry := ports.AvailabilityEntry{
		Company:       command.Company(),
		TechnicianID:  result.TechnicianID,
		TravelMinutes: result.TravelMinutes,
		JobAddress:    command.JobAddress(),
		Point:         target.Point,
	}

	if err := h.cache.Put(ctx, entry); err != nil {
		h.logger.WarnContext(ctx, "Could not write availability cache entry",
			"company", command.Company(), "error", err)
	}
}

// flushMetrics drains the request's metric buffer into the flusher. When the
// request deadline is nearly exhausted the batch is dropped instead.
func (h DispatchCommandHandler) flushMetrics(ctx context.Context, buf *address.MetricBuffer) {
	events := buf.Drain()
	if len(events) == 0 {
		return
	}

	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < metricFlushMinRemaining {
		h.logger.WarnContext(ctx, "Skipping metric flush, request deadline nearly exhausted",
			"events", len(events))
		return
	}

	h.flusher.Flush(events)
}
