package services

import (
	"context"
	"log/slog"
	"math"

	"dispatch/internal/core/domain/model/address"
	"dispatch/internal/core/domain/model/technician"
)

// Availability is the projected availability of one technician for a new
// job: the total ETA in minutes and the travel-time component the dispatcher
// needs for cache population. An ETA of +Inf excludes the technician from
// consideration.
type Availability struct {
	TechnicianID  string
	EtaMinutes    float64
	TravelMinutes int
}

// Excluded reports whether the technician cannot be considered for this
// request.
func (a Availability) Excluded() bool {
	return math.IsInf(a.EtaMinutes, 1)
}

// AvailabilityCalculator computes how soon a technician can start a new job
// at a target address.
//
// For an idle technician the effective origin is the base location, resolved
// lazily from the per-company base address directory and cached on the
// aggregate (the caller persists the write; a persist failure never blocks
// the computation). For a busy technician the origin is the last queued job,
// and the outstanding workload is added on top of the travel estimate.
type AvailabilityCalculator struct {
	resolver      *GeocodeResolver
	estimator     *TravelEstimator
	baseAddresses map[string]string
	logger        *slog.Logger
}

// NewAvailabilityCalculator creates a calculator.
// baseAddresses maps company names to their technicians' idle base address;
// companies without an entry exclude idle technicians from dispatch.
func NewAvailabilityCalculator(
	resolver *GeocodeResolver,
	estimator *TravelEstimator,
	baseAddresses map[string]string,
	logger *slog.Logger,
) *AvailabilityCalculator {
	return &AvailabilityCalculator{
		resolver:      resolver,
		estimator:     estimator,
		baseAddresses: baseAddresses,
		logger:        logger.With("component", "availability_calculator"),
	}
}

// Calculate returns the technician's availability for a job at target.
//
// The returned error reports invalid input only; upstream degradation is
// absorbed into the estimate (or an infinite ETA when no base address is
// configured for the company).
//
// When the technician's base location is resolved for the first time during
// the call, it is set on the aggregate; the caller is responsible for
// persisting the change.
func (c *AvailabilityCalculator) Calculate(
	ctx context.Context,
	buf *address.MetricBuffer,
	tech *technician.Technician,
	target Endpoint,
) (Availability, error) {
	if err := tech.Validate(); err != nil {
		return Availability{}, err
	}

	var origin Endpoint
	var workload float64

	if tech.HasJobs() {
		workload = tech.WorkloadMinutes()
		last, _ := tech.LastJob()
		origin = Endpoint{Address: last.Address(), Point: last.Point()}
	} else {
		var excluded bool
		origin, excluded = c.idleOrigin(ctx, buf, tech)
		if excluded {
			return Availability{
				TechnicianID: tech.ID(),
				EtaMinutes:   math.Inf(1),
			}, nil
		}
	}

	travel := c.estimator.Estimate(ctx, buf, origin, target)

	eta := workload + float64(travel)
	c.logger.InfoContext(ctx, "Calculated technician availability",
		"technician", tech.ID(), "workload_minutes", workload,
		"travel_minutes", travel, "eta_minutes", eta)

	return Availability{
		TechnicianID:  tech.ID(),
		EtaMinutes:    eta,
		TravelMinutes: travel,
	}, nil
}

// idleOrigin determines the effective origin of a technician with an empty
// queue. The second return value is true when the technician must be
// excluded because no base address is configured for the company.
func (c *AvailabilityCalculator) idleOrigin(
	ctx context.Context,
	buf *address.MetricBuffer,
	tech *technician.Technician,
) (Endpoint, bool) {
	if cached := tech.BaseLocation(); cached != nil {
		point := cached.Point()
		return Endpoint{Address: cached.Address(), Point: &point}, false
	}

	baseAddr, ok := c.baseAddresses[tech.Company()]
	if !ok {
		c.logger.WarnContext(ctx, "No base address configured for company",
			"company", tech.Company(), "technician", tech.ID())
		return Endpoint{}, true
	}

	point, err := c.resolver.Resolve(ctx, buf, baseAddr)
	if err != nil {
		// Leave coordinates to the estimator's own fallback.
		return Endpoint{Address: baseAddr}, false
	}

	location, err := technician.NewBaseLocation(baseAddr, point)
	if err == nil {
		if setErr := tech.SetBaseLocation(location); setErr != nil {
			c.logger.WarnContext(ctx, "Could not cache base location",
				"technician", tech.ID(), "error", setErr)
		}
	}

	return Endpoint{Address: baseAddr, Point: &point}, false
}
