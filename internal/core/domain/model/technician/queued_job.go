package technician

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrQueuedJobIsNotConstructed is returned when using an improperly
// initialized QueuedJob.
var ErrQueuedJobIsNotConstructed = errs.NewValueIsRequiredError(
	"queued job must be created via NewQueuedJob constructor")

// QueuedJob represents one assignment in a technician's queue.
// It is an immutable value object: on-site and travel estimates are fixed at
// enqueue time, and the arrived flag marks travel time already spent.
//
// The address (and, when known, the stored coordinates) of the final queue
// entry serves as the origin for the technician's next leg.
type QueuedJob struct {
	estimatedMinutes float64
	travelMinutes    float64
	arrived          bool
	address          string
	point            *kernel.GeoPoint
	guard            guard.ConstructorGuard
}

// NewQueuedJob creates a queued job.
//
// Parameters:
//   - estimatedMinutes: expected on-site duration (must not be negative)
//   - travelMinutes: expected travel time to reach the job (must not be negative)
//   - arrived: whether the technician already reached the job site
//   - addr: free-text job address (must be non-empty)
//   - point: stored coordinates for the address, nil when unknown
func NewQueuedJob(
	estimatedMinutes float64,
	travelMinutes float64,
	arrived bool,
	addr string,
	point *kernel.GeoPoint,
) (QueuedJob, error) {
	if estimatedMinutes < 0 {
		return QueuedJob{}, errs.NewValueIsInvalidError("estimatedMinutes")
	}
	if travelMinutes < 0 {
		return QueuedJob{}, errs.NewValueIsInvalidError("travelMinutes")
	}
	if addr == "" {
		return QueuedJob{}, errs.NewValueIsRequiredError("address")
	}
	if point != nil {
		if err := point.Validate(); err != nil {
			return QueuedJob{}, err
		}
	}

	return QueuedJob{
		estimatedMinutes: estimatedMinutes,
		travelMinutes:    travelMinutes,
		arrived:          arrived,
		address:          addr,
		point:            point,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// EstimatedMinutes returns the expected on-site duration.
func (j QueuedJob) EstimatedMinutes() float64 {
	return j.estimatedMinutes
}

// TravelMinutes returns the expected travel time to reach the job.
func (j QueuedJob) TravelMinutes() float64 {
	return j.travelMinutes
}

// Arrived reports whether the technician already reached the job site.
func (j QueuedJob) Arrived() bool {
	return j.arrived
}

// Address returns the free-text job address.
func (j QueuedJob) Address() string {
	return j.address
}

// Point returns the stored coordinates for the job address, or nil when the
// record carries none.
func (j QueuedJob) Point() *kernel.GeoPoint {
	return j.point
}

// Validate ensures the job was created through the constructor.
func (j QueuedJob) Validate() error {
	return j.guard.Validate(ErrQueuedJobIsNotConstructed)
}

// ErrBaseLocationIsNotConstructed is returned when using an improperly
// initialized BaseLocation.
var ErrBaseLocationIsNotConstructed = errors.New(
	"BaseLocation must be created via NewBaseLocation constructor")

// BaseLocation is a technician's resolved idle/home location: the free-text
// base address together with its geocoded coordinates.
type BaseLocation struct {
	address string
	point   kernel.GeoPoint
	guard   guard.ConstructorGuard
}

// NewBaseLocation creates a base location from an address and its resolved
// coordinates.
func NewBaseLocation(addr string, point kernel.GeoPoint) (BaseLocation, error) {
	if addr == "" {
		return BaseLocation{}, errs.NewValueIsRequiredError("address")
	}
	if err := point.Validate(); err != nil {
		return BaseLocation{}, err
	}

	return BaseLocation{
		address: addr,
		point:   point,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Address returns the free-text base address.
func (l BaseLocation) Address() string {
	return l.address
}

// Point returns the geocoded coordinates of the base address.
func (l BaseLocation) Point() kernel.GeoPoint {
	return l.point
}

// Validate ensures the location was created through the constructor.
func (l BaseLocation) Validate() error {
	return l.guard.Validate(ErrBaseLocationIsNotConstructed)
}
