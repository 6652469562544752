package technician

import (
	"errors"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Domain errors for technician operations.
var (
	// ErrIDIsRequired is returned when attempting to create a technician
	// without an identifier.
	ErrIDIsRequired = errs.NewValueIsRequiredError("id")
	// ErrCompanyIsRequired is returned when attempting to create a technician
	// without a company.
	ErrCompanyIsRequired = errs.NewValueIsRequiredError("company")
	// ErrTechnicianIsNotConstructed is returned when using an improperly
	// initialized Technician.
	ErrTechnicianIsNotConstructed = errors.New(
		"Technician must be created via NewTechnician constructor")
	// ErrBaseLocationAlreadySet is returned when attempting to overwrite a
	// previously resolved base location.
	ErrBaseLocationAlreadySet = errors.New("base location is already set")
)

// Technician represents a field technician in the dispatch system.
// It is an aggregate root that manages the technician's identity, ordered
// job queue, and lazily cached base location.
//
// Key responsibilities:
//   - Managing technician identity (externally assigned ID, company)
//   - Computing the outstanding workload from the job queue
//   - Exposing the effective origin for the next leg (last queued job)
//   - Caching the resolved base location with write-once semantics
//
// Business rules:
//   - ID and company must be non-empty
//   - Workload counts every job's on-site estimate but only the travel time
//     of jobs the technician has not reached yet
//   - Once a base location is set it is reused and never re-resolved
type Technician struct {
	// id is the externally assigned technician identifier
	id string
	// company is the company whose job table this technician belongs to
	company string
	// jobQueue is the ordered list of assignments not yet completed
	jobQueue []QueuedJob
	// baseLocation is the resolved idle location, nil until first resolved
	baseLocation *BaseLocation
	// guard ensures the technician was properly constructed
	guard guard.ConstructorGuard
}

// NewTechnician creates a technician with an empty job queue and no cached
// base location.
//
// Parameters:
//   - id: externally assigned identifier (must be non-empty)
//   - company: owning company name (must be non-empty)
func NewTechnician(id string, company string) (*Technician, error) {
	t := &Technician{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(t.setID(id), t.setCompany(company)); err != nil {
		return nil, err
	}

	return t, nil
}

// RestoreTechnician reconstructs a Technician aggregate from persistent
// storage, including its queued jobs and any previously resolved base
// location. The restored aggregate behaves identically to one built through
// normal domain operations.
func RestoreTechnician(
	id string,
	company string,
	jobQueue []QueuedJob,
	baseLocation *BaseLocation,
) (*Technician, error) {
	t, err := NewTechnician(id, company)
	if err != nil {
		return nil, err
	}

	for _, job := range jobQueue {
		if err := job.Validate(); err != nil {
			return nil, err
		}
	}
	t.jobQueue = jobQueue

	if baseLocation != nil {
		if err := baseLocation.Validate(); err != nil {
			return nil, err
		}
		t.baseLocation = baseLocation
	}

	return t, nil
}

func (t *Technician) setID(id string) error {
	if id == "" {
		return ErrIDIsRequired
	}
	t.id = id
	return nil
}

func (t *Technician) setCompany(company string) error {
	if company == "" {
		return ErrCompanyIsRequired
	}
	t.company = company
	return nil
}

// ID returns the externally assigned technician identifier.
func (t *Technician) ID() string {
	return t.id
}

// Company returns the owning company name.
func (t *Technician) Company() string {
	return t.company
}

// JobQueue returns the ordered queue of outstanding assignments.
func (t *Technician) JobQueue() []QueuedJob {
	return t.jobQueue
}

// HasJobs reports whether the queue is non-empty.
func (t *Technician) HasJobs() bool {
	return len(t.jobQueue) > 0
}

// LastJob returns the final queue entry, whose address is the origin for
// the technician's next leg. The second return value is false for an empty
// queue.
func (t *Technician) LastJob() (QueuedJob, bool) {
	if len(t.jobQueue) == 0 {
		return QueuedJob{}, false
	}
	return t.jobQueue[len(t.jobQueue)-1], true
}

// EnqueueJob appends an assignment to the queue.
func (t *Technician) EnqueueJob(job QueuedJob) error {
	if err := job.Validate(); err != nil {
		return err
	}
	t.jobQueue = append(t.jobQueue, job)
	return nil
}

// WorkloadMinutes returns the total minutes until the technician finishes
// the current queue: the on-site estimate of every job plus the travel time
// of jobs not yet reached. Travel to jobs already marked arrived is sunk
// cost and excluded.
func (t *Technician) WorkloadMinutes() float64 {
	var workload float64
	for _, job := range t.jobQueue {
		workload += job.EstimatedMinutes()
		if !job.Arrived() {
			workload += job.TravelMinutes()
		}
	}
	return workload
}

// BaseLocation returns the cached idle location, or nil when it has not
// been resolved yet.
func (t *Technician) BaseLocation() *BaseLocation {
	return t.baseLocation
}

// SetBaseLocation caches the resolved base location. The write is
// once-only: a technician whose base location is already set keeps it.
func (t *Technician) SetBaseLocation(location BaseLocation) error {
	if err := location.Validate(); err != nil {
		return err
	}
	if t.baseLocation != nil {
		return ErrBaseLocationAlreadySet
	}
	t.baseLocation = &location
	return nil
}

// Validate ensures the technician was created through the constructor and
// still satisfies its invariants.
func (t *Technician) Validate() error {
	if t == nil {
		return ErrTechnicianIsNotConstructed
	}
	if err := t.guard.Validate(ErrTechnicianIsNotConstructed); err != nil {
		return err
	}
	if t.id == "" {
		return ErrIDIsRequired
	}
	if t.company == "" {
		return ErrCompanyIsRequired
	}
	return nil
}
