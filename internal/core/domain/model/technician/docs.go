// Package technician provides domain entities and business logic for field
// technician management in the dispatch system. It implements the Technician
// aggregate root with its queued jobs and lazily cached base location.
//
// The package includes:
//   - Technician: The aggregate root holding identity, the ordered job
//     queue, and the optional cached base location used when idle
//   - QueuedJob: A queued assignment with on-site and travel estimates
//   - BaseLocation: The resolved idle/home location of a technician
//
// Key business rules:
//   - Technicians must have a non-empty identifier and company
//   - Workload sums on-site estimates plus travel time not yet incurred
//     (jobs already marked arrived contribute no travel)
//   - The base location is resolved at most once and reused afterwards
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are
// enforced.
package technician
