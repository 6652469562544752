// Package services provides domain services that orchestrate business
// operations across multiple domain entities in the dispatch system. It
// implements complex workflows that don't naturally belong to a single
// aggregate root.
//
// The package includes:
//   - GeocodeResolver: fuzzy address-to-coordinate resolution that walks the
//     fixed variant order until the provider returns a usable position
//   - TravelEstimator: travel-time estimation preferring the live routing
//     provider and degrading to a geometric (haversine) model
//   - AvailabilityCalculator: projection of a technician's earliest start
//     time at a target address from their queue and effective origin
//
// Provider failures are expected operating conditions here: every service
// absorbs upstream degradation (variant fallback, geometric estimate,
// exclusion via an infinite ETA) instead of surfacing it to callers.
package services
