package services

import (
	"context"
	"log/slog"
	"math"

	"dispatch/internal/core/domain/model/address"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

const (
	// roadNetworkMultiplier inflates great-circle distance to approximate
	// non-direct road routing.
	roadNetworkMultiplier = 1.4
	// averageSpeedKmh is the assumed average driving speed (30 mph).
	averageSpeedKmh = 48.28
	// defaultTravelMinutes is returned when neither endpoint can be
	// resolved to coordinates.
	defaultTravelMinutes = 30
)

// Endpoint is one side of a travel leg: a free-text address plus, when
// already known, its coordinates. A nil Point means the estimator resolves
// the address on demand.
type Endpoint struct {
	Address string
	Point   *kernel.GeoPoint
}

// TravelEstimator estimates driving time between two endpoints in whole
// minutes.
//
// The live routing provider is preferred; any failure there (missing
// credential, non-200 response, malformed payload, transport error) falls
// through silently to a geometric estimate based on haversine distance
// inflated by a road-network factor at an average speed. The estimator never
// fails: at worst it returns a fixed default.
type TravelEstimator struct {
	resolver    *GeocodeResolver
	routing     ports.RoutingProvider
	credentials ports.CredentialStore
	logger      *slog.Logger
}

// NewTravelEstimator creates an estimator over a routing provider with a
// geocode resolver for endpoints whose coordinates are unknown.
func NewTravelEstimator(
	resolver *GeocodeResolver,
	routing ports.RoutingProvider,
	credentials ports.CredentialStore,
	logger *slog.Logger,
) *TravelEstimator {
	return &TravelEstimator{
		resolver:    resolver,
		routing:     routing,
		credentials: credentials,
		logger:      logger.With("component", "travel_estimator"),
	}
}

// Estimate returns the travel time from origin to dest in minutes, rounded
// up to the next whole minute. It always returns a usable value and never
// propagates provider failures.
func (e *TravelEstimator) Estimate(
	ctx context.Context,
	buf *address.MetricBuffer,
	origin Endpoint,
	dest Endpoint,
) int {
	originPoint := origin.Point
	if originPoint == nil {
		point, err := e.resolver.Resolve(ctx, buf, origin.Address)
		if err != nil {
			e.logger.WarnContext(ctx, "Could not geocode origin, using fallback estimate",
				"address", origin.Address)
			return e.fallback(ctx, buf, origin, dest, nil, dest.Point)
		}
		originPoint = &point
	}

	destPoint := dest.Point
	if destPoint == nil {
		point, err := e.resolver.Resolve(ctx, buf, dest.Address)
		if err != nil {
			e.logger.WarnContext(ctx, "Could not geocode destination, using fallback estimate",
				"address", dest.Address)
			return e.fallback(ctx, buf, origin, dest, originPoint, nil)
		}
		destPoint = &point
	}

	if _, err := e.credentials.APIKey(ctx); err == nil {
		duration, routeErr := e.routing.TravelTime(ctx, *originPoint, *destPoint)
		if routeErr == nil {
			return int(math.Ceil(duration.Minutes()))
		}
		e.logger.WarnContext(ctx, "Routing provider failed, using fallback estimate",
			"error", routeErr)
	}

	return e.fallback(ctx, buf, origin, dest, originPoint, destPoint)
}

// fallback computes the geometric estimate. Endpoints still missing
// coordinates get one more resolution attempt; if either remains unknown the
// fixed default is returned.
func (e *TravelEstimator) fallback(
	ctx context.Context,
	buf *address.MetricBuffer,
	origin Endpoint,
	dest Endpoint,
	originPoint *kernel.GeoPoint,
	destPoint *kernel.GeoPoint,
) int {
	if originPoint == nil {
		point, err := e.resolver.Resolve(ctx, buf, origin.Address)
		if err != nil {
			return defaultTravelMinutes
		}
		originPoint = &point
	}

	if destPoint == nil {
		point, err := e.resolver.Resolve(ctx, buf, dest.Address)
		if err != nil {
			return defaultTravelMinutes
		}
		destPoint = &point
	}

	roadKm := originPoint.DistanceKm(*destPoint) * roadNetworkMultiplier
	minutes := roadKm / averageSpeedKmh * 60

	return int(math.Ceil(minutes))
}
