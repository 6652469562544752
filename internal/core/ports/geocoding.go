package ports

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// ErrNoResults is returned by a GeocodingProvider when the query produced no
// usable position. It marks an expected degradation, not a failure: callers
// fall through to the next address variant.
var ErrNoResults = errors.New("no geocoding results")

// GeocodingProvider resolves one free-text query to coordinates with a
// single provider call. Variant fallback and metric recording live above
// this interface.
type GeocodingProvider interface {
	Geocode(ctx context.Context, query string) (kernel.GeoPoint, error)
}

// RoutingProvider estimates driving time between two coordinate pairs using
// a live routing service.
type RoutingProvider interface {
	TravelTime(ctx context.Context, origin kernel.GeoPoint, dest kernel.GeoPoint) (time.Duration, error)
}

// CredentialStore retrieves the API credential shared by the geocoding and
// routing providers. Implementations cache the credential for the process
// lifetime after the first successful fetch.
type CredentialStore interface {
	APIKey(ctx context.Context) (string, error)
}
