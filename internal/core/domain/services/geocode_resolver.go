package services

import (
	"context"
	"errors"
	"log/slog"

	"dispatch/internal/core/domain/model/address"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

// ErrAddressNotResolved is returned when no address variant produced a
// usable position, or when resolution could not start at all (empty address,
// no credential). Callers treat it as "coordinates unknown", never as a
// fatal dispatch error.
var ErrAddressNotResolved = errors.New("address could not be resolved")

// GeocodeResolver resolves free-text addresses to coordinates with fuzzy
// variant fallback.
//
// Resolution walks the fixed variant order (original text first, then
// progressively simplified rewrites) and accepts the first variant for which
// the provider returns a valid position. Every attempted variant, successful
// or not, is recorded in the request's metric buffer, which is how the
// match rate of each rewrite is tracked over time.
type GeocodeResolver struct {
	provider    ports.GeocodingProvider
	credentials ports.CredentialStore
	logger      *slog.Logger
}

// NewGeocodeResolver creates a resolver over a geocoding provider.
// The credential store gates resolution: without an API key no variant is
// attempted.
func NewGeocodeResolver(
	provider ports.GeocodingProvider,
	credentials ports.CredentialStore,
	logger *slog.Logger,
) *GeocodeResolver {
	return &GeocodeResolver{
		provider:    provider,
		credentials: credentials,
		logger:      logger.With("component", "geocode_resolver"),
	}
}

// Resolve converts an address to coordinates.
//
// It fails fast with ErrAddressNotResolved when the address is empty or no
// API credential is available; otherwise it tries each non-empty variant in
// order, one provider call per variant, returning the first valid position.
// Provider errors on a single variant never abort the remaining variants.
func (r *GeocodeResolver) Resolve(
	ctx context.Context,
	buf *address.MetricBuffer,
	addr string,
) (kernel.GeoPoint, error) {
	if addr == "" {
		return kernel.GeoPoint{}, ErrAddressNotResolved
	}

	if _, err := r.credentials.APIKey(ctx); err != nil {
		r.logger.ErrorContext(ctx, "No API credential available for geocoding", "error", err)
		return kernel.GeoPoint{}, ErrAddressNotResolved
	}

	for _, variant := range address.Variants(addr) {
		if variant.Value == "" {
			continue
		}

		point, err := r.provider.Geocode(ctx, variant.Value)
		if err != nil {
			buf.Record(variant.Kind, false)
			if !errors.Is(err, ports.ErrNoResults) {
				r.logger.WarnContext(ctx, "Geocoding attempt failed",
					"variant", variant.Kind, "error", err)
			}
			continue
		}

		buf.Record(variant.Kind, true)
		return point, nil
	}

	r.logger.WarnContext(ctx, "All geocoding variants failed", "address", addr)
	return kernel.GeoPoint{}, ErrAddressNotResolved
}
