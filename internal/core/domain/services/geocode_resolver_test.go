package services_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"dispatch/internal/core/domain/model/address"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testAddress = "123 Main Street Apt 4B, Springfield, VA 22150"

type MockGeocodingProvider struct{ mock.Mock }

func (m *MockGeocodingProvider) Geocode(ctx context.Context, query string) (kernel.GeoPoint, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(kernel.GeoPoint), args.Error(1)
}

type MockCredentialStore struct{ mock.Mock }

func (m *MockCredentialStore) APIKey(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validPoint(t *testing.T) kernel.GeoPoint {
	t.Helper()
	point, err := kernel.NewGeoPoint(38.7893, -77.1872)
	require.NoError(t, err)
	return point
}

func TestGeocodeResolver_Resolve_EmptyAddress(t *testing.T) {
	provider := new(MockGeocodingProvider)
	credentials := new(MockCredentialStore)
	resolver := services.NewGeocodeResolver(provider, credentials, discardLogger())
	buf := address.NewMetricBuffer()

	_, err := resolver.Resolve(t.Context(), buf, "")

	require.ErrorIs(t, err, services.ErrAddressNotResolved)
	assert.Zero(t, buf.Len())
	provider.AssertNotCalled(t, "Geocode", mock.Anything, mock.Anything)
}

func TestGeocodeResolver_Resolve_NoCredential(t *testing.T) {
	provider := new(MockGeocodingProvider)
	credentials := new(MockCredentialStore)
	credentials.On("APIKey", mock.Anything).Return("", errors.New("parameter not found"))

	resolver := services.NewGeocodeResolver(provider, credentials, discardLogger())
	buf := address.NewMetricBuffer()

	_, err := resolver.Resolve(t.Context(), buf, testAddress)

	require.ErrorIs(t, err, services.ErrAddressNotResolved)
	assert.Zero(t, buf.Len())
	provider.AssertNotCalled(t, "Geocode", mock.Anything, mock.Anything)
}

func TestGeocodeResolver_Resolve_FirstVariantWins(t *testing.T) {
	provider := new(MockGeocodingProvider)
	credentials := new(MockCredentialStore)
	credentials.On("APIKey", mock.Anything).Return("key", nil)

	point := validPoint(t)
	provider.On("Geocode", mock.Anything, testAddress).Return(point, nil).Once()

	resolver := services.NewGeocodeResolver(provider, credentials, discardLogger())
	buf := address.NewMetricBuffer()

	got, err := resolver.Resolve(t.Context(), buf, testAddress)

	require.NoError(t, err)
	assert.True(t, got.IsEqual(point))

	events := buf.Drain()
	require.Len(t, events, 1)
	assert.Equal(t, address.VariantOriginal, events[0].Variant)
	assert.True(t, events[0].Success)
	provider.AssertExpectations(t)
}

func TestGeocodeResolver_Resolve_FallsThroughToNoUnit(t *testing.T) {
	provider := new(MockGeocodingProvider)
	credentials := new(MockCredentialStore)
	credentials.On("APIKey", mock.Anything).Return("key", nil)

	point := validPoint(t)
	noUnit := address.RemoveUnit(testAddress)

	provider.On("Geocode", mock.Anything, testAddress).
		Return(kernel.GeoPoint{}, ports.ErrNoResults).Once()
	provider.On("Geocode", mock.Anything, address.Normalize(testAddress)).
		Return(kernel.GeoPoint{}, ports.ErrNoResults).Once()
	provider.On("Geocode", mock.Anything, noUnit).Return(point, nil).Once()

	resolver := services.NewGeocodeResolver(provider, credentials, discardLogger())
	buf := address.NewMetricBuffer()

	got, err := resolver.Resolve(t.Context(), buf, testAddress)

	require.NoError(t, err)
	assert.True(t, got.IsEqual(point))

	// Exactly three attempts recorded: two failures plus the success.
	events := buf.Drain()
	require.Len(t, events, 3)
	assert.Equal(t, address.VariantOriginal, events[0].Variant)
	assert.False(t, events[0].Success)
	assert.Equal(t, address.VariantNormalized, events[1].Variant)
	assert.False(t, events[1].Success)
	assert.Equal(t, address.VariantNoUnit, events[2].Variant)
	assert.True(t, events[2].Success)
	provider.AssertExpectations(t)
}

func TestGeocodeResolver_Resolve_AllVariantsFail(t *testing.T) {
	provider := new(MockGeocodingProvider)
	credentials := new(MockCredentialStore)
	credentials.On("APIKey", mock.Anything).Return("key", nil)

	provider.On("Geocode", mock.Anything, mock.Anything).
		Return(kernel.GeoPoint{}, ports.ErrNoResults)

	resolver := services.NewGeocodeResolver(provider, credentials, discardLogger())
	buf := address.NewMetricBuffer()

	_, err := resolver.Resolve(t.Context(), buf, testAddress)

	require.ErrorIs(t, err, services.ErrAddressNotResolved)
	assert.Equal(t, 6, buf.Len())
}

func TestGeocodeResolver_Resolve_ProviderErrorDoesNotAbort(t *testing.T) {
	provider := new(MockGeocodingProvider)
	credentials := new(MockCredentialStore)
	credentials.On("APIKey", mock.Anything).Return("key", nil)

	point := validPoint(t)
	// A transport error on the first variant is just that variant's failure.
	provider.On("Geocode", mock.Anything, testAddress).
		Return(kernel.GeoPoint{}, errors.New("connection reset")).Once()
	provider.On("Geocode", mock.Anything, address.Normalize(testAddress)).
		Return(point, nil).Once()

	resolver := services.NewGeocodeResolver(provider, credentials, discardLogger())
	buf := address.NewMetricBuffer()

	got, err := resolver.Resolve(t.Context(), buf, testAddress)

	require.NoError(t, err)
	assert.True(t, got.IsEqual(point))
	assert.Equal(t, 2, buf.Len())
	provider.AssertExpectations(t)
}
