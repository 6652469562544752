// Package here implements the geocoding and routing provider ports against
// HERE-style HTTP APIs. Both adapters take their base URL explicitly so tests
// can point them at a local server.
package here

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

// requestTimeout bounds every provider call so a slow upstream degrades the
// estimate instead of the request.
const requestTimeout = 5 * time.Second

// Geocoder implements ports.GeocodingProvider against the geocode endpoint.
type Geocoder struct {
	baseURL     string
	credentials ports.CredentialStore
	client      *http.Client
}

// NewGeocoder creates a geocoder for the given endpoint.
func NewGeocoder(baseURL string, credentials ports.CredentialStore) *Geocoder {
	return &Geocoder{
		baseURL:     baseURL,
		credentials: credentials,
		client:      &http.Client{Timeout: requestTimeout},
	}
}

type geocodeResponse struct {
	Items []struct {
		Position struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"position"`
	} `json:"items"`
}

// Geocode resolves a free-text query to coordinates. An empty result set is
// reported as ports.ErrNoResults; transport, status and decoding failures
// are returned as-is.
func (g *Geocoder) Geocode(ctx context.Context, query string) (kernel.GeoPoint, error) {
	apiKey, err := g.credentials.APIKey(ctx)
	if err != nil {
		return kernel.GeoPoint{}, err
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("apiKey", apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		g.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return kernel.GeoPoint{}, err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return kernel.GeoPoint{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return kernel.GeoPoint{}, fmt.Errorf("geocode request failed with status %d", resp.StatusCode)
	}

	var body geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return kernel.GeoPoint{}, err
	}

	if len(body.Items) == 0 {
		return kernel.GeoPoint{}, ports.ErrNoResults
	}

	return kernel.NewGeoPoint(body.Items[0].Position.Lat, body.Items[0].Position.Lng)
}
