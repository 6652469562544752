package here

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

// Router implements ports.RoutingProvider against the routing endpoint.
type Router struct {
	baseURL     string
	credentials ports.CredentialStore
	client      *http.Client
}

// NewRouter creates a router for the given endpoint.
func NewRouter(baseURL string, credentials ports.CredentialStore) *Router {
	return &Router{
		baseURL:     baseURL,
		credentials: credentials,
		client:      &http.Client{Timeout: requestTimeout},
	}
}

type routeResponse struct {
	Routes []struct {
		Sections []struct {
			Summary struct {
				Duration int `json:"duration"`
			} `json:"summary"`
		} `json:"sections"`
	} `json:"routes"`
}

// TravelTime returns the driving duration between two points. Responses
// without a route are an error: the caller falls back to its geometric
// estimate.
func (r *Router) TravelTime(
	ctx context.Context, origin kernel.GeoPoint, dest kernel.GeoPoint,
) (time.Duration, error) {
	apiKey, err := r.credentials.APIKey(ctx)
	if err != nil {
		return 0, err
	}

	params := url.Values{}
	params.Set("transportMode", "car")
	params.Set("origin", fmt.Sprintf("%f,%f", origin.Lat(), origin.Lng()))
	params.Set("destination", fmt.Sprintf("%f,%f", dest.Lat(), dest.Lng()))
	params.Set("return", "summary")
	params.Set("apiKey", apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		r.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return 0, err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("route request failed with status %d", resp.StatusCode)
	}

	var body routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, err
	}

	if len(body.Routes) == 0 || len(body.Routes[0].Sections) == 0 {
		return 0, errors.New("route response contains no sections")
	}

	return time.Duration(body.Routes[0].Sections[0].Summary.Duration) * time.Second, nil
}
