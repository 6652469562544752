// Package availabilitycache stores the latest dispatch decision per company
// in redis with a short expiry. The entry is advisory: it lets external
// consumers read "who is next and how far out" without re-running a dispatch.
package availabilitycache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

// entryTTL keeps entries fresh enough to act on: a technician's queue can
// change at any time, so a stale decision is worse than none.
const entryTTL = 5 * time.Minute

const keyPrefix = "next_available:"

// RedisAvailabilityCache implements AvailabilityCache over a redis client.
type RedisAvailabilityCache struct {
	client *redis.Client
}

// NewRedisAvailabilityCache creates a cache over the given client.
func NewRedisAvailabilityCache(client *redis.Client) *RedisAvailabilityCache {
	return &RedisAvailabilityCache{client: client}
}

// entryDTO is the JSON wire form of an availability entry.
type entryDTO struct {
	Company       string   `json:"company"`
	TechnicianID  *string  `json:"technician_id"`
	TravelMinutes int      `json:"travel_minutes"`
	JobAddress    string   `json:"job_address"`
	Lat           *float64 `json:"lat,omitempty"`
	Lng           *float64 `json:"lng,omitempty"`
}

// Put writes the entry under the company key, replacing any previous value
// and resetting the expiry.
func (c *RedisAvailabilityCache) Put(ctx context.Context, entry ports.AvailabilityEntry) error {
	if entry.Company == "" {
		return errs.NewValueIsRequiredError("company")
	}

	dto := entryDTO{
		Company:       entry.Company,
		TechnicianID:  entry.TechnicianID,
		TravelMinutes: entry.TravelMinutes,
		JobAddress:    entry.JobAddress,
	}
	if entry.Point != nil {
		lat, lng := entry.Point.Lat(), entry.Point.Lng()
		dto.Lat, dto.Lng = &lat, &lng
	}

	payload, err := json.Marshal(dto)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, keyPrefix+entry.Company, payload, entryTTL).Err()
}

// Get returns the current entry for a company. A missing or expired key is
// reported through the boolean, not as an error.
func (c *RedisAvailabilityCache) Get(
	ctx context.Context, company string,
) (ports.AvailabilityEntry, bool, error) {
	if company == "" {
		return ports.AvailabilityEntry{}, false, errs.NewValueIsRequiredError("company")
	}

	payload, err := c.client.Get(ctx, keyPrefix+company).Bytes()
	if errors.Is(err, redis.Nil) {
		return ports.AvailabilityEntry{}, false, nil
	}
	if err != nil {
		return ports.AvailabilityEntry{}, false, err
	}

	var dto entryDTO
	if err := json.Unmarshal(payload, &dto); err != nil {
		return ports.AvailabilityEntry{}, false, err
	}

	entry := ports.AvailabilityEntry{
		Company:       dto.Company,
		TechnicianID:  dto.TechnicianID,
		TravelMinutes: dto.TravelMinutes,
		JobAddress:    dto.JobAddress,
	}
	if dto.Lat != nil && dto.Lng != nil {
		point, err := kernel.NewGeoPoint(*dto.Lat, *dto.Lng)
		if err != nil {
			return ports.AvailabilityEntry{}, false, err
		}
		entry.Point = &point
	}

	return entry, true, nil
}
