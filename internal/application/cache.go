package application

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mcravey/makemefly/internal/domain"
	"github.com/mcravey/makemefly/internal/ports"
)

// Flight prices don't move fast enough to justify re-spending quota on the
// same batch within half an hour.
const cacheTTL = 30 * time.Minute

type fixedCacheEntry struct {
	expires time.Time
	results map[domain.Cabin][]domain.Itinerary
}

type flexibleCacheEntry struct {
	expires time.Time
	results map[domain.Cabin]map[string]domain.FlexibleOffer
}

// resultCache memoizes whole batch results. Admission against the client
// ledger still happens on every request; only the upstream calls are saved.
type resultCache struct {
	mu       sync.Mutex
	clock    ports.Clock
	fixed    map[string]fixedCacheEntry
	flexible map[string]flexibleCacheEntry
}

func newResultCache(clock ports.Clock) *resultCache {
	return &resultCache{
		clock:    clock,
		fixed:    map[string]fixedCacheEntry{},
		flexible: map[string]flexibleCacheEntry{},
	}
}

func (c *resultCache) getFixed(key string) (map[domain.Cabin][]domain.Itinerary, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.fixed[key]
	if !ok || c.clock.Now().After(entry.expires) {
		delete(c.fixed, key)
		return nil, false
	}

	return entry.results, true
}

func (c *resultCache) putFixed(key string, results map[domain.Cabin][]domain.Itinerary) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.fixed[key] = fixedCacheEntry{expires: c.clock.Now().Add(cacheTTL), results: results}
}

func (c *resultCache) getFlexible(key string) (map[domain.Cabin]map[string]domain.FlexibleOffer, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.flexible[key]
	if !ok || c.clock.Now().After(entry.expires) {
		delete(c.flexible, key)
		return nil, false
	}

	return entry.results, true
}

func (c *resultCache) putFlexible(key string, results map[domain.Cabin]map[string]domain.FlexibleOffer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.flexible[key] = flexibleCacheEntry{expires: c.clock.Now().Add(cacheTTL), results: results}
}

func fixedCacheKey(req SearchRequest) string {
	return strings.Join([]string{
		"fixed",
		req.Origin,
		req.DepartureDate,
		req.ReturnDate,
		joinCabins(req.Cabins),
		strings.Join(req.Destinations, ","),
		req.Currency,
		fmt.Sprintf("%d|%d", req.Adults, req.MaxResults),
		fmt.Sprintf("%t|%d", req.NonStop, req.MaxPrice),
	}, "/")
}

func flexibleCacheKey(req FlexibleRequest) string {
	return strings.Join([]string{
		"flexible",
		req.Origin,
		strings.Join(req.SampleDates, ","),
		fmt.Sprintf("%d", req.TripLengthDays),
		joinCabins(req.Cabins),
		strings.Join(req.Destinations, ","),
		req.Currency,
		fmt.Sprintf("%t|%d", req.NonStop, req.MaxPrice),
	}, "/")
}

func joinCabins(cabins []domain.Cabin) string {
	parts := make([]string, 0, len(cabins))
	for _, cabin := range cabins {
		parts = append(parts, string(cabin))
	}

	return strings.Join(parts, ",")
}
