package ports

import (
	"context"

	"github.com/mcravey/makemefly/internal/domain"
)

// FlightProvider is the upstream flight-search capability. Implementations
// translate their wire payloads into domain types and report failures as
// *domain.ProviderError so the classifier can partition them.
type FlightProvider interface {
	// Search runs one fully-specified flight-offers query.
	Search(ctx context.Context, query domain.SearchQuery) ([]domain.Itinerary, error)
	// DirectDestinations lists airports reachable nonstop from origin.
	DirectDestinations(ctx context.Context, origin string) ([]string, error)
	// FlightDestinations is the inspiration-style destination discovery.
	FlightDestinations(ctx context.Context, origin, departureDate string, maxPrice int) ([]string, error)
	// AirlineNames resolves carrier codes to display names in one call.
	AirlineNames(ctx context.Context, codes []string) (map[string]string, error)
	// PriceMetrics fetches quartile price thresholds for a route and date.
	PriceMetrics(ctx context.Context, origin, destination, departureDate string) (*domain.PriceQuartiles, error)
}
