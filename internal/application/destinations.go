package application

import (
	"context"

	"github.com/mcravey/makemefly/internal/domain"
)

// DiscoverDestinations finds airports reachable from origin. It tries the
// inspiration-style search first and falls back to the direct-destinations
// lookup when that fails. Both attempts are metered.
func (o *Orchestrator) DiscoverDestinations(ctx context.Context, origin, departureDate string, maxPrice int) ([]string, error) {
	if err := o.reserveCall(ctx); err != nil {
		return nil, err
	}

	codes, err := o.provider.FlightDestinations(ctx, origin, departureDate, maxPrice)
	if err == nil {
		return codes, nil
	}

	// The inspiration search is unavailable in some provider environments;
	// fall back to the direct-destinations lookup.
	return o.DirectDestinations(ctx, origin)
}

// DirectDestinations lists airports with nonstop service from origin.
func (o *Orchestrator) DirectDestinations(ctx context.Context, origin string) ([]string, error) {
	if err := o.reserveCall(ctx); err != nil {
		return nil, err
	}

	codes, err := o.provider.DirectDestinations(ctx, origin)
	if err != nil {
		return nil, domain.Classify(err)
	}

	return codes, nil
}

// reserveCall spends one call from the usage ledger, raising the fatal cap
// signal when the budget is gone.
func (o *Orchestrator) reserveCall(ctx context.Context) error {
	ok, err := o.usage.TryIncrement(ctx, 1)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrCapExceeded
	}

	return nil
}
