package application

import (
	"context"

	"github.com/mcravey/makemefly/internal/domain"
)

// AirlineNames resolves carrier codes to cleaned display names, fetching all
// unknown codes in a single metered provider call. Failed lookups are cached
// as code→code so they are not retried within the process.
func (o *Orchestrator) AirlineNames(ctx context.Context, codes []string) map[string]string {
	o.airlineMu.Lock()
	defer o.airlineMu.Unlock()

	var toFetch []string
	for _, code := range codes {
		if _, ok := o.airlineNames[code]; !ok {
			toFetch = append(toFetch, code)
		}
	}

	if len(toFetch) > 0 {
		if err := o.reserveCall(ctx); err == nil {
			if names, err := o.provider.AirlineNames(ctx, toFetch); err == nil {
				for code, name := range names {
					o.airlineNames[code] = domain.CleanAirlineName(name)
				}
			}
		}

		for _, code := range toFetch {
			if _, ok := o.airlineNames[code]; !ok {
				o.airlineNames[code] = code
			}
		}
	}

	resolved := make(map[string]string, len(codes))
	for _, code := range codes {
		if name, ok := o.airlineNames[code]; ok {
			resolved[code] = name
		} else {
			resolved[code] = code
		}
	}

	return resolved
}
