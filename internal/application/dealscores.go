package application

import (
	"context"
	"sync"

	"github.com/mcravey/makemefly/internal/domain"
)

// DealScores fetches quartile price thresholds for several destinations in
// parallel. Scores are best-effort: any failure, including an exhausted call
// budget, yields a nil entry for that destination and the offer is simply
// labelled "N/A".
func (o *Orchestrator) DealScores(ctx context.Context, origin string, destinations []string, departureDate string) map[string]*domain.PriceQuartiles {
	type scoreResult struct {
		destination string
		quartiles   *domain.PriceQuartiles
	}

	jobs := make(chan string, len(destinations))
	for _, dest := range destinations {
		jobs <- dest
	}
	close(jobs)

	results := make(chan scoreResult, len(destinations))
	var wg sync.WaitGroup
	for i := 0; i < maxWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for dest := range jobs {
				if err := o.reserveCall(ctx); err != nil {
					results <- scoreResult{destination: dest}
					continue
				}

				quartiles, err := o.provider.PriceMetrics(ctx, origin, dest, departureDate)
				if err != nil {
					results <- scoreResult{destination: dest}
					continue
				}
				results <- scoreResult{destination: dest, quartiles: quartiles}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	scores := make(map[string]*domain.PriceQuartiles, len(destinations))
	for result := range results {
		scores[result.destination] = result.quartiles
	}

	return scores
}
