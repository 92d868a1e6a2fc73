package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mcravey/makemefly/internal/domain"
	"github.com/mcravey/makemefly/internal/ports"
)

// maxWorkers bounds how many upstream searches are in flight per batch.
const maxWorkers = 8

// Progress is invoked as each job completes, in completion order.
type Progress func(cabin domain.Cabin, destination string)

// Orchestrator fans a batch of independent searches out to a bounded worker
// pool, metering every upstream call against the usage ledger and admitting
// each batch against the client ledger.
type Orchestrator struct {
	provider ports.FlightProvider
	usage    ports.UsageLedger
	clients  ports.ClientLedger
	clock    ports.Clock
	cache    *resultCache

	airlineMu    sync.Mutex
	airlineNames map[string]string
}

func NewOrchestrator(provider ports.FlightProvider, usage ports.UsageLedger, clients ports.ClientLedger, clock ports.Clock) *Orchestrator {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Orchestrator{
		provider:     provider,
		usage:        usage,
		clients:      clients,
		clock:        clock,
		cache:        newResultCache(clock),
		airlineNames: map[string]string{},
	}
}

// SearchRequest is one fixed-date batch: every (cabin, destination) pair is
// searched for the same departure/return dates.
type SearchRequest struct {
	ClientID      string
	Origin        string
	Destinations  []string
	Cabins        []domain.Cabin
	DepartureDate string
	ReturnDate    string
	Adults        int
	MaxResults    int
	Currency      string
	NonStop       bool
	MaxPrice      int
	OnProgress    Progress
}

// FlexibleRequest samples several departure dates per destination; the return
// date is always the departure date plus TripLengthDays.
type FlexibleRequest struct {
	ClientID       string
	Origin         string
	Destinations   []string
	Cabins         []domain.Cabin
	SampleDates    []string
	TripLengthDays int
	Currency       string
	NonStop        bool
	MaxPrice       int
	OnProgress     Progress
}

type searchJob struct {
	cabin         domain.Cabin
	destination   string
	departureDate string
	returnDate    string
}

type searchOutcome struct {
	job         searchJob
	itineraries []domain.Itinerary
	err         error
}

// SearchParallel runs the fixed-date batch and returns, per cabin, every
// itinerary found, sorted ascending by price. The outcome is all-or-nothing:
// a cap-exceeded signal discards any offers already collected.
func (o *Orchestrator) SearchParallel(ctx context.Context, req SearchRequest) (map[domain.Cabin][]domain.Itinerary, error) {
	if err := o.admit(ctx, req.ClientID); err != nil {
		return nil, err
	}

	key := fixedCacheKey(req)
	if cached, ok := o.cache.getFixed(key); ok {
		return cached, nil
	}

	jobs := make([]searchJob, 0, len(req.Cabins)*len(req.Destinations))
	for _, cabin := range req.Cabins {
		for _, dest := range req.Destinations {
			jobs = append(jobs, searchJob{
				cabin:         cabin,
				destination:   dest,
				departureDate: req.DepartureDate,
				returnDate:    req.ReturnDate,
			})
		}
	}

	build := func(job searchJob) domain.SearchQuery {
		return domain.SearchQuery{
			Origin:        req.Origin,
			Destination:   job.destination,
			DepartureDate: job.departureDate,
			ReturnDate:    job.returnDate,
			Cabin:         job.cabin,
			Adults:        orDefault(req.Adults, 1),
			MaxResults:    orDefault(req.MaxResults, 5),
			Currency:      req.Currency,
			NonStop:       req.NonStop,
			MaxPrice:      req.MaxPrice,
		}
	}

	results := make(map[domain.Cabin][]domain.Itinerary, len(req.Cabins))
	for _, cabin := range req.Cabins {
		results[cabin] = nil
	}

	fold := func(outcome searchOutcome) {
		if len(outcome.itineraries) == 0 {
			return
		}
		results[outcome.job.cabin] = append(results[outcome.job.cabin], outcome.itineraries...)
	}

	if err := o.collect(o.runBatch(ctx, jobs, build, req.OnProgress), fold); err != nil {
		return nil, err
	}

	for cabin := range results {
		domain.SortByPrice(results[cabin])
	}

	o.cache.putFixed(key, results)

	return results, nil
}

// SearchFlexible runs the sampled-date batch and reduces it to the cheapest
// offer per (cabin, destination), recording the spread across sampled dates.
// When two dates tie on price the earliest date wins.
func (o *Orchestrator) SearchFlexible(ctx context.Context, req FlexibleRequest) (map[domain.Cabin]map[string]domain.FlexibleOffer, error) {
	if err := o.admit(ctx, req.ClientID); err != nil {
		return nil, err
	}

	key := flexibleCacheKey(req)
	if cached, ok := o.cache.getFlexible(key); ok {
		return cached, nil
	}

	datePairs, err := flexibleDatePairs(req.SampleDates, req.TripLengthDays)
	if err != nil {
		return nil, err
	}

	jobs := make([]searchJob, 0, len(req.Cabins)*len(req.Destinations)*len(datePairs))
	for _, cabin := range req.Cabins {
		for _, dest := range req.Destinations {
			for _, pair := range datePairs {
				jobs = append(jobs, searchJob{
					cabin:         cabin,
					destination:   dest,
					departureDate: pair[0],
					returnDate:    pair[1],
				})
			}
		}
	}

	build := func(job searchJob) domain.SearchQuery {
		return domain.SearchQuery{
			Origin:        req.Origin,
			Destination:   job.destination,
			DepartureDate: job.departureDate,
			ReturnDate:    job.returnDate,
			Cabin:         job.cabin,
			Adults:        1,
			MaxResults:    3,
			Currency:      req.Currency,
			NonStop:       req.NonStop,
			MaxPrice:      req.MaxPrice,
		}
	}

	type flexBest struct {
		itinerary domain.Itinerary
		price     float64
		date      string
		maxPrice  float64
		count     int
	}
	best := map[domain.Cabin]map[string]*flexBest{}

	fold := func(outcome searchOutcome) {
		if len(outcome.itineraries) == 0 {
			return
		}

		cheapest := outcome.itineraries[0]
		for _, it := range outcome.itineraries[1:] {
			if it.Price < cheapest.Price {
				cheapest = it
			}
		}

		cabin, dest, date := outcome.job.cabin, outcome.job.destination, outcome.job.departureDate
		if best[cabin] == nil {
			best[cabin] = map[string]*flexBest{}
		}

		entry := best[cabin][dest]
		if entry == nil {
			best[cabin][dest] = &flexBest{
				itinerary: cheapest,
				price:     cheapest.Price,
				date:      date,
				maxPrice:  cheapest.Price,
				count:     1,
			}
			return
		}

		entry.count++
		if cheapest.Price > entry.maxPrice {
			entry.maxPrice = cheapest.Price
		}
		if cheapest.Price < entry.price || (cheapest.Price == entry.price && date < entry.date) {
			entry.itinerary = cheapest
			entry.price = cheapest.Price
			entry.date = date
		}
	}

	if err := o.collect(o.runBatch(ctx, jobs, build, req.OnProgress), fold); err != nil {
		return nil, err
	}

	result := make(map[domain.Cabin]map[string]domain.FlexibleOffer, len(req.Cabins))
	for _, cabin := range req.Cabins {
		result[cabin] = map[string]domain.FlexibleOffer{}
	}
	for cabin, byDest := range best {
		for dest, entry := range byDest {
			result[cabin][dest] = domain.FlexibleOffer{
				Itinerary:    entry.itinerary,
				Price:        entry.price,
				Date:         entry.date,
				MaxPrice:     entry.maxPrice,
				Savings:      entry.maxPrice - entry.price,
				DatesChecked: entry.count,
			}
		}
	}

	o.cache.putFlexible(key, result)

	return result, nil
}

// runBatch feeds the jobs to a fixed pool of workers and returns the channel
// of outcomes, closed once every started job has finished. After a worker
// observes the cap signal no new job is started, but jobs already running are
// never cancelled; they finish against the upstream and their quota stays
// spent. Results are folded by the single collecting goroutine, so the
// aggregate needs no lock.
func (o *Orchestrator) runBatch(ctx context.Context, jobs []searchJob, build func(searchJob) domain.SearchQuery, onProgress Progress) <-chan searchOutcome {
	jobsCh := make(chan searchJob, len(jobs))
	for _, job := range jobs {
		jobsCh <- job
	}
	close(jobsCh)

	outcomes := make(chan searchOutcome, len(jobs))
	var stopped atomic.Bool

	var wg sync.WaitGroup
	for i := 0; i < maxWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobsCh {
				if stopped.Load() {
					continue
				}

				outcome := o.runJob(ctx, job, build)
				if errors.Is(outcome.err, domain.ErrCapExceeded) {
					stopped.Store(true)
				}
				if onProgress != nil {
					onProgress(job.cabin, job.destination)
				}
				outcomes <- outcome
			}
		}()
	}

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	return outcomes
}

func (o *Orchestrator) runJob(ctx context.Context, job searchJob, build func(searchJob) domain.SearchQuery) searchOutcome {
	ok, err := o.usage.TryIncrement(ctx, 1)
	if err != nil {
		return searchOutcome{job: job, err: fmt.Errorf("usage ledger: %w", err)}
	}
	if !ok {
		return searchOutcome{job: job, err: domain.ErrCapExceeded}
	}

	itineraries, err := o.provider.Search(ctx, build(job))
	return searchOutcome{job: job, itineraries: itineraries, err: err}
}

// collect drains every outcome, folding successes and partitioning failures:
// recoverable ones drop their job's contribution, a fatal classification
// aborts the batch once all outcomes are in.
func (o *Orchestrator) collect(outcomes <-chan searchOutcome, fold func(searchOutcome)) error {
	var fatal *domain.SearchError
	var infra error

	for outcome := range outcomes {
		if outcome.err == nil {
			fold(outcome)
			continue
		}

		classified := domain.Classify(outcome.err)
		if !classified.Recoverable {
			fatal = classified
			continue
		}

		var providerErr *domain.ProviderError
		var searchErr *domain.SearchError
		if !errors.As(outcome.err, &providerErr) && !errors.As(outcome.err, &searchErr) {
			// Not an upstream failure: ledger or context trouble. Fatal, but
			// a cap signal still takes precedence.
			if infra == nil {
				infra = outcome.err
			}
			continue
		}
	}

	if fatal != nil {
		return fatal
	}
	if infra != nil {
		return infra
	}

	return nil
}

func (o *Orchestrator) admit(ctx context.Context, clientID string) error {
	if clientID == "" {
		return nil
	}

	ok, err := o.clients.Admit(ctx, clientID)
	if err != nil {
		return fmt.Errorf("client ledger: %w", err)
	}
	if !ok {
		return domain.ErrClientLimitReached
	}

	return nil
}

func flexibleDatePairs(sampleDates []string, tripLengthDays int) ([][2]string, error) {
	pairs := make([][2]string, 0, len(sampleDates))
	for _, dep := range sampleDates {
		depDate, err := time.Parse(domain.DateLayout, dep)
		if err != nil {
			return nil, fmt.Errorf("parse sample date %q: %w", dep, err)
		}
		ret := depDate.AddDate(0, 0, tripLengthDays).Format(domain.DateLayout)
		pairs = append(pairs, [2]string{dep, ret})
	}

	return pairs, nil
}

func orDefault(value, fallback int) int {
	if value == 0 {
		return fallback
	}

	return value
}
