package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	offersrender "github.com/mcravey/makemefly/internal/adapters/render/offers"
	"github.com/mcravey/makemefly/internal/application"
	"github.com/mcravey/makemefly/internal/domain"
)

func newSearchCmd(a *app) *cobra.Command {
	var (
		routes     routeFlags
		depart     string
		returnDate string
		cabins     []string
		adults     int
		currency   string
		nonStop    bool
		maxPrice   int
		maxResults int
		clientID   string
		csvPath    string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search fixed-date flight offers across destinations and cabins",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSearch(cmd, a, searchParams{
				routes:     routes,
				depart:     depart,
				returnDate: returnDate,
				cabins:     cabins,
				adults:     adults,
				currency:   currency,
				nonStop:    nonStop,
				maxPrice:   maxPrice,
				maxResults: maxResults,
				clientID:   clientID,
				csvPath:    csvPath,
				asJSON:     asJSON,
			})
		},
	}

	registerRouteFlags(cmd, &routes)
	cmd.Flags().StringVar(&depart, "depart", "", "Departure date (YYYY-MM-DD, default: 4 weeks out)")
	cmd.Flags().StringVar(&returnDate, "return", "", "Return date (YYYY-MM-DD, default: depart + 7 days)")
	cmd.Flags().StringSliceVar(&cabins, "cabins", []string{"economy", "business"}, "Cabin classes to compare")
	cmd.Flags().IntVar(&adults, "adults", 1, "Number of adult passengers")
	cmd.Flags().StringVar(&currency, "currency", "", "Price currency (default: inferred from origin)")
	cmd.Flags().BoolVar(&nonStop, "nonstop", false, "Only nonstop itineraries")
	cmd.Flags().IntVar(&maxPrice, "max-price", 0, "Maximum price per offer (0 = no limit)")
	cmd.Flags().IntVar(&maxResults, "max-results", 0, "Offers per route (0 = provider default)")
	cmd.Flags().StringVar(&clientID, "client", "local", "Client identifier for the daily search limit")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Write results to a CSV file instead of the terminal")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

type searchParams struct {
	routes     routeFlags
	depart     string
	returnDate string
	cabins     []string
	adults     int
	currency   string
	nonStop    bool
	maxPrice   int
	maxResults int
	clientID   string
	csvPath    string
	asJSON     bool
}

func runSearch(cmd *cobra.Command, a *app, params searchParams) error {
	orchestrator, err := a.orchestrator()
	if err != nil {
		return err
	}

	cabins, err := parseCabins(params.cabins)
	if err != nil {
		return err
	}

	depart, returnDate, err := resolveDates(a.now(), params.depart, params.returnDate)
	if err != nil {
		return err
	}

	origin := strings.ToUpper(strings.TrimSpace(params.routes.origin))
	currency := params.currency
	if currency == "" {
		currency = domain.DetectCurrency(origin)
	}

	destinations, err := resolveDestinations(cmd.Context(), orchestrator, params.routes, depart, params.maxPrice)
	if err != nil {
		return err
	}

	request := application.SearchRequest{
		ClientID:      params.clientID,
		Origin:        origin,
		Destinations:  destinations,
		Cabins:        cabins,
		DepartureDate: depart,
		ReturnDate:    returnDate,
		Adults:        params.adults,
		MaxResults:    params.maxResults,
		Currency:      currency,
		NonStop:       params.nonStop,
		MaxPrice:      params.maxPrice,
	}

	var results map[domain.Cabin][]domain.Itinerary
	total := len(destinations) * len(cabins)
	label := fmt.Sprintf("Searching flights from %s...", origin)

	fetch := func(ctx context.Context, onProgress application.Progress) error {
		request.OnProgress = onProgress

		var searchErr error
		results, searchErr = orchestrator.SearchParallel(ctx, request)
		return searchErr
	}

	if params.asJSON || params.csvPath != "" {
		if err := fetch(cmd.Context(), nil); err != nil {
			return err
		}
	} else if err := runSearchSpinner(cmd.Context(), cmd.ErrOrStderr(), label, total, fetch); err != nil {
		return err
	}

	airlineNames := orchestrator.AirlineNames(cmd.Context(), offersrender.CarrierCodes(results))
	scores := orchestrator.DealScores(cmd.Context(), origin, destinations, depart)

	report := offersrender.BuildFixedReport(origin, currency, depart, results, scores, airlineNames)

	return writeReport(cmd, a, report, params.clientID, params.csvPath, params.asJSON)
}

// resolveDates fills in the default travel window: departure four weeks out,
// return a week later.
func resolveDates(now time.Time, depart, returnDate string) (string, string, error) {
	if depart == "" {
		depart = now.UTC().AddDate(0, 0, 28).Format(domain.DateLayout)
	}

	departDay, err := time.Parse(domain.DateLayout, depart)
	if err != nil {
		return "", "", fmt.Errorf("parse departure date %q: %w", depart, err)
	}

	if returnDate == "" {
		returnDate = departDay.AddDate(0, 0, 7).Format(domain.DateLayout)
	} else if _, err := time.Parse(domain.DateLayout, returnDate); err != nil {
		return "", "", fmt.Errorf("parse return date %q: %w", returnDate, err)
	}

	return depart, returnDate, nil
}
