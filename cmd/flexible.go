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

const monthLayout = "2006-01"

// Four spread-out departure days per month keep the call count per
// destination predictable.
var flexibleSampleDays = []int{1, 8, 15, 22}

func newFlexibleCmd(a *app) *cobra.Command {
	var (
		routes     routeFlags
		month      string
		tripLength int
		cabins     []string
		currency   string
		nonStop    bool
		maxPrice   int
		clientID   string
		csvPath    string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "flexible",
		Short: "Sample several departure dates per destination and keep the cheapest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFlexible(cmd, a, flexibleParams{
				routes:     routes,
				month:      month,
				tripLength: tripLength,
				cabins:     cabins,
				currency:   currency,
				nonStop:    nonStop,
				maxPrice:   maxPrice,
				clientID:   clientID,
				csvPath:    csvPath,
				asJSON:     asJSON,
			})
		},
	}

	registerRouteFlags(cmd, &routes)
	cmd.Flags().StringVar(&month, "month", "", "Month to sample (YYYY-MM, default: next month)")
	cmd.Flags().IntVar(&tripLength, "trip-length", 7, "Trip length in days")
	cmd.Flags().StringSliceVar(&cabins, "cabins", []string{"economy"}, "Cabin classes to compare")
	cmd.Flags().StringVar(&currency, "currency", "", "Price currency (default: inferred from origin)")
	cmd.Flags().BoolVar(&nonStop, "nonstop", false, "Only nonstop itineraries")
	cmd.Flags().IntVar(&maxPrice, "max-price", 0, "Maximum price per offer (0 = no limit)")
	cmd.Flags().StringVar(&clientID, "client", "local", "Client identifier for the daily search limit")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Write results to a CSV file instead of the terminal")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

type flexibleParams struct {
	routes     routeFlags
	month      string
	tripLength int
	cabins     []string
	currency   string
	nonStop    bool
	maxPrice   int
	clientID   string
	csvPath    string
	asJSON     bool
}

func runFlexible(cmd *cobra.Command, a *app, params flexibleParams) error {
	orchestrator, err := a.orchestrator()
	if err != nil {
		return err
	}

	cabins, err := parseCabins(params.cabins)
	if err != nil {
		return err
	}

	sampleDates, err := sampleDatesForMonth(a.now(), params.month)
	if err != nil {
		return err
	}

	origin := strings.ToUpper(strings.TrimSpace(params.routes.origin))
	currency := params.currency
	if currency == "" {
		currency = domain.DetectCurrency(origin)
	}

	destinations, err := resolveDestinations(cmd.Context(), orchestrator, params.routes, sampleDates[0], params.maxPrice)
	if err != nil {
		return err
	}

	request := application.FlexibleRequest{
		ClientID:       params.clientID,
		Origin:         origin,
		Destinations:   destinations,
		Cabins:         cabins,
		SampleDates:    sampleDates,
		TripLengthDays: params.tripLength,
		Currency:       currency,
		NonStop:        params.nonStop,
		MaxPrice:       params.maxPrice,
	}

	var results map[domain.Cabin]map[string]domain.FlexibleOffer
	total := len(destinations) * len(cabins) * len(sampleDates)
	label := fmt.Sprintf("Sampling %d dates from %s...", len(sampleDates), origin)

	fetch := func(ctx context.Context, onProgress application.Progress) error {
		request.OnProgress = onProgress

		var searchErr error
		results, searchErr = orchestrator.SearchFlexible(ctx, request)
		return searchErr
	}

	if params.asJSON || params.csvPath != "" {
		if err := fetch(cmd.Context(), nil); err != nil {
			return err
		}
	} else if err := runSearchSpinner(cmd.Context(), cmd.ErrOrStderr(), label, total, fetch); err != nil {
		return err
	}

	airlineNames := orchestrator.AirlineNames(cmd.Context(), flexibleCarrierCodes(results))

	report := offersrender.BuildFlexibleReport(origin, currency, results, airlineNames)

	return writeReport(cmd, a, report, params.clientID, params.csvPath, params.asJSON)
}

func flexibleCarrierCodes(results map[domain.Cabin]map[string]domain.FlexibleOffer) []string {
	byCabin := make(map[domain.Cabin][]domain.Itinerary, len(results))
	for cabin, offers := range results {
		for _, offer := range offers {
			byCabin[cabin] = append(byCabin[cabin], offer.Itinerary)
		}
	}

	return offersrender.CarrierCodes(byCabin)
}

// sampleDatesForMonth spreads departures across the month, dropping days that
// are already in the past.
func sampleDatesForMonth(now time.Time, month string) ([]string, error) {
	today := now.UTC()

	if month == "" {
		month = today.AddDate(0, 1, 0).Format(monthLayout)
	}

	firstOfMonth, err := time.Parse(monthLayout, month)
	if err != nil {
		return nil, fmt.Errorf("parse month %q: %w", month, err)
	}

	var dates []string
	for _, day := range flexibleSampleDays {
		date := firstOfMonth.AddDate(0, 0, day-1)
		if date.Before(today.Truncate(24 * time.Hour)) {
			continue
		}
		dates = append(dates, date.Format(domain.DateLayout))
	}

	if len(dates) == 0 {
		return nil, fmt.Errorf("month %s is entirely in the past", month)
	}

	return dates, nil
}
