package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	offersrender "github.com/mcravey/makemefly/internal/adapters/render/offers"
	"github.com/mcravey/makemefly/internal/application"
	"github.com/mcravey/makemefly/internal/domain"
)

// routeFlags is the destination-selection surface shared by the search and
// flexible commands.
type routeFlags struct {
	origin      string
	to          []string
	regions     []string
	discoverAll bool
}

func registerRouteFlags(cmd *cobra.Command, flags *routeFlags) {
	cmd.Flags().StringVar(&flags.origin, "from", "YVR", "Origin airport IATA code")
	cmd.Flags().StringSliceVar(&flags.to, "to", nil, "Destination IATA codes (default: regional hubs)")
	cmd.Flags().StringSliceVar(&flags.regions, "regions", nil, "Region names to search hubs for (see `mmf destinations --list-regions`)")
	cmd.Flags().BoolVar(&flags.discoverAll, "all", false, "Discover destinations from the provider instead of hub lists")
}

// resolveDestinations turns the route flags into a deduplicated destination
// list. Explicit --to wins over --regions, which wins over --all discovery;
// with nothing set, every region's hubs are searched.
func resolveDestinations(
	ctx context.Context,
	orchestrator *application.Orchestrator,
	flags routeFlags,
	departureDate string,
	maxPrice int,
) ([]string, error) {
	var codes []string

	switch {
	case len(flags.to) > 0:
		for _, code := range flags.to {
			codes = append(codes, strings.ToUpper(strings.TrimSpace(code)))
		}
	case len(flags.regions) > 0:
		codes = domain.HubDestinations(flags.regions)
		if len(codes) == 0 {
			return nil, fmt.Errorf("no hubs found for regions %v (known: %s)", flags.regions, strings.Join(domain.RegionNames(), ", "))
		}
	case flags.discoverAll:
		discovered, err := orchestrator.DiscoverDestinations(ctx, flags.origin, departureDate, maxPrice)
		if err != nil {
			return nil, err
		}
		codes = discovered
	default:
		codes = domain.HubDestinations(domain.RegionNames())
	}

	origin := strings.ToUpper(strings.TrimSpace(flags.origin))
	deduped := domain.DedupDestinations(codes)
	filtered := deduped[:0]
	for _, code := range deduped {
		if code != origin && code != "" {
			filtered = append(filtered, code)
		}
	}

	if len(filtered) == 0 {
		return nil, fmt.Errorf("no destinations to search from %s", origin)
	}

	return filtered, nil
}

func parseCabins(raw []string) ([]domain.Cabin, error) {
	cabins := make([]domain.Cabin, 0, len(raw))
	for _, value := range raw {
		cabin, err := domain.ParseCabin(value)
		if err != nil {
			return nil, err
		}
		cabins = append(cabins, cabin)
	}

	return cabins, nil
}

// writeReport emits the finished report on the channel the flags picked:
// a CSV file, JSON on stdout, or the styled terminal view with the ledger
// footer.
func writeReport(cmd *cobra.Command, a *app, report offersrender.Report, clientID, csvPath string, asJSON bool) error {
	if csvPath != "" {
		file, err := os.Create(csvPath)
		if err != nil {
			return fmt.Errorf("create csv file: %w", err)
		}
		defer file.Close()

		if err := offersrender.WriteCSV(file, report); err != nil {
			return err
		}

		_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", csvPath)
		return err
	}

	if asJSON {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)
	}

	opts := offersrender.RenderOptions{ShowLedgers: true}

	var err error
	if opts.CallsUsed, opts.CallsCap, err = a.usage.Usage(cmd.Context()); err != nil {
		return fmt.Errorf("read usage ledger: %w", err)
	}
	if opts.ClientUsed, opts.ClientCap, err = a.clients.ClientUsage(cmd.Context(), clientID); err != nil {
		return fmt.Errorf("read client ledger: %w", err)
	}

	output, err := a.renderReport(report, opts)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), output)
	return err
}
