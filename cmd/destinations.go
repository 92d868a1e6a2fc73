package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcravey/makemefly/internal/domain"
)

func newDestinationsCmd(a *app) *cobra.Command {
	var (
		origin      string
		depart      string
		maxPrice    int
		listRegions bool
	)

	cmd := &cobra.Command{
		Use:   "destinations",
		Short: "Discover destinations reachable from an origin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if listRegions {
				return runListRegions(cmd)
			}
			return runDiscoverDestinations(cmd, a, origin, depart, maxPrice)
		},
	}

	cmd.Flags().StringVar(&origin, "from", "YVR", "Origin airport IATA code")
	cmd.Flags().StringVar(&depart, "depart", "", "Departure date for price-aware discovery (YYYY-MM-DD)")
	cmd.Flags().IntVar(&maxPrice, "max-price", 0, "Maximum price filter for discovery (0 = no limit)")
	cmd.Flags().BoolVar(&listRegions, "list-regions", false, "List the built-in regions and their hub airports (no API calls)")

	return cmd
}

func runListRegions(cmd *cobra.Command) error {
	for _, region := range domain.Regions {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-16s %s\n", region.Name, strings.Join(region.Hubs, " ")); err != nil {
			return err
		}
	}

	return nil
}

func runDiscoverDestinations(cmd *cobra.Command, a *app, origin, depart string, maxPrice int) error {
	orchestrator, err := a.orchestrator()
	if err != nil {
		return err
	}

	depart, _, err = resolveDates(a.now(), depart, "")
	if err != nil {
		return err
	}

	origin = strings.ToUpper(strings.TrimSpace(origin))

	codes, err := orchestrator.DiscoverDestinations(cmd.Context(), origin, depart, maxPrice)
	if err != nil {
		return err
	}

	if len(codes) == 0 {
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "no destinations found from %s\n", origin)
		return err
	}

	for _, code := range codes {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", code, domain.CityName(code)); err != nil {
			return err
		}
	}

	return nil
}
