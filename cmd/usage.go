package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newUsageCmd(a *app) *cobra.Command {
	var clientID string
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "usage",
		Aliases: []string{"quota"},
		Short:   "Show today's API call and client search budgets",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUsage(cmd, a, clientID, asJSON)
		},
	}

	cmd.Flags().StringVar(&clientID, "client", "local", "Client identifier to report searches for")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

type usageReport struct {
	CallsUsed    int    `json:"calls_used"`
	CallsCap     int    `json:"calls_cap"`
	ClientID     string `json:"client_id"`
	SearchesUsed int    `json:"searches_used"`
	SearchesCap  int    `json:"searches_cap"`
	CallsLeft    int    `json:"calls_left"`
	SearchesLeft int    `json:"searches_left"`
}

func runUsage(cmd *cobra.Command, a *app, clientID string, asJSON bool) error {
	callsUsed, callsCap, err := a.usage.Usage(cmd.Context())
	if err != nil {
		return fmt.Errorf("read usage ledger: %w", err)
	}

	searchesUsed, searchesCap, err := a.clients.ClientUsage(cmd.Context(), clientID)
	if err != nil {
		return fmt.Errorf("read client ledger: %w", err)
	}

	report := usageReport{
		CallsUsed:    callsUsed,
		CallsCap:     callsCap,
		ClientID:     clientID,
		SearchesUsed: searchesUsed,
		SearchesCap:  searchesCap,
		CallsLeft:    callsCap - callsUsed,
		SearchesLeft: searchesCap - searchesUsed,
	}

	if asJSON {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(),
		"API calls today:     %d/%d (%d left)\nSearches for %q: %d/%d (%d left)\n",
		report.CallsUsed, report.CallsCap, report.CallsLeft,
		report.ClientID, report.SearchesUsed, report.SearchesCap, report.SearchesLeft,
	)
	return err
}
