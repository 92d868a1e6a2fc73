package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	tomlledger "github.com/mcravey/makemefly/internal/adapters/ledger/toml"
	"github.com/mcravey/makemefly/internal/adapters/provider/amadeus"
	offersrender "github.com/mcravey/makemefly/internal/adapters/render/offers"
	"github.com/mcravey/makemefly/internal/application"
	"github.com/mcravey/makemefly/internal/ports"
)

type app struct {
	usage        ports.UsageLedger
	clients      ports.ClientLedger
	searcher     *application.Orchestrator
	searcherErr  error
	renderReport func(offersrender.Report, offersrender.RenderOptions) (string, error)
	now          func() time.Time
}

// orchestrator returns the wired search orchestrator, or the credential error
// recorded at wiring time. Commands that never reach the provider (usage,
// version) keep working without credentials.
func (a *app) orchestrator() (*application.Orchestrator, error) {
	if a.searcher == nil {
		return nil, a.searcherErr
	}
	return a.searcher, nil
}

func wireApp() (*app, error) {
	cfg, err := tomlledger.LoadConfig(viper.New())
	if err != nil {
		return nil, fmt.Errorf("load ledger config: %w", err)
	}

	clock := ports.SystemClock{}

	usage, err := tomlledger.NewUsageLedger(cfg, clock)
	if err != nil {
		return nil, fmt.Errorf("wire usage ledger: %w", err)
	}

	clients, err := tomlledger.NewClientLedger(cfg, clock)
	if err != nil {
		return nil, fmt.Errorf("wire client ledger: %w", err)
	}

	wired := &app{
		usage:        usage,
		clients:      clients,
		renderReport: offersrender.Render,
		now:          time.Now,
	}

	provider, err := amadeus.NewClient(amadeus.Config{
		BaseURL:      os.Getenv("MMF_BASE_URL"),
		ClientID:     os.Getenv("MMF_CLIENT_ID"),
		ClientSecret: os.Getenv("MMF_CLIENT_SECRET"),
		Clock:        clock,
	})
	if err != nil {
		wired.searcherErr = fmt.Errorf("wire flight provider (set MMF_CLIENT_ID and MMF_CLIENT_SECRET): %w", err)
		return wired, nil
	}

	wired.searcher = application.NewOrchestrator(provider, usage, clients, clock)

	return wired, nil
}
