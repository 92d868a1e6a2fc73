package offers

import (
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mcravey/makemefly/internal/domain"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

// RenderOptions carries the ledger readings shown in the report footer.
type RenderOptions struct {
	CallsUsed   int
	CallsCap    int
	ClientUsed  int
	ClientCap   int
	ShowLedgers bool
}

type renderReadyMsg struct{}

type model struct {
	report Report
	opts   RenderOptions
	styles styles
	output string
}

func newModel(report Report, opts RenderOptions) model {
	return model{
		report: report,
		opts:   opts,
		styles: newStyles(),
	}
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case renderReadyMsg:
		m.output = renderView(m.report, m.opts, m.styles)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

// Render produces the final report text through a non-interactive bubbletea
// program so styles resolve the same way as every other terminal surface.
func Render(report Report, opts RenderOptions) (string, error) {
	p := tea.NewProgram(
		newModel(report, opts),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}

func renderView(report Report, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Make Me Fly"),
		s.header.Render(fmt.Sprintf("from %s, prices in %s", report.Origin, report.Currency)),
	}

	empty := true
	for _, section := range report.Sections {
		if len(section.Rows) == 0 {
			continue
		}
		empty = false
		lines = append(lines, s.section.Render(renderSection(report, section, s)))
	}

	if empty {
		lines = append(lines, s.empty.Render("No flights found. Try different dates or destinations."))
	}

	if len(report.Upgrades) > 0 {
		lines = append(lines, s.section.Render(renderUpgrades(report, s)))
	}

	if opts.ShowLedgers {
		lines = append(lines, s.footer.Render(fmt.Sprintf(
			"API calls today: %d/%d · searches today: %d/%d",
			opts.CallsUsed, opts.CallsCap, opts.ClientUsed, opts.ClientCap,
		)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderSection(report Report, section CabinSection, s styles) string {
	parts := []string{
		s.cabin.Render(fmt.Sprintf("%s · %d destinations", section.Cabin.Label(), len(section.Rows))),
	}

	for _, row := range section.Rows {
		parts = append(parts, renderRow(report, row, s))
		if row.URL != "" {
			parts = append(parts, s.url.Render("  "+row.URL))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderRow(report Report, row Row, s styles) string {
	label := fmt.Sprintf("%-20s", fmt.Sprintf("%s (%s)", row.City, row.Destination))
	price := s.price.Render(fmt.Sprintf("%8.0f %s", row.Price, report.Currency))

	segments := []string{s.row.Render(label), " ", price}

	if row.Airline != "" {
		segments = append(segments, "  ", s.row.Render(row.Airline))
	}
	if row.Stops == 0 {
		segments = append(segments, "  ", s.row.Render("nonstop"))
	} else {
		segments = append(segments, "  ", s.row.Render(fmt.Sprintf("%d stop(s)", row.Stops)))
	}

	if report.Flexible {
		segments = append(segments, "  ", s.row.Render(row.Date))
		if row.Savings > 0 {
			segments = append(segments, "  ", s.savings.Render(fmt.Sprintf("save %.0f vs worst of %d dates", row.Savings, row.DatesChecked)))
		}
	} else if row.Deal != "" {
		segments = append(segments, "  ", s.deal.Render(row.Deal))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, segments...)
}

func renderUpgrades(report Report, s styles) string {
	parts := []string{s.cabin.Render("Upgrade value · business vs economy")}

	for _, upgrade := range report.Upgrades {
		line := fmt.Sprintf(
			"%-20s economy %.0f · business %.0f · +%.0f (%.1fx)",
			fmt.Sprintf("%s (%s)", domain.CityName(upgrade.Destination), upgrade.Destination),
			upgrade.Economy, upgrade.Business, upgrade.Premium, upgrade.Multiplier,
		)
		parts = append(parts, s.row.Render(line))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
