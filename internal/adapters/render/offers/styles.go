package offers

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title   lipgloss.Style
	header  lipgloss.Style
	cabin   lipgloss.Style
	row     lipgloss.Style
	price   lipgloss.Style
	deal    lipgloss.Style
	savings lipgloss.Style
	section lipgloss.Style
	empty   lipgloss.Style
	footer  lipgloss.Style
	url     lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true),
		header:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		cabin:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		row:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		price:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("159")),
		deal:    lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		savings: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		section: lipgloss.NewStyle().MarginTop(1),
		empty:   lipgloss.NewStyle().Faint(true),
		footer:  lipgloss.NewStyle().Faint(true).MarginTop(1),
		url:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}
