package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mcravey/makemefly/internal/application"
	"github.com/mcravey/makemefly/internal/domain"
)

type searchDoneMsg struct {
	err error
}

type searchProgressMsg struct {
	cabin       domain.Cabin
	destination string
}

type searchSpinnerModel struct {
	spinner spinner.Model
	label   string
	total   int
	done    int
	fetch   tea.Cmd
	err     error
	quit    bool
}

func newSearchSpinnerModel(label string, total int, fetch tea.Cmd) searchSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return searchSpinnerModel{
		spinner: s,
		label:   label,
		total:   total,
		fetch:   fetch,
	}
}

func (m searchSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch)
}

func (m searchSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case searchProgressMsg:
		m.done++
		return m, nil
	case searchDoneMsg:
		m.quit = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m searchSpinnerModel) View() string {
	if m.quit {
		return ""
	}

	if m.total > 0 {
		return fmt.Sprintf("%s %s %d/%d routes", m.spinner.View(), m.label, m.done, m.total)
	}

	return fmt.Sprintf("%s %s", m.spinner.View(), m.label)
}

// runSearchSpinner drives fetch under a spinner, counting completed routes as
// the batch reports them.
func runSearchSpinner(
	ctx context.Context,
	output io.Writer,
	label string,
	total int,
	fetch func(context.Context, application.Progress) error,
) error {
	var p *tea.Program

	fetchCmd := func() tea.Msg {
		onProgress := func(cabin domain.Cabin, destination string) {
			p.Send(searchProgressMsg{cabin: cabin, destination: destination})
		}
		return searchDoneMsg{err: fetch(ctx, onProgress)}
	}

	p = tea.NewProgram(
		newSearchSpinnerModel(label, total, fetchCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(searchSpinnerModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.err
}
