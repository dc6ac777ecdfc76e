package cmd

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var errUnexpectedSpinnerModel = errors.New("unexpected final spinner model type")

// fetchResultMsg carries the outcome of the background fetch back into
// the spinner program so it can quit.
type fetchResultMsg struct {
	err error
}

type fetchProgress struct {
	label   string
	start   tea.Cmd
	frames  spinner.Model
	result  error
	settled bool
}

func newFetchProgress(label string, start tea.Cmd) fetchProgress {
	frames := spinner.New()
	frames.Spinner = spinner.MiniDot
	frames.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))

	return fetchProgress{label: label, start: start, frames: frames}
}

func (p fetchProgress) Init() tea.Cmd {
	return tea.Batch(p.frames.Tick, p.start)
}

func (p fetchProgress) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case fetchResultMsg:
		p.settled = true
		p.result = msg.err
		return p, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		p.frames, cmd = p.frames.Update(msg)
		return p, cmd
	}
	return p, nil
}

func (p fetchProgress) View() string {
	if p.settled {
		return ""
	}
	return p.label + " " + p.frames.View()
}

// runFetchSpinner animates a spinner on output while fetch runs, then
// returns whatever the fetch returned.
func runFetchSpinner(ctx context.Context, output io.Writer, label string, fetch func(context.Context) error) error {
	start := func() tea.Msg {
		return fetchResultMsg{err: fetch(ctx)}
	}

	program := tea.NewProgram(
		newFetchProgress(label, start),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	final, err := program.Run()
	if err != nil {
		return err
	}

	progress, ok := final.(fetchProgress)
	if !ok {
		return errUnexpectedSpinnerModel
	}
	return progress.result
}
