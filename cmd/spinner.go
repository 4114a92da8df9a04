package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	stepPendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
	stepDoneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	stepFailedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// accountStep labels one round trip to the account service. Done is left on
// screen after success; an empty Done clears the line.
type accountStep struct {
	Pending string
	Done    string
}

type stepFinishedMsg struct {
	err error
}

type accountStepModel struct {
	spinner  spinner.Model
	step     accountStep
	run      tea.Cmd
	err      error
	finished bool
}

func newAccountStepModel(step accountStep, run tea.Cmd) accountStepModel {
	return accountStepModel{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(stepPendingStyle)),
		step:    step,
		run:     run,
	}
}

func (m accountStepModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.run)
}

func (m accountStepModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.finished {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case stepFinishedMsg:
		m.finished = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m accountStepModel) View() string {
	switch {
	case !m.finished:
		return fmt.Sprintf("%s %s", m.spinner.View(), m.step.Pending)
	case m.err != nil:
		return stepFailedStyle.Render("x "+m.step.Pending) + "\n"
	case m.step.Done != "":
		return stepDoneStyle.Render("ok "+m.step.Done) + "\n"
	default:
		return ""
	}
}

// runAccountStep animates step on output while run talks to the account
// service, and returns run's error.
func runAccountStep(ctx context.Context, output io.Writer, step accountStep, run func(context.Context) error) error {
	runCmd := func() tea.Msg {
		return stepFinishedMsg{err: run(ctx)}
	}

	p := tea.NewProgram(
		newAccountStepModel(step, runCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(accountStepModel)
	if !ok {
		return fmt.Errorf("unexpected final step model type %T", finalModel)
	}

	return result.err
}
