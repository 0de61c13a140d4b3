package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"teamforge/internal/compose"
	"teamforge/internal/roster"
)

// generateDoneMsg carries a successful pipeline result, tagged with the
// session it was generated for so a result arriving after a reset can be
// discarded instead of leaking into the fresh session.
type generateDoneMsg struct {
	sessionID string
	outcome   *compose.Outcome
}

// generateFailedMsg carries a pipeline failure. inputError marks the
// pre-invocation taxonomy: unknown type, empty result, failed validation.
type generateFailedMsg struct {
	sessionID  string
	err        error
	inputError bool
}

// generateCmd runs one full pipeline pass. The command goroutine never
// touches session state; Update folds the outcome in when the message
// arrives back on the program loop.
func generateCmd(gen *compose.Generator, sessionID string, teamType roster.SubmissionType, constraints string) tea.Cmd {
	return func() tea.Msg {
		out, err := gen.Generate(context.Background(), sessionID, teamType, constraints)
		if err != nil {
			return generateFailedMsg{sessionID: sessionID, err: err, inputError: compose.IsInputError(err)}
		}
		return generateDoneMsg{sessionID: sessionID, outcome: out}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		if r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(m.resultWidth()-2),
		); err == nil {
			m.renderer = r
		}
		if !m.ready {
			m.ready = true
			m.refreshSidebar()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if m.isLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case generateDoneMsg:
		if msg.sessionID != m.state.ID {
			// The session was reset while this run was in flight.
			return m, nil
		}
		m.isLoading = false
		m.errText = ""
		m.statusMsg = "Team composition generated successfully!"
		m.state.Record(msg.outcome.Prompt, msg.outcome.Invocation)
		m.setResult(msg.outcome.Composition)
		m.refreshSidebar()
		return m, nil

	case generateFailedMsg:
		if msg.sessionID != m.state.ID {
			return m, nil
		}
		m.isLoading = false
		if msg.inputError {
			m.errText = msg.err.Error()
		} else {
			// Remote faults show a generic indicator, not transport detail.
			m.errText = "An error occurred while generating the team."
			m.logger.Error("generation failed", zap.Error(msg.err))
		}
		m.statusMsg = ""
		m.refreshSidebar()
		return m, nil
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusConstraints:
		m.constraints, cmd = m.constraints.Update(msg)
	case focusResult:
		m.result, cmd = m.result.Update(msg)
	}
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "tab":
		m.cycleFocus()
		return m, nil

	case "ctrl+r":
		m.resetSession()
		return m, nil

	case "ctrl+t":
		m.showTrace = !m.showTrace
		m.layout()
		m.refreshSidebar()
		return m, nil

	case "ctrl+g":
		return m.submit()
	}

	switch m.focus {
	case focusTypes:
		switch msg.String() {
		case "up", "k":
			if m.typeCursor > 0 {
				m.typeCursor--
			}
			return m, nil
		case "down", "j":
			if m.typeCursor < len(roster.SubmissionTypes)-1 {
				m.typeCursor++
			}
			return m, nil
		case "enter":
			return m.submit()
		case "q", "esc":
			return m, tea.Quit
		}
		return m, nil

	case focusConstraints:
		if msg.String() == "esc" {
			m.focus = focusTypes
			m.constraints.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.constraints, cmd = m.constraints.Update(msg)
		return m, cmd

	case focusResult:
		switch msg.String() {
		case "q", "esc":
			m.focus = focusTypes
			return m, nil
		}
		var cmd tea.Cmd
		m.result, cmd = m.result.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) cycleFocus() {
	switch m.focus {
	case focusTypes:
		m.focus = focusConstraints
		m.constraints.Focus()
	case focusConstraints:
		m.focus = focusResult
		m.constraints.Blur()
	default:
		m.focus = focusTypes
	}
}

// submit starts a generation run unless one is already in flight.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.isLoading {
		return m, nil
	}
	m.isLoading = true
	m.errText = ""
	m.statusMsg = "Generating team composition..."
	return m, tea.Batch(
		m.spinner.Tick,
		generateCmd(m.gen, m.state.ID, m.selectedType(), m.constraints.Value()),
	)
}

// setResult renders the composition into the result viewport, through
// glamour when a renderer is available.
func (m *Model) setResult(composition string) {
	content := composition
	if m.renderer != nil {
		if rendered, err := m.renderer.Render(composition); err == nil {
			content = rendered
		}
	}
	m.result.SetContent(content)
	m.result.GotoTop()
}
