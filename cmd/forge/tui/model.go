// Package tui provides the interactive terminal interface: a submission
// form on the left, the generated composition in the middle, and a
// toggleable trace/citations sidebar.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"teamforge/cmd/forge/ui"
	"teamforge/internal/compose"
	"teamforge/internal/config"
	"teamforge/internal/roster"
	"teamforge/internal/session"
)

// focusArea determines which component receives key input.
type focusArea int

const (
	focusTypes focusArea = iota
	focusConstraints
	focusResult
)

// Model is the main model for the interactive interface.
type Model struct {
	cfg    *config.Config
	gen    *compose.Generator
	logger *zap.Logger
	styles ui.Styles

	// UI components
	constraints textarea.Model
	result      viewport.Model
	sidebar     viewport.Model
	spinner     spinner.Model
	renderer    *glamour.TermRenderer

	// Form state
	typeCursor int
	focus      focusArea
	showTrace  bool

	// Session state. Replaced wholesale on reset.
	state *session.State

	isLoading bool
	errText   string
	statusMsg string

	width  int
	height int
	ready  bool
}

// New builds the initial model.
func New(cfg *config.Config, gen *compose.Generator, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}

	ta := textarea.New()
	ta.Placeholder = "Enter any additional constraints or leave blank."
	ta.CharLimit = 2000
	ta.SetHeight(4)
	ta.ShowLineNumbers = false

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		cfg:         cfg,
		gen:         gen,
		logger:      logger,
		styles:      ui.NewStyles(),
		constraints: ta,
		spinner:     sp,
		state:       session.New(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// selectedType returns the submission type under the cursor.
func (m Model) selectedType() roster.SubmissionType {
	return roster.SubmissionTypes[m.typeCursor]
}

// resetSession rebuilds the session bundle atomically and clears the
// rendered output. Nothing is cleared piecemeal. An in-flight generation
// belongs to the old session; its result is dropped on arrival, so the
// fresh session starts unblocked.
func (m *Model) resetSession() {
	m.state = session.New()
	m.isLoading = false
	m.errText = ""
	m.statusMsg = "Session reset."
	m.result.SetContent("")
	m.refreshSidebar()
	m.logger.Info("session reset", zap.String("session_id", m.state.ID))
}

// Run starts the interactive interface and blocks until it exits.
func Run(cfg *config.Config, gen *compose.Generator, logger *zap.Logger) error {
	p := tea.NewProgram(New(cfg, gen, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run interface: %w", err)
	}
	return nil
}
