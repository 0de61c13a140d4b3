package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamforge/internal/agent"
	"teamforge/internal/compose"
	"teamforge/internal/config"
	"teamforge/internal/roster"
)

func newTestModel() Model {
	return New(config.Default(), nil, nil)
}

func keyMsg(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func TestNew(t *testing.T) {
	m := newTestModel()
	assert.Equal(t, roster.SubmissionProfessional, m.selectedType())
	assert.NotNil(t, m.state)
	assert.False(t, m.isLoading)
}

func TestTypeCursorBounds(t *testing.T) {
	m := newTestModel()

	// Up at the top stays put.
	updated, _ := m.Update(keyMsg(tea.KeyUp))
	m = updated.(Model)
	assert.Equal(t, 0, m.typeCursor)

	// Down walks the list and stops at the last entry.
	for i := 0; i < len(roster.SubmissionTypes)+3; i++ {
		updated, _ = m.Update(keyMsg(tea.KeyDown))
		m = updated.(Model)
	}
	assert.Equal(t, len(roster.SubmissionTypes)-1, m.typeCursor)
	assert.Equal(t, roster.SubmissionRisingStar, m.selectedType())
}

func TestResetRebuildsSessionWholesale(t *testing.T) {
	m := newTestModel()
	oldID := m.state.ID
	m.state.TeamComposition = "stale"
	m.state.Citations = append(m.state.Citations, map[string]any{})
	m.errText = "stale error"

	updated, _ := m.Update(keyMsg(tea.KeyCtrlR))
	m = updated.(Model)

	assert.NotEqual(t, oldID, m.state.ID)
	assert.Empty(t, m.state.TeamComposition)
	assert.Empty(t, m.state.Citations)
	assert.Empty(t, m.errText)
}

func TestGenerateFailed_InputErrorShowsReason(t *testing.T) {
	m := newTestModel()
	m.isLoading = true

	updated, _ := m.Update(generateFailedMsg{
		sessionID:  m.state.ID,
		err:        errors.New("Not enough players from different regions to build a Cross-Regional team."),
		inputError: true,
	})
	m = updated.(Model)

	assert.False(t, m.isLoading)
	assert.Contains(t, m.errText, "different regions")
}

func TestGenerateFailed_RemoteFaultIsGeneric(t *testing.T) {
	m := newTestModel()
	m.isLoading = true

	updated, _ := m.Update(generateFailedMsg{sessionID: m.state.ID, err: errors.New("dial tcp: connection refused")})
	m = updated.(Model)

	assert.False(t, m.isLoading)
	assert.NotContains(t, m.errText, "dial tcp", "transport detail stays out of the UI")
	assert.Equal(t, "An error occurred while generating the team.", m.errText)
}

func TestGenerateDone(t *testing.T) {
	m := newTestModel()
	m.isLoading = true

	updated, _ := m.Update(generateDoneMsg{
		sessionID: m.state.ID,
		outcome: &compose.Outcome{
			Prompt:      "Build me a team.",
			Composition: "Final five.",
			Invocation: &agent.Invocation{
				Completion: "Final five.",
				Citations:  []map[string]any{{"generatedResponsePart": map[string]any{}}},
			},
		},
	})
	m = updated.(Model)

	assert.False(t, m.isLoading)
	assert.Empty(t, m.errText)
	assert.Contains(t, m.statusMsg, "successfully")
	assert.Equal(t, "Final five.", m.state.TeamComposition)
	assert.Len(t, m.state.Citations, 1)
	require.Len(t, m.state.Messages, 2)
	assert.Equal(t, "Build me a team.", m.state.Messages[0].Content)
}

// A result that finishes after a mid-flight reset belongs to the old
// session and must not be folded into the fresh one.
func TestResetDropsInFlightResult(t *testing.T) {
	m := newTestModel()
	oldID := m.state.ID
	m.isLoading = true

	updated, _ := m.Update(keyMsg(tea.KeyCtrlR))
	m = updated.(Model)
	require.NotEqual(t, oldID, m.state.ID)
	assert.False(t, m.isLoading, "fresh session starts unblocked")

	updated, _ = m.Update(generateDoneMsg{
		sessionID: oldID,
		outcome: &compose.Outcome{
			Prompt:      "old-session prompt",
			Composition: "old-session team",
			Invocation:  &agent.Invocation{Completion: "old-session team"},
		},
	})
	m = updated.(Model)

	assert.Empty(t, m.state.TeamComposition)
	assert.Empty(t, m.state.Messages)
	assert.Empty(t, m.state.Citations)
	assert.NotContains(t, m.statusMsg, "successfully")
}

func TestResetDropsInFlightFailure(t *testing.T) {
	m := newTestModel()
	oldID := m.state.ID
	m.isLoading = true

	updated, _ := m.Update(keyMsg(tea.KeyCtrlR))
	m = updated.(Model)

	updated, _ = m.Update(generateFailedMsg{
		sessionID: oldID,
		err:       errors.New("dial tcp: connection refused"),
	})
	m = updated.(Model)

	assert.Empty(t, m.errText, "stale failure does not surface in the fresh session")
}

func TestWindowSizeReady(t *testing.T) {
	m := newTestModel()
	require.False(t, m.ready)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(Model)
	assert.True(t, m.ready)

	// The view renders without panicking once sized.
	assert.NotEmpty(t, m.View())
}

func TestSubmitWhileLoadingIsIgnored(t *testing.T) {
	m := newTestModel()
	m.isLoading = true

	updated, cmd := m.Update(keyMsg(tea.KeyEnter))
	m = updated.(Model)
	assert.True(t, m.isLoading)
	assert.Nil(t, cmd, "no second generation while one is in flight")
}
