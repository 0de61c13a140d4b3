package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"teamforge/internal/roster"
	"teamforge/internal/trace"
)

const sidebarWidth = 48

// layout resizes the viewports to the current terminal dimensions.
func (m *Model) layout() {
	contentHeight := m.height - 16
	if contentHeight < 5 {
		contentHeight = 5
	}

	m.result.Width = m.resultWidth()
	m.result.Height = contentHeight

	m.sidebar.Width = sidebarWidth - 4
	m.sidebar.Height = m.height - 4
	if m.sidebar.Height < 5 {
		m.sidebar.Height = 5
	}

	m.constraints.SetWidth(m.resultWidth() - 4)
}

func (m Model) resultWidth() int {
	w := m.width - 4
	if m.showTrace {
		w -= sidebarWidth
	}
	if w < 20 {
		w = 20
	}
	return w
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	main := lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(),
		m.formView(),
		m.resultView(),
		m.statusView(),
	)

	if m.showTrace {
		return lipgloss.JoinHorizontal(lipgloss.Top, main, m.sidebarView())
	}
	return main
}

func (m Model) headerView() string {
	title := fmt.Sprintf("%s %s", m.cfg.UI.Icon, m.cfg.UI.Title)
	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render(title),
		m.styles.Muted.Render("Generate and analyze VALORANT team compositions based on player data."),
	)
}

func (m Model) formView() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Label.Render("Select Team Submission Type:"))
	sb.WriteString("\n")
	for i, t := range roster.SubmissionTypes {
		cursor := "  "
		line := string(t)
		if i == m.typeCursor {
			cursor = "> "
			line = m.styles.Selected.Render(line)
		}
		sb.WriteString(cursor + line + "\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Label.Render("Additional Constraints (Optional):"))
	sb.WriteString("\n")
	sb.WriteString(m.constraints.View())

	return m.styles.Panel.Render(sb.String())
}

func (m Model) resultView() string {
	if m.isLoading {
		return m.styles.Panel.Render(m.spinner.View() + " Generating team composition...")
	}
	if m.errText != "" {
		return m.styles.Panel.Render(m.styles.Error.Render(m.errText))
	}
	if m.state.TeamComposition == "" {
		return m.styles.Panel.Render(m.styles.Muted.Render("No team composition yet. Press enter to build one."))
	}
	return m.styles.Panel.Render(
		m.styles.Label.Render("Team Composition") + "\n" + m.result.View())
}

func (m Model) statusView() string {
	status := m.statusMsg
	if status != "" {
		status = m.styles.Success.Render(status) + "  "
	}
	help := "enter build · tab focus · ctrl+t trace · ctrl+r reset · ctrl+c quit"
	return m.styles.StatusBar.Render(status + help)
}

// refreshSidebar rebuilds the trace/citations panel from session state.
func (m *Model) refreshSidebar() {
	m.sidebar.SetContent(m.sidebarContent())
}

func (m Model) sidebarContent() string {
	var sb strings.Builder

	sb.WriteString(m.styles.SidebarTitle.Render("Trace & Citations"))
	sb.WriteString("\n\n")
	sb.WriteString(m.styles.Label.Render("Trace"))
	sb.WriteString("\n")

	result := trace.Reconcile(m.state.Trace)
	if len(result.Steps) == 0 {
		sb.WriteString(m.styles.Muted.Render("No trace information available."))
		sb.WriteString("\n")
	}
	section := ""
	for _, step := range result.Steps {
		if step.Section != section {
			section = step.Section
			sb.WriteString("\n")
			sb.WriteString(m.styles.Subtitle.Render(section))
			sb.WriteString("\n")
		}
		sb.WriteString(m.styles.Selected.Render(fmt.Sprintf("Trace Step %d", step.Number)))
		sb.WriteString("\n")
		sb.WriteString(step.Render())
		sb.WriteString("\n")
	}
	if result.Dropped > 0 {
		sb.WriteString(m.styles.Muted.Render(
			fmt.Sprintf("(%d entries skipped: no recognized field)", result.Dropped)))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Label.Render("Citations"))
	sb.WriteString("\n")
	units := trace.FlattenCitations(m.state.Citations)
	if len(units) == 0 {
		sb.WriteString(m.styles.Muted.Render("No citations available."))
		sb.WriteString("\n")
	}
	for _, u := range units {
		sb.WriteString(m.styles.Selected.Render(fmt.Sprintf("Citation [%d]", u.Number)))
		sb.WriteString("\n")
		sb.WriteString(u.Render())
		sb.WriteString("\n")
	}

	return sb.String()
}

func (m Model) sidebarView() string {
	return m.styles.Panel.Width(sidebarWidth - 2).Render(m.sidebar.View())
}
