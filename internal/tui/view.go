package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"keycalc/internal/domain"
)

const displayWidth = 24

var (
	displayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1).
			Width(displayWidth).
			Align(lipgloss.Right).
			Bold(true)

	pendingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(displayWidth + 2).
			Align(lipgloss.Right)

	alertStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	tapeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)
)

// View реализует tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	state := m.machine.State()
	pending := ""
	if state.Operator.Valid() {
		pending = state.Pending + " " + state.Operator.String()
	}
	b.WriteString(pendingStyle.Render(pending))
	b.WriteString("\n")
	b.WriteString(displayStyle.Render(m.display))
	b.WriteString("\n")

	if m.alert != "" {
		b.WriteString(alertStyle.Render("⚠ " + m.alert))
	}
	b.WriteString("\n\n")

	for _, op := range m.tape {
		b.WriteString(tapeStyle.Render(tapeLine(op)))
		b.WriteString("\n")
	}
	if len(m.tape) > 0 {
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("0-9 . + - * / x  = enter  c esc  q quit"))
	b.WriteString("\n")
	return b.String()
}

func tapeLine(op domain.Operation) string {
	return fmt.Sprintf("%s %s %s = %s",
		domain.FormatNumber(op.Number1), op.Operation, domain.FormatNumber(op.Number2), domain.FormatNumber(op.Result))
}
