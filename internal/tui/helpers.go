package tui

import (
	"errors"
	"fmt"

	"github.com/andy/clientdesk/internal/coordinator"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// truncateStr truncates a string to the specified length with ellipsis
func truncateStr(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// fatalOnPrecondition turns a coordinator PreconditionError into a FatalMsg.
// Every other error has already been shown by the coordinator.
func fatalOnPrecondition(err error) tea.Cmd {
	var pe *coordinator.PreconditionError
	if errors.As(err, &pe) {
		return func() tea.Msg { return FatalMsg{Err: err} }
	}
	return nil
}

// renderFormField renders a labelled text input with an optional error line below it
func renderFormField(label string, input textinput.Model, focused bool, errMsg string) string {
	indicator := "  "
	labelStyle := subtitleStyle
	if focused {
		indicator = "> "
		labelStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	}
	s := fmt.Sprintf("%s%s\n  %s\n", indicator, labelStyle.Render(label), input.View())
	if errMsg != "" {
		s += errorStyle.Render("  "+errMsg) + "\n"
	}
	return s + "\n"
}

// cycleFocus blurs fields[from] and focuses the field delta steps away, wrapping around
func cycleFocus(fields []textinput.Model, from, delta int) (int, tea.Cmd) {
	fields[from].Blur()
	next := (from + delta + len(fields)) % len(fields)
	return next, fields[next].Focus()
}
