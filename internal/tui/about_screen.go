package tui

import (
	"fmt"

	"github.com/andy/clientdesk/internal/app"
	"github.com/andy/clientdesk/internal/config"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Version is set at build time via -ldflags
var Version = "dev"

// AboutModel shows where the application keeps its data
type AboutModel struct {
	app           *app.App
	schemaVersion int
	err           error
}

// NewAboutModel creates a new about screen
func NewAboutModel(a *app.App) tea.Model {
	return &AboutModel{app: a}
}

func (m *AboutModel) Init() tea.Cmd {
	return func() tea.Msg { return RefreshDataMsg{} }
}

func (m *AboutModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(RefreshDataMsg); ok {
		m.schemaVersion, m.err = m.app.DB.SchemaVersion()
	}
	return m, nil
}

func (m *AboutModel) View() string {
	var s string
	s += titleStyle.Render(config.AppName) + subtitleStyle.Render("  "+Version) + "\n"
	s += subtitleStyle.Render("  Client registry on an encrypted local database") + "\n\n"

	labelStyle := lipgloss.NewStyle().Bold(true).Width(18)
	valueStyle := lipgloss.NewStyle().Foreground(primaryColor)

	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Config:"), valueStyle.Render(config.DefaultConfigPath()))
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Database:"), valueStyle.Render(m.app.Config.Database.Path))

	schema := fmt.Sprintf("v%d", m.schemaVersion)
	if m.err != nil {
		schema = errorStyle.Render(m.err.Error())
	}
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Schema:"), valueStyle.Render(schema))

	return s
}
