package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/andy/clientdesk/internal/app"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// settings form field indices
const (
	settingsFieldOutputDir = iota
	settingsFieldLogLevel
	settingsFieldCount
)

var settingsFieldLabels = [settingsFieldCount]string{"Export Directory:", "Log Level:"}

// SettingsModel shows the config file values and edits the ones that are safe to
// change while running
type SettingsModel struct {
	app        *app.App
	editing    bool
	fields     []textinput.Model
	fieldFocus int
	err        error
	statusMsg  string
}

// NewSettingsModel creates a new settings screen
func NewSettingsModel(a *app.App) tea.Model {
	return &SettingsModel{app: a}
}

// IsCapturingInput returns true when the edit form is active
func (m *SettingsModel) IsCapturingInput() bool {
	return m.editing
}

func (m *SettingsModel) Init() tea.Cmd {
	return nil
}

func (m *SettingsModel) startEditing() tea.Cmd {
	cfg := m.app.Config

	outputDir := textinput.New()
	outputDir.Placeholder = "/path/to/exports"
	outputDir.CharLimit = 256
	outputDir.Width = 60
	outputDir.SetValue(cfg.Export.OutputDir)

	level := textinput.New()
	level.Placeholder = "debug, info, warn or error"
	level.CharLimit = 10
	level.Width = 30
	level.SetValue(cfg.Log.Level)

	m.fields = []textinput.Model{outputDir, level}
	m.fieldFocus = settingsFieldOutputDir
	m.editing = true
	m.statusMsg = ""
	m.err = nil
	return m.fields[m.fieldFocus].Focus()
}

// save validates the form, then writes it to the config file
func (m *SettingsModel) save() {
	outputDir := strings.TrimSpace(m.fields[settingsFieldOutputDir].Value())
	level := strings.ToLower(strings.TrimSpace(m.fields[settingsFieldLogLevel].Value()))

	if outputDir == "" {
		m.err = errors.New("export directory is required")
		return
	}
	if _, err := zapcore.ParseLevel(level); err != nil {
		m.err = errors.New("log level must be one of debug, info, warn, error")
		return
	}

	m.app.Config.Export.OutputDir = outputDir
	m.app.Config.Log.Level = level
	if err := m.app.SaveConfig(); err != nil {
		m.err = fmt.Errorf("failed to save config: %w", err)
		return
	}

	m.app.Logger.Info("settings saved", zap.String("export_dir", outputDir), zap.String("log_level", level))
	m.editing = false
	m.err = nil
	m.statusMsg = "Settings saved"
}

func (m *SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)

	if !m.editing {
		if isKey && key.Matches(keyMsg, DefaultKeyMap.Select) {
			return m, m.startEditing()
		}
		return m, nil
	}

	if isKey {
		var cmd tea.Cmd
		switch {
		case key.Matches(keyMsg, DefaultKeyMap.Back):
			m.editing = false
			m.err = nil
			return m, nil
		case key.Matches(keyMsg, DefaultKeyMap.Save):
			m.save()
			return m, nil
		case key.Matches(keyMsg, DefaultKeyMap.NextField):
			m.fieldFocus, cmd = cycleFocus(m.fields, m.fieldFocus, 1)
			return m, cmd
		case key.Matches(keyMsg, DefaultKeyMap.PrevField):
			m.fieldFocus, cmd = cycleFocus(m.fields, m.fieldFocus, -1)
			return m, cmd
		case key.Matches(keyMsg, DefaultKeyMap.Select):
			if m.fieldFocus == settingsFieldCount-1 {
				m.save()
				return m, nil
			}
			m.fieldFocus, cmd = cycleFocus(m.fields, m.fieldFocus, 1)
			return m, cmd
		}
	}

	// Update the focused text input
	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *SettingsModel) View() string {
	var s strings.Builder

	if m.editing {
		s.WriteString(titleStyle.Render("Edit Settings") + "\n\n")
		for i, label := range settingsFieldLabels {
			s.WriteString(renderFormField(label, m.fields[i], i == m.fieldFocus, ""))
		}
		if m.err != nil {
			s.WriteString(errorStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n")
		}
		s.WriteString(helpStyle.Render("  tab/shift+tab: navigate fields  ctrl+s: save  enter: next/save  esc: cancel"))
		return s.String()
	}

	s.WriteString(titleStyle.Render("Settings") + "\n\n")
	if m.statusMsg != "" {
		s.WriteString(successStyle.Render("  "+m.statusMsg) + "\n\n")
	}

	cfg := m.app.Config
	labelStyle := lipgloss.NewStyle().Bold(true).Width(20)
	valueStyle := lipgloss.NewStyle().Foreground(primaryColor)
	row := func(label, value string) {
		s.WriteString(fmt.Sprintf("  %s %s\n", labelStyle.Render(label), valueStyle.Render(value)))
	}

	row("Export Directory:", cfg.Export.OutputDir)
	row("Log File:", cfg.Log.Path)
	row("Log Level:", cfg.Log.Level)
	s.WriteString(subtitleStyle.Render("  log level changes apply on next start") + "\n")

	s.WriteString("\n" + helpStyle.Render("  enter: edit settings"))
	return s.String()
}
