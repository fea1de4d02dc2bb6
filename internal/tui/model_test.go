package tui

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/andy/clientdesk/internal/app"
	"github.com/andy/clientdesk/internal/config"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestApp(t *testing.T) *app.App {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	cfg := &config.Config{
		Database: config.DatabaseConfig{Path: filepath.Join(dir, "data", "clientdesk.db")},
		Log:      config.LogConfig{Path: filepath.Join(dir, "logs", "clientdesk.log"), Level: "info"},
		Export:   config.ExportConfig{OutputDir: filepath.Join(dir, "exports")},
	}
	a, err := app.Open(context.Background(), cfg, "test-password")
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(Model)
	require.True(t, ok)
	return mm, cmd
}

func TestModel_FirstRunCapturesGlobalKeys(t *testing.T) {
	m := New(openTestApp(t))
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = update(t, m, RefreshDataMsg{})

	clients := m.clients.(*ClientsModel)
	require.NotNil(t, clients.form, "empty database opens the new client form")

	// 'q' is typed into the name field instead of quitting
	m, _ = update(t, m, keyRunes("q"))
	assert.Equal(t, "q", clients.form.fields[formFieldName].Value())
	assert.Equal(t, ScreenClients, m.currentScreen)
	assert.Contains(t, m.View(), "New Client")
}

func TestModel_Navigation(t *testing.T) {
	m := New(openTestApp(t))
	m, _ = update(t, m, RefreshDataMsg{})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	m, _ = update(t, m, keyRunes(","))
	assert.Equal(t, ScreenSettings, m.currentScreen)

	m, cmd := update(t, m, keyRunes("a"))
	assert.Equal(t, ScreenAbout, m.currentScreen)
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	assert.Equal(t, 2, m.about.(*AboutModel).schemaVersion)

	m, cmd = update(t, m, keyRunes("c"))
	assert.Equal(t, ScreenClients, m.currentScreen)
	require.NotNil(t, cmd)
	_, ok := cmd().(RefreshDataMsg)
	assert.True(t, ok)

	_, cmd = update(t, m, keyRunes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestModel_FatalQuits(t *testing.T) {
	m := New(openTestApp(t))
	boom := errors.New("repository was not set")

	m, cmd := update(t, m, FatalMsg{Err: boom})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, boom, m.fatal)
}

func TestSettings_EditAndSave(t *testing.T) {
	a := openTestApp(t)
	s := NewSettingsModel(a).(*SettingsModel)

	s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, s.IsCapturingInput())

	s.fields[settingsFieldLogLevel].SetValue("loud")
	s.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.True(t, s.IsCapturingInput())
	assert.ErrorContains(t, s.err, "log level")

	s.fields[settingsFieldLogLevel].SetValue("DEBUG")
	s.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NoError(t, s.err)
	assert.False(t, s.IsCapturingInput())
	assert.Equal(t, "debug", a.Config.Log.Level)
	assert.FileExists(t, config.DefaultConfigPath())
}

func TestModel_KeyDismissesAlertWithoutGlobalAction(t *testing.T) {
	m := New(openTestApp(t))
	m, _ = update(t, m, RefreshDataMsg{})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	clients := m.clients.(*ClientsModel)
	for _, k := range []string{"q", ",", "a", "c"} {
		clients.ShowError("Error removing object", "client is referenced")

		var cmd tea.Cmd
		m, cmd = update(t, m, keyRunes(k))
		if cmd != nil {
			assert.NotEqual(t, tea.QuitMsg{}, cmd(), "key %q", k)
		}
		assert.Nil(t, clients.alert, "key %q", k)
		assert.Equal(t, ScreenClients, m.currentScreen, "key %q", k)
	}
}
