package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/andy/clientdesk/internal/app"
	"github.com/andy/clientdesk/internal/coordinator"
	"github.com/andy/clientdesk/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// confirmPrompt is a pending yes/no question
type confirmPrompt struct {
	title     string
	message   string
	onConfirm func()
}

// alertBox is a blocking error notification, dismissed by any key
type alertBox struct {
	title   string
	message string
}

// ClientsModel is the client table screen. It is the presentation shell the
// coordinator.List drives: the table, its dialogs and the form dialog factory.
type ClientsModel struct {
	list  *coordinator.List
	table table.Model

	clients []*domain.Client
	form    *clientForm
	confirm *confirmPrompt
	alert   *alertBox

	loaded    bool
	statusMsg string
}

// NewClientsModel creates a new clients screen
func NewClientsModel(a *app.App) tea.Model {
	return newClientsModel(a.ClientRepo, a.Logger)
}

func newClientsModel(store coordinator.ClientStore, logger *zap.Logger) *ClientsModel {
	m := &ClientsModel{}

	columns := make([]table.Column, len(domain.ClientColumns))
	for i, col := range domain.ClientColumns {
		columns[i] = table.Column{Title: col.Title, Width: col.Width}
	}
	m.table = table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		BorderBottom(true).
		Bold(true)
	styles.Selected = selectedStyle
	m.table.SetStyles(styles)

	m.list = coordinator.NewList(m, logger)
	if store != nil {
		m.list.SetRepository(store)
	}
	return m
}

// IsCapturingInput returns true while a form, confirmation or alert owns the keyboard
func (m *ClientsModel) IsCapturingInput() bool {
	return m.form != nil || m.confirm != nil || m.alert != nil
}

func (m *ClientsModel) Init() tea.Cmd {
	return func() tea.Msg { return RefreshDataMsg{} }
}

// SetItems replaces the rows of the table
func (m *ClientsModel) SetItems(clients []*domain.Client) {
	m.clients = clients

	rows := make([]table.Row, len(clients))
	for i, c := range clients {
		row := make(table.Row, len(domain.ClientColumns))
		for j, col := range domain.ClientColumns {
			row[j] = col.Value(c)
		}
		rows[i] = row
	}
	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

// Confirm shows a yes/no prompt; onConfirm runs only on yes
func (m *ClientsModel) Confirm(title, message string, onConfirm func()) {
	m.confirm = &confirmPrompt{title: title, message: message, onConfirm: onConfirm}
}

// ShowError shows a blocking alert
func (m *ClientsModel) ShowError(title, message string) {
	m.alert = &alertBox{title: title, message: message}
}

// NewFormDialog creates the dialog that hosts a client form
func (m *ClientsModel) NewFormDialog(title string) coordinator.FormDialog {
	return newClientForm(m, title)
}

func (m *ClientsModel) selected() *domain.Client {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.clients) {
		return nil
	}
	return m.clients[idx]
}

// runAction runs the row action of the given kind on the selected client
func (m *ClientsModel) runAction(ctx context.Context, kind coordinator.ActionKind) tea.Cmd {
	c := m.selected()
	if c == nil {
		return nil
	}
	for _, action := range m.list.Actions(c) {
		if action.Kind == kind {
			return fatalOnPrecondition(action.Run(ctx))
		}
	}
	return nil
}

func (m *ClientsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	ctx := context.Background()

	if m.form != nil {
		return m, m.updateForm(ctx, msg)
	}
	if m.confirm != nil {
		return m, m.updateConfirm(msg)
	}

	switch msg := msg.(type) {
	case RefreshDataMsg:
		if err := m.list.Refresh(ctx); err != nil {
			return m, fatalOnPrecondition(err)
		}
		// An empty database on first load goes straight to the new client form
		if !m.loaded {
			m.loaded = true
			if len(m.clients) == 0 {
				return m, fatalOnPrecondition(m.list.New())
			}
		}
		return m, nil

	case tea.KeyMsg:
		if m.alert != nil {
			m.alert = nil
			return m, nil
		}
		m.statusMsg = ""

		// Checked before the table so 'd' removes instead of paging down
		switch {
		case key.Matches(msg, DefaultKeyMap.New):
			return m, fatalOnPrecondition(m.list.New())
		case key.Matches(msg, DefaultKeyMap.Edit), key.Matches(msg, DefaultKeyMap.Select):
			return m, m.runAction(ctx, coordinator.ActionEdit)
		case key.Matches(msg, DefaultKeyMap.Delete):
			return m, m.runAction(ctx, coordinator.ActionRemove)
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ClientsModel) updateForm(ctx context.Context, msg tea.Msg) tea.Cmd {
	f := m.form
	cmd := f.update(ctx, msg)
	if f.closed {
		m.form = nil
		if f.saved != nil {
			m.statusMsg = fmt.Sprintf("Saved %s", f.saved.Name)
		}
	}
	return cmd
}

func (m *ClientsModel) updateConfirm(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(keyMsg, DefaultKeyMap.Confirm):
		c := m.confirm
		m.confirm = nil
		c.onConfirm()
		if m.alert == nil {
			m.statusMsg = "Client removed"
		}
	case key.Matches(keyMsg, DefaultKeyMap.Decline):
		m.confirm = nil
	}
	return nil
}

func (m *ClientsModel) View() string {
	if m.form != nil {
		return m.form.View()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Clients"))
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("  (%d)", len(m.clients))))
	b.WriteString("\n\n")

	if len(m.clients) == 0 {
		b.WriteString(subtitleStyle.Render("  No clients yet. Press n to add one."))
		b.WriteString("\n")
	} else {
		b.WriteString(m.table.View())
		b.WriteString("\n")
	}

	switch {
	case m.alert != nil:
		b.WriteString("\n")
		b.WriteString(alertBoxStyle.Render(
			errorStyle.Bold(true).Render(m.alert.title) + "\n" + m.alert.message + "\n\n" +
				subtitleStyle.Render("press any key")))
		return b.String()
	case m.confirm != nil:
		b.WriteString("\n")
		b.WriteString(confirmBoxStyle.Render(
			lipgloss.NewStyle().Bold(true).Foreground(warningColor).Render(m.confirm.title) + "\n" +
				m.confirm.message + "\n\n" + helpStyle.Render("y: yes  n: no")))
		return b.String()
	}

	if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(successStyle.Render("  " + m.statusMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("  " + m.rowHelp() + "n: new  ↑/↓: navigate"))
	return b.String()
}

// rowHelp lists the actions available on the selected row
func (m *ClientsModel) rowHelp() string {
	c := m.selected()
	if c == nil {
		return ""
	}
	var parts []string
	for _, action := range m.list.Actions(c) {
		binding := DefaultKeyMap.Edit
		if action.Kind == coordinator.ActionRemove {
			binding = DefaultKeyMap.Delete
		}
		parts = append(parts, fmt.Sprintf("%s: %s", binding.Help().Key, strings.ToLower(action.Label)))
	}
	return truncateStr(c.Name, 24) + " > " + strings.Join(parts, "  ") + "  "
}
