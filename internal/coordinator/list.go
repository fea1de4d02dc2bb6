package coordinator

import (
	"context"

	"github.com/andy/clientdesk/internal/domain"
	"github.com/andy/clientdesk/internal/repository"
	"go.uber.org/zap"
)

// Messages shown by the list
const (
	MsgConfirmRemove    = "Are you sure you want to permanently remove this client?"
	MsgClientReferenced = "client is referenced by other records and cannot be removed"
)

// ClientStore is the repository surface used by the client screens
type ClientStore interface {
	ClientSaver
	FindAll(ctx context.Context) ([]*domain.Client, error)
	Remove(ctx context.Context, client *domain.Client) error
}

// ActionKind identifies a per-row action
type ActionKind int

const (
	ActionEdit ActionKind = iota
	ActionRemove
)

// RowAction is an action bound to one row of the table
type RowAction struct {
	Kind  ActionKind
	Label string
	Run   func(ctx context.Context) error
}

// List coordinates the client table
type List struct {
	repo   ClientStore
	shell  ListShell
	items  []*domain.Client
	logger *zap.Logger
}

// NewList creates a list rendered by shell
func NewList(shell ListShell, logger *zap.Logger) *List {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &List{shell: shell, logger: logger}
}

// SetRepository sets the client store
func (l *List) SetRepository(repo ClientStore) {
	l.repo = repo
}

// Items returns the rendered collection
func (l *List) Items() []*domain.Client {
	return l.items
}

// Refresh reloads every client and replaces the rendered collection
func (l *List) Refresh(ctx context.Context) error {
	if l.repo == nil {
		return &PreconditionError{Missing: "repository"}
	}

	clients, err := l.repo.FindAll(ctx)
	if err != nil {
		l.logger.Error("failed to load clients", zap.Error(err))
		l.shell.ShowError("Error loading clients", err.Error())
		return err
	}

	l.items = clients
	l.shell.SetItems(clients)
	return nil
}

// OnDataChanged refreshes the list after a form saved
func (l *List) OnDataChanged(ctx context.Context) {
	_ = l.Refresh(ctx)
}

// New opens a form for a new client
func (l *List) New() error {
	return l.openForm(&domain.Client{}, "New Client")
}

// Edit opens a form pre-populated with client
func (l *List) Edit(client *domain.Client) error {
	return l.openForm(client, "Edit Client")
}

func (l *List) openForm(client *domain.Client, title string) error {
	if l.repo == nil {
		return &PreconditionError{Missing: "repository"}
	}

	dialog := l.shell.NewFormDialog(title)
	form := NewForm(dialog, l.logger)
	form.SetClient(client)
	form.SetRepository(l.repo)
	form.Subscribe(l)
	if err := form.Load(); err != nil {
		return err
	}
	dialog.Show(form)
	return nil
}

// Remove asks for confirmation, then deletes the client and refreshes the list.
// Failures are shown as alerts and leave the list unchanged.
func (l *List) Remove(ctx context.Context, client *domain.Client) error {
	if l.repo == nil {
		return &PreconditionError{Missing: "repository"}
	}

	l.shell.Confirm("Confirmation", MsgConfirmRemove, func() {
		l.remove(ctx, client)
	})
	return nil
}

func (l *List) remove(ctx context.Context, client *domain.Client) {
	log := l.logger.With(zap.Int64("client_id", client.ID))

	err := l.repo.Remove(ctx, client)
	switch {
	case err == nil:
		log.Info("client removed")
		_ = l.Refresh(ctx)
	case repository.IsIntegrity(err):
		log.Warn("client is referenced, not removed", zap.Error(err))
		l.shell.ShowError("Error removing object", MsgClientReferenced)
	default:
		log.Error("failed to remove client", zap.Error(err))
		l.shell.ShowError("Error removing object", err.Error())
	}
}

// Actions returns the edit and remove actions for a row
func (l *List) Actions(client *domain.Client) []RowAction {
	return []RowAction{
		l.action(client, ActionEdit),
		l.action(client, ActionRemove),
	}
}

func (l *List) action(client *domain.Client, kind ActionKind) RowAction {
	switch kind {
	case ActionRemove:
		return RowAction{Kind: kind, Label: "Remove", Run: func(ctx context.Context) error {
			return l.Remove(ctx, client)
		}}
	default:
		return RowAction{Kind: ActionEdit, Label: "Edit", Run: func(ctx context.Context) error {
			return l.Edit(client)
		}}
	}
}

var _ ClientStore = (*repository.ClientRepo)(nil)
