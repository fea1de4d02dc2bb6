package coordinator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/andy/clientdesk/internal/domain"
	"github.com/andy/clientdesk/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func client(name string) *domain.Client {
	return &domain.Client{Name: name, Telephone: "1", BirthDate: domain.Date(1990, time.January, 2), CPF: "2"}
}

func newTestList(shell *fakeShell, store *fakeStore) *List {
	l := NewList(shell, zap.NewNop())
	l.SetRepository(store)
	return l
}

func TestList_RefreshReplacesItems(t *testing.T) {
	shell := &fakeShell{}
	store := newFakeStore(client("Bob"), client("Ana"))
	l := newTestList(shell, store)

	require.NoError(t, l.Refresh(context.Background()))
	assert.Equal(t, []string{"Ana", "Bob"}, names(shell.lastItems()))
	assert.Equal(t, []string{"Ana", "Bob"}, names(l.Items()))
}

func TestList_RefreshFailureShowsAlert(t *testing.T) {
	shell := &fakeShell{}
	store := newFakeStore()
	store.findErr = errors.New("database is locked")
	l := newTestList(shell, store)

	assert.Error(t, l.Refresh(context.Background()))
	assert.Equal(t, []string{"Error loading clients: database is locked"}, shell.alerts)
	assert.Empty(t, shell.items)
}

func TestList_RequiresRepository(t *testing.T) {
	l := NewList(&fakeShell{}, nil)

	var pe *PreconditionError
	assert.True(t, errors.As(l.Refresh(context.Background()), &pe))
	assert.True(t, errors.As(l.New(), &pe))
	assert.True(t, errors.As(l.Remove(context.Background(), client("x")), &pe))
}

func TestList_NewSaveRefreshes(t *testing.T) {
	ctx := context.Background()
	shell := &fakeShell{}
	store := newFakeStore(client("Bob"))
	l := newTestList(shell, store)
	require.NoError(t, l.Refresh(ctx))

	require.NoError(t, l.New())
	require.Len(t, shell.dialogs, 1)
	assert.Equal(t, "New Client", shell.titles[0])

	dialog := shell.dialogs[0]
	require.NotNil(t, dialog.form, "dialog must be shown with its form")
	require.Len(t, dialog.set, 1)
	assert.Nil(t, dialog.set[0].BirthDate)

	dialog.input = validInput()
	require.NoError(t, dialog.form.Save(ctx))

	assert.Equal(t, []string{"Ana", "Bob"}, names(shell.lastItems()))
	assert.Len(t, shell.items, 2)
}

func TestList_EditPrefillsAndRefreshes(t *testing.T) {
	ctx := context.Background()
	shell := &fakeShell{}
	store := newFakeStore(client("Bob"))
	l := newTestList(shell, store)
	require.NoError(t, l.Refresh(ctx))

	row := l.Items()[0]
	require.NoError(t, l.Edit(row))
	dialog := shell.dialogs[0]
	assert.Equal(t, "Edit Client", shell.titles[0])
	assert.Equal(t, "Bob", dialog.set[0].Name)

	dialog.input.Name = "Roberto"
	require.NoError(t, dialog.form.Save(ctx))

	assert.Equal(t, []string{"Roberto"}, names(shell.lastItems()))
	assert.Equal(t, row.ID, shell.lastItems()[0].ID)
}

func TestList_EditCancelDoesNotRefresh(t *testing.T) {
	ctx := context.Background()
	shell := &fakeShell{}
	l := newTestList(shell, newFakeStore(client("Bob")))
	require.NoError(t, l.Refresh(ctx))

	require.NoError(t, l.Edit(l.Items()[0]))
	shell.dialogs[0].form.Cancel()

	assert.Len(t, shell.items, 1)
	assert.Equal(t, 1, shell.dialogs[0].closed)
}

func TestList_RemoveConfirmed(t *testing.T) {
	ctx := context.Background()
	shell := &fakeShell{confirmAnswer: true}
	store := newFakeStore(client("Ana"), client("Bob"))
	l := newTestList(shell, store)
	require.NoError(t, l.Refresh(ctx))

	require.NoError(t, l.Remove(ctx, l.Items()[0]))

	assert.Equal(t, []string{MsgConfirmRemove}, shell.confirms)
	assert.Equal(t, []string{"Bob"}, names(shell.lastItems()))
	assert.Empty(t, shell.alerts)
}

func TestList_RemoveDeclined(t *testing.T) {
	ctx := context.Background()
	shell := &fakeShell{confirmAnswer: false}
	store := newFakeStore(client("Ana"))
	l := newTestList(shell, store)
	require.NoError(t, l.Refresh(ctx))

	require.NoError(t, l.Remove(ctx, l.Items()[0]))

	assert.Equal(t, 0, store.removes)
	assert.Len(t, shell.items, 1)
}

func TestList_RemoveReferencedClient(t *testing.T) {
	ctx := context.Background()
	shell := &fakeShell{confirmAnswer: true}
	store := newFakeStore(client("Ana"))
	store.removeErr = &repository.IntegrityError{StorageError: &repository.StorageError{
		Op:  "failed to remove client",
		Err: errors.New("FOREIGN KEY constraint failed"),
	}}
	l := newTestList(shell, store)
	require.NoError(t, l.Refresh(ctx))

	require.NoError(t, l.Remove(ctx, l.Items()[0]))

	assert.Equal(t, []string{"Error removing object: " + MsgClientReferenced}, shell.alerts)
	assert.Len(t, shell.items, 1, "list must not be refreshed on failure")
	assert.Equal(t, []string{"Ana"}, names(l.Items()))
}

func TestList_RemoveStorageFailure(t *testing.T) {
	ctx := context.Background()
	shell := &fakeShell{confirmAnswer: true}
	store := newFakeStore(client("Ana"))
	store.removeErr = &repository.StorageError{Op: "failed to remove client", Err: errors.New("disk full")}
	l := newTestList(shell, store)
	require.NoError(t, l.Refresh(ctx))

	require.NoError(t, l.Remove(ctx, l.Items()[0]))
	assert.Equal(t, []string{"Error removing object: failed to remove client: disk full"}, shell.alerts)
	assert.Len(t, shell.items, 1)
}

func TestList_Actions(t *testing.T) {
	ctx := context.Background()
	shell := &fakeShell{confirmAnswer: true}
	store := newFakeStore(client("Ana"))
	l := newTestList(shell, store)
	require.NoError(t, l.Refresh(ctx))
	row := l.Items()[0]

	actions := l.Actions(row)
	require.Len(t, actions, 2)
	assert.Equal(t, ActionEdit, actions[0].Kind)
	assert.Equal(t, "Edit", actions[0].Label)
	assert.Equal(t, ActionRemove, actions[1].Kind)
	assert.Equal(t, "Remove", actions[1].Label)

	require.NoError(t, actions[0].Run(ctx))
	require.Len(t, shell.dialogs, 1)
	assert.Equal(t, "Ana", shell.dialogs[0].set[0].Name)

	require.NoError(t, actions[1].Run(ctx))
	assert.Empty(t, store.rows)
	assert.Empty(t, shell.lastItems())
}
