package coordinator

import (
	"context"
	"fmt"

	"github.com/andy/clientdesk/internal/domain"
)

// DataChangeListener is notified after a form saves successfully
type DataChangeListener interface {
	OnDataChanged(ctx context.Context)
}

// DataChangeFunc adapts a function to DataChangeListener
type DataChangeFunc func(ctx context.Context)

func (f DataChangeFunc) OnDataChanged(ctx context.Context) {
	f(ctx)
}

// FormView is the presentation side of a client form: field widgets, error labels,
// an alert line and the dialog itself.
type FormView interface {
	// Input returns the raw field values. BirthDate is nil when no date is selected.
	Input() domain.ClientInput
	// SetInput fills the field widgets
	SetInput(in domain.ClientInput)
	// ShowFieldErrors sets each error label; labels of fields not in errs are cleared
	ShowFieldErrors(errs domain.FieldErrors)
	// ShowError displays a non-blocking error notification
	ShowError(title, message string)
	// Close disposes of the dialog
	Close()
}

// FormDialog is a modal dialog hosting a Form
type FormDialog interface {
	FormView
	// Show displays the dialog; key presses are routed to form
	Show(form *Form)
}

// TableView renders a replaceable collection of clients
type TableView interface {
	SetItems(clients []*domain.Client)
}

// Dialogs are the confirmation and alert primitives of the shell
type Dialogs interface {
	// Confirm asks a yes/no question and calls onConfirm only on yes
	Confirm(title, message string, onConfirm func())
	// ShowError displays a blocking alert
	ShowError(title, message string)
}

// ListShell is everything the List needs from the presentation layer
type ListShell interface {
	TableView
	Dialogs
	NewFormDialog(title string) FormDialog
}

// PreconditionError reports a collaborator that was not configured before use.
// It is a programming error: callers should abort rather than recover.
type PreconditionError struct {
	Missing string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s was not set", e.Missing)
}
