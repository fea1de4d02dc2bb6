package coordinator

import (
	"context"
	"errors"

	"github.com/andy/clientdesk/internal/domain"
	"github.com/andy/clientdesk/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FormState is the lifecycle state of a Form
type FormState int

const (
	FormEditing FormState = iota
	FormSaving
	FormClosed
)

func (s FormState) String() string {
	switch s {
	case FormEditing:
		return "editing"
	case FormSaving:
		return "saving"
	case FormClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// ErrFormClosed is returned by Save once the form has been saved or cancelled
var ErrFormClosed = errors.New("form is closed")

// ClientSaver persists a client, inserting or updating as needed
type ClientSaver interface {
	SaveOrUpdate(ctx context.Context, client *domain.Client) error
}

// Form coordinates the edit lifecycle of one client
type Form struct {
	entity    *domain.Client
	repo      ClientSaver
	view      FormView
	listeners []DataChangeListener
	state     FormState
	session   string
	logger    *zap.Logger
}

// NewForm creates a form in the Editing state driving view
func NewForm(view FormView, logger *zap.Logger) *Form {
	if logger == nil {
		logger = zap.NewNop()
	}
	session := uuid.NewString()
	return &Form{
		view:    view,
		state:   FormEditing,
		session: session,
		logger:  logger.With(zap.String("form_session", session)),
	}
}

// SetClient sets the entity being edited; a blank client means "new"
func (f *Form) SetClient(c *domain.Client) {
	f.entity = c
}

// SetRepository sets where the client is saved
func (f *Form) SetRepository(repo ClientSaver) {
	f.repo = repo
}

// Subscribe registers a listener notified after each successful save, in registration order
func (f *Form) Subscribe(l DataChangeListener) {
	f.listeners = append(f.listeners, l)
}

// State returns the current lifecycle state
func (f *Form) State() FormState {
	return f.state
}

// Client returns the entity; after a successful save it carries the stored ID
func (f *Form) Client() *domain.Client {
	return f.entity
}

// Load copies the entity into the view
func (f *Form) Load() error {
	if f.entity == nil {
		return &PreconditionError{Missing: "client"}
	}
	f.view.SetInput(f.entity.Input())
	return nil
}

// Save validates the view's input and persists it. Validation failures are shown on
// the field labels and store failures as an alert; in both cases the form stays open
// and the error is returned. On success the listeners are notified and the view closed.
// A form that is already closed returns ErrFormClosed without saving.
func (f *Form) Save(ctx context.Context) error {
	if f.entity == nil {
		return &PreconditionError{Missing: "client"}
	}
	if f.repo == nil {
		return &PreconditionError{Missing: "repository"}
	}
	if f.state != FormEditing {
		return ErrFormClosed
	}

	f.state = FormSaving

	in := f.view.Input()
	in.ID = f.entity.ID

	client, err := domain.Validate(in)
	if err != nil {
		var fieldErrs domain.FieldErrors
		if errors.As(err, &fieldErrs) {
			f.view.ShowFieldErrors(fieldErrs)
		}
		f.logger.Debug("client form invalid", zap.Strings("fields", fieldErrs.Fields()))
		f.state = FormEditing
		return err
	}
	f.view.ShowFieldErrors(nil)

	if err := f.repo.SaveOrUpdate(ctx, client); err != nil {
		f.logger.Error("failed to save client", zap.Int64("client_id", client.ID), zap.Error(err))
		f.view.ShowError("Error saving object", err.Error())
		f.state = FormEditing
		return err
	}

	f.entity = client
	f.state = FormClosed
	f.logger.Info("client saved", zap.Int64("client_id", client.ID), zap.String("name", client.Name))

	for _, l := range f.listeners {
		l.OnDataChanged(ctx)
	}
	f.view.Close()
	return nil
}

// Cancel closes the form without saving or notifying
func (f *Form) Cancel() {
	if f.state == FormClosed {
		return
	}
	f.state = FormClosed
	f.view.Close()
}

var _ ClientSaver = (*repository.ClientRepo)(nil)
