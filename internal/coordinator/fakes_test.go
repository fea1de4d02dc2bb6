package coordinator

import (
	"context"
	"sort"

	"github.com/andy/clientdesk/internal/domain"
)

// fakeView records what the form pushed to it
type fakeView struct {
	input       domain.ClientInput
	set         []domain.ClientInput
	fieldErrors domain.FieldErrors
	errors      []string
	closed      int
	form        *Form
}

func (v *fakeView) Input() domain.ClientInput { return v.input }
func (v *fakeView) SetInput(in domain.ClientInput) { v.set = append(v.set, in); v.input = in }
func (v *fakeView) ShowFieldErrors(errs domain.FieldErrors) { v.fieldErrors = errs }
func (v *fakeView) ShowError(title, message string) { v.errors = append(v.errors, title+": "+message) }
func (v *fakeView) Close() { v.closed++ }
func (v *fakeView) Show(form *Form) { v.form = form }

// fakeStore is an in-memory ClientStore
type fakeStore struct {
	rows      map[int64]*domain.Client
	nextID    int64
	saveErr   error
	removeErr error
	findErr   error
	saves     int
	removes   int
}

func newFakeStore(clients ...*domain.Client) *fakeStore {
	s := &fakeStore{rows: make(map[int64]*domain.Client)}
	for _, c := range clients {
		s.nextID++
		c.ID = s.nextID
		cp := *c
		s.rows[c.ID] = &cp
	}
	return s
}

func (s *fakeStore) SaveOrUpdate(ctx context.Context, c *domain.Client) error {
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	if c.IsNew() {
		s.nextID++
		c.ID = s.nextID
	}
	cp := *c
	s.rows[c.ID] = &cp
	return nil
}

func (s *fakeStore) FindAll(ctx context.Context) ([]*domain.Client, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	out := make([]*domain.Client, 0, len(s.rows))
	for _, c := range s.rows {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *fakeStore) Remove(ctx context.Context, c *domain.Client) error {
	s.removes++
	if s.removeErr != nil {
		return s.removeErr
	}
	delete(s.rows, c.ID)
	return nil
}

// fakeShell answers confirmations with confirmAnswer
type fakeShell struct {
	items         [][]*domain.Client
	alerts        []string
	confirms      []string
	confirmAnswer bool
	dialogs       []*fakeView
	titles        []string
}

func (s *fakeShell) SetItems(clients []*domain.Client) { s.items = append(s.items, clients) }
func (s *fakeShell) ShowError(title, message string) { s.alerts = append(s.alerts, title+": "+message) }

func (s *fakeShell) Confirm(title, message string, onConfirm func()) {
	s.confirms = append(s.confirms, message)
	if s.confirmAnswer {
		onConfirm()
	}
}

func (s *fakeShell) NewFormDialog(title string) FormDialog {
	v := &fakeView{}
	s.titles = append(s.titles, title)
	s.dialogs = append(s.dialogs, v)
	return v
}

func (s *fakeShell) lastItems() []*domain.Client {
	if len(s.items) == 0 {
		return nil
	}
	return s.items[len(s.items)-1]
}

func names(clients []*domain.Client) []string {
	out := make([]string, 0, len(clients))
	for _, c := range clients {
		out = append(out, c.Name)
	}
	return out
}
