package tui

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/andy/clientdesk/internal/coordinator"
	"github.com/andy/clientdesk/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// client form field indices
const (
	formFieldName = iota
	formFieldTelephone
	formFieldBirthDate
	formFieldCPF
	formFieldCount
)

const msgInvalidDate = "invalid date, use dd/mm/yyyy"

var (
	formFieldKeys   = [formFieldCount]string{domain.FieldName, domain.FieldTelephone, domain.FieldBirthDate, domain.FieldCPF}
	formFieldLabels = [formFieldCount]string{"Name:", "Telephone:", "Birth Date (dd/mm/yyyy):", "CPF:"}
)

// clientForm is the modal dialog hosting a coordinator.Form
type clientForm struct {
	screen *ClientsModel
	title  string
	form   *coordinator.Form

	fields      []textinput.Model
	fieldFocus  int
	fieldErrors domain.FieldErrors
	alert       string

	closed bool
	saved  *domain.Client
}

func newClientForm(screen *ClientsModel, title string) *clientForm {
	f := &clientForm{screen: screen, title: title}
	f.fields = make([]textinput.Model, formFieldCount)

	f.fields[formFieldName] = textinput.New()
	f.fields[formFieldName].Placeholder = "Full name"
	f.fields[formFieldName].CharLimit = domain.MaxNameLen
	f.fields[formFieldName].Width = 50

	f.fields[formFieldTelephone] = textinput.New()
	f.fields[formFieldTelephone].Placeholder = domain.TelephoneMask
	f.fields[formFieldTelephone].CharLimit = domain.MaxTelephoneLen
	f.fields[formFieldTelephone].Width = 20

	f.fields[formFieldBirthDate] = textinput.New()
	f.fields[formFieldBirthDate].Placeholder = "dd/mm/yyyy"
	f.fields[formFieldBirthDate].CharLimit = len(domain.DateLayout)
	f.fields[formFieldBirthDate].Width = 12

	f.fields[formFieldCPF] = textinput.New()
	f.fields[formFieldCPF].Placeholder = domain.CPFMask
	f.fields[formFieldCPF].CharLimit = domain.MaxCPFLen
	f.fields[formFieldCPF].Width = 20

	f.fieldFocus = formFieldName
	f.fields[formFieldName].Focus()
	return f
}

// Input returns the raw field values. A birth date that does not parse is reported as unset.
func (f *clientForm) Input() domain.ClientInput {
	in := domain.ClientInput{
		Name:      f.fields[formFieldName].Value(),
		Telephone: f.fields[formFieldTelephone].Value(),
		CPF:       f.fields[formFieldCPF].Value(),
	}
	if v := strings.TrimSpace(f.fields[formFieldBirthDate].Value()); v != "" {
		if d, err := domain.ParseDate(v); err == nil {
			in.BirthDate = &d
		}
	}
	return in
}

func (f *clientForm) SetInput(in domain.ClientInput) {
	f.fields[formFieldName].SetValue(in.Name)
	f.fields[formFieldTelephone].SetValue(in.Telephone)
	f.fields[formFieldCPF].SetValue(in.CPF)
	if in.BirthDate != nil {
		f.fields[formFieldBirthDate].SetValue(domain.FormatDate(*in.BirthDate))
	} else {
		f.fields[formFieldBirthDate].SetValue("")
	}
}

func (f *clientForm) ShowFieldErrors(errs domain.FieldErrors) {
	f.fieldErrors = errs
}

func (f *clientForm) ShowError(title, message string) {
	f.alert = fmt.Sprintf("%s: %s", title, message)
}

func (f *clientForm) Close() {
	f.closed = true
}

// Show makes the dialog the active view of the clients screen
func (f *clientForm) Show(form *coordinator.Form) {
	f.form = form
	f.screen.form = f
}

// errorLabel returns the message under field i, or ""
func (f *clientForm) errorLabel(i int) string {
	field := formFieldKeys[i]
	if !f.fieldErrors.Has(field) {
		return ""
	}
	msg := f.fieldErrors[field]
	if i == formFieldBirthDate && strings.TrimSpace(f.fields[i].Value()) != "" {
		return msgInvalidDate
	}
	return msg
}

// applyMasks formats the masked fields. A field whose formatted value would not fit
// its char limit is left as typed, since SetValue would cut it short.
func (f *clientForm) applyMasks() {
	maskField(&f.fields[formFieldTelephone], domain.TelephoneMask)
	maskField(&f.fields[formFieldCPF], domain.CPFMask)
}

func maskField(input *textinput.Model, mask string) {
	masked := domain.ApplyMask(input.Value(), mask)
	if input.CharLimit > 0 && utf8.RuneCountInString(masked) > input.CharLimit {
		return
	}
	input.SetValue(masked)
}

func (f *clientForm) move(delta int) tea.Cmd {
	f.applyMasks()
	var cmd tea.Cmd
	f.fieldFocus, cmd = cycleFocus(f.fields, f.fieldFocus, delta)
	return cmd
}

func (f *clientForm) save(ctx context.Context) tea.Cmd {
	f.applyMasks()
	f.alert = ""
	err := f.form.Save(ctx)
	if err == nil {
		f.saved = f.form.Client()
	}
	return fatalOnPrecondition(err)
}

func (f *clientForm) update(ctx context.Context, msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, DefaultKeyMap.Back):
			f.form.Cancel()
			return nil
		case key.Matches(keyMsg, DefaultKeyMap.Save):
			return f.save(ctx)
		case key.Matches(keyMsg, DefaultKeyMap.NextField):
			return f.move(1)
		case key.Matches(keyMsg, DefaultKeyMap.PrevField):
			return f.move(-1)
		case key.Matches(keyMsg, DefaultKeyMap.Select):
			if f.fieldFocus == formFieldCount-1 {
				return f.save(ctx)
			}
			return f.move(1)
		}
	}

	// Update the focused text input
	var cmd tea.Cmd
	f.fields[f.fieldFocus], cmd = f.fields[f.fieldFocus].Update(msg)
	return cmd
}

func (f *clientForm) View() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render(f.title) + "\n\n")

	for i, label := range formFieldLabels {
		s.WriteString(renderFormField(label, f.fields[i], i == f.fieldFocus, f.errorLabel(i)))
	}

	if f.alert != "" {
		s.WriteString(errorStyle.Render("  "+f.alert) + "\n\n")
	}

	s.WriteString(helpStyle.Render("  tab/shift+tab: navigate fields  ctrl+s: save  enter: next/save  esc: cancel"))
	return s.String()
}
