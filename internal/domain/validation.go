package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"
)

// Validation messages
const (
	MsgRequired = "required"
)

// ClientInput holds the raw values collected from a form.
// BirthDate is nil when no date was selected.
type ClientInput struct {
	ID        int64
	Name      string
	Telephone string
	BirthDate *time.Time
	CPF       string
}

// FieldErrors maps a field name to a message. A non-empty set means the input is invalid.
type FieldErrors map[string]string

// Error implements error
func (fe FieldErrors) Error() string {
	fields := fe.Fields()
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, fe[f]))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Fields returns the invalid field names in sorted order
func (fe FieldErrors) Fields() []string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Has returns true if the field has an error
func (fe FieldErrors) Has(field string) bool {
	_, ok := fe[field]
	return ok
}

// Validate checks every field of the input and returns a fully populated client,
// or FieldErrors listing each invalid field. All fields are checked even after a failure.
func Validate(in ClientInput) (*Client, error) {
	errs := FieldErrors{}

	checkText(errs, FieldName, in.Name, MaxNameLen)
	checkText(errs, FieldTelephone, in.Telephone, MaxTelephoneLen)
	checkText(errs, FieldCPF, in.CPF, MaxCPFLen)

	var birthDate time.Time
	if in.BirthDate == nil {
		errs[FieldBirthDate] = MsgRequired
	} else {
		birthDate = LocalMidnight(*in.BirthDate)
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return &Client{
		ID:        in.ID,
		Name:      in.Name,
		Telephone: in.Telephone,
		BirthDate: birthDate,
		CPF:       in.CPF,
	}, nil
}

func checkText(errs FieldErrors, field, value string, maxLen int) {
	if strings.TrimSpace(value) == "" {
		errs[field] = MsgRequired
		return
	}
	if utf8.RuneCountInString(value) > maxLen {
		errs[field] = fmt.Sprintf("must be at most %d characters", maxLen)
	}
}
