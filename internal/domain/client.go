package domain

import (
	"time"
)

// Field names used as keys in FieldErrors.
const (
	FieldName      = "name"
	FieldTelephone = "telephone"
	FieldBirthDate = "birthDate"
	FieldCPF       = "cpf"
)

// Maximum lengths, in characters, of the text fields.
const (
	MaxNameLen      = 70
	MaxTelephoneLen = 60
	MaxCPFLen       = 15
)

// Client is a customer record. ID is 0 until the store assigns one.
type Client struct {
	ID        int64
	Name      string
	Telephone string
	BirthDate time.Time // local midnight
	CPF       string
}

// IsNew returns true if the client has never been persisted
func (c *Client) IsNew() bool {
	return c.ID == 0
}

// Input returns the raw form fields for the client, used to pre-fill an edit form
func (c *Client) Input() ClientInput {
	in := ClientInput{
		ID:        c.ID,
		Name:      c.Name,
		Telephone: c.Telephone,
		CPF:       c.CPF,
	}
	if !c.BirthDate.IsZero() {
		d := c.BirthDate
		in.BirthDate = &d
	}
	return in
}

// LocalMidnight returns midnight in the local time zone of t's calendar date.
func LocalMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

// Date builds a local-midnight date
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}
