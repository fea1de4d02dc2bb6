package domain

import (
	"strconv"
	"time"
)

// DateLayout is the display format for dates (dd/mm/yyyy)
const DateLayout = "02/01/2006"

// Column binds a column identifier to an accessor on Client
type Column struct {
	ID    string
	Title string
	Width int
	Value func(c *Client) string
}

// ClientColumns is the column layout shared by the table view, the CLI listing and exports
var ClientColumns = []Column{
	{ID: "id", Title: "ID", Width: 5, Value: func(c *Client) string { return strconv.FormatInt(c.ID, 10) }},
	{ID: FieldName, Title: "Name", Width: 30, Value: func(c *Client) string { return c.Name }},
	{ID: FieldTelephone, Title: "Telephone", Width: 15, Value: func(c *Client) string { return c.Telephone }},
	{ID: FieldBirthDate, Title: "Birth Date", Width: 11, Value: func(c *Client) string { return FormatDate(c.BirthDate) }},
	{ID: FieldCPF, Title: "CPF", Width: 15, Value: func(c *Client) string { return c.CPF }},
}

// FormatDate renders a date as dd/mm/yyyy, or "" for the zero time
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// ParseDate parses a dd/mm/yyyy date into local midnight
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.Local)
}
