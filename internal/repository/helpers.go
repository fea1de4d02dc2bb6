package repository

import (
	"time"
)

// dateLayout is how calendar dates are stored in SQLite
const dateLayout = "2006-01-02"

// formatDate formats a date for storage
func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// parseDate parses a stored date as local midnight
func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, time.Local)
}
