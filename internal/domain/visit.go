package domain

import (
	"errors"
	"time"
)

// Visit records a client's attendance on a given day. It references the client row,
// so a client with visits cannot be removed.
type Visit struct {
	ID        int64
	ClientID  int64
	VisitedAt time.Time // local midnight
	Notes     string
}

// NewVisit creates a visit for the client on the given day
func NewVisit(clientID int64, day time.Time, notes string) *Visit {
	return &Visit{
		ClientID:  clientID,
		VisitedAt: LocalMidnight(day),
		Notes:     notes,
	}
}

// Validate returns an error if the visit is invalid
func (v *Visit) Validate() error {
	if v.ClientID <= 0 {
		return errors.New("client ID is required")
	}
	if v.VisitedAt.IsZero() {
		return errors.New("visit date is required")
	}
	return nil
}
