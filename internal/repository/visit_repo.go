package repository

import (
	"context"
	"fmt"

	"github.com/andy/clientdesk/internal/db"
	"github.com/andy/clientdesk/internal/domain"
)

// VisitRepo is a SQLite implementation of VisitRepository
type VisitRepo struct {
	db *db.DB
}

// NewVisitRepo creates a new VisitRepo
func NewVisitRepo(database *db.DB) *VisitRepo {
	return &VisitRepo{db: database}
}

// Create inserts a new visit
func (r *VisitRepo) Create(ctx context.Context, visit *domain.Visit) error {
	if err := visit.Validate(); err != nil {
		return fmt.Errorf("invalid visit: %w", err)
	}

	query := `
		INSERT INTO visit (ClientId, VisitedAt, Notes)
		VALUES (?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		visit.ClientID,
		formatDate(visit.VisitedAt),
		visit.Notes,
	)
	if err != nil {
		return storageErr("failed to create visit", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return storageErr("failed to get visit ID", err)
	}

	visit.ID = id
	return nil
}

// ListByClient returns a client's visits, most recent first
func (r *VisitRepo) ListByClient(ctx context.Context, clientID int64) ([]*domain.Visit, error) {
	query := `
		SELECT Id, ClientId, VisitedAt, Notes
		FROM visit
		WHERE ClientId = ?
		ORDER BY VisitedAt DESC, Id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, storageErr("failed to list visits", err)
	}
	defer rows.Close()

	visits := make([]*domain.Visit, 0)
	for rows.Next() {
		v := &domain.Visit{}
		var visitedAt string
		if err := rows.Scan(&v.ID, &v.ClientID, &visitedAt, &v.Notes); err != nil {
			return nil, storageErr("failed to scan visit", err)
		}
		if v.VisitedAt, err = parseDate(visitedAt); err != nil {
			return nil, storageErr("failed to parse visit date", err)
		}
		visits = append(visits, v)
	}

	if err := rows.Err(); err != nil {
		return nil, storageErr("error iterating visits", err)
	}

	return visits, nil
}

// CountByClient returns how many visits reference the client
func (r *VisitRepo) CountByClient(ctx context.Context, clientID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM visit WHERE ClientId = ?`, clientID).Scan(&n)
	if err != nil {
		return 0, storageErr("failed to count visits", err)
	}
	return n, nil
}
