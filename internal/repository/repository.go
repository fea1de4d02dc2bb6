package repository

import (
	"context"

	"github.com/andy/clientdesk/internal/domain"
)

// ClientRepository manages client persistence
type ClientRepository interface {
	// Insert stores a new client and sets its generated ID
	Insert(ctx context.Context, client *domain.Client) error
	// Update stores all fields of an existing client, keyed by ID
	Update(ctx context.Context, client *domain.Client) error
	// Remove deletes the client; returns *IntegrityError if other rows reference it
	Remove(ctx context.Context, client *domain.Client) error
	// FindAll returns every client ordered by name
	FindAll(ctx context.Context) ([]*domain.Client, error)
	// FindByID returns nil, nil if no client has the ID
	FindByID(ctx context.Context, id int64) (*domain.Client, error)
	// SaveOrUpdate inserts new clients and updates existing ones
	SaveOrUpdate(ctx context.Context, client *domain.Client) error
}

// VisitRepository manages visit persistence
type VisitRepository interface {
	Create(ctx context.Context, visit *domain.Visit) error
	ListByClient(ctx context.Context, clientID int64) ([]*domain.Visit, error)
	CountByClient(ctx context.Context, clientID int64) (int, error)
}
