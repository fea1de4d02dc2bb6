package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/andy/clientdesk/internal/db"
	"github.com/andy/clientdesk/internal/domain"
)

const clientColumns = `Id, Name, Telephone, BirthDate, Cpf`

// ClientRepo is a SQLite implementation of ClientRepository
type ClientRepo struct {
	db *db.DB
}

// NewClientRepo creates a new ClientRepo
func NewClientRepo(database *db.DB) *ClientRepo {
	return &ClientRepo{db: database}
}

// Insert inserts a new client and assigns the generated ID.
// The ID is set only after the row is committed.
func (r *ClientRepo) Insert(ctx context.Context, client *domain.Client) error {
	if !client.IsNew() {
		return fmt.Errorf("insert client %d: %w", client.ID, ErrIDAssigned)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("failed to begin transaction", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO client (Name, Telephone, BirthDate, Cpf)
		VALUES (?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, query,
		client.Name,
		client.Telephone,
		formatDate(client.BirthDate),
		client.CPF,
	)
	if err != nil {
		return storageErr("failed to insert client", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return storageErr("failed to get rows affected", err)
	}
	if rows == 0 {
		return &StorageError{Err: ErrNoRowsAffected}
	}

	id, err := result.LastInsertId()
	if err != nil {
		return storageErr("failed to get client ID", err)
	}

	if err := tx.Commit(); err != nil {
		return storageErr("failed to commit client", err)
	}

	client.ID = id
	return nil
}

// Update stores the client's fields in the row with its ID
func (r *ClientRepo) Update(ctx context.Context, client *domain.Client) error {
	if client.IsNew() {
		return fmt.Errorf("update client: %w", ErrIDMissing)
	}

	query := `
		UPDATE client
		SET Name = ?, Telephone = ?, BirthDate = ?, Cpf = ?
		WHERE Id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		client.Name,
		client.Telephone,
		formatDate(client.BirthDate),
		client.CPF,
		client.ID,
	)
	if err != nil {
		return storageErr("failed to update client", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return storageErr("failed to get rows affected", err)
	}
	if rows == 0 {
		return &StorageError{Op: fmt.Sprintf("update client %d", client.ID), Err: ErrNotFound}
	}

	return nil
}

// Remove deletes the client by ID
func (r *ClientRepo) Remove(ctx context.Context, client *domain.Client) error {
	if client.IsNew() {
		return fmt.Errorf("remove client: %w", ErrIDMissing)
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM client WHERE Id = ?`, client.ID)
	if err != nil {
		return storageErr("failed to remove client", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return storageErr("failed to get rows affected", err)
	}
	if rows == 0 {
		return &StorageError{Op: fmt.Sprintf("remove client %d", client.ID), Err: ErrNotFound}
	}

	return nil
}

// FindAll retrieves all clients ordered by name
func (r *ClientRepo) FindAll(ctx context.Context) ([]*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM client ORDER BY Name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, storageErr("failed to list clients", err)
	}
	defer rows.Close()

	clients := make([]*domain.Client, 0)
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}

	if err := rows.Err(); err != nil {
		return nil, storageErr("error iterating clients", err)
	}

	return clients, nil
}

// FindByID retrieves a client by ID. It returns nil, nil if there is none.
func (r *ClientRepo) FindByID(ctx context.Context, id int64) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM client WHERE Id = ?`

	client, err := scanClient(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return client, nil
}

// SaveOrUpdate inserts the client if it is new, otherwise updates it
func (r *ClientRepo) SaveOrUpdate(ctx context.Context, client *domain.Client) error {
	if client.IsNew() {
		return r.Insert(ctx, client)
	}
	return r.Update(ctx, client)
}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanClient(s rowScanner) (*domain.Client, error) {
	client := &domain.Client{}
	var birthDate string

	err := s.Scan(
		&client.ID,
		&client.Name,
		&client.Telephone,
		&birthDate,
		&client.CPF,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, storageErr("failed to scan client", err)
	}

	if client.BirthDate, err = parseDate(birthDate); err != nil {
		return nil, storageErr("failed to parse birth date", err)
	}

	return client, nil
}
