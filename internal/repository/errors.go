package repository

import (
	"errors"
	"fmt"

	sqlite3 "github.com/mutecomm/go-sqlcipher/v4"
)

var (
	// ErrNotFound is wrapped when an update or remove matches no row
	ErrNotFound = errors.New("client not found")
	// ErrIDAssigned is returned when inserting a client that already has an ID
	ErrIDAssigned = errors.New("client already has an ID")
	// ErrIDMissing is returned when updating or removing a client without an ID
	ErrIDMissing = errors.New("client has no ID")
	// ErrNoRowsAffected is wrapped when an insert reports zero affected rows
	ErrNoRowsAffected = errors.New("no rows affected")
)

// StorageError reports a failure of the backing store. Its message is the store's message.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IntegrityError is a StorageError raised when the store rejects a write because
// of a referential-integrity constraint. errors.As matches it as *StorageError too.
type IntegrityError struct {
	*StorageError
}

func (e *IntegrityError) Error() string {
	return e.StorageError.Error()
}

func (e *IntegrityError) Unwrap() error {
	return e.StorageError
}

// IsIntegrity returns true if err is, or wraps, an IntegrityError
func IsIntegrity(err error) bool {
	var ie *IntegrityError
	return errors.As(err, &ie)
}

// storageErr wraps a driver error, promoting foreign-key violations to IntegrityError
func storageErr(op string, err error) error {
	se := &StorageError{Op: op, Err: err}
	if isForeignKeyViolation(err) {
		return &IntegrityError{StorageError: se}
	}
	return se
}

func isForeignKeyViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	return false
}
