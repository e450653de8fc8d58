// Package services defines the business logic for clients, legal actions,
// payments, balances, and backup/restore. This file centralizes the typed
// errors returned by service methods so callers can tell failure classes
// apart with errors.As.
//
// Translation into user-facing messages or HTTP status codes is performed at
// the handler layer.
package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/juris-ledger/internal/domain"
)

// ValidationError reports a missing, empty or malformed input field. It is
// always raised before any storage mutation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ConstraintError reports a uniqueness or referential invariant rejected by
// the database. Constraint names the invariant, e.g. "clients.tax_id".
type ConstraintError struct {
	Constraint string
	Err        error
}

func (e *ConstraintError) Error() string {
	if e.Err == nil {
		return "constraint violated: " + e.Constraint
	}
	return fmt.Sprintf("constraint violated: %s: %v", e.Constraint, e.Err)
}

func (e *ConstraintError) Unwrap() error { return e.Err }

// FormatError reports a malformed backup snapshot.
type FormatError = domain.FormatError

// RestoreError reports a failure during the transactional replace phase of
// a restore. The transaction has been rolled back when it is returned.
type RestoreError struct {
	Err error
}

func (e *RestoreError) Error() string { return "restore failed: " + e.Err.Error() }

func (e *RestoreError) Unwrap() error { return e.Err }

// StorageError wraps an unexpected failure of the persistence layer.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *StorageError) Unwrap() error { return e.Err }

// translate maps a raw repository error onto the service error taxonomy.
// constraints names the invariant to report for each violation class.
func translate(op string, err error, constraints violationNames) error {
	if err == nil {
		return nil
	}
	switch {
	case isDuplicate(err) && constraints.unique != "":
		return &ConstraintError{Constraint: constraints.unique, Err: err}
	case isForeignKey(err) && constraints.foreignKey != "":
		return &ConstraintError{Constraint: constraints.foreignKey, Err: err}
	case isCheck(err) && constraints.check != "":
		return &ConstraintError{Constraint: constraints.check, Err: err}
	}
	return &StorageError{Op: op, Err: err}
}

// violationNames labels the constraint behind each violation class.
type violationNames struct {
	unique     string
	foreignKey string
	check      string
}

// isDuplicate detects unique violations for SQLite and Postgres, with or
// without GORM's error translation.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

func isForeignKey(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint")
}

func isCheck(err error) bool {
	if errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "check constraint")
}
