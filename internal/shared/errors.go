package shared

import (
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
)

// ValidationError reports input that the engine rejects outright. It is
// surfaced to the caller immediately and never partially applied.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for a named field.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// NotFoundError reports a missing entity by kind and identifier.
type NotFoundError struct {
	Entity string
	ID     any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Entity, e.ID)
}

// NewNotFoundError builds a NotFoundError.
func NewNotFoundError(entity string, id any) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsConstraintViolation reports whether err originates from a Postgres
// integrity constraint (SQLSTATE class 23). The services are expected to
// validate before writing, so a constraint hit here indicates a bug in
// the validation path rather than bad user input.
func IsConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return len(pgErr.Code) == 5 && pgErr.Code[:2] == "23"
}

// UserSafeMessage returns a message suitable for API consumers. Internal
// failures collapse to a generic message.
func UserSafeMessage(err error) string {
	if err == nil {
		return ""
	}
	if IsValidation(err) || IsNotFound(err) {
		return err.Error()
	}
	return "internal error"
}
