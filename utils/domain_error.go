package utils

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a DomainError.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "not_found"
	KindConflict   ErrorKind = "conflict"
	KindIntegrity  ErrorKind = "integrity"
)

// DomainError is a business-rule failure that is reported to the caller as a
// field + message pair. The aggregate it concerns is left unmodified.
type DomainError struct {
	Kind    ErrorKind
	Field   string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Kind, e.Field, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func NewValidationError(field, message string) error {
	return &DomainError{Kind: KindValidation, Field: field, Message: message}
}

func NewNotFoundError(field, message string) error {
	return &DomainError{Kind: KindNotFound, Field: field, Message: message}
}

func NewConflictError(field, message string) error {
	return &DomainError{Kind: KindConflict, Field: field, Message: message}
}

// NewIntegrityError reports persisted data that contradicts itself, e.g. an
// availed service pointing at a catalog entry that no longer exists.
func NewIntegrityError(field, message string, cause error) error {
	return &DomainError{Kind: KindIntegrity, Field: field, Message: message, Err: cause}
}

// AsDomainError unwraps err to a *DomainError if there is one in its chain.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// IsKind reports whether err carries a DomainError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	de, ok := AsDomainError(err)
	return ok && de.Kind == kind
}
