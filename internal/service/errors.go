package service

import (
	"errors"
	"fmt"
)

// Service error taxonomy. Callers check these with errors.Is; the API layer
// maps each to one HTTP status code.
var (
	// ErrValidation indicates malformed input. The chain usually also holds a
	// *domain.ValidationError naming the offending field.
	ErrValidation = errors.New("validation failed")

	// ErrConflict indicates a uniqueness violation, such as a taken username.
	ErrConflict = errors.New("resource already exists")

	// ErrAuth is the single error for failed logins. It does not say whether
	// the username or the password was wrong.
	ErrAuth = errors.New("incorrect username or password")

	// ErrNotFound indicates the requested task or tag does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrForbidden indicates the resource exists but belongs to another user.
	ErrForbidden = errors.New("resource is owned by another user")
)

// ServiceError adds the failing operation to an error while keeping the
// chain intact for errors.Is/errors.As.
type ServiceError struct {
	Service   string
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	prefix := fmt.Sprintf("%s service %s failed", e.Service, e.Operation)
	if e.Message != "" {
		prefix += ": " + e.Message
	}
	if e.Err != nil {
		return prefix + ": " + e.Err.Error()
	}
	return prefix
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(service, operation, message string, err error) *ServiceError {
	return &ServiceError{
		Service:   service,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// validationError marks err as a validation failure while keeping the
// domain error reachable.
func validationError(err error) error {
	if errors.Is(err, ErrValidation) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrValidation, err)
}
