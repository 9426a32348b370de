package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel failures the API layer maps to response classes. Absence of a
// domain mapping or a credential row is a normal outcome for lookups; these
// errors only surface when an operation cannot proceed without one.
var (
	// ErrMissingCredential: no active credential exists for the resolved tenant.
	ErrMissingCredential = errors.New("no active credential for shop")

	// ErrInvalidCredential: the upstream platform rejected the stored
	// credential (revoked or insufficient scope). Distinct from
	// ErrMissingCredential so callers can trigger re-authorization.
	ErrInvalidCredential = errors.New("credential rejected by upstream")

	// ErrNotFound: the resolved tenant has no matching product.
	ErrNotFound = errors.New("product not found")

	// ErrDomainNotResolved: no alias or credential match for the input domain.
	ErrDomainNotResolved = errors.New("domain could not be resolved")
)

// RemoteQueryError carries the aggregated query-level error messages reported
// by the upstream platform. The connection succeeded; the query did not.
type RemoteQueryError struct {
	Messages []string
}

func (e *RemoteQueryError) Error() string {
	return "upstream query error: " + strings.Join(e.Messages, ", ")
}

// ValidationError reports a missing or malformed request field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request: %s %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for a field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
