package errors

import "fmt"

// ValidationError wraps a bad input with context about which field was rejected.
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on %s: %v (value: %q)", e.Field, e.Err, e.Value)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError builds a ValidationError for a field and offending value.
func NewValidationError(field, value string, err error) *ValidationError {
	return &ValidationError{Field: field, Value: value, Err: err}
}

// UpstreamError wraps a failure of an external collaborator (traffic fetch, record store).
type UpstreamError struct {
	Collaborator string
	Err          error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s unavailable: %v", e.Collaborator, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Define specific error values for better error handling
var (
	ErrMalformedWeekLabel   = fmt.Errorf("malformed week label")
	ErrDateOutOfRange       = fmt.Errorf("date out of representable range")
	ErrNonPositiveAttention = fmt.Errorf("desired attention must be strictly positive")
	ErrNotConfigured        = fmt.Errorf("no historical configuration for target")
	ErrStoreNotFound        = fmt.Errorf("store not found")
	ErrEmptyReferenceWeeks  = fmt.Errorf("reference week list must not be empty")
	ErrEmptyDayMapping      = fmt.Errorf("day mapping must not be empty")
)
