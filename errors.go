package pandagraph

import (
	"errors"
	"fmt"
	"strings"
)

// Standard sentinel errors for the recoverable error kinds.
var (
	// ErrInvalidFilterValue is matched by every InvalidFilterValueError.
	ErrInvalidFilterValue = errors.New("pandagraph: invalid filter value")

	// ErrEndpoint is matched by every EndpointError.
	ErrEndpoint = errors.New("pandagraph: endpoint failure")

	// ErrContract is matched by every ContractError.
	ErrContract = errors.New("pandagraph: contract violation")
)

// InvalidFilterValueError is recorded when an entrypoint's discriminant
// filter is outside its supported set. The root that received it yields
// no vertices; the query continues.
type InvalidFilterValueError struct {
	Filter string // Filter name (e.g., "game")
	Value  string // Rejected value, verbatim
}

// Error returns the error string.
func (e *InvalidFilterValueError) Error() string {
	return fmt.Sprintf("pandagraph: invalid value %q for filter %q", e.Value, e.Filter)
}

// Is reports whether the target error matches InvalidFilterValueError.
// This allows errors.Is(err, ErrInvalidFilterValue) to return true.
func (e *InvalidFilterValueError) Is(err error) bool {
	return err == ErrInvalidFilterValue
}

// NewInvalidFilterValueError returns a new InvalidFilterValueError.
func NewInvalidFilterValueError(filter, value string) *InvalidFilterValueError {
	return &InvalidFilterValueError{Filter: filter, Value: value}
}

// IsInvalidFilterValue returns true if the error is an InvalidFilterValueError.
func IsInvalidFilterValue(err error) bool {
	if err == nil {
		return false
	}
	var e *InvalidFilterValueError
	return errors.As(err, &e) || errors.Is(err, ErrInvalidFilterValue)
}

// EndpointError wraps a failed request issued while walking a paged listing.
type EndpointError struct {
	Op  string // Listing operation (e.g., "tournament.matches")
	Err error  // Underlying transport or decode error
}

// Error returns the error string.
func (e *EndpointError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("pandagraph: failed to execute endpoint %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("pandagraph: failed to execute endpoint: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *EndpointError) Unwrap() error {
	return e.Err
}

// Is reports whether the target error matches EndpointError.
func (e *EndpointError) Is(err error) bool {
	return err == ErrEndpoint
}

// NewEndpointError returns a new EndpointError.
func NewEndpointError(op string, err error) *EndpointError {
	return &EndpointError{Op: op, Err: err}
}

// IsEndpointError returns true if the error is an EndpointError.
func IsEndpointError(err error) bool {
	if err == nil {
		return false
	}
	var e *EndpointError
	return errors.As(err, &e) || errors.Is(err, ErrEndpoint)
}

// ContractError describes a call the schema should have made impossible:
// an unknown type, property or edge name, or a vertex whose tag does not
// match the type it was resolved as. It is raised with panic, never
// recorded.
type ContractError struct {
	Msg string
}

// Error returns the error string.
func (e *ContractError) Error() string {
	return "pandagraph: contract violation: " + e.Msg
}

// Is reports whether the target error matches ContractError.
func (e *ContractError) Is(err error) bool {
	return err == ErrContract
}

// Unreachable panics with a ContractError built from the format string.
func Unreachable(format string, args ...any) {
	panic(&ContractError{Msg: fmt.Sprintf(format, args...)})
}

// IsContractError returns true if the error is a ContractError.
func IsContractError(err error) bool {
	if err == nil {
		return false
	}
	var e *ContractError
	return errors.As(err, &e)
}

// AggregateError represents multiple errors collected during a query.
type AggregateError struct {
	Errors []error
}

// Error returns the error string.
func (e *AggregateError) Error() string {
	if len(e.Errors) == 0 {
		return "pandagraph: no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	sb.WriteString("pandagraph: multiple errors:")
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "\n  [%d] %v", i+1, err)
	}
	return sb.String()
}

// Unwrap returns the collected errors so errors.Is and errors.As see
// through the aggregate.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// NewAggregateError returns a new AggregateError if there are errors,
// otherwise returns nil.
func NewAggregateError(errs ...error) error {
	var filtered []error
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &AggregateError{Errors: filtered}
}
