package callorder

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes verification errors.
type ErrorCode string

const (
	// ErrCodeNoOutcomes indicates an action was declared with zero outcomes.
	ErrCodeNoOutcomes ErrorCode = "NO_OUTCOMES"

	// ErrCodeNilOutcome indicates an action was declared with a nil outcome.
	ErrCodeNilOutcome ErrorCode = "NIL_OUTCOME"

	// ErrCodeNilAction indicates a nil action was passed to Verify.
	ErrCodeNilAction ErrorCode = "NIL_ACTION"

	// ErrCodeDuplicateAction indicates two actions share a name within one run.
	// Template matching is by action name, so duplicates would make
	// validation ambiguous.
	ErrCodeDuplicateAction ErrorCode = "DUPLICATE_ACTION"

	// ErrCodeRunAborted indicates the run was cut short by something other
	// than the pattern under test, typically context cancellation while
	// awaiting a deferred completion.
	ErrCodeRunAborted ErrorCode = "RUN_ABORTED"
)

// Error is a verification error with structured fields for diagnostics.
//
// Errors of this type are engine faults: they are returned from Verify
// directly and are never folded into a Report.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Action names the offending action, when one is known.
	Action string

	// Scenario is the enumeration index of the affected scenario, or -1
	// when the error is not scenario-specific.
	Scenario int

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Action != "":
		return fmt.Sprintf("%s: %s (action=%s)", e.Code, e.Message, e.Action)
	case e.Scenario >= 0:
		return fmt.Sprintf("%s: %s (scenario=%d)", e.Code, e.Message, e.Scenario)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

// Unwrap returns the underlying cause for errors.Is / errors.As chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsAborted returns true if the error is a run-aborted error.
// Uses errors.As to handle wrapped errors.
func IsAborted(err error) bool {
	var ve *Error
	if errors.As(err, &ve) {
		return ve.Code == ErrCodeRunAborted
	}
	return false
}

// newActionError creates an Error for a declaration problem with an action.
func newActionError(code ErrorCode, action, message string) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		Action:   action,
		Scenario: -1,
	}
}

// newAbortError creates an Error for a run aborted at a specific scenario.
func newAbortError(scenario int, cause error) *Error {
	return &Error{
		Code:     ErrCodeRunAborted,
		Message:  "run aborted before all scenarios completed",
		Scenario: scenario,
		Err:      cause,
	}
}
