package order

import (
	"errors"
	"fmt"
)

// Sentinel errors for classifying transition failures with errors.Is.
var (
	// ErrInvalidTransition indicates the (current, target) status pair is not
	// in the allowed-transition table.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrGuardNotSatisfied indicates the transition is in the table but a
	// precondition (scan gate, pricing approval, event date) is unmet.
	ErrGuardNotSatisfied = errors.New("transition guard not satisfied")
)

// InvalidTransitionError reports a transition rejected by the status table.
// Carries both statuses so callers can surface the pair to the client.
type InvalidTransitionError struct {
	From Status
	To   Status
}

// NewInvalidTransitionError creates an InvalidTransitionError for the pair.
func NewInvalidTransitionError(from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s is not allowed", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// GuardNotSatisfiedError reports a legal transition blocked by an unmet
// precondition. Detail is machine-readable shortfall information suitable for
// returning to the caller.
type GuardNotSatisfiedError struct {
	From   Status
	To     Status
	Detail string
}

// NewGuardNotSatisfiedError creates a GuardNotSatisfiedError with shortfall detail.
func NewGuardNotSatisfiedError(from, to Status, detail string) *GuardNotSatisfiedError {
	return &GuardNotSatisfiedError{From: from, To: to, Detail: detail}
}

func (e *GuardNotSatisfiedError) Error() string {
	return fmt.Sprintf("%s: %s -> %s: %s", ErrGuardNotSatisfied, e.From, e.To, e.Detail)
}

func (e *GuardNotSatisfiedError) Unwrap() error {
	return ErrGuardNotSatisfied
}
