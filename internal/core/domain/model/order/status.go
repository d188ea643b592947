package order

import (
	"fmt"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/pkg/errs"
)

// Status represents the lifecycle state of a rental order.
// It implements a state machine with an explicit allowed-transition table so
// that illegal transitions are rejected uniformly, independent of the caller.
//
// Happy path:
//
//	Draft -> Submitted -> PricingReview -> PendingApproval -> Quoted ->
//	Confirmed -> [AwaitingFabrication ->] InPreparation -> ReadyForDelivery ->
//	InTransit -> Delivered -> InUse -> AwaitingReturn -> Closed
//
// Terminal exits: Declined (from Quoted only) and Cancelled (from any
// non-terminal status).
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Draft is the initial status when a client creates an order.
	Draft

	// Submitted indicates the client has handed the order over for pricing.
	Submitted

	// PricingReview indicates the order is with the first-line operations
	// reviewer for price adjustment.
	PricingReview

	// PendingApproval indicates an adjusted price awaits final margin approval.
	PendingApproval

	// Quoted indicates the final price has been approved and sent to the client.
	Quoted

	// Confirmed indicates the client accepted the quote.
	Confirmed

	// AwaitingFabrication indicates custom assets must be produced before
	// preparation can start. Optional step after Confirmed.
	AwaitingFabrication

	// InPreparation indicates warehouse staff are picking and scanning items.
	InPreparation

	// ReadyForDelivery indicates all required units have been scanned outbound.
	ReadyForDelivery

	// InTransit indicates the order left the warehouse.
	InTransit

	// Delivered indicates the order arrived at the venue.
	Delivered

	// InUse indicates the event has started and the assets are in use.
	InUse

	// AwaitingReturn indicates the event has ended and assets await pickup.
	AwaitingReturn

	// Closed indicates all assets were scanned back in. Terminal.
	Closed

	// Declined indicates the client rejected the quote. Terminal.
	Declined

	// Cancelled indicates the order was cancelled before completion. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:             "Unknown",
		Draft:               "Draft",
		Submitted:           "Submitted",
		PricingReview:       "PricingReview",
		PendingApproval:     "PendingApproval",
		Quoted:              "Quoted",
		Confirmed:           "Confirmed",
		AwaitingFabrication: "AwaitingFabrication",
		InPreparation:       "InPreparation",
		ReadyForDelivery:    "ReadyForDelivery",
		InTransit:           "InTransit",
		Delivered:           "Delivered",
		InUse:               "InUse",
		AwaitingReturn:      "AwaitingReturn",
		Closed:              "Closed",
		Declined:            "Declined",
		Cancelled:           "Cancelled",
	}
}

// getTransitions returns the allowed-transition table. Cancellation is handled
// separately via CanCancel so the table stays readable; every entry here is a
// forward move of the lifecycle.
func getTransitions() map[Status][]Status {
	return map[Status][]Status{
		Draft:               {Submitted},
		Submitted:           {PricingReview},
		PricingReview:       {PendingApproval},
		PendingApproval:     {Quoted},
		Quoted:              {Confirmed, Declined},
		Confirmed:           {AwaitingFabrication, InPreparation},
		AwaitingFabrication: {InPreparation},
		InPreparation:       {ReadyForDelivery},
		ReadyForDelivery:    {InTransit},
		InTransit:           {Delivered},
		Delivered:           {InUse},
		InUse:               {AwaitingReturn},
		AwaitingReturn:      {Closed},
	}
}

// Validate checks that the Status value is one of the defined lifecycle
// statuses. Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Returns "Unknown" for invalid values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StatusFromString parses the status name used on the API surface.
func StatusFromString(name string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == name && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid status", name))
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Closed || s == Declined || s == Cancelled
}

// CanCancel reports whether an order in this status may be cancelled.
// Cancellation is allowed from every valid non-terminal status, including
// AwaitingReturn; post-delivery cancellation is intentional and its billing
// consequences are settled outside this system.
func (s Status) CanCancel() bool {
	return s.Validate() == nil && !s.IsTerminal()
}

// CanTransitionTo reports whether the allowed-transition table permits moving
// from s to target. Cancellation is included.
func (s Status) CanTransitionTo(target Status) bool {
	if target == Cancelled {
		return s.CanCancel()
	}
	for _, allowed := range getTransitions()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo returns the target status when the transition is legal, or an
// InvalidTransitionError describing the rejected pair. Guards beyond the
// table (scan gates, approvals, dates) are enforced by the Order aggregate.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return 0, err
	}
	if !s.CanTransitionTo(target) {
		return 0, NewInvalidTransitionError(s, target)
	}
	return target, nil
}
