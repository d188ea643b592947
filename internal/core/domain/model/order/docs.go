// Package order provides the central aggregate of the rental fulfillment
// system: the Order with its lifecycle state machine, pricing snapshot,
// required-quantity items, and append-only status history.
//
// The package includes:
//   - Order: the aggregate root; all status mutation goes through its methods
//   - Status: the lifecycle state machine with an explicit transition table
//   - FinancialStatus: the independent billing-state enum
//   - Item: a required-quantity line reconciled by the scan gate
//   - HistoryEntry: one immutable audit row per successful transition
//   - Venue: the event location value object
//
// Key business rules:
//   - Transitions outside the table fail with InvalidTransitionError
//   - Guarded transitions (pricing approval, scan gates, event dates,
//     cancellation reason) fail with GuardNotSatisfiedError until their
//     evidence exists
//   - The final total is derived from the approved base price and margin,
//     decimal-exact to two places, and never editable directly
//   - Cancellation is allowed from every non-terminal status and requires
//     a reason
package order
