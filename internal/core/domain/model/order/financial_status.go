package order

import (
	"fmt"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/pkg/errs"
)

// FinancialStatus tracks the billing state of an order independently of its
// lifecycle status. The lifecycle machine never reads it except during
// cancellation, where a paid order is marked for refund.
type FinancialStatus int

const (
	// FinancialUnknown represents an invalid or undefined financial status.
	FinancialUnknown FinancialStatus = iota

	// Unbilled means no invoice has been issued yet.
	Unbilled

	// Invoiced means an invoice has been sent to the client.
	Invoiced

	// Paid means the invoice has been settled.
	Paid

	// Refunded means a paid order was cancelled and the payment returned.
	Refunded
)

func getFinancialStatusStrings() map[FinancialStatus]string {
	return map[FinancialStatus]string{
		FinancialUnknown: "Unknown",
		Unbilled:         "Unbilled",
		Invoiced:         "Invoiced",
		Paid:             "Paid",
		Refunded:         "Refunded",
	}
}

// Validate checks that the value is one of the defined financial statuses.
func (s FinancialStatus) Validate() error {
	if _, ok := getFinancialStatusStrings()[s]; !ok || s == FinancialUnknown {
		return errs.NewValueIsInvalidErrorWithCause("financial status is invalid",
			fmt.Errorf("%d is not a valid financial status", s))
	}
	return nil
}

// String returns the human-readable name of the financial status.
func (s FinancialStatus) String() string {
	if str, ok := getFinancialStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
