package services

import (
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/order"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/scan"
)

// ScanReconciler is a domain service that computes whether an order's scan
// events satisfy its required item quantities for a given direction.
//
// The computation is a pure summation: required = sum of item quantities,
// scanned = sum of event quantities of the matching direction. The gate is
// satisfied when scanned >= required. Because events are append-only, the
// result is always recomputed on demand and a satisfied gate can never
// regress to unsatisfied.
//
// Example usage:
//
//	reconciler := services.NewScanReconciler()
//	report, err := reconciler.Evaluate(ord, events, scan.Outbound)
//	if err != nil {
//	    return err
//	}
//	if !report.Satisfied() {
//	    // report.Shortfall() units still need scanning
//	}
type ScanReconciler struct{}

// NewScanReconciler creates a new ScanReconciler instance.
func NewScanReconciler() ScanReconciler {
	return ScanReconciler{}
}

// Evaluate reconciles the order's required quantities against the given scan
// events for one direction. Events belonging to other orders or other
// directions are ignored, so callers may pass an unfiltered set.
func (r ScanReconciler) Evaluate(ord *order.Order, events []*scan.Event, direction scan.Direction) (scan.Report, error) {
	if err := ord.Validate(); err != nil {
		return scan.Report{}, err
	}
	if err := direction.Validate(); err != nil {
		return scan.Report{}, err
	}

	scanned := 0
	for _, event := range events {
		if err := event.Validate(); err != nil {
			return scan.Report{}, err
		}
		if event.Direction() != direction {
			continue
		}
		if !event.OrderID().IsEqual(ord.ID()) {
			continue
		}
		scanned += event.Quantity()
	}

	return scan.Report{
		Direction: direction,
		Required:  ord.RequiredQuantity(),
		Scanned:   scanned,
	}, nil
}
