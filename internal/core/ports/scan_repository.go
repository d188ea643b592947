package ports

import (
	"context"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/kernel"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/scan"
)

// ScanRepository defines the persistence contract for the append-only scan
// event set. There is no update or delete: the gate is recomputed by
// summation over the full set.
type ScanRepository interface {
	// Add appends a scan event.
	Add(ctx context.Context, event *scan.Event) error

	// GetAllForOrder retrieves every scan event recorded against the order,
	// both directions, in insertion order.
	GetAllForOrder(ctx context.Context, orderID kernel.UUID) ([]*scan.Event, error)
}
