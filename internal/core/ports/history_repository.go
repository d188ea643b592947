package ports

import (
	"context"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/kernel"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/order"
)

// HistoryRepository defines the persistence contract for the append-only
// status audit log. Append runs in the same transaction as the status update
// it records; entries are never mutated.
type HistoryRepository interface {
	// Append persists one audit entry.
	Append(ctx context.Context, entry *order.HistoryEntry) error

	// GetAllForOrder retrieves the order's audit entries in insertion order.
	GetAllForOrder(ctx context.Context, orderID kernel.UUID) ([]*order.HistoryEntry, error)
}
