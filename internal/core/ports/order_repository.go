// Package ports defines the contracts between the application core and its
// adapters: repositories, the unit of work, and the notification dispatcher.
package ports

import (
	"context"
	"time"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/kernel"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate. The write is
	// version-checked: when a concurrent writer got there first, Update
	// fails with a ConcurrencyConflictError and nothing is applied.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier, including
	// its items. Soft-deleted orders are not returned.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllInDeliveredStatusWithEventStartDue retrieves orders in Delivered
	// status whose event start date falls on or before the given day. Used by
	// the scheduled trigger runner; the on-or-before comparison catches
	// orders whose start passed while the runner was down.
	GetAllInDeliveredStatusWithEventStartDue(ctx context.Context, day time.Time) ([]*order.Order, error)

	// GetAllInUseStatusWithEventEndDue retrieves orders in InUse status whose
	// event end date falls on or before the given day.
	GetAllInUseStatusWithEventEndDue(ctx context.Context, day time.Time) ([]*order.Order, error)
}
