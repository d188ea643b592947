package ports

import (
	"context"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/kernel"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/notification"
)

// NotificationRepository defines the persistence contract for the delivery
// attempt ledger. The ledger is written by the dispatcher worker outside the
// business transaction that triggered the notification.
type NotificationRepository interface {
	// Add persists a new ledger record.
	Add(ctx context.Context, record *notification.Record) error

	// Update persists attempt-state changes to an existing record.
	Update(ctx context.Context, record *notification.Record) error

	// Get retrieves a ledger record by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*notification.Record, error)

	// GetAllUnfinished retrieves records in Pending or Retrying status, in
	// insertion order. Used by the requeue job to recover messages stranded
	// by a crash.
	GetAllUnfinished(ctx context.Context) ([]*notification.Record, error)
}
