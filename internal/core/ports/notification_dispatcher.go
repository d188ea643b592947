package ports

import (
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/kernel"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/notification"
)

// NotificationMessage is the envelope a business operation hands to the
// dispatcher after its transaction commits.
type NotificationMessage struct {
	OrderID    kernel.UUID
	Type       notification.Type
	Recipients []string
}

// NotificationDispatcher decouples business transitions from delivery.
// Enqueue returns immediately; a worker owns the retry loop and the ledger.
// Callers never learn whether delivery eventually succeeded, by contract:
// notification failure must not fail the transition that produced it.
type NotificationDispatcher interface {
	// Enqueue hands a message to the dispatcher without blocking.
	Enqueue(message NotificationMessage)
}
