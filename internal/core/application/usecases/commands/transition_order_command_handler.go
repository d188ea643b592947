package commands

import (
	"context"
	"time"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/kernel"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/notification"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/order"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/scan"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/services"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/ports"
)

// TransitionOrderCommandHandler moves orders through the lifecycle. Gated
// targets are resolved here: ReadyForDelivery and Closed recompute the scan
// gate from the stored event set inside the same transaction, so a decision
// is never made on stale counts.
type TransitionOrderCommandHandler struct {
	uowFactory TransitionUoWFactory
	reconciler services.ScanReconciler
	dispatcher ports.NotificationDispatcher
}

// NewTransitionOrderCommandHandler creates a handler for lifecycle transitions.
func NewTransitionOrderCommandHandler(
	uowFactory TransitionUoWFactory,
	reconciler services.ScanReconciler,
	dispatcher ports.NotificationDispatcher,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		reconciler: reconciler,
		dispatcher: dispatcher,
	}
}

// Handle processes the transition command and returns the updated aggregate.
// The status update and its audit entry commit atomically; the notification
// is enqueued only after the commit succeeds.
func (h *TransitionOrderCommandHandler) Handle(
	ctx context.Context, cmd TransitionOrderCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ord, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	switch cmd.TargetStatus() {
	case order.Cancelled:
		err = ord.Cancel(cmd.Note(), cmd.ActorID(), now)
	case order.ReadyForDelivery:
		err = h.applyGated(ctx, uow, ord, scan.Outbound)
	case order.Closed:
		err = h.applyGated(ctx, uow, ord, scan.Inbound)
	default:
		err = ord.TransitionTo(cmd.TargetStatus(), now)
	}
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Update(ctx, ord); err != nil {
		return nil, err
	}

	entry, err := order.NewHistoryEntry(kernel.NewUUID(), ord.ID(), ord.Status(), cmd.ActorID(), cmd.Note(), now)
	if err != nil {
		return nil, err
	}
	if err = uow.HistoryRepository().Append(ctx, entry); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.dispatcher.Enqueue(ports.NotificationMessage{
		OrderID:    ord.ID(),
		Type:       notificationTypeFor(ord.Status()),
		Recipients: []string{"client"},
	})

	return ord, nil
}

func (h *TransitionOrderCommandHandler) applyGated(
	ctx context.Context, uow TransitionUoW, ord *order.Order, direction scan.Direction,
) error {
	events, err := uow.ScanRepository().GetAllForOrder(ctx, ord.ID())
	if err != nil {
		return err
	}

	report, err := h.reconciler.Evaluate(ord, events, direction)
	if err != nil {
		return err
	}

	if direction == scan.Outbound {
		return ord.MarkReadyForDelivery(report)
	}
	return ord.Close(report)
}

func notificationTypeFor(status order.Status) notification.Type {
	if status == order.Cancelled {
		return notification.TypeOrderCancelled
	}
	return notification.TypeStatusChanged
}
