package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/kernel"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/notification"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/order"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/ports"
)

// RunScheduledTransitionsCommandHandler advances orders whose transitions
// are triggered by the calendar rather than by a user: Delivered orders move
// to InUse when the event starts, InUse orders move to AwaitingReturn when
// it ends. Each order runs in its own transaction so one conflicting or
// corrupt order cannot block the rest of the batch. The runner is idempotent:
// a rerun finds the already-moved orders out of the source status and skips
// them.
type RunScheduledTransitionsCommandHandler struct {
	uowFactory TransitionUoWFactory
	dispatcher ports.NotificationDispatcher
	logger     *slog.Logger
}

// NewRunScheduledTransitionsCommandHandler creates the scheduled runner.
func NewRunScheduledTransitionsCommandHandler(
	uowFactory TransitionUoWFactory,
	dispatcher ports.NotificationDispatcher,
	logger *slog.Logger,
) RunScheduledTransitionsCommandHandler {
	return RunScheduledTransitionsCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Handle runs both sweeps against the given time and returns the number of
// orders moved. Per-order failures are logged and skipped, not returned.
func (h *RunScheduledTransitionsCommandHandler) Handle(ctx context.Context, now time.Time) (int, error) {
	moved := 0

	due, err := h.collectDue(ctx, now, order.InUse)
	if err != nil {
		return moved, err
	}
	for _, id := range due {
		if h.advance(ctx, id, order.InUse, now) {
			moved++
		}
	}

	due, err = h.collectDue(ctx, now, order.AwaitingReturn)
	if err != nil {
		return moved, err
	}
	for _, id := range due {
		if h.advance(ctx, id, order.AwaitingReturn, now) {
			moved++
		}
	}

	return moved, nil
}

// collectDue reads the candidate order IDs in a short read-only transaction.
// Only IDs are carried out; each advance re-reads the order inside its own
// transaction to avoid acting on a stale snapshot.
func (h *RunScheduledTransitionsCommandHandler) collectDue(
	ctx context.Context, now time.Time, target order.Status,
) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	var (
		orders []*order.Order
		err    error
	)
	if target == order.InUse {
		orders, err = uow.OrderRepository().GetAllInDeliveredStatusWithEventStartDue(ctx, now)
	} else {
		orders, err = uow.OrderRepository().GetAllInUseStatusWithEventEndDue(ctx, now)
	}
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(orders))
	for _, ord := range orders {
		ids = append(ids, ord.ID())
	}
	return ids, nil
}

func (h *RunScheduledTransitionsCommandHandler) advance(
	ctx context.Context, orderID kernel.UUID, target order.Status, now time.Time,
) bool {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		h.logger.Error("scheduled transition: begin failed",
			"orderID", orderID.String(), "error", err)
		return false
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ord, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		h.logger.Error("scheduled transition: load failed",
			"orderID", orderID.String(), "error", err)
		return false
	}

	if err = ord.TransitionTo(target, now); err != nil {
		// Someone else moved the order between the sweep and this
		// transaction. Nothing to do.
		h.logger.Info("scheduled transition: skipped",
			"orderID", orderID.String(), "target", target.String(), "reason", err)
		return false
	}

	if err = uow.OrderRepository().Update(ctx, ord); err != nil {
		h.logger.Error("scheduled transition: update failed",
			"orderID", orderID.String(), "error", err)
		return false
	}

	entry, err := order.NewHistoryEntry(
		kernel.NewUUID(), ord.ID(), ord.Status(), order.SystemActorID(), "scheduled", now,
	)
	if err != nil {
		h.logger.Error("scheduled transition: history entry failed",
			"orderID", orderID.String(), "error", err)
		return false
	}
	if err = uow.HistoryRepository().Append(ctx, entry); err != nil {
		h.logger.Error("scheduled transition: history append failed",
			"orderID", orderID.String(), "error", err)
		return false
	}

	if err = uow.Commit(ctx); err != nil {
		h.logger.Error("scheduled transition: commit failed",
			"orderID", orderID.String(), "error", err)
		return false
	}

	h.dispatcher.Enqueue(ports.NotificationMessage{
		OrderID:    ord.ID(),
		Type:       notification.TypeStatusChanged,
		Recipients: []string{"client"},
	})

	return true
}
