package commands

import (
	"context"
	"time"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/kernel"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/notification"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/order"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/ports"
)

// AdjustPricingCommandHandler records the first-line price adjustment and
// moves the order to PendingApproval, where the margin approver picks it up.
type AdjustPricingCommandHandler struct {
	uowFactory PricingUoWFactory
	dispatcher ports.NotificationDispatcher
}

// NewAdjustPricingCommandHandler creates a handler for price adjustment.
func NewAdjustPricingCommandHandler(
	uowFactory PricingUoWFactory,
	dispatcher ports.NotificationDispatcher,
) AdjustPricingCommandHandler {
	return AdjustPricingCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes the adjustment and returns the updated aggregate. On
// success the approver group is notified that an order awaits their review.
func (h *AdjustPricingCommandHandler) Handle(
	ctx context.Context, cmd AdjustPricingCommand,
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
	if err = ord.AdjustPricing(cmd.AdjustedPrice(), cmd.Reason(), cmd.ActorID(), now); err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Update(ctx, ord); err != nil {
		return nil, err
	}

	entry, err := order.NewHistoryEntry(kernel.NewUUID(), ord.ID(), ord.Status(), cmd.ActorID(), cmd.Reason(), now)
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
		Type:       notification.TypePricingAdjusted,
		Recipients: []string{"pmg-reviewers"},
	})

	return ord, nil
}
