package commands

import (
	"context"
	"time"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/kernel"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/notification"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/order"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/ports"
)

// ApprovePricingCommandHandler finalizes the pricing workflow: it records the
// reviewer's agreed base price, applies the margin, and moves the order to
// Quoted. The quote notification to the client is enqueued after commit.
type ApprovePricingCommandHandler struct {
	uowFactory PricingUoWFactory
	dispatcher ports.NotificationDispatcher
}

// NewApprovePricingCommandHandler creates a handler for pricing approval.
func NewApprovePricingCommandHandler(
	uowFactory PricingUoWFactory,
	dispatcher ports.NotificationDispatcher,
) ApprovePricingCommandHandler {
	return ApprovePricingCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes the approval and returns the updated aggregate.
func (h *ApprovePricingCommandHandler) Handle(
	ctx context.Context, cmd ApprovePricingCommand,
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
	if err = ord.ApprovePricing(cmd.BasePrice(), cmd.MarginPercent(), cmd.ActorID(), now); err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Update(ctx, ord); err != nil {
		return nil, err
	}

	entry, err := order.NewHistoryEntry(kernel.NewUUID(), ord.ID(), ord.Status(), cmd.ActorID(), cmd.Notes(), now)
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
		Type:       notification.TypeQuoteSent,
		Recipients: []string{"client"},
	})

	return ord, nil
}
