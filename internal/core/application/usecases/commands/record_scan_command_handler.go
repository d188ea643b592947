package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/kernel"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/order"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/scan"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/pkg/errs"
)

// RecordScanCommandHandler appends scan events to an order's event set.
// Scans are only accepted while the order is in a status where the direction
// makes physical sense: outbound during preparation (and after the gate has
// opened, for late extra units), inbound while the order awaits return.
type RecordScanCommandHandler struct {
	uowFactory ScanUoWFactory
}

// NewRecordScanCommandHandler creates a handler for scan recording.
func NewRecordScanCommandHandler(uowFactory ScanUoWFactory) RecordScanCommandHandler {
	return RecordScanCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the scan and returns the persisted event. Over-scanning
// is not rejected here; the gate report surfaces it for audit instead.
func (h *RecordScanCommandHandler) Handle(
	ctx context.Context, cmd RecordScanCommand,
) (*scan.Event, error) {
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

	if !scanAccepted(ord.Status(), cmd.Direction()) {
		return nil, errs.NewValueIsInvalidErrorWithCause("scan direction is invalid",
			fmt.Errorf("%s scans are not accepted while the order is %s", cmd.Direction(), ord.Status()))
	}

	event, err := scan.NewEvent(
		kernel.NewUUID(),
		ord.ID(),
		cmd.Direction(),
		cmd.Quantity(),
		cmd.ActorID(),
		time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}

	if err = uow.ScanRepository().Add(ctx, event); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return event, nil
}

func scanAccepted(status order.Status, direction scan.Direction) bool {
	switch direction {
	case scan.Outbound:
		return status == order.InPreparation || status == order.ReadyForDelivery
	case scan.Inbound:
		return status == order.AwaitingReturn
	default:
		return false
	}
}
