package commands

import (
	"errors"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/kernel"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/scan"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/pkg/errs"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/pkg/guard"
)

var (
	ErrRecordScanCommandIsNotConstructed = errors.New(
		"RecordScanCommand must be created via NewRecordScanCommand constructor",
	)
)

// RecordScanCommand represents warehouse staff registering a physical scan of
// units against an order. Quantity is the number of units covered by this
// scan; partial scans accumulate across events.
type RecordScanCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	direction scan.Direction
	quantity  int
	actorID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewRecordScanCommand creates a command to record a scan event.
func NewRecordScanCommand(
	orderID kernel.UUID,
	direction scan.Direction,
	quantity int,
	actorID kernel.UUID,
) (RecordScanCommand, error) {
	cmd := RecordScanCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setDirection(direction),
		cmd.setQuantity(quantity),
		cmd.setActorID(actorID),
	); err != nil {
		return RecordScanCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordScanCommand) Validate() error {
	return c.guard.Validate(ErrRecordScanCommandIsNotConstructed)
}

// OrderID returns the order being scanned against.
func (c RecordScanCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Direction returns whether the scan is outbound or inbound.
func (c RecordScanCommand) Direction() scan.Direction {
	return c.direction
}

// Quantity returns the number of units covered by the scan.
func (c RecordScanCommand) Quantity() int {
	return c.quantity
}

// ActorID returns the warehouse operator who scanned.
func (c RecordScanCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *RecordScanCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *RecordScanCommand) setDirection(direction scan.Direction) error {
	if err := direction.Validate(); err != nil {
		return err
	}
	c.direction = direction
	return nil
}

func (c *RecordScanCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	c.quantity = quantity
	return nil
}

func (c *RecordScanCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	c.actorID = actorID
	return nil
}
