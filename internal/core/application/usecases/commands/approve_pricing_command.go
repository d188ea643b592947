package commands

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/kernel"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/pkg/errs"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/pkg/guard"
)

var (
	ErrApprovePricingCommandIsNotConstructed = errors.New(
		"ApprovePricingCommand must be created via NewApprovePricingCommand constructor",
	)
)

// ApprovePricingCommand represents the final reviewer settling an order
// awaiting approval. The reviewer supplies the agreed base price, which may
// differ from the recorded adjustment. The margin may be zero but not
// negative; callers wanting the standard margin pass
// pricing.DefaultMarginPercent.
type ApprovePricingCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	basePrice     decimal.Decimal
	marginPercent decimal.Decimal
	actorID       kernel.UUID
	notes         string

	guard guard.ConstructorGuard
}

// NewApprovePricingCommand creates a command to approve an order's pricing.
// Notes are optional and end up in the audit log entry for the transition.
func NewApprovePricingCommand(
	orderID kernel.UUID,
	basePrice decimal.Decimal,
	marginPercent decimal.Decimal,
	actorID kernel.UUID,
	notes string,
) (ApprovePricingCommand, error) {
	cmd := ApprovePricingCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setBasePrice(basePrice),
		cmd.setMarginPercent(marginPercent),
		cmd.setActorID(actorID),
	); err != nil {
		return ApprovePricingCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApprovePricingCommand) Validate() error {
	return c.guard.Validate(ErrApprovePricingCommandIsNotConstructed)
}

// OrderID returns the order being approved.
func (c ApprovePricingCommand) OrderID() kernel.UUID {
	return c.orderID
}

// BasePrice returns the agreed base price the margin is applied to.
func (c ApprovePricingCommand) BasePrice() decimal.Decimal {
	return c.basePrice
}

// MarginPercent returns the margin to apply on top of the base price.
func (c ApprovePricingCommand) MarginPercent() decimal.Decimal {
	return c.marginPercent
}

// ActorID returns the reviewer granting the approval.
func (c ApprovePricingCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Notes returns the reviewer's free-form approval notes, possibly empty.
func (c ApprovePricingCommand) Notes() string {
	return c.notes
}

func (c *ApprovePricingCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *ApprovePricingCommand) setBasePrice(basePrice decimal.Decimal) error {
	if !basePrice.IsPositive() {
		return errs.NewValueIsOutOfRangeError("basePrice", basePrice, 0, "unbounded")
	}
	c.basePrice = basePrice.Round(2)
	return nil
}

func (c *ApprovePricingCommand) setMarginPercent(marginPercent decimal.Decimal) error {
	if marginPercent.IsNegative() {
		return errs.NewValueIsOutOfRangeError("marginPercent", marginPercent, 0, "unbounded")
	}
	c.marginPercent = marginPercent.Round(2)
	return nil
}

func (c *ApprovePricingCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	c.actorID = actorID
	return nil
}
