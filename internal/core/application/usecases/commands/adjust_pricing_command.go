package commands

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/kernel"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/pkg/errs"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/pkg/guard"
)

var (
	ErrAdjustPricingCommandIsNotConstructed = errors.New(
		"AdjustPricingCommand must be created via NewAdjustPricingCommand constructor",
	)
)

// AdjustPricingCommand represents the first-line reviewer setting an adjusted
// base price on an order in pricing review. A reason is mandatory so the
// approver can see why the tier price was overridden.
type AdjustPricingCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	adjustedPrice decimal.Decimal
	reason        string
	actorID       kernel.UUID

	guard guard.ConstructorGuard
}

// NewAdjustPricingCommand creates a command to adjust an order's base price.
func NewAdjustPricingCommand(
	orderID kernel.UUID,
	adjustedPrice decimal.Decimal,
	reason string,
	actorID kernel.UUID,
) (AdjustPricingCommand, error) {
	cmd := AdjustPricingCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setAdjustedPrice(adjustedPrice),
		cmd.setReason(reason),
		cmd.setActorID(actorID),
	); err != nil {
		return AdjustPricingCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AdjustPricingCommand) Validate() error {
	return c.guard.Validate(ErrAdjustPricingCommandIsNotConstructed)
}

// OrderID returns the order whose price is adjusted.
func (c AdjustPricingCommand) OrderID() kernel.UUID {
	return c.orderID
}

// AdjustedPrice returns the reviewer's base price.
func (c AdjustPricingCommand) AdjustedPrice() decimal.Decimal {
	return c.adjustedPrice
}

// Reason returns the mandatory adjustment justification.
func (c AdjustPricingCommand) Reason() string {
	return c.reason
}

// ActorID returns the reviewer performing the adjustment.
func (c AdjustPricingCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *AdjustPricingCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *AdjustPricingCommand) setAdjustedPrice(adjustedPrice decimal.Decimal) error {
	if adjustedPrice.IsNegative() || adjustedPrice.IsZero() {
		return errs.NewValueIsOutOfRangeError("adjustedPrice", adjustedPrice, "0 (exclusive)", "unbounded")
	}
	c.adjustedPrice = adjustedPrice.Round(2)
	return nil
}

func (c *AdjustPricingCommand) setReason(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	c.reason = reason
	return nil
}

func (c *AdjustPricingCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	c.actorID = actorID
	return nil
}
