package commands

import (
	"errors"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/kernel"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/order"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/pkg/guard"
)

var (
	ErrTransitionOrderCommandIsNotConstructed = errors.New(
		"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
	)
)

// TransitionOrderCommand represents a request to move an order to a target
// lifecycle status. The note is mandatory for cancellation, where it becomes
// the recorded reason; for every other target it is an optional audit remark.
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	targetStatus order.Status
	actorID      kernel.UUID
	note         string

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand creates a command to transition an order.
func NewTransitionOrderCommand(
	orderID kernel.UUID,
	targetStatus order.Status,
	actorID kernel.UUID,
	note string,
) (TransitionOrderCommand, error) {
	cmd := TransitionOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTargetStatus(targetStatus),
		cmd.setActorID(actorID),
	); err != nil {
		return TransitionOrderCommand{}, err
	}
	cmd.note = note

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

// OrderID returns the order to transition.
func (c TransitionOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// TargetStatus returns the requested lifecycle status.
func (c TransitionOrderCommand) TargetStatus() order.Status {
	return c.targetStatus
}

// ActorID returns who requested the transition.
func (c TransitionOrderCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Note returns the audit remark, or the cancellation reason when the target
// is Cancelled.
func (c TransitionOrderCommand) Note() string {
	return c.note
}

func (c *TransitionOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *TransitionOrderCommand) setTargetStatus(targetStatus order.Status) error {
	if err := targetStatus.Validate(); err != nil {
		return err
	}
	c.targetStatus = targetStatus
	return nil
}

func (c *TransitionOrderCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	c.actorID = actorID
	return nil
}
