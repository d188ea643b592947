package scan

import (
	"errors"
	"fmt"
	"time"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/kernel"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/pkg/errs"
)

// ErrEventIsNotConstructed is returned when an Event was not created through
// the NewEvent factory function.
var ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent constructor")

// Direction distinguishes warehouse-outbound scans from return scans.
type Direction int

const (
	// DirectionUnknown represents an invalid or undefined direction.
	DirectionUnknown Direction = iota

	// Outbound records units leaving the warehouse during preparation.
	Outbound

	// Inbound records units returning after the event.
	Inbound
)

func getDirectionStrings() map[Direction]string {
	return map[Direction]string{
		DirectionUnknown: "Unknown",
		Outbound:         "Outbound",
		Inbound:          "Inbound",
	}
}

// Validate checks that the value is Outbound or Inbound.
func (d Direction) Validate() error {
	if d != Outbound && d != Inbound {
		return errs.NewValueIsInvalidErrorWithCause("scan direction is invalid",
			fmt.Errorf("%d is not a valid scan direction", d))
	}
	return nil
}

// String returns the human-readable name of the direction.
func (d Direction) String() string {
	if str, ok := getDirectionStrings()[d]; ok {
		return str
	}
	return "Unknown"
}

// DirectionFromString parses the direction name used on the API surface.
func DirectionFromString(name string) (Direction, error) {
	for direction, str := range getDirectionStrings() {
		if str == name && direction != DirectionUnknown {
			return direction, nil
		}
	}
	return DirectionUnknown, errs.NewValueIsInvalidErrorWithCause("scan direction is invalid",
		fmt.Errorf("%q is not a valid scan direction", name))
}

// Event is an append-only record of a physical inventory scan against an
// order. Events are never updated or deleted; gate evaluation recomputes
// totals by summation over the set, which is safe because the set only grows.
type Event struct {
	id         kernel.UUID
	orderID    kernel.UUID
	direction  Direction
	quantity   int
	actorID    kernel.UUID
	occurredAt time.Time

	isConstructed bool
}

// NewEvent creates a validated scan event. Quantity must be positive.
func NewEvent(
	id kernel.UUID,
	orderID kernel.UUID,
	direction Direction,
	quantity int,
	actorID kernel.UUID,
	occurredAt time.Time,
) (*Event, error) {
	event := &Event{
		occurredAt:    occurredAt,
		isConstructed: true,
	}

	if err := errors.Join(
		event.setID(id),
		event.setOrderID(orderID),
		event.setDirection(direction),
		event.setQuantity(quantity),
		event.setActorID(actorID),
	); err != nil {
		return nil, err
	}

	return event, nil
}

// Validate ensures the event was created through NewEvent.
func (e *Event) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEventIsNotConstructed
	}
	return nil
}

// ID returns the event's unique identifier.
func (e *Event) ID() kernel.UUID {
	return e.id
}

// OrderID returns the order the scan belongs to.
func (e *Event) OrderID() kernel.UUID {
	return e.orderID
}

// Direction returns whether the scan was outbound or inbound.
func (e *Event) Direction() Direction {
	return e.direction
}

// Quantity returns the number of units scanned.
func (e *Event) Quantity() int {
	return e.quantity
}

// ActorID returns who performed the scan.
func (e *Event) ActorID() kernel.UUID {
	return e.actorID
}

// OccurredAt returns when the scan happened.
func (e *Event) OccurredAt() time.Time {
	return e.occurredAt
}

func (e *Event) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *Event) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	e.orderID = orderID
	return nil
}

func (e *Event) setDirection(direction Direction) error {
	if err := direction.Validate(); err != nil {
		return err
	}
	e.direction = direction
	return nil
}

func (e *Event) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	e.quantity = quantity
	return nil
}

func (e *Event) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	e.actorID = actorID
	return nil
}
