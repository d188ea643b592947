package commands

import (
	"errors"
	"time"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/kernel"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/order"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/pkg/errs"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand represents a client request to open a new rental order.
// The order starts in Draft status; items may be attached now or through item
// management before confirmation.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	companyID      kernel.UUID
	brandID        *kernel.UUID
	venue          order.Venue
	eventStartDate time.Time
	eventEndDate   time.Time
	items          []order.Item

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new rental order.
// Validates identifiers, the venue, and the event window ordering.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	companyID kernel.UUID,
	brandID *kernel.UUID,
	venue order.Venue,
	eventStartDate time.Time,
	eventEndDate time.Time,
	items []order.Item,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCompanyID(companyID),
		cmd.setBrandID(brandID),
		cmd.setVenue(venue),
		cmd.setEventWindow(eventStartDate, eventEndDate),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier assigned to the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CompanyID returns the owning company.
func (c CreateOrderCommand) CompanyID() kernel.UUID {
	return c.companyID
}

// BrandID returns the optional brand association.
func (c CreateOrderCommand) BrandID() *kernel.UUID {
	return c.brandID
}

// Venue returns the event venue details.
func (c CreateOrderCommand) Venue() order.Venue {
	return c.venue
}

// EventStartDate returns the first day of the event window.
func (c CreateOrderCommand) EventStartDate() time.Time {
	return c.eventStartDate
}

// EventEndDate returns the last day of the event window.
func (c CreateOrderCommand) EventEndDate() time.Time {
	return c.eventEndDate
}

// Items returns the order's initial required-quantity lines.
func (c CreateOrderCommand) Items() []order.Item {
	items := make([]order.Item, len(c.items))
	copy(items, c.items)
	return items
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCompanyID(companyID kernel.UUID) error {
	if err := companyID.Validate(); err != nil {
		return err
	}
	c.companyID = companyID
	return nil
}

func (c *CreateOrderCommand) setBrandID(brandID *kernel.UUID) error {
	if brandID == nil {
		return nil
	}
	if err := brandID.Validate(); err != nil {
		return err
	}
	c.brandID = brandID
	return nil
}

func (c *CreateOrderCommand) setVenue(venue order.Venue) error {
	if err := venue.Validate(); err != nil {
		return err
	}
	c.venue = venue
	return nil
}

func (c *CreateOrderCommand) setEventWindow(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return errs.NewValueIsRequiredError("event window")
	}
	if end.Before(start) {
		return errs.NewValueIsInvalidError("event window")
	}
	c.eventStartDate = start
	c.eventEndDate = end
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.Item) error {
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	c.items = make([]order.Item, len(items))
	copy(c.items, items)
	return nil
}
