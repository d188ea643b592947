package order

import (
	"errors"
	"fmt"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/kernel"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/pkg/errs"
)

// ErrItemIsNotConstructed is returned when an Item was not created through
// the NewItem factory function.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is a required-quantity line on an order, optionally bound to a
// specific asset. Items are immutable once the order leaves its
// pre-confirmation statuses; the scan gate sums their quantities to compute
// the required total for a direction.
type Item struct {
	id          kernel.UUID
	assetID     *kernel.UUID
	quantity    int
	category    string
	description string

	isConstructed bool
}

// NewItem creates a validated order item. Quantity must be positive;
// assetID is optional and references catalog stock when present.
func NewItem(id kernel.UUID, quantity int, category, description string, assetID *kernel.UUID) (Item, error) {
	item := Item{
		category:      category,
		description:   description,
		isConstructed: true,
	}

	if err := errors.Join(
		item.setID(id),
		item.setQuantity(quantity),
		item.setAssetID(assetID),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

// Validate ensures the item was created through NewItem.
func (i Item) Validate() error {
	if !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the item's unique identifier.
func (i Item) ID() kernel.UUID {
	return i.id
}

// AssetID returns the referenced asset, or nil for free-form lines.
func (i Item) AssetID() *kernel.UUID {
	return i.assetID
}

// Quantity returns the number of units this line requires.
func (i Item) Quantity() int {
	return i.quantity
}

// Category returns the item's catalog category.
func (i Item) Category() string {
	return i.category
}

// Description returns the free-text line description.
func (i Item) Description() string {
	return i.description
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setAssetID(assetID *kernel.UUID) error {
	if assetID == nil {
		return nil
	}
	if err := assetID.Validate(); err != nil {
		return err
	}
	i.assetID = assetID
	return nil
}
