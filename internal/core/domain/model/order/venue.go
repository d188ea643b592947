package order

import (
	"errors"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/pkg/errs"
)

// Venue is a value object holding the event location and on-site contact.
type Venue struct {
	name         string
	address      string
	contactName  string
	contactPhone string

	isConstructed bool
}

// ErrVenueIsNotConstructed is returned when a Venue was not created through
// the NewVenue factory function.
var ErrVenueIsNotConstructed = errors.New("Venue must be created via NewVenue constructor")

// NewVenue creates a validated venue. Name and address are required;
// contact fields are optional.
func NewVenue(name, address, contactName, contactPhone string) (Venue, error) {
	if name == "" {
		return Venue{}, errs.NewValueIsRequiredError("venue name")
	}
	if address == "" {
		return Venue{}, errs.NewValueIsRequiredError("venue address")
	}

	return Venue{
		name:          name,
		address:       address,
		contactName:   contactName,
		contactPhone:  contactPhone,
		isConstructed: true,
	}, nil
}

// Validate ensures the venue was created through NewVenue.
func (v Venue) Validate() error {
	if !v.isConstructed {
		return ErrVenueIsNotConstructed
	}
	return nil
}

// Name returns the venue name.
func (v Venue) Name() string {
	return v.name
}

// Address returns the venue street address.
func (v Venue) Address() string {
	return v.address
}

// ContactName returns the on-site contact person, if any.
func (v Venue) ContactName() string {
	return v.contactName
}

// ContactPhone returns the on-site contact phone, if any.
func (v Venue) ContactPhone() string {
	return v.contactPhone
}
