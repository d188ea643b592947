package pricing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/kernel"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrTierIsNotConstructed is returned when a Tier was not created through
// the NewTier factory function.
var ErrTierIsNotConstructed = errors.New("Tier must be created via NewTier constructor")

// Tier is a flat-rate pricing bracket keyed by location and an inclusive
// volume range. Tiers for the same location must not overlap; that invariant
// is enforced by tier management at write time, not by the resolver.
type Tier struct {
	id        kernel.UUID
	country   string
	city      string
	volumeMin int
	volumeMax int
	basePrice decimal.Decimal

	isConstructed bool
}

// NewTier creates a validated pricing tier. The volume range is inclusive on
// both ends; basePrice must be positive.
func NewTier(
	id kernel.UUID,
	country, city string,
	volumeMin, volumeMax int,
	basePrice decimal.Decimal,
) (*Tier, error) {
	tier := &Tier{
		isConstructed: true,
	}

	if err := errors.Join(
		tier.setID(id),
		tier.setLocation(country, city),
		tier.setVolumeRange(volumeMin, volumeMax),
		tier.setBasePrice(basePrice),
	); err != nil {
		return nil, err
	}

	return tier, nil
}

// Validate ensures the tier was created through NewTier.
func (t *Tier) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTierIsNotConstructed
	}
	return nil
}

// ID returns the tier's unique identifier.
func (t *Tier) ID() kernel.UUID {
	return t.id
}

// Country returns the tier's country scope.
func (t *Tier) Country() string {
	return t.country
}

// City returns the tier's city scope.
func (t *Tier) City() string {
	return t.city
}

// VolumeMin returns the inclusive lower bound of the volume range.
func (t *Tier) VolumeMin() int {
	return t.volumeMin
}

// VolumeMax returns the inclusive upper bound of the volume range.
func (t *Tier) VolumeMax() int {
	return t.volumeMax
}

// BasePrice returns the flat rate for this bracket.
func (t *Tier) BasePrice() decimal.Decimal {
	return t.basePrice
}

// MatchesLocation reports whether the tier covers the given location.
// Comparison is case-insensitive.
func (t *Tier) MatchesLocation(country, city string) bool {
	return strings.EqualFold(t.country, country) && strings.EqualFold(t.city, city)
}

// ContainsVolume reports whether volume falls within the inclusive range.
func (t *Tier) ContainsVolume(volume int) bool {
	return volume >= t.volumeMin && volume <= t.volumeMax
}

func (t *Tier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Tier) setLocation(country, city string) error {
	if country == "" {
		return errs.NewValueIsRequiredError("country")
	}
	if city == "" {
		return errs.NewValueIsRequiredError("city")
	}
	t.country = country
	t.city = city
	return nil
}

func (t *Tier) setVolumeRange(volumeMin, volumeMax int) error {
	if volumeMin < 0 {
		return errs.NewValueIsInvalidErrorWithCause("volume range is invalid",
			fmt.Errorf("minimum %d is negative", volumeMin))
	}
	if volumeMax < volumeMin {
		return errs.NewValueIsInvalidErrorWithCause("volume range is invalid",
			fmt.Errorf("maximum %d is less than minimum %d", volumeMax, volumeMin))
	}
	t.volumeMin = volumeMin
	t.volumeMax = volumeMax
	return nil
}

func (t *Tier) setBasePrice(basePrice decimal.Decimal) error {
	if !basePrice.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("base price is invalid",
			fmt.Errorf("%s is not greater than 0", basePrice))
	}
	t.basePrice = basePrice.Round(2)
	return nil
}
