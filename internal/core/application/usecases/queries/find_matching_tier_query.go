package queries

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/kernel"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/pkg/errs"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/pkg/guard"
)

var (
	ErrFindMatchingTierQueryIsNotConstructed = errors.New(
		"FindMatchingTierQuery must be created via NewFindMatchingTierQuery constructor",
	)
)

// FindMatchingTierQuery resolves the pricing tier for a location and volume.
// Location matching is case-insensitive; the volume range is inclusive on
// both ends.
type FindMatchingTierQuery struct {
	country string
	city    string
	volume  int

	guard guard.ConstructorGuard
}

// NewFindMatchingTierQuery creates a tier lookup query.
func NewFindMatchingTierQuery(country, city string, volume int) (FindMatchingTierQuery, error) {
	if strings.TrimSpace(country) == "" {
		return FindMatchingTierQuery{}, errs.NewValueIsRequiredError("country")
	}
	if strings.TrimSpace(city) == "" {
		return FindMatchingTierQuery{}, errs.NewValueIsRequiredError("city")
	}
	if volume < 0 {
		return FindMatchingTierQuery{}, errs.NewValueIsOutOfRangeError("volume", volume, 0, "unbounded")
	}
	return FindMatchingTierQuery{
		country: country,
		city:    city,
		volume:  volume,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q FindMatchingTierQuery) Validate() error {
	return q.guard.Validate(ErrFindMatchingTierQueryIsNotConstructed)
}

// Country returns the location country.
func (q FindMatchingTierQuery) Country() string {
	return q.country
}

// City returns the location city.
func (q FindMatchingTierQuery) City() string {
	return q.city
}

// Volume returns the order volume to match against tier ranges.
func (q FindMatchingTierQuery) Volume() int {
	return q.volume
}

// FindMatchingTierQueryResponse is the resolved tier.
type FindMatchingTierQueryResponse struct {
	ID        kernel.UUID
	Country   string
	City      string
	VolumeMin int
	VolumeMax int
	BasePrice decimal.Decimal
}
