package queries

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/pkg/errs"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/pkg/guard"
)

var (
	ErrEstimateQuoteQueryIsNotConstructed = errors.New(
		"EstimateQuoteQuery must be created via NewEstimateQuoteQuery constructor",
	)
)

// EstimateQuoteQuery produces an indicative quote before an order exists:
// tier lookup plus margin arithmetic, with no state change. A nil margin
// means the standard margin.
type EstimateQuoteQuery struct {
	country       string
	city          string
	volume        int
	marginPercent *decimal.Decimal

	guard guard.ConstructorGuard
}

// NewEstimateQuoteQuery creates a quote estimation query.
func NewEstimateQuoteQuery(
	country, city string, volume int, marginPercent *decimal.Decimal,
) (EstimateQuoteQuery, error) {
	inner, err := NewFindMatchingTierQuery(country, city, volume)
	if err != nil {
		return EstimateQuoteQuery{}, err
	}
	if marginPercent != nil && marginPercent.IsNegative() {
		return EstimateQuoteQuery{}, errs.NewValueIsOutOfRangeError(
			"marginPercent", *marginPercent, 0, "unbounded")
	}
	return EstimateQuoteQuery{
		country:       inner.Country(),
		city:          inner.City(),
		volume:        inner.Volume(),
		marginPercent: marginPercent,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q EstimateQuoteQuery) Validate() error {
	return q.guard.Validate(ErrEstimateQuoteQueryIsNotConstructed)
}

// Country returns the location country.
func (q EstimateQuoteQuery) Country() string {
	return q.country
}

// City returns the location city.
func (q EstimateQuoteQuery) City() string {
	return q.city
}

// Volume returns the order volume.
func (q EstimateQuoteQuery) Volume() int {
	return q.volume
}

// MarginPercent returns the requested margin, or nil for the standard one.
func (q EstimateQuoteQuery) MarginPercent() *decimal.Decimal {
	return q.marginPercent
}

// EstimateQuoteQueryResponse is the indicative quote breakdown.
type EstimateQuoteQueryResponse struct {
	BasePrice     decimal.Decimal
	MarginPercent decimal.Decimal
	MarginAmount  decimal.Decimal
	Total         decimal.Decimal
}
