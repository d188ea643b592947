package pricing

import "github.com/shopspring/decimal"

// DefaultMarginPercent is applied when a company has no margin configuration
// of its own.
var DefaultMarginPercent = decimal.NewFromInt(25)

// Quote is a side-effect-free price estimate. It carries no approval state;
// the binding pricing snapshot lives on the order once reviewers sign off.
type Quote struct {
	BasePrice     decimal.Decimal
	MarginPercent decimal.Decimal
	MarginAmount  decimal.Decimal
	Total         decimal.Decimal
}

// Estimate computes basePrice + basePrice * marginPercent / 100, rounded to
// two decimal places. Pure; callers pass DefaultMarginPercent when the
// company configuration supplies no override.
func Estimate(basePrice, marginPercent decimal.Decimal) Quote {
	base := basePrice.Round(2)
	margin := marginPercent.Round(2)
	marginAmount := base.Mul(margin).Div(decimal.NewFromInt(100)).Round(2)

	return Quote{
		BasePrice:     base,
		MarginPercent: margin,
		MarginAmount:  marginAmount,
		Total:         base.Add(marginAmount).Round(2),
	}
}
