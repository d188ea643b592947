package queries

import (
	"context"

	"gorm.io/gorm"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/pricing"
)

// EstimateQuoteQueryHandler combines tier resolution with the quote
// arithmetic used by the approval workflow, so an estimate matches what the
// workflow would later produce for the same inputs.
type EstimateQuoteQueryHandler struct {
	tiers FindMatchingTierQueryHandler
}

// NewEstimateQuoteQueryHandler creates a handler for quote estimation.
func NewEstimateQuoteQueryHandler(db *gorm.DB) EstimateQuoteQueryHandler {
	return EstimateQuoteQueryHandler{tiers: NewFindMatchingTierQueryHandler(db)}
}

// Handle returns an indicative quote, or an ObjectNotFoundError when no tier
// covers the location and volume.
func (h EstimateQuoteQueryHandler) Handle(
	ctx context.Context,
	query EstimateQuoteQuery,
) (EstimateQuoteQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return EstimateQuoteQueryResponse{}, err
	}

	tierQuery, err := NewFindMatchingTierQuery(query.Country(), query.City(), query.Volume())
	if err != nil {
		return EstimateQuoteQueryResponse{}, err
	}

	tier, err := h.tiers.Handle(ctx, tierQuery)
	if err != nil {
		return EstimateQuoteQueryResponse{}, err
	}

	margin := pricing.DefaultMarginPercent
	if query.MarginPercent() != nil {
		margin = *query.MarginPercent()
	}

	quote := pricing.Estimate(tier.BasePrice, margin)

	return EstimateQuoteQueryResponse{
		BasePrice:     quote.BasePrice,
		MarginPercent: quote.MarginPercent,
		MarginAmount:  quote.MarginAmount,
		Total:         quote.Total,
	}, nil
}
