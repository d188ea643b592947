package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/application/usecases/queries"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/order"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/scan"
)

// ErrorResponse is the uniform error body for all endpoints.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// VenueDTO carries the event venue and its on-site contact.
type VenueDTO struct {
	Name         string `json:"name"`
	Address      string `json:"address"`
	ContactName  string `json:"contact_name"`
	ContactPhone string `json:"contact_phone"`
}

// ItemRequest is one rental line item on order creation.
type ItemRequest struct {
	Quantity    int     `json:"quantity"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	AssetID     *string `json:"asset_id,omitempty"`
}

// CreateOrderRequest is the body of POST /orders.
type CreateOrderRequest struct {
	CompanyID      string        `json:"company_id"`
	BrandID        *string       `json:"brand_id,omitempty"`
	Venue          VenueDTO      `json:"venue"`
	EventStartDate time.Time     `json:"event_start_date"`
	EventEndDate   time.Time     `json:"event_end_date"`
	Items          []ItemRequest `json:"items"`
}

// TransitionOrderRequest is the body of POST /orders/{id}/transition.
type TransitionOrderRequest struct {
	TargetStatus string `json:"target_status"`
	ActorID      string `json:"actor_id"`
	Note         string `json:"note,omitempty"`
}

// AdjustPricingRequest is the body of POST /orders/{id}/pricing/adjust.
type AdjustPricingRequest struct {
	AdjustedPrice decimal.Decimal `json:"adjusted_price"`
	Reason        string          `json:"reason"`
	ActorID       string          `json:"actor_id"`
}

// ApprovePricingRequest is the body of POST /orders/{id}/pricing/approve.
type ApprovePricingRequest struct {
	BasePrice     decimal.Decimal `json:"base_price"`
	MarginPercent decimal.Decimal `json:"margin_percent"`
	ActorID       string          `json:"actor_id"`
	Notes         string          `json:"notes,omitempty"`
}

// RecordScanRequest is the body of POST /orders/{id}/scans.
type RecordScanRequest struct {
	Direction string `json:"direction"`
	Quantity  int    `json:"quantity"`
	ActorID   string `json:"actor_id"`
}

// ItemResponse mirrors an order item on the read side.
type ItemResponse struct {
	ID          string  `json:"id"`
	Quantity    int     `json:"quantity"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	AssetID     *string `json:"asset_id,omitempty"`
}

// OrderResponse is the full order representation returned by every command
// that mutates an order. Pricing fields are null until the workflow sets them.
type OrderResponse struct {
	ID              string         `json:"id"`
	CompanyID       string         `json:"company_id"`
	BrandID         *string        `json:"brand_id,omitempty"`
	Status          string         `json:"status"`
	FinancialStatus string         `json:"financial_status"`
	Venue           VenueDTO       `json:"venue"`
	EventStartDate  time.Time      `json:"event_start_date"`
	EventEndDate    time.Time      `json:"event_end_date"`
	Items           []ItemResponse `json:"items"`

	A2BasePrice        *decimal.Decimal `json:"a2_base_price,omitempty"`
	A2AdjustedPrice    *decimal.Decimal `json:"a2_adjusted_price,omitempty"`
	A2AdjustmentReason string           `json:"a2_adjustment_reason,omitempty"`
	PmgMarginPercent   *decimal.Decimal `json:"pmg_margin_percent,omitempty"`
	PmgMarginAmount    *decimal.Decimal `json:"pmg_margin_amount,omitempty"`
	FinalTotalPrice    *decimal.Decimal `json:"final_total_price,omitempty"`
	QuoteSentAt        *time.Time       `json:"quote_sent_at,omitempty"`

	CancellationReason string     `json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`

	Version int `json:"version"`
}

// ScanEventResponse is the representation of a recorded scan.
type ScanEventResponse struct {
	ID         string    `json:"id"`
	OrderID    string    `json:"order_id"`
	Direction  string    `json:"direction"`
	Quantity   int       `json:"quantity"`
	ActorID    string    `json:"actor_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// HistoryEntryResponse is one audit-trail row.
type HistoryEntryResponse struct {
	ID         string    `json:"id"`
	OrderID    string    `json:"order_id"`
	Status     string    `json:"status"`
	ActorID    string    `json:"actor_id"`
	Note       string    `json:"note,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

// ScanGateResponse reports outbound or inbound gate progress for an order.
type ScanGateResponse struct {
	OrderID     string `json:"order_id"`
	Direction   string `json:"direction"`
	Required    int    `json:"required"`
	Scanned     int    `json:"scanned"`
	Satisfied   bool   `json:"satisfied"`
	OverScanned bool   `json:"over_scanned"`
	Shortfall   int    `json:"shortfall"`
}

// TierResponse is a matched pricing tier.
type TierResponse struct {
	ID        string          `json:"id"`
	Country   string          `json:"country"`
	City      string          `json:"city"`
	VolumeMin int             `json:"volume_min"`
	VolumeMax int             `json:"volume_max"`
	BasePrice decimal.Decimal `json:"base_price"`
}

// EstimateResponse is the quote arithmetic for a tier match.
type EstimateResponse struct {
	BasePrice     decimal.Decimal `json:"base_price"`
	MarginPercent decimal.Decimal `json:"margin_percent"`
	MarginAmount  decimal.Decimal `json:"margin_amount"`
	Total         decimal.Decimal `json:"total"`
}

// ScheduledRunResponse reports how many orders a scheduled sweep moved.
type ScheduledRunResponse struct {
	Transitioned int `json:"transitioned"`
}

func toOrderResponse(ord *order.Order) OrderResponse {
	items := make([]ItemResponse, 0, len(ord.Items()))
	for _, item := range ord.Items() {
		var assetID *string
		if item.AssetID() != nil {
			s := item.AssetID().String()
			assetID = &s
		}
		items = append(items, ItemResponse{
			ID:          item.ID().String(),
			Quantity:    item.Quantity(),
			Category:    item.Category(),
			Description: item.Description(),
			AssetID:     assetID,
		})
	}

	var brandID *string
	if ord.BrandID() != nil {
		s := ord.BrandID().String()
		brandID = &s
	}

	venue := ord.Venue()

	return OrderResponse{
		ID:              ord.ID().String(),
		CompanyID:       ord.CompanyID().String(),
		BrandID:         brandID,
		Status:          ord.Status().String(),
		FinancialStatus: ord.FinancialStatus().String(),
		Venue: VenueDTO{
			Name:         venue.Name(),
			Address:      venue.Address(),
			ContactName:  venue.ContactName(),
			ContactPhone: venue.ContactPhone(),
		},
		EventStartDate: ord.EventStartDate(),
		EventEndDate:   ord.EventEndDate(),
		Items:          items,

		A2BasePrice:        ord.A2BasePrice(),
		A2AdjustedPrice:    ord.A2AdjustedPrice(),
		A2AdjustmentReason: ord.A2AdjustmentReason(),
		PmgMarginPercent:   ord.PmgMarginPercent(),
		PmgMarginAmount:    ord.PmgMarginAmount(),
		FinalTotalPrice:    ord.FinalTotalPrice(),
		QuoteSentAt:        ord.QuoteSentAt(),

		CancellationReason: ord.CancellationReason(),
		CancelledAt:        ord.CancelledAt(),

		Version: ord.Version(),
	}
}

func toScanEventResponse(event *scan.Event) ScanEventResponse {
	return ScanEventResponse{
		ID:         event.ID().String(),
		OrderID:    event.OrderID().String(),
		Direction:  event.Direction().String(),
		Quantity:   event.Quantity(),
		ActorID:    event.ActorID().String(),
		OccurredAt: event.OccurredAt(),
	}
}

func toHistoryResponse(rows []queries.GetOrderHistoryQueryResponse) []HistoryEntryResponse {
	response := make([]HistoryEntryResponse, 0, len(rows))
	for _, row := range rows {
		response = append(response, HistoryEntryResponse{
			ID:         row.ID.String(),
			OrderID:    row.OrderID.String(),
			Status:     row.Status.String(),
			ActorID:    row.ActorID.String(),
			Note:       row.Note,
			RecordedAt: row.RecordedAt,
		})
	}
	return response
}
