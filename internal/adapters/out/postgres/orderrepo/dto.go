// Package orderrepo maps order aggregates to their relational representation
// and implements the order repository with optimistic version locking.
package orderrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/kernel"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Money columns are decimal(12,2) and the margin percent decimal(5,2); the
// version column backs the optimistic lock.
type OrderDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID       uuid.UUID  `gorm:"type:uuid;index"`
	BrandID         *uuid.UUID `gorm:"type:uuid"`
	Status          int        `gorm:"index"`
	FinancialStatus int
	Venue           VenueDTO `gorm:"embedded;embeddedPrefix:venue_"`
	EventStartDate  time.Time
	EventEndDate    time.Time

	A2BasePrice        *decimal.Decimal `gorm:"type:decimal(12,2)"`
	A2AdjustedPrice    *decimal.Decimal `gorm:"type:decimal(12,2)"`
	A2AdjustmentReason string
	A2AdjustedBy       *uuid.UUID `gorm:"type:uuid"`
	A2AdjustedAt       *time.Time
	PmgMarginPercent   *decimal.Decimal `gorm:"type:decimal(5,2)"`
	PmgMarginAmount    *decimal.Decimal `gorm:"type:decimal(12,2)"`
	FinalTotalPrice    *decimal.Decimal `gorm:"type:decimal(12,2)"`
	PmgReviewedBy      *uuid.UUID       `gorm:"type:uuid"`
	PmgReviewedAt      *time.Time
	QuoteSentAt        *time.Time

	CancellationReason string
	CancelledBy        *uuid.UUID `gorm:"type:uuid"`
	CancelledAt        *time.Time

	TruckPhotoRefs []string `gorm:"serializer:json"`
	Version        int

	Items []ItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// VenueDTO is the embedded event venue within the order table.
type VenueDTO struct {
	Name         string
	Address      string
	ContactName  string
	ContactPhone string
}

// ItemDTO represents one required-quantity line of an order.
type ItemDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID  `gorm:"type:uuid;index"`
	AssetID     *uuid.UUID `gorm:"type:uuid"`
	Quantity    int
	Category    string
	Description string
}

// TableName specifies the database table name for order items.
func (ItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			ID:          item.ID().Bytes(),
			OrderID:     aggregate.ID().Bytes(),
			AssetID:     optionalUUID(item.AssetID()),
			Quantity:    item.Quantity(),
			Category:    item.Category(),
			Description: item.Description(),
		})
	}

	return OrderDTO{
		ID:              aggregate.ID().Bytes(),
		CompanyID:       aggregate.CompanyID().Bytes(),
		BrandID:         optionalUUID(aggregate.BrandID()),
		Status:          int(aggregate.Status()),
		FinancialStatus: int(aggregate.FinancialStatus()),
		Venue: VenueDTO{
			Name:         aggregate.Venue().Name(),
			Address:      aggregate.Venue().Address(),
			ContactName:  aggregate.Venue().ContactName(),
			ContactPhone: aggregate.Venue().ContactPhone(),
		},
		EventStartDate:     aggregate.EventStartDate(),
		EventEndDate:       aggregate.EventEndDate(),
		A2BasePrice:        aggregate.A2BasePrice(),
		A2AdjustedPrice:    aggregate.A2AdjustedPrice(),
		A2AdjustmentReason: aggregate.A2AdjustmentReason(),
		A2AdjustedBy:       optionalUUID(aggregate.A2AdjustedBy()),
		A2AdjustedAt:       aggregate.A2AdjustedAt(),
		PmgMarginPercent:   aggregate.PmgMarginPercent(),
		PmgMarginAmount:    aggregate.PmgMarginAmount(),
		FinalTotalPrice:    aggregate.FinalTotalPrice(),
		PmgReviewedBy:      optionalUUID(aggregate.PmgReviewedBy()),
		PmgReviewedAt:      aggregate.PmgReviewedAt(),
		QuoteSentAt:        aggregate.QuoteSentAt(),
		CancellationReason: aggregate.CancellationReason(),
		CancelledBy:        optionalUUID(aggregate.CancelledBy()),
		CancelledAt:        aggregate.CancelledAt(),
		TruckPhotoRefs:     aggregate.TruckPhotoRefs(),
		Version:            aggregate.Version(),
		Items:              items,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	companyID, err := kernel.UUIDFromBytes(dto.CompanyID[:])
	if err != nil {
		return nil, err
	}
	brandID, err := optionalKernelUUID(dto.BrandID)
	if err != nil {
		return nil, err
	}

	venue, err := order.NewVenue(
		dto.Venue.Name, dto.Venue.Address, dto.Venue.ContactName, dto.Venue.ContactPhone,
	)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		itemID, itemErr := kernel.UUIDFromBytes(itemDTO.ID[:])
		if itemErr != nil {
			return nil, itemErr
		}
		assetID, itemErr := optionalKernelUUID(itemDTO.AssetID)
		if itemErr != nil {
			return nil, itemErr
		}
		item, itemErr := order.NewItem(
			itemID, itemDTO.Quantity, itemDTO.Category, itemDTO.Description, assetID,
		)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	a2AdjustedBy, err := optionalKernelUUID(dto.A2AdjustedBy)
	if err != nil {
		return nil, err
	}
	pmgReviewedBy, err := optionalKernelUUID(dto.PmgReviewedBy)
	if err != nil {
		return nil, err
	}
	cancelledBy, err := optionalKernelUUID(dto.CancelledBy)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:                 id,
		CompanyID:          companyID,
		BrandID:            brandID,
		Status:             order.Status(dto.Status),
		FinancialStatus:    order.FinancialStatus(dto.FinancialStatus),
		EventStartDate:     dto.EventStartDate,
		EventEndDate:       dto.EventEndDate,
		Venue:              venue,
		Items:              items,
		A2BasePrice:        dto.A2BasePrice,
		A2AdjustedPrice:    dto.A2AdjustedPrice,
		A2AdjustmentReason: dto.A2AdjustmentReason,
		A2AdjustedBy:       a2AdjustedBy,
		A2AdjustedAt:       dto.A2AdjustedAt,
		PmgMarginPercent:   dto.PmgMarginPercent,
		PmgMarginAmount:    dto.PmgMarginAmount,
		FinalTotalPrice:    dto.FinalTotalPrice,
		PmgReviewedBy:      pmgReviewedBy,
		PmgReviewedAt:      dto.PmgReviewedAt,
		QuoteSentAt:        dto.QuoteSentAt,
		CancellationReason: dto.CancellationReason,
		CancelledBy:        cancelledBy,
		CancelledAt:        dto.CancelledAt,
		TruckPhotoRefs:     dto.TruckPhotoRefs,
		Version:            dto.Version,
	})
}

func optionalUUID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalKernelUUID(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	parsed, err := kernel.UUIDFromBytes((*id)[:])
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
