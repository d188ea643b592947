// Package tierrepo persists pricing tier reference data.
package tierrepo

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/kernel"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/pricing"
)

// TierDTO represents the database structure for pricing tiers.
type TierDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Country   string    `gorm:"index:idx_tier_location"`
	City      string    `gorm:"index:idx_tier_location"`
	VolumeMin int
	VolumeMax int
	BasePrice decimal.Decimal `gorm:"type:decimal(12,2)"`
}

// TableName specifies the database table name for pricing tiers.
func (TierDTO) TableName() string {
	return "pricing_tiers"
}

func fromDomain(tier *pricing.Tier) TierDTO {
	return TierDTO{
		ID:        tier.ID().Bytes(),
		Country:   tier.Country(),
		City:      tier.City(),
		VolumeMin: tier.VolumeMin(),
		VolumeMax: tier.VolumeMax(),
		BasePrice: tier.BasePrice(),
	}
}

func toDomain(dto TierDTO) (*pricing.Tier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return pricing.NewTier(id, dto.Country, dto.City, dto.VolumeMin, dto.VolumeMax, dto.BasePrice)
}
