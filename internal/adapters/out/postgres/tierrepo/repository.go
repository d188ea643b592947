package tierrepo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/kernel"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/pricing"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/pkg/errs"
)

// GormTierRepository implements TierRepository using GORM.
type GormTierRepository struct {
	db *gorm.DB
}

// NewGormTierRepository creates a new GORM tier repository.
func NewGormTierRepository(db *gorm.DB) *GormTierRepository {
	return &GormTierRepository{db: db}
}

// Add saves a new pricing tier to the database.
func (r *GormTierRepository) Add(ctx context.Context, tier *pricing.Tier) error {
	if err := tier.Validate(); err != nil {
		return err
	}

	dto := fromDomain(tier)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves a tier by ID.
func (r *GormTierRepository) Get(ctx context.Context, id kernel.UUID) (*pricing.Tier, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TierDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("pricing tier", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// FindMatching returns the tier covering the location whose inclusive volume
// range contains volume. Location matching is case-insensitive.
func (r *GormTierRepository) FindMatching(
	ctx context.Context, country, city string, volume int,
) (*pricing.Tier, error) {
	var dto TierDTO
	err := r.db.WithContext(ctx).
		Where("LOWER(country) = LOWER(?) AND LOWER(city) = LOWER(?)", country, city).
		Where("volume_min <= ? AND volume_max >= ?", volume, volume).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("pricing tier",
				fmt.Sprintf("%s/%s volume %d", country, city, volume))
		}
		return nil, err
	}

	return toDomain(dto)
}
