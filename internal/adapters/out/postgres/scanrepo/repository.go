package scanrepo

import (
	"context"

	"gorm.io/gorm"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/kernel"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/scan"
)

// GormScanRepository implements ScanRepository using GORM.
type GormScanRepository struct {
	db *gorm.DB
}

// NewGormScanRepository creates a new GORM scan event repository.
func NewGormScanRepository(db *gorm.DB) *GormScanRepository {
	return &GormScanRepository{db: db}
}

// Add appends a scan event.
func (r *GormScanRepository) Add(ctx context.Context, event *scan.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	dto := fromDomain(event)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetAllForOrder retrieves every scan event recorded against the order, both
// directions, in insertion order.
func (r *GormScanRepository) GetAllForOrder(
	ctx context.Context, orderID kernel.UUID,
) ([]*scan.Event, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []EventDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("occurred_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	events := make([]*scan.Event, 0, len(dtos))
	for _, dto := range dtos {
		event, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		events = append(events, event)
	}

	return events, nil
}
