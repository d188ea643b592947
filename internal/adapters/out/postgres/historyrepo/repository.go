package historyrepo

import (
	"context"

	"gorm.io/gorm"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/kernel"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/order"
)

// GormHistoryRepository implements HistoryRepository using GORM.
type GormHistoryRepository struct {
	db *gorm.DB
}

// NewGormHistoryRepository creates a new GORM audit log repository.
func NewGormHistoryRepository(db *gorm.DB) *GormHistoryRepository {
	return &GormHistoryRepository{db: db}
}

// Append persists one audit entry.
func (r *GormHistoryRepository) Append(ctx context.Context, entry *order.HistoryEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetAllForOrder retrieves the order's audit entries in insertion order.
func (r *GormHistoryRepository) GetAllForOrder(
	ctx context.Context, orderID kernel.UUID,
) ([]*order.HistoryEntry, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []HistoryDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("recorded_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*order.HistoryEntry, 0, len(dtos))
	for _, dto := range dtos {
		entry, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
