package notificationrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/kernel"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/notification"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/pkg/errs"
)

// GormNotificationRepository implements NotificationRepository using GORM.
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GORM ledger repository.
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// Add persists a new ledger record.
func (r *GormNotificationRepository) Add(ctx context.Context, record *notification.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update persists attempt-state changes to an existing record.
func (r *GormNotificationRepository) Update(ctx context.Context, record *notification.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	result := r.db.WithContext(ctx).Model(&RecordDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status":          dto.Status,
			"attempts":        dto.Attempts,
			"last_attempt_at": dto.LastAttemptAt,
			"error_message":   dto.ErrorMessage,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("notification", record.ID().String())
	}

	return nil
}

// Get retrieves a ledger record by ID.
func (r *GormNotificationRepository) Get(
	ctx context.Context, id kernel.UUID,
) (*notification.Record, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RecordDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("notification", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllUnfinished retrieves Pending and Retrying records in insertion order.
func (r *GormNotificationRepository) GetAllUnfinished(
	ctx context.Context,
) ([]*notification.Record, error) {
	var dtos []RecordDTO
	err := r.db.WithContext(ctx).
		Where("status IN ?", []int{int(notification.Pending), int(notification.Retrying)}).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	records := make([]*notification.Record, 0, len(dtos))
	for _, dto := range dtos {
		record, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		records = append(records, record)
	}

	return records, nil
}
