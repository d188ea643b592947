package orderrepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/kernel"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/order"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/pkg/errs"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order and its items to the database. New aggregates carry
// version 1.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order under an optimistic lock: the write only
// applies when the stored version still matches the version the aggregate
// was loaded at. A lost race surfaces as a ConcurrencyConflictError and
// nothing is written. Items are immutable after creation and are not
// touched here.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Omit("Items").
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConcurrencyConflictError("order", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order with its items by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).Preload("Items").First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllInDeliveredStatusWithEventStartDue retrieves Delivered orders whose
// event start date falls on or before the given day.
func (r *GormOrderRepository) GetAllInDeliveredStatusWithEventStartDue(
	ctx context.Context, day time.Time,
) ([]*order.Order, error) {
	return r.findAll(ctx, "status = ? AND event_start_date < ?", int(order.Delivered), nextMidnight(day))
}

// GetAllInUseStatusWithEventEndDue retrieves InUse orders whose event end
// date falls on or before the given day.
func (r *GormOrderRepository) GetAllInUseStatusWithEventEndDue(
	ctx context.Context, day time.Time,
) ([]*order.Order, error) {
	return r.findAll(ctx, "status = ? AND event_end_date < ?", int(order.InUse), nextMidnight(day))
}

func (r *GormOrderRepository) findAll(
	ctx context.Context, query string, args ...any,
) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).Preload("Items").Where(query, args...).Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// nextMidnight returns the first instant after the calendar day of t, so that
// "date <= day" can be expressed as "date < nextMidnight(day)".
func nextMidnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location()).AddDate(0, 0, 1)
}
