// Package postgres provides the GORM-based Unit of Work and its repository
// factories. A unit of work spans one business transaction: repositories
// handed out while a transaction is open are bound to it, so a status
// update and its audit entry commit or roll back together.
package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/adapters/out/postgres/historyrepo"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/adapters/out/postgres/notificationrepo"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/adapters/out/postgres/orderrepo"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/adapters/out/postgres/scanrepo"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/adapters/out/postgres/tierrepo"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/kernel"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/ports"
)

// trackedAggregate represents an aggregate modified during the unit of work.
// Kept for post-commit processing such as outbox publication.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate interface{}
}

// GormUnitOfWorkFactory creates UnitOfWork instances backed by one GORM
// connection pool. Each business operation gets a fresh instance so
// concurrent operations stay isolated.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work
// instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork with its own transaction state.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction across the five
// repositories. Client code drives the lifecycle explicitly: Begin, then
// Commit or Rollback.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin starts a new database transaction. Calling Begin again while a
// transaction is open is a no-op; nested transactions are not created.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes the current transaction. Returns
// gorm.ErrInvalidTransaction when none is active.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the current transaction. Returns
// gorm.ErrInvalidTransaction when none is active.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// OrderRepository returns an order repository bound to the current
// transaction, or to the pool when none is open.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// TierRepository returns a pricing tier repository bound to the current
// transaction.
func (uow *GormUnitOfWork) TierRepository() ports.TierRepository {
	return tierrepo.NewGormTierRepository(uow.conn())
}

// ScanRepository returns a scan event repository bound to the current
// transaction.
func (uow *GormUnitOfWork) ScanRepository() ports.ScanRepository {
	return scanrepo.NewGormScanRepository(uow.conn())
}

// HistoryRepository returns an audit log repository bound to the current
// transaction.
func (uow *GormUnitOfWork) HistoryRepository() ports.HistoryRepository {
	return historyrepo.NewGormHistoryRepository(uow.conn())
}

// NotificationRepository returns a notification ledger repository bound to
// the current transaction.
func (uow *GormUnitOfWork) NotificationRepository() ports.NotificationRepository {
	return notificationrepo.NewGormNotificationRepository(uow.conn())
}

// TrackAggregate registers an aggregate modified within this unit of work.
// Repositories call it on Add and Update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}
