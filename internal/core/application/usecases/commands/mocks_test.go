package commands_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/application/usecases/commands"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/kernel"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/order"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/scan"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/ports"
)

type MockOrderRepo struct{ mock.Mock }

func (m *MockOrderRepo) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepo) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepo) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepo) GetAllInDeliveredStatusWithEventStartDue(
	ctx context.Context, day time.Time,
) ([]*order.Order, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepo) GetAllInUseStatusWithEventEndDue(
	ctx context.Context, day time.Time,
) ([]*order.Order, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockScanRepo struct{ mock.Mock }

func (m *MockScanRepo) Add(ctx context.Context, event *scan.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockScanRepo) GetAllForOrder(ctx context.Context, orderID kernel.UUID) ([]*scan.Event, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*scan.Event), args.Error(1)
}

type MockHistoryRepo struct{ mock.Mock }

func (m *MockHistoryRepo) Append(ctx context.Context, entry *order.HistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockHistoryRepo) GetAllForOrder(
	ctx context.Context, orderID kernel.UUID,
) ([]*order.HistoryEntry, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.HistoryEntry), args.Error(1)
}

// MockUnitOfWork satisfies every command UoW interface so one mock serves
// all handlers.
type MockUnitOfWork struct{ mock.Mock }

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUnitOfWork) ScanRepository() ports.ScanRepository {
	args := m.Called()
	return args.Get(0).(ports.ScanRepository)
}

func (m *MockUnitOfWork) HistoryRepository() ports.HistoryRepository {
	args := m.Called()
	return args.Get(0).(ports.HistoryRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockPricingUoWFactory struct{ mock.Mock }

func (m *MockPricingUoWFactory) Create() commands.PricingUoW {
	args := m.Called()
	return args.Get(0).(commands.PricingUoW)
}

type MockTransitionUoWFactory struct{ mock.Mock }

func (m *MockTransitionUoWFactory) Create() commands.TransitionUoW {
	args := m.Called()
	return args.Get(0).(commands.TransitionUoW)
}

type MockScanUoWFactory struct{ mock.Mock }

func (m *MockScanUoWFactory) Create() commands.ScanUoW {
	args := m.Called()
	return args.Get(0).(commands.ScanUoW)
}

type MockDispatcher struct{ mock.Mock }

func (m *MockDispatcher) Enqueue(message ports.NotificationMessage) {
	m.Called(message)
}
