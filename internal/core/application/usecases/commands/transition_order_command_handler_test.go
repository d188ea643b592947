package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/application/usecases/commands"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/kernel"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/notification"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/order"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/scan"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/services"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/ports"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/pkg/errs"
)

func TestTransitionOrderCommandHandler_Handle_SimpleTransition(t *testing.T) {
	ctx := t.Context()
	ord := newTestOrder(t)
	actorID := kernel.NewUUID()

	cmd, err := commands.NewTransitionOrderCommand(ord.ID(), order.Submitted, actorID, "handover")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepo)
	historyRepo := new(MockHistoryRepo)
	uow := new(MockUnitOfWork)
	factory := new(MockTransitionUoWFactory)
	dispatcher := new(MockDispatcher)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Update", ctx, ord).Return(nil).Once(),
		uow.On("HistoryRepository").Return(historyRepo).Once(),
		historyRepo.On("Append", ctx, mock.AnythingOfType("*order.HistoryEntry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		dispatcher.On("Enqueue", mock.AnythingOfType("ports.NotificationMessage")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewTransitionOrderCommandHandler(factory, services.NewScanReconciler(), dispatcher)
	updated, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Submitted, updated.Status())
	dispatcher.AssertCalled(t, "Enqueue", mock.MatchedBy(func(msg ports.NotificationMessage) bool {
		return msg.Type == notification.TypeStatusChanged && msg.OrderID == ord.ID()
	}))
	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	historyRepo.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_OutboundGateSatisfied(t *testing.T) {
	ctx := t.Context()
	ord := orderInStatus(t, order.InPreparation)
	actorID := kernel.NewUUID()

	cmd, err := commands.NewTransitionOrderCommand(ord.ID(), order.ReadyForDelivery, actorID, "")
	require.NoError(t, err)

	events := []*scan.Event{
		newScanEvent(t, ord.ID(), scan.Outbound, 3),
		newScanEvent(t, ord.ID(), scan.Outbound, 2),
	}

	orderRepo := new(MockOrderRepo)
	scanRepo := new(MockScanRepo)
	historyRepo := new(MockHistoryRepo)
	uow := new(MockUnitOfWork)
	factory := new(MockTransitionUoWFactory)
	dispatcher := new(MockDispatcher)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once(),
		uow.On("ScanRepository").Return(scanRepo).Once(),
		scanRepo.On("GetAllForOrder", ctx, ord.ID()).Return(events, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Update", ctx, ord).Return(nil).Once(),
		uow.On("HistoryRepository").Return(historyRepo).Once(),
		historyRepo.On("Append", ctx, mock.AnythingOfType("*order.HistoryEntry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		dispatcher.On("Enqueue", mock.AnythingOfType("ports.NotificationMessage")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewTransitionOrderCommandHandler(factory, services.NewScanReconciler(), dispatcher)
	updated, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.ReadyForDelivery, updated.Status())
	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	scanRepo.AssertExpectations(t)
	historyRepo.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_OutboundGateShortfall(t *testing.T) {
	ctx := t.Context()
	ord := orderInStatus(t, order.InPreparation)
	actorID := kernel.NewUUID()

	cmd, err := commands.NewTransitionOrderCommand(ord.ID(), order.ReadyForDelivery, actorID, "")
	require.NoError(t, err)

	// 3 of 5 required units scanned, gate must hold.
	events := []*scan.Event{newScanEvent(t, ord.ID(), scan.Outbound, 3)}

	orderRepo := new(MockOrderRepo)
	scanRepo := new(MockScanRepo)
	uow := new(MockUnitOfWork)
	factory := new(MockTransitionUoWFactory)
	dispatcher := new(MockDispatcher)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once(),
		uow.On("ScanRepository").Return(scanRepo).Once(),
		scanRepo.On("GetAllForOrder", ctx, ord.ID()).Return(events, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewTransitionOrderCommandHandler(factory, services.NewScanReconciler(), dispatcher)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrGuardNotSatisfied)
	assert.Equal(t, order.InPreparation, ord.Status())
	dispatcher.AssertNotCalled(t, "Enqueue", mock.Anything)
	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
	scanRepo.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_Cancel(t *testing.T) {
	ctx := t.Context()
	ord := orderInStatus(t, order.Quoted)
	actorID := kernel.NewUUID()

	cmd, err := commands.NewTransitionOrderCommand(ord.ID(), order.Cancelled, actorID, "event called off")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepo)
	historyRepo := new(MockHistoryRepo)
	uow := new(MockUnitOfWork)
	factory := new(MockTransitionUoWFactory)
	dispatcher := new(MockDispatcher)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Update", ctx, ord).Return(nil).Once(),
		uow.On("HistoryRepository").Return(historyRepo).Once(),
		historyRepo.On("Append", ctx, mock.AnythingOfType("*order.HistoryEntry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		dispatcher.On("Enqueue", mock.AnythingOfType("ports.NotificationMessage")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewTransitionOrderCommandHandler(factory, services.NewScanReconciler(), dispatcher)
	updated, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, updated.Status())
	assert.Equal(t, "event called off", updated.CancellationReason())
	dispatcher.AssertCalled(t, "Enqueue", mock.MatchedBy(func(msg ports.NotificationMessage) bool {
		return msg.Type == notification.TypeOrderCancelled
	}))
	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	historyRepo.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_CancelWithoutReason(t *testing.T) {
	ctx := t.Context()
	ord := orderInStatus(t, order.Quoted)
	actorID := kernel.NewUUID()

	cmd, err := commands.NewTransitionOrderCommand(ord.ID(), order.Cancelled, actorID, "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepo)
	uow := new(MockUnitOfWork)
	factory := new(MockTransitionUoWFactory)
	dispatcher := new(MockDispatcher)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewTransitionOrderCommandHandler(factory, services.NewScanReconciler(), dispatcher)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Equal(t, order.Quoted, ord.Status())
	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_IllegalJump(t *testing.T) {
	ctx := t.Context()
	ord := newTestOrder(t)
	actorID := kernel.NewUUID()

	cmd, err := commands.NewTransitionOrderCommand(ord.ID(), order.InTransit, actorID, "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepo)
	uow := new(MockUnitOfWork)
	factory := new(MockTransitionUoWFactory)
	dispatcher := new(MockDispatcher)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewTransitionOrderCommandHandler(factory, services.NewScanReconciler(), dispatcher)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrInvalidTransition)
	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}
