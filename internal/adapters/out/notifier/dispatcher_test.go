package notifier

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/kernel"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/notification"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/ports"
)

type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, record *notification.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Add(ctx context.Context, record *notification.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockNotificationRepo) Update(ctx context.Context, record *notification.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockNotificationRepo) Get(ctx context.Context, id kernel.UUID) (*notification.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Record), args.Error(1)
}

func (m *MockNotificationRepo) GetAllUnfinished(ctx context.Context) ([]*notification.Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notification.Record), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestDispatcher(t *testing.T, sender Sender, records ports.NotificationRepository) *Dispatcher {
	t.Helper()

	dispatcher, err := NewDispatcher(sender, records, testLogger())
	require.NoError(t, err)

	// Keep retry waits out of the test clock.
	dispatcher.retryDelay = time.Millisecond
	return dispatcher
}

func testMessage() ports.NotificationMessage {
	return ports.NotificationMessage{
		OrderID:    kernel.NewUUID(),
		Type:       notification.TypeStatusChanged,
		Recipients: []string{"client"},
	}
}

func TestNewDispatcher_RequiresAllDependencies(t *testing.T) {
	sender := &MockSender{}
	records := &MockNotificationRepo{}

	_, err := NewDispatcher(nil, records, testLogger())
	assert.Error(t, err)

	_, err = NewDispatcher(sender, nil, testLogger())
	assert.Error(t, err)

	_, err = NewDispatcher(sender, records, nil)
	assert.Error(t, err)
}

func TestDispatcher_DeliversAndMarksSent(t *testing.T) {
	sender := &MockSender{}
	records := &MockNotificationRepo{}
	dispatcher := newTestDispatcher(t, sender, records)

	message := testMessage()

	var ledgered *notification.Record
	records.On("Add", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		ledgered = args.Get(1).(*notification.Record)
	}).Return(nil).Once()
	sender.On("Send", mock.Anything, mock.Anything).Return(nil).Once()
	records.On("Update", mock.Anything, mock.Anything).Return(nil).Once()

	dispatcher.Start()
	dispatcher.Enqueue(message)
	dispatcher.Stop()

	sender.AssertExpectations(t)
	records.AssertExpectations(t)

	require.NotNil(t, ledgered)
	assert.True(t, ledgered.OrderID().IsEqual(message.OrderID))
	assert.Equal(t, notification.TypeStatusChanged, ledgered.Type())
	assert.Equal(t, notification.Sent, ledgered.Status())
	assert.Equal(t, 1, ledgered.Attempts())
	assert.Empty(t, ledgered.ErrorMessage())
}

func TestDispatcher_RetriesOnceThenSucceeds(t *testing.T) {
	sender := &MockSender{}
	records := &MockNotificationRepo{}
	dispatcher := newTestDispatcher(t, sender, records)

	var ledgered *notification.Record
	records.On("Add", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		ledgered = args.Get(1).(*notification.Record)
	}).Return(nil).Once()
	sender.On("Send", mock.Anything, mock.Anything).Return(errors.New("broker unavailable")).Once()
	sender.On("Send", mock.Anything, mock.Anything).Return(nil).Once()
	records.On("Update", mock.Anything, mock.Anything).Return(nil).Twice()

	dispatcher.Start()
	dispatcher.Enqueue(testMessage())
	dispatcher.Stop()

	sender.AssertExpectations(t)
	records.AssertExpectations(t)

	require.NotNil(t, ledgered)
	assert.Equal(t, notification.Sent, ledgered.Status())
	assert.Equal(t, 2, ledgered.Attempts())
	assert.Empty(t, ledgered.ErrorMessage())
}

func TestDispatcher_ExhaustsAttemptBudget(t *testing.T) {
	sender := &MockSender{}
	records := &MockNotificationRepo{}
	dispatcher := newTestDispatcher(t, sender, records)
	dispatcher.maxAttempts = 3

	var ledgered *notification.Record
	records.On("Add", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		ledgered = args.Get(1).(*notification.Record)
	}).Return(nil).Once()
	sender.On("Send", mock.Anything, mock.Anything).Return(errors.New("broker unavailable")).Times(3)
	records.On("Update", mock.Anything, mock.Anything).Return(nil).Times(3)

	dispatcher.Start()
	dispatcher.Enqueue(testMessage())
	dispatcher.Stop()

	sender.AssertExpectations(t)
	records.AssertExpectations(t)

	require.NotNil(t, ledgered)
	assert.Equal(t, notification.Failed, ledgered.Status())
	assert.Equal(t, 3, ledgered.Attempts())
	assert.Equal(t, "broker unavailable", ledgered.ErrorMessage())
}

func TestDispatcher_EnqueueAfterStopDropsMessage(t *testing.T) {
	sender := &MockSender{}
	records := &MockNotificationRepo{}
	dispatcher := newTestDispatcher(t, sender, records)

	dispatcher.Start()
	dispatcher.Stop()
	dispatcher.Enqueue(testMessage())

	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	records.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestRequeueStalled_RecoversRetryingRecord(t *testing.T) {
	sender := &MockSender{}
	records := &MockNotificationRepo{}
	dispatcher := newTestDispatcher(t, sender, records)

	attemptedAt := time.Now().UTC().Add(-time.Hour)
	stalled, err := notification.RestoreRecord(
		kernel.NewUUID(), kernel.NewUUID(),
		notification.TypeQuoteSent, []string{"client"},
		notification.Retrying, 2, &attemptedAt, "broker unavailable")
	require.NoError(t, err)

	records.On("GetAllUnfinished", mock.Anything).Return([]*notification.Record{stalled}, nil).Once()
	sender.On("Send", mock.Anything, stalled).Return(nil).Once()
	records.On("Update", mock.Anything, stalled).Return(nil).Once()

	recovered, err := dispatcher.RequeueStalled(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, recovered)
	assert.Equal(t, notification.Sent, stalled.Status())
	assert.Equal(t, 3, stalled.Attempts())
	sender.AssertExpectations(t)
	records.AssertExpectations(t)
}

func TestRequeueStalled_PropagatesLedgerError(t *testing.T) {
	sender := &MockSender{}
	records := &MockNotificationRepo{}
	dispatcher := newTestDispatcher(t, sender, records)

	records.On("GetAllUnfinished", mock.Anything).Return(nil, errors.New("connection refused")).Once()

	recovered, err := dispatcher.RequeueStalled(context.Background())
	assert.Error(t, err)
	assert.Zero(t, recovered)
}
