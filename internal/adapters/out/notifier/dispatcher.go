package notifier

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/kernel"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/notification"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/ports"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/pkg/errs"
)

const (
	defaultQueueCapacity  = 256
	defaultMaxAttempts    = 5
	defaultAttemptTimeout = 10 * time.Second
	defaultRetryDelay     = 2 * time.Second
)

// Dispatcher is the queue-backed implementation of
// ports.NotificationDispatcher. Enqueue hands the message to a buffered
// channel and returns; a single worker goroutine drains the channel, writes
// the delivery-attempt ledger and drives the bounded retry loop.
//
// The worker owns the ledger: a Pending record is created when the message is
// picked up, and advanced to Sent, Retrying or Failed as attempts run.
type Dispatcher struct {
	sender  Sender
	records ports.NotificationRepository
	logger  *slog.Logger

	maxAttempts    int
	attemptTimeout time.Duration
	retryDelay     time.Duration

	queue chan ports.NotificationMessage
	wg    sync.WaitGroup

	mu      sync.Mutex
	started bool
	closed  bool
}

// NewDispatcher creates a dispatcher over the given sender and ledger
// repository. Call Start before enqueueing.
func NewDispatcher(
	sender Sender,
	records ports.NotificationRepository,
	logger *slog.Logger,
) (*Dispatcher, error) {
	if sender == nil {
		return nil, errs.NewValueIsRequiredError("sender")
	}
	if records == nil {
		return nil, errs.NewValueIsRequiredError("records")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	return &Dispatcher{
		sender:         sender,
		records:        records,
		logger:         logger.With("component", "notification_dispatcher"),
		maxAttempts:    defaultMaxAttempts,
		attemptTimeout: defaultAttemptTimeout,
		retryDelay:     defaultRetryDelay,
		queue:          make(chan ports.NotificationMessage, defaultQueueCapacity),
	}, nil
}

// Start launches the worker goroutine.
func (d *Dispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started || d.closed {
		return
	}
	d.started = true

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		for message := range d.queue {
			d.deliver(context.Background(), message)
		}
	}()
}

// Stop closes the queue and waits for the worker to drain it. Messages
// already enqueued are still delivered; new Enqueue calls are dropped.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	d.wg.Wait()
}

// Enqueue hands a message to the worker without blocking. When the queue is
// full or the dispatcher is stopped the message is dropped with an error log;
// notification failure must never fail the business operation that raised it.
func (d *Dispatcher) Enqueue(message ports.NotificationMessage) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		d.logger.Error("Notification dropped, dispatcher stopped",
			"order_id", message.OrderID.String(), "type", string(message.Type))
		return
	}

	select {
	case d.queue <- message:
	default:
		d.logger.Error("Notification dropped, queue full",
			"order_id", message.OrderID.String(), "type", string(message.Type))
	}
}

// RequeueStalled re-runs delivery for ledger records stranded in Pending or
// Retrying, typically after a crash cut the retry loop short. Records keep
// their attempt count, so the overall budget still holds.
func (d *Dispatcher) RequeueStalled(ctx context.Context) (int, error) {
	stalled, err := d.records.GetAllUnfinished(ctx)
	if err != nil {
		return 0, err
	}

	recovered := 0
	for _, record := range stalled {
		if d.attempt(ctx, record) {
			recovered++
		}
	}

	return recovered, nil
}

// deliver creates the ledger record for a fresh message and runs attempts.
func (d *Dispatcher) deliver(ctx context.Context, message ports.NotificationMessage) {
	record, err := notification.NewRecord(kernel.NewUUID(), message.OrderID, message.Type, message.Recipients)
	if err != nil {
		d.logger.ErrorContext(ctx, "Notification record rejected",
			"order_id", message.OrderID.String(), "error", err)
		return
	}

	if err := d.records.Add(ctx, record); err != nil {
		d.logger.ErrorContext(ctx, "Notification ledger write failed",
			"order_id", message.OrderID.String(), "error", err)
		return
	}

	d.attempt(ctx, record)
}

// attempt runs delivery attempts on a record until it goes terminal, writing
// each state change back to the ledger. Returns true when the record ends in
// Sent.
func (d *Dispatcher) attempt(ctx context.Context, record *notification.Record) bool {
	for !record.IsTerminal() {
		attemptCtx, cancel := context.WithTimeout(ctx, d.attemptTimeout)
		sendErr := d.sender.Send(attemptCtx, record)
		cancel()

		now := time.Now().UTC()
		if sendErr == nil {
			record.RegisterSuccess(now)
		} else {
			record.RegisterFailure(now, sendErr.Error(), d.maxAttempts)
			d.logger.WarnContext(ctx, "Notification attempt failed",
				"order_id", record.OrderID().String(),
				"type", string(record.Type()),
				"attempt", record.Attempts(),
				"error", sendErr)
		}

		if err := d.records.Update(ctx, record); err != nil {
			d.logger.ErrorContext(ctx, "Notification ledger update failed",
				"record_id", record.ID().String(), "error", err)
		}

		if record.Status() == notification.Retrying {
			select {
			case <-ctx.Done():
				return false
			case <-time.After(d.retryDelay):
			}
		}
	}

	if record.Status() == notification.Failed {
		d.logger.ErrorContext(ctx, "Notification delivery exhausted",
			"order_id", record.OrderID().String(),
			"type", string(record.Type()),
			"attempts", record.Attempts())
		return false
	}

	return true
}
