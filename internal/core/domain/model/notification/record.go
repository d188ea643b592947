package notification

import (
	"errors"
	"fmt"
	"time"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/kernel"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/pkg/errs"
)

// ErrRecordIsNotConstructed is returned when a Record was not created through
// NewRecord or RestoreRecord.
var ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecord or RestoreRecord constructor")

// Type identifies which business event a notification announces.
type Type string

// Notification types emitted by the lifecycle and pricing workflows.
const (
	TypePricingAdjusted Type = "pricing_adjusted"
	TypeQuoteSent       Type = "quote_sent"
	TypeStatusChanged   Type = "status_changed"
	TypeOrderCancelled  Type = "order_cancelled"
)

// Validate checks that the type is non-empty.
func (t Type) Validate() error {
	if t == "" {
		return errs.NewValueIsRequiredError("notification type")
	}
	return nil
}

// DeliveryStatus tracks a notification through the retry loop.
type DeliveryStatus int

const (
	// DeliveryUnknown represents an invalid or undefined delivery status.
	DeliveryUnknown DeliveryStatus = iota

	// Pending means the notification is queued and has not been attempted.
	Pending

	// Sent means delivery succeeded. Terminal.
	Sent

	// Retrying means the last attempt failed and another is scheduled.
	Retrying

	// Failed means the attempt budget is exhausted. Terminal; the record
	// stays in the ledger for operator visibility and manual resend.
	Failed
)

func getDeliveryStatusStrings() map[DeliveryStatus]string {
	return map[DeliveryStatus]string{
		DeliveryUnknown: "Unknown",
		Pending:         "Pending",
		Sent:            "Sent",
		Retrying:        "Retrying",
		Failed:          "Failed",
	}
}

// Validate checks that the value is one of the defined delivery statuses.
func (s DeliveryStatus) Validate() error {
	if _, ok := getDeliveryStatusStrings()[s]; !ok || s == DeliveryUnknown {
		return errs.NewValueIsInvalidErrorWithCause("delivery status is invalid",
			fmt.Errorf("%d is not a valid delivery status", s))
	}
	return nil
}

// String returns the human-readable name of the delivery status.
func (s DeliveryStatus) String() string {
	if str, ok := getDeliveryStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Record is one row of the delivery-attempt ledger. Business transitions
// never wait on it: the dispatcher creates a Pending record when it picks a
// message up and advances it as attempts succeed or fail.
type Record struct {
	id            kernel.UUID
	orderID       kernel.UUID
	typ           Type
	recipients    []string
	status        DeliveryStatus
	attempts      int
	lastAttemptAt *time.Time
	errorMessage  string

	isConstructed bool
}

// NewRecord creates a Pending ledger record for a queued notification.
func NewRecord(id, orderID kernel.UUID, typ Type, recipients []string) (*Record, error) {
	record := &Record{
		status:        Pending,
		recipients:    append([]string(nil), recipients...),
		isConstructed: true,
	}

	if err := errors.Join(
		record.setID(id),
		record.setOrderID(orderID),
		record.setType(typ),
	); err != nil {
		return nil, err
	}

	return record, nil
}

// RestoreRecord reconstructs a ledger record from persistence.
func RestoreRecord(
	id, orderID kernel.UUID,
	typ Type,
	recipients []string,
	status DeliveryStatus,
	attempts int,
	lastAttemptAt *time.Time,
	errorMessage string,
) (*Record, error) {
	record := &Record{
		recipients:    append([]string(nil), recipients...),
		attempts:      attempts,
		lastAttemptAt: lastAttemptAt,
		errorMessage:  errorMessage,
		isConstructed: true,
	}

	if err := errors.Join(
		record.setID(id),
		record.setOrderID(orderID),
		record.setType(typ),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	record.status = status
	return record, nil
}

// Validate ensures the record was created through a constructor.
func (r *Record) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRecordIsNotConstructed
	}
	return nil
}

// ID returns the record's unique identifier.
func (r *Record) ID() kernel.UUID {
	return r.id
}

// OrderID returns the order the notification concerns.
func (r *Record) OrderID() kernel.UUID {
	return r.orderID
}

// Type returns the notification type.
func (r *Record) Type() Type {
	return r.typ
}

// Recipients returns a copy of the recipient list.
func (r *Record) Recipients() []string {
	return append([]string(nil), r.recipients...)
}

// Status returns the current delivery status.
func (r *Record) Status() DeliveryStatus {
	return r.status
}

// Attempts returns how many delivery attempts have been made.
func (r *Record) Attempts() int {
	return r.attempts
}

// LastAttemptAt returns when delivery was last attempted, or nil.
func (r *Record) LastAttemptAt() *time.Time {
	return r.lastAttemptAt
}

// ErrorMessage returns the failure detail of the most recent failed attempt.
func (r *Record) ErrorMessage() string {
	return r.errorMessage
}

// IsTerminal reports whether no further delivery attempts will be made.
func (r *Record) IsTerminal() bool {
	return r.status == Sent || r.status == Failed
}

// RegisterSuccess records a successful delivery attempt.
func (r *Record) RegisterSuccess(now time.Time) {
	r.attempts++
	r.lastAttemptAt = &now
	r.errorMessage = ""
	r.status = Sent
}

// RegisterFailure records a failed delivery attempt. The record moves to
// Retrying until maxAttempts is reached, then to terminal Failed so retry
// storms stay bounded.
func (r *Record) RegisterFailure(now time.Time, errorMessage string, maxAttempts int) {
	r.attempts++
	r.lastAttemptAt = &now
	r.errorMessage = errorMessage
	if r.attempts >= maxAttempts {
		r.status = Failed
		return
	}
	r.status = Retrying
}

func (r *Record) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Record) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	r.orderID = orderID
	return nil
}

func (r *Record) setType(typ Type) error {
	if err := typ.Validate(); err != nil {
		return err
	}
	r.typ = typ
	return nil
}
