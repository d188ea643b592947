package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/kernel"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/scan"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
)

// systemActorUUID identifies automated (scheduler-driven) transitions in the
// status history.
const systemActorUUID = "00000000-0000-0000-0000-000000000001"

// SystemActorID returns the designated actor identity recorded for
// transitions applied by the scheduled trigger runner.
func SystemActorID() kernel.UUID {
	id, err := kernel.UUIDFromString(systemActorUUID)
	if err != nil {
		panic(err)
	}
	return id
}

// Order is the central aggregate of the fulfillment system. It owns the
// lifecycle status, the pricing snapshot produced by the two-step approval
// workflow, the required-quantity items the scan gate reconciles against,
// and the cancellation metadata.
//
// Invariants:
//   - status only advances through validated transitions
//   - finalTotalPrice is defined only once pmgMarginAmount is set
//   - exactly one company owns the order, immutable after creation
//   - money and percent fields are decimal-exact, two decimal places
//
// All mutation goes through methods that enforce the transition table and
// the transition-specific guards.
type Order struct {
	id        kernel.UUID
	companyID kernel.UUID
	brandID   *kernel.UUID

	status          Status
	financialStatus FinancialStatus

	eventStartDate time.Time
	eventEndDate   time.Time
	venue          Venue

	items []Item

	// Pricing snapshot written by the adjustment and approval steps.
	a2BasePrice        *decimal.Decimal
	a2AdjustedPrice    *decimal.Decimal
	a2AdjustmentReason string
	a2AdjustedBy       *kernel.UUID
	a2AdjustedAt       *time.Time
	pmgMarginPercent   *decimal.Decimal
	pmgMarginAmount    *decimal.Decimal
	finalTotalPrice    *decimal.Decimal
	pmgReviewedBy      *kernel.UUID
	pmgReviewedAt      *time.Time
	quoteSentAt        *time.Time

	cancellationReason string
	cancelledBy        *kernel.UUID
	cancelledAt        *time.Time

	truckPhotoRefs []string

	// version supports optimistic locking; bumped by the repository on update.
	version int

	isConstructed bool
}

// NewOrder creates a new order in Draft status owned by the given company.
// The event window must be ordered (end not before start). Items may be empty
// at creation and added through item management before confirmation.
func NewOrder(
	id kernel.UUID,
	companyID kernel.UUID,
	brandID *kernel.UUID,
	venue Venue,
	eventStartDate time.Time,
	eventEndDate time.Time,
	items []Item,
) (*Order, error) {
	o := &Order{
		status:          Draft,
		financialStatus: Unbilled,
		version:         1,
		isConstructed:   true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCompanyID(companyID),
		o.setBrandID(brandID),
		o.setVenue(venue),
		o.setEventWindow(eventStartDate, eventEndDate),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrderParams carries the full persisted state of an order.
type RestoreOrderParams struct {
	ID                 kernel.UUID
	CompanyID          kernel.UUID
	BrandID            *kernel.UUID
	Status             Status
	FinancialStatus    FinancialStatus
	EventStartDate     time.Time
	EventEndDate       time.Time
	Venue              Venue
	Items              []Item
	A2BasePrice        *decimal.Decimal
	A2AdjustedPrice    *decimal.Decimal
	A2AdjustmentReason string
	A2AdjustedBy       *kernel.UUID
	A2AdjustedAt       *time.Time
	PmgMarginPercent   *decimal.Decimal
	PmgMarginAmount    *decimal.Decimal
	FinalTotalPrice    *decimal.Decimal
	PmgReviewedBy      *kernel.UUID
	PmgReviewedAt      *time.Time
	QuoteSentAt        *time.Time
	CancellationReason string
	CancelledBy        *kernel.UUID
	CancelledAt        *time.Time
	TruckPhotoRefs     []string
	Version            int
}

// RestoreOrder reconstructs an order from persistence without replaying its
// lifecycle. Status and financial status are validated; pricing stamps are
// taken as stored.
func RestoreOrder(params RestoreOrderParams) (*Order, error) {
	o := &Order{
		a2BasePrice:        params.A2BasePrice,
		a2AdjustedPrice:    params.A2AdjustedPrice,
		a2AdjustmentReason: params.A2AdjustmentReason,
		a2AdjustedBy:       params.A2AdjustedBy,
		a2AdjustedAt:       params.A2AdjustedAt,
		pmgMarginPercent:   params.PmgMarginPercent,
		pmgMarginAmount:    params.PmgMarginAmount,
		finalTotalPrice:    params.FinalTotalPrice,
		pmgReviewedBy:      params.PmgReviewedBy,
		pmgReviewedAt:      params.PmgReviewedAt,
		quoteSentAt:        params.QuoteSentAt,
		cancellationReason: params.CancellationReason,
		cancelledBy:        params.CancelledBy,
		cancelledAt:        params.CancelledAt,
		truckPhotoRefs:     params.TruckPhotoRefs,
		version:            params.Version,
		isConstructed:      true,
	}

	if err := errors.Join(
		o.setID(params.ID),
		o.setCompanyID(params.CompanyID),
		o.setBrandID(params.BrandID),
		o.setVenue(params.Venue),
		o.setEventWindow(params.EventStartDate, params.EventEndDate),
		o.setItems(params.Items),
		params.Status.Validate(),
		params.FinancialStatus.Validate(),
	); err != nil {
		return nil, err
	}

	o.status = params.Status
	o.financialStatus = params.FinancialStatus
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CompanyID returns the owning company. Immutable after creation.
func (o *Order) CompanyID() kernel.UUID {
	return o.companyID
}

// BrandID returns the optional brand association.
func (o *Order) BrandID() *kernel.UUID {
	return o.brandID
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// FinancialStatus returns the current billing state.
func (o *Order) FinancialStatus() FinancialStatus {
	return o.financialStatus
}

// EventStartDate returns the first day of the event window.
func (o *Order) EventStartDate() time.Time {
	return o.eventStartDate
}

// EventEndDate returns the last day of the event window.
func (o *Order) EventEndDate() time.Time {
	return o.eventEndDate
}

// Venue returns the event venue and contact details.
func (o *Order) Venue() Venue {
	return o.venue
}

// Items returns a copy of the order's required-quantity lines.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// RequiredQuantity returns the total units the scan gate must account for.
func (o *Order) RequiredQuantity() int {
	total := 0
	for _, item := range o.items {
		total += item.Quantity()
	}
	return total
}

// A2BasePrice returns the agreed base price, if recorded.
func (o *Order) A2BasePrice() *decimal.Decimal {
	return o.a2BasePrice
}

// A2AdjustedPrice returns the operator-adjusted price, if recorded.
func (o *Order) A2AdjustedPrice() *decimal.Decimal {
	return o.a2AdjustedPrice
}

// A2AdjustmentReason returns the mandatory adjustment justification.
func (o *Order) A2AdjustmentReason() string {
	return o.a2AdjustmentReason
}

// A2AdjustedBy returns who recorded the price adjustment.
func (o *Order) A2AdjustedBy() *kernel.UUID {
	return o.a2AdjustedBy
}

// A2AdjustedAt returns when the price adjustment was recorded.
func (o *Order) A2AdjustedAt() *time.Time {
	return o.a2AdjustedAt
}

// PmgMarginPercent returns the approved margin percentage, if recorded.
func (o *Order) PmgMarginPercent() *decimal.Decimal {
	return o.pmgMarginPercent
}

// PmgMarginAmount returns the derived margin amount, if recorded.
func (o *Order) PmgMarginAmount() *decimal.Decimal {
	return o.pmgMarginAmount
}

// FinalTotalPrice returns the derived client-facing total. Defined only once
// the margin amount is set; never independently editable.
func (o *Order) FinalTotalPrice() *decimal.Decimal {
	return o.finalTotalPrice
}

// PmgReviewedBy returns who approved the final pricing.
func (o *Order) PmgReviewedBy() *kernel.UUID {
	return o.pmgReviewedBy
}

// PmgReviewedAt returns when the final pricing was approved.
func (o *Order) PmgReviewedAt() *time.Time {
	return o.pmgReviewedAt
}

// QuoteSentAt returns when the quote was sent to the client.
func (o *Order) QuoteSentAt() *time.Time {
	return o.quoteSentAt
}

// CancellationReason returns the recorded cancellation reason, if any.
func (o *Order) CancellationReason() string {
	return o.cancellationReason
}

// CancelledBy returns who cancelled the order.
func (o *Order) CancelledBy() *kernel.UUID {
	return o.cancelledBy
}

// CancelledAt returns when the order was cancelled.
func (o *Order) CancelledAt() *time.Time {
	return o.cancelledAt
}

// TruckPhotoRefs returns references to loading photos attached to the order.
func (o *Order) TruckPhotoRefs() []string {
	refs := make([]string, len(o.truckPhotoRefs))
	copy(refs, o.truckPhotoRefs)
	return refs
}

// Version returns the optimistic-lock counter as loaded from persistence.
func (o *Order) Version() int {
	return o.version
}

// AddTruckPhoto attaches a loading photo reference to the order.
func (o *Order) AddTruckPhoto(ref string) error {
	if ref == "" {
		return errs.NewValueIsRequiredError("photo reference")
	}
	o.truckPhotoRefs = append(o.truckPhotoRefs, ref)
	return nil
}

// TransitionTo applies a transition that needs no external evidence: the
// table is checked, and the guards that read only order state (pricing
// approval, event dates) are enforced. Transitions that require a scan
// report or a cancellation reason must go through MarkReadyForDelivery,
// Close, or Cancel.
func (o *Order) TransitionTo(target Status, now time.Time) error {
	switch target {
	case Quoted:
		return o.MarkQuoted()
	case InUse:
		return o.BeginUsage(now)
	case AwaitingReturn:
		return o.BeginReturn(now)
	case ReadyForDelivery:
		return NewGuardNotSatisfiedError(o.status, target, "outbound scan reconciliation not provided")
	case Closed:
		return NewGuardNotSatisfiedError(o.status, target, "inbound scan reconciliation not provided")
	case Cancelled:
		return errs.NewValueIsRequiredError("cancellation reason")
	}

	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// AdjustPricing records the first-line reviewer's price adjustment and moves
// the order from PricingReview to PendingApproval. The adjusted price must be
// positive and the reason is mandatory.
func (o *Order) AdjustPricing(adjustedPrice decimal.Decimal, reason string, actorID kernel.UUID, now time.Time) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	if !adjustedPrice.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("adjusted price is invalid",
			fmt.Errorf("%s is not greater than 0", adjustedPrice))
	}
	if reason == "" {
		return errs.NewValueIsRequiredError("adjustment reason")
	}

	newStatus, err := o.status.TransitionTo(PendingApproval)
	if err != nil {
		return err
	}

	price := adjustedPrice.Round(2)
	o.a2AdjustedPrice = &price
	o.a2AdjustmentReason = reason
	o.a2AdjustedBy = &actorID
	o.a2AdjustedAt = &now
	o.status = newStatus
	return nil
}

// ApprovePricing records the final reviewer's decision and moves the order
// from PendingApproval to Quoted. The base price must be positive; the margin
// percent may be zero but not negative. The margin amount and final total are
// derived here and nowhere else:
//
//	pmgMarginAmount = a2BasePrice * pmgMarginPercent / 100
//	finalTotalPrice = a2BasePrice + pmgMarginAmount
//
// Both are rounded to two decimal places. The quote timestamp is stamped as
// part of the same transition.
func (o *Order) ApprovePricing(basePrice, marginPercent decimal.Decimal, actorID kernel.UUID, now time.Time) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	if !basePrice.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("base price is invalid",
			fmt.Errorf("%s is not greater than 0", basePrice))
	}
	if marginPercent.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("margin percent is invalid",
			fmt.Errorf("%s is negative", marginPercent))
	}

	newStatus, err := o.status.TransitionTo(Quoted)
	if err != nil {
		return err
	}

	base := basePrice.Round(2)
	margin := marginPercent.Round(2)
	marginAmount := base.Mul(margin).Div(decimal.NewFromInt(100)).Round(2)
	total := base.Add(marginAmount).Round(2)

	o.a2BasePrice = &base
	o.pmgMarginPercent = &margin
	o.pmgMarginAmount = &marginAmount
	o.finalTotalPrice = &total
	o.pmgReviewedBy = &actorID
	o.pmgReviewedAt = &now
	o.quoteSentAt = &now
	o.status = newStatus
	return nil
}

// MarkQuoted moves PendingApproval to Quoted when pricing approval has
// already been recorded. Used by the generic transition path; the normal
// route is ApprovePricing, which records the approval and transitions in one
// step.
func (o *Order) MarkQuoted() error {
	newStatus, err := o.status.TransitionTo(Quoted)
	if err != nil {
		return err
	}
	if o.pmgMarginPercent == nil || o.finalTotalPrice == nil {
		return NewGuardNotSatisfiedError(o.status, Quoted, "pricing approval has not been recorded")
	}

	o.status = newStatus
	return nil
}

// MarkReadyForDelivery moves InPreparation to ReadyForDelivery when the
// outbound scan gate is satisfied.
func (o *Order) MarkReadyForDelivery(gate scan.Report) error {
	newStatus, err := o.status.TransitionTo(ReadyForDelivery)
	if err != nil {
		return err
	}
	if gate.Direction != scan.Outbound {
		return errs.NewValueIsInvalidError("gate direction must be outbound")
	}
	if !gate.Satisfied() {
		return NewGuardNotSatisfiedError(o.status, ReadyForDelivery,
			fmt.Sprintf("outbound scans cover %d of %d required units, %d missing",
				gate.Scanned, gate.Required, gate.Shortfall()))
	}

	o.status = newStatus
	return nil
}

// Close moves AwaitingReturn to Closed when the inbound scan gate is
// satisfied, completing the lifecycle.
func (o *Order) Close(gate scan.Report) error {
	newStatus, err := o.status.TransitionTo(Closed)
	if err != nil {
		return err
	}
	if gate.Direction != scan.Inbound {
		return errs.NewValueIsInvalidError("gate direction must be inbound")
	}
	if !gate.Satisfied() {
		return NewGuardNotSatisfiedError(o.status, Closed,
			fmt.Sprintf("inbound scans cover %d of %d required units, %d missing",
				gate.Scanned, gate.Required, gate.Shortfall()))
	}

	o.status = newStatus
	return nil
}

// BeginUsage moves Delivered to InUse once the event start date has been
// reached. Normally invoked by the scheduled trigger runner with the system
// actor; manual calls are date-guarded the same way.
func (o *Order) BeginUsage(now time.Time) error {
	newStatus, err := o.status.TransitionTo(InUse)
	if err != nil {
		return err
	}
	if !dateReached(o.eventStartDate, now) {
		return NewGuardNotSatisfiedError(o.status, InUse,
			fmt.Sprintf("event start date %s has not been reached", o.eventStartDate.Format("2006-01-02")))
	}

	o.status = newStatus
	return nil
}

// BeginReturn moves InUse to AwaitingReturn once the event end date has been
// reached.
func (o *Order) BeginReturn(now time.Time) error {
	newStatus, err := o.status.TransitionTo(AwaitingReturn)
	if err != nil {
		return err
	}
	if !dateReached(o.eventEndDate, now) {
		return NewGuardNotSatisfiedError(o.status, AwaitingReturn,
			fmt.Sprintf("event end date %s has not been reached", o.eventEndDate.Format("2006-01-02")))
	}

	o.status = newStatus
	return nil
}

// Cancel terminates the order from any non-terminal status. The reason is
// mandatory. A paid order is marked Refunded; settlement happens outside
// this system.
func (o *Order) Cancel(reason string, actorID kernel.UUID, now time.Time) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	if !o.status.CanCancel() {
		return NewInvalidTransitionError(o.status, Cancelled)
	}
	if reason == "" {
		return errs.NewValueIsRequiredError("cancellation reason")
	}

	o.cancellationReason = reason
	o.cancelledBy = &actorID
	o.cancelledAt = &now
	if o.financialStatus == Paid {
		o.financialStatus = Refunded
	}
	o.status = Cancelled
	return nil
}

// dateReached reports whether now falls on or after the calendar day of
// event, ignoring the time of day.
func dateReached(event, now time.Time) bool {
	y, m, d := event.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, event.Location())
	return !now.Before(dayStart)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCompanyID(companyID kernel.UUID) error {
	if err := companyID.Validate(); err != nil {
		return err
	}
	o.companyID = companyID
	return nil
}

func (o *Order) setBrandID(brandID *kernel.UUID) error {
	if brandID == nil {
		return nil
	}
	if err := brandID.Validate(); err != nil {
		return err
	}
	o.brandID = brandID
	return nil
}

func (o *Order) setVenue(venue Venue) error {
	if err := venue.Validate(); err != nil {
		return err
	}
	o.venue = venue
	return nil
}

func (o *Order) setEventWindow(start, end time.Time) error {
	if start.IsZero() {
		return errs.NewValueIsRequiredError("event start date")
	}
	if end.IsZero() {
		return errs.NewValueIsRequiredError("event end date")
	}
	if end.Before(start) {
		return errs.NewValueIsInvalidErrorWithCause("event window is invalid",
			fmt.Errorf("end date %s is before start date %s",
				end.Format("2006-01-02"), start.Format("2006-01-02")))
	}
	o.eventStartDate = start
	o.eventEndDate = end
	return nil
}

func (o *Order) setItems(items []Item) error {
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}
