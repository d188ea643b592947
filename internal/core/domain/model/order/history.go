package order

import (
	"errors"
	"time"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/kernel"
)

// ErrHistoryEntryIsNotConstructed is returned when a HistoryEntry was not
// created through NewHistoryEntry.
var ErrHistoryEntryIsNotConstructed = errors.New("HistoryEntry must be created via NewHistoryEntry constructor")

// HistoryEntry is one row of the append-only status audit log. Every
// successful transition produces exactly one entry within the same
// transaction; entries are never mutated afterwards. The log, read in
// insertion order, is the system of record for what happened when.
type HistoryEntry struct {
	id         kernel.UUID
	orderID    kernel.UUID
	status     Status
	actorID    kernel.UUID
	note       string
	recordedAt time.Time

	isConstructed bool
}

// NewHistoryEntry creates an audit entry for a completed transition.
// The actor is the human who requested it, or SystemActorID for scheduled
// transitions. Note is free text and may be empty.
func NewHistoryEntry(
	id kernel.UUID,
	orderID kernel.UUID,
	status Status,
	actorID kernel.UUID,
	note string,
	recordedAt time.Time,
) (*HistoryEntry, error) {
	entry := &HistoryEntry{
		note:          note,
		recordedAt:    recordedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		entry.setID(id),
		entry.setOrderID(orderID),
		entry.setStatus(status),
		entry.setActorID(actorID),
	); err != nil {
		return nil, err
	}

	return entry, nil
}

// Validate ensures the entry was created through NewHistoryEntry.
func (h *HistoryEntry) Validate() error {
	if h == nil || !h.isConstructed {
		return ErrHistoryEntryIsNotConstructed
	}
	return nil
}

// ID returns the entry's unique identifier.
func (h *HistoryEntry) ID() kernel.UUID {
	return h.id
}

// OrderID returns the order the entry belongs to.
func (h *HistoryEntry) OrderID() kernel.UUID {
	return h.orderID
}

// Status returns the status the order held after the transition.
func (h *HistoryEntry) Status() Status {
	return h.status
}

// ActorID returns who performed the transition.
func (h *HistoryEntry) ActorID() kernel.UUID {
	return h.actorID
}

// Note returns the free-text note attached to the transition.
func (h *HistoryEntry) Note() string {
	return h.note
}

// RecordedAt returns when the transition was recorded.
func (h *HistoryEntry) RecordedAt() time.Time {
	return h.recordedAt
}

func (h *HistoryEntry) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	h.id = id
	return nil
}

func (h *HistoryEntry) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	h.orderID = orderID
	return nil
}

func (h *HistoryEntry) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	h.status = status
	return nil
}

func (h *HistoryEntry) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	h.actorID = actorID
	return nil
}
