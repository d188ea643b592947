// Package scanrepo persists the append-only scan event set.
package scanrepo

import (
	"time"

	"github.com/google/uuid"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/kernel"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/scan"
)

// EventDTO represents the database structure for scan events. Rows are only
// ever inserted; there is no update or delete path.
type EventDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	Direction  int
	Quantity   int
	ActorID    uuid.UUID `gorm:"type:uuid"`
	OccurredAt time.Time
}

// TableName specifies the database table name for scan events.
func (EventDTO) TableName() string {
	return "scan_events"
}

func fromDomain(event *scan.Event) EventDTO {
	return EventDTO{
		ID:         event.ID().Bytes(),
		OrderID:    event.OrderID().Bytes(),
		Direction:  int(event.Direction()),
		Quantity:   event.Quantity(),
		ActorID:    event.ActorID().Bytes(),
		OccurredAt: event.OccurredAt(),
	}
}

func toDomain(dto EventDTO) (*scan.Event, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
	if err != nil {
		return nil, err
	}

	return scan.NewEvent(id, orderID, scan.Direction(dto.Direction), dto.Quantity, actorID, dto.OccurredAt)
}
