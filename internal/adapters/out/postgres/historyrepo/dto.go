// Package historyrepo persists the append-only status audit log.
package historyrepo

import (
	"time"

	"github.com/google/uuid"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/kernel"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/order"
)

// HistoryDTO represents the database structure for audit log entries.
type HistoryDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	Status     int
	ActorID    uuid.UUID `gorm:"type:uuid"`
	Note       string
	RecordedAt time.Time
}

// TableName specifies the database table name for the audit log.
func (HistoryDTO) TableName() string {
	return "order_status_history"
}

func fromDomain(entry *order.HistoryEntry) HistoryDTO {
	return HistoryDTO{
		ID:         entry.ID().Bytes(),
		OrderID:    entry.OrderID().Bytes(),
		Status:     int(entry.Status()),
		ActorID:    entry.ActorID().Bytes(),
		Note:       entry.Note(),
		RecordedAt: entry.RecordedAt(),
	}
}

func toDomain(dto HistoryDTO) (*order.HistoryEntry, error) {
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

	return order.NewHistoryEntry(
		id, orderID, order.Status(dto.Status), actorID, dto.Note, dto.RecordedAt,
	)
}
