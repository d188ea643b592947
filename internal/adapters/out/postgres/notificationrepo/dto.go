// Package notificationrepo persists the notification delivery ledger.
package notificationrepo

import (
	"time"

	"github.com/google/uuid"

	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/kernel"
	"github.com/mesharis-cell/platform-client-main-sub003/internal/core/domain/model/notification"
)

// RecordDTO represents the database structure for delivery ledger records.
type RecordDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID `gorm:"type:uuid;index"`
	Type          string
	Recipients    []string `gorm:"serializer:json"`
	Status        int      `gorm:"index"`
	Attempts      int
	LastAttemptAt *time.Time
	ErrorMessage  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the database table name for the ledger.
func (RecordDTO) TableName() string {
	return "notifications"
}

func fromDomain(record *notification.Record) RecordDTO {
	return RecordDTO{
		ID:            record.ID().Bytes(),
		OrderID:       record.OrderID().Bytes(),
		Type:          string(record.Type()),
		Recipients:    record.Recipients(),
		Status:        int(record.Status()),
		Attempts:      record.Attempts(),
		LastAttemptAt: record.LastAttemptAt(),
		ErrorMessage:  record.ErrorMessage(),
	}
}

func toDomain(dto RecordDTO) (*notification.Record, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return notification.RestoreRecord(
		id, orderID,
		notification.Type(dto.Type),
		dto.Recipients,
		notification.DeliveryStatus(dto.Status),
		dto.Attempts,
		dto.LastAttemptAt,
		dto.ErrorMessage,
	)
}
