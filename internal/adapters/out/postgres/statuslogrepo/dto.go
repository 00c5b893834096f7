// Package statuslogrepo persists the append-only status audit log.
// Records are written once per successful status transition and are
// never updated or deleted.
package statuslogrepo

import (
	"time"

	"github.com/google/uuid"

	"rental/internal/core/domain/model/kernel"
	"rental/internal/core/domain/model/order"
)

// StatusChangeDTO represents the database structure for one audit record.
type StatusChangeDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID uuid.UUID `gorm:"type:uuid;not null;index"`
	Field   string    `gorm:"size:32;not null"`
	Value   string    `gorm:"size:32;not null"`
	Notes   string
	Actor   string `gorm:"size:128;not null"`
	At      time.Time
}

// TableName specifies the database table name for audit records.
// Overrides GORM's default naming convention to use "status_changes".
func (StatusChangeDTO) TableName() string {
	return "status_changes"
}

// fromDomain converts an audit record to its database representation.
func fromDomain(record order.StatusChange) StatusChangeDTO {
	return StatusChangeDTO{
		ID:      record.ID().Bytes(),
		OrderID: record.OrderID().Bytes(),
		Field:   record.Field().String(),
		Value:   record.Value(),
		Notes:   record.Notes(),
		Actor:   record.Actor(),
		At:      record.At(),
	}
}

// toDomain converts a database DTO to an audit record using RestoreStatusChange.
func toDomain(dto StatusChangeDTO) (order.StatusChange, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.StatusChange{}, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return order.StatusChange{}, err
	}

	field, err := order.StatusFieldFromString(dto.Field)
	if err != nil {
		return order.StatusChange{}, err
	}

	return order.RestoreStatusChange(id, orderID, field, dto.Value, dto.Notes, dto.Actor, dto.At)
}
