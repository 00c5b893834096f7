package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"rental/internal/core/domain/model/kernel"
)

// GetStatusHistoryQueryHandler retrieves an order's append-only status trail
// from the database, oldest entry first.
//
// Example:
//
//	handler := NewGetStatusHistoryQueryHandler(db)
//	query, _ := NewGetStatusHistoryQuery(orderID)
//
//	history, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get status history: %v", err)
//	    return err
//	}
type GetStatusHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetStatusHistoryQueryHandler creates a handler for status history queries.
// Requires a GORM database connection for query execution.
func NewGetStatusHistoryQueryHandler(db *gorm.DB) GetStatusHistoryQueryHandler {
	return GetStatusHistoryQueryHandler{db: db}
}

// Handle executes the query to retrieve the order's audit records.
func (h GetStatusHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetStatusHistoryQuery,
) ([]StatusHistoryEntry, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entries := make([]StatusHistoryEntry, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			field,
			value,
			notes,
			actor,
			at
		FROM status_changes
		WHERE order_id = ?
		ORDER BY at, id
	`, query.OrderID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry StatusHistoryEntry
		var id uuid.UUID

		err = rows.Scan(&id, &entry.Field, &entry.Value, &entry.Notes, &entry.Actor, &entry.At)
		if err != nil {
			return nil, err
		}

		entry.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
