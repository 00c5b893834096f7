package queries

import (
	"errors"
	"time"

	"rental/internal/core/domain/model/kernel"
	"rental/internal/pkg/guard"
)

var ErrGetStatusHistoryQueryIsNotConstructed = errors.New(
	"GetStatusHistoryQuery must be created via NewGetStatusHistoryQuery constructor",
)

// GetStatusHistoryQuery retrieves one order's status audit trail.
//
// Example:
//
//	query, err := NewGetStatusHistoryQuery(orderID)
//	if err != nil {
//	    return fmt.Errorf("invalid history request: %w", err)
//	}
//
//	history, err := handler.Handle(ctx, query)
type GetStatusHistoryQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetStatusHistoryQuery creates a history query for one order.
func NewGetStatusHistoryQuery(orderID kernel.UUID) (GetStatusHistoryQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetStatusHistoryQuery{}, err
	}

	return GetStatusHistoryQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetStatusHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetStatusHistoryQueryIsNotConstructed)
}

// OrderID returns the order whose trail is requested.
func (q GetStatusHistoryQuery) OrderID() kernel.UUID {
	return q.orderID
}

// StatusHistoryEntry is one recorded status change.
type StatusHistoryEntry struct {
	ID    kernel.UUID `json:"id"`
	Field string      `json:"field"`
	Value string      `json:"value"`
	Notes string      `json:"notes,omitempty"`
	Actor string      `json:"actor"`
	At    time.Time   `json:"at"`
}
