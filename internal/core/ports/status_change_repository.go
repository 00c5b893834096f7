package ports

import (
	"context"

	"rental/internal/core/domain/model/kernel"
	"rental/internal/core/domain/model/order"
)

// StatusChangeRepository defines the persistence contract for the append-only
// status audit log. Records are only ever added and read, never mutated.
type StatusChangeRepository interface {
	// Add persists the audit records produced by one status transition.
	Add(ctx context.Context, records []order.StatusChange) error

	// GetAllByOrder retrieves an order's audit trail, oldest first.
	GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]order.StatusChange, error)
}
