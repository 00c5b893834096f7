package ports

import (
	"context"

	"rental/internal/core/domain/model/kernel"
	"rental/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate under an
	// optimistic-concurrency check: the write succeeds only if the stored
	// version still matches the aggregate's loaded version, and bumps it.
	// Returns errs.ErrVersionIsInvalid when another writer got there first;
	// the caller must reload and re-apply rather than retry blindly.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with its items and current status fields.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllByDeliveryPartner retrieves every order assigned to one delivery
	// worker, for the delivery queue views.
	GetAllByDeliveryPartner(ctx context.Context, partnerID kernel.UUID) ([]*order.Order, error)
}
