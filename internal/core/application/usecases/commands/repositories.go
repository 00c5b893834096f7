// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"rental/internal/core/domain/services"
	"rental/internal/core/ports"
)

// NotificationEnqueuer hands status notifications to the outbound dispatcher.
// Enqueue never blocks the calling transaction; delivery happens on a
// separate worker and its failure never rolls back a status change.
type NotificationEnqueuer interface {
	Enqueue(notification services.StatusNotification)
}

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// CouponRepoFactory provides access to coupon repository within a transaction.
	CouponRepoFactory interface {
		CouponRepository() ports.CouponRepository
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// StatusChangeRepoFactory provides access to the status audit log within a transaction.
	StatusChangeRepoFactory interface {
		StatusChangeRepository() ports.StatusChangeRepository
	}

	// CouponUoW manages transactions for coupon-only operations.
	CouponUoW interface {
		TxManager
		CouponRepoFactory
	}

	// CouponUoWFactory creates new coupon unit of work instances.
	CouponUoWFactory interface {
		Create() CouponUoW
	}

	// CheckoutUoW manages transactions for order placement, which reads and
	// spends coupons and persists the new order as one atomic write.
	CheckoutUoW interface {
		TxManager
		CouponRepoFactory
		OrderRepoFactory
	}

	// CheckoutUoWFactory creates new checkout unit of work instances.
	CheckoutUoWFactory interface {
		Create() CheckoutUoW
	}

	// StatusUoW manages transactions for status transitions, which update the
	// order and append its audit records as one atomic write.
	StatusUoW interface {
		TxManager
		OrderRepoFactory
		StatusChangeRepoFactory
	}

	// StatusUoWFactory creates new status unit of work instances.
	StatusUoWFactory interface {
		Create() StatusUoW
	}
)
