// Package ports defines repository interfaces for the rental domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"rental/internal/core/domain/model/coupon"
)

// CouponRepository defines the persistence contract for coupon aggregates.
// Coupon codes are case-insensitive; lookups always go through the canonical
// upper-case form.
type CouponRepository interface {
	// Add persists a new coupon aggregate to storage.
	// The coupon must be valid and its code not already taken.
	Add(ctx context.Context, aggregate *coupon.Coupon) error

	// Update persists changes to an existing coupon aggregate.
	Update(ctx context.Context, aggregate *coupon.Coupon) error

	// GetByCode retrieves a coupon by its canonical code.
	// Returns errs.ErrObjectNotFound when no such coupon exists.
	GetByCode(ctx context.Context, code string) (*coupon.Coupon, error)

	// ConsumeUsage atomically spends one usage of the coupon: the stored
	// usedCount is incremented only while it is still below the usage limit,
	// as a single conditional write. Returns false when the coupon was
	// already exhausted by a concurrent checkout; the caller must then treat
	// the coupon as ineligible rather than over-redeem it.
	ConsumeUsage(ctx context.Context, code string) (bool, error)

	// DeactivateExpired flips isActive off for every active coupon whose
	// validity window has passed. Returns the number of coupons deactivated.
	DeactivateExpired(ctx context.Context) (int64, error)
}
