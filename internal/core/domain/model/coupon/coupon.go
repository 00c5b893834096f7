package coupon

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"rental/internal/core/domain/model/kernel"
	"rental/internal/pkg/errs"
	"rental/internal/pkg/guard"
)

const minCodeLength = 3

// Domain errors for coupon operations.
var (
	// ErrCouponIsNotConstructed is returned when using an improperly initialized Coupon.
	ErrCouponIsNotConstructed = errors.New("Coupon must be created via NewCoupon or RestoreCoupon")
	// ErrCodeIsTooShort is returned when a coupon code has fewer than three characters.
	ErrCodeIsTooShort = errs.NewValueIsInvalidError("code must be at least 3 characters")
	// ErrValidityWindowIsInverted is returned when validFrom is not before validUntil.
	ErrValidityWindowIsInverted = errs.NewValueIsInvalidError("validFrom must be before validUntil")
	// ErrScopeTargetsMismatch is returned when the target set does not match the scope
	// kind: an all-scope coupon must have no targets, a restricted one at least one.
	ErrScopeTargetsMismatch = errs.NewValueIsInvalidError("target IDs must be empty iff scope is all")
)

// Coupon is the aggregate root for a promotional code. It owns the discount
// configuration (type, value, cap), the constraints under which it may be
// applied (validity window, minimum order amount, usage budget, scope), and
// its redemption counter.
//
// Invariants:
//   - Code is canonical (upper-case, trimmed) and at least three characters
//   - Discount value is positive, and at most 100 for percentage coupons
//   - validFrom is strictly before validUntil
//   - The target-ID set is empty exactly when the scope is ScopeAll
//   - usedCount never decreases, even when an order that applied the coupon
//     is later cancelled
//
// Coupons can only be created through NewCoupon or reconstructed from
// persistence through RestoreCoupon.
type Coupon struct {
	// id uniquely identifies the coupon
	id kernel.UUID
	// code is the canonical (upper-case) promotional code
	code string
	// discountType selects percentage or fixed discounting
	discountType DiscountType
	// discountValue is percent points for percentage coupons,
	// smallest currency units for fixed ones
	discountValue int64
	// minimumAmount is the smallest order subtotal the coupon applies to
	minimumAmount kernel.Money
	// maximumDiscount caps a percentage discount (nil = uncapped)
	maximumDiscount *kernel.Money
	// usageLimit bounds total redemptions (nil = unlimited)
	usageLimit *int
	// usedCount is the number of successfully placed orders that applied the coupon
	usedCount int
	// validFrom / validUntil bound the validity window
	validFrom  time.Time
	validUntil time.Time
	// isActive allows an administrator to switch the coupon off
	isActive bool
	// scope restricts which order contents the coupon applies to
	scope Scope
	// targetIDs are the category/product/vendor IDs matched by a restricted scope
	targetIDs []kernel.UUID

	guard guard.ConstructorGuard
}

// NewCoupon creates an active, unused Coupon with validation.
// The code is canonicalized (trimmed, upper-cased) so lookups are
// case-insensitive. maximumDiscount and usageLimit are optional; pass nil
// for uncapped/unlimited.
func NewCoupon(
	id kernel.UUID,
	code string,
	discountType DiscountType,
	discountValue int64,
	minimumAmount kernel.Money,
	maximumDiscount *kernel.Money,
	usageLimit *int,
	validFrom time.Time,
	validUntil time.Time,
	scope Scope,
	targetIDs []kernel.UUID,
) (*Coupon, error) {
	c := &Coupon{
		isActive: true,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setCode(code),
		c.setDiscount(discountType, discountValue),
		c.setMinimumAmount(minimumAmount),
		c.setMaximumDiscount(maximumDiscount),
		c.setUsageLimit(usageLimit),
		c.setValidityWindow(validFrom, validUntil),
		c.setScope(scope, targetIDs),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCoupon reconstructs a Coupon from persistence, including its
// redemption counter and activation flag. The same invariants as NewCoupon
// are enforced.
func RestoreCoupon(
	id kernel.UUID,
	code string,
	discountType DiscountType,
	discountValue int64,
	minimumAmount kernel.Money,
	maximumDiscount *kernel.Money,
	usageLimit *int,
	usedCount int,
	validFrom time.Time,
	validUntil time.Time,
	isActive bool,
	scope Scope,
	targetIDs []kernel.UUID,
) (*Coupon, error) {
	c, err := NewCoupon(id, code, discountType, discountValue, minimumAmount,
		maximumDiscount, usageLimit, validFrom, validUntil, scope, targetIDs)
	if err != nil {
		return nil, err
	}

	if usedCount < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("usedCount",
			fmt.Errorf("%d is negative", usedCount))
	}

	c.usedCount = usedCount
	c.isActive = isActive
	return c, nil
}

// Validate ensures the Coupon was created through a factory function.
func (c *Coupon) Validate() error {
	if c == nil {
		return ErrCouponIsNotConstructed
	}
	return c.guard.Validate(ErrCouponIsNotConstructed)
}

// CanonicalCode returns the canonical (upper-case, trimmed) form of a raw code.
func CanonicalCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ID returns the coupon's unique identifier.
func (c *Coupon) ID() kernel.UUID {
	return c.id
}

// Code returns the canonical promotional code.
func (c *Coupon) Code() string {
	return c.code
}

// DiscountType returns how the discount value is interpreted.
func (c *Coupon) DiscountType() DiscountType {
	return c.discountType
}

// DiscountValue returns percent points (percentage) or currency units (fixed).
func (c *Coupon) DiscountValue() int64 {
	return c.discountValue
}

// MinimumAmount returns the smallest order subtotal the coupon applies to.
func (c *Coupon) MinimumAmount() kernel.Money {
	return c.minimumAmount
}

// MaximumDiscount returns the percentage-discount cap, or nil if uncapped.
func (c *Coupon) MaximumDiscount() *kernel.Money {
	return c.maximumDiscount
}

// UsageLimit returns the redemption budget, or nil if unlimited.
func (c *Coupon) UsageLimit() *int {
	return c.usageLimit
}

// UsedCount returns how many placed orders have applied the coupon.
func (c *Coupon) UsedCount() int {
	return c.usedCount
}

// ValidFrom returns the start of the validity window.
func (c *Coupon) ValidFrom() time.Time {
	return c.validFrom
}

// ValidUntil returns the end of the validity window.
func (c *Coupon) ValidUntil() time.Time {
	return c.validUntil
}

// IsActive reports whether the coupon is switched on.
func (c *Coupon) IsActive() bool {
	return c.isActive
}

// Scope returns the applicability scope kind.
func (c *Coupon) Scope() Scope {
	return c.scope
}

// TargetIDs returns the IDs matched by a restricted scope. Empty for ScopeAll.
func (c *Coupon) TargetIDs() []kernel.UUID {
	return c.targetIDs
}

// Deactivate switches the coupon off. Deactivated coupons are reported as
// not found to customers rather than expired.
func (c *Coupon) Deactivate() {
	c.isActive = false
}

// IsExhausted reports whether the redemption budget has been spent.
func (c *Coupon) IsExhausted() bool {
	return c.usageLimit != nil && c.usedCount >= *c.usageLimit
}

func (c *Coupon) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Coupon) setCode(code string) error {
	canonical := CanonicalCode(code)
	if len(canonical) < minCodeLength {
		return ErrCodeIsTooShort
	}
	c.code = canonical
	return nil
}

func (c *Coupon) setDiscount(discountType DiscountType, discountValue int64) error {
	if err := discountType.Validate(); err != nil {
		return err
	}
	if discountValue <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("discountValue",
			fmt.Errorf("%d is not greater than 0", discountValue))
	}
	if discountType == Percentage && discountValue > 100 {
		return errs.NewValueIsOutOfRangeError("discountValue", discountValue, 1, 100)
	}
	c.discountType = discountType
	c.discountValue = discountValue
	return nil
}

func (c *Coupon) setMinimumAmount(minimumAmount kernel.Money) error {
	if minimumAmount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("minimumAmount",
			fmt.Errorf("%d is negative", minimumAmount.Int64()))
	}
	c.minimumAmount = minimumAmount
	return nil
}

func (c *Coupon) setMaximumDiscount(maximumDiscount *kernel.Money) error {
	if maximumDiscount != nil && maximumDiscount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("maximumDiscount",
			fmt.Errorf("%d is negative", maximumDiscount.Int64()))
	}
	c.maximumDiscount = maximumDiscount
	return nil
}

func (c *Coupon) setUsageLimit(usageLimit *int) error {
	if usageLimit != nil && *usageLimit <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("usageLimit",
			fmt.Errorf("%d is not greater than 0", *usageLimit))
	}
	c.usageLimit = usageLimit
	return nil
}

func (c *Coupon) setValidityWindow(validFrom, validUntil time.Time) error {
	if validFrom.IsZero() {
		return errs.NewValueIsRequiredError("validFrom")
	}
	if validUntil.IsZero() {
		return errs.NewValueIsRequiredError("validUntil")
	}
	if !validFrom.Before(validUntil) {
		return ErrValidityWindowIsInverted
	}
	c.validFrom = validFrom
	c.validUntil = validUntil
	return nil
}

func (c *Coupon) setScope(scope Scope, targetIDs []kernel.UUID) error {
	if err := scope.Validate(); err != nil {
		return err
	}
	if (scope == ScopeAll) != (len(targetIDs) == 0) {
		return ErrScopeTargetsMismatch
	}
	for _, id := range targetIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}
	c.scope = scope
	c.targetIDs = targetIDs
	return nil
}
