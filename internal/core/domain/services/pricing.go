package services

import (
	"rental/internal/core/domain/model/coupon"
	"rental/internal/core/domain/model/kernel"
	"rental/internal/core/domain/model/order"
	"rental/internal/pkg/errs"
)

// CouponApplication is the outcome of checking a coupon against an order
// context: the canonical code, the eligibility result, and the discount
// computed for the order's subtotal. The discount counts toward the total
// only when the result is eligible.
type CouponApplication struct {
	Code     string
	Result   coupon.EligibilityResult
	Discount kernel.Money
}

// PriceBreakdown is the authoritative pricing snapshot for a rental order.
// It is persisted on the order at placement and never recomputed afterwards.
type PriceBreakdown struct {
	Subtotal       kernel.Money
	DeliveryCharge kernel.Money
	DiscountAmount kernel.Money
	TotalAmount    kernel.Money
	RentalDays     int
	// AppliedCouponCode is set only when an eligible coupon contributed a discount
	AppliedCouponCode *string
}

// PricingCalculator derives a rental order's price breakdown from its line
// items, rental window, delivery charge, and an optional coupon application.
//
// The calculator is purely functional: identical inputs always yield an
// identical breakdown, and it performs no I/O. The rental day count is
// derived from the window's dates rather than supplied separately, so it
// cannot disagree with them. The delivery charge is a pricing-policy input,
// taken as given.
//
// Callers persist the breakdown and, when a coupon was applied, consume one
// usage of it exactly once per successfully placed order.
type PricingCalculator struct{}

// NewPricingCalculator creates a new PricingCalculator instance.
func NewPricingCalculator() PricingCalculator {
	return PricingCalculator{}
}

// Price computes the breakdown for the given inputs.
//
// subtotal is the sum of line totals. The discount is taken from the coupon
// application when it is eligible, zero otherwise. The total is
// subtotal + deliveryCharge - discount, clamped at zero so a misconfigured
// discount can never price an order negative.
func (c PricingCalculator) Price(
	items []order.Item,
	window order.RentalWindow,
	deliveryCharge kernel.Money,
	applied *CouponApplication,
) (PriceBreakdown, error) {
	if len(items) == 0 {
		return PriceBreakdown{}, order.ErrItemsAreRequired
	}
	if err := window.Validate(); err != nil {
		return PriceBreakdown{}, err
	}
	if deliveryCharge.IsNegative() {
		return PriceBreakdown{}, errs.NewValueIsInvalidError("deliveryCharge must not be negative")
	}

	subtotal := kernel.Money(0)
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return PriceBreakdown{}, err
		}
		subtotal = subtotal.Add(item.LineTotal())
	}

	discount := kernel.Money(0)
	var appliedCode *string
	if applied != nil && applied.Result.IsEligible() {
		if applied.Discount.IsNegative() {
			return PriceBreakdown{}, errs.NewValueIsInvalidError("discount must not be negative")
		}
		discount = applied.Discount
		code := applied.Code
		appliedCode = &code
	}

	return PriceBreakdown{
		Subtotal:          subtotal,
		DeliveryCharge:    deliveryCharge,
		DiscountAmount:    discount,
		TotalAmount:       subtotal.Add(deliveryCharge).Sub(discount).ClampNonNegative(),
		RentalDays:        window.Days(),
		AppliedCouponCode: appliedCode,
	}, nil
}
