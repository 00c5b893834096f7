package coupon

import (
	"fmt"
	"time"

	"rental/internal/core/domain/model/kernel"
	"rental/internal/pkg/errs"
)

// EligibilityStatus names the outcome of validating a coupon against an order.
// Rejections are ordinary, user-facing results; only Eligible allows a
// discount to be computed.
type EligibilityStatus int

const (
	// EligibilityUnknown represents an invalid or undefined status.
	EligibilityUnknown EligibilityStatus = iota

	// Eligible means every check passed and the discount may be applied.
	Eligible

	// NotFound means the coupon does not exist or is deactivated.
	NotFound

	// Expired means the current time is past the coupon's validUntil.
	Expired

	// NotYetValid means the current time is before the coupon's validFrom.
	NotYetValid

	// Exhausted means the coupon's usage budget has been spent.
	Exhausted

	// MinimumAmountNotMet means the order subtotal is below the coupon's minimum.
	MinimumAmountNotMet

	// NotApplicable means no line item matches the coupon's restricted scope.
	NotApplicable
)

func getEligibilityStatusStrings() map[EligibilityStatus]string {
	return map[EligibilityStatus]string{
		EligibilityUnknown:  "Unknown",
		Eligible:            "Eligible",
		NotFound:            "CouponNotFound",
		Expired:             "CouponExpired",
		NotYetValid:         "CouponNotYetValid",
		Exhausted:           "CouponExhausted",
		MinimumAmountNotMet: "MinimumAmountNotMet",
		NotApplicable:       "NotApplicableToOrderContents",
	}
}

// String returns the wire/display name of the eligibility status.
func (s EligibilityStatus) String() string {
	if str, ok := getEligibilityStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// EligibilityResult is the typed outcome of CheckEligibility.
// Shortfall is non-zero only for MinimumAmountNotMet and carries the amount
// the subtotal would have to grow by for the coupon to apply.
type EligibilityResult struct {
	Status    EligibilityStatus
	Shortfall kernel.Money
}

// IsEligible reports whether the coupon may be applied.
func (r EligibilityResult) IsEligible() bool {
	return r.Status == Eligible
}

// EligibleResult is the result of a passed eligibility check.
func EligibleResult() EligibilityResult {
	return EligibilityResult{Status: Eligible}
}

// RejectedResult is the result of a failed eligibility check.
func RejectedResult(status EligibilityStatus) EligibilityResult {
	return EligibilityResult{Status: status}
}

// ItemRef identifies one order line for scope matching: the product it
// references plus that product's category and vendor.
type ItemRef struct {
	ProductID  kernel.UUID
	CategoryID kernel.UUID
	VendorID   kernel.UUID
}

// OrderContext carries the order-side inputs of an eligibility check:
// the subtotal before discounting, the scope-matching refs of every line
// item, and the evaluation time.
type OrderContext struct {
	Subtotal kernel.Money
	Items    []ItemRef
	Now      time.Time
}

// CheckEligibility validates the coupon against an order context.
//
// Checks run in a fixed order and short-circuit on the first failure:
// activation, validity window, usage budget, minimum amount, scope. The
// result is a typed rejection, never an error; errors are reserved for
// malformed input (negative subtotal, zero evaluation time) and
// unconstructed coupons.
func (c *Coupon) CheckEligibility(orderCtx OrderContext) (EligibilityResult, error) {
	if err := c.Validate(); err != nil {
		return EligibilityResult{}, err
	}
	if orderCtx.Subtotal.IsNegative() {
		return EligibilityResult{}, errs.NewValueIsInvalidErrorWithCause("subtotal",
			fmt.Errorf("%d is negative", orderCtx.Subtotal.Int64()))
	}
	if orderCtx.Now.IsZero() {
		return EligibilityResult{}, errs.NewValueIsRequiredError("now")
	}

	if !c.isActive {
		return RejectedResult(NotFound), nil
	}

	if orderCtx.Now.Before(c.validFrom) {
		return RejectedResult(NotYetValid), nil
	}
	if orderCtx.Now.After(c.validUntil) {
		return RejectedResult(Expired), nil
	}

	if c.IsExhausted() {
		return RejectedResult(Exhausted), nil
	}

	if orderCtx.Subtotal < c.minimumAmount {
		return EligibilityResult{
			Status:    MinimumAmountNotMet,
			Shortfall: c.minimumAmount.Sub(orderCtx.Subtotal),
		}, nil
	}

	if !c.appliesTo(orderCtx.Items) {
		return RejectedResult(NotApplicable), nil
	}

	return EligibleResult(), nil
}

// Discount computes the discount amount for an order subtotal.
// It must only be called after CheckEligibility returned Eligible.
//
// Percentage discounts are rounded half-up to the smallest currency unit and
// capped by the maximum discount when one is configured. Fixed discounts
// never exceed the subtotal.
func (c *Coupon) Discount(subtotal kernel.Money) (kernel.Money, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}
	if subtotal.IsNegative() {
		return 0, errs.NewValueIsInvalidErrorWithCause("subtotal",
			fmt.Errorf("%d is negative", subtotal.Int64()))
	}

	switch c.discountType {
	case Percentage:
		amount := subtotal.Percent(c.discountValue)
		if c.maximumDiscount != nil {
			amount = amount.Min(*c.maximumDiscount)
		}
		return amount, nil
	case Fixed:
		return kernel.Money(c.discountValue).Min(subtotal), nil
	default:
		return 0, errs.NewValueIsInvalidError("discountType")
	}
}

// appliesTo reports whether at least one line item matches the coupon's scope.
func (c *Coupon) appliesTo(items []ItemRef) bool {
	if c.scope == ScopeAll {
		return true
	}

	targets := make(map[kernel.UUID]struct{}, len(c.targetIDs))
	for _, id := range c.targetIDs {
		targets[id] = struct{}{}
	}

	for _, item := range items {
		var ref kernel.UUID
		switch c.scope {
		case ScopeCategory:
			ref = item.CategoryID
		case ScopeProduct:
			ref = item.ProductID
		case ScopeVendor:
			ref = item.VendorID
		default:
			return false
		}
		if _, ok := targets[ref]; ok {
			return true
		}
	}

	return false
}
