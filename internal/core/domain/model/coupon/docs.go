// Package coupon implements the promotional coupon aggregate and the
// eligibility and discount rules applied to rental orders.
//
// A coupon discounts an order's subtotal, either by a percentage (optionally
// capped) or by a fixed amount (never exceeding the subtotal). Eligibility is
// decided by an ordered chain of checks over the coupon's activation flag,
// validity window, usage budget, minimum order amount, and applicability
// scope. Rejections are expected, user-facing outcomes and are therefore
// returned as typed results rather than errors; only malformed input produces
// an error.
package coupon
