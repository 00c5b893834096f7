package kernel

import (
	"fmt"

	"rental/internal/pkg/errs"
)

// Money is a value object representing a monetary amount in the smallest
// currency unit (e.g. cents). Arithmetic on Money is plain integer
// arithmetic; there are no fractional sub-units anywhere in the domain.
//
// Money is immutable and safe for concurrent use. The zero value is a valid
// amount of zero.
type Money int64

// NewMoney creates a Money amount, rejecting negative values.
// Use this for amounts entering the domain from external input; internal
// arithmetic (e.g. subtotal minus discount) may transiently go negative and
// is clamped by callers via ClampNonNegative.
func NewMoney(amount int64) (Money, error) {
	if amount < 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d is negative", amount))
	}
	return Money(amount), nil
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return m + other
}

// Sub returns the difference of two amounts. The result may be negative;
// callers decide whether to clamp.
func (m Money) Sub(other Money) Money {
	return m - other
}

// MulInt returns the amount multiplied by a non-negative integer factor.
func (m Money) MulInt(factor int) Money {
	return m * Money(factor)
}

// Percent returns the given percentage of the amount, rounded half-up to the
// smallest currency unit. Both the amount and the percentage must be
// non-negative for the rounding to be correct.
func (m Money) Percent(percentage int64) Money {
	return Money((int64(m)*percentage + 50) / 100)
}

// Min returns the smaller of two amounts.
func (m Money) Min(other Money) Money {
	if other < m {
		return other
	}
	return m
}

// ClampNonNegative returns the amount, or zero if it is negative.
func (m Money) ClampNonNegative() Money {
	if m < 0 {
		return 0
	}
	return m
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m < 0
}

// Int64 returns the raw amount in the smallest currency unit.
func (m Money) Int64() int64 {
	return int64(m)
}
