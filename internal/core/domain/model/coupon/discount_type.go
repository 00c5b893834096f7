package coupon

import (
	"fmt"

	"rental/internal/pkg/errs"
)

// DiscountType describes how a coupon's discount value is interpreted:
// as a percentage of the order subtotal or as a fixed amount in the
// smallest currency unit.
type DiscountType int

const (
	// DiscountTypeUnknown represents an invalid or undefined discount type.
	DiscountTypeUnknown DiscountType = iota

	// Percentage discounts take discountValue percent off the subtotal,
	// optionally capped by a maximum discount amount.
	Percentage

	// Fixed discounts take discountValue currency units off the subtotal,
	// never more than the subtotal itself.
	Fixed
)

func getDiscountTypeStrings() map[DiscountType]string {
	return map[DiscountType]string{
		DiscountTypeUnknown: "Unknown",
		Percentage:          "percentage",
		Fixed:               "fixed",
	}
}

func getValidDiscountTypeStrings() map[DiscountType]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[DiscountType]string{
		Percentage: "percentage",
		Fixed:      "fixed",
	}
}

// Validate checks if the DiscountType is one of the valid kinds.
func (d DiscountType) Validate() error {
	if _, ok := getValidDiscountTypeStrings()[d]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("discountType",
			fmt.Errorf("%d is not a valid discount type", d))
	}
	return nil
}

// String returns the storage/display name of the discount type.
func (d DiscountType) String() string {
	if str, ok := getDiscountTypeStrings()[d]; ok {
		return str
	}
	return "Unknown"
}

// DiscountTypeFromString parses a stored discount type name.
func DiscountTypeFromString(s string) (DiscountType, error) {
	for dt, str := range getValidDiscountTypeStrings() {
		if str == s {
			return dt, nil
		}
	}
	return DiscountTypeUnknown, errs.NewValueIsInvalidErrorWithCause("discountType",
		fmt.Errorf("%q is not a valid discount type", s))
}
