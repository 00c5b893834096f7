package coupon

import (
	"fmt"

	"rental/internal/pkg/errs"
)

// Scope restricts which orders a coupon may discount: every order, or only
// orders containing at least one item of a targeted category, product, or
// vendor. A scoped coupon carries the set of target IDs it matches against;
// the target set is empty if and only if the scope is ScopeAll.
type Scope int

const (
	// ScopeUnknown represents an invalid or undefined scope.
	ScopeUnknown Scope = iota

	// ScopeAll applies the coupon to any order.
	ScopeAll

	// ScopeCategory applies the coupon to orders containing a targeted category.
	ScopeCategory

	// ScopeProduct applies the coupon to orders containing a targeted product.
	ScopeProduct

	// ScopeVendor applies the coupon to orders containing a targeted vendor.
	ScopeVendor
)

func getScopeStrings() map[Scope]string {
	return map[Scope]string{
		ScopeUnknown:  "Unknown",
		ScopeAll:      "all",
		ScopeCategory: "category",
		ScopeProduct:  "product",
		ScopeVendor:   "vendor",
	}
}

func getValidScopeStrings() map[Scope]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Scope]string{
		ScopeAll:      "all",
		ScopeCategory: "category",
		ScopeProduct:  "product",
		ScopeVendor:   "vendor",
	}
}

// Validate checks if the Scope is one of the valid kinds.
func (s Scope) Validate() error {
	if _, ok := getValidScopeStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("applicableScope",
			fmt.Errorf("%d is not a valid scope", s))
	}
	return nil
}

// String returns the storage/display name of the scope.
func (s Scope) String() string {
	if str, ok := getScopeStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ScopeFromString parses a stored scope name.
func ScopeFromString(s string) (Scope, error) {
	for sc, str := range getValidScopeStrings() {
		if str == s {
			return sc, nil
		}
	}
	return ScopeUnknown, errs.NewValueIsInvalidErrorWithCause("applicableScope",
		fmt.Errorf("%q is not a valid scope", s))
}
