package commands

import (
	"errors"

	"rental/internal/pkg/guard"
)

var ErrDeactivateExpiredCouponsCommandIsNotConstructed = errors.New(
	"DeactivateExpiredCouponsCommand must be created via NewDeactivateExpiredCouponsCommand constructor",
)

// DeactivateExpiredCouponsCommand represents a maintenance sweep that turns
// off every active coupon whose validity window has passed. Deactivated
// coupons are reported to customers as not found rather than expired.
type DeactivateExpiredCouponsCommand struct {
	guard guard.ConstructorGuard
}

// NewDeactivateExpiredCouponsCommand creates the sweep command.
func NewDeactivateExpiredCouponsCommand() (DeactivateExpiredCouponsCommand, error) {
	return DeactivateExpiredCouponsCommand{
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeactivateExpiredCouponsCommand) Validate() error {
	return c.guard.Validate(ErrDeactivateExpiredCouponsCommandIsNotConstructed)
}
