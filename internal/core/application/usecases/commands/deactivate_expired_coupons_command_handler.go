package commands

import (
	"context"
)

// DeactivateExpiredCouponsCommandHandler runs the periodic coupon expiry
// sweep. Invoked by the background job scheduler rather than a user request.
type DeactivateExpiredCouponsCommandHandler struct {
	uowFactory CouponUoWFactory
}

// NewDeactivateExpiredCouponsCommandHandler creates a handler for the sweep.
func NewDeactivateExpiredCouponsCommandHandler(uowFactory CouponUoWFactory) DeactivateExpiredCouponsCommandHandler {
	return DeactivateExpiredCouponsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle deactivates every expired coupon and returns how many were swept.
func (h *DeactivateExpiredCouponsCommandHandler) Handle(
	ctx context.Context,
	cmd DeactivateExpiredCouponsCommand,
) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	swept, err := uow.CouponRepository().DeactivateExpired(ctx)
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return swept, nil
}
