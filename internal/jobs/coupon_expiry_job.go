package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"rental/internal/core/application/usecases/commands"
)

// couponExpirySchedule runs the sweep at the top of every hour. Expiry has
// day granularity, so an hourly sweep bounds how long a stale coupon stays
// redeemable without hammering the coupons table.
const couponExpirySchedule = "0 0 * * * *"

// CouponExpiryJob periodically deactivates coupons whose validity window
// has passed, so expired codes are reported as not found at checkout.
type CouponExpiryJob struct {
	handler commands.DeactivateExpiredCouponsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewCouponExpiryJob creates the scheduled coupon expiry sweep.
func NewCouponExpiryJob(
	handler commands.DeactivateExpiredCouponsCommandHandler,
	logger *slog.Logger,
) *CouponExpiryJob {
	return &CouponExpiryJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "coupon_expiry_job"),
	}
}

// Start begins the hourly expiry sweep.
func (j *CouponExpiryJob) Start() error {
	_, err := j.cron.AddFunc(couponExpirySchedule, func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewDeactivateExpiredCouponsCommand()
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Failed to build coupon expiry command", "error", cmdErr)
			return
		}

		swept, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Coupon expiry sweep failed", "error", handleErr)
			return
		}

		if swept > 0 {
			j.logger.InfoContext(ctx, "Coupon expiry sweep deactivated coupons", "count", swept)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Coupon expiry job started (running hourly)")
	return nil
}

// Stop stops the coupon expiry job.
func (j *CouponExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Coupon expiry job stopped")
}
