// Package jobs provides scheduled background tasks for the rental system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the rental service.
//
// # Available Jobs
//
// 1. CouponExpiryJob - Runs hourly to deactivate coupons whose validity window has passed
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(deactivateExpiredCouponsHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The expiry sweep uses the cron expression "0 0 * * * *", running at the
// top of every hour. Coupon validity has day granularity, so hourly is more
// than enough to keep expired codes out of checkout.
//
// # Error Handling
//
// - Sweep failures are logged and retried on the next tick
// - Failed job starts are reported to the caller so startup can abort
package jobs
