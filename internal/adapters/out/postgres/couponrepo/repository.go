package couponrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"rental/internal/core/domain/model/coupon"
	"rental/internal/core/domain/model/kernel"
	"rental/internal/pkg/errs"
)

// GormCouponRepository implements CouponRepository using GORM.
type GormCouponRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCouponRepository creates a new GORM coupon repository.
func NewGormCouponRepository(db *gorm.DB, tracker aggregateTracker) *GormCouponRepository {
	return &GormCouponRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new coupon to the database.
func (r *GormCouponRepository) Add(ctx context.Context, aggregate *coupon.Coupon) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing coupon to the database.
func (r *GormCouponRepository) Update(ctx context.Context, aggregate *coupon.Coupon) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&CouponDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetByCode retrieves a coupon by its canonical code.
func (r *GormCouponRepository) GetByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	var dto CouponDTO
	if err := r.db.WithContext(ctx).First(&dto, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("coupon", code)
		}
		return nil, err
	}

	return toDomain(dto)
}

// ConsumeUsage spends one usage of the coupon with a single conditional
// UPDATE, so two concurrent checkouts can never both take the last slot.
// Returns false when the budget was already spent (or the code is unknown).
func (r *GormCouponRepository) ConsumeUsage(ctx context.Context, code string) (bool, error) {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE coupons
		SET used_count = used_count + 1
		WHERE code = ?
		  AND is_active
		  AND (usage_limit IS NULL OR used_count < usage_limit)
	`, code)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

// DeactivateExpired switches off every active coupon whose validity window
// has passed. Returns the number of coupons deactivated.
func (r *GormCouponRepository) DeactivateExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE coupons
		SET is_active = FALSE
		WHERE is_active
		  AND valid_until < NOW()
	`)
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
