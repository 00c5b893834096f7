// Package couponrepo provides data transfer objects and mapping functions for coupon persistence.
// This package implements the repository pattern for the coupon domain aggregate, handling
// the conversion between domain entities and database representations.
package couponrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"rental/internal/core/domain/model/coupon"
	"rental/internal/core/domain/model/kernel"
)

// CouponDTO represents the database structure for persisting coupon aggregates.
// The canonical upper-case code carries a unique index so lookups and the
// conditional usage increment address exactly one row. Scope target IDs are
// stored as a text array.
type CouponDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code            string    `gorm:"size:64;uniqueIndex"`
	DiscountType    string    `gorm:"size:16"`
	DiscountValue   int64
	MinimumAmount   int64
	MaximumDiscount *int64
	UsageLimit      *int
	UsedCount       int
	ValidFrom       time.Time
	ValidUntil      time.Time `gorm:"index"`
	IsActive        bool      `gorm:"index"`
	Scope           string    `gorm:"size:16"`
	TargetIDs       pq.StringArray `gorm:"type:text[]"`
}

// TableName specifies the database table name for coupon entities.
// Overrides GORM's default naming convention to use "coupons".
func (CouponDTO) TableName() string {
	return "coupons"
}

// fromDomain converts a coupon domain aggregate to its database representation.
func fromDomain(aggregate *coupon.Coupon) CouponDTO {
	var maximumDiscount *int64
	if discountCap := aggregate.MaximumDiscount(); discountCap != nil {
		raw := discountCap.Int64()
		maximumDiscount = &raw
	}

	targetIDs := make(pq.StringArray, 0, len(aggregate.TargetIDs()))
	for _, id := range aggregate.TargetIDs() {
		targetIDs = append(targetIDs, id.String())
	}

	return CouponDTO{
		ID:              aggregate.ID().Bytes(),
		Code:            aggregate.Code(),
		DiscountType:    aggregate.DiscountType().String(),
		DiscountValue:   aggregate.DiscountValue(),
		MinimumAmount:   aggregate.MinimumAmount().Int64(),
		MaximumDiscount: maximumDiscount,
		UsageLimit:      aggregate.UsageLimit(),
		UsedCount:       aggregate.UsedCount(),
		ValidFrom:       aggregate.ValidFrom(),
		ValidUntil:      aggregate.ValidUntil(),
		IsActive:        aggregate.IsActive(),
		Scope:           aggregate.Scope().String(),
		TargetIDs:       targetIDs,
	}
}

// toDomain converts a database DTO to a coupon domain aggregate using RestoreCoupon.
func toDomain(dto CouponDTO) (*coupon.Coupon, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	discountType, err := coupon.DiscountTypeFromString(dto.DiscountType)
	if err != nil {
		return nil, err
	}

	scope, err := coupon.ScopeFromString(dto.Scope)
	if err != nil {
		return nil, err
	}

	var maximumDiscount *kernel.Money
	if dto.MaximumDiscount != nil {
		discountCap := kernel.Money(*dto.MaximumDiscount)
		maximumDiscount = &discountCap
	}

	targetIDs := make([]kernel.UUID, 0, len(dto.TargetIDs))
	for _, raw := range dto.TargetIDs {
		targetID, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return nil, idErr
		}
		targetIDs = append(targetIDs, targetID)
	}

	return coupon.RestoreCoupon(
		id, dto.Code, discountType, dto.DiscountValue,
		kernel.Money(dto.MinimumAmount), maximumDiscount,
		dto.UsageLimit, dto.UsedCount,
		dto.ValidFrom, dto.ValidUntil, dto.IsActive,
		scope, targetIDs)
}
