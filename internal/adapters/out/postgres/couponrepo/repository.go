package couponrepo

import (
	"context"

	"foodorder/internal/adapters/out/postgres/pgerr"
	"foodorder/internal/core/domain/model/coupon"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCouponRepository implements ports.CouponRepository using GORM.
type GormCouponRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCouponRepository creates a coupon repository bound to db.
func NewGormCouponRepository(db *gorm.DB, tracker aggregateTracker) *GormCouponRepository {
	return &GormCouponRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new coupon.
func (r *GormCouponRepository) Add(ctx context.Context, aggregate *coupon.Coupon) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerr.IsDuplicate(err) {
			return coupon.ErrCodeAlreadyExists
		}
		return pgerr.Unavailable("add coupon", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the active flag. Definition fields are immutable after
// creation and the usage counter belongs to TryIncrementUsage.
func (r *GormCouponRepository) Update(ctx context.Context, aggregate *coupon.Coupon) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&CouponDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Update("active", aggregate.IsActive())
	if result.Error != nil {
		return pgerr.Unavailable("update coupon", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("coupon", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetByCode looks the coupon up by exact code.
func (r *GormCouponRepository) GetByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	var dto CouponDTO
	if err := r.db.WithContext(ctx).First(&dto, "code = ?", code).Error; err != nil {
		if pgerr.IsNotFound(err) {
			return nil, errs.NewObjectNotFoundError("code", code)
		}
		return nil, pgerr.Unavailable("get coupon by code", err)
	}

	return toDomain(dto)
}

// CountUsages counts the usage rows of one user for one coupon.
func (r *GormCouponRepository) CountUsages(ctx context.Context, couponID, userID kernel.UUID) (int, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&CouponUsageDTO{}).
		Where("coupon_id = ? AND user_id = ?", couponID.Bytes(), userID.Bytes()).
		Count(&n).Error
	if err != nil {
		return 0, pgerr.Unavailable("count coupon usages", err)
	}
	return int(n), nil
}

// TryIncrementUsage bumps usage_count only while it is below usage_limit.
// The statement both checks and writes, so it is safe without a prior lock.
func (r *GormCouponRepository) TryIncrementUsage(ctx context.Context, couponID kernel.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&CouponDTO{}).
		Where("id = ? AND (usage_limit IS NULL OR usage_count < usage_limit)", couponID.Bytes()).
		UpdateColumn("usage_count", gorm.Expr("usage_count + 1"))
	if result.Error != nil {
		return false, pgerr.Unavailable("increment coupon usage", result.Error)
	}
	return result.RowsAffected == 1, nil
}

// AddUsage appends a usage row.
func (r *GormCouponRepository) AddUsage(ctx context.Context, usage *coupon.Usage) error {
	dto := usageFromDomain(usage)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Unavailable("add coupon usage", err)
	}
	return nil
}
