package discount

import (
	"context"
	"errors"

	"github.com/avaldez-dev/storefront-pricing/internal/order"
	"github.com/avaldez-dev/storefront-pricing/internal/repo"
	"github.com/avaldez-dev/storefront-pricing/pkg/db/models"
	pkgerrors "github.com/avaldez-dev/storefront-pricing/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UsageStore persists redemption counters. All limit enforcement at
// completion time happens through guarded increments, so two orders racing
// for the last use of a coupon cannot both win.
type UsageStore struct {
	repo.Base
}

func NewUsageStore(db *gorm.DB) *UsageStore {
	return &UsageStore{Base: repo.NewBase(db)}
}

// CustomerUses returns the completed redemption count for one customer.
func (s *UsageStore) CustomerUses(ctx context.Context, discountID, customerID uuid.UUID) (int64, error) {
	var row models.CustomerDiscountUse
	err := s.DB(ctx).
		Where("discount_id = ? AND customer_id = ?", discountID, customerID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return row.Uses, nil
}

// EmailUses returns the completed redemption count for one email address.
func (s *UsageStore) EmailUses(ctx context.Context, discountID uuid.UUID, email string) (int64, error) {
	var row models.EmailDiscountUse
	err := s.DB(ctx).
		Where("discount_id = ? AND email = ?", discountID, email).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return row.Uses, nil
}

// RecordUse claims one use of the order's coupon inside a single
// transaction: the aggregate discount counter, the coupon counter, and the
// per-customer and per-email counters where a limit is configured. Each
// increment is guarded by its limit in the WHERE clause; zero rows affected
// means another order took the last slot, and the whole claim rolls back
// with the same stable message the availability check would have produced.
// An order with no coupon, or a code that no longer resolves to a discount
// (promotion deleted after checkout), is a no-op: the order already
// completed, there is nothing left to count.
func (s *UsageStore) RecordUse(ctx context.Context, o *order.Order) error {
	if o.CouponCode == "" {
		return nil
	}

	return s.WithTx(ctx, func(tx *gorm.DB) error {
		var coupon models.Coupon
		err := tx.Where("code = ?", o.CouponCode).First(&coupon).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		var disc models.Discount
		err = tx.Where("id = ?", coupon.DiscountID).First(&disc).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		res := tx.Model(&models.Discount{}).
			Where("id = ? AND (total_use_limit = 0 OR total_uses < total_use_limit)", disc.ID).
			UpdateColumn("total_uses", gorm.Expr("total_uses + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return pkgerrors.New(pkgerrors.CodeStateConflict, MsgDiscountLimitReached)
		}

		res = tx.Model(&models.Coupon{}).
			Where("id = ? AND (max_uses = 0 OR uses < max_uses)", coupon.ID).
			UpdateColumn("uses", gorm.Expr("uses + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return pkgerrors.New(pkgerrors.CodeStateConflict, MsgCouponLimitReached)
		}

		if disc.PerUserLimit > 0 {
			if !o.Registered() {
				return pkgerrors.New(pkgerrors.CodeStateConflict, MsgRegisteredUsersOnly)
			}
			if err := s.claimCustomerUse(tx, &disc, o.Customer.ID); err != nil {
				return err
			}
		}

		if disc.PerEmailLimit > 0 && o.Email != "" {
			if err := s.claimEmailUse(tx, &disc, o.Email); err != nil {
				return err
			}
		}

		return nil
	})
}

func (s *UsageStore) claimCustomerUse(tx *gorm.DB, disc *models.Discount, customerID uuid.UUID) error {
	var row models.CustomerDiscountUse
	err := tx.Where("discount_id = ? AND customer_id = ?", disc.ID, customerID).
		Attrs(models.CustomerDiscountUse{
			ID:         uuid.New(),
			DiscountID: disc.ID,
			CustomerID: customerID,
		}).
		FirstOrCreate(&row).Error
	if err != nil {
		return err
	}

	res := tx.Model(&models.CustomerDiscountUse{}).
		Where("id = ? AND uses < ?", row.ID, disc.PerUserLimit).
		UpdateColumn("uses", gorm.Expr("uses + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeStateConflict, MsgPerUserLimit(disc.PerUserLimit))
	}
	return nil
}

func (s *UsageStore) claimEmailUse(tx *gorm.DB, disc *models.Discount, email string) error {
	var row models.EmailDiscountUse
	err := tx.Where("discount_id = ? AND email = ?", disc.ID, email).
		Attrs(models.EmailDiscountUse{
			ID:         uuid.New(),
			DiscountID: disc.ID,
			Email:      email,
		}).
		FirstOrCreate(&row).Error
	if err != nil {
		return err
	}

	res := tx.Model(&models.EmailDiscountUse{}).
		Where("id = ? AND uses < ?", row.ID, disc.PerEmailLimit).
		UpdateColumn("uses", gorm.Expr("uses + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeStateConflict, MsgPerEmailLimit(disc.PerEmailLimit))
	}
	return nil
}
