package discount

import (
	"context"
	"errors"

	"github.com/avaldez-dev/storefront-pricing/internal/repo"
	"github.com/avaldez-dev/storefront-pricing/pkg/db/models"
	"gorm.io/gorm"
)

// Repository loads discount and coupon configuration.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// ByCouponCode resolves a code to its coupon and owning discount. Unknown
// codes return (nil, nil, nil).
func (r *Repository) ByCouponCode(ctx context.Context, code string) (*models.Discount, *models.Coupon, error) {
	var coupon models.Coupon
	err := r.DB(ctx).Where("code = ?", code).First(&coupon).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	var disc models.Discount
	err = r.DB(ctx).Where("id = ?", coupon.DiscountID).First(&disc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return &disc, &coupon, nil
}

// AutomaticDiscounts returns enabled discounts that apply without a coupon
// code, in configured sort order.
func (r *Repository) AutomaticDiscounts(ctx context.Context) ([]models.Discount, error) {
	var discounts []models.Discount
	err := r.DB(ctx).
		Where("enabled = ? AND require_coupon_code = ?", true, false).
		Order("sort_order ASC, name ASC").
		Find(&discounts).Error
	if err != nil {
		return nil, err
	}
	return discounts, nil
}

// CreateCoupons persists a generated batch.
func (r *Repository) CreateCoupons(ctx context.Context, coupons []models.Coupon) error {
	if len(coupons) == 0 {
		return nil
	}
	return r.DB(ctx).Create(&coupons).Error
}
