package models

import (
	"time"

	"github.com/google/uuid"
)

// Coupon is a redeemable code bound to exactly one discount, with usage
// accounting independent of the discount's aggregate counter. Many coupons
// may point at the same discount (unique one-time codes for one promotion).
type Coupon struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	DiscountID uuid.UUID `gorm:"column:discount_id;type:uuid;not null;index"`
	Code       string    `gorm:"column:code;not null;uniqueIndex"`
	Uses       int64     `gorm:"column:uses;not null;default:0"`
	// MaxUses of zero means the code inherits no per-code limit.
	MaxUses   int64     `gorm:"column:max_uses;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
