package models

import (
	"time"

	"github.com/avaldez-dev/storefront-pricing/pkg/enums"
	"github.com/avaldez-dev/storefront-pricing/pkg/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Discount is a named promotional rule: eligibility conditions, an amount
// specification, and usage limits with their aggregate counters.
type Discount struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	Description string    `gorm:"column:description"`
	Enabled     bool      `gorm:"column:enabled;not null;default:true"`
	SortOrder   int       `gorm:"column:sort_order;not null;default:0"`

	// Amount specification, applied per matching line item.
	PerItemDiscountCents int64           `gorm:"column:per_item_discount_cents;not null;default:0"`
	PercentDiscount      decimal.Decimal `gorm:"column:percent_discount;type:numeric(14,6);not null;default:0"`

	// RequireCouponCode gates the discount behind one of its coupon codes.
	// Coupon-gated discounts never contribute to catalog prices.
	RequireCouponCode bool `gorm:"column:require_coupon_code;not null;default:false"`

	// Validity window. Nil means open-ended on that side.
	DateFrom *time.Time `gorm:"column:date_from"`
	DateTo   *time.Time `gorm:"column:date_to"`

	// Usage limits; zero means unlimited. TotalUses is the aggregate counter
	// incremented at order completion.
	TotalUseLimit int64 `gorm:"column:total_use_limit;not null;default:0"`
	TotalUses     int64 `gorm:"column:total_uses;not null;default:0"`
	PerUserLimit  int64 `gorm:"column:per_user_limit;not null;default:0"`
	PerEmailLimit int64 `gorm:"column:per_email_limit;not null;default:0"`

	// Eligibility conditions. Empty allow-lists match everything.
	UserGroupsCondition enums.UserGroupsCondition `gorm:"column:user_groups_condition;not null;default:'userGroupsAnyOrNone'"`
	UserGroupIDs        types.UUIDList            `gorm:"column:user_group_ids;type:jsonb;serializer:json"`
	PurchasableIDs      types.UUIDList            `gorm:"column:purchasable_ids;type:jsonb;serializer:json"`
	CategoryIDs         types.UUIDList            `gorm:"column:category_ids;type:jsonb;serializer:json"`
	ExcludeOnSale       bool                      `gorm:"column:exclude_on_sale;not null;default:false"`

	// CouponFormat is the admin-configured mask used by coupon generation
	// ("####-####" style), not consulted on the pricing path.
	CouponFormat string `gorm:"column:coupon_format;not null;default:'######'"`

	Coupons []Coupon `gorm:"foreignKey:DiscountID;references:ID"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
