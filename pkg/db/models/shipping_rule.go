package models

import (
	"time"

	"github.com/avaldez-dev/storefront-pricing/pkg/enums"
	"github.com/avaldez-dev/storefront-pricing/pkg/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShippingRule is one condition + rate bundle inside a method. Rules are
// evaluated in Priority order; the first match wins.
type ShippingRule struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MethodID uuid.UUID `gorm:"column:method_id;type:uuid;not null;index"`
	Name     string    `gorm:"column:name;not null"`
	Priority int       `gorm:"column:priority;not null;default:0"`
	Enabled  bool      `gorm:"column:enabled;not null;default:true"`

	// AddressCondition is the zone predicate matched against the order's
	// shipping address.
	AddressCondition types.Condition `gorm:"column:address_condition;type:jsonb;serializer:json"`

	// Order bounds. Zero means unbounded.
	MinQty        int     `gorm:"column:min_qty;not null;default:0"`
	MaxQty        int     `gorm:"column:max_qty;not null;default:0"`
	MinTotalCents int64   `gorm:"column:min_total_cents;not null;default:0"`
	MaxTotalCents int64   `gorm:"column:max_total_cents;not null;default:0"`
	MinWeight     float64 `gorm:"column:min_weight;not null;default:0"`
	MaxWeight     float64 `gorm:"column:max_weight;not null;default:0"`

	// Rate components in major currency units. Category overrides may replace
	// the per-item/weight/percentage components per shipping category.
	BaseRate       decimal.Decimal `gorm:"column:base_rate;type:numeric(14,4);not null;default:0"`
	PerItemRate    decimal.Decimal `gorm:"column:per_item_rate;type:numeric(14,4);not null;default:0"`
	WeightRate     decimal.Decimal `gorm:"column:weight_rate;type:numeric(14,4);not null;default:0"`
	PercentageRate decimal.Decimal `gorm:"column:percentage_rate;type:numeric(14,4);not null;default:0"`
	MinRate        decimal.Decimal `gorm:"column:min_rate;type:numeric(14,4);not null;default:0"`
	MaxRate        decimal.Decimal `gorm:"column:max_rate;type:numeric(14,4);not null;default:0"`

	Categories []ShippingRuleCategory `gorm:"foreignKey:RuleID;references:ID"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// ShippingRuleCategory overrides rule rates for one shipping category and
// controls whether the category is allowed, disallowed, or required.
type ShippingRuleCategory struct {
	ID                 uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	RuleID             uuid.UUID          `gorm:"column:rule_id;type:uuid;not null;index"`
	ShippingCategoryID uuid.UUID          `gorm:"column:shipping_category_id;type:uuid;not null"`
	Condition          enums.CategoryRule `gorm:"column:condition;not null;default:'allow'"`

	PerItemRate    *decimal.Decimal `gorm:"column:per_item_rate;type:numeric(14,4)"`
	WeightRate     *decimal.Decimal `gorm:"column:weight_rate;type:numeric(14,4)"`
	PercentageRate *decimal.Decimal `gorm:"column:percentage_rate;type:numeric(14,4)"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
