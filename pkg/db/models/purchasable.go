package models

import (
	"time"

	"github.com/avaldez-dev/storefront-pricing/pkg/types"
	"github.com/google/uuid"
)

// Purchasable is any sellable unit (typically a product variant) the engine
// prices. The catalog of purchasables is managed by the host platform; this
// table mirrors the fields pricing needs.
type Purchasable struct {
	ID                 uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SKU                string         `gorm:"column:sku;not null;uniqueIndex"`
	PriceCents         int64          `gorm:"column:price_cents;not null"`
	Promotable         bool           `gorm:"column:promotable;not null;default:true"`
	Shippable          bool           `gorm:"column:shippable;not null;default:true"`
	FreeShipping       bool           `gorm:"column:free_shipping;not null;default:false"`
	Weight             float64        `gorm:"column:weight;not null;default:0"`
	ShippingCategoryID uuid.UUID      `gorm:"column:shipping_category_id;type:uuid"`
	TaxCategoryID      uuid.UUID      `gorm:"column:tax_category_id;type:uuid"`
	CategoryIDs        types.UUIDList `gorm:"column:category_ids;type:jsonb;serializer:json"`
	Enabled            bool           `gorm:"column:enabled;not null;default:true"`
	CreatedAt          time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
