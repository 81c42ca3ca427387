package models

import (
	"time"

	"github.com/google/uuid"
)

// CatalogPrice is the denormalized per-store, per-purchasable price snapshot
// written by the catalog generator and read at cart-build time. It is a
// cache: staleness is bounded by the generator cadence, and each run fully
// replaces a store's rows.
type CatalogPrice struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID       uuid.UUID `gorm:"column:store_id;type:uuid;not null;uniqueIndex:idx_store_purchasable"`
	PurchasableID uuid.UUID `gorm:"column:purchasable_id;type:uuid;not null;uniqueIndex:idx_store_purchasable"`

	BasePriceCents            int64 `gorm:"column:base_price_cents;not null"`
	BasePromotionalPriceCents int64 `gorm:"column:base_promotional_price_cents;not null"`
	PriceCents                int64 `gorm:"column:price_cents;not null"`
	PromotionalPriceCents     int64 `gorm:"column:promotional_price_cents;not null"`
	HasPromotion              bool  `gorm:"column:has_promotion;not null;default:false"`

	GeneratedAt time.Time `gorm:"column:generated_at;not null"`
}
