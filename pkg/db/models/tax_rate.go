package models

import (
	"time"

	"github.com/avaldez-dev/storefront-pricing/pkg/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TaxRate applies a percentage to line items in a tax category when the
// order's address falls inside the rate's zone.
type TaxRate struct {
	ID      uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name    string    `gorm:"column:name;not null"`
	Enabled bool      `gorm:"column:enabled;not null;default:true"`

	// Rate is a fraction, e.g. 0.0825 for 8.25%.
	Rate decimal.Decimal `gorm:"column:rate;type:numeric(14,6);not null;default:0"`

	// Include marks the tax as already baked into displayed prices.
	Include bool `gorm:"column:include;not null;default:false"`

	// TaxCategoryID scopes the rate; nil applies to every category.
	TaxCategoryID *uuid.UUID `gorm:"column:tax_category_id;type:uuid"`

	AddressCondition types.Condition `gorm:"column:address_condition;type:jsonb;serializer:json"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
