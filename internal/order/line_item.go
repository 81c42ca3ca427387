package order

import (
	"github.com/avaldez-dev/storefront-pricing/pkg/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItem references a purchasable by stable identifier together with the
// quantity and the per-unit snapshot data pricing needs. A line item is owned
// by exactly one order.
type LineItem struct {
	ID            uuid.UUID
	PurchasableID uuid.UUID
	Description   string
	Qty           int

	// UnitPriceCents is the current (sale-adjusted) unit price;
	// BaseUnitPriceCents the unadjusted catalog price. They differ exactly
	// when the item is on sale.
	UnitPriceCents     int64
	BaseUnitPriceCents int64

	Weight             float64
	ShippingCategoryID uuid.UUID
	TaxCategoryID      uuid.UUID
	CategoryIDs        []uuid.UUID

	Shippable    bool
	FreeShipping bool
	Promotable   bool
}

// SubtotalCents is qty times the current unit price.
func (li LineItem) SubtotalCents() int64 {
	return int64(li.Qty) * li.UnitPriceCents
}

// Subtotal returns the line subtotal in major units for rate math.
func (li LineItem) Subtotal() decimal.Decimal {
	return money.FromCents(li.SubtotalCents())
}

// OnSale reports whether the current price differs from the base price.
func (li LineItem) OnSale() bool {
	return li.UnitPriceCents != li.BaseUnitPriceCents
}

// NeedsShipping reports whether the item participates in shipping-cost
// calculation.
func (li LineItem) NeedsShipping() bool {
	return li.Shippable && !li.FreeShipping
}

// TotalWeight is qty times unit weight.
func (li LineItem) TotalWeight() float64 {
	return float64(li.Qty) * li.Weight
}
