package order

import (
	"github.com/avaldez-dev/storefront-pricing/pkg/types"
	"github.com/google/uuid"
)

// Customer identifies the buyer on an order snapshot. A nil Customer on the
// order means a guest checkout.
type Customer struct {
	ID       uuid.UUID
	Email    string
	GroupIDs []uuid.UUID
}

// Order is the mutable aggregate the pricing pipeline operates on. The engine
// never loads or stores orders itself; callers hand it a snapshot and read
// the recomputed adjustments back. Totals are recomputable at any time from
// the line items and the currently applicable rules.
type Order struct {
	ID                   uuid.UUID
	StoreID              uuid.UUID
	Email                string
	Customer             *Customer
	CouponCode           string
	ShippingMethodHandle string
	ShippingAddress      *types.Address
	Items                []LineItem
	Adjustments          []Adjustment
}

// Registered reports whether the order belongs to a known customer account.
func (o *Order) Registered() bool {
	return o.Customer != nil && o.Customer.ID != uuid.Nil
}

// CustomerGroupIDs returns the buyer's group memberships, empty for guests.
func (o *Order) CustomerGroupIDs() []uuid.UUID {
	if o.Customer == nil {
		return nil
	}
	return o.Customer.GroupIDs
}

// ItemSubtotalCents sums the line item subtotals.
func (o *Order) ItemSubtotalCents() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.SubtotalCents()
	}
	return total
}

// AdjustmentTotalCents sums adjustment amounts that are not already baked
// into displayed prices.
func (o *Order) AdjustmentTotalCents() int64 {
	var total int64
	for _, adj := range o.Adjustments {
		if adj.Included {
			continue
		}
		total += adj.AmountCents
	}
	return total
}

// TotalCents is the order invariant: item subtotals plus adjustments.
func (o *Order) TotalCents() int64 {
	return o.ItemSubtotalCents() + o.AdjustmentTotalCents()
}

// TotalQty counts units across all line items.
func (o *Order) TotalQty() int {
	var qty int
	for _, item := range o.Items {
		qty += item.Qty
	}
	return qty
}

// TotalWeight sums item weight for shippable items.
func (o *Order) TotalWeight() float64 {
	var weight float64
	for _, item := range o.Items {
		if item.NeedsShipping() {
			weight += item.TotalWeight()
		}
	}
	return weight
}

// ReplaceAdjustments swaps the full adjustment set. Re-running the pipeline
// replaces rather than appends, which keeps recalculation idempotent.
func (o *Order) ReplaceAdjustments(adjs []Adjustment) {
	o.Adjustments = adjs
}
