package discount

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/avaldez-dev/storefront-pricing/internal/order"
	"github.com/avaldez-dev/storefront-pricing/pkg/enums"
	"github.com/avaldez-dev/storefront-pricing/pkg/money"
	"github.com/shopspring/decimal"
)

// Adjuster turns applicable discounts into negative line-item adjustments.
type Adjuster struct {
	engine *Engine
}

func NewAdjuster(engine *Engine) (*Adjuster, error) {
	if engine == nil {
		return nil, fmt.Errorf("engine required")
	}
	return &Adjuster{engine: engine}, nil
}

func (a *Adjuster) Name() string { return "discount" }

// Adjust applies every applicable discount to every eligible line item. The
// amount is percent-of-subtotal plus a flat per-unit amount, rounded once,
// clamped so a line is never discounted below zero.
func (a *Adjuster) Adjust(ctx context.Context, o *order.Order) ([]order.Adjustment, error) {
	discounts, err := a.engine.ApplicableDiscounts(ctx, o)
	if err != nil {
		return nil, err
	}

	var adjs []order.Adjustment
	for i := range discounts {
		d := &discounts[i]
		for j := range o.Items {
			item := o.Items[j]
			// Coupon-gated discounts only reach this point through a
			// validated code, so ownership is already established.
			if !MatchLineItem(item, d, true) {
				continue
			}

			amount := item.Subtotal().Mul(d.PercentDiscount)
			if d.PerItemDiscountCents != 0 {
				amount = amount.Add(money.FromCents(d.PerItemDiscountCents).
					Mul(decimal.NewFromInt(int64(item.Qty))))
			}
			cents := money.Cents(amount)
			if cents <= 0 {
				continue
			}
			if cents > item.SubtotalCents() {
				cents = item.SubtotalCents()
			}

			snapshot, _ := json.Marshal(map[string]any{
				"discount_id":         d.ID,
				"require_coupon_code": d.RequireCouponCode,
			})

			itemID := item.ID
			adjs = append(adjs, order.Adjustment{
				Type:           enums.AdjustmentDiscount,
				Name:           d.Name,
				Description:    d.Description,
				AmountCents:    -cents,
				LineItemID:     &itemID,
				SourceSnapshot: snapshot,
			})
		}
	}
	return adjs, nil
}
