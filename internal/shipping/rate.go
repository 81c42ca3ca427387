package shipping

import (
	"github.com/avaldez-dev/storefront-pricing/internal/order"
	"github.com/avaldez-dev/storefront-pricing/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CalculateRate composes a rule's rate components over the order's shippable
// line items. Pure: no side effects, no rounding. Amounts stay exact until
// they are stored on an adjustment.
//
// An order with nothing to ship costs exactly zero regardless of the base
// rate; shipping is never charged on non-shippable orders.
func CalculateRate(rule models.ShippingRule, items []order.LineItem) decimal.Decimal {
	shippable := make([]order.LineItem, 0, len(items))
	for _, item := range items {
		if item.NeedsShipping() {
			shippable = append(shippable, item)
		}
	}
	if len(shippable) == 0 {
		return decimal.Zero
	}

	amount := rule.BaseRate
	for _, item := range shippable {
		pct, perItem, perWeight := ratesFor(rule, item.ShippingCategoryID)
		qty := decimal.NewFromInt(int64(item.Qty))

		amount = amount.
			Add(item.Subtotal().Mul(pct)).
			Add(qty.Mul(perItem)).
			Add(qty.Mul(decimal.NewFromFloat(item.Weight)).Mul(perWeight))
	}

	if amount.LessThan(rule.MinRate) {
		amount = rule.MinRate
	}
	if rule.MaxRate.IsPositive() && amount.GreaterThan(rule.MaxRate) {
		amount = rule.MaxRate
	}
	return amount
}

// ratesFor resolves the percentage/per-item/weight components for a shipping
// category, falling back to the rule-level rates when the category carries no
// override.
func ratesFor(rule models.ShippingRule, categoryID uuid.UUID) (pct, perItem, perWeight decimal.Decimal) {
	pct, perItem, perWeight = rule.PercentageRate, rule.PerItemRate, rule.WeightRate
	for _, cat := range rule.Categories {
		if cat.ShippingCategoryID != categoryID {
			continue
		}
		if cat.PercentageRate != nil {
			pct = *cat.PercentageRate
		}
		if cat.PerItemRate != nil {
			perItem = *cat.PerItemRate
		}
		if cat.WeightRate != nil {
			perWeight = *cat.WeightRate
		}
		return
	}
	return
}
