package shipping

import (
	"github.com/avaldez-dev/storefront-pricing/internal/order"
	"github.com/avaldez-dev/storefront-pricing/internal/zone"
	"github.com/avaldez-dev/storefront-pricing/pkg/db/models"
	"github.com/avaldez-dev/storefront-pricing/pkg/enums"
)

// MatchOrder reports whether a rule applies to the order: the shipping
// address falls inside the rule's zone, category requirements hold, and the
// order sits inside the rule's qty/total/weight bounds. A formula error from
// the zone evaluator fails closed and is returned for operator reporting.
func MatchOrder(rule models.ShippingRule, o *order.Order) (bool, error) {
	if !rule.Enabled {
		return false, nil
	}

	if !rule.AddressCondition.IsZero() {
		if o.ShippingAddress == nil {
			return false, nil
		}
		ok, err := zone.MatchAddress(rule.AddressCondition, *o.ShippingAddress)
		if err != nil || !ok {
			return false, err
		}
	}

	if ok := categoriesAllow(rule, o); !ok {
		return false, nil
	}

	qty := shippableQty(o)
	if rule.MinQty > 0 && qty < rule.MinQty {
		return false, nil
	}
	if rule.MaxQty > 0 && qty > rule.MaxQty {
		return false, nil
	}

	total := o.ItemSubtotalCents()
	if rule.MinTotalCents > 0 && total < rule.MinTotalCents {
		return false, nil
	}
	if rule.MaxTotalCents > 0 && total > rule.MaxTotalCents {
		return false, nil
	}

	weight := o.TotalWeight()
	if rule.MinWeight > 0 && weight < rule.MinWeight {
		return false, nil
	}
	if rule.MaxWeight > 0 && weight > rule.MaxWeight {
		return false, nil
	}

	return true, nil
}

// categoriesAllow checks the rule's per-category conditions: a disallowed
// category must be absent from the shippable items, a required category must
// be present.
func categoriesAllow(rule models.ShippingRule, o *order.Order) bool {
	for _, cat := range rule.Categories {
		present := false
		for _, item := range o.Items {
			if item.NeedsShipping() && item.ShippingCategoryID == cat.ShippingCategoryID {
				present = true
				break
			}
		}
		switch cat.Condition {
		case enums.CategoryDisallow:
			if present {
				return false
			}
		case enums.CategoryRequire:
			if !present {
				return false
			}
		}
	}
	return true
}

func shippableQty(o *order.Order) int {
	var qty int
	for _, item := range o.Items {
		if item.NeedsShipping() {
			qty += item.Qty
		}
	}
	return qty
}
