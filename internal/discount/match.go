package discount

import (
	"github.com/avaldez-dev/storefront-pricing/internal/order"
	"github.com/avaldez-dev/storefront-pricing/pkg/db/models"
	"github.com/avaldez-dev/storefront-pricing/pkg/enums"
	"github.com/google/uuid"
)

// MatchLineItem decides line-item eligibility for a discount. couponOK
// reports whether the order's coupon code belongs to this discount; it only
// matters for coupon-gated discounts. Non-promotable purchasables never
// match, regardless of other conditions.
func MatchLineItem(item order.LineItem, d *models.Discount, couponOK bool) bool {
	if !item.Promotable {
		return false
	}
	if d.RequireCouponCode && !couponOK {
		return false
	}
	if len(d.PurchasableIDs) > 0 && !d.PurchasableIDs.Contains(item.PurchasableID) {
		return false
	}
	if len(d.CategoryIDs) > 0 && !d.CategoryIDs.ContainsAny(item.CategoryIDs) {
		return false
	}
	if d.ExcludeOnSale && item.OnSale() {
		return false
	}
	return true
}

// MatchPurchasable is the catalog-generation variant of line-item
// eligibility: the same allow-list predicate, evaluated against a raw
// purchasable with no order context.
func MatchPurchasable(d *models.Discount, p models.Purchasable) bool {
	if !p.Promotable {
		return false
	}
	if len(d.PurchasableIDs) > 0 && !d.PurchasableIDs.Contains(p.ID) {
		return false
	}
	if len(d.CategoryIDs) > 0 && !d.CategoryIDs.ContainsAny(p.CategoryIDs) {
		return false
	}
	return true
}

// UserGroupsValid compares a discount's configured group set with the
// customer's actual groups under the discount's condition mode.
//
// includeAll is deliberately a subset test of configured ⊆ customer, not the
// reverse; the accompanying tests pin this reading.
func UserGroupsValid(cond enums.UserGroupsCondition, configured, customer []uuid.UUID) bool {
	switch cond {
	case enums.UserGroupsAnyOrNone, "":
		return true

	case enums.UserGroupsIncludeAll:
		for _, want := range configured {
			if !containsUUID(customer, want) {
				return false
			}
		}
		return true

	case enums.UserGroupsIncludeAny:
		if len(configured) == 0 {
			return true
		}
		return intersects(configured, customer)

	case enums.UserGroupsExclude:
		return !intersects(configured, customer)

	default:
		return false
	}
}

func containsUUID(set []uuid.UUID, id uuid.UUID) bool {
	for _, v := range set {
		if v == id {
			return true
		}
	}
	return false
}

func intersects(a, b []uuid.UUID) bool {
	for _, v := range a {
		if containsUUID(b, v) {
			return true
		}
	}
	return false
}
