// Package discount evaluates promotional discounts and coupon codes:
// availability checks with shopper-facing reasons, line-item eligibility, and
// usage accounting at order completion.
package discount

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/avaldez-dev/storefront-pricing/internal/order"
	"github.com/avaldez-dev/storefront-pricing/pkg/db/models"
	pkgerrors "github.com/avaldez-dev/storefront-pricing/pkg/errors"
	"github.com/google/uuid"
)

// DiscountSource loads discount configuration. ByCouponCode returns
// (nil, nil, nil) for unknown codes; an error means the lookup itself failed.
type DiscountSource interface {
	ByCouponCode(ctx context.Context, code string) (*models.Discount, *models.Coupon, error)
	AutomaticDiscounts(ctx context.Context) ([]models.Discount, error)
}

// UsageCounter reads redemption counters for limit checks.
type UsageCounter interface {
	CustomerUses(ctx context.Context, discountID, customerID uuid.UUID) (int64, error)
	EmailUses(ctx context.Context, discountID uuid.UUID, email string) (int64, error)
}

// Engine answers discount questions for orders.
type Engine struct {
	discounts DiscountSource
	usage     UsageCounter
	now       func() time.Time
}

func NewEngine(discounts DiscountSource, usage UsageCounter) (*Engine, error) {
	if discounts == nil {
		return nil, fmt.Errorf("discount source required")
	}
	if usage == nil {
		return nil, fmt.Errorf("usage counter required")
	}
	return &Engine{discounts: discounts, usage: usage, now: time.Now}, nil
}

// CouponAvailable validates the order's coupon code. The checks run in a
// fixed order and short-circuit on the first failure, so the reason string a
// shopper sees for a given configuration is stable across calls.
func (e *Engine) CouponAvailable(ctx context.Context, o *order.Order) (bool, string, error) {
	code := strings.TrimSpace(o.CouponCode)
	if code == "" {
		return false, MsgCouponNotValid, nil
	}

	d, c, err := e.discounts.ByCouponCode(ctx, code)
	if err != nil {
		return false, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve coupon code")
	}
	if d == nil || c == nil || !d.Enabled {
		return false, MsgCouponNotValid, nil
	}

	if !withinWindow(d, e.now()) {
		return false, MsgDiscountOutOfDate, nil
	}

	if d.TotalUseLimit > 0 && d.TotalUses >= d.TotalUseLimit {
		return false, MsgDiscountLimitReached, nil
	}

	if d.PerUserLimit > 0 {
		if !o.Registered() {
			return false, MsgRegisteredUsersOnly, nil
		}
		uses, err := e.usage.CustomerUses(ctx, d.ID, o.Customer.ID)
		if err != nil {
			return false, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer discount uses")
		}
		if uses >= d.PerUserLimit {
			return false, MsgPerUserLimit(d.PerUserLimit), nil
		}
	}

	if d.PerEmailLimit > 0 && o.Email != "" {
		uses, err := e.usage.EmailUses(ctx, d.ID, o.Email)
		if err != nil {
			return false, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load email discount uses")
		}
		if uses >= d.PerEmailLimit {
			return false, MsgPerEmailLimit(d.PerEmailLimit), nil
		}
	}

	if c.MaxUses > 0 && c.Uses >= c.MaxUses {
		return false, MsgCouponLimitReached, nil
	}

	return true, "", nil
}

// ApplicableDiscounts returns the discounts currently applicable to the
// order: automatic discounts that are in their validity window, under their
// aggregate limit, and group-valid for the buyer, plus the coupon discount
// when the order carries an available code. Sorted by configured sort order.
//
// An unavailable coupon yields no discount here; it is not an error. The
// coupon check endpoint is where the shopper learns why.
func (e *Engine) ApplicableDiscounts(ctx context.Context, o *order.Order) ([]models.Discount, error) {
	automatic, err := e.discounts.AutomaticDiscounts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load discounts")
	}

	now := e.now()
	groups := o.CustomerGroupIDs()

	var out []models.Discount
	for _, d := range automatic {
		if !ActiveNow(&d, now) {
			continue
		}
		if !UserGroupsValid(d.UserGroupsCondition, d.UserGroupIDs, groups) {
			continue
		}
		out = append(out, d)
	}

	if strings.TrimSpace(o.CouponCode) != "" {
		ok, _, err := e.CouponAvailable(ctx, o)
		if err != nil {
			return nil, err
		}
		if ok {
			d, _, err := e.discounts.ByCouponCode(ctx, o.CouponCode)
			if err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve coupon code")
			}
			if d != nil && UserGroupsValid(d.UserGroupsCondition, d.UserGroupIDs, groups) {
				out = append(out, *d)
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

// ActiveNow reports whether the discount can apply at all right now:
// enabled, inside its validity window, and under its aggregate limit. Coupon
// and per-shopper checks are out of scope here; the catalog generator uses
// this for shopper-independent pricing.
func ActiveNow(d *models.Discount, now time.Time) bool {
	if !d.Enabled || !withinWindow(d, now) {
		return false
	}
	if d.TotalUseLimit > 0 && d.TotalUses >= d.TotalUseLimit {
		return false
	}
	return true
}

func withinWindow(d *models.Discount, now time.Time) bool {
	if d.DateFrom != nil && now.Before(*d.DateFrom) {
		return false
	}
	if d.DateTo != nil && now.After(*d.DateTo) {
		return false
	}
	return true
}
