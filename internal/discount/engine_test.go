package discount

import (
	"context"
	"testing"
	"time"

	"github.com/avaldez-dev/storefront-pricing/internal/order"
	"github.com/avaldez-dev/storefront-pricing/pkg/db/models"
	"github.com/avaldez-dev/storefront-pricing/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type stubDiscounts struct {
	byCode    map[string]*models.Discount
	coupons   map[string]*models.Coupon
	automatic []models.Discount
}

func (s *stubDiscounts) ByCouponCode(ctx context.Context, code string) (*models.Discount, *models.Coupon, error) {
	d, ok := s.byCode[code]
	if !ok {
		return nil, nil, nil
	}
	return d, s.coupons[code], nil
}

func (s *stubDiscounts) AutomaticDiscounts(ctx context.Context) ([]models.Discount, error) {
	return s.automatic, nil
}

type stubUsage struct {
	customerUses int64
	emailUses    int64
}

func (s *stubUsage) CustomerUses(ctx context.Context, discountID, customerID uuid.UUID) (int64, error) {
	return s.customerUses, nil
}

func (s *stubUsage) EmailUses(ctx context.Context, discountID uuid.UUID, email string) (int64, error) {
	return s.emailUses, nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func checkCoupon(t *testing.T, e *Engine, o *order.Order, wantOK bool, wantReason string) {
	t.Helper()
	ok, reason, err := e.CouponAvailable(context.Background(), o)
	if err != nil {
		t.Fatalf("CouponAvailable: %v", err)
	}
	if ok != wantOK || reason != wantReason {
		t.Fatalf("got (%v, %q), want (%v, %q)", ok, reason, wantOK, wantReason)
	}
}

// The availability checks short-circuit in a fixed order; fixing each failure
// in turn must surface the next reason in the sequence.
func TestCouponAvailableReasonOrder(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	d := &models.Discount{
		ID:            uuid.New(),
		Enabled:       false,
		DateTo:        &past,
		TotalUseLimit: 1,
		TotalUses:     1,
		PerUserLimit:  2,
		PerEmailLimit: 3,
	}
	c := &models.Coupon{ID: uuid.New(), DiscountID: d.ID, Code: "SAVE", Uses: 1, MaxUses: 1}
	usage := &stubUsage{customerUses: 2, emailUses: 3}
	source := &stubDiscounts{
		byCode:  map[string]*models.Discount{"SAVE": d},
		coupons: map[string]*models.Coupon{"SAVE": c},
	}
	engine, err := NewEngine(source, usage)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	o := &order.Order{CouponCode: "NOPE"}
	checkCoupon(t, engine, o, false, MsgCouponNotValid)

	o.CouponCode = "SAVE"
	checkCoupon(t, engine, o, false, MsgCouponNotValid)

	d.Enabled = true
	checkCoupon(t, engine, o, false, MsgDiscountOutOfDate)

	d.DateTo = nil
	checkCoupon(t, engine, o, false, MsgDiscountLimitReached)

	d.TotalUses = 0
	checkCoupon(t, engine, o, false, MsgRegisteredUsersOnly)

	o.Customer = &order.Customer{ID: uuid.New()}
	checkCoupon(t, engine, o, false, MsgPerUserLimit(2))

	usage.customerUses = 0
	o.Email = "shopper@example.com"
	checkCoupon(t, engine, o, false, MsgPerEmailLimit(3))

	usage.emailUses = 0
	checkCoupon(t, engine, o, false, MsgCouponLimitReached)

	c.Uses = 0
	checkCoupon(t, engine, o, true, "")
}

func TestCouponAvailableEmptyCode(t *testing.T) {
	t.Parallel()

	engine, _ := NewEngine(&stubDiscounts{}, &stubUsage{})
	checkCoupon(t, engine, &order.Order{}, false, MsgCouponNotValid)
}

func TestUserGroupsValid(t *testing.T) {
	t.Parallel()

	g2, g3, g4 := uuid.New(), uuid.New(), uuid.New()

	cases := []struct {
		name       string
		cond       enums.UserGroupsCondition
		configured []uuid.UUID
		customer   []uuid.UUID
		want       bool
	}{
		{"anyOrNone always valid", enums.UserGroupsAnyOrNone, []uuid.UUID{g2}, nil, true},
		{"empty condition valid", "", []uuid.UUID{g2}, nil, true},

		// includeAll reads configured as a subset of the customer's groups.
		{"includeAll missing one", enums.UserGroupsIncludeAll, []uuid.UUID{g2, g3}, []uuid.UUID{g2}, false},
		{"includeAll all present", enums.UserGroupsIncludeAll, []uuid.UUID{g2, g3}, []uuid.UUID{g2, g3, g4}, true},
		{"includeAll empty configured", enums.UserGroupsIncludeAll, nil, nil, true},

		{"includeAny overlap", enums.UserGroupsIncludeAny, []uuid.UUID{g2, g3}, []uuid.UUID{g2}, true},
		{"includeAny disjoint", enums.UserGroupsIncludeAny, []uuid.UUID{g2}, []uuid.UUID{g4}, false},
		{"includeAny guest", enums.UserGroupsIncludeAny, []uuid.UUID{g2}, nil, false},

		{"exclude overlap", enums.UserGroupsExclude, []uuid.UUID{g2}, []uuid.UUID{g2, g4}, false},
		{"exclude disjoint", enums.UserGroupsExclude, []uuid.UUID{g2}, []uuid.UUID{g4}, true},
		{"exclude guest", enums.UserGroupsExclude, []uuid.UUID{g2}, nil, true},

		{"unknown condition rejects", enums.UserGroupsCondition("bogus"), nil, []uuid.UUID{g2}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := UserGroupsValid(tc.cond, tc.configured, tc.customer); got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestMatchLineItem(t *testing.T) {
	t.Parallel()

	catID := uuid.New()
	item := order.LineItem{
		ID:                 uuid.New(),
		PurchasableID:      uuid.New(),
		Qty:                1,
		UnitPriceCents:     1000,
		BaseUnitPriceCents: 1000,
		CategoryIDs:        []uuid.UUID{catID},
		Promotable:         true,
	}

	t.Run("non-promotable never matches", func(t *testing.T) {
		frozen := item
		frozen.Promotable = false
		if MatchLineItem(frozen, &models.Discount{}, true) {
			t.Fatal("non-promotable item matched")
		}
	})

	t.Run("coupon gate", func(t *testing.T) {
		d := &models.Discount{RequireCouponCode: true}
		if MatchLineItem(item, d, false) {
			t.Fatal("gated discount matched without a coupon")
		}
		if !MatchLineItem(item, d, true) {
			t.Fatal("gated discount should match with its coupon")
		}
	})

	t.Run("purchasable allow-list", func(t *testing.T) {
		d := &models.Discount{PurchasableIDs: []uuid.UUID{uuid.New()}}
		if MatchLineItem(item, d, true) {
			t.Fatal("item outside allow-list matched")
		}
		d.PurchasableIDs = append(d.PurchasableIDs, item.PurchasableID)
		if !MatchLineItem(item, d, true) {
			t.Fatal("allow-listed item should match")
		}
	})

	t.Run("category allow-list", func(t *testing.T) {
		d := &models.Discount{CategoryIDs: []uuid.UUID{catID}}
		if !MatchLineItem(item, d, true) {
			t.Fatal("item in listed category should match")
		}
	})

	t.Run("exclude on sale", func(t *testing.T) {
		onSale := item
		onSale.UnitPriceCents = 800
		d := &models.Discount{ExcludeOnSale: true}
		if MatchLineItem(onSale, d, true) {
			t.Fatal("on-sale item matched despite exclusion")
		}
		if !MatchLineItem(item, d, true) {
			t.Fatal("full-price item should match")
		}
	})
}

func TestAdjustCombinesPercentAndPerItem(t *testing.T) {
	t.Parallel()

	source := &stubDiscounts{automatic: []models.Discount{{
		ID:                   uuid.New(),
		Name:                 "Spring Sale",
		Enabled:              true,
		PercentDiscount:      dec("0.10"),
		PerItemDiscountCents: 50,
	}}}
	engine, _ := NewEngine(source, &stubUsage{})
	adjuster, err := NewAdjuster(engine)
	if err != nil {
		t.Fatalf("NewAdjuster: %v", err)
	}

	o := &order.Order{Items: []order.LineItem{{
		ID: uuid.New(), Qty: 2, UnitPriceCents: 1000, BaseUnitPriceCents: 1000, Promotable: true,
	}}}

	adjs, err := adjuster.Adjust(context.Background(), o)
	if err != nil {
		t.Fatalf("Adjust: %v", err)
	}
	if len(adjs) != 1 {
		t.Fatalf("got %d adjustments, want 1", len(adjs))
	}
	// 20.00 * 10% + 2 * 0.50 = 3.00 off
	if adjs[0].AmountCents != -300 {
		t.Fatalf("amount = %d, want -300", adjs[0].AmountCents)
	}
	if adjs[0].LineItemID == nil {
		t.Fatal("discount adjustment should be scoped to its line item")
	}
}

func TestAdjustClampsAtLineSubtotal(t *testing.T) {
	t.Parallel()

	source := &stubDiscounts{automatic: []models.Discount{{
		ID:              uuid.New(),
		Name:            "Everything Free",
		Enabled:         true,
		PercentDiscount: dec("1.5"),
	}}}
	engine, _ := NewEngine(source, &stubUsage{})
	adjuster, _ := NewAdjuster(engine)

	o := &order.Order{Items: []order.LineItem{{
		ID: uuid.New(), Qty: 1, UnitPriceCents: 1000, BaseUnitPriceCents: 1000, Promotable: true,
	}}}

	adjs, err := adjuster.Adjust(context.Background(), o)
	if err != nil {
		t.Fatalf("Adjust: %v", err)
	}
	if adjs[0].AmountCents != -1000 {
		t.Fatalf("amount = %d, want -1000 (clamped)", adjs[0].AmountCents)
	}
	o.ReplaceAdjustments(adjs)
	if o.TotalCents() != 0 {
		t.Fatalf("total = %d, want 0", o.TotalCents())
	}
}

func TestAdjustAppliesCouponDiscountOnlyWhenAvailable(t *testing.T) {
	t.Parallel()

	d := &models.Discount{
		ID:                uuid.New(),
		Name:              "VIP10",
		Enabled:           true,
		RequireCouponCode: true,
		PercentDiscount:   dec("0.10"),
	}
	c := &models.Coupon{ID: uuid.New(), DiscountID: d.ID, Code: "VIP10"}
	source := &stubDiscounts{
		byCode:  map[string]*models.Discount{"VIP10": d},
		coupons: map[string]*models.Coupon{"VIP10": c},
	}
	engine, _ := NewEngine(source, &stubUsage{})
	adjuster, _ := NewAdjuster(engine)

	o := &order.Order{Items: []order.LineItem{{
		ID: uuid.New(), Qty: 1, UnitPriceCents: 2000, BaseUnitPriceCents: 2000, Promotable: true,
	}}}

	adjs, err := adjuster.Adjust(context.Background(), o)
	if err != nil {
		t.Fatalf("Adjust: %v", err)
	}
	if len(adjs) != 0 {
		t.Fatalf("gated discount applied without a code: %+v", adjs)
	}

	o.CouponCode = "VIP10"
	adjs, err = adjuster.Adjust(context.Background(), o)
	if err != nil {
		t.Fatalf("Adjust: %v", err)
	}
	if len(adjs) != 1 || adjs[0].AmountCents != -200 {
		t.Fatalf("got %+v, want one -200 adjustment", adjs)
	}
}

func TestAdjustSkipsGroupInvalidDiscount(t *testing.T) {
	t.Parallel()

	vip := uuid.New()
	source := &stubDiscounts{automatic: []models.Discount{{
		ID:                  uuid.New(),
		Name:                "VIP Only",
		Enabled:             true,
		PercentDiscount:     dec("0.25"),
		UserGroupsCondition: enums.UserGroupsIncludeAny,
		UserGroupIDs:        []uuid.UUID{vip},
	}}}
	engine, _ := NewEngine(source, &stubUsage{})
	adjuster, _ := NewAdjuster(engine)

	o := &order.Order{Items: []order.LineItem{{
		ID: uuid.New(), Qty: 1, UnitPriceCents: 1000, BaseUnitPriceCents: 1000, Promotable: true,
	}}}

	adjs, err := adjuster.Adjust(context.Background(), o)
	if err != nil {
		t.Fatalf("Adjust: %v", err)
	}
	if len(adjs) != 0 {
		t.Fatalf("guest received a group-restricted discount: %+v", adjs)
	}

	o.Customer = &order.Customer{ID: uuid.New(), GroupIDs: []uuid.UUID{vip}}
	adjs, err = adjuster.Adjust(context.Background(), o)
	if err != nil {
		t.Fatalf("Adjust: %v", err)
	}
	if len(adjs) != 1 || adjs[0].AmountCents != -250 {
		t.Fatalf("got %+v, want one -250 adjustment", adjs)
	}
}
