package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/avaldez-dev/storefront-pricing/internal/discount"
	"github.com/avaldez-dev/storefront-pricing/pkg/db/models"
	"github.com/avaldez-dev/storefront-pricing/pkg/enums"
	pkgerrors "github.com/avaldez-dev/storefront-pricing/pkg/errors"
	"github.com/avaldez-dev/storefront-pricing/pkg/logger"
	"github.com/avaldez-dev/storefront-pricing/pkg/money"
	"github.com/google/uuid"
)

// SnapshotStore is the persistence surface the generator writes through.
type SnapshotStore interface {
	EnabledStores(ctx context.Context) ([]models.Store, error)
	StoreByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
	EnabledPurchasables(ctx context.Context) ([]models.Purchasable, error)
	ReplaceStorePrices(ctx context.Context, storeID uuid.UUID, rows []models.CatalogPrice) error
}

// DiscountSource loads the automatic discounts that shape promotional prices.
type DiscountSource interface {
	AutomaticDiscounts(ctx context.Context) ([]models.Discount, error)
}

// Invalidator drops cached prices for a store after its snapshot changes.
type Invalidator interface {
	Invalidate(ctx context.Context, storeID uuid.UUID) error
}

// Generator builds per-store catalog price snapshots. Coupon-gated and
// group-restricted discounts never contribute: the snapshot is shopper
// independent, and those discounts depend on who is buying.
type Generator struct {
	store     SnapshotStore
	discounts DiscountSource
	cache     Invalidator
	logg      *logger.Logger
	now       func() time.Time
}

func NewGenerator(store SnapshotStore, discounts DiscountSource, cache Invalidator, logg *logger.Logger) (*Generator, error) {
	if store == nil {
		return nil, fmt.Errorf("snapshot store required")
	}
	if discounts == nil {
		return nil, fmt.Errorf("discount source required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Generator{store: store, discounts: discounts, cache: cache, logg: logg, now: time.Now}, nil
}

// Generate rebuilds snapshots and returns the number of rows written. A nil
// storeID rebuilds every enabled store; each store's rows are replaced in one
// transaction, so the run is idempotent.
func (g *Generator) Generate(ctx context.Context, storeID *uuid.UUID) (int, error) {
	stores, err := g.targetStores(ctx, storeID)
	if err != nil {
		return 0, err
	}

	purchasables, err := g.store.EnabledPurchasables(ctx)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load purchasables")
	}
	discounts, err := g.discounts.AutomaticDiscounts(ctx)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load discounts")
	}

	now := g.now()
	written := 0
	for _, store := range stores {
		rows := g.buildRows(store, purchasables, discounts, now)
		if err := g.store.ReplaceStorePrices(ctx, store.ID, rows); err != nil {
			return written, pkgerrors.Wrap(pkgerrors.CodeDependency, err,
				fmt.Sprintf("replace catalog prices for store %s", store.Handle))
		}
		written += len(rows)

		if g.cache != nil {
			if err := g.cache.Invalidate(ctx, store.ID); err != nil {
				logCtx := g.logg.WithStoreID(ctx, store.ID.String())
				g.logg.Error(logCtx, "catalog cache invalidation failed", err)
			}
		}

		logCtx := g.logg.WithStoreID(ctx, store.ID.String())
		g.logg.Info(logCtx, fmt.Sprintf("catalog snapshot rebuilt with %d rows", len(rows)))
	}
	return written, nil
}

func (g *Generator) targetStores(ctx context.Context, storeID *uuid.UUID) ([]models.Store, error) {
	if storeID == nil {
		stores, err := g.store.EnabledStores(ctx)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load stores")
		}
		return stores, nil
	}
	store, err := g.store.StoreByID(ctx, *storeID)
	if err != nil {
		return nil, err
	}
	return []models.Store{*store}, nil
}

func (g *Generator) buildRows(store models.Store, purchasables []models.Purchasable, discounts []models.Discount, now time.Time) []models.CatalogPrice {
	rows := make([]models.CatalogPrice, 0, len(purchasables))
	for _, p := range purchasables {
		promo := promotionalCents(p, discounts, now)
		rows = append(rows, models.CatalogPrice{
			ID:                        uuid.New(),
			StoreID:                   store.ID,
			PurchasableID:             p.ID,
			BasePriceCents:            p.PriceCents,
			BasePromotionalPriceCents: promo,
			PriceCents:                p.PriceCents,
			PromotionalPriceCents:     promo,
			HasPromotion:              promo < p.PriceCents,
			GeneratedAt:               now,
		})
	}
	return rows
}

// promotionalCents applies every shopper-independent discount to the
// purchasable's price. Amounts are computed off the undiscounted price and
// summed, matching the order adjuster, with the result clamped at zero.
func promotionalCents(p models.Purchasable, discounts []models.Discount, now time.Time) int64 {
	var off int64
	for i := range discounts {
		d := &discounts[i]
		if d.RequireCouponCode || !discount.ActiveNow(d, now) {
			continue
		}
		if d.UserGroupsCondition != "" && d.UserGroupsCondition != enums.UserGroupsAnyOrNone {
			continue
		}
		if !discount.MatchPurchasable(d, p) {
			continue
		}

		amount := money.FromCents(p.PriceCents).Mul(d.PercentDiscount)
		cents := money.Cents(amount) + d.PerItemDiscountCents
		if cents > 0 {
			off += cents
		}
	}

	promo := p.PriceCents - off
	if promo < 0 {
		promo = 0
	}
	return promo
}
