package catalog

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/avaldez-dev/storefront-pricing/internal/discount"
	"github.com/avaldez-dev/storefront-pricing/pkg/db/models"
	pkgerrors "github.com/avaldez-dev/storefront-pricing/pkg/errors"
	"github.com/avaldez-dev/storefront-pricing/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	stores := `
CREATE TABLE IF NOT EXISTS stores (
  id TEXT PRIMARY KEY,
  handle TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  currency TEXT NOT NULL DEFAULT 'USD',
  enabled INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	purchasables := `
CREATE TABLE IF NOT EXISTS purchasables (
  id TEXT PRIMARY KEY,
  sku TEXT NOT NULL UNIQUE,
  price_cents INTEGER NOT NULL,
  promotable INTEGER NOT NULL DEFAULT 1,
  shippable INTEGER NOT NULL DEFAULT 1,
  free_shipping INTEGER NOT NULL DEFAULT 0,
  weight REAL NOT NULL DEFAULT 0,
  shipping_category_id TEXT,
  tax_category_id TEXT,
  category_ids TEXT,
  enabled INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	discounts := `
CREATE TABLE IF NOT EXISTS discounts (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  enabled INTEGER NOT NULL DEFAULT 1,
  sort_order INTEGER NOT NULL DEFAULT 0,
  per_item_discount_cents INTEGER NOT NULL DEFAULT 0,
  percent_discount NUMERIC NOT NULL DEFAULT 0,
  require_coupon_code INTEGER NOT NULL DEFAULT 0,
  date_from DATETIME,
  date_to DATETIME,
  total_use_limit INTEGER NOT NULL DEFAULT 0,
  total_uses INTEGER NOT NULL DEFAULT 0,
  per_user_limit INTEGER NOT NULL DEFAULT 0,
  per_email_limit INTEGER NOT NULL DEFAULT 0,
  user_groups_condition TEXT NOT NULL DEFAULT 'userGroupsAnyOrNone',
  user_group_ids TEXT,
  purchasable_ids TEXT,
  category_ids TEXT,
  exclude_on_sale INTEGER NOT NULL DEFAULT 0,
  coupon_format TEXT NOT NULL DEFAULT '######',
  created_at DATETIME,
  updated_at DATETIME
);`
	catalogPrices := `
CREATE TABLE IF NOT EXISTS catalog_prices (
  id TEXT PRIMARY KEY,
  store_id TEXT NOT NULL,
  purchasable_id TEXT NOT NULL,
  base_price_cents INTEGER NOT NULL,
  base_promotional_price_cents INTEGER NOT NULL,
  price_cents INTEGER NOT NULL,
  promotional_price_cents INTEGER NOT NULL,
  has_promotion INTEGER NOT NULL DEFAULT 0,
  generated_at DATETIME NOT NULL,
  UNIQUE (store_id, purchasable_id)
);`
	require.NoError(t, db.Exec(stores).Error)
	require.NoError(t, db.Exec(purchasables).Error)
	require.NoError(t, db.Exec(discounts).Error)
	require.NoError(t, db.Exec(catalogPrices).Error)
	return db
}

func catalogTestLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func createStore(t *testing.T, db *gorm.DB, handle string) *models.Store {
	t.Helper()

	store := &models.Store{ID: uuid.New(), Handle: handle, Name: handle, Currency: "USD", Enabled: true}
	require.NoError(t, db.Create(store).Error)
	return store
}

func createPurchasable(t *testing.T, db *gorm.DB, sku string, priceCents int64, promotable bool) *models.Purchasable {
	t.Helper()

	p := &models.Purchasable{
		ID:         uuid.New(),
		SKU:        sku,
		PriceCents: priceCents,
		Promotable: promotable,
		Shippable:  true,
		Enabled:    true,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

type recordingInvalidator struct {
	storeIDs []uuid.UUID
}

func (r *recordingInvalidator) Invalidate(ctx context.Context, storeID uuid.UUID) error {
	r.storeIDs = append(r.storeIDs, storeID)
	return nil
}

func newTestGenerator(t *testing.T, db *gorm.DB, cache Invalidator) *Generator {
	t.Helper()

	gen, err := NewGenerator(NewRepository(db), discount.NewRepository(db), cache, catalogTestLogger())
	require.NoError(t, err)
	return gen
}

func TestGenerateWritesSnapshotRows(t *testing.T) {
	db := setupCatalogTestDB(t)
	store := createStore(t, db, "main")
	promo := createPurchasable(t, db, "SKU-PROMO", 1000, true)
	frozen := createPurchasable(t, db, "SKU-FROZEN", 2000, false)

	require.NoError(t, db.Create(&models.Discount{
		ID:              uuid.New(),
		Name:            "Ten Percent",
		Enabled:         true,
		PercentDiscount: decimal.RequireFromString("0.10"),
	}).Error)

	cache := &recordingInvalidator{}
	gen := newTestGenerator(t, db, cache)

	written, err := gen.Generate(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, written)
	assert.Equal(t, []uuid.UUID{store.ID}, cache.storeIDs)

	repo := NewRepository(db)
	row, err := repo.PriceFor(context.Background(), store.ID, promo.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), row.PriceCents)
	assert.Equal(t, int64(900), row.PromotionalPriceCents)
	assert.True(t, row.HasPromotion)

	row, err = repo.PriceFor(context.Background(), store.ID, frozen.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), row.PromotionalPriceCents)
	assert.False(t, row.HasPromotion)
}

func TestGenerateIsIdempotent(t *testing.T) {
	db := setupCatalogTestDB(t)
	createStore(t, db, "main")
	createPurchasable(t, db, "SKU-1", 1500, true)

	gen := newTestGenerator(t, db, nil)

	for i := 0; i < 3; i++ {
		written, err := gen.Generate(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, 1, written)
	}

	var count int64
	require.NoError(t, db.Model(&models.CatalogPrice{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "rerun must replace rows, not accumulate them")
}

func TestGenerateDroppingDiscountRemovesPromotion(t *testing.T) {
	db := setupCatalogTestDB(t)
	store := createStore(t, db, "main")
	p := createPurchasable(t, db, "SKU-1", 1000, true)

	disc := &models.Discount{
		ID:              uuid.New(),
		Name:            "Flash Sale",
		Enabled:         true,
		PercentDiscount: decimal.RequireFromString("0.25"),
	}
	require.NoError(t, db.Create(disc).Error)

	gen := newTestGenerator(t, db, nil)
	repo := NewRepository(db)

	_, err := gen.Generate(context.Background(), nil)
	require.NoError(t, err)
	row, err := repo.PriceFor(context.Background(), store.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(750), row.PromotionalPriceCents)

	require.NoError(t, db.Model(disc).UpdateColumn("enabled", false).Error)

	_, err = gen.Generate(context.Background(), nil)
	require.NoError(t, err)
	row, err = repo.PriceFor(context.Background(), store.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), row.PromotionalPriceCents)
	assert.False(t, row.HasPromotion)
}

func TestGenerateExcludesCouponGatedDiscounts(t *testing.T) {
	db := setupCatalogTestDB(t)
	store := createStore(t, db, "main")
	p := createPurchasable(t, db, "SKU-1", 1000, true)

	require.NoError(t, db.Create(&models.Discount{
		ID:                uuid.New(),
		Name:              "VIP Coupon",
		Enabled:           true,
		RequireCouponCode: true,
		PercentDiscount:   decimal.RequireFromString("0.50"),
	}).Error)

	gen := newTestGenerator(t, db, nil)

	_, err := gen.Generate(context.Background(), nil)
	require.NoError(t, err)

	row, err := NewRepository(db).PriceFor(context.Background(), store.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), row.PromotionalPriceCents,
		"coupon-gated discounts must not leak into catalog prices")
	assert.False(t, row.HasPromotion)
}

func TestGenerateSingleStore(t *testing.T) {
	db := setupCatalogTestDB(t)
	first := createStore(t, db, "first")
	second := createStore(t, db, "second")
	createPurchasable(t, db, "SKU-1", 1000, true)

	gen := newTestGenerator(t, db, nil)

	written, err := gen.Generate(context.Background(), &first.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, written)

	var count int64
	require.NoError(t, db.Model(&models.CatalogPrice{}).
		Where("store_id = ?", second.ID).Count(&count).Error)
	assert.Zero(t, count, "other stores must stay untouched")

	missing := uuid.New()
	_, err = gen.Generate(context.Background(), &missing)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
