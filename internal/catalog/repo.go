// Package catalog generates and serves denormalized per-store price
// snapshots. The generator runs on a schedule and on demand; reads go through
// a Redis cache with the snapshot table as the source of truth.
package catalog

import (
	"context"
	"errors"

	"github.com/avaldez-dev/storefront-pricing/internal/repo"
	"github.com/avaldez-dev/storefront-pricing/pkg/db/models"
	pkgerrors "github.com/avaldez-dev/storefront-pricing/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository persists catalog price snapshots and loads their inputs.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// EnabledStores returns the stores to snapshot.
func (r *Repository) EnabledStores(ctx context.Context) ([]models.Store, error) {
	var stores []models.Store
	if err := r.DB(ctx).Where("enabled = ?", true).Order("handle ASC").Find(&stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}

// StoreByID loads a single enabled store.
func (r *Repository) StoreByID(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	var store models.Store
	err := r.DB(ctx).Where("id = ? AND enabled = ?", id, true).First(&store).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
	}
	if err != nil {
		return nil, err
	}
	return &store, nil
}

// EnabledPurchasables returns everything currently sellable.
func (r *Repository) EnabledPurchasables(ctx context.Context) ([]models.Purchasable, error) {
	var purchasables []models.Purchasable
	if err := r.DB(ctx).Where("enabled = ?", true).Order("sku ASC").Find(&purchasables).Error; err != nil {
		return nil, err
	}
	return purchasables, nil
}

// ReplaceStorePrices swaps the store's snapshot rows in one transaction, so
// readers never observe a half-written catalog.
func (r *Repository) ReplaceStorePrices(ctx context.Context, storeID uuid.UUID, rows []models.CatalogPrice) error {
	return r.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("store_id = ?", storeID).Delete(&models.CatalogPrice{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}

// PriceFor reads one snapshot row.
func (r *Repository) PriceFor(ctx context.Context, storeID, purchasableID uuid.UUID) (*models.CatalogPrice, error) {
	var row models.CatalogPrice
	err := r.DB(ctx).
		Where("store_id = ? AND purchasable_id = ?", storeID, purchasableID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "catalog price not found")
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}
