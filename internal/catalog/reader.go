package catalog

import (
	"context"
	"fmt"

	"github.com/avaldez-dev/storefront-pricing/pkg/db/models"
	"github.com/avaldez-dev/storefront-pricing/pkg/logger"
	"github.com/google/uuid"
)

// PriceSource reads snapshot rows from the source of truth.
type PriceSource interface {
	PriceFor(ctx context.Context, storeID, purchasableID uuid.UUID) (*models.CatalogPrice, error)
}

// PriceCache is the read-through cache surface.
type PriceCache interface {
	Get(ctx context.Context, storeID, purchasableID uuid.UUID) (*models.CatalogPrice, bool, error)
	Set(ctx context.Context, row *models.CatalogPrice) error
}

// Reader serves catalog prices cache-first. Cache failures degrade to the
// database; they are logged, never surfaced.
type Reader struct {
	source PriceSource
	cache  PriceCache
	logg   *logger.Logger
}

func NewReader(source PriceSource, cache PriceCache, logg *logger.Logger) (*Reader, error) {
	if source == nil {
		return nil, fmt.Errorf("price source required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Reader{source: source, cache: cache, logg: logg}, nil
}

// PriceFor returns the current snapshot row for one purchasable in one store.
func (r *Reader) PriceFor(ctx context.Context, storeID, purchasableID uuid.UUID) (*models.CatalogPrice, error) {
	if r.cache != nil {
		row, hit, err := r.cache.Get(ctx, storeID, purchasableID)
		if err != nil {
			r.logg.Error(r.logg.WithStoreID(ctx, storeID.String()), "catalog cache read failed", err)
		} else if hit {
			return row, nil
		}
	}

	row, err := r.source.PriceFor(ctx, storeID, purchasableID)
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, row); err != nil {
			r.logg.Error(r.logg.WithStoreID(ctx, storeID.String()), "catalog cache write failed", err)
		}
	}
	return row, nil
}
