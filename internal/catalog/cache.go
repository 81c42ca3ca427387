package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/avaldez-dev/storefront-pricing/pkg/db/models"
	"github.com/avaldez-dev/storefront-pricing/pkg/redis"
	"github.com/google/uuid"
)

// Cache holds catalog prices in a per-store Redis hash keyed by purchasable
// ID. The generator invalidates the whole hash after each replace.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get returns the cached row, reporting a miss with (nil, false, nil).
func (c *Cache) Get(ctx context.Context, storeID, purchasableID uuid.UUID) (*models.CatalogPrice, bool, error) {
	key := c.client.CatalogKey(storeID.String())
	raw, err := c.client.HGet(ctx, key, purchasableID.String())
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var row models.CatalogPrice
	if err := json.Unmarshal([]byte(raw), &row); err != nil {
		// Treat a corrupt entry as a miss; the next Set overwrites it.
		return nil, false, nil
	}
	return &row, true, nil
}

// Set stores one row and refreshes the hash TTL.
func (c *Cache) Set(ctx context.Context, row *models.CatalogPrice) error {
	payload, err := json.Marshal(row)
	if err != nil {
		return err
	}
	key := c.client.CatalogKey(row.StoreID.String())
	if err := c.client.HSet(ctx, key, row.PurchasableID.String(), payload); err != nil {
		return err
	}
	return c.client.Expire(ctx, key, c.ttl)
}

// Invalidate drops the store's hash.
func (c *Cache) Invalidate(ctx context.Context, storeID uuid.UUID) error {
	return c.client.Del(ctx, c.client.CatalogKey(storeID.String()))
}
