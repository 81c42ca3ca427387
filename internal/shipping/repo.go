package shipping

import (
	"context"

	"github.com/avaldez-dev/storefront-pricing/internal/repo"
	"github.com/avaldez-dev/storefront-pricing/pkg/db/models"
	"gorm.io/gorm"
)

// Repository loads shipping configuration for the engine.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// EnabledMethods returns enabled methods in configuration order with their
// rules and category overrides preloaded.
func (r *Repository) EnabledMethods(ctx context.Context) ([]models.ShippingMethod, error) {
	var methods []models.ShippingMethod
	err := r.DB(ctx).
		Where("enabled = ?", true).
		Preload("Rules", func(db *gorm.DB) *gorm.DB {
			return db.Where("enabled = ?", true).Order("priority ASC")
		}).
		Preload("Rules.Categories").
		Order("sort_order ASC").
		Find(&methods).Error
	if err != nil {
		return nil, err
	}
	return methods, nil
}
