package tax

import (
	"context"

	"github.com/avaldez-dev/storefront-pricing/internal/repo"
	"github.com/avaldez-dev/storefront-pricing/pkg/db/models"
	"gorm.io/gorm"
)

// Repository loads tax configuration.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// EnabledRates returns enabled tax rates.
func (r *Repository) EnabledRates(ctx context.Context) ([]models.TaxRate, error) {
	var rates []models.TaxRate
	if err := r.DB(ctx).Where("enabled = ?", true).Order("name ASC").Find(&rates).Error; err != nil {
		return nil, err
	}
	return rates, nil
}
