// Package tax prices tax adjustments. Its shape mirrors shipping: declarative
// zone conditions select applicable rates, a percentage applies per matching
// line item.
package tax

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/avaldez-dev/storefront-pricing/internal/order"
	"github.com/avaldez-dev/storefront-pricing/internal/zone"
	"github.com/avaldez-dev/storefront-pricing/pkg/db/models"
	"github.com/avaldez-dev/storefront-pricing/pkg/enums"
	pkgerrors "github.com/avaldez-dev/storefront-pricing/pkg/errors"
	"github.com/avaldez-dev/storefront-pricing/pkg/money"
	"go.uber.org/multierr"
)

// RateSource loads enabled tax rates. Implemented by the gorm repository.
type RateSource interface {
	EnabledRates(ctx context.Context) ([]models.TaxRate, error)
}

// Adjuster computes tax adjustments per line item.
type Adjuster struct {
	source RateSource
}

func NewAdjuster(source RateSource) (*Adjuster, error) {
	if source == nil {
		return nil, fmt.Errorf("rate source required")
	}
	return &Adjuster{source: source}, nil
}

func (a *Adjuster) Name() string { return "tax" }

// Adjust applies every zone-matching rate to the line items in its tax
// category. A rate whose zone fails to evaluate is skipped; those
// configuration errors are aggregated and returned alongside the computed
// adjustments so the pipeline can report them without dropping the order.
func (a *Adjuster) Adjust(ctx context.Context, o *order.Order) ([]order.Adjustment, error) {
	rates, err := a.source.EnabledRates(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load tax rates")
	}

	var (
		adjs      []order.Adjustment
		configErr error
	)

	for _, rate := range rates {
		if o.ShippingAddress == nil {
			if rate.AddressCondition.IsZero() {
				adjs = append(adjs, a.apply(rate, o)...)
			}
			continue
		}
		ok, err := zone.MatchAddress(rate.AddressCondition, *o.ShippingAddress)
		if err != nil {
			configErr = multierr.Append(configErr, pkgerrors.Wrap(pkgerrors.CodeDependency, err,
				fmt.Sprintf("tax rate %q zone", rate.Name)))
			continue
		}
		if !ok {
			continue
		}
		adjs = append(adjs, a.apply(rate, o)...)
	}

	return adjs, configErr
}

func (a *Adjuster) apply(rate models.TaxRate, o *order.Order) []order.Adjustment {
	var adjs []order.Adjustment
	for i := range o.Items {
		item := o.Items[i]
		if rate.TaxCategoryID != nil && *rate.TaxCategoryID != item.TaxCategoryID {
			continue
		}

		amount := item.Subtotal().Mul(rate.Rate)
		if amount.IsZero() {
			continue
		}

		snapshot, _ := json.Marshal(map[string]any{
			"tax_rate_id": rate.ID,
			"rate":        rate.Rate,
			"included":    rate.Include,
		})

		itemID := item.ID
		adjs = append(adjs, order.Adjustment{
			Type:           enums.AdjustmentTax,
			Name:           rate.Name,
			AmountCents:    money.Cents(amount),
			Included:       rate.Include,
			LineItemID:     &itemID,
			SourceSnapshot: snapshot,
		})
	}
	return adjs
}
