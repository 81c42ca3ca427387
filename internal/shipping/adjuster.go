package shipping

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/avaldez-dev/storefront-pricing/internal/order"
	"github.com/avaldez-dev/storefront-pricing/pkg/enums"
	"github.com/avaldez-dev/storefront-pricing/pkg/money"
)

// Adjuster turns the order's selected shipping method into an order-level
// shipping adjustment. It is one arm of the adjustment pipeline.
type Adjuster struct {
	engine *Engine
}

func NewAdjuster(engine *Engine) (*Adjuster, error) {
	if engine == nil {
		return nil, fmt.Errorf("shipping engine required")
	}
	return &Adjuster{engine: engine}, nil
}

func (a *Adjuster) Name() string { return "shipping" }

// Adjust prices the order's selected method. Orders without a selection get
// no shipping adjustment; a stale selection propagates ErrMethodUnavailable.
func (a *Adjuster) Adjust(ctx context.Context, o *order.Order) ([]order.Adjustment, error) {
	match, err := a.engine.MethodForOrder(ctx, o)
	if err != nil {
		return nil, err
	}
	if match == nil {
		return nil, nil
	}

	snapshot, err := json.Marshal(map[string]any{
		"method_id":     match.Method.ID,
		"method_handle": match.Method.Handle,
		"rule_id":       match.Rule.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal shipping snapshot: %w", err)
	}

	return []order.Adjustment{{
		Type:           enums.AdjustmentShipping,
		Name:           match.Method.Name,
		Description:    match.Rule.Name,
		AmountCents:    money.Cents(match.Price),
		SourceSnapshot: snapshot,
	}}, nil
}
