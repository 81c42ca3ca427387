package shipping

import (
	"context"
	"fmt"
	"sort"

	"github.com/avaldez-dev/storefront-pricing/internal/order"
	"github.com/avaldez-dev/storefront-pricing/pkg/db/models"
	pkgerrors "github.com/avaldez-dev/storefront-pricing/pkg/errors"
	"github.com/avaldez-dev/storefront-pricing/pkg/logger"
	"github.com/shopspring/decimal"
)

// ErrMethodUnavailable signals that the order's selected method no longer
// matches it (for example after an address change). Recoverable: the caller
// should prompt for a new method, never silently substitute one.
var ErrMethodUnavailable = pkgerrors.New(pkgerrors.CodeStateConflict,
	"The selected shipping method is not available for this order.")

// MethodSource loads enabled shipping methods with their rules, in
// configuration order. Implemented by the gorm repository; stubbed in tests.
type MethodSource interface {
	EnabledMethods(ctx context.Context) ([]models.ShippingMethod, error)
}

// Match pairs a method with its first matching rule and the computed price.
type Match struct {
	Method models.ShippingMethod
	Rule   models.ShippingRule
	Price  decimal.Decimal
}

// Engine selects shipping methods for orders. Rule data is read-only here;
// administration happens elsewhere.
type Engine struct {
	source MethodSource
	logg   *logger.Logger
}

func NewEngine(source MethodSource, logg *logger.Logger) (*Engine, error) {
	if source == nil {
		return nil, fmt.Errorf("method source required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Engine{source: source, logg: logg}, nil
}

// MatchingMethods returns every enabled method whose first matching rule (in
// configured order) accepts the order, with the rule's computed price.
// Results keep registration order; callers wanting "cheapest first" sort the
// slice themselves.
func (e *Engine) MatchingMethods(ctx context.Context, o *order.Order) ([]Match, error) {
	methods, err := e.source.EnabledMethods(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shipping methods")
	}

	var matches []Match
	for _, method := range methods {
		rule, ok := e.firstMatchingRule(ctx, method, o)
		if !ok {
			continue
		}
		matches = append(matches, Match{
			Method: method,
			Rule:   rule,
			Price:  CalculateRate(rule, o.Items),
		})
	}
	return matches, nil
}

// MethodForOrder resolves the order's selected method handle against the
// current rule set. A selection that no longer matches surfaces
// ErrMethodUnavailable.
func (e *Engine) MethodForOrder(ctx context.Context, o *order.Order) (*Match, error) {
	if o.ShippingMethodHandle == "" {
		return nil, nil
	}
	matches, err := e.MatchingMethods(ctx, o)
	if err != nil {
		return nil, err
	}
	for i := range matches {
		if matches[i].Method.Handle == o.ShippingMethodHandle {
			return &matches[i], nil
		}
	}
	return nil, ErrMethodUnavailable
}

// firstMatchingRule walks the method's rules in priority order. A rule whose
// condition fails to evaluate is skipped and reported; one broken rule must
// not take down quoting for the whole order.
func (e *Engine) firstMatchingRule(ctx context.Context, method models.ShippingMethod, o *order.Order) (models.ShippingRule, bool) {
	rules := make([]models.ShippingRule, len(method.Rules))
	copy(rules, method.Rules)
	sort.SliceStable(rules, func(i, j int) bool { return rules[i].Priority < rules[j].Priority })

	for _, rule := range rules {
		ok, err := MatchOrder(rule, o)
		if err != nil {
			logCtx := e.logg.WithFields(ctx, map[string]any{
				"method": method.Handle,
				"rule":   rule.Name,
			})
			e.logg.Error(logCtx, "shipping rule condition failed to evaluate", err)
			continue
		}
		if ok {
			return rule, true
		}
	}
	return models.ShippingRule{}, false
}
