// Package zone evaluates declarative conditions against addresses and
// purchasables. Conditions are a closed tagged-variant type; a single
// evaluator switches on the kind, so every failure mode is explicit.
package zone

import (
	"fmt"
	"strings"

	pkgerrors "github.com/avaldez-dev/storefront-pricing/pkg/errors"
	"github.com/avaldez-dev/storefront-pricing/pkg/types"
	"github.com/google/uuid"
)

// PurchasableContext is the purchasable-like value conditions are matched
// against.
type PurchasableContext struct {
	PurchasableID uuid.UUID
	CategoryIDs   []uuid.UUID
}

// MatchAddress reports whether the address satisfies the condition. Empty
// conditions match everything (a zone with no constraints matches every
// address). Formula failures fail closed: (false, err).
func MatchAddress(cond types.Condition, addr types.Address) (bool, error) {
	if cond.IsZero() {
		return true, nil
	}

	switch cond.Kind {
	case types.ConditionAll:
		for _, nested := range cond.Nested {
			ok, err := MatchAddress(nested, addr)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil

	case types.ConditionCountryIn:
		return stringInSet(addr.CountryCode, cond.Countries), nil

	case types.ConditionAdminAreaIn:
		return stringInSet(addr.AdministrativeArea, cond.Areas), nil

	case types.ConditionPostalFormula:
		if strings.TrimSpace(cond.Formula) == "" {
			return true, nil
		}
		ok, err := EvalPostalFormula(cond.Formula, addr.PostalCode)
		if err != nil {
			return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err,
				fmt.Sprintf("postal code formula %q", cond.Formula))
		}
		return ok, nil

	default:
		// Category and user-group conditions carry no address constraint;
		// the permissive default applies.
		return true, nil
	}
}

// MatchPurchasable reports whether the purchasable satisfies the condition.
func MatchPurchasable(cond types.Condition, p PurchasableContext) (bool, error) {
	if cond.IsZero() {
		return true, nil
	}

	switch cond.Kind {
	case types.ConditionAll:
		for _, nested := range cond.Nested {
			ok, err := MatchPurchasable(nested, p)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil

	case types.ConditionCategoryIn:
		if len(cond.CategoryIDs) == 0 {
			return true, nil
		}
		for _, want := range cond.CategoryIDs {
			for _, have := range p.CategoryIDs {
				if want == have {
					return true, nil
				}
			}
		}
		return false, nil

	default:
		return true, nil
	}
}

func stringInSet(value string, set []string) bool {
	if len(set) == 0 {
		return true
	}
	for _, candidate := range set {
		if strings.EqualFold(value, candidate) {
			return true
		}
	}
	return false
}
