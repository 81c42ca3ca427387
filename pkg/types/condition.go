package types

import "github.com/google/uuid"

// ConditionKind discriminates the condition variants. The set is closed; the
// evaluators switch on it exhaustively and treat unknown kinds as
// unconstrained.
type ConditionKind string

const (
	// ConditionAll is the conjunction of its nested conditions.
	ConditionAll ConditionKind = "all"
	// ConditionCountryIn matches addresses whose country code is in the set.
	ConditionCountryIn ConditionKind = "country_in"
	// ConditionAdminAreaIn matches on state / province / region code.
	ConditionAdminAreaIn ConditionKind = "administrative_area_in"
	// ConditionPostalFormula matches postal codes against a boolean formula.
	ConditionPostalFormula ConditionKind = "postal_code_formula"
	// ConditionCategoryIn matches purchasables carrying any listed category.
	ConditionCategoryIn ConditionKind = "category_in"
	// ConditionUserGroupIn matches customers belonging to any listed group.
	ConditionUserGroupIn ConditionKind = "user_group_in"
)

// Condition is a declarative matching rule stored as jsonb on the rows that
// need one. Only the fields relevant to the Kind are populated; an entirely
// zero condition places no constraint at all.
type Condition struct {
	Kind         ConditionKind `json:"kind,omitempty"`
	Nested       []Condition   `json:"nested,omitempty"`
	Countries    []string      `json:"countries,omitempty"`
	Areas        []string      `json:"areas,omitempty"`
	Formula      string        `json:"formula,omitempty"`
	CategoryIDs  []uuid.UUID   `json:"category_ids,omitempty"`
	UserGroupIDs []uuid.UUID   `json:"user_group_ids,omitempty"`
}

// IsZero reports whether the condition constrains nothing.
func (c Condition) IsZero() bool {
	return c.Kind == "" && len(c.Nested) == 0 && len(c.Countries) == 0 &&
		len(c.Areas) == 0 && c.Formula == "" && len(c.CategoryIDs) == 0 &&
		len(c.UserGroupIDs) == 0
}
