package enums

// AdjustmentType tags which adjuster produced an adjustment.
type AdjustmentType string

const (
	AdjustmentShipping AdjustmentType = "shipping"
	AdjustmentTax      AdjustmentType = "tax"
	AdjustmentDiscount AdjustmentType = "discount"
)

// CategoryRule controls how a shipping rule treats one shipping category.
type CategoryRule string

const (
	// CategoryAllow prices items in the category with the rule's rates.
	CategoryAllow CategoryRule = "allow"
	// CategoryDisallow makes the rule non-matching for orders containing the
	// category.
	CategoryDisallow CategoryRule = "disallow"
	// CategoryRequire makes the rule match only orders that contain the
	// category.
	CategoryRequire CategoryRule = "require"
)

// UserGroupsCondition selects how a discount's configured group set is
// compared with a customer's actual group set.
type UserGroupsCondition string

const (
	// UserGroupsAnyOrNone places no group restriction on the discount.
	UserGroupsAnyOrNone UserGroupsCondition = "userGroupsAnyOrNone"
	// UserGroupsIncludeAll requires every configured group to be among the
	// customer's groups (configured set is a subset of the customer's set).
	UserGroupsIncludeAll UserGroupsCondition = "userGroupsIncludeAll"
	// UserGroupsIncludeAny requires at least one configured group to be among
	// the customer's groups.
	UserGroupsIncludeAny UserGroupsCondition = "userGroupsIncludeAny"
	// UserGroupsExclude rejects customers belonging to any configured group.
	UserGroupsExclude UserGroupsCondition = "userGroupsExclude"
)
