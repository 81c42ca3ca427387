package order

import (
	"encoding/json"

	"github.com/avaldez-dev/storefront-pricing/pkg/enums"
	"github.com/google/uuid"
)

// Adjustment is an immutable value produced by one adjuster for one order,
// optionally scoped to a single line item. SourceSnapshot carries opaque data
// identifying the rule that produced it, used for idempotent re-application
// and usage accounting.
type Adjustment struct {
	Type        enums.AdjustmentType
	Name        string
	Description string
	AmountCents int64
	// Included marks amounts already baked into displayed prices.
	Included       bool
	LineItemID     *uuid.UUID
	SourceSnapshot json.RawMessage
}
