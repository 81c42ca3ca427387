package zone

import (
	"testing"

	"github.com/avaldez-dev/storefront-pricing/pkg/types"
	"github.com/google/uuid"
)

func TestMatchAddressEmptyConditionMatchesEverything(t *testing.T) {
	t.Parallel()

	ok, err := MatchAddress(types.Condition{}, types.Address{CountryCode: "FR"})
	if err != nil || !ok {
		t.Fatalf("empty condition should match everything, got ok=%v err=%v", ok, err)
	}
}

func TestMatchAddressCountry(t *testing.T) {
	t.Parallel()

	cond := types.Condition{Kind: types.ConditionCountryIn, Countries: []string{"US", "CA"}}

	if ok, _ := MatchAddress(cond, types.Address{CountryCode: "us"}); !ok {
		t.Fatal("country membership should be case-insensitive")
	}
	if ok, _ := MatchAddress(cond, types.Address{CountryCode: "DE"}); ok {
		t.Fatal("DE should not match {US, CA}")
	}
}

func TestMatchAddressComposite(t *testing.T) {
	t.Parallel()

	cond := types.Condition{
		Kind: types.ConditionAll,
		Nested: []types.Condition{
			{Kind: types.ConditionCountryIn, Countries: []string{"US"}},
			{Kind: types.ConditionAdminAreaIn, Areas: []string{"OK", "TX"}},
			{Kind: types.ConditionPostalFormula, Formula: `postalCode matches "^74"`},
		},
	}

	addr := types.Address{CountryCode: "US", AdministrativeArea: "OK", PostalCode: "74104"}
	if ok, err := MatchAddress(cond, addr); err != nil || !ok {
		t.Fatalf("expected composite match, got ok=%v err=%v", ok, err)
	}

	addr.PostalCode = "90210"
	if ok, _ := MatchAddress(cond, addr); ok {
		t.Fatal("postal formula arm should reject 90210")
	}
}

func TestMatchAddressBadFormulaFailsClosed(t *testing.T) {
	t.Parallel()

	cond := types.Condition{Kind: types.ConditionPostalFormula, Formula: `zipCode == "88"`}
	ok, err := MatchAddress(cond, types.Address{PostalCode: "88"})
	if ok {
		t.Fatal("broken formula must not match")
	}
	if err == nil {
		t.Fatal("broken formula must surface an error for operator reporting")
	}
}

func TestMatchPurchasableCategories(t *testing.T) {
	t.Parallel()

	catA := uuid.New()
	catB := uuid.New()
	cond := types.Condition{Kind: types.ConditionCategoryIn, CategoryIDs: []uuid.UUID{catA}}

	in := PurchasableContext{PurchasableID: uuid.New(), CategoryIDs: []uuid.UUID{catB, catA}}
	if ok, _ := MatchPurchasable(cond, in); !ok {
		t.Fatal("purchasable in category should match")
	}

	out := PurchasableContext{PurchasableID: uuid.New(), CategoryIDs: []uuid.UUID{catB}}
	if ok, _ := MatchPurchasable(cond, out); ok {
		t.Fatal("purchasable outside category should not match")
	}

	if ok, _ := MatchPurchasable(types.Condition{Kind: types.ConditionCategoryIn}, out); !ok {
		t.Fatal("empty category set should match everything")
	}
}
