package zone

import "testing"

func TestEvalPostalFormula(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		formula string
		code    string
		want    bool
	}{
		{"simple equality", `postalCode == "88"`, "88", true},
		{"simple inequality match", `postalCode != "88"`, "90210", true},
		{"simple inequality no match", `postalCode != "88"`, "88", false},
		{"case insensitive", `postalCode == "sw1a"`, "SW1A", true},
		{"or chain", `postalCode == "11" || postalCode == "22"`, "22", true},
		{"and chain", `postalCode != "11" && postalCode != "22"`, "33", true},
		{"and chain fails", `postalCode != "11" && postalCode != "22"`, "22", false},
		{"parentheses", `(postalCode == "11" || postalCode == "22") && postalCode != "33"`, "11", true},
		{"negation", `!(postalCode == "88")`, "90210", true},
		{"regex match", `postalCode matches "^742"`, "74104", true},
		{"regex no match", `postalCode matches "^742"`, "90210", false},
		{"single quotes", `postalCode == '88'`, "88", true},
		{"reversed operands", `"88" == postalCode`, "88", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := EvalPostalFormula(tc.formula, tc.code)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("EvalPostalFormula(%q, %q) = %v, want %v", tc.formula, tc.code, got, tc.want)
			}
		})
	}
}

func TestEvalPostalFormulaErrors(t *testing.T) {
	t.Parallel()

	formulas := []string{
		`postalCode = "88"`,
		`postalCode == `,
		`zipCode == "88"`,
		`postalCode == "88" &&`,
		`(postalCode == "88"`,
		`postalCode == "88" extra`,
		`postalCode matches "["`,
		`postalCode == "unterminated`,
	}

	for _, formula := range formulas {
		if _, err := EvalPostalFormula(formula, "88"); err == nil {
			t.Fatalf("expected error for formula %q", formula)
		}
	}
}
