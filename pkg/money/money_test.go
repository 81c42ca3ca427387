package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCentsRoundsHalfAwayFromZero(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"12.344", 1234},
		{"12.345", 1235},
		{"-12.345", -1235},
		{"0.005", 1},
		{"10", 1000},
	}
	for _, tc := range tests {
		d, err := decimal.NewFromString(tc.in)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.in, err)
		}
		if got := Cents(d); got != tc.want {
			t.Fatalf("Cents(%s) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestFromCentsRoundTrips(t *testing.T) {
	if got := Cents(FromCents(1299)); got != 1299 {
		t.Fatalf("round trip = %d, want 1299", got)
	}
	if !FromCents(50).Equal(decimal.RequireFromString("0.5")) {
		t.Fatalf("FromCents(50) = %s", FromCents(50))
	}
}

func TestNoIntermediateRoundingDrift(t *testing.T) {
	// 3 items at 0.333 each must round once at the end, not per item.
	unit := decimal.RequireFromString("0.333")
	total := unit.Mul(decimal.NewFromInt(3))
	if got := Cents(total); got != 100 {
		t.Fatalf("Cents(0.999) = %d, want 100", got)
	}
}
