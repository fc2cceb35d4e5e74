package utils

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

func TestHumanizeCode(t *testing.T) {
	cases := map[string]string{
		"AMOUNT_MISMATCH":  "Amount Mismatch",
		"SOURCE_POS":       "Source Pos",
		"TIME_WINDOW_WIDE": "Time Window Wide",
		"other":            "Other",
		"":                 "",
	}
	for code, want := range cases {
		if got := HumanizeCode(code); got != want {
			t.Errorf("HumanizeCode(%q) = %q, want %q", code, got, want)
		}
	}
}

func TestDecimalToCents(t *testing.T) {
	cases := []struct {
		amount string
		want   int64
	}{
		{"19.99", 1999},
		{"10.00", 1000},
		{"0", 0},
		{"0.005", 1},
		{"0.004", 0},
		{"39.98", 3998},
		{"123456.78", 12345678},
	}
	for _, tc := range cases {
		amount, err := decimal.NewFromString(tc.amount)
		if err != nil {
			t.Fatalf("bad decimal %q: %v", tc.amount, err)
		}
		if got := DecimalToCents(amount); got != tc.want {
			t.Errorf("DecimalToCents(%s) = %d, want %d", tc.amount, got, tc.want)
		}
	}
}

func TestRandomIdSuffixLength(t *testing.T) {
	for _, n := range []int{1, 6, 12} {
		if got := RandomIdSuffix(n); len(got) != n {
			t.Errorf("RandomIdSuffix(%d) length = %d", n, len(got))
		}
	}
}

func TestProcessValidationErrors(t *testing.T) {
	type payload struct {
		Reason string `validate:"required"`
	}
	err := validator.New().Struct(payload{})
	fields := ProcessValidationErrors(err)
	if fields == nil {
		t.Fatal("expected a field map for a validation error")
	}
	if fields["Reason"] != "required" {
		t.Errorf("fields[Reason] = %q, want required", fields["Reason"])
	}

	if got := ProcessValidationErrors(errors.New("plain")); got != nil {
		t.Errorf("non-validation error should map to nil, got %v", got)
	}
}

func TestUniqueSlice(t *testing.T) {
	got := UniqueSlice([]string{"a", "b", "a", "c", "b"})
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("UniqueSlice length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("UniqueSlice[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
