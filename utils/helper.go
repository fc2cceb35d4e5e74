package utils

import (
	"errors"
	"math/rand"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const idSuffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// RandomIdSuffix returns a short lowercase alphanumeric string for
// simulated payment/order ids (sim_pay_<ts>_<suffix>).
func RandomIdSuffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = idSuffixAlphabet[rand.Intn(len(idSuffixAlphabet))]
	}
	return string(b)
}

// HumanizeCode converts an UPPER_SNAKE code into a title-cased label,
// e.g. "AMOUNT_MISMATCH" -> "Amount Mismatch".
func HumanizeCode(code string) string {
	words := strings.Split(strings.ToLower(strings.ReplaceAll(code, "_", " ")), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// DecimalToCents converts a major-unit decimal amount into minor units,
// rounded to the nearest cent. 19.99 -> 1999.
func DecimalToCents(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// ProcessValidationErrors flattens binding validation errors into a
// field -> failed-tag map for the response body. Returns nil when the
// error is not a validation error.
func ProcessValidationErrors(err error) map[string]string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	errorResponse := make(map[string]string)
	for _, ve := range validationErrors {
		errorResponse[ve.Field()] = ve.Tag()
	}
	return errorResponse
}

func UniqueSlice[T comparable](in []T) []T {
	seen := make(map[T]struct{}, len(in))
	out := make([]T, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
