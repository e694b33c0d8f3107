// Package core provides amount parsing and formatting utilities.
//
// Amounts are exact decimals. Input follows a plain decimal literal with an
// optional sign, fraction and exponent; display is always two decimals
// behind a fixed currency glyph.
package core

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrencySymbol is the glyph shown in front of every amount.
const DefaultCurrencySymbol = "₱"

// maxExponent bounds the decimal exponent of a parsed amount. Rescaling a
// value with a larger exponent builds a big.Int of that many digits.
const maxExponent = 64

// ParseAmount converts user text into a decimal.
//
// Surrounding whitespace is ignored. Signed values are accepted here; the
// sign is discarded when the record is built. Values that are not finite
// real numbers (NaN, Inf, out of float64 range) are rejected with
// ErrInvalidAmount, as is anything that isn't a decimal literal and any
// literal whose exponent lies outside ±64 (e.g. "0e999999999").
//
// Examples:
//   ParseAmount("1000")   -> 1000, nil
//   ParseAmount(" 12.5 ") -> 12.5, nil
//   ParseAmount("-40")    -> -40, nil
//   ParseAmount("1e3")    -> 1000, nil
//   ParseAmount("xx")     -> 0, ErrInvalidAmount
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	// Range check first so huge exponents never reach the big.Int path.
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if e := d.Exponent(); e < -maxExponent || e > maxExponent {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// FormatAmount renders d with two decimals, no symbol.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatCurrency renders d as symbol followed by the signed two-decimal
// value, e.g. "₱1000.00" or "₱-300.00".
func FormatCurrency(symbol string, d decimal.Decimal) string {
	return symbol + FormatAmount(d)
}
