package currency

import (
	"fmt"
	"strconv"
	"strings"
)

// Currency is a display currency for the storefront. Prices are stored
// in NGN; USD is derived from a fixed configured rate.
type Currency string

const (
	NGN Currency = "NGN"
	USD Currency = "USD"
)

// DefaultRate is the NGN per USD fallback when no rate is configured.
const DefaultRate = 1600.0

func Parse(s string) (Currency, bool) {
	switch strings.ToUpper(s) {
	case string(NGN):
		return NGN, true
	case string(USD):
		return USD, true
	}
	return "", false
}

// Convert returns amount (stored in NGN) expressed in cur.
func Convert(amount float64, cur Currency, rate float64) float64 {
	if rate <= 0 {
		rate = DefaultRate
	}
	if cur == USD {
		return amount / rate
	}
	return amount
}

// Format renders amount in cur with a symbol and thousands separators.
// Deterministic for a given (amount, cur, rate).
func Format(amount float64, cur Currency, rate float64) string {
	converted := Convert(amount, cur, rate)
	symbol := "₦"
	if cur == USD {
		symbol = "$"
	}
	sign := ""
	if converted < 0 {
		sign = "-"
		converted = -converted
	}
	return sign + symbol + group(strconv.FormatFloat(converted, 'f', 2, 64))
}

// group inserts commas into the integer part of a fixed-point decimal.
func group(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	out := b.String()
	if frac != "" {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}

// Symbol returns the display symbol for cur.
func Symbol(cur Currency) string {
	if cur == USD {
		return "$"
	}
	return "₦"
}

// String implements fmt.Stringer.
func (c Currency) String() string {
	return string(c)
}

var _ fmt.Stringer = NGN
