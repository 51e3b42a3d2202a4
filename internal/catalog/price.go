package catalog

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const pricePrefix = "R$"

var pricePrinter = message.NewPrinter(language.BrazilianPortuguese)

// FormatPrice renders an appointment price the way the form displays it, e.g. R$1.234,50.
func FormatPrice(v float64) string {
	return pricePrefix + pricePrinter.Sprintf("%.2f", v)
}

// ParsePrice accepts both the displayed format (R$1.234,50) and a plain decimal (1234.50).
func ParsePrice(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), pricePrefix))
	if s == "" {
		return 0, fmt.Errorf("empty price")
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", s, err)
	}
	if !IsFinite(v) {
		return 0, fmt.Errorf("invalid price %q: not a finite amount", s)
	}
	return v, nil
}

// IsFinite reports whether v is a usable amount, i.e. neither infinite nor NaN.
func IsFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
