package statement

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts an amount string in the thousands-dot, decimal-comma
// locale used by Argentine statements into an exact decimal, preserving sign.
// Accepts an optional currency prefix: "$-506.186,34" -> -506186.34.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "\u00a0", "")
	s = strings.ReplaceAll(s, ".", "")
	s = strings.Replace(s, ",", ".", 1)

	return decimal.NewFromString(s)
}
