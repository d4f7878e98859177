package decimalx

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParsePrice parses an exchange price string, e.g. "5.12300000".
// Padding spaces are ignored; sign and magnitude are left to the caller.
func ParsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("parse price: empty string")
	}
	res, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse price %q: %w", s, err)
	}
	return res, nil
}
