package decimalx

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// SafeDiv 除数为零时返回 false, decimal.Div would panic
func SafeDiv(a, b decimal.Decimal) (decimal.Decimal, bool) {
	if b.IsZero() {
		return decimal.Zero, false
	}
	return a.Div(b), true
}

// ChangePercent returns (to - from) / from * 100.
func ChangePercent(from, to decimal.Decimal) (decimal.Decimal, bool) {
	ratio, ok := SafeDiv(to.Sub(from), from)
	if !ok {
		return decimal.Zero, false
	}
	return ratio.Mul(hundred), true
}
