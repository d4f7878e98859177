package exchange

import (
	"fmt"
	"strings"
)

// TradingPair 交易对
type TradingPair struct {
	Base  string
	Quote string
}

// ParseTradingPair parses the slash form, e.g. "TON/USDT".
func ParseTradingPair(s string) (TradingPair, error) {
	base, quote, ok := strings.Cut(strings.ToUpper(strings.TrimSpace(s)), "/")
	if !ok || base == "" || quote == "" {
		return TradingPair{}, fmt.Errorf("invalid trading pair %q, want BASE/QUOTE", s)
	}
	return TradingPair{Base: base, Quote: quote}, nil
}

func (s TradingPair) IsZero() bool {
	return s.Base == "" || s.Quote == ""
}

func (s TradingPair) ToString() string {
	return fmt.Sprintf("%s%s", s.Base, s.Quote)
}

func (s TradingPair) ToSlashString() string {
	return fmt.Sprintf("%s/%s", s.Base, s.Quote)
}

func (s TradingPair) String() string {
	return s.ToSlashString()
}
