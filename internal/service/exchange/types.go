package exchange

import (
	"context"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Quote 报价, immutable once fetched
type Quote struct {
	Pair      TradingPair
	Price     decimal.Decimal
	FetchedAt time.Time
}

// Snapshot holds the quotes collected in a single tick.
type Snapshot map[TradingPair]Quote

// Complete reports whether every required pair has a positive quote.
// An incomplete snapshot must not produce a signal or touch the history.
func (s Snapshot) Complete(required []TradingPair) bool {
	return len(s.Missing(required)) == 0
}

func (s Snapshot) Missing(required []TradingPair) []TradingPair {
	return lo.Filter(required, func(item TradingPair, index int) bool {
		q, ok := s[item]
		return !ok || !q.Price.IsPositive()
	})
}

func (s Snapshot) Price(pair TradingPair) (decimal.Decimal, bool) {
	q, ok := s[pair]
	if !ok {
		return decimal.Zero, false
	}
	return q.Price, true
}

// PriceSource is one upstream price provider.
type PriceSource interface {
	FetchPrice(ctx context.Context, pair TradingPair) (decimal.Decimal, error)
	Name() string
}

// PriceResult is the outcome for one pair of a batch fetch.
type PriceResult struct {
	Price decimal.Decimal
	Err   error
}

// BatchPriceSource answers several pairs from a single upstream response,
// so pairs of one tick share the same upstream moment.
type BatchPriceSource interface {
	PriceSource
	// FetchPrices returns an entry for every requested pair.
	FetchPrices(ctx context.Context, pairs []TradingPair) map[TradingPair]PriceResult
}
