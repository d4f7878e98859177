package strategy

import (
	"errors"

	"github.com/KNICEX/arbitrage-agent/internal/service/exchange"
	"github.com/shopspring/decimal"
)

// ErrComputation is returned when a signal cannot be derived from the inputs,
// e.g. a zero divisor or a missing leg.
var ErrComputation = errors.New("signal computation failed")

type Verdict string

const (
	Overvalued  Verdict = "overvalued"
	Undervalued Verdict = "undervalued"
	Balanced    Verdict = "balanced"
)

func (v Verdict) Label() string {
	switch v {
	case Overvalued:
		return "overvalued — sell-local opportunity"
	case Undervalued:
		return "undervalued — buy-local opportunity"
	default:
		return "balanced"
	}
}

// Legs are the three pairs the cross rate is derived from.
type Legs struct {
	AssetStable exchange.TradingPair // A/USDT
	AssetLocal  exchange.TradingPair // A/IRT
	StableLocal exchange.TradingPair // USDT/IRT
}

func NewLegs(asset, stable, fiat string) Legs {
	return Legs{
		AssetStable: exchange.TradingPair{Base: asset, Quote: stable},
		AssetLocal:  exchange.TradingPair{Base: asset, Quote: fiat},
		StableLocal: exchange.TradingPair{Base: stable, Quote: fiat},
	}
}

func (l Legs) Pairs() []exchange.TradingPair {
	return []exchange.TradingPair{l.AssetStable, l.AssetLocal, l.StableLocal}
}

type ArbitrageResult struct {
	Legs        Legs
	AssetStable decimal.Decimal
	AssetLocal  decimal.Decimal
	StableLocal decimal.Decimal
	ImpliedRate decimal.Decimal // implied StableLocal via the asset
	DiffPercent decimal.Decimal
	Verdict     Verdict
}

type RSIState int

const (
	RSIInsufficient RSIState = iota // fewer samples than required
	RSINoSignal                     // undefined, average loss is zero
	RSIOversold
	RSIOverbought
	RSINeutral
)

func (s RSIState) String() string {
	switch s {
	case RSIInsufficient:
		return "insufficient data"
	case RSINoSignal:
		return "no signal"
	case RSIOversold:
		return "oversold"
	case RSIOverbought:
		return "overbought"
	case RSINeutral:
		return "neutral"
	default:
		return "unknown"
	}
}

type RSIReading struct {
	State   RSIState
	Value   decimal.Decimal // only meaningful for oversold/overbought/neutral
	Samples int
}

// HasValue reports whether Value holds a computed index.
func (r RSIReading) HasValue() bool {
	return r.State == RSIOversold || r.State == RSIOverbought || r.State == RSINeutral
}

// Signal is produced once per complete snapshot and handed straight to the notifier.
type Signal struct {
	Arbitrage ArbitrageResult
	RSI       RSIReading
	Text      string
}
