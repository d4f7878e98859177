package strategy

import (
	"fmt"

	"github.com/KNICEX/arbitrage-agent/internal/service/exchange"
	"github.com/KNICEX/arbitrage-agent/pkg/decimalx"
	"github.com/shopspring/decimal"
)

var (
	overvaluedAbove  = decimal.NewFromFloat(1.5)
	undervaluedBelow = decimal.NewFromFloat(-1.5)
)

// Arbitrage 三角套利: compares the market stable/fiat rate against the rate implied by the asset.
//
//	impliedRate = A/IRT / A/USDT
//	diffPercent = (impliedRate - USDT/IRT) / USDT/IRT * 100
func Arbitrage(snapshot exchange.Snapshot, legs Legs) (ArbitrageResult, error) {
	assetStable, ok := snapshot.Price(legs.AssetStable)
	if !ok {
		return ArbitrageResult{}, fmt.Errorf("%w: missing %s", ErrComputation, legs.AssetStable)
	}
	assetLocal, ok := snapshot.Price(legs.AssetLocal)
	if !ok {
		return ArbitrageResult{}, fmt.Errorf("%w: missing %s", ErrComputation, legs.AssetLocal)
	}
	stableLocal, ok := snapshot.Price(legs.StableLocal)
	if !ok {
		return ArbitrageResult{}, fmt.Errorf("%w: missing %s", ErrComputation, legs.StableLocal)
	}

	implied, ok := decimalx.SafeDiv(assetLocal, assetStable)
	if !ok {
		return ArbitrageResult{}, fmt.Errorf("%w: %s price is zero", ErrComputation, legs.AssetStable)
	}
	diff, ok := decimalx.ChangePercent(stableLocal, implied)
	if !ok {
		return ArbitrageResult{}, fmt.Errorf("%w: %s price is zero", ErrComputation, legs.StableLocal)
	}

	return ArbitrageResult{
		Legs:        legs,
		AssetStable: assetStable,
		AssetLocal:  assetLocal,
		StableLocal: stableLocal,
		ImpliedRate: implied,
		DiffPercent: diff,
		Verdict:     classify(diff),
	}, nil
}

// boundaries are exclusive, exactly ±1.5 is balanced
func classify(diff decimal.Decimal) Verdict {
	switch {
	case diff.GreaterThan(overvaluedAbove):
		return Overvalued
	case diff.LessThan(undervaluedBelow):
		return Undervalued
	default:
		return Balanced
	}
}
