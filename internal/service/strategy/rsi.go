package strategy

import (
	"github.com/KNICEX/arbitrage-agent/pkg/decimalx"
	"github.com/shopspring/decimal"
)

const (
	RSIPeriod     = 14
	MinRSISamples = 20
)

var (
	oversoldBelow   = decimal.NewFromInt(30)
	overboughtAbove = decimal.NewFromInt(70)
)

// RSI classifies the 14 period Wilder RSI of history (oldest first).
// A series without losses has no defined RSI and yields RSINoSignal instead of 100.
func RSI(history []decimal.Decimal) RSIReading {
	reading := RSIReading{Samples: len(history)}
	if len(history) < MinRSISamples {
		reading.State = RSIInsufficient
		return reading
	}

	value, ok := decimalx.RSI(history, RSIPeriod)
	if !ok {
		reading.State = RSINoSignal
		return reading
	}

	reading.Value = value
	switch {
	case value.LessThan(oversoldBelow):
		reading.State = RSIOversold
	case value.GreaterThan(overboughtAbove):
		reading.State = RSIOverbought
	default:
		reading.State = RSINeutral
	}
	return reading
}
