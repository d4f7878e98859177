package decimalx

import "github.com/shopspring/decimal"

// RSI computes the relative strength index of the last value using Wilder's smoothing:
// the first average is the mean of the first period deltas, then
// avg = (prevAvg*(period-1) + current) / period for every later delta.
//
// ok is false when there are fewer than period+1 values or the average loss is zero,
// in which case the index is undefined.
func RSI(values []decimal.Decimal, period int) (rsi decimal.Decimal, ok bool) {
	if period <= 0 || len(values) < period+1 {
		return decimal.Zero, false
	}

	n := decimal.NewFromInt(int64(period))
	prevWeight := decimal.NewFromInt(int64(period - 1))

	avgGain, avgLoss := decimal.Zero, decimal.Zero
	for i := 1; i <= period; i++ {
		gain, loss := splitDelta(values[i].Sub(values[i-1]))
		avgGain = avgGain.Add(gain)
		avgLoss = avgLoss.Add(loss)
	}
	avgGain = avgGain.Div(n)
	avgLoss = avgLoss.Div(n)

	for i := period + 1; i < len(values); i++ {
		gain, loss := splitDelta(values[i].Sub(values[i-1]))
		avgGain = avgGain.Mul(prevWeight).Add(gain).Div(n)
		avgLoss = avgLoss.Mul(prevWeight).Add(loss).Div(n)
	}

	rs, ok := SafeDiv(avgGain, avgLoss)
	if !ok {
		return decimal.Zero, false
	}
	return hundred.Sub(hundred.Div(decimal.NewFromInt(1).Add(rs))), true
}

func splitDelta(d decimal.Decimal) (gain, loss decimal.Decimal) {
	if d.IsPositive() {
		return d, decimal.Zero
	}
	return decimal.Zero, d.Neg()
}
