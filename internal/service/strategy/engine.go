package strategy

import (
	"fmt"
	"strings"

	"github.com/KNICEX/arbitrage-agent/internal/service/exchange"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Engine turns a complete snapshot plus the reference price history into a Signal.
// It holds no state and is safe for concurrent use.
type Engine struct {
	legs Legs
}

func NewEngine(legs Legs) *Engine {
	return &Engine{legs: legs}
}

func (e *Engine) Legs() Legs {
	return e.legs
}

func (e *Engine) Evaluate(snapshot exchange.Snapshot, history []decimal.Decimal) (Signal, error) {
	arb, err := Arbitrage(snapshot, e.legs)
	if err != nil {
		return Signal{}, err
	}
	sig := Signal{
		Arbitrage: arb,
		RSI:       RSI(history),
	}
	sig.Text = Render(sig)
	return sig, nil
}

// Render formats the alert text. Asset prices use 3 decimals, fiat amounts are
// thousands-grouped integers and the diff uses 2 decimals.
func Render(sig Signal) string {
	arb := sig.Arbitrage
	legs := arb.Legs

	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 %s: %s $\n", legs.AssetStable, arb.AssetStable.StringFixed(3))
	fmt.Fprintf(&sb, "📊 %s: %s %s\n", legs.AssetLocal, grouped(arb.AssetLocal), legs.AssetLocal.Quote)
	fmt.Fprintf(&sb, "📊 %s: %s %s\n", legs.StableLocal, grouped(arb.StableLocal), legs.StableLocal.Quote)
	fmt.Fprintf(&sb, "💡 Implied %s via %s: %s %s\n", legs.StableLocal, legs.AssetStable.Base,
		grouped(arb.ImpliedRate), legs.StableLocal.Quote)
	fmt.Fprintf(&sb, "📈 Diff: %s%%\n", arb.DiffPercent.StringFixed(2))

	switch arb.Verdict {
	case Overvalued, Undervalued:
		fmt.Fprintf(&sb, "\n✅ %s", arb.Verdict.Label())
	default:
		fmt.Fprintf(&sb, "\nℹ️ %s", arb.Verdict.Label())
	}

	if line := renderRSI(sig.RSI); line != "" {
		sb.WriteString("\n")
		sb.WriteString(line)
	}
	return sb.String()
}

func renderRSI(r RSIReading) string {
	switch r.State {
	case RSIOversold:
		return "📉 RSI low: oversold — growth likely"
	case RSIOverbought:
		return "📈 RSI high: overbought — correction likely"
	case RSINeutral:
		return fmt.Sprintf("ℹ️ RSI: %s (neutral)", r.Value.StringFixed(1))
	default:
		return ""
	}
}

func grouped(d decimal.Decimal) string {
	return humanize.Comma(d.Round(0).IntPart())
}

// RenderError is the distinct alert sent when a complete snapshot could not be analyzed.
func RenderError(err error) string {
	return fmt.Sprintf("❗ analysis failed: %v", err)
}
