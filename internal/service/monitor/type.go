package monitor

import (
	"context"

	"github.com/KNICEX/arbitrage-agent/internal/service/exchange"
)

const (
	StartupMessage   = "🚀 arbitrage monitor started!"
	HeartbeatMessage = "🕒 arbitrage monitor is running without problems."
)

// SnapshotFetcher collects one tick of quotes, leaving failed pairs out.
type SnapshotFetcher interface {
	FetchSnapshot(ctx context.Context, pairs []exchange.TradingPair) exchange.Snapshot
}
