package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/KNICEX/arbitrage-agent/internal/entity"
	"github.com/KNICEX/arbitrage-agent/internal/metrics"
	"github.com/KNICEX/arbitrage-agent/internal/repo"
	"github.com/KNICEX/arbitrage-agent/internal/schedule"
	"github.com/KNICEX/arbitrage-agent/internal/service/exchange"
	"github.com/KNICEX/arbitrage-agent/internal/service/notification"
	"github.com/KNICEX/arbitrage-agent/internal/service/strategy"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

var _ schedule.Task = (*AnalysisTask)(nil)

// AnalysisTask 行情分析任务: fetch -> update history -> compute -> notify.
// It owns the price history; nothing else writes to it.
type AnalysisTask struct {
	fetcher  SnapshotFetcher
	engine   *strategy.Engine
	notifier notification.Notifier
	history  *PriceHistory
	repo     repo.SignalRepo

	pairs     []exchange.TradingPair
	reference exchange.TradingPair

	announce sync.Once
	now      func() time.Time
}

type Option func(t *AnalysisTask)

// WithSignalRepo journals every emitted signal.
func WithSignalRepo(r repo.SignalRepo) Option {
	return func(t *AnalysisTask) {
		t.repo = r
	}
}

// WithExtraPairs adds pairs that must be present for a snapshot to count as complete.
func WithExtraPairs(pairs ...exchange.TradingPair) Option {
	return func(t *AnalysisTask) {
		t.pairs = lo.Uniq(append(t.pairs, pairs...))
	}
}

func NewAnalysisTask(fetcher SnapshotFetcher, engine *strategy.Engine, notifier notification.Notifier,
	history *PriceHistory, opts ...Option) *AnalysisTask {
	legs := engine.Legs()
	task := &AnalysisTask{
		fetcher:   fetcher,
		engine:    engine,
		notifier:  notifier,
		history:   history,
		pairs:     legs.Pairs(),
		reference: legs.AssetStable,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(task)
	}
	return task
}

func (t *AnalysisTask) Name() string {
	return "arbitrage analysis task"
}

// Pairs returns the pairs fetched every tick.
func (t *AnalysisTask) Pairs() []exchange.TradingPair {
	return t.pairs
}

func (t *AnalysisTask) Run(ctx context.Context) error {
	tick := uuid.NewString()
	logger := log.With().Str("task", t.Name()).Str("tick", tick).Logger()

	t.announce.Do(func() {
		ok := notification.BestEffort(ctx, t.notifier, StartupMessage)
		metrics.NotificationsTotal.WithLabelValues("startup", metrics.Delivery(ok)).Inc()
	})

	snapshot := t.fetcher.FetchSnapshot(ctx, t.pairs)
	if missing := snapshot.Missing(t.pairs); len(missing) > 0 {
		for _, pair := range missing {
			metrics.FetchFailuresTotal.WithLabelValues(pair.ToSlashString()).Inc()
		}
		metrics.TicksTotal.WithLabelValues(metrics.ResultIncomplete).Inc()
		logger.Warn().
			Strs("missing", lo.Map(missing, func(item exchange.TradingPair, index int) string {
				return item.ToSlashString()
			})).
			Msg("incomplete snapshot, skip this tick")
		return nil
	}

	t.history.Append(snapshot[t.reference].Price)
	metrics.HistorySamples.Set(float64(t.history.Len()))

	sig, err := t.engine.Evaluate(snapshot, t.history.Values())
	if err != nil {
		metrics.TicksTotal.WithLabelValues(metrics.ResultFailed).Inc()
		ok := notification.BestEffort(ctx, t.notifier, strategy.RenderError(err))
		metrics.NotificationsTotal.WithLabelValues("error", metrics.Delivery(ok)).Inc()
		return fmt.Errorf("analyze tick %s: %w", tick, err)
	}

	metrics.TicksTotal.WithLabelValues(metrics.ResultComplete).Inc()
	metrics.DiffPercent.Set(sig.Arbitrage.DiffPercent.InexactFloat64())
	if sig.RSI.HasValue() {
		metrics.RSI.Set(sig.RSI.Value.InexactFloat64())
	}
	logSignal(logger, sig)

	delivered := notification.BestEffort(ctx, t.notifier, sig.Text)
	metrics.NotificationsTotal.WithLabelValues("signal", metrics.Delivery(delivered)).Inc()

	t.journal(ctx, logger, tick, sig, delivered)
	return nil
}

func (t *AnalysisTask) journal(ctx context.Context, logger zerolog.Logger, tick string, sig strategy.Signal, delivered bool) {
	if t.repo == nil {
		return
	}
	arb := sig.Arbitrage
	record := entity.SignalRecord{
		TickId:      tick,
		Asset:       arb.Legs.AssetStable.Base,
		AssetStable: arb.AssetStable.String(),
		AssetLocal:  arb.AssetLocal.String(),
		StableLocal: arb.StableLocal.String(),
		ImpliedRate: arb.ImpliedRate.String(),
		DiffPercent: arb.DiffPercent.InexactFloat64(),
		Verdict:     string(arb.Verdict),
		RSIState:    sig.RSI.State.String(),
		Samples:     sig.RSI.Samples,
		Delivered:   delivered,
		CreatedAt:   t.now(),
	}
	if sig.RSI.HasValue() {
		record.RSI = lo.ToPtr(sig.RSI.Value.InexactFloat64())
	}
	if _, err := t.repo.Create(ctx, record); err != nil {
		logger.Error().Err(err).Msg("failed to journal signal")
	}
}

func logSignal(logger zerolog.Logger, sig strategy.Signal) {
	event := logger.Info().
		Str("implied_rate", sig.Arbitrage.ImpliedRate.StringFixed(2)).
		Str("diff_percent", sig.Arbitrage.DiffPercent.StringFixed(2)).
		Str("verdict", string(sig.Arbitrage.Verdict)).
		Str("rsi_state", sig.RSI.State.String()).
		Int("samples", sig.RSI.Samples)
	if sig.RSI.HasValue() {
		event = event.Str("rsi", sig.RSI.Value.StringFixed(1))
	}
	event.Msg("signal computed")
}
