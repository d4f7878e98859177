package ioc

import (
	"fmt"
	"strings"
	"time"

	"github.com/KNICEX/arbitrage-agent/internal/repo"
	"github.com/KNICEX/arbitrage-agent/internal/schedule"
	"github.com/KNICEX/arbitrage-agent/internal/service/exchange"
	"github.com/KNICEX/arbitrage-agent/internal/service/monitor"
	"github.com/KNICEX/arbitrage-agent/internal/service/notification"
	"github.com/KNICEX/arbitrage-agent/internal/service/strategy"
	"github.com/samber/lo"
)

type MonitorConfig struct {
	Asset             string        `mapstructure:"asset"`
	Stable            string        `mapstructure:"stable"`
	Fiat              string        `mapstructure:"fiat"`
	Pairs             []string      `mapstructure:"pairs"`
	Auxiliary         string        `mapstructure:"auxiliary"`
	Interval          time.Duration `mapstructure:"interval"`
	HeartbeatInterval time.Duration `mapstructure:"heartbeat_interval"`
	HistorySize       int           `mapstructure:"history_size"`
}

func loadMonitorConfig() MonitorConfig {
	var cfg MonitorConfig
	if err := unmarshalKey("monitor", &cfg); err != nil {
		panic(err)
	}
	if cfg.Asset == "" || cfg.Stable == "" || cfg.Fiat == "" {
		panic("monitor.asset, monitor.stable and monitor.fiat must be set")
	}
	if cfg.Interval <= 0 || cfg.HeartbeatInterval <= 0 {
		panic("monitor.interval and monitor.heartbeat_interval must be positive")
	}
	return cfg
}

func parsePairs(raw []string) []exchange.TradingPair {
	return lo.Map(raw, func(item string, index int) exchange.TradingPair {
		pair, err := exchange.ParseTradingPair(item)
		if err != nil {
			panic(fmt.Errorf("monitor.pairs: %w", err))
		}
		return pair
	})
}

// InitScheduler builds the analysis and heartbeat jobs. Nothing runs until Start.
func InitScheduler(fetcher monitor.SnapshotFetcher, notifier notification.Notifier, signalRepo repo.SignalRepo) *schedule.Scheduler {
	cfg := loadMonitorConfig()

	legs := strategy.NewLegs(strings.ToUpper(cfg.Asset), strings.ToUpper(cfg.Stable), strings.ToUpper(cfg.Fiat))
	extra := parsePairs(cfg.Pairs)
	if cfg.Auxiliary != "" {
		extra = append(extra, parsePairs([]string{cfg.Auxiliary})...)
	}

	analysis := monitor.NewAnalysisTask(
		fetcher,
		strategy.NewEngine(legs),
		notifier,
		monitor.NewPriceHistory(cfg.HistorySize),
		monitor.WithExtraPairs(extra...),
		monitor.WithSignalRepo(signalRepo),
	)

	return schedule.NewScheduler(
		schedule.Job{Task: analysis, Interval: cfg.Interval, Immediate: true},
		schedule.Job{Task: monitor.NewHeartbeatTask(notifier), Interval: cfg.HeartbeatInterval},
	)
}
