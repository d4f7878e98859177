package ioc

import (
	"net/http"

	"github.com/KNICEX/arbitrage-agent/internal/service/exchange"
	"github.com/KNICEX/arbitrage-agent/internal/service/exchange/binance"
	"github.com/KNICEX/arbitrage-agent/internal/service/exchange/nobitex"
	binancesdk "github.com/adshao/go-binance/v2"
	"github.com/spf13/viper"
)

// InitPriceRouter sends stablecoin quoted pairs to binance and local fiat pairs to nobitex.
// Routes come from the same monitor config as the arbitrage legs.
func InitPriceRouter(cli *binancesdk.Client) *exchange.Router {
	cfg := loadMonitorConfig()
	timeout := viper.GetDuration("http.timeout")
	stats := nobitex.NewStatsService(
		nobitex.WithBaseURL(viper.GetString("exchange.nobitex.base_url")),
		nobitex.WithHTTPClient(&http.Client{Timeout: timeout}),
	)
	return exchange.NewRouter(
		exchange.WithRoute(cfg.Stable, binance.NewTickerService(cli)),
		exchange.WithRoute(cfg.Fiat, stats),
		exchange.WithFetchTimeout(timeout),
	)
}
