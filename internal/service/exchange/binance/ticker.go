package binance

import (
	"context"
	"fmt"

	"github.com/KNICEX/arbitrage-agent/internal/service/exchange"
	"github.com/KNICEX/arbitrage-agent/pkg/decimalx"
	"github.com/adshao/go-binance/v2"
	"github.com/shopspring/decimal"
)

var _ exchange.PriceSource = (*TickerService)(nil)

// TickerService 现货最新成交价
type TickerService struct {
	cli *binance.Client
}

func NewTickerService(cli *binance.Client) *TickerService {
	return &TickerService{cli: cli}
}

func (svc *TickerService) Name() string {
	return "binance"
}

// FetchPrice returns the last trade price of the pair, e.g. TON/USDT -> TONUSDT.
func (svc *TickerService) FetchPrice(ctx context.Context, pair exchange.TradingPair) (decimal.Decimal, error) {
	prices, err := svc.cli.NewListPricesService().Symbol(pair.ToString()).Do(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	if len(prices) == 0 {
		return decimal.Zero, fmt.Errorf("symbol %s not found", pair.ToString())
	}
	return decimalx.ParsePrice(prices[0].Price)
}
