package nobitex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/KNICEX/arbitrage-agent/internal/service/exchange"
	"github.com/shopspring/decimal"
)

const DefaultBaseURL = "https://api.nobitex.ir"

var (
	ErrKeyNotFound = errors.New("market not found in stats")
	ErrNoLatest    = errors.New("latest price missing")
)

var _ exchange.BatchPriceSource = (*StatsService)(nil)

// StatsService 国内市场统计接口, the whole market list comes back in one response
type StatsService struct {
	baseURL string
	client  *http.Client
}

type Option func(s *StatsService)

func WithBaseURL(url string) Option {
	return func(s *StatsService) {
		if url != "" {
			s.baseURL = strings.TrimRight(url, "/")
		}
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(s *StatsService) {
		s.client = client
	}
}

func NewStatsService(opts ...Option) *StatsService {
	svc := &StatsService{
		baseURL: DefaultBaseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func (svc *StatsService) Name() string {
	return "nobitex"
}

type statsResponse struct {
	Status string                     `json:"status"`
	Stats  map[string]json.RawMessage `json:"stats"`
}

type marketStats struct {
	Latest *decimal.Decimal `json:"latest"`
}

// StatsKey maps a pair to its key in the stats payload: TON/IRT -> tonirt.
func StatsKey(pair exchange.TradingPair) (string, error) {
	if pair.IsZero() || !alnum(pair.Base) || !alnum(pair.Quote) {
		return "", fmt.Errorf("%w: %q", exchange.ErrUnsupportedPair, pair.ToSlashString())
	}
	return strings.ToLower(pair.Base + pair.Quote), nil
}

func alnum(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) < 0
}

func (svc *StatsService) FetchPrice(ctx context.Context, pair exchange.TradingPair) (decimal.Decimal, error) {
	key, err := StatsKey(pair)
	if err != nil {
		return decimal.Zero, err
	}
	stats, err := svc.fetchStats(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return latest(stats, key)
}

// FetchPrices answers every pair from one /market/stats response.
func (svc *StatsService) FetchPrices(ctx context.Context, pairs []exchange.TradingPair) map[exchange.TradingPair]exchange.PriceResult {
	results := make(map[exchange.TradingPair]exchange.PriceResult, len(pairs))
	keys := make(map[exchange.TradingPair]string, len(pairs))
	for _, pair := range pairs {
		key, err := StatsKey(pair)
		if err != nil {
			results[pair] = exchange.PriceResult{Err: err}
			continue
		}
		keys[pair] = key
	}
	if len(keys) == 0 {
		return results
	}

	stats, err := svc.fetchStats(ctx)
	for pair, key := range keys {
		if err != nil {
			results[pair] = exchange.PriceResult{Err: err}
			continue
		}
		price, lookupErr := latest(stats, key)
		results[pair] = exchange.PriceResult{Price: price, Err: lookupErr}
	}
	return results
}

func (svc *StatsService) fetchStats(ctx context.Context) (map[string]json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, svc.baseURL+"/market/stats", nil)
	if err != nil {
		return nil, err
	}
	res, err := svc.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("nobitex stats status %d", res.StatusCode)
	}

	var body statsResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode stats: %w", err)
	}
	return body.Stats, nil
}

func latest(stats map[string]json.RawMessage, key string) (decimal.Decimal, error) {
	raw, ok := stats[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	// only the requested market is decoded, a malformed neighbour does not matter
	var market marketStats
	if err := json.Unmarshal(raw, &market); err != nil {
		return decimal.Zero, fmt.Errorf("decode %s stats: %w", key, err)
	}
	if market.Latest == nil {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrNoLatest, key)
	}
	return *market.Latest, nil
}
