package nobitex

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/KNICEX/arbitrage-agent/internal/service/exchange"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsKey(t *testing.T) {
	testCases := []struct {
		name    string
		pair    exchange.TradingPair
		want    string
		wantErr bool
	}{
		{name: "asset in fiat", pair: exchange.TradingPair{Base: "TON", Quote: "IRT"}, want: "tonirt"},
		{name: "stable in fiat", pair: exchange.TradingPair{Base: "USDT", Quote: "IRT"}, want: "usdtirt"},
		{name: "btc in fiat", pair: exchange.TradingPair{Base: "BTC", Quote: "IRT"}, want: "btcirt"},
		{name: "already lower", pair: exchange.TradingPair{Base: "ton", Quote: "irt"}, want: "tonirt"},
		{name: "digits", pair: exchange.TradingPair{Base: "1INCH", Quote: "IRT"}, want: "1inchirt"},
		{name: "empty quote", pair: exchange.TradingPair{Base: "TON"}, wantErr: true},
		{name: "separator in base", pair: exchange.TradingPair{Base: "TON-X", Quote: "IRT"}, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			key, err := StatsKey(tc.pair)
			if tc.wantErr {
				assert.ErrorIs(t, err, exchange.ErrUnsupportedPair)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, key)
		})
	}
}

func TestStatsService_FetchPrice(t *testing.T) {
	testCases := []struct {
		name    string
		status  int
		body    string
		pair    exchange.TradingPair
		want    string
		wantErr error
	}{
		{
			name:   "string latest",
			status: http.StatusOK,
			body:   `{"status":"ok","stats":{"tonirt":{"latest":"300000","dayHigh":"310000"},"usdtirt":{"latest":"58000"}}}`,
			pair:   exchange.TradingPair{Base: "TON", Quote: "IRT"},
			want:   "300000",
		},
		{
			name:   "numeric latest",
			status: http.StatusOK,
			body:   `{"status":"ok","stats":{"usdtirt":{"latest":58000.5}}}`,
			pair:   exchange.TradingPair{Base: "USDT", Quote: "IRT"},
			want:   "58000.5",
		},
		{
			name:   "malformed neighbour ignored",
			status: http.StatusOK,
			body:   `{"status":"ok","stats":{"tonirt":{"latest":"oops"},"usdtirt":{"latest":"58000"}}}`,
			pair:   exchange.TradingPair{Base: "USDT", Quote: "IRT"},
			want:   "58000",
		},
		{
			name:    "missing key",
			status:  http.StatusOK,
			body:    `{"status":"ok","stats":{"btcirt":{"latest":"1"}}}`,
			pair:    exchange.TradingPair{Base: "TON", Quote: "IRT"},
			wantErr: ErrKeyNotFound,
		},
		{
			name:    "missing latest",
			status:  http.StatusOK,
			body:    `{"status":"ok","stats":{"tonirt":{"dayHigh":"1"}}}`,
			pair:    exchange.TradingPair{Base: "TON", Quote: "IRT"},
			wantErr: ErrNoLatest,
		},
		{
			name:   "non numeric latest",
			status: http.StatusOK,
			body:   `{"status":"ok","stats":{"tonirt":{"latest":"n/a"}}}`,
			pair:   exchange.TradingPair{Base: "TON", Quote: "IRT"},
		},
		{
			name:   "bad status",
			status: http.StatusBadGateway,
			body:   `upstream down`,
			pair:   exchange.TradingPair{Base: "TON", Quote: "IRT"},
		},
		{
			name:   "not json",
			status: http.StatusOK,
			body:   `<html></html>`,
			pair:   exchange.TradingPair{Base: "TON", Quote: "IRT"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/market/stats", r.URL.Path)
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			svc := NewStatsService(WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
			price, err := svc.FetchPrice(context.Background(), tc.pair)
			if tc.want == "" {
				require.Error(t, err)
				if tc.wantErr != nil {
					assert.ErrorIs(t, err, tc.wantErr)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, price.String())
		})
	}
}

func TestStatsService_FetchPrice_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	svc := NewStatsService(WithBaseURL(url))
	_, err := svc.FetchPrice(context.Background(), exchange.TradingPair{Base: "TON", Quote: "IRT"})
	assert.Error(t, err)
}

func TestStatsService_FetchPrices_OneRequestPerBatch(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		_, _ = w.Write([]byte(`{"status":"ok","stats":{"tonirt":{"latest":"300000"},"usdtirt":{"latest":"58000"}}}`))
	}))
	defer srv.Close()

	tonIRT := exchange.TradingPair{Base: "TON", Quote: "IRT"}
	usdtIRT := exchange.TradingPair{Base: "USDT", Quote: "IRT"}
	notListed := exchange.TradingPair{Base: "DOGE", Quote: "IRT"}
	invalid := exchange.TradingPair{Base: "TON-X", Quote: "IRT"}

	svc := NewStatsService(WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	results := svc.FetchPrices(context.Background(), []exchange.TradingPair{tonIRT, usdtIRT, notListed, invalid})

	assert.Equal(t, int32(1), requests.Load())
	require.Len(t, results, 4)
	require.NoError(t, results[tonIRT].Err)
	assert.Equal(t, "300000", results[tonIRT].Price.String())
	require.NoError(t, results[usdtIRT].Err)
	assert.Equal(t, "58000", results[usdtIRT].Price.String())
	assert.ErrorIs(t, results[notListed].Err, ErrKeyNotFound)
	assert.ErrorIs(t, results[invalid].Err, exchange.ErrUnsupportedPair)
}

func TestStatsService_FetchPrices_RequestFailure(t *testing.T) {
	testCases := []struct {
		name  string
		pairs []exchange.TradingPair
		calls int32
	}{
		{
			name:  "every pair carries the request error",
			pairs: []exchange.TradingPair{{Base: "TON", Quote: "IRT"}, {Base: "USDT", Quote: "IRT"}},
			calls: 1,
		},
		{
			name:  "no valid key, no request",
			pairs: []exchange.TradingPair{{Base: "TON"}},
			calls: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var requests atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				requests.Add(1)
				w.WriteHeader(http.StatusBadGateway)
			}))
			defer srv.Close()

			svc := NewStatsService(WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
			results := svc.FetchPrices(context.Background(), tc.pairs)

			assert.Equal(t, tc.calls, requests.Load())
			require.Len(t, results, len(tc.pairs))
			for _, pair := range tc.pairs {
				assert.Error(t, results[pair].Err, pair.ToSlashString())
			}
		})
	}
}
