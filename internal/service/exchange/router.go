package exchange

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const defaultFetchTimeout = 15 * time.Second

// Router picks the upstream source for a pair by its quote currency.
type Router struct {
	sources map[string]PriceSource
	timeout time.Duration
	now     func() time.Time
}

type RouterOption func(r *Router)

// WithRoute sends every pair quoted in quote to src.
func WithRoute(quote string, src PriceSource) RouterOption {
	return func(r *Router) {
		r.sources[strings.ToUpper(quote)] = src
	}
}

func WithFetchTimeout(timeout time.Duration) RouterOption {
	return func(r *Router) {
		if timeout > 0 {
			r.timeout = timeout
		}
	}
}

func withClock(now func() time.Time) RouterOption {
	return func(r *Router) {
		r.now = now
	}
}

func NewRouter(opts ...RouterOption) *Router {
	r := &Router{
		sources: make(map[string]PriceSource),
		timeout: defaultFetchTimeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FetchPrice returns a positive quote for pair or a *FetchError.
func (r *Router) FetchPrice(ctx context.Context, pair TradingPair) (q Quote, err error) {
	src, ok := r.sources[pair.Quote]
	if !ok {
		return Quote{}, &FetchError{Pair: pair, Source: "router", Err: ErrUnsupportedPair}
	}

	defer func() {
		// a misbehaving source must not take the tick down
		if p := recover(); p != nil {
			q, err = Quote{}, &FetchError{Pair: pair, Source: src.Name(), Err: fmt.Errorf("panic: %v", p)}
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	price, err := src.FetchPrice(ctx, pair)
	return r.toQuote(src.Name(), pair, price, err)
}

func (r *Router) toQuote(source string, pair TradingPair, price decimal.Decimal, err error) (Quote, error) {
	if err != nil {
		return Quote{}, &FetchError{Pair: pair, Source: source, Err: err}
	}
	if !price.IsPositive() {
		return Quote{}, &FetchError{Pair: pair, Source: source, Err: fmt.Errorf("%w: %s", ErrInvalidPrice, price)}
	}
	return Quote{Pair: pair, Price: price, FetchedAt: r.now()}, nil
}

// FetchSnapshot fetches every pair. Pairs routed to a BatchPriceSource share one request
// per source, the rest are fetched one by one. Failed pairs are logged and left out,
// so the result may be incomplete.
func (r *Router) FetchSnapshot(ctx context.Context, pairs []TradingPair) Snapshot {
	snapshot := make(Snapshot, len(pairs))
	record := func(pair TradingPair, q Quote, err error) {
		if err != nil {
			log.Warn().Err(err).Str("pair", pair.ToSlashString()).Msg("failed to fetch price")
			return
		}
		snapshot[pair] = q
	}

	var (
		batchQuotes []string
		batches     = make(map[string][]TradingPair)
	)
	for _, pair := range pairs {
		if _, ok := r.sources[pair.Quote].(BatchPriceSource); ok {
			if _, seen := batches[pair.Quote]; !seen {
				batchQuotes = append(batchQuotes, pair.Quote)
			}
			batches[pair.Quote] = append(batches[pair.Quote], pair)
			continue
		}
		q, err := r.FetchPrice(ctx, pair)
		record(pair, q, err)
	}

	for _, quote := range batchQuotes {
		src := r.sources[quote].(BatchPriceSource)
		group := batches[quote]
		results := r.fetchBatch(ctx, src, group)
		for _, pair := range group {
			res, ok := results[pair]
			if !ok {
				res.Err = errors.New("no result in batch response")
			}
			q, err := r.toQuote(src.Name(), pair, res.Price, res.Err)
			record(pair, q, err)
		}
	}
	return snapshot
}

func (r *Router) fetchBatch(ctx context.Context, src BatchPriceSource, pairs []TradingPair) (results map[TradingPair]PriceResult) {
	defer func() {
		if p := recover(); p != nil {
			err := fmt.Errorf("panic: %v", p)
			results = lo.SliceToMap(pairs, func(item TradingPair) (TradingPair, PriceResult) {
				return item, PriceResult{Err: err}
			})
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return src.FetchPrices(ctx, pairs)
}
