package monitor

import (
	"sync"

	"github.com/KNICEX/arbitrage-agent/internal/service/strategy"
	"github.com/shopspring/decimal"
)

const DefaultHistorySize = 100

// PriceHistory 价格历史, a fixed-capacity ring of closing prices for one pair.
// When full, Append overwrites the oldest value.
type PriceHistory struct {
	mu     sync.RWMutex
	values []decimal.Decimal
	head   int // index of the oldest value
	size   int
}

func NewPriceHistory(capacity int) *PriceHistory {
	// never smaller than the RSI needs
	if capacity < strategy.MinRSISamples {
		capacity = strategy.MinRSISamples
	}
	return &PriceHistory{
		values: make([]decimal.Decimal, capacity),
	}
}

func (h *PriceHistory) Append(v decimal.Decimal) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.size < len(h.values) {
		h.values[(h.head+h.size)%len(h.values)] = v
		h.size++
		return
	}
	h.values[h.head] = v
	h.head = (h.head + 1) % len(h.values)
}

// Values returns a copy, oldest first.
func (h *PriceHistory) Values() []decimal.Decimal {
	h.mu.RLock()
	defer h.mu.RUnlock()

	res := make([]decimal.Decimal, h.size)
	for i := 0; i < h.size; i++ {
		res[i] = h.values[(h.head+i)%len(h.values)]
	}
	return res
}

func (h *PriceHistory) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.size
}

func (h *PriceHistory) Cap() int {
	return len(h.values)
}
