package monitor

import (
	"sync"
	"testing"

	"github.com/KNICEX/arbitrage-agent/internal/service/strategy"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func ints(vs []decimal.Decimal) []int64 {
	return lo.Map(vs, func(item decimal.Decimal, index int) int64 {
		return item.IntPart()
	})
}

func TestPriceHistory_Append(t *testing.T) {
	testCases := []struct {
		name     string
		capacity int
		appends  int
		want     []int64
	}{
		{
			name:     "empty",
			capacity: 20,
			appends:  0,
			want:     []int64{},
		},
		{
			name:     "partially filled",
			capacity: 20,
			appends:  3,
			want:     []int64{1, 2, 3},
		},
		{
			name:     "exactly full",
			capacity: 20,
			appends:  20,
			want:     lo.RangeFrom[int64](1, 20),
		},
		{
			name:     "one past capacity evicts oldest",
			capacity: 20,
			appends:  21,
			want:     lo.RangeFrom[int64](2, 20),
		},
		{
			name:     "wraps several times",
			capacity: 25,
			appends:  73,
			want:     lo.RangeFrom[int64](49, 25),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewPriceHistory(tc.capacity)
			for i := 1; i <= tc.appends; i++ {
				h.Append(decimal.NewFromInt(int64(i)))
			}
			assert.Equal(t, tc.want, ints(h.Values()))
			assert.Equal(t, len(tc.want), h.Len())
			assert.Equal(t, tc.capacity, h.Cap())
		})
	}
}

func TestPriceHistory_CapacityClampedToRSIMinimum(t *testing.T) {
	h := NewPriceHistory(5)
	assert.Equal(t, strategy.MinRSISamples, h.Cap())
}

func TestPriceHistory_ValuesIsACopy(t *testing.T) {
	h := NewPriceHistory(20)
	h.Append(decimal.NewFromInt(1))
	vs := h.Values()
	vs[0] = decimal.NewFromInt(42)
	assert.Equal(t, []int64{1}, ints(h.Values()))
}

func TestPriceHistory_ConcurrentReadDuringAppend(t *testing.T) {
	h := NewPriceHistory(30)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 1; i <= 1000; i++ {
			h.Append(decimal.NewFromInt(int64(i)))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			vs := ints(h.Values())
			// survivors always keep their relative order
			for j := 1; j < len(vs); j++ {
				if !assert.Equal(t, vs[j-1]+1, vs[j]) {
					return
				}
			}
		}
	}()
	wg.Wait()
	assert.Equal(t, 30, h.Len())
}
