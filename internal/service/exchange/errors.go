package exchange

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedPair = errors.New("unsupported trading pair")
	ErrInvalidPrice    = errors.New("invalid price")
)

// FetchError wraps any failure to obtain a price for one pair.
// Callers treat all causes the same way; the cause is only logged.
type FetchError struct {
	Pair   TradingPair
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s from %s: %v", e.Pair.ToSlashString(), e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
