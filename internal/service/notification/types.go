package notification

import (
	"context"
	"fmt"
)

// Notifier delivers a plain text alert.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// NotifyError is a failed delivery. It never leaves a scheduled tick.
type NotifyError struct {
	Channel string
	Err     error
}

func (e *NotifyError) Error() string {
	return fmt.Sprintf("notify via %s: %v", e.Channel, e.Err)
}

func (e *NotifyError) Unwrap() error {
	return e.Err
}
