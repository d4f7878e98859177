package notification

import (
	"context"

	"github.com/rs/zerolog/log"
)

// BestEffort sends text and swallows the failure after logging it.
// A lost alert is acceptable, a failing tick is not. No retries.
func BestEffort(ctx context.Context, n Notifier, text string) bool {
	if err := n.Send(ctx, text); err != nil {
		log.Error().Err(err).Msg("failed to deliver notification")
		return false
	}
	return true
}
