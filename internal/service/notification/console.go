package notification

import (
	"context"

	"github.com/rs/zerolog/log"
)

// ConsoleNotifier only logs, used when no sink is configured.
type ConsoleNotifier struct{}

func (ConsoleNotifier) Send(ctx context.Context, text string) error {
	log.Info().Str("notifier", "console").Msg(text)
	return nil
}
