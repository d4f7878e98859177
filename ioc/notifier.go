package ioc

import (
	"time"

	"github.com/KNICEX/arbitrage-agent/internal/service/notification"
	"github.com/rs/zerolog/log"
)

func InitNotifier() notification.Notifier {
	type Config struct {
		Token   string        `mapstructure:"token"`
		ChatID  string        `mapstructure:"chat_id"`
		BaseURL string        `mapstructure:"base_url"`
		Every   time.Duration `mapstructure:"rate_every"`
		Burst   int           `mapstructure:"rate_burst"`
	}

	var cfg Config
	if err := unmarshalKey("notify.telegram", &cfg); err != nil {
		panic(err)
	}

	if cfg.Token == "" || cfg.ChatID == "" {
		log.Warn().Msg("telegram token or chat id not set, alerts go to the log only")
		return notification.ConsoleNotifier{}
	}

	opts := []notification.TelegramOption{notification.WithTelegramBaseURL(cfg.BaseURL)}
	if cfg.Every > 0 && cfg.Burst > 0 {
		opts = append(opts, notification.WithTelegramRate(cfg.Every, cfg.Burst))
	}
	return notification.NewTelegramNotifier(cfg.Token, cfg.ChatID, opts...)
}
