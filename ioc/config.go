package ioc

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "ARBMON"

// InitConfigDefaults registers every key with a default and turns on ARBMON_ env overrides.
// A key only picks up its env override once viper knows it, from here or the config file.
func InitConfigDefaults() {
	viper.SetDefault("monitor.asset", "TON")
	viper.SetDefault("monitor.stable", "USDT")
	viper.SetDefault("monitor.fiat", "IRT")
	viper.SetDefault("monitor.pairs", []string{})
	viper.SetDefault("monitor.auxiliary", "BTC/USDT")
	viper.SetDefault("monitor.interval", 900*time.Second)
	viper.SetDefault("monitor.heartbeat_interval", 43200*time.Second)
	viper.SetDefault("monitor.history_size", 100)
	viper.SetDefault("monitor.autostart", true)
	viper.SetDefault("http.timeout", 15*time.Second)
	viper.SetDefault("exchange.binance.api_key", "")
	viper.SetDefault("exchange.binance.api_secret", "")
	viper.SetDefault("exchange.binance.base_url", "")
	viper.SetDefault("exchange.nobitex.base_url", "https://api.nobitex.ir")
	viper.SetDefault("notify.telegram.base_url", "https://api.telegram.org")
	viper.SetDefault("notify.telegram.token", "")
	viper.SetDefault("notify.telegram.chat_id", "")
	viper.SetDefault("notify.telegram.rate_every", time.Second)
	viper.SetDefault("notify.telegram.rate_burst", 3)
	viper.SetDefault("server.addr", ":10000")
	viper.SetDefault("db.dsn", "file::memory:")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.pretty", false)

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// unmarshalKey is viper.UnmarshalKey with env overrides applied to each leaf.
// UnmarshalKey reads the section map straight from the config layer and misses them.
func unmarshalKey(key string, out any) error {
	var section any = viper.AllSettings()
	for _, part := range strings.Split(strings.ToLower(key), ".") {
		m, ok := section.(map[string]any)
		if !ok {
			return nil
		}
		section = m[part]
	}
	m, ok := section.(map[string]any)
	if !ok {
		return nil
	}

	sub := viper.New()
	if err := sub.MergeConfigMap(m); err != nil {
		return err
	}
	return sub.Unmarshal(out)
}
