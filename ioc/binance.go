package ioc

import (
	"net/http"

	"github.com/adshao/go-binance/v2"
	"github.com/spf13/viper"
)

func InitBinanceCli() *binance.Client {
	type Config struct {
		ApiKey    string `mapstructure:"api_key"`
		ApiSecret string `mapstructure:"api_secret"`
		BaseURL   string `mapstructure:"base_url"`
	}

	var cfg Config
	if err := unmarshalKey("exchange.binance", &cfg); err != nil {
		panic(err)
	}

	// ticker price is a public endpoint, empty keys are fine
	cli := binance.NewClient(cfg.ApiKey, cfg.ApiSecret)
	if cfg.BaseURL != "" {
		cli.BaseURL = cfg.BaseURL
	}
	cli.HTTPClient = &http.Client{Timeout: viper.GetDuration("http.timeout")}
	return cli
}
