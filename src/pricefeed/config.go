package pricefeed

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Symbols      []string      `envconfig:"SYMBOLS" default:"BTCUSDT,ETHUSDT,SOLUSDT"`
	PollInterval time.Duration `envconfig:"PRICE_POLL_INTERVAL" default:"3s"`
	CycleBackoff time.Duration `envconfig:"PRICE_CYCLE_BACKOFF" default:"5s"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
