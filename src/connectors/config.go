package connectors

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	BybitBaseURL        string        `envconfig:"BYBIT_BASE_URL" default:"https://api.bybit.com"`
	PriceRequestTimeout time.Duration `envconfig:"PRICE_REQUEST_TIMEOUT" default:"10s"`
	CheckTimeout        time.Duration `envconfig:"EXCHANGE_CHECK_TIMEOUT" default:"15s"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
