package store

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	AccountsFile string `envconfig:"ACCOUNTS_FILE" default:"data/accounts.json"`
	TradesFile   string `envconfig:"TRADES_FILE" default:"data/trades.json"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
