package security

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// ExchangeCRKey is the base64-encoded 32-byte key sealing exchange
	// credentials at rest. Override it in any real deployment.
	ExchangeCRKey string `envconfig:"EXCHANGE_CREDENTIALS_KEY" default:"Qm90QmFja2VuZERlZmF1bHRLZXkwMDAwMDAwMDAwMDA="`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
