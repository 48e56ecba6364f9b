package connectors

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nntaoli-project/goex"
	"github.com/nntaoli-project/goex/builder"
	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"
)

// BalanceChecker is the exchange connectivity check consumed by the
// account service. Implementations never mutate stored state and are
// safe to call concurrently for different accounts.
type BalanceChecker interface {
	Check(ctx context.Context, exchange, apiKey, apiSecret string) (decimal.Decimal, error)
}

// goexExchanges maps our exchange identifiers to goex builder names.
var goexExchanges = map[string]string{
	"binance": goex.BINANCE,
	"kucoin":  goex.KUCOIN,
	"huobi":   goex.HUOBI_PRO,
	"kraken":  goex.KRAKEN,
	"gateio":  goex.GATEIO,
}

// GoexChecker verifies credentials by fetching the spot account
// through goex and reporting the USDT balance.
type GoexChecker struct {
	timeout time.Duration
}

func NewGoexChecker() *GoexChecker {
	return &GoexChecker{timeout: GetConfig().CheckTimeout}
}

func (c *GoexChecker) Check(ctx context.Context, exchange, apiKey, apiSecret string) (balance decimal.Decimal, err error) {
	name, ok := goexExchanges[strings.ToLower(strings.TrimSpace(exchange))]
	if !ok {
		return decimal.Zero, fmt.Errorf("unknown exchange %q", exchange)
	}

	// goex panics on some malformed exchange responses; contain that
	// here so callers only ever see an error.
	defer func() {
		if r := recover(); r != nil {
			logger.WithField("exchange", exchange).Errorf("connectivity check panic: %v", r)
			err = fmt.Errorf("%s connectivity check failed: %v", exchange, r)
		}
	}()

	api := builder.NewAPIBuilder().
		HttpTimeout(c.timeout).
		APIKey(apiKey).
		APISecretkey(apiSecret).
		Build(name)
	if api == nil {
		return decimal.Zero, fmt.Errorf("exchange %s is not supported", exchange)
	}

	account, err := api.GetAccount()
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s account check: %w", exchange, err)
	}
	if account == nil {
		return decimal.Zero, fmt.Errorf("%s account check: empty response", exchange)
	}

	// Free plus frozen USDT. An account with no USDT sub-account is
	// still a successful connectivity check.
	if sub, ok := account.SubAccounts[goex.USDT]; ok {
		return decimal.NewFromFloat(sub.Amount + sub.ForzenAmount), nil
	}
	return decimal.Zero, nil
}
