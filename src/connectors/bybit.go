package connectors

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"
)

// BybitTickers reads last prices from the Bybit v5 spot ticker
// endpoint. It is the external price source behind the poller; every
// request carries the bounded timeout from config.
type BybitTickers struct {
	http *resty.Client
}

type bybitTickersResponse struct {
	RetCode int    `json:"retCode"`
	RetMsg  string `json:"retMsg"`
	Result  struct {
		List []struct {
			Symbol    string `json:"symbol"`
			LastPrice string `json:"lastPrice"`
		} `json:"list"`
	} `json:"result"`
}

func NewBybitTickers(baseURL string) *BybitTickers {
	cfg := GetConfig()
	if strings.TrimSpace(baseURL) == "" {
		baseURL = cfg.BybitBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.PriceRequestTimeout)

	return &BybitTickers{http: httpClient}
}

// NewBybitTickersWithTimeout is used where the caller wants a timeout
// different from the configured default.
func NewBybitTickersWithTimeout(baseURL string, timeout time.Duration) *BybitTickers {
	c := NewBybitTickers(baseURL)
	c.http.SetTimeout(timeout)
	return c
}

// LastPrice fetches the last traded spot price for one symbol.
func (c *BybitTickers) LastPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	var out bybitTickersResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"category": "spot",
			"symbol":   symbol,
		}).
		SetResult(&out).
		Get("/v5/market/tickers")
	if err != nil {
		return decimal.Zero, fmt.Errorf("bybit tickers request for %s: %w", symbol, err)
	}
	if resp.IsError() {
		return decimal.Zero, fmt.Errorf("bybit tickers for %s: status %s", symbol, resp.Status())
	}
	if out.RetCode != 0 {
		return decimal.Zero, fmt.Errorf("bybit tickers for %s: retCode %d: %s", symbol, out.RetCode, out.RetMsg)
	}
	if len(out.Result.List) == 0 {
		return decimal.Zero, fmt.Errorf("bybit tickers for %s: empty result list", symbol)
	}

	price, err := decimal.NewFromString(out.Result.List[0].LastPrice)
	if err != nil {
		logger.WithField("symbol", symbol).
			WithField("lastPrice", out.Result.List[0].LastPrice).
			Warn("unparsable last price")
		return decimal.Zero, fmt.Errorf("bybit tickers for %s: bad lastPrice %q", symbol, out.Result.List[0].LastPrice)
	}
	return price, nil
}
