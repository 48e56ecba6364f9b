package pricefeed

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"

	"botbackend/src/model"
)

// Source is the external price feed: last price for one symbol or an
// error. Latency is outside our control, so implementations carry a
// bounded per-request timeout.
type Source interface {
	LastPrice(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// Publisher receives one event per successful symbol poll.
type Publisher interface {
	Publish(update model.PriceUpdate)
}

// Poller refreshes the cache from the source on a fixed interval and
// pushes each fresh price to the publisher. A failing symbol is
// logged and skipped; only a cycle in which every symbol failed
// triggers the longer backoff delay.
type Poller struct {
	source   Source
	cache    *Cache
	pub      Publisher
	symbols  []string
	interval time.Duration
	backoff  time.Duration
	now      func() time.Time
}

func NewPoller(source Source, cache *Cache, pub Publisher, cfg Config) *Poller {
	return &Poller{
		source:   source,
		cache:    cache,
		pub:      pub,
		symbols:  cfg.Symbols,
		interval: cfg.PollInterval,
		backoff:  cfg.CycleBackoff,
		now:      time.Now,
	}
}

// Run polls until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	logger.WithField("symbols", p.symbols).
		WithField("interval", p.interval).
		Info("price poller started")

	for {
		delay := p.interval
		if !p.cycle(ctx) {
			logger.Warn("price cycle failed for every symbol, backing off")
			delay = p.backoff
		}
		if !sleepCtx(ctx, delay) {
			logger.Info("price poller stopped")
			return
		}
	}
}

// cycle polls every symbol once. It reports false only when no symbol
// could be refreshed.
func (p *Poller) cycle(ctx context.Context) bool {
	fetched := 0
	for _, symbol := range p.symbols {
		if ctx.Err() != nil {
			return true
		}

		price, err := p.source.LastPrice(ctx, symbol)
		if err != nil {
			logger.WithError(err).WithField("symbol", symbol).Warn("price fetch failed")
			continue
		}

		observed := p.now()
		p.cache.Set(symbol, model.PricePoint{Price: price, ObservedAt: observed})
		p.pub.Publish(model.PriceUpdate{
			Type:      "price",
			Symbol:    symbol,
			Price:     price,
			Timestamp: observed.Unix(),
		})
		fetched++
	}
	return len(p.symbols) == 0 || fetched > 0
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
