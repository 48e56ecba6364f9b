package service

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"botbackend/src/model"
)

// DashboardStore is the read-only slice of the store the aggregator
// composes.
type DashboardStore interface {
	Accounts() ([]model.Account, error)
	Trades() ([]model.Trade, error)
}

// Dashboard derives the summary statistics. Everything is recomputed
// from the store on every call; there is no cached state to go stale.
type Dashboard struct {
	store DashboardStore
	now   func() time.Time
}

func NewDashboard(st DashboardStore) *Dashboard {
	return &Dashboard{store: st, now: time.Now}
}

var hundred = decimal.NewFromInt(100)

// Summary composes balance, open-trade count, today's realized P&L,
// daily change percent and the active-bot count.
func (d *Dashboard) Summary() (model.DashboardSummary, error) {
	accounts, err := d.store.Accounts()
	if err != nil {
		return model.DashboardSummary{}, err
	}
	trades, err := d.store.Trades()
	if err != nil {
		return model.DashboardSummary{}, err
	}

	balance := decimal.Zero
	activeBots := 0
	for _, acc := range accounts {
		if acc.Balance != nil {
			balance = balance.Add(*acc.Balance)
		}
		if acc.Monitoring {
			activeBots++
		}
	}

	today := d.now().UTC().Format("2006-01-02")
	profit := decimal.Zero
	openTrades := 0
	for _, t := range trades {
		if t.Open {
			openTrades++
			continue
		}
		// Closed today, by UTC date prefix of the exit timestamp.
		if !strings.HasPrefix(t.ExitTime, today) {
			continue
		}
		if t.ExitPrice == nil {
			continue
		}
		profit = profit.Add(t.ExitPrice.Sub(t.EntryPrice).Mul(t.Qty))
	}

	dailyChange := decimal.Zero
	if start := balance.Sub(profit); start.IsPositive() {
		dailyChange = profit.Div(start).Mul(hundred)
	}

	return model.DashboardSummary{
		Profit:      profit.Round(2),
		OpenTrades:  openTrades,
		Balance:     balance.Round(2),
		DailyChange: dailyChange.Round(2),
		ActiveBots:  activeBots,
	}, nil
}
