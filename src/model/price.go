package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceUpdate is the event pushed to live subscribers on every
// successful poll of a symbol.
type PriceUpdate struct {
	Type      string          `json:"type"`
	Symbol    string          `json:"symbol"`
	Price     decimal.Decimal `json:"price"`
	Timestamp int64           `json:"timestamp"`
}

// PricePoint is the last observed price for one symbol.
type PricePoint struct {
	Price      decimal.Decimal `json:"price"`
	ObservedAt time.Time       `json:"observed_at"`
}

// DashboardSummary is recomputed from scratch on every request.
type DashboardSummary struct {
	Profit      decimal.Decimal `json:"profit"`
	OpenTrades  int             `json:"openTrades"`
	Balance     decimal.Decimal `json:"balance"`
	DailyChange decimal.Decimal `json:"dailyChange"`
	ActiveBots  int             `json:"activeBots"`
}
