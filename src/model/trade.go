package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Trade is one journal entry. Timestamps are RFC3339 UTC strings so
// descending order is plain lexicographic comparison; ExitTime stays
// empty until the trade is closed.
type Trade struct {
	ID         string           `json:"id"`
	Symbol     string           `json:"symbol"`
	EntryTime  string           `json:"entry_time"`
	ExitTime   string           `json:"exit_time,omitempty"`
	EntryPrice decimal.Decimal  `json:"entry_price"`
	ExitPrice  *decimal.Decimal `json:"exit_price,omitempty"`
	Qty        decimal.Decimal  `json:"qty"`
	Open       bool             `json:"open"`

	Extra map[string]json.RawMessage `json:"-"`
}

var tradeFields = []string{
	"id", "symbol", "entry_time", "exit_time",
	"entry_price", "exit_price", "qty", "open",
}

func (t *Trade) UnmarshalJSON(data []byte) error {
	type plain Trade
	var known plain
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}
	extra, err := unknownFields(data, tradeFields)
	if err != nil {
		return err
	}
	*t = Trade(known)
	t.Extra = extra
	return nil
}

func (t Trade) MarshalJSON() ([]byte, error) {
	type plain Trade
	return marshalWithExtra(plain(t), t.Extra)
}
