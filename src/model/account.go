package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

const (
	PositionOpen   = "open"
	PositionClosed = "closed"
)

// Account is one exchange credential set managed by the backend.
// Balance and Validated are written only by the account validation
// flow, never directly by API callers.
type Account struct {
	ID                  string           `json:"id"`
	Name                string           `json:"name"`
	Exchange            string           `json:"exchange"`
	APIKey              string           `json:"api_key"`
	APISecret           string           `json:"api_secret"`
	Monitoring          bool             `json:"monitoring"`
	Position            string           `json:"position"`
	Validated           bool             `json:"validated,omitempty"`
	Balance             *decimal.Decimal `json:"balance,omitempty"`
	LastValidationError string           `json:"last_validation_error,omitempty"`

	// Extra carries persisted fields this version does not know about,
	// so they survive a load/save round trip.
	Extra map[string]json.RawMessage `json:"-"`
}

var accountFields = []string{
	"id", "name", "exchange", "api_key", "api_secret",
	"monitoring", "position", "validated", "balance", "last_validation_error",
}

func (a *Account) UnmarshalJSON(data []byte) error {
	type plain Account
	var known plain
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}
	extra, err := unknownFields(data, accountFields)
	if err != nil {
		return err
	}
	*a = Account(known)
	a.Extra = extra
	return nil
}

func (a Account) MarshalJSON() ([]byte, error) {
	type plain Account
	return marshalWithExtra(plain(a), a.Extra)
}
