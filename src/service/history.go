package service

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"botbackend/src/model"
)

const defaultQueryLimit = 50

// TradeStore is the slice of the store the trade ledger uses.
type TradeStore interface {
	Trades() ([]model.Trade, error)
	TradeByID(id string) (model.Trade, error)
	AppendTrade(trade model.Trade) (model.Trade, error)
}

// History is the query/append layer over the trade journal.
type History struct {
	store TradeStore
	now   func() time.Time
}

func NewHistory(st TradeStore) *History {
	return &History{store: st, now: time.Now}
}

// QueryOptions filters and paginates the journal. Status is "open" or
// "closed" (case-insensitive); Symbol is an exact match. Zero Limit
// means the default page size.
type QueryOptions struct {
	Limit  int
	Offset int
	Symbol string
	Status string
}

// Query filters, sorts newest-first by entry time, then slices the
// requested page. The returned total is the filtered count before
// pagination.
func (h *History) Query(opts QueryOptions) ([]model.Trade, int, error) {
	trades, err := h.store.Trades()
	if err != nil {
		return nil, 0, err
	}

	filtered := trades[:0:0]
	for _, t := range trades {
		if opts.Symbol != "" && t.Symbol != opts.Symbol {
			continue
		}
		switch strings.ToLower(opts.Status) {
		case "open":
			if !t.Open {
				continue
			}
		case "closed":
			if t.Open {
				continue
			}
		}
		filtered = append(filtered, t)
	}

	// RFC3339 UTC strings are fixed width, so descending order is
	// plain string comparison; a missing entry time sorts last.
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].EntryTime > filtered[j].EntryTime
	})

	total := len(filtered)

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultQueryLimit
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return filtered[offset:end], total, nil
}

func (h *History) Get(id string) (model.Trade, error) {
	return h.store.TradeByID(id)
}

// AppendTradeInput is one journal entry to record. Open is a pointer
// so an absent value can default to true.
type AppendTradeInput struct {
	ID         string           `json:"id"`
	Symbol     string           `json:"symbol"`
	EntryTime  string           `json:"entry_time"`
	ExitTime   string           `json:"exit_time"`
	EntryPrice decimal.Decimal  `json:"entry_price"`
	ExitPrice  *decimal.Decimal `json:"exit_price"`
	Qty        decimal.Decimal  `json:"qty"`
	Open       *bool            `json:"open"`
}

// Append fills id, entry time and the open flag when absent, then
// writes through the store.
func (h *History) Append(in AppendTradeInput) (model.Trade, error) {
	trade := model.Trade{
		ID:         in.ID,
		Symbol:     in.Symbol,
		EntryTime:  in.EntryTime,
		ExitTime:   in.ExitTime,
		EntryPrice: in.EntryPrice,
		ExitPrice:  in.ExitPrice,
		Qty:        in.Qty,
		Open:       true,
	}
	if trade.ID == "" {
		trade.ID = uuid.NewString()
	}
	if trade.EntryTime == "" {
		trade.EntryTime = h.now().UTC().Format(time.RFC3339)
	}
	if in.Open != nil {
		trade.Open = *in.Open
	}
	return h.store.AppendTrade(trade)
}
