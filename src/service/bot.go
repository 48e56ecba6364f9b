package service

import (
	"sort"
	"sync"

	logger "github.com/sirupsen/logrus"

	"botbackend/src/model"
)

// TradeReader is the read-only slice of the store the bot status
// needs.
type TradeReader interface {
	Trades() ([]model.Trade, error)
}

// Bot is the single process-wide run-state switch. It starts stopped
// and is not persisted across restarts. It is orthogonal to the
// per-account monitoring flags.
type Bot struct {
	mu      sync.Mutex
	running bool
	trades  TradeReader
}

func NewBot(trades TradeReader) *Bot {
	return &Bot{trades: trades}
}

// BotResult reports a start/stop outcome. Repeating a transition is
// an informational no-op, never an error.
type BotResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (b *Bot) Start() BotResult {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.running {
		return BotResult{Status: "info", Message: "Bot is already running"}
	}
	b.running = true
	logger.Info("bot started")
	return BotResult{Status: "success", Message: "Bot started successfully"}
}

func (b *Bot) Stop() BotResult {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.running {
		return BotResult{Status: "info", Message: "Bot is already stopped"}
	}
	b.running = false
	logger.Info("bot stopped")
	return BotResult{Status: "success", Message: "Bot stopped successfully"}
}

func (b *Bot) Running() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.running
}

type BotStatus struct {
	Running       bool     `json:"running"`
	ActiveSymbols []string `json:"active_symbols"`
	Uptime        string   `json:"uptime"`
}

// Status reports the run state plus the distinct symbols that
// currently have open trades.
func (b *Bot) Status() (BotStatus, error) {
	trades, err := b.trades.Trades()
	if err != nil {
		return BotStatus{}, err
	}

	seen := make(map[string]struct{})
	symbols := make([]string, 0)
	for _, t := range trades {
		if !t.Open {
			continue
		}
		if _, ok := seen[t.Symbol]; ok {
			continue
		}
		seen[t.Symbol] = struct{}{}
		symbols = append(symbols, t.Symbol)
	}
	sort.Strings(symbols)

	status := BotStatus{Running: b.Running(), ActiveSymbols: symbols}
	if status.Running {
		status.Uptime = "Running"
	} else {
		status.Uptime = "Stopped"
	}
	return status, nil
}
