package service

import (
	"fmt"
	"sync"

	"botbackend/src/model"
	"botbackend/src/store"
)

// memStore is an in-memory stand-in for the file store, shared by the
// service tests.
type memStore struct {
	mu       sync.Mutex
	accounts []model.Account
	trades   []model.Trade
	readErr  error
}

func (m *memStore) Accounts() ([]model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return nil, m.readErr
	}
	return append([]model.Account(nil), m.accounts...), nil
}

func (m *memStore) AddAccount(acc model.Account) (model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc.ID == "" {
		acc.ID = fmt.Sprintf("acc-%d", len(m.accounts)+1)
	}
	if acc.Position == "" {
		acc.Position = model.PositionClosed
	}
	m.accounts = append(m.accounts, acc)
	return acc, nil
}

func (m *memStore) DeleteAccount(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, acc := range m.accounts {
		if acc.ID == id {
			m.accounts = append(m.accounts[:i], m.accounts[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: account %s", store.ErrNotFound, id)
}

func (m *memStore) UpdateAccount(id string, mutate func(*model.Account)) (model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.accounts {
		if m.accounts[i].ID == id {
			mutate(&m.accounts[i])
			return m.accounts[i], nil
		}
	}
	return model.Account{}, fmt.Errorf("%w: account %s", store.ErrNotFound, id)
}

func (m *memStore) Trades() ([]model.Trade, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return nil, m.readErr
	}
	return append([]model.Trade(nil), m.trades...), nil
}

func (m *memStore) TradeByID(id string) (model.Trade, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.trades {
		if t.ID == id {
			return t, nil
		}
	}
	return model.Trade{}, fmt.Errorf("%w: trade %s", store.ErrNotFound, id)
}

func (m *memStore) AppendTrade(trade model.Trade) (model.Trade, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trades = append(m.trades, trade)
	return trade, nil
}
