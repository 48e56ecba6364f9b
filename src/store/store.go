package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"

	"botbackend/src/model"
)

// Store is the file-backed owner of the accounts and trades
// collections. A single mutex serializes every mutating operation
// across both collections and is held for the whole
// load -> mutate -> save -> verify sequence, so concurrent
// read-modify-write callers cannot lose each other's writes.
//
// Both files are indented JSON arrays rewritten wholesale on every
// save. A missing file reads as an empty collection and is created on
// first write.
type Store struct {
	mu           sync.Mutex
	accountsPath string
	tradesPath   string

	// writeFile is swapped in tests to simulate a medium that drops
	// writes without reporting an error.
	writeFile func(path string, data []byte) error
}

func New(accountsPath, tradesPath string) *Store {
	return &Store{
		accountsPath: accountsPath,
		tradesPath:   tradesPath,
		writeFile:    atomicWriteFile,
	}
}

func NewFromConfig(cfg Config) *Store {
	return New(cfg.AccountsFile, cfg.TradesFile)
}

// Accounts returns the persisted account collection. It takes the
// store lock so a read never observes a half-finished rewrite.
func (s *Store) Accounts() ([]model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readAccounts()
}

// AddAccount appends an account, assigning an id and defaulting the
// position when absent, then re-reads the file and verifies the new
// id is present. A verification miss surfaces
// ErrPersistenceInconsistency instead of a silent success.
func (s *Store) AddAccount(acc model.Account) (model.Account, error) {
	if acc.ID == "" {
		acc.ID = uuid.NewString()
	}
	if acc.Position == "" {
		acc.Position = model.PositionClosed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.readAccounts()
	if err != nil {
		return model.Account{}, err
	}
	for _, existing := range accounts {
		if existing.ID == acc.ID {
			return model.Account{}, fmt.Errorf("account id %s already exists", acc.ID)
		}
	}

	accounts = append(accounts, acc)
	if err := s.saveAccounts(accounts); err != nil {
		return model.Account{}, err
	}

	saved, err := s.readAccounts()
	if err != nil {
		return model.Account{}, err
	}
	for _, got := range saved {
		if got.ID == acc.ID {
			return acc, nil
		}
	}
	logger.WithField("id", acc.ID).Error("account missing after save")
	return model.Account{}, fmt.Errorf("%w: account %s not found after save", ErrPersistenceInconsistency, acc.ID)
}

// DeleteAccount removes an account by id. ErrNotFound when the id is
// unknown.
func (s *Store) DeleteAccount(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.readAccounts()
	if err != nil {
		return err
	}

	kept := accounts[:0:0]
	for _, acc := range accounts {
		if acc.ID != id {
			kept = append(kept, acc)
		}
	}
	if len(kept) == len(accounts) {
		return fmt.Errorf("%w: account %s", ErrNotFound, id)
	}
	return s.saveAccounts(kept)
}

// UpdateAccount applies mutate to the account with the given id and
// persists the whole collection, all inside the store lock. It is the
// write path for validation results and the monitoring toggle.
func (s *Store) UpdateAccount(id string, mutate func(*model.Account)) (model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.readAccounts()
	if err != nil {
		return model.Account{}, err
	}
	for i := range accounts {
		if accounts[i].ID != id {
			continue
		}
		mutate(&accounts[i])
		accounts[i].ID = id // the id itself is immutable
		if err := s.saveAccounts(accounts); err != nil {
			return model.Account{}, err
		}
		return accounts[i], nil
	}
	return model.Account{}, fmt.Errorf("%w: account %s", ErrNotFound, id)
}

// Trades returns the full journal, oldest first as persisted.
func (s *Store) Trades() ([]model.Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readTrades()
}

func (s *Store) TradeByID(id string) (model.Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trades, err := s.readTrades()
	if err != nil {
		return model.Trade{}, err
	}
	for _, t := range trades {
		if t.ID == id {
			return t, nil
		}
	}
	return model.Trade{}, fmt.Errorf("%w: trade %s", ErrNotFound, id)
}

// AppendTrade adds one journal entry. The caller fills defaults; the
// append still goes through the shared lock and rewrites the file as
// one collection.
func (s *Store) AppendTrade(trade model.Trade) (model.Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trades, err := s.readTrades()
	if err != nil {
		return model.Trade{}, err
	}
	for _, existing := range trades {
		if existing.ID == trade.ID {
			return model.Trade{}, fmt.Errorf("trade id %s already exists", trade.ID)
		}
	}
	trades = append(trades, trade)
	if err := s.saveTrades(trades); err != nil {
		return model.Trade{}, err
	}
	return trade, nil
}

// CloseTrade performs the single closing write on an open trade,
// setting exit price, exit time and open=false together.
func (s *Store) CloseTrade(id string, exitPrice decimal.Decimal, exitTime time.Time) (model.Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trades, err := s.readTrades()
	if err != nil {
		return model.Trade{}, err
	}
	for i := range trades {
		if trades[i].ID != id {
			continue
		}
		if !trades[i].Open {
			return model.Trade{}, fmt.Errorf("%w: trade %s", ErrTradeClosed, id)
		}
		trades[i].Open = false
		trades[i].ExitPrice = &exitPrice
		trades[i].ExitTime = exitTime.UTC().Format(time.RFC3339)
		if err := s.saveTrades(trades); err != nil {
			return model.Trade{}, err
		}
		return trades[i], nil
	}
	return model.Trade{}, fmt.Errorf("%w: trade %s", ErrNotFound, id)
}

func (s *Store) readAccounts() ([]model.Account, error) {
	var accounts []model.Account
	if err := readCollection(s.accountsPath, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (s *Store) saveAccounts(accounts []model.Account) error {
	return s.saveCollection(s.accountsPath, accounts)
}

func (s *Store) readTrades() ([]model.Trade, error) {
	var trades []model.Trade
	if err := readCollection(s.tradesPath, &trades); err != nil {
		return nil, err
	}
	return trades, nil
}

func (s *Store) saveTrades(trades []model.Trade) error {
	return s.saveCollection(s.tradesPath, trades)
}

func readCollection(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Missing file is an empty collection, created lazily on
			// the first save.
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorruptStore, path, err)
	}
	return nil
}

// saveCollection builds the full encoded collection in memory before
// a single write call, so a failure partway leaves the previous file
// intact.
func (s *Store) saveCollection(path string, collection interface{}) error {
	data, err := json.MarshalIndent(collection, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := s.writeFile(path, data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func atomicWriteFile(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
