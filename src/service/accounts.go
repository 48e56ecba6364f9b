// Package service holds the application services over the store. The
// original deployment grew several near-identical account services
// differing only in file path and verbosity; this is the single
// implementation, parameterized by the store it is given.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"

	"botbackend/src/connectors"
	"botbackend/src/model"
	"botbackend/src/security"
	"botbackend/src/store"
)

// AccountStore is the slice of the store the account service needs.
type AccountStore interface {
	Accounts() ([]model.Account, error)
	AddAccount(acc model.Account) (model.Account, error)
	DeleteAccount(id string) error
	UpdateAccount(id string, mutate func(*model.Account)) (model.Account, error)
}

type Accounts struct {
	store   AccountStore
	checker connectors.BalanceChecker
}

func NewAccounts(st AccountStore, checker connectors.BalanceChecker) *Accounts {
	return &Accounts{store: st, checker: checker}
}

// AddAccountInput accepts the credential aliases the frontend has
// historically sent (`apiKey`, `secretKey`, `secret_key`) next to the
// canonical snake_case names.
type AddAccountInput struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Exchange     string `json:"exchange"`
	APIKey       string `json:"api_key"`
	APIKeyAlias  string `json:"apiKey"`
	APISecret    string `json:"api_secret"`
	SecretKey    string `json:"secretKey"`
	SecretKeyAlt string `json:"secret_key"`
	Monitoring   bool   `json:"monitoring"`
	Position     string `json:"position"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Add normalizes the input, seals the credentials and writes the new
// account through the store, which verifies the write landed.
func (s *Accounts) Add(in AddAccountInput) (model.Account, error) {
	apiKey := firstNonEmpty(in.APIKey, in.APIKeyAlias)
	apiSecret := firstNonEmpty(in.APISecret, in.SecretKey, in.SecretKeyAlt)

	sealedKey, err := security.EncryptString(apiKey)
	if err != nil {
		return model.Account{}, fmt.Errorf("seal api key: %w", err)
	}
	sealedSecret, err := security.EncryptString(apiSecret)
	if err != nil {
		return model.Account{}, fmt.Errorf("seal api secret: %w", err)
	}

	acc := model.Account{
		ID:         in.ID,
		Name:       in.Name,
		Exchange:   in.Exchange,
		APIKey:     sealedKey,
		APISecret:  sealedSecret,
		Monitoring: in.Monitoring,
		Position:   in.Position,
	}
	return s.store.AddAccount(acc)
}

func (s *Accounts) List() ([]model.Account, error) {
	return s.store.Accounts()
}

func (s *Accounts) Delete(id string) error {
	return s.store.DeleteAccount(id)
}

// SetMonitoring flips the per-account supervision flag. It is
// independent of the global bot run state.
func (s *Accounts) SetMonitoring(id string, monitoring bool) (model.Account, error) {
	return s.store.UpdateAccount(id, func(acc *model.Account) {
		acc.Monitoring = monitoring
	})
}

// TestResult is the outcome of a connectivity check. A failed check
// is a normal result with a reason, never an error.
type TestResult struct {
	ID         string           `json:"id"`
	Connection string           `json:"connection"`
	Balance    *decimal.Decimal `json:"balance,omitempty"`
	Reason     string           `json:"reason,omitempty"`
}

const (
	ConnectionSuccess = "success"
	ConnectionFailed  = "failed"
)

// Test validates one account against its exchange. On success the
// balance, validated flag and cleared error are written back through
// the store lock; the checker itself never touches the store. The
// returned error covers store faults only.
func (s *Accounts) Test(ctx context.Context, id string) (TestResult, error) {
	accounts, err := s.store.Accounts()
	if err != nil {
		return TestResult{}, err
	}

	var account *model.Account
	for i := range accounts {
		if accounts[i].ID == id {
			account = &accounts[i]
			break
		}
	}
	if account == nil {
		return TestResult{ID: id, Connection: ConnectionFailed, Reason: "Account not found"}, nil
	}

	apiKey, err := security.DecryptString(account.APIKey)
	if err != nil {
		return s.recordFailure(id, fmt.Sprintf("unseal api key: %v", err))
	}
	apiSecret, err := security.DecryptString(account.APISecret)
	if err != nil {
		return s.recordFailure(id, fmt.Sprintf("unseal api secret: %v", err))
	}

	balance, err := s.checker.Check(ctx, account.Exchange, apiKey, apiSecret)
	if err != nil {
		logger.WithError(err).WithField("id", id).Info("account validation failed")
		return s.recordFailure(id, err.Error())
	}

	if _, err := s.store.UpdateAccount(id, func(acc *model.Account) {
		acc.Validated = true
		acc.Balance = &balance
		acc.LastValidationError = ""
	}); err != nil {
		return TestResult{}, err
	}
	return TestResult{ID: id, Connection: ConnectionSuccess, Balance: &balance}, nil
}

// recordFailure persists the reason without touching the
// validated/balance pair, then reports the normal failed result.
func (s *Accounts) recordFailure(id, reason string) (TestResult, error) {
	if _, err := s.store.UpdateAccount(id, func(acc *model.Account) {
		acc.LastValidationError = reason
	}); err != nil && !errors.Is(err, store.ErrNotFound) {
		return TestResult{}, err
	}
	return TestResult{ID: id, Connection: ConnectionFailed, Reason: reason}, nil
}
