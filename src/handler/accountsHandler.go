package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	logger "github.com/sirupsen/logrus"

	"botbackend/src/model"
	"botbackend/src/service"
	"botbackend/src/store"
)

type accountService interface {
	List() ([]model.Account, error)
	Add(in service.AddAccountInput) (model.Account, error)
	Delete(id string) error
	SetMonitoring(id string, monitoring bool) (model.Account, error)
	Test(ctx context.Context, id string) (service.TestResult, error)
}

// ListAccountsHandler returns every stored account.
func ListAccountsHandler(svc accountService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accounts, err := svc.List()
		if err != nil {
			writeStoreError(w, err)
			return
		}
		if accounts == nil {
			accounts = []model.Account{}
		}
		writeJSON(w, http.StatusOK, accounts)
	}
}

// AddAccountHandler creates an account. The store verifies the write
// landed before this reports success.
func AddAccountHandler(svc accountService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in service.AddAccountInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		account, err := svc.Add(in)
		if err != nil {
			if errors.Is(err, store.ErrPersistenceInconsistency) {
				logger.WithError(err).Error("account add verification failed")
			}
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"status":  "added",
			"account": account,
		})
	}
}

func DeleteAccountHandler(svc accountService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := svc.Delete(id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeJSON(w, http.StatusNotFound, map[string]string{"status": "not_found", "id": id})
				return
			}
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
	}
}

// TestAccountHandler runs the exchange connectivity check. A failed
// check is a 200 with connection=failed; only store faults are 5xx.
func TestAccountHandler(svc accountService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		result, err := svc.Test(r.Context(), id)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

type monitoringRequest struct {
	Monitoring bool `json:"monitoring"`
}

func SetMonitoringHandler(svc accountService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req monitoringRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		account, err := svc.SetMonitoring(id, req.Monitoring)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, account)
	}
}
