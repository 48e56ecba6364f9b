package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"botbackend/src/model"
	"botbackend/src/service"
)

type historyService interface {
	Query(opts service.QueryOptions) ([]model.Trade, int, error)
	Get(id string) (model.Trade, error)
	Append(in service.AppendTradeInput) (model.Trade, error)
}

type tradePage struct {
	Trades []model.Trade `json:"trades"`
	Total  int           `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

// QueryTradesHandler lists the journal with optional symbol/status
// filters and limit/offset pagination.
func QueryTradesHandler(svc historyService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts := service.QueryOptions{
			Symbol: r.URL.Query().Get("symbol"),
			Status: r.URL.Query().Get("status"),
		}

		if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
			limit, err := strconv.Atoi(limitParam)
			if err != nil || limit <= 0 {
				http.Error(w, "invalid limit", http.StatusBadRequest)
				return
			}
			opts.Limit = limit
		}
		if offsetParam := r.URL.Query().Get("offset"); offsetParam != "" {
			offset, err := strconv.Atoi(offsetParam)
			if err != nil || offset < 0 {
				http.Error(w, "invalid offset", http.StatusBadRequest)
				return
			}
			opts.Offset = offset
		}

		page, total, err := svc.Query(opts)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		if page == nil {
			page = []model.Trade{}
		}
		limit := opts.Limit
		if limit <= 0 {
			limit = 50
		}
		writeJSON(w, http.StatusOK, tradePage{
			Trades: page,
			Total:  total,
			Limit:  limit,
			Offset: opts.Offset,
		})
	}
}

func GetTradeHandler(svc historyService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		trade, err := svc.Get(chi.URLParam(r, "id"))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, trade)
	}
}

// AppendTradeHandler records one journal entry, defaulting id, entry
// time and the open flag when absent.
func AppendTradeHandler(svc historyService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in service.AppendTradeInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		trade, err := svc.Append(in)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, trade)
	}
}
