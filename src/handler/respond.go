package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	logger "github.com/sirupsen/logrus"

	"botbackend/src/store"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.WithError(err).Error("failed to encode response")
	}
}

// writeStoreError maps store errors onto HTTP statuses. Unknown ids
// are 404s; everything else coming out of the store is a server-side
// fault.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, "Not Found", http.StatusNotFound)
	case errors.Is(err, store.ErrTradeClosed):
		http.Error(w, "Conflict", http.StatusConflict)
	default:
		logger.WithError(err).Error("store operation failed")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
