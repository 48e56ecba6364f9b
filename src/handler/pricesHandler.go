package handler

import (
	"net/http"

	"botbackend/src/model"
)

type priceCache interface {
	Snapshot() map[string]model.PricePoint
}

// PricesHandler serves the last observed price per tracked symbol.
func PricesHandler(cache priceCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, cache.Snapshot())
	}
}
