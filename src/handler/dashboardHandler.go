package handler

import (
	"net/http"

	"botbackend/src/model"
)

type dashboardService interface {
	Summary() (model.DashboardSummary, error)
}

// DashboardHandler serves the summary statistics, recomputed on every
// request.
func DashboardHandler(svc dashboardService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := svc.Summary()
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, summary)
	}
}
