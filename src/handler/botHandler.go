package handler

import (
	"net/http"

	"botbackend/src/service"
)

type botService interface {
	Start() service.BotResult
	Stop() service.BotResult
	Status() (service.BotStatus, error)
}

func StartBotHandler(svc botService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Start())
	}
}

func StopBotHandler(svc botService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Stop())
	}
}

func BotStatusHandler(svc botService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := svc.Status()
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, status)
	}
}
