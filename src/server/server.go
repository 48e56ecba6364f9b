package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	logger "github.com/sirupsen/logrus"

	"botbackend/src/handler"
	"botbackend/src/hub"
	"botbackend/src/pricefeed"
	"botbackend/src/service"
)

// Deps collects the services the router exposes. Everything is
// injected so tests can stand up a router over isolated instances.
type Deps struct {
	Accounts  *service.Accounts
	Bot       *service.Bot
	Dashboard *service.Dashboard
	History   *service.History
	Hub       *hub.Hub
	Prices    *pricefeed.Cache
}

func NewRouter(d Deps) *chi.Mux {
	r := chi.NewRouter()

	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.WithError(err).Error("/healthcheck write error")
		}
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/accounts", func(r chi.Router) {
			r.Get("/", handler.ListAccountsHandler(d.Accounts))
			r.Post("/", handler.AddAccountHandler(d.Accounts))
			r.Delete("/{id}", handler.DeleteAccountHandler(d.Accounts))
			r.Post("/{id}/test", handler.TestAccountHandler(d.Accounts))
			r.Put("/{id}/monitoring", handler.SetMonitoringHandler(d.Accounts))
		})

		r.Route("/bot", func(r chi.Router) {
			r.Get("/status", handler.BotStatusHandler(d.Bot))
			r.Post("/start", handler.StartBotHandler(d.Bot))
			r.Post("/stop", handler.StopBotHandler(d.Bot))
		})

		r.Get("/dashboard", handler.DashboardHandler(d.Dashboard))

		r.Route("/history", func(r chi.Router) {
			r.Get("/trades", handler.QueryTradesHandler(d.History))
			r.Get("/trades/{id}", handler.GetTradeHandler(d.History))
			r.Post("/trades", handler.AppendTradeHandler(d.History))
		})

		r.Get("/prices", handler.PricesHandler(d.Prices))
	})

	r.Get("/ws", handler.PriceFeedHandler(d.Hub))

	return r
}

// StartServer runs the HTTP surface until SIGINT/SIGTERM, then shuts
// down gracefully.
func StartServer(port string, d Deps) {
	addr := ":" + port
	srv := &http.Server{
		Addr:    addr,
		Handler: NewRouter(d),
	}

	go func() {
		logger.Infof("Listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server crashed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Shutdown error")
	}
}
