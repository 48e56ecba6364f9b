package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	logger "github.com/sirupsen/logrus"

	"botbackend/src/hub"
)

const writeTimeout = 10 * time.Second

type priceFeed interface {
	Subscribe() *hub.Subscriber
	Unsubscribe(sub *hub.Subscriber)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// PriceFeedHandler upgrades the connection and pumps price updates to
// it until the first failed write or the client hangs up. Either way
// the subscriber is dropped from the hub immediately.
func PriceFeedHandler(feed priceFeed) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.WithError(err).Warn("websocket upgrade failed")
			return
		}

		sub := feed.Subscribe()

		go func() {
			defer conn.Close()
			for update := range sub.Updates() {
				_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				if err := conn.WriteJSON(update); err != nil {
					feed.Unsubscribe(sub)
					return
				}
			}
		}()

		// Clients send nothing we act on; reading just detects the
		// close so the subscriber can be dropped.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				feed.Unsubscribe(sub)
				conn.Close()
				return
			}
		}
	}
}
