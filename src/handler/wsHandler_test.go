package handler

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"botbackend/src/hub"
	"botbackend/src/model"
)

func TestPriceFeedHandler_DeliversUpdates(t *testing.T) {
	feed := hub.New()
	srv := httptest.NewServer(PriceFeedHandler(feed))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return feed.Len() == 1 },
		time.Second, 10*time.Millisecond)

	feed.Publish(model.PriceUpdate{
		Type:      "price",
		Symbol:    "BTCUSDT",
		Price:     decimal.NewFromInt(60000),
		Timestamp: 1756600000,
	})

	var got model.PriceUpdate
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, "BTCUSDT", got.Symbol)
	assert.Equal(t, "price", got.Type)
}

func TestPriceFeedHandler_DropsClosedConnection(t *testing.T) {
	feed := hub.New()
	srv := httptest.NewServer(PriceFeedHandler(feed))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)

	require.Eventually(t, func() bool { return feed.Len() == 1 },
		time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())

	assert.Eventually(t, func() bool { return feed.Len() == 0 },
		time.Second, 10*time.Millisecond,
		"broken subscriber must be removed from the hub")
}
