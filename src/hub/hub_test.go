package hub

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"botbackend/src/model"
)

func update(symbol string, price int64) model.PriceUpdate {
	return model.PriceUpdate{
		Type:      "price",
		Symbol:    symbol,
		Price:     decimal.NewFromInt(price),
		Timestamp: 1756600000,
	}
}

func TestPublishReachesEverySubscriber(t *testing.T) {
	h := New()
	first := h.Subscribe()
	second := h.Subscribe()
	require.Equal(t, 2, h.Len())

	h.Publish(update("BTCUSDT", 60000))

	got := <-first.Updates()
	assert.Equal(t, "BTCUSDT", got.Symbol)
	got = <-second.Updates()
	assert.Equal(t, "BTCUSDT", got.Symbol)
}

func TestSlowSubscriberIsDroppedNotWaitedOn(t *testing.T) {
	h := New()
	slow := h.Subscribe()
	fast := h.Subscribe()

	// Fill the slow subscriber's buffer without draining it.
	for i := 0; i < subscriberBuffer; i++ {
		h.Publish(update("BTCUSDT", int64(i)))
		<-fast.Updates()
	}
	require.Equal(t, 2, h.Len())

	// The next publish must not block and must drop only the laggard.
	h.Publish(update("ETHUSDT", 2500))

	assert.Equal(t, 1, h.Len())
	got := <-fast.Updates()
	assert.Equal(t, "ETHUSDT", got.Symbol)

	// The dropped subscriber's channel drains and then closes.
	for range slow.Updates() {
	}
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	h := New()
	sub := h.Subscribe()

	h.Unsubscribe(sub)
	h.Unsubscribe(sub)
	assert.Equal(t, 0, h.Len())

	_, open := <-sub.Updates()
	assert.False(t, open)
}

func TestLateJoinerGetsNoBacklog(t *testing.T) {
	h := New()
	h.Publish(update("BTCUSDT", 60000))

	sub := h.Subscribe()
	select {
	case got := <-sub.Updates():
		t.Fatalf("late joiner received replayed update %v", got)
	default:
	}
}
