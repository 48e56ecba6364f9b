package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"botbackend/src/model"
)

func TestBot_StartStopIdempotent(t *testing.T) {
	bot := NewBot(&memStore{})

	assert.Equal(t, "success", bot.Start().Status)
	assert.True(t, bot.Running())

	// Second start is an informational no-op.
	assert.Equal(t, "info", bot.Start().Status)
	assert.True(t, bot.Running())

	assert.Equal(t, "success", bot.Stop().Status)
	assert.False(t, bot.Running())
	assert.Equal(t, "info", bot.Stop().Status)
	assert.False(t, bot.Running())
}

func TestBot_StatusActiveSymbols(t *testing.T) {
	st := &memStore{
		trades: []model.Trade{
			{ID: "t1", Symbol: "ETHUSDT", Open: true},
			{ID: "t2", Symbol: "BTCUSDT", Open: true},
			{ID: "t3", Symbol: "ETHUSDT", Open: true},
			{ID: "t4", Symbol: "SOLUSDT", Open: false},
		},
	}
	bot := NewBot(st)

	status, err := bot.Status()
	require.NoError(t, err)
	assert.False(t, status.Running)
	assert.Equal(t, "Stopped", status.Uptime)
	assert.Equal(t, []string{"BTCUSDT", "ETHUSDT"}, status.ActiveSymbols)

	bot.Start()
	status, err = bot.Status()
	require.NoError(t, err)
	assert.True(t, status.Running)
	assert.Equal(t, "Running", status.Uptime)
}
