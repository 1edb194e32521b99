package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"ENVIRONMENT", "SERVER_URL", "CONNECT_TIMEOUT", "JOIN_TIMEOUT", "CLOSE_TIMEOUT", "PING_INTERVAL",
	"SEND_RATE", "SEND_BURST", "EVENT_QUEUE_CAP", "LOG_LEVEL", "LOG_FILE",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.True(t, cfg.IsDevelopment())
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("SERVER_URL", "wss://chat.example.com/ws")
	t.Setenv("CONNECT_TIMEOUT", "3s")
	t.Setenv("JOIN_TIMEOUT", "4s")
	t.Setenv("CLOSE_TIMEOUT", "750ms")
	t.Setenv("PING_INTERVAL", "0")
	t.Setenv("SEND_RATE", "0")
	t.Setenv("EVENT_QUEUE_CAP", "0")
	t.Setenv("LOG_FILE", "/tmp/termchat.log")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "wss://chat.example.com/ws", cfg.ServerURL)
	assert.Equal(t, 3*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, 4*time.Second, cfg.JoinTimeout)
	assert.Equal(t, 750*time.Millisecond, cfg.CloseTimeout)
	assert.Zero(t, cfg.PingInterval)
	assert.Zero(t, cfg.SendRate)
	assert.Zero(t, cfg.EventQueueCap)
	assert.Equal(t, "/tmp/termchat.log", cfg.LogFile)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"SERVER_URL", "http://localhost:8765"},
		{"SERVER_URL", "ws://"},
		{"CONNECT_TIMEOUT", "soon"},
		{"CONNECT_TIMEOUT", "0s"},
		{"JOIN_TIMEOUT", "0s"},
		{"CLOSE_TIMEOUT", "-1s"},
		{"PING_INTERVAL", "-5s"},
		{"SEND_RATE", "fast"},
		{"SEND_RATE", "-1"},
		{"SEND_BURST", "0"},
		{"EVENT_QUEUE_CAP", "-10"},
	}

	for _, tc := range tests {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)

			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}
