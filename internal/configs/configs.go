/*
Package configs is responsible for loading and parsing the client's configuration settings.

Settings are read from operating system environment variables, optionally pre-populated from
a .env file in the working directory: the chat service URL, connection timeouts, heartbeat
interval, outbound send rate, event queue capacity, and logging options.
*/
package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig contains all configuration parameters required for the client to run.
type AppConfig struct {
	// General Settings
	Environment string

	// Connection Settings
	ServerURL      string
	ConnectTimeout time.Duration
	JoinTimeout    time.Duration
	CloseTimeout   time.Duration
	PingInterval   time.Duration

	// Outbound Settings
	SendRate  float64
	SendBurst int

	// Event Bridge Settings
	EventQueueCap int

	// Logging Settings
	LogLevel string
	LogFile  string
}

// IsDevelopment reports whether the client runs in the development environment.
func (c *AppConfig) IsDevelopment() bool {
	return c.Environment == "development"
}

// Default returns the configuration used when no environment variable is set.
func Default() *AppConfig {
	return &AppConfig{
		Environment:    "development",
		ServerURL:      "ws://localhost:8765",
		ConnectTimeout: 10 * time.Second,
		JoinTimeout:    10 * time.Second,
		CloseTimeout:   5 * time.Second,
		PingInterval:   30 * time.Second,
		SendRate:       5,
		SendBurst:      10,
		EventQueueCap:  10000,
	}
}

// LoadConfig reads a .env file if one exists, then parses the configuration from
// environment variables on top of Default. Real environment variables win over .env entries.
func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	return FromEnv()
}

// FromEnv parses the configuration from environment variables only.
func FromEnv() (*AppConfig, error) {
	cfg := Default()

	// --- General Settings ---
	if env := os.Getenv("ENVIRONMENT"); env != "" {
		cfg.Environment = env
	}

	// --- Connection Settings ---
	if serverURL := os.Getenv("SERVER_URL"); serverURL != "" {
		cfg.ServerURL = serverURL
	}
	u, err := url.Parse(cfg.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_URL environment variable: %w", err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return nil, fmt.Errorf("SERVER_URL scheme must be ws or wss, got %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("SERVER_URL %q has no host", cfg.ServerURL)
	}

	if cfg.ConnectTimeout, err = durationEnv("CONNECT_TIMEOUT", cfg.ConnectTimeout); err != nil {
		return nil, err
	}
	if cfg.ConnectTimeout <= 0 {
		return nil, fmt.Errorf("CONNECT_TIMEOUT must be positive")
	}

	if cfg.JoinTimeout, err = durationEnv("JOIN_TIMEOUT", cfg.JoinTimeout); err != nil {
		return nil, err
	}
	if cfg.JoinTimeout <= 0 {
		return nil, fmt.Errorf("JOIN_TIMEOUT must be positive")
	}

	if cfg.CloseTimeout, err = durationEnv("CLOSE_TIMEOUT", cfg.CloseTimeout); err != nil {
		return nil, err
	}
	if cfg.CloseTimeout <= 0 {
		return nil, fmt.Errorf("CLOSE_TIMEOUT must be positive")
	}

	// PingInterval of zero disables heartbeats
	if cfg.PingInterval, err = durationEnv("PING_INTERVAL", cfg.PingInterval); err != nil {
		return nil, err
	}
	if cfg.PingInterval < 0 {
		return nil, fmt.Errorf("PING_INTERVAL must not be negative")
	}

	// --- Outbound Settings ---
	if rateStr := os.Getenv("SEND_RATE"); rateStr != "" {
		r, err := strconv.ParseFloat(rateStr, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid SEND_RATE environment variable: %w", err)
		}
		if r < 0 {
			return nil, fmt.Errorf("SEND_RATE must not be negative")
		}
		cfg.SendRate = r
	}

	if cfg.SendBurst, err = intEnv("SEND_BURST", cfg.SendBurst); err != nil {
		return nil, err
	}
	if cfg.SendRate > 0 && cfg.SendBurst < 1 {
		return nil, fmt.Errorf("SEND_BURST must be at least 1 when SEND_RATE is set")
	}

	// --- Event Bridge Settings ---
	if cfg.EventQueueCap, err = intEnv("EVENT_QUEUE_CAP", cfg.EventQueueCap); err != nil {
		return nil, err
	}
	if cfg.EventQueueCap < 0 {
		return nil, fmt.Errorf("EVENT_QUEUE_CAP must not be negative")
	}

	// --- Logging Settings ---
	cfg.LogLevel = os.Getenv("LOG_LEVEL")
	cfg.LogFile = os.Getenv("LOG_FILE")

	return cfg, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return d, nil
}

func intEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return n, nil
}
