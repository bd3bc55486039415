package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	TargetHost        string        // hostname used for TCP/HTTP/TLS/DNS probes
	PublicProbeIP     string        // well-known public IP for the Network-layer ping
	TCPPort           int           // primary TCP connect port
	AltTCPPort        int           // fallback TCP connect port (0 disables)
	FallbackGatewayIP string        // assumed gateway when detection fails
	Timeout           time.Duration // per-probe deadline
	LatencyWarnMS     float64       // latency above this is flagged in the report
	SpinnerInterval   time.Duration // progress indicator frame interval
	LogDir            string        // logs directory
	RulesPath         string        // optional YAML rule pack (empty = built-in table)
	Addr              string        // API bind address for serve mode
}

func Default() Config {
	return Config{
		TargetHost:        "example.com",
		PublicProbeIP:     "8.8.8.8",
		TCPPort:           443,
		AltTCPPort:        80,
		FallbackGatewayIP: "192.168.1.1",
		Timeout:           5 * time.Second,
		LatencyWarnMS:     150,
		SpinnerInterval:   200 * time.Millisecond,
		LogDir:            "logs",
		Addr:              "127.0.0.1:8080",
	}
}

// FromEnv builds the configuration from environment variables on top of
// the defaults. A .env file in the working directory is honored when
// present; real environment variables win over it.
func FromEnv() Config {
	_ = godotenv.Load()

	cfg := Default()

	if v := os.Getenv("NETDIAG_TARGET_HOST"); v != "" {
		cfg.TargetHost = v
	}
	if v := os.Getenv("NETDIAG_PUBLIC_PROBE_IP"); v != "" {
		cfg.PublicProbeIP = v
	}
	if v := os.Getenv("NETDIAG_TCP_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n < 65536 {
			cfg.TCPPort = n
		}
	}
	if v := os.Getenv("NETDIAG_ALT_TCP_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 && n < 65536 {
			cfg.AltTCPPort = n
		}
	}
	if v := os.Getenv("NETDIAG_FALLBACK_GATEWAY"); v != "" {
		cfg.FallbackGatewayIP = v
	}
	if v := os.Getenv("NETDIAG_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Timeout = time.Duration(n) * time.Second
		}
	}
	if v := os.Getenv("NETDIAG_LATENCY_WARN_MS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			cfg.LatencyWarnMS = f
		}
	}
	if v := os.Getenv("NETDIAG_LOG_DIR"); v != "" {
		cfg.LogDir = v
	}
	if v := os.Getenv("NETDIAG_RULES_PATH"); v != "" {
		cfg.RulesPath = v
	}
	if v := os.Getenv("NETDIAG_ADDR"); v != "" {
		cfg.Addr = v
	}

	return cfg
}
