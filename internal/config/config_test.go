package config

import (
	"testing"
	"time"
)

func TestDefaultMatchesCanonicalConstants(t *testing.T) {
	cfg := Default()
	if cfg.TargetHost != "example.com" {
		t.Fatalf("TargetHost = %q", cfg.TargetHost)
	}
	if cfg.PublicProbeIP != "8.8.8.8" {
		t.Fatalf("PublicProbeIP = %q", cfg.PublicProbeIP)
	}
	if cfg.TCPPort != 443 || cfg.AltTCPPort != 80 {
		t.Fatalf("ports = %d/%d", cfg.TCPPort, cfg.AltTCPPort)
	}
	if cfg.Timeout != 5*time.Second {
		t.Fatalf("Timeout = %v", cfg.Timeout)
	}
	if cfg.LatencyWarnMS != 150 {
		t.Fatalf("LatencyWarnMS = %v", cfg.LatencyWarnMS)
	}
	if cfg.SpinnerInterval != 200*time.Millisecond {
		t.Fatalf("SpinnerInterval = %v", cfg.SpinnerInterval)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("NETDIAG_TARGET_HOST", "example.org")
	t.Setenv("NETDIAG_TCP_PORT", "8443")
	t.Setenv("NETDIAG_TIMEOUT_SECONDS", "3")
	t.Setenv("NETDIAG_LATENCY_WARN_MS", "99.5")
	t.Setenv("NETDIAG_LOG_DIR", "/tmp/netdiag-test-logs")

	cfg := FromEnv()
	if cfg.TargetHost != "example.org" {
		t.Fatalf("TargetHost = %q", cfg.TargetHost)
	}
	if cfg.TCPPort != 8443 {
		t.Fatalf("TCPPort = %d", cfg.TCPPort)
	}
	if cfg.Timeout != 3*time.Second {
		t.Fatalf("Timeout = %v", cfg.Timeout)
	}
	if cfg.LatencyWarnMS != 99.5 {
		t.Fatalf("LatencyWarnMS = %v", cfg.LatencyWarnMS)
	}
	if cfg.LogDir != "/tmp/netdiag-test-logs" {
		t.Fatalf("LogDir = %q", cfg.LogDir)
	}
}

func TestFromEnv_IgnoresInvalidValues(t *testing.T) {
	t.Setenv("NETDIAG_TCP_PORT", "not-a-port")
	t.Setenv("NETDIAG_TIMEOUT_SECONDS", "-5")

	cfg := FromEnv()
	if cfg.TCPPort != 443 {
		t.Fatalf("invalid port should keep default, got %d", cfg.TCPPort)
	}
	if cfg.Timeout != 5*time.Second {
		t.Fatalf("invalid timeout should keep default, got %v", cfg.Timeout)
	}
}
