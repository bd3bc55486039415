package probe

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"
)

func listen(t *testing.T) (string, int, func()) {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	go func() {
		for {
			conn, err := l.Accept()
			if err != nil {
				return
			}
			_ = conn.Close()
		}
	}()
	host, portStr, _ := net.SplitHostPort(l.Addr().String())
	port, _ := strconv.Atoi(portStr)
	return host, port, func() { _ = l.Close() }
}

func TestTCPProber_Connects(t *testing.T) {
	host, port, closeFn := listen(t)
	defer closeFn()

	p := NewTCPProber(host, port, 0, 2*time.Second)
	out := p.Probe(context.Background())
	if !out.Succeeded {
		t.Fatalf("want success, got %+v", out)
	}
	if out.LatencyMS < 0 {
		t.Fatalf("latency must not be negative: %f", out.LatencyMS)
	}
}

func TestTCPProber_AltPortCoversPrimaryFailure(t *testing.T) {
	host, port, closeFn := listen(t)
	defer closeFn()

	// primary port is closed, alternate is the live listener
	closed := reservedClosedPort(t)
	p := NewTCPProber(host, closed, port, 2*time.Second)
	out := p.Probe(context.Background())
	if !out.Succeeded {
		t.Fatalf("want success via alt port, got %+v", out)
	}
}

func TestTCPProber_RefusedRecordsLatencyAndMessage(t *testing.T) {
	p := NewTCPProber("127.0.0.1", reservedClosedPort(t), 0, 2*time.Second)
	out := p.Probe(context.Background())
	if out.Succeeded {
		t.Fatalf("want failure, got %+v", out)
	}
	if out.Message == "" {
		t.Fatal("want non-empty error message")
	}
	if out.LatencyMS < 0 {
		t.Fatalf("connect attempt time must not be negative: %f", out.LatencyMS)
	}
}

// The probe contract: given an unreachable target, the prober returns
// within its timeout (plus scheduling slack), failed, with a message.
func TestTCPProber_UnreachableReturnsWithinTimeout(t *testing.T) {
	p := NewTCPProber("10.255.255.1", 443, 0, 300*time.Millisecond)
	start := time.Now()
	out := p.Probe(context.Background())
	elapsed := time.Since(start)
	if out.Succeeded {
		t.Fatalf("want failure, got %+v", out)
	}
	if out.Message == "" {
		t.Fatal("want non-empty error message")
	}
	if elapsed > 3*time.Second {
		t.Fatalf("probe exceeded its deadline: %v", elapsed)
	}
}

// reservedClosedPort grabs an ephemeral port and releases it so the
// connect attempt is (almost certainly) refused.
func reservedClosedPort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	_, portStr, _ := net.SplitHostPort(l.Addr().String())
	_ = l.Close()
	port, _ := strconv.Atoi(portStr)
	return port
}
