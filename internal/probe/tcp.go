package probe

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"go.uber.org/multierr"
)

// TCPProber checks the Transport layer with a plain TCP handshake to
// the target host. The primary port is tried first; when an alternate
// port is configured the probe passes if either connects. The connect
// attempt time is recorded as latency even on failure — how long the
// handshake took before being refused is itself diagnostic.
type TCPProber struct {
	Host    string
	Port    int
	AltPort int // 0 disables the fallback attempt
	Timeout time.Duration
}

func NewTCPProber(host string, port, altPort int, timeout time.Duration) *TCPProber {
	return &TCPProber{Host: host, Port: port, AltPort: altPort, Timeout: timeout}
}

func (p *TCPProber) Describe() string {
	return fmt.Sprintf("TCP connect to %s:%d", p.Host, p.Port)
}

func (p *TCPProber) Probe(ctx context.Context) Outcome {
	start := time.Now()
	lat, err := p.dial(ctx, p.Port)
	if err == nil {
		return Outcome{Succeeded: true, LatencyMS: lat, Message: "connected on port " + strconv.Itoa(p.Port)}
	}

	if p.AltPort > 0 {
		altLat, altErr := p.dial(ctx, p.AltPort)
		if altErr == nil {
			return Outcome{Succeeded: true, LatencyMS: altLat, Message: "connected on port " + strconv.Itoa(p.AltPort)}
		}
		err = multierr.Append(err, altErr)
	}

	elapsed := float64(time.Since(start).Microseconds()) / 1000.0
	return Outcome{Succeeded: false, LatencyMS: elapsed, Message: classify(err)}
}

func (p *TCPProber) dial(ctx context.Context, port int) (float64, error) {
	d := net.Dialer{Timeout: p.Timeout}
	start := time.Now()
	conn, err := d.DialContext(ctx, "tcp", net.JoinHostPort(p.Host, strconv.Itoa(port)))
	if err != nil {
		return 0, err
	}
	_ = conn.Close()
	return float64(time.Since(start).Microseconds()) / 1000.0, nil
}
