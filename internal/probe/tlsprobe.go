package probe

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"strconv"
	"time"
)

// TLSProber checks the Presentation layer with a full TLS handshake,
// certificate validation included. A handshake that completes within
// the deadline passes; validation and connection errors fail.
type TLSProber struct {
	Host    string
	Port    int
	Timeout time.Duration

	// Config overrides the handshake configuration; tests use it to
	// trust a local test server's certificate. Nil uses defaults with
	// ServerName set to Host.
	Config *tls.Config
}

func NewTLSProber(host string, port int, timeout time.Duration) *TLSProber {
	return &TLSProber{Host: host, Port: port, Timeout: timeout}
}

func (p *TLSProber) Describe() string {
	return fmt.Sprintf("TLS handshake with %s:%d", p.Host, p.Port)
}

func (p *TLSProber) Probe(ctx context.Context) Outcome {
	cfg := p.Config
	if cfg == nil {
		cfg = &tls.Config{ServerName: p.Host}
	}

	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{Timeout: p.Timeout},
		Config:    cfg,
	}

	cctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	start := time.Now()
	conn, err := dialer.DialContext(cctx, "tcp", net.JoinHostPort(p.Host, strconv.Itoa(p.Port)))
	latency := float64(time.Since(start).Microseconds()) / 1000.0
	if err != nil {
		return failure(err)
	}
	defer conn.Close()

	state := conn.(*tls.Conn).ConnectionState()
	return Outcome{
		Succeeded: true,
		LatencyMS: latency,
		Message:   "negotiated " + tls.VersionName(state.Version),
	}
}
