package probe

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"
)

// DNSProber checks the Application layer by resolving the target
// hostname through the OS resolver. Resolution returning at least one
// address within the deadline passes.
//
// When a Client is set, a successful resolution is followed by a
// best-effort HTTP GET whose status is recorded as extra detail; the
// layer's pass/fail stays a pure function of DNS resolution.
type DNSProber struct {
	Host     string
	Timeout  time.Duration
	Resolver Resolver
	Client   *http.Client
}

// Resolver is the subset of net.Resolver the prober needs.
type Resolver interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
}

func NewDNSProber(host string, timeout time.Duration) *DNSProber {
	return &DNSProber{
		Host:    host,
		Timeout: timeout,
		Client:  &http.Client{Timeout: timeout},
	}
}

func (p *DNSProber) Describe() string {
	return "DNS resolve " + p.Host
}

func (p *DNSProber) Probe(ctx context.Context) Outcome {
	cctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	resolver := p.Resolver
	if resolver == nil {
		resolver = defaultResolver{}
	}

	start := time.Now()
	addrs, err := resolver.LookupHost(cctx, p.Host)
	latency := float64(time.Since(start).Microseconds()) / 1000.0
	if err != nil {
		return failure(err)
	}
	if len(addrs) == 0 {
		return Outcome{Succeeded: false, Message: "dns: no addresses for " + p.Host}
	}

	msg := "resolved to " + addrs[0]
	if p.Client != nil {
		msg += "; " + p.fetchDetail(ctx)
	}
	return Outcome{Succeeded: true, LatencyMS: latency, Message: msg}
}

func (p *DNSProber) fetchDetail(ctx context.Context) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://"+p.Host, nil)
	if err != nil {
		return "http GET skipped: " + err.Error()
	}
	resp, err := p.Client.Do(req)
	if err != nil {
		return "http GET failed: " + err.Error()
	}
	defer resp.Body.Close()
	return fmt.Sprintf("http GET status %d", resp.StatusCode)
}

type defaultResolver struct{}

func (defaultResolver) LookupHost(ctx context.Context, host string) ([]string, error) {
	return net.DefaultResolver.LookupHost(ctx, host)
}
