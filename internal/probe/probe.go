package probe

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"net"
)

// Outcome is the unified result of a single probe.
//
// LatencyMS is meaningful when Succeeded is true; the TCP prober also
// records the connect attempt time on failure since it is diagnostic.
// Message carries the error description on failure, or a short detail
// ("via eth0", "status 200") on success.
type Outcome struct {
	Succeeded bool    `json:"succeeded"`
	LatencyMS float64 `json:"latency_ms,omitempty"`
	Message   string  `json:"message,omitempty"`
}

// Prober performs one bounded-time connectivity check. Implementations
// never panic and never return control after their deadline: every
// failure path (timeout, refusal, resolution, handshake) maps to an
// Outcome with Succeeded=false and a classified Message.
type Prober interface {
	// Describe names the check for progress output and log lines,
	// e.g. "TCP connect to example.com:443".
	Describe() string
	Probe(ctx context.Context) Outcome
}

// classify maps a probe error to a descriptive message with a stable
// prefix (timeout / dns / tls / connect) so failures group cleanly in
// the run log.
func classify(err error) string {
	if err == nil {
		return ""
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return "dns: " + dnsErr.Error()
	}
	var nErr net.Error
	if errors.As(err, &nErr) && nErr.Timeout() {
		return "timeout: " + err.Error()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout: " + err.Error()
	}
	var recErr tls.RecordHeaderError
	var certErr *tls.CertificateVerificationError
	var unkErr x509.UnknownAuthorityError
	var hostErr x509.HostnameError
	if errors.As(err, &recErr) || errors.As(err, &certErr) ||
		errors.As(err, &unkErr) || errors.As(err, &hostErr) {
		return "tls: " + err.Error()
	}
	return "connect: " + err.Error()
}

func failure(err error) Outcome {
	return Outcome{Succeeded: false, Message: classify(err)}
}
