package probe

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// SessionProber checks the Session layer with an independent HTTP HEAD
// request to the target; a response with status below 400 passes. This
// is a deliberate policy choice: the probe never reuses the Transport
// layer's result, so a session-level block (e.g. a filtering proxy)
// shows up even when the raw TCP handshake succeeded.
type SessionProber struct {
	URL    string
	Client *http.Client
}

func NewSessionProber(host string, timeout time.Duration) *SessionProber {
	return &SessionProber{
		URL:    "https://" + host,
		Client: &http.Client{Timeout: timeout},
	}
}

func (p *SessionProber) Describe() string {
	return "HTTP HEAD " + p.URL
}

func (p *SessionProber) Probe(ctx context.Context) Outcome {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.URL, nil)
	if err != nil {
		return failure(err)
	}

	resp, err := p.Client.Do(req)
	latency := float64(time.Since(start).Microseconds()) / 1000.0
	if err != nil {
		return failure(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return Outcome{
			Succeeded: false,
			LatencyMS: latency,
			Message:   fmt.Sprintf("connect: server answered %s", resp.Status),
		}
	}
	return Outcome{Succeeded: true, LatencyMS: latency, Message: "status " + resp.Status}
}
