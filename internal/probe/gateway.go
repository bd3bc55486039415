package probe

import (
	"context"
	"net"
	"time"

	"github.com/jackpal/gateway"
)

// GatewayProber checks the Data Link layer by pinging the default
// gateway. When gateway detection fails it does not abort the run:
// it falls back to the configured private IP and flags the outcome as
// an assumed gateway, so the inference stage still sees a complete
// layer pattern.
type GatewayProber struct {
	Fallback string
	Timeout  time.Duration

	// Detect resolves the default gateway IP. Defaults to
	// gateway.DiscoverGateway; tests substitute a fake.
	Detect func() (net.IP, error)
}

func NewGatewayProber(fallback string, timeout time.Duration) *GatewayProber {
	return &GatewayProber{
		Fallback: fallback,
		Timeout:  timeout,
		Detect:   gateway.DiscoverGateway,
	}
}

func (p *GatewayProber) Describe() string {
	return "Ping local gateway"
}

func (p *GatewayProber) Probe(ctx context.Context) Outcome {
	detect := p.Detect
	if detect == nil {
		detect = gateway.DiscoverGateway
	}

	target := ""
	assumed := false
	if ip, err := detect(); err == nil && ip != nil {
		target = ip.String()
	} else {
		target = p.Fallback
		assumed = true
	}
	if target == "" {
		return Outcome{Succeeded: false, Message: "no default gateway detected and no fallback configured"}
	}

	out := runPing(ctx, target, p.Timeout)
	if assumed {
		out.Message = "assumed gateway " + target + ": " + out.Message
	}
	return out
}
