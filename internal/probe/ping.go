package probe

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"runtime"
	"strconv"
	"time"
)

var (
	pingTimeRe = regexp.MustCompile(`time[=<]([0-9.]+) ?ms`)
	pingRttRe  = regexp.MustCompile(`= ([0-9.]+)/`)
)

// PingProber checks reachability of a single host with one ICMP echo
// via the system ping binary. Used for the Network layer (fixed public
// IP) and, wrapped by GatewayProber, for the Data Link layer.
type PingProber struct {
	Target  string
	Timeout time.Duration
	What    string // description shown in progress output
}

func NewPingProber(target, what string, timeout time.Duration) *PingProber {
	return &PingProber{Target: target, Timeout: timeout, What: what}
}

func (p *PingProber) Describe() string {
	if p.What != "" {
		return fmt.Sprintf("%s %s", p.What, p.Target)
	}
	return "Ping " + p.Target
}

func (p *PingProber) Probe(ctx context.Context) Outcome {
	return runPing(ctx, p.Target, p.Timeout)
}

func pingArgs(target string, timeout time.Duration) []string {
	if runtime.GOOS == "windows" {
		return []string{"-n", "1", "-w", strconv.FormatInt(timeout.Milliseconds(), 10), target}
	}
	secs := int(timeout.Seconds())
	if secs < 1 {
		secs = 1
	}
	return []string{"-c", "1", "-W", strconv.Itoa(secs), target}
}

func runPing(ctx context.Context, target string, timeout time.Duration) Outcome {
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	out, err := exec.CommandContext(cctx, "ping", pingArgs(target, timeout)...).CombinedOutput()
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0
	if cctx.Err() == context.DeadlineExceeded {
		return Outcome{Succeeded: false, Message: fmt.Sprintf("timeout: no echo reply from %s within %s", target, timeout)}
	}
	if err != nil {
		return Outcome{Succeeded: false, Message: "connect: ping " + target + ": " + err.Error()}
	}

	lat := parsePingLatency(string(out))
	if lat <= 0 {
		// ping reported success but the rtt line was unparseable; fall
		// back to wall-clock time of the subprocess.
		lat = elapsed
	}
	return Outcome{Succeeded: true, LatencyMS: lat, Message: "echo reply from " + target}
}

func parsePingLatency(s string) float64 {
	if m := pingTimeRe.FindStringSubmatch(s); len(m) == 2 {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			return v
		}
	}
	if m := pingRttRe.FindStringSubmatch(s); len(m) == 2 {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			return v
		}
	}
	return 0
}
