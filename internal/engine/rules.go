package engine

import (
	"netdiag/internal/domain"
	"netdiag/internal/layer"
)

// Match is the data form of a rule predicate: set-membership tests over
// the failed and passed layer sets. All populated conditions must hold.
// FailedExactly demands exact set equality; the Contains fields demand
// superset containment.
type Match struct {
	FailedExactly  []layer.Layer
	FailedContains []layer.Layer
	PassedContains []layer.Layer
}

// Applies reports whether the predicate matches the given pattern.
func (m Match) Applies(failed, passed layer.Set) bool {
	if len(m.FailedExactly) > 0 && !failed.Equals(m.FailedExactly...) {
		return false
	}
	if !failed.ContainsAll(m.FailedContains...) {
		return false
	}
	if !passed.ContainsAll(m.PassedContains...) {
		return false
	}
	return true
}

// Rule is one entry of the prioritized root-cause table.
type Rule struct {
	ID          string
	Match       Match
	Explanation string
	Recovery    string
	Advice      string
}

// Engine maps a failure/pass pattern to a root-cause inference by
// evaluating an ordered rule list; the first match wins. It is
// stateless: the same pattern always yields the same inference.
type Engine struct {
	rules []Rule
}

// New builds an engine over the given rule table. Nil or empty rules
// fall back to the built-in table.
func New(rules []Rule) *Engine {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Engine{rules: rules}
}

// Rules exposes the table for inspection and reporting.
func (e *Engine) Rules() []Rule {
	return e.rules
}

var allPassed = domain.Inference{
	RuleID:      "all-passed",
	Explanation: "No issue detected: all seven layers passed.",
}

var fallback = domain.Inference{
	RuleID:      "fallback",
	Explanation: "Uncommon failure pattern: the failing layers do not match a known cause.",
	Recovery:    "Review the per-layer errors in the run log and re-run; investigate the lowest failing layer first.",
}

// Infer resolves the failure/pass pattern against the rule table.
// An empty failure set short-circuits to the all-passed verdict; an
// unmatched pattern yields the generic fallback.
func (e *Engine) Infer(failed, passed layer.Set) domain.Inference {
	if failed.Len() == 0 {
		return allPassed
	}
	for _, r := range e.rules {
		if r.Match.Applies(failed, passed) {
			return domain.Inference{
				RuleID:      r.ID,
				Explanation: r.Explanation,
				Recovery:    r.Recovery,
				Advice:      r.Advice,
			}
		}
	}
	return fallback
}

// InferResults is a convenience wrapper deriving the sets from a
// completed run.
func (e *Engine) InferResults(rs domain.Results) domain.Inference {
	return e.Infer(rs.Failed(), rs.Passed())
}

// DefaultRules returns the built-in root-cause table in priority order.
// Single-layer rules come first since they are the most specific;
// broader superset rules follow. Reordering entries changes which
// explanation wins for overlapping patterns, so additions should go
// below the most specific rule they overlap with.
func DefaultRules() []Rule {
	return []Rule{
		{
			ID:          "physical-only",
			Match:       Match{FailedExactly: []layer.Layer{layer.Physical}},
			Explanation: "Network hardware is down while every layer above it still works through a cached or alternate path.",
			Recovery:    "Re-enable the network adapter and check Wi-Fi/Ethernet hardware and drivers.",
			Advice:      "Toggling airplane mode or reseating the cable often clears this.",
		},
		{
			ID:          "datalink-only",
			Match:       Match{FailedExactly: []layer.Layer{layer.DataLink}},
			Explanation: "The router/modem is unreachable on the local network although the interface itself is up.",
			Recovery:    "Restart the router/modem and confirm the device is joined to the right network.",
		},
		{
			ID:          "network-only",
			Match:       Match{FailedExactly: []layer.Layer{layer.Network}},
			Explanation: "The gateway responds but the wider internet does not: likely an ISP or upstream routing problem.",
			Recovery:    "Check the WAN status light on the router; contact your ISP if the outage persists.",
		},
		{
			ID:          "transport-only",
			Match:       Match{FailedExactly: []layer.Layer{layer.Transport}},
			Explanation: "TCP connections are being refused or dropped while ICMP passes: usually a firewall rule.",
			Recovery:    "Review local firewall and security-software rules for outbound TCP.",
		},
		{
			ID:          "session-only",
			Match:       Match{FailedExactly: []layer.Layer{layer.Session}},
			Explanation: "HTTP sessions fail although TCP connects: a proxy or captive portal may be intercepting requests.",
			Recovery:    "Check system proxy settings or sign in to the network's portal page.",
		},
		{
			ID:          "presentation-only",
			Match:       Match{FailedExactly: []layer.Layer{layer.Presentation}},
			Explanation: "TLS handshakes fail while plain TCP works: certificate interception or a TLS-level block.",
			Recovery:    "Inspect certificate warnings and check for middleboxes or an out-of-date root certificate store.",
			Advice:      "Verify the system clock; clock skew breaks certificate validation.",
		},
		{
			ID:          "application-only",
			Match:       Match{FailedExactly: []layer.Layer{layer.Application}},
			Explanation: "DNS resolution is failing although every lower layer is healthy.",
			Recovery:    "Switch to a public resolver such as 8.8.8.8 or restart the local DNS service.",
			Advice:      "Flushing the local DNS cache can help.",
		},
		{
			ID:          "local-stack-down",
			Match:       Match{FailedContains: []layer.Layer{layer.Physical, layer.DataLink, layer.Network}},
			Explanation: "Total local connectivity failure from the hardware up.",
			Recovery:    "Check physical connections first, then reboot the router; nothing above can recover until layers 1-3 do.",
		},
		{
			ID: "post-gateway-filtering",
			Match: Match{
				FailedContains: []layer.Layer{layer.Network, layer.Transport, layer.Session, layer.Presentation},
				PassedContains: []layer.Layer{layer.Physical, layer.DataLink},
			},
			Explanation: "The local network is healthy but everything beyond the gateway is blocked: typical of enterprise egress filtering or an ISP outage.",
			Recovery:    "Ask the network administrator about egress policy, or test the same device on another uplink.",
			Advice:      "On corporate networks a mandatory proxy may be the only sanctioned path out.",
		},
		{
			ID:          "tcp-dns-block",
			Match:       Match{FailedExactly: []layer.Layer{layer.Transport, layer.Application}},
			Explanation: "Outbound TCP and DNS are both blocked: a combined firewall and DNS block, common on restricted networks.",
			Recovery:    "Use the network's sanctioned proxy and resolver, or request firewall exceptions for ports 443 and 53.",
		},
		{
			ID: "tls-inspection",
			Match: Match{
				FailedExactly:  []layer.Layer{layer.Presentation},
				PassedContains: []layer.Layer{layer.Transport},
			},
			Explanation: "TLS-only failure with TCP intact: traffic inspection is terminating handshakes.",
			Recovery:    "Report TLS interception to the network operator and verify the trusted root store.",
		},
		{
			ID: "dns-only",
			Match: Match{
				FailedExactly:  []layer.Layer{layer.Application},
				PassedContains: []layer.Layer{layer.Physical, layer.DataLink, layer.Network, layer.Transport, layer.Session, layer.Presentation},
			},
			Explanation: "Only DNS fails with the full stack below it healthy: resolver outage or DNS-level filtering.",
			Recovery:    "Point the system at an alternate resolver and retry.",
		},
		{
			ID: "session-tls-intercept",
			Match: Match{
				FailedExactly:  []layer.Layer{layer.Session, layer.Presentation},
				PassedContains: []layer.Layer{layer.Physical, layer.DataLink, layer.Network, layer.Transport},
			},
			Explanation: "Session and TLS layers fail together above a healthy transport: an intercepting proxy is likely rewriting or dropping secure sessions.",
			Recovery:    "Check proxy and SSL-inspection configuration on this network.",
		},
		{
			ID: "tls-dns-filtering",
			Match: Match{
				FailedExactly:  []layer.Layer{layer.Presentation, layer.Application},
				PassedContains: []layer.Layer{layer.Physical, layer.DataLink, layer.Network, layer.Transport, layer.Session},
			},
			Explanation: "TLS and DNS fail together: DNS-based filtering combined with certificate interception.",
			Recovery:    "Try an alternate resolver and inspect the certificates actually presented.",
		},
	}
}
