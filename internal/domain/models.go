package domain

import (
	"time"

	"netdiag/internal/layer"
	"netdiag/internal/probe"
)

// LayerResult associates one OSI layer with the outcome of its probe.
type LayerResult struct {
	Layer     layer.Layer   `json:"layer"`
	Label     string        `json:"label"`
	Check     string        `json:"check"`
	Outcome   probe.Outcome `json:"outcome"`
	Passed    bool          `json:"passed"`
	CheckedAt time.Time     `json:"checked_at"`
}

// Results is the complete, ordered output of one diagnostic run:
// exactly one LayerResult per layer, ascending.
type Results []LayerResult

// Failed derives the set of layers whose probe did not pass.
func (rs Results) Failed() layer.Set {
	s := make(layer.Set)
	for _, r := range rs {
		if !r.Passed {
			s[r.Layer] = struct{}{}
		}
	}
	return s
}

// Passed derives the set of layers whose probe passed.
func (rs Results) Passed() layer.Set {
	s := make(layer.Set)
	for _, r := range rs {
		if r.Passed {
			s[r.Layer] = struct{}{}
		}
	}
	return s
}

// ByLayer returns the result for a single layer.
func (rs Results) ByLayer(l layer.Layer) (LayerResult, bool) {
	for _, r := range rs {
		if r.Layer == l {
			return r, true
		}
	}
	return LayerResult{}, false
}

// Inference is the root-cause engine's verdict, immutable once produced.
type Inference struct {
	RuleID      string `json:"rule_id,omitempty"`
	Explanation string `json:"explanation"`
	Recovery    string `json:"recovery,omitempty"`
	Advice      string `json:"advice,omitempty"`
}
