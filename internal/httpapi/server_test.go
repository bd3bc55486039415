package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"netdiag/internal/domain"
	"netdiag/internal/layer"
	"netdiag/internal/probe"
)

type fakeRunner struct {
	results domain.Results
	inf     domain.Inference
	err     error
	block   chan struct{} // when set, RunDiagnostics waits until closed
	calls   atomic.Int32
}

func (f *fakeRunner) RunDiagnostics(ctx context.Context) (domain.Results, domain.Inference, error) {
	f.calls.Add(1)
	if f.block != nil {
		<-f.block
	}
	return f.results, f.inf, f.err
}

func healthyResults() domain.Results {
	rs := make(domain.Results, 0, 7)
	for _, l := range layer.All() {
		rs = append(rs, domain.LayerResult{
			Layer: l, Label: l.Label(), Passed: true,
			Outcome: probe.Outcome{Succeeded: true, LatencyMS: 1},
		})
	}
	return rs
}

func TestRunEndpoint_ReturnsReport(t *testing.T) {
	fr := &fakeRunner{
		results: healthyResults(),
		inf:     domain.Inference{RuleID: "all-passed", Explanation: "No issue detected."},
	}
	ts := httptest.NewServer(NewServer(zap.NewNop(), fr, 0).Router())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/diagnostics/run", "application/json", nil)
	if err != nil {
		t.Fatalf("POST run: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var rr RunResponse
	if err := json.NewDecoder(resp.Body).Decode(&rr); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rr.Results) != 7 || rr.Inference.RuleID != "all-passed" {
		t.Fatalf("report mismatch: %+v", rr)
	}
}

func TestRunEndpoint_CooldownServesCachedReport(t *testing.T) {
	fr := &fakeRunner{
		results: healthyResults(),
		inf:     domain.Inference{RuleID: "all-passed"},
	}
	ts := httptest.NewServer(NewServer(zap.NewNop(), fr, time.Hour).Router())
	defer ts.Close()

	for i := 0; i < 2; i++ {
		resp, err := http.Post(ts.URL+"/api/diagnostics/run", "application/json", nil)
		if err != nil {
			t.Fatalf("POST %d: %v", i, err)
		}
		var rr RunResponse
		if err := json.NewDecoder(resp.Body).Decode(&rr); err != nil {
			t.Fatalf("decode %d: %v", i, err)
		}
		resp.Body.Close()
		if i == 1 && !rr.Cached {
			t.Fatal("second request inside cooldown must be served from cache")
		}
	}
	if fr.calls.Load() != 1 {
		t.Fatalf("runner invoked %d times, want 1", fr.calls.Load())
	}
}

func TestRunEndpoint_ConcurrentRunConflicts(t *testing.T) {
	fr := &fakeRunner{results: healthyResults(), block: make(chan struct{})}
	ts := httptest.NewServer(NewServer(zap.NewNop(), fr, 0).Router())
	defer ts.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		resp, err := http.Post(ts.URL+"/api/diagnostics/run", "application/json", nil)
		if err == nil {
			resp.Body.Close()
		}
	}()

	// wait for the first run to be in flight
	deadline := time.Now().Add(2 * time.Second)
	for fr.calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	resp, err := http.Post(ts.URL+"/api/diagnostics/run", "application/json", nil)
	if err != nil {
		t.Fatalf("second POST: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("want 409 while a run is in flight, got %d", resp.StatusCode)
	}

	close(fr.block)
	<-done
}

func TestLastEndpoint(t *testing.T) {
	fr := &fakeRunner{results: healthyResults(), inf: domain.Inference{RuleID: "all-passed"}}
	ts := httptest.NewServer(NewServer(zap.NewNop(), fr, 0).Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/diagnostics/last")
	if err != nil {
		t.Fatalf("GET last: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("want 404 before any run, got %d", resp.StatusCode)
	}

	if resp, err = http.Post(ts.URL+"/api/diagnostics/run", "application/json", nil); err != nil {
		t.Fatalf("POST run: %v", err)
	}
	resp.Body.Close()

	resp, err = http.Get(ts.URL + "/api/diagnostics/last")
	if err != nil {
		t.Fatalf("GET last: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200 after a run, got %d", resp.StatusCode)
	}
}

func TestHealthz(t *testing.T) {
	ts := httptest.NewServer(NewServer(zap.NewNop(), &fakeRunner{}, 0).Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET healthz: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}
