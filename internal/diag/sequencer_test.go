package diag

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"netdiag/internal/config"
	"netdiag/internal/domain"
	"netdiag/internal/layer"
	"netdiag/internal/probe"
)

// fake prober you can script per layer
type fakeProber struct {
	out    probe.Outcome
	onCall func()
}

func (f *fakeProber) Describe() string { return "fake check" }

func (f *fakeProber) Probe(_ context.Context) probe.Outcome {
	if f.onCall != nil {
		f.onCall()
	}
	return f.out
}

func fakeSteps(failing ...layer.Layer) []Step {
	bad := layer.NewSet(failing...)
	steps := make([]Step, 0, 7)
	for _, l := range layer.All() {
		out := probe.Outcome{Succeeded: !bad.Has(l), LatencyMS: 1.5}
		if bad.Has(l) {
			out.LatencyMS = 0
			out.Message = "connect: scripted failure"
		}
		steps = append(steps, Step{Layer: l, Prober: &fakeProber{out: out}})
	}
	return steps
}

func TestSequencer_RunsAllLayersInOrder(t *testing.T) {
	seq := NewSequencer(zap.NewNop(), fakeSteps(), nil)

	var seen []layer.Layer
	seq.OnResult = func(r domain.LayerResult) { seen = append(seen, r.Layer) }

	rs, err := seq.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(rs) != 7 {
		t.Fatalf("want 7 results, got %d", len(rs))
	}
	for i, r := range rs {
		if int(r.Layer) != i+1 {
			t.Fatalf("result %d out of order: %v", i, r.Layer)
		}
		if r.Label == "" || r.Check == "" || r.CheckedAt.IsZero() {
			t.Fatalf("result %d incomplete: %+v", i, r)
		}
	}
	if len(seen) != 7 {
		t.Fatalf("OnResult fired %d times", len(seen))
	}
}

// Later probes must still run when earlier layers fail: the engine
// needs the full pattern.
func TestSequencer_NoShortCircuit(t *testing.T) {
	seq := NewSequencer(zap.NewNop(), fakeSteps(layer.Physical, layer.DataLink, layer.Network), nil)
	rs, err := seq.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(rs) != 7 {
		t.Fatalf("sequence short-circuited: %d results", len(rs))
	}
	failed := rs.Failed()
	if !failed.Equals(layer.Physical, layer.DataLink, layer.Network) {
		t.Fatalf("failed set = %v", failed)
	}
}

func TestSequencer_CancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	seq := NewSequencer(zap.NewNop(), fakeSteps(), nil)
	rs, err := seq.Run(ctx)
	if err == nil {
		t.Fatal("want context error")
	}
	if len(rs) != 0 {
		t.Fatalf("no probe should run after cancel, got %d results", len(rs))
	}
}

// Cancellation is cooperative: it takes effect between probes, so a
// cancel during layer 3 still records layer 3 and stops before layer 4.
func TestSequencer_CancelledMidSequence(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	steps := fakeSteps()
	steps[2].Prober.(*fakeProber).onCall = cancel

	seq := NewSequencer(zap.NewNop(), steps, nil)
	rs, err := seq.Run(ctx)
	if err == nil {
		t.Fatal("want context error")
	}
	if len(rs) != 3 {
		t.Fatalf("want 3 results before stop, got %d", len(rs))
	}
}

func TestSequencer_SpinnerJoinedOnReturn(t *testing.T) {
	w := &syncBuffer{}
	spinner := NewSpinner(w, 5*time.Millisecond)

	seq := NewSequencer(zap.NewNop(), fakeSteps(), spinner)
	if _, err := seq.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// after Run returns the spinner goroutine must be gone
	n := w.Len()
	time.Sleep(30 * time.Millisecond)
	if w.Len() != n {
		t.Fatal("spinner still writing after Run returned")
	}
}

func TestDefaultSteps_CoverAllLayersAscending(t *testing.T) {
	steps := DefaultSteps(config.Default())
	if len(steps) != 7 {
		t.Fatalf("want 7 steps, got %d", len(steps))
	}
	for i, s := range steps {
		if int(s.Layer) != i+1 {
			t.Fatalf("step %d probes %v", i, s.Layer)
		}
		if s.Prober == nil || s.Prober.Describe() == "" {
			t.Fatalf("step %d has no prober description", i)
		}
	}
}
