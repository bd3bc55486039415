package diag

import (
	"context"
	"time"

	"go.uber.org/zap"

	"netdiag/internal/config"
	"netdiag/internal/domain"
	"netdiag/internal/layer"
	"netdiag/internal/probe"
)

// Step binds one OSI layer to the prober that checks it.
type Step struct {
	Layer  layer.Layer
	Prober probe.Prober
}

// DefaultSteps builds the canonical seven-layer probe sequence from the
// configuration constants.
func DefaultSteps(cfg config.Config) []Step {
	return []Step{
		{layer.Physical, probe.NewInterfaceProber()},
		{layer.DataLink, probe.NewGatewayProber(cfg.FallbackGatewayIP, cfg.Timeout)},
		{layer.Network, probe.NewPingProber(cfg.PublicProbeIP, "Ping public IP", cfg.Timeout)},
		{layer.Transport, probe.NewTCPProber(cfg.TargetHost, cfg.TCPPort, cfg.AltTCPPort, cfg.Timeout)},
		{layer.Session, probe.NewSessionProber(cfg.TargetHost, cfg.Timeout)},
		{layer.Presentation, probe.NewTLSProber(cfg.TargetHost, cfg.TCPPort, cfg.Timeout)},
		{layer.Application, probe.NewDNSProber(cfg.TargetHost, cfg.Timeout)},
	}
}

// Sequencer runs the probe steps in strictly ascending layer order.
// Later probes run even when earlier layers failed: the root-cause
// engine needs the complete pass/fail pattern to disambiguate causes.
// Probes never run in parallel; the only concurrency is the spinner.
type Sequencer struct {
	Logger  *zap.Logger
	Steps   []Step
	Spinner *Spinner

	// OnResult, when set, receives each LayerResult as it is recorded.
	// The run-log collaborator hangs off this.
	OnResult func(domain.LayerResult)
}

func NewSequencer(logger *zap.Logger, steps []Step, spinner *Spinner) *Sequencer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sequencer{Logger: logger, Steps: steps, Spinner: spinner}
}

// Run executes every step and returns the complete ordered results.
// Cancellation is cooperative: the context is checked before each step,
// never mid-probe. The spinner goroutine is always joined before Run
// returns, even on cancellation.
func (s *Sequencer) Run(ctx context.Context) (domain.Results, error) {
	stop := s.Spinner.Start()
	defer stop()

	results := make(domain.Results, 0, len(s.Steps))
	for _, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			s.Logger.Info("sequence_cancelled", zap.Stringer("next_layer", step.Layer))
			return results, err
		}

		out := step.Prober.Probe(ctx)
		r := domain.LayerResult{
			Layer:     step.Layer,
			Label:     step.Layer.Label(),
			Check:     step.Prober.Describe(),
			Outcome:   out,
			Passed:    out.Succeeded,
			CheckedAt: time.Now().UTC(),
		}
		results = append(results, r)

		s.Logger.Info("layer_probed",
			zap.Stringer("layer", step.Layer),
			zap.String("check", r.Check),
			zap.Bool("passed", r.Passed),
			zap.Float64("latency_ms", out.LatencyMS),
			zap.String("message", out.Message),
		)
		if s.OnResult != nil {
			s.OnResult(r)
		}
	}
	return results, nil
}
