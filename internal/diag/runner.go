package diag

import (
	"context"

	"go.uber.org/zap"

	"netdiag/internal/domain"
	"netdiag/internal/engine"
)

// Runner is the core's single entry point: one diagnostic pass yielding
// the ordered layer results and the root-cause inference. All entities
// are created fresh per call and owned by the caller afterwards.
type Runner struct {
	Sequencer *Sequencer
	Engine    *engine.Engine
	Logger    *zap.Logger
}

func NewRunner(seq *Sequencer, eng *engine.Engine, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if eng == nil {
		eng = engine.New(nil)
	}
	return &Runner{Sequencer: seq, Engine: eng, Logger: logger}
}

// RunDiagnostics runs the full probe sequence and hands the completed
// result set to the root-cause engine. A cancelled sequence returns the
// partial results with the context error and no inference is attempted.
func (r *Runner) RunDiagnostics(ctx context.Context) (domain.Results, domain.Inference, error) {
	results, err := r.Sequencer.Run(ctx)
	if err != nil {
		return results, domain.Inference{}, err
	}

	inf := r.Engine.InferResults(results)
	r.Logger.Info("inference",
		zap.String("rule", inf.RuleID),
		zap.String("explanation", inf.Explanation),
		zap.Stringer("failed", results.Failed()),
	)
	return results, inf, nil
}
