package cli

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"netdiag/internal/config"
	"netdiag/internal/diag"
	"netdiag/internal/domain"
	"netdiag/internal/engine"
	"netdiag/internal/logging"
	"netdiag/internal/report"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one diagnostic pass",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig(cmd)

		logger, err := logging.NewLogger(cfg.LogDir)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()

		runlog, err := logging.NewRunLog(cfg.LogDir)
		if err != nil {
			return fmt.Errorf("init run log: %w", err)
		}
		defer func() { _ = runlog.Close() }()

		eng, err := newEngine(cfg)
		if err != nil {
			return err
		}

		asm := report.New(cfg.LatencyWarnMS)
		spinner := diag.NewSpinner(os.Stdout, cfg.SpinnerInterval)
		seq := diag.NewSequencer(logger, diag.DefaultSteps(cfg), spinner)
		seq.OnResult = func(r domain.LayerResult) {
			runlog.Event("▶ " + r.Layer.Description())
			runlog.Event(asm.StatusLine(r))
		}
		runner := diag.NewRunner(seq, eng, logger)

		// Ctrl-C cancels cooperatively between probes.
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		runlog.Event("===== New network diagnostic run =====")
		results, inf, err := runner.RunDiagnostics(ctx)
		if err != nil {
			runlog.Event("run cancelled: " + err.Error())
			return fmt.Errorf("diagnostic run cancelled after %d layer(s): %w", len(results), err)
		}

		for _, line := range asm.InferenceLines(inf) {
			runlog.Event(line)
		}

		fmt.Println(asm.Render(results, inf))
		fmt.Println("📝 Log saved to:", runlog.Path())
		return nil
	},
}

func newEngine(cfg config.Config) (*engine.Engine, error) {
	rules, err := engine.LoadRules(cfg.RulesPath)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}
	return engine.New(rules), nil
}
