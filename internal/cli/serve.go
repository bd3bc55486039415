package cli

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"netdiag/internal/diag"
	"netdiag/internal/httpapi"
	"netdiag/internal/logging"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve diagnostics over HTTP",
	Long: `Serve exposes on-demand diagnostics as a small JSON API:

  POST /api/diagnostics/run   run a pass and return the report
  GET  /api/diagnostics/last  last completed report
  GET  /metrics               Prometheus metrics
  GET  /healthz`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig(cmd)
		if v, _ := cmd.Flags().GetString("addr"); v != "" {
			cfg.Addr = v
		}

		logger, err := logging.NewLogger(cfg.LogDir)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()

		eng, err := newEngine(cfg)
		if err != nil {
			return err
		}

		// No spinner in serve mode; there is no terminal to animate.
		seq := diag.NewSequencer(logger, diag.DefaultSteps(cfg), nil)
		runner := diag.NewRunner(seq, eng, logger)

		srv := httpapi.NewServer(logger, runner, 10*time.Second)
		logger.Info("api_listen", zap.String("addr", cfg.Addr))
		return http.ListenAndServe(cfg.Addr, srv.Router())
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "bind address (default 127.0.0.1:8080)")
}
