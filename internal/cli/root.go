package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"netdiag/internal/config"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "netdiag",
	Short: "Layered network-health diagnostic",
	Long: `netdiag probes connectivity at each of the seven OSI layers
(interface status, gateway, public IP, TCP, HTTP session, TLS, DNS),
then infers the likely root cause from the pass/fail pattern.

Quick start:
  netdiag run
  netdiag run --target example.org --timeout 3
  netdiag rules
  netdiag serve --addr :8080`,
	Version: version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("target", "", "target hostname for TCP/HTTP/TLS/DNS probes")
	pf.String("probe-ip", "", "public IP for the network-layer ping")
	pf.Int("port", 0, "TCP connect port")
	pf.Int("timeout", 0, "per-probe timeout in seconds")
	pf.String("log-dir", "", "log directory")
	pf.String("rules", "", "YAML rule pack replacing the built-in root-cause table")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(rulesCmd)
}

// loadConfig resolves configuration: defaults, then environment, then
// explicit flags.
func loadConfig(cmd *cobra.Command) config.Config {
	cfg := config.FromEnv()

	f := cmd.Flags()
	if v, _ := f.GetString("target"); v != "" {
		cfg.TargetHost = v
	}
	if v, _ := f.GetString("probe-ip"); v != "" {
		cfg.PublicProbeIP = v
	}
	if v, _ := f.GetInt("port"); v > 0 {
		cfg.TCPPort = v
	}
	if v, _ := f.GetInt("timeout"); v > 0 {
		cfg.Timeout = time.Duration(v) * time.Second
	}
	if v, _ := f.GetString("log-dir"); v != "" {
		cfg.LogDir = v
	}
	if v, _ := f.GetString("rules"); v != "" {
		cfg.RulesPath = v
	}
	return cfg
}
