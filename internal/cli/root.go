package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
	logFormat  string
)

var rootCmd = &cobra.Command{
	Use:   "experiment-tracker",
	Short: "Experiment participation lookup over the analytics warehouse",
	Long: `Experiment Tracker answers which experiments a user took part in, on which
days, with which variants, and reports the lifecycle of a single experiment.

Configuration is read from experiment-tracker.yaml (or --config) and
TRACKER_* environment variables, e.g. TRACKER_WAREHOUSE__DSN.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogger(cmd.ErrOrStderr(), logLevel, logFormat)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to configuration file (default experiment-tracker.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", getEnvOrDefault("TRACKER_LOG_LEVEL", "info"), "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", getEnvOrDefault("TRACKER_LOG_FORMAT", "text"), "log format: text or json")
}

func setupLogger(w io.Writer, level, format string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid --log-level %q", level)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	switch strings.ToLower(format) {
	case "text":
		handler = slog.NewTextHandler(w, opts)
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		return fmt.Errorf("invalid --log-format %q (must be text or json)", format)
	}

	slog.SetDefault(slog.New(handler))
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
