// Package cmd implements the cellarlens command line interface.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/cellarlens/cellarlens/pkg/logging"
)

var (
	verbose   bool
	logFormat string

	// Version information set by main.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// Date is the build date.
	Date = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "cellarlens",
	Short: "Identify wines from a photo of bottles",
	Long: `Cellarlens takes a photo of wine bottles, reads the labels with a
vision model, reconciles each bottle against a public wine catalog, and
returns a ranked list with prices and ratings.

Run "cellarlens serve" to expose the pipeline as an HTTP API, or
"cellarlens scan" to process a single photo from the command line.`,
	PersistentPreRun: setup,
}

// Execute runs the root command with signal-aware context.
func Execute(version, commit, date string) {
	Version = version
	Commit = commit
	Date = date

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: console or json")
}

// setup loads .env and configures logging before any command runs.
func setup(_ *cobra.Command, _ []string) {
	// Missing .env is fine, the environment may be set elsewhere.
	_ = godotenv.Load()

	if verbose {
		_ = os.Setenv("LOG_LEVEL", "debug")
	}
	if logFormat != "" {
		_ = os.Setenv("LOG_FORMAT", logFormat)
	}
	logging.Setup()
}
