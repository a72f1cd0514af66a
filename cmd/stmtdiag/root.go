package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mercator-hq/stmtdiag/pkg/cli"
)

var (
	// Global flags
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "stmtdiag",
	Short: "stmtdiag - statement diagnostics request coordinator",
	Long: `stmtdiag coordinates statement diagnostics requests: it lists, creates
and cancels the requests that tell the capture subsystem which statement
fingerprints to trace.

A fingerprint can have at most one pending request. A request stops being
pending when a trace is captured (completed) or when it expires; cancelling
a request expires it immediately.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits with a code derived from the
// error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (defaults plus STMTDIAG_* environment when empty)")
}
