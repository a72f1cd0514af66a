package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mercator-hq/stmtdiag/pkg/cli"
	"mercator-hq/stmtdiag/pkg/diagnostics"
)

var createFlags struct {
	fingerprint         string
	samplingProbability float64
	minLatency          float64
	expiresAfter        float64
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a statement diagnostics request",
	Long: `Create a request to capture diagnostics for the next execution of a
statement fingerprint. Fails with exit code 3 if a request for the
fingerprint is already pending.

Optional parameters are left unset when zero:
  --sampling-probability  probability in (0, 1] that a qualifying execution is traced
  --min-latency           only trace executions slower than this many seconds
  --expires-after         expire the request after this many seconds

Examples:
  stmtdiag create --fingerprint "SELECT _ FROM t"
  stmtdiag create --fingerprint "SELECT _ FROM t" --min-latency 0.5 --expires-after 600`,
	Args: cobra.NoArgs,
	RunE: runCreate,
}

func init() {
	rootCmd.AddCommand(createCmd)

	createCmd.Flags().StringVar(&createFlags.fingerprint, "fingerprint", "", "statement fingerprint (required)")
	createCmd.Flags().Float64Var(&createFlags.samplingProbability, "sampling-probability", 0, "sampling probability")
	createCmd.Flags().Float64Var(&createFlags.minLatency, "min-latency", 0, "minimum execution latency in seconds")
	createCmd.Flags().Float64Var(&createFlags.expiresAfter, "expires-after", 0, "expiry in seconds from now")
	_ = createCmd.MarkFlagRequired("fingerprint")
}

func runCreate(cmd *cobra.Command, args []string) error {
	if err := validateCreateFlags(); err != nil {
		return err
	}

	s, err := openSession(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := s.coord.Create(cmd.Context(), diagnostics.CreateParams{
		Fingerprint:                createFlags.fingerprint,
		SamplingProbability:        createFlags.samplingProbability,
		MinExecutionLatencySeconds: createFlags.minLatency,
		ExpiresAfterSeconds:        createFlags.expiresAfter,
	})
	if err != nil {
		return cli.NewCommandError("create", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), id)
	return err
}

func validateCreateFlags() error {
	switch {
	case createFlags.fingerprint == "":
		return cli.NewConfigError("fingerprint", "must not be empty")
	case !(createFlags.samplingProbability >= 0 && createFlags.samplingProbability <= 1):
		return cli.NewConfigError("sampling-probability", "must be between 0 and 1")
	case !(createFlags.minLatency >= 0 && createFlags.minLatency <= diagnostics.MaxDurationSeconds):
		return cli.NewConfigError("min-latency", fmt.Sprintf("must be between 0 and %.0f", diagnostics.MaxDurationSeconds))
	case !(createFlags.expiresAfter >= 0 && createFlags.expiresAfter <= diagnostics.MaxDurationSeconds):
		return cli.NewConfigError("expires-after", fmt.Sprintf("must be between 0 and %.0f", diagnostics.MaxDurationSeconds))
	}
	return nil
}
