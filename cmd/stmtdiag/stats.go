package main

import (
	"github.com/spf13/cobra"

	"mercator-hq/stmtdiag/pkg/cli"
)

var statsFlags struct {
	format string
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Count requests by state",
	Long: `Count stored requests as pending, completed or expired. Cancelled
requests count as expired.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringVarP(&statsFlags.format, "format", "f", "text", "output format (text, json, csv)")
}

func runStats(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(statsFlags.format)
	if err != nil {
		return err
	}

	s, err := openSession(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.Close()

	stats, err := s.coord.Stats(cmd.Context())
	if err != nil {
		return cli.NewCommandError("stats", err)
	}

	return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), stats)
}
