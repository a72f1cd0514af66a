package main

import (
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/stmtdiag/pkg/cli"
)

var listFlags struct {
	format string
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List statement diagnostics requests",
	Long: `List every request that has not expired, plus completed requests
regardless of expiry. Cancelled requests are not listed.

Examples:
  stmtdiag list
  stmtdiag list --format json
  stmtdiag list --format csv > requests.csv`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listFlags.format, "format", "f", "text", "output format (text, json, csv)")
}

func runList(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(listFlags.format)
	if err != nil {
		return err
	}

	s, err := openSession(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.Close()

	requests, err := s.coord.List(cmd.Context())
	if err != nil {
		return cli.NewCommandError("list", err)
	}

	list := cli.RequestList{Requests: requests, Now: time.Now()}
	return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), list)
}
