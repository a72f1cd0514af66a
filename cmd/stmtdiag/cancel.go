package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mercator-hq/stmtdiag/pkg/cli"
)

var cancelCmd = &cobra.Command{
	Use:   "cancel ID",
	Short: "Cancel a pending statement diagnostics request",
	Long: `Cancel a pending request by expiring it. Fails with exit code 4 if no
pending request has the ID, including completed, expired and already
cancelled requests.`,
	Args: cobra.ExactArgs(1),
	RunE: runCancel,
}

func init() {
	rootCmd.AddCommand(cancelCmd)
}

func runCancel(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := s.coord.Cancel(cmd.Context(), args[0])
	if err != nil {
		return cli.NewCommandError("cancel", err)
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Cancelled request %s\n", id)
	return err
}
