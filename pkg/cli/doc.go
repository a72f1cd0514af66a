/*
Package cli provides command-line interface utilities for stmtdiag.

Output Formatting:

Request lists and stats can be rendered as an aligned table, JSON or CSV:

	format, err := cli.ParseOutputFormat(flagValue)
	if err != nil {
		return err
	}
	list := cli.RequestList{Requests: requests, Now: time.Now()}
	if err := cli.NewFormatter(format).FormatTo(os.Stdout, list); err != nil {
		return err
	}

Errors:

ExitCode maps coordinator errors to distinct exit codes (3 conflict,
4 not found, 5 integrity) so scripts can branch on the outcome.

Signal Handling:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()
*/
package cli
