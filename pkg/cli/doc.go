/*
Package cli provides command-line helpers for the advent command.

Output Formatting:

Solve results and history records can be printed as text, JSON or CSV:

	formatter := cli.NewFormatter(cli.FormatText)
	if err := formatter.FormatTo(os.Stdout, results); err != nil {
		return err
	}

Text output prints one "label: value" line per answer.

Progress Reporting:

"solve all" reports progress across puzzles on stderr:

	progress := cli.NewProgressReporter(os.Stderr)
	progress.Start(int64(len(names)))
	for i, name := range names {
		// Solve
		progress.Update(int64(i + 1))
	}
	progress.Finish()

Signal Handling:

Watch mode stops cleanly on SIGINT/SIGTERM:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()

Exit Codes:

ExitCode maps an error returned by a command to the process exit status.
*/
package cli
