// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"mfdb/internal/cli"
	"mfdb/internal/writers"
)

// RunContext runs the mfdb command line and returns the exit code.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)

	root := cli.NewRootCommand()
	root.SetArgs(argv)
	root.SetOut(outw)
	root.SetErr(stderr)

	err := root.ExecuteContext(parent)
	if e := writers.IgnoreBrokenPipe(outw.Flush()); e != nil {
		_, _ = fmt.Fprintln(stderr, "mfdb:", e)
		return cli.ExitIO
	}
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "mfdb:", err)
		return cli.GetExitCode(err)
	}
	return cli.ExitSuccess
}

// Run is RunContext with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
