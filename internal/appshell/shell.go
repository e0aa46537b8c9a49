// Package appshell adapts a run function to a process: arguments, standard
// streams, signals and the exit status.
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// ExitInterrupted is the status of a run cut short by SIGINT or SIGTERM.
const ExitInterrupted = 130

// RunFunc is the signature of app.RunContext.
type RunFunc func(ctx context.Context, argv []string, stdout, stderr io.Writer) int

// Main runs run with the process arguments and exits with its code.
// SIGINT and SIGTERM cancel the context.
func Main(run RunFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := ExitCode(ctx, run(ctx, os.Args[1:], os.Stdout, os.Stderr))
	stop()
	os.Exit(code)
}

// ExitCode reports a run that succeeded after ctx was canceled as
// interrupted; other codes pass through.
func ExitCode(ctx context.Context, code int) int {
	if ctx.Err() != nil && code == 0 {
		return ExitInterrupted
	}
	return code
}
