// Package appshell wires a command's Run function to the process: signals,
// argv, standard streams and the exit code.
package appshell

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
)

// ExitPanic is returned when run panics.
const ExitPanic = 70

func Main(run func(context.Context, []string, io.Writer, io.Writer) int) {
	os.Exit(Exec(run, os.Args[1:], os.Stdout, os.Stderr))
}

// Exec is Main without os.Exit, for tests.
func Exec(run func(context.Context, []string, io.Writer, io.Writer) int, argv []string, stdout, stderr io.Writer) (code int) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	defer func() {
		if r := recover(); r != nil {
			_, _ = fmt.Fprintf(stderr, "panic: %v\n%s\n", r, debug.Stack())
			code = ExitPanic
		}
	}()

	if len(argv) == 0 {
		argv = []string{"-h"}
	}

	code = run(ctx, argv, stdout, stderr)
	// Normalize cancellation exit code.
	if ctx.Err() != nil && code == 0 {
		code = 130
	}
	return code
}
