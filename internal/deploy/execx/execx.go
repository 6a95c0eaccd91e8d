// Package execx runs external commands for the deploy CLI behind a small
// runner abstraction so command sequencing can be tested without the tools
// on PATH.
package execx

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Result holds the outcome of a command run.
type Result struct {
	Code int
	Err  error
}

// Runner executes external commands.
type Runner interface {
	// Run executes a command streaming its output to the host terminal.
	Run(ctx context.Context, name string, args ...string) Result

	// Capture executes a command and returns its stdout.
	Capture(ctx context.Context, name string, args ...string) (string, Result)
}

// System is the Runner used in production. It inherits the host's
// stdin/stdout/stderr.
type System struct {
	// Dir is the working directory for every command. Empty means the
	// current directory.
	Dir string
}

var _ Runner = (*System)(nil)

func (s *System) Run(ctx context.Context, name string, args ...string) Result {
	debugEcho(name, args)
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = s.Dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return resultOf(ctx, cmd.Run())
}

func (s *System) Capture(ctx context.Context, name string, args ...string) (string, Result) {
	debugEcho(name, args)
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = s.Dir
	out, err := cmd.Output()
	return strings.TrimSpace(string(out)), resultOf(ctx, err)
}

func resultOf(ctx context.Context, err error) Result {
	if err == nil {
		return Result{}
	}
	code := 1
	if ee, ok := err.(*exec.ExitError); ok {
		code = ee.ExitCode()
	} else if ctx.Err() == context.DeadlineExceeded {
		code = 124
	}
	return Result{Code: code, Err: err}
}

func debugEcho(name string, args []string) {
	if os.Getenv("KANAIRY_DEBUG") == "1" {
		fmt.Fprintf(os.Stderr, "+ %s\n", strings.Join(append([]string{name}, args...), " "))
	}
}
