package orchestrator

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"
	"time"

	"github.com/matzehuels/fonda/pkg/errors"
	"github.com/matzehuels/fonda/pkg/observability"
)

// Result is the outcome of an external command that ran to completion.
type Result struct {
	ExitCode int
	Output   []byte // Combined stdout and stderr
}

// Runner executes external commands.
//
// Run returns a nil error whenever the process ran, whatever its exit code.
// A missing executable is reported as a *ToolError with code
// TOOL_NOT_FOUND.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// ExecRunner runs commands with os/exec, blocking until they exit.
// Cancelling the context kills the child.
type ExecRunner struct {
	Dir string   // Working directory; empty means the current one
	Env []string // Environment; nil means the current process environment
}

// Run implements Runner.
func (r ExecRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir
	cmd.Env = r.Env

	out, err := cmd.CombinedOutput()
	if err == nil {
		return Result{Output: out}, nil
	}

	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		return Result{ExitCode: exitErr.ExitCode(), Output: out}, nil
	}
	if stderrors.Is(err, exec.ErrNotFound) || stderrors.Is(err, fs.ErrNotExist) {
		return Result{ExitCode: -1}, &ToolError{
			Code:     errors.ErrCodeToolNotFound,
			Command:  append([]string{name}, args...),
			ExitCode: -1,
			Err:      err,
		}
	}
	return Result{ExitCode: -1, Output: out}, err
}

// ToolError reports an external tool that was missing or exited non-zero.
type ToolError struct {
	Code     errors.Code // TOOL_NOT_FOUND or NON_ZERO_EXIT
	Command  []string    // Executable followed by its arguments
	ExitCode int         // -1 if the tool never started
	Output   string      // Combined output of the child, verbatim
	Err      error       // Underlying cause (optional)
}

// Error implements the error interface.
func (e *ToolError) Error() string {
	switch {
	case e.Code == errors.ErrCodeNonZeroExit:
		return fmt.Sprintf("%s: %s: exit status %d", e.Code, e.CommandLine(), e.ExitCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Code, e.CommandLine(), e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.CommandLine())
	}
}

// Unwrap exposes the code as an *errors.Error for errors.Is checks.
func (e *ToolError) Unwrap() error {
	if e.Code == errors.ErrCodeNonZeroExit {
		return errors.Wrap(e.Code, e.Err, "%s exited with status %d", e.CommandLine(), e.ExitCode)
	}
	return errors.Wrap(e.Code, e.Err, "%s: %s not found", e.CommandLine(), e.tool())
}

func (e *ToolError) tool() string {
	if len(e.Command) == 0 {
		return "tool"
	}
	return e.Command[0]
}

// CommandLine returns the command as a single space-separated string.
func (e *ToolError) CommandLine() string {
	return strings.Join(e.Command, " ")
}

// run executes one command through r and converts a non-zero exit into a
// *ToolError. Hooks observe every launch.
func run(ctx context.Context, r Runner, name string, args ...string) (Result, error) {
	hooks := observability.Orchestrator()
	hooks.OnCommandStart(ctx, name, args)
	start := time.Now()

	res, err := r.Run(ctx, name, args...)
	if err == nil && res.ExitCode != 0 {
		err = &ToolError{
			Code:     errors.ErrCodeNonZeroExit,
			Command:  append([]string{name}, args...),
			ExitCode: res.ExitCode,
			Output:   string(res.Output),
		}
	}

	hooks.OnCommandComplete(ctx, name, res.ExitCode, time.Since(start), err)
	return res, err
}
