package orchestrator

import (
	"context"
	"strings"

	"github.com/matzehuels/fonda/pkg/errors"
)

// call records one back-end or runner invocation.
type call struct {
	backend string
	action  string
	args    []string
}

// fakeBackend returns scripted errors and records its calls in a shared log.
type fakeBackend struct {
	name       string
	createErr  error
	installErr error
	calls      *[]call
	onCreate   func()
}

func (f *fakeBackend) Name() string { return f.name }

func (f *fakeBackend) Create(_ context.Context, name, pythonVersion string) error {
	*f.calls = append(*f.calls, call{f.name, "create", []string{name, pythonVersion}})
	if f.onCreate != nil {
		f.onCreate()
	}
	return f.createErr
}

func (f *fakeBackend) Install(_ context.Context, envName, path string) error {
	*f.calls = append(*f.calls, call{f.name, "install", []string{envName, path}})
	return f.installErr
}

// fakeRunner answers commands by executable name.
type fakeRunner struct {
	results map[string]Result
	missing map[string]bool
	calls   [][]string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (Result, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if f.missing[name] {
		return Result{ExitCode: -1}, &ToolError{
			Code:     errors.ErrCodeToolNotFound,
			Command:  append([]string{name}, args...),
			ExitCode: -1,
		}
	}
	return f.results[name], nil
}

func (f *fakeRunner) commandLines() []string {
	lines := make([]string, len(f.calls))
	for i, c := range f.calls {
		lines[i] = strings.Join(c, " ")
	}
	return lines
}

func notFound(tool string) error {
	return &ToolError{Code: errors.ErrCodeToolNotFound, Command: []string{tool}, ExitCode: -1}
}

func exitStatus(tool string, code int, output string) error {
	return &ToolError{Code: errors.ErrCodeNonZeroExit, Command: []string{tool}, ExitCode: code, Output: output}
}
