package orchestrator

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/fonda/pkg/deps"
	"github.com/matzehuels/fonda/pkg/errors"
	"github.com/matzehuels/fonda/pkg/observability"
)

// DefaultRequirementsPath is where Run writes the manifest before installing.
const DefaultRequirementsPath = "requirements.txt"

// Options configures an Orchestrator.
type Options struct {
	// RequirementsPath is the manifest file handed to the installer.
	RequirementsPath string

	// WriteManifest persists the manifest. Defaults to deps.WriteFile.
	WriteManifest func(path string, m deps.Manifest) error

	// Logger receives progress and fallback messages. Defaults to a
	// discarding logger.
	Logger *log.Logger
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.RequirementsPath == "" {
		opts.RequirementsPath = DefaultRequirementsPath
	}
	if opts.WriteManifest == nil {
		opts.WriteManifest = deps.WriteFile
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return opts
}

// Attempt records one back-end invocation.
type Attempt struct {
	Backend string
	Action  string // "create" or "install"
	Err     error
}

// Report describes a completed walk of the state machine.
type Report struct {
	Final    State     // Terminal state reached, or the state a cancelled walk stopped in
	Creator  string    // Back-end that created the environment; empty if none did
	Trace    []State   // Every state visited, in order, starting with Start
	Attempts []Attempt // Every back-end invocation, in order
	Duration time.Duration
}

// Orchestrator creates an environment with a fast back-end, falling back
// once to a standard back-end, and installs a manifest into it.
type Orchestrator struct {
	fast     Backend
	standard Backend
	opts     Options
}

// New returns an Orchestrator that tries fast before standard.
func New(fast, standard Backend, opts Options) *Orchestrator {
	return &Orchestrator{fast: fast, standard: standard, opts: opts.WithDefaults()}
}

// Run creates env.Name and installs m into it.
//
// The returned report is non-nil whenever the walk started. The error is
// nil only when the walk reached Done. A cancelled context stops the walk
// once the running child has exited and Run returns ctx.Err().
func (o *Orchestrator) Run(ctx context.Context, env deps.Environment, m deps.Manifest) (*Report, error) {
	if err := errors.ValidateEnvName(env.Name); err != nil {
		return nil, err
	}

	hooks := observability.Orchestrator()
	logger := o.opts.Logger.With("env", env.Name)
	start := time.Now()

	report := &Report{Trace: []State{Start}}
	var creator Backend
	state := Start

	for !state.Terminal() {
		var err error
		switch state {
		case CreatingFast:
			err = o.create(ctx, o.fast, env, report)
			if err == nil {
				creator = o.fast
			} else if ctx.Err() == nil {
				logger.Warn("fast tool failed, falling back", "tool", o.fast.Name(),
					"next", o.standard.Name(), "err", err)
			}
		case CreatingStandard:
			err = o.create(ctx, o.standard, env, report)
			if err == nil {
				creator = o.standard
			}
		case Installing:
			err = o.install(ctx, creator, env.Name, m, report)
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			report.Final = state
			report.Duration = time.Since(start)
			logger.Debug("cancelled", "state", state)
			return report, ctxErr
		}

		next := transition(state, outcomeOf(err))
		hooks.OnTransition(ctx, state.String(), next.String())
		logger.Debug("transition", "from", state, "to", next)
		report.Trace = append(report.Trace, next)
		state = next

		switch state {
		case Failed:
			return o.finish(report, creator, start), fmt.Errorf("create environment %q: %w", env.Name, err)
		case InstallFailed:
			return o.finish(report, creator, start), fmt.Errorf("install into %q: %w", env.Name, err)
		}
	}

	return o.finish(report, creator, start), nil
}

// InstallOnly installs an existing requirements file into envName, using
// the fast back-end and falling back to the standard one on failure.
func (o *Orchestrator) InstallOnly(ctx context.Context, envName, path string) (*Report, error) {
	if err := errors.ValidateEnvName(envName); err != nil {
		return nil, err
	}

	logger := o.opts.Logger.With("env", envName)
	start := time.Now()
	report := &Report{Trace: []State{EnvReady, Installing}}

	var err error
	for i, b := range []Backend{o.fast, o.standard} {
		err = b.Install(ctx, envName, path)
		report.Attempts = append(report.Attempts, Attempt{Backend: b.Name(), Action: "install", Err: err})
		if ctxErr := ctx.Err(); ctxErr != nil {
			report.Final = Installing
			report.Duration = time.Since(start)
			return report, ctxErr
		}
		if err == nil {
			report.Creator = b.Name()
			break
		}
		if i == 0 {
			logger.Warn("fast tool failed, falling back", "tool", b.Name(), "next", o.standard.Name(), "err", err)
		}
	}

	report.Duration = time.Since(start)
	if err != nil {
		report.Final = InstallFailed
		report.Trace = append(report.Trace, InstallFailed)
		return report, fmt.Errorf("install into %q: %w", envName, err)
	}
	report.Final = Done
	report.Trace = append(report.Trace, Done)
	return report, nil
}

// RequirementsPath returns the manifest path Run writes to.
func (o *Orchestrator) RequirementsPath() string {
	return o.opts.RequirementsPath
}

func (o *Orchestrator) create(ctx context.Context, b Backend, env deps.Environment, r *Report) error {
	o.opts.Logger.Info("creating environment", "env", env.Name, "tool", b.Name())
	err := b.Create(ctx, env.Name, env.PythonVersion)
	r.Attempts = append(r.Attempts, Attempt{Backend: b.Name(), Action: "create", Err: err})
	return err
}

func (o *Orchestrator) install(ctx context.Context, b Backend, envName string, m deps.Manifest, r *Report) error {
	if err := o.opts.WriteManifest(o.opts.RequirementsPath, m); err != nil {
		return err
	}
	o.opts.Logger.Info("installing requirements", "env", envName, "tool", b.Name(),
		"file", o.opts.RequirementsPath, "entries", len(m))
	err := b.Install(ctx, envName, o.opts.RequirementsPath)
	r.Attempts = append(r.Attempts, Attempt{Backend: b.Name(), Action: "install", Err: err})
	return err
}

func (o *Orchestrator) finish(r *Report, creator Backend, start time.Time) *Report {
	r.Final = r.Trace[len(r.Trace)-1]
	if creator != nil {
		r.Creator = creator.Name()
	}
	r.Duration = time.Since(start)
	return r
}
