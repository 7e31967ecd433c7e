package orchestrator

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/fonda/pkg/platform"
)

// Backend creates virtual environments and installs requirements into them.
// A nil error means the underlying tool exited with status zero.
type Backend interface {
	// Name identifies the back-end in logs and reports.
	Name() string

	// Create creates the environment directory name. pythonVersion is an
	// optional interpreter constraint.
	Create(ctx context.Context, name, pythonVersion string) error

	// Install installs the requirements file at requirementsPath into the
	// environment envName.
	Install(ctx context.Context, envName, requirementsPath string) error
}

// UV drives the uv tool. It can pin the interpreter version.
type UV struct {
	Binary string // Executable name or path; defaults to "uv"
	Runner Runner // Defaults to ExecRunner{}
}

func (b *UV) Name() string {
	if b.Binary == "" {
		return "uv"
	}
	return b.Binary
}

func (b *UV) Create(ctx context.Context, name, pythonVersion string) error {
	args := []string{"venv", name}
	if pythonVersion != "" {
		args = append(args, "--python", pythonVersion)
	}
	_, err := run(ctx, runnerOrDefault(b.Runner), b.Name(), args...)
	return err
}

func (b *UV) Install(ctx context.Context, envName, requirementsPath string) error {
	_, err := run(ctx, runnerOrDefault(b.Runner), b.Name(),
		"pip", "install", "--python", envName, "-r", requirementsPath)
	return err
}

// Venv drives the interpreter's built-in venv module and installs with the
// environment's own pip. It cannot pin the interpreter version.
type Venv struct {
	Binary string       // Interpreter used to create environments; defaults to "python"
	Host   platform.Tag // Selects the interpreter layout inside the environment
	Runner Runner       // Defaults to ExecRunner{}
	Logger *log.Logger  // Optional
}

func (b *Venv) Name() string {
	if b.Binary == "" {
		return "python"
	}
	return b.Binary
}

func (b *Venv) Create(ctx context.Context, name, pythonVersion string) error {
	if pythonVersion != "" && b.Logger != nil {
		b.Logger.Warn("venv cannot select an interpreter version, using the default one",
			"python_version", pythonVersion, "interpreter", b.Name())
	}
	_, err := run(ctx, runnerOrDefault(b.Runner), b.Name(), "-m", "venv", name)
	return err
}

func (b *Venv) Install(ctx context.Context, envName, requirementsPath string) error {
	_, err := run(ctx, runnerOrDefault(b.Runner), InterpreterPath(b.Host, envName),
		"-m", "pip", "install", "-r", requirementsPath)
	return err
}

// InterpreterPath returns the path of the python executable inside the
// environment envName for host.
func InterpreterPath(host platform.Tag, envName string) string {
	if host == platform.Windows {
		return envName + `\Scripts\python.exe`
	}
	return envName + "/bin/python"
}

// ActivationCommand returns the shell command that activates envName on
// host.
func ActivationCommand(host platform.Tag, envName string) string {
	if host == platform.Windows {
		return envName + `\Scripts\activate.bat`
	}
	return "source " + envName + "/bin/activate"
}

func runnerOrDefault(r Runner) Runner {
	if r == nil {
		return ExecRunner{}
	}
	return r
}
