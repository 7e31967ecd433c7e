// Package cli implements the fonda command-line interface.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/fonda/internal/config"
	"github.com/matzehuels/fonda/pkg/buildinfo"
	"github.com/matzehuels/fonda/pkg/observability"
	"github.com/matzehuels/fonda/pkg/orchestrator"
	"github.com/matzehuels/fonda/pkg/platform"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "fonda"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	RunID  string

	cfg  *config.Config
	opts globalOpts

	// Seams replaced by tests.
	backends    func(cfg *config.Config, host platform.Tag, logger *log.Logger) (fast, standard orchestrator.Backend)
	interactive func() bool
	pick        func(paths []string) (string, error)
}

// globalOpts holds the persistent flags shared by all commands.
type globalOpts struct {
	configPath   string // explicit config file
	file         string // environment document
	requirements string // manifest path
	platform     string // resolve for another platform
	fastTool     string
	standardTool string
	writeOnly    bool // legacy -w
	installOnly  bool // legacy -r
}

// New creates a new CLI instance. Every log line carries a short run id.
func New(w io.Writer, level log.Level) *CLI {
	id := uuid.NewString()[:8]
	return &CLI{
		Logger:      newLogger(w, level).With("run", id),
		RunID:       id,
		backends:    defaultBackends,
		interactive: interactive,
		pick:        pickEnvFile,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// Without a subcommand it creates the environment, as the create command does.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "fonda builds Python virtual environments from conda-style environment files",
		Long: `fonda reads an environment file (environment.yaml, environment.yml or
environment.toml), resolves its conda and pip dependencies for the current
platform into requirements.txt, creates a virtual environment with uv
(falling back to python -m venv) and installs the requirements into it.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Args:              cobra.NoArgs,
		PersistentPreRunE: c.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case c.opts.writeOnly && c.opts.installOnly:
				return errConflictingModes
			case c.opts.writeOnly:
				return c.runWrite(cmd.Context())
			case c.opts.installOnly:
				return c.runInstall(cmd.Context(), "")
			default:
				return c.runCreate(cmd.Context())
			}
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.opts.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/fonda/config.yaml)")
	pf.StringVarP(&c.opts.file, config.FlagName(config.KeyFile), "f", "", "environment file (default: search the working directory)")
	pf.StringVar(&c.opts.requirements, config.FlagName(config.KeyRequirements), "requirements.txt", "requirements file to write or install")
	pf.StringVar(&c.opts.platform, "platform", "", "resolve for this platform instead of the host: win, linux, osx")
	pf.StringVar(&c.opts.fastTool, config.FlagName(config.KeyFastTool), "uv", "fast environment tool")
	pf.StringVar(&c.opts.standardTool, config.FlagName(config.KeyStandardTool), "python", "interpreter used for python -m venv")

	root.Flags().BoolVarP(&c.opts.writeOnly, "write", "w", false, "only write the requirements file (same as 'fonda write')")
	root.Flags().BoolVarP(&c.opts.installOnly, "requirements-only", "r", false, "only install the requirements file (same as 'fonda install')")

	// Register all subcommands
	root.AddCommand(c.createCommand())
	root.AddCommand(c.writeCommand())
	root.AddCommand(c.installCommand())
	root.AddCommand(c.resolveCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads configuration and registers the progress hooks before any
// command runs.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.opts.configPath, cmd.Flags())
	if err != nil {
		return err
	}
	c.cfg = cfg
	if cfg.Source != "" {
		c.Logger.Debug("loaded config", "path", cfg.Source)
	}

	h := newHooks(cmd.Context(), c.Logger)
	observability.SetOrchestratorHooks(h)
	observability.SetResolveHooks(h)
	return nil
}

// settings returns the loaded configuration, falling back to defaults when
// setup has not run.
func (c *CLI) settings() *config.Config {
	if c.cfg == nil {
		c.cfg = &config.Config{
			File:         c.opts.file,
			Requirements: c.opts.requirements,
			FastTool:     c.opts.fastTool,
			StandardTool: c.opts.standardTool,
		}
	}
	return c.cfg
}
