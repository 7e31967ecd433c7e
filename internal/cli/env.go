package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/fonda/internal/config"
	"github.com/matzehuels/fonda/pkg/deps"
	"github.com/matzehuels/fonda/pkg/envfile"
	"github.com/matzehuels/fonda/pkg/errors"
	"github.com/matzehuels/fonda/pkg/observability"
	"github.com/matzehuels/fonda/pkg/orchestrator"
	"github.com/matzehuels/fonda/pkg/platform"
)

// envFile returns the environment document to read: the configured one, or
// the default file in the working directory. When several default files
// exist the user picks one on a terminal; otherwise the first wins.
func (c *CLI) envFile() (string, error) {
	if f := c.settings().File; f != "" {
		return f, nil
	}
	paths := envfile.FindAll(".")
	if len(paths) <= 1 || !c.interactive() {
		if len(paths) > 1 {
			c.Logger.Warn("several environment files, pass --file to choose", "using", paths[0])
		}
		return envfile.Find(".")
	}

	path, err := c.pick(paths)
	if err != nil {
		return "", err
	}
	if path == "" {
		return "", errors.New(errors.ErrCodeInvalidInput, "no environment file selected")
	}
	return path, nil
}

// loadEnvironment locates and loads the environment document.
func (c *CLI) loadEnvironment() (deps.Environment, string, error) {
	path, err := c.envFile()
	if err != nil {
		return deps.Environment{}, "", err
	}
	env, err := envfile.LoadEnvironment(path)
	if err != nil {
		return deps.Environment{}, path, err
	}
	c.Logger.Debug("loaded environment", "file", path, "name", env.Name,
		"dependencies", len(env.Dependencies), "pip", len(env.Pip))
	return env, path, nil
}

// host returns the platform to resolve for: --platform when set, else the
// running host.
func (c *CLI) host() (platform.Tag, error) {
	if c.opts.platform != "" {
		return platform.Parse(c.opts.platform)
	}
	return platform.Current()
}

// resolveManifest resolves env for host, reporting through the resolve hooks.
func (c *CLI) resolveManifest(ctx context.Context, env deps.Environment, host platform.Tag) (deps.Manifest, error) {
	hooks := observability.Resolve()
	hooks.OnResolveStart(ctx, env.Name, host.String())
	start := time.Now()

	m, err := deps.Resolve(env, host, deps.Options{
		Logger: func(msg string, args ...any) { c.Logger.Debugf(msg, args...) },
	})

	hooks.OnResolveComplete(ctx, env.Name, host.String(), len(m), time.Since(start), err)
	return m, err
}

// newOrchestrator builds an orchestrator from the configured tools.
func (c *CLI) newOrchestrator(host platform.Tag) *orchestrator.Orchestrator {
	cfg := c.settings()
	fast, standard := c.backends(cfg, host, c.Logger)
	return orchestrator.New(fast, standard, orchestrator.Options{
		RequirementsPath: cfg.Requirements,
		Logger:           c.Logger,
	})
}

func defaultBackends(cfg *config.Config, host platform.Tag, logger *log.Logger) (orchestrator.Backend, orchestrator.Backend) {
	return &orchestrator.UV{Binary: cfg.FastTool},
		&orchestrator.Venv{Binary: cfg.StandardTool, Host: host, Logger: logger}
}
