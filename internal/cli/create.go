package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fonda/pkg/orchestrator"
	"github.com/matzehuels/fonda/pkg/platform"
)

// createCommand creates the create command, the default action.
func (c *CLI) createCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Write requirements.txt, create the environment and install into it",
		Long: `Resolve the environment file for this platform, write the requirements file,
create a virtual environment named after the file's "name" key and install the
requirements into it.

The environment is created with uv when available. If uv is missing or fails,
python -m venv is used instead; requirements are then installed with the
environment's own pip.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCreate(cmd.Context())
		},
	}
}

func (c *CLI) runCreate(ctx context.Context) error {
	env, path, err := c.loadEnvironment()
	if err != nil {
		return err
	}
	target, err := c.host()
	if err != nil {
		return err
	}
	local, err := platform.Current()
	if err != nil {
		return err
	}
	if target != local {
		printWarning("Resolving for %s but creating the environment on %s", target, local)
	}

	m, err := c.resolveManifest(ctx, env, target)
	if err != nil {
		return err
	}
	printInfo("Resolved %s from %s", StyleNumber.Render(plural(len(m), "requirement")), path)

	o := c.newOrchestrator(local)
	report, err := o.Run(ctx, env, m)
	if report != nil {
		c.Logger.Debug("orchestration finished", "final", report.Final, "trace", report.Trace,
			"duration", report.Duration)
	}
	if err != nil {
		return err
	}

	printSuccess("Created environment %s with %s", StyleHighlight.Render(env.Name), report.Creator)
	printFile(o.RequirementsPath())
	printNewline()
	printNextStep("Activate it with", orchestrator.ActivationCommand(local, env.Name))
	return nil
}
