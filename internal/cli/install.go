package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fonda/pkg/deps"
	"github.com/matzehuels/fonda/pkg/platform"
)

// installCommand creates the install command (legacy: fonda -r).
func (c *CLI) installCommand() *cobra.Command {
	var envName string

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install an existing requirements file into an environment",
		Long: `Install the requirements file into an existing virtual environment without
resolving the environment file again.

The environment defaults to the "name" key of the environment file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInstall(cmd.Context(), envName)
		},
	}

	cmd.Flags().StringVarP(&envName, "env", "e", "", "environment to install into (default: name from the environment file)")
	return cmd
}

func (c *CLI) runInstall(ctx context.Context, envName string) error {
	if envName == "" {
		env, _, err := c.loadEnvironment()
		if err != nil {
			return err
		}
		envName = env.Name
	}

	path := c.settings().Requirements
	m, err := deps.ReadFile(path)
	if err != nil {
		return err
	}
	local, err := platform.Current()
	if err != nil {
		return err
	}

	printInfo("Installing %s from %s into %s", StyleNumber.Render(plural(len(m), "requirement")),
		path, StyleHighlight.Render(envName))
	report, err := c.newOrchestrator(local).InstallOnly(ctx, envName, path)
	if err != nil {
		return err
	}
	printSuccess("Installed with %s", report.Creator)
	return nil
}
