package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fonda/pkg/deps"
)

// writeCommand creates the write command (legacy: fonda -w).
func (c *CLI) writeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "write",
		Short: "Only write the requirements file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWrite(cmd.Context())
		},
	}
}

func (c *CLI) runWrite(ctx context.Context) error {
	env, path, err := c.loadEnvironment()
	if err != nil {
		return err
	}
	host, err := c.host()
	if err != nil {
		return err
	}
	m, err := c.resolveManifest(ctx, env, host)
	if err != nil {
		return err
	}

	out := c.settings().Requirements
	if err := deps.WriteFile(out, m); err != nil {
		return err
	}
	printSuccess("Wrote %s for %s from %s", StyleNumber.Render(plural(len(m), "requirement")), host, path)
	printFile(out)
	return nil
}
