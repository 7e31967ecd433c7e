package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// resolveCommand creates the resolve command, which prints the manifest
// instead of writing it.
func (c *CLI) resolveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve",
		Short: "Print the resolved requirements to stdout",
		Example: `  fonda resolve
  fonda resolve --platform win -f environment.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, _, err := c.loadEnvironment()
			if err != nil {
				return err
			}
			host, err := c.host()
			if err != nil {
				return err
			}
			m, err := c.resolveManifest(cmd.Context(), env, host)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), m.Render())
			return err
		},
	}
}
