package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fonda/pkg/envfile"
	"github.com/matzehuels/fonda/pkg/errors"
	"github.com/matzehuels/fonda/pkg/platform"
)

// validateCommand creates the validate command. It checks the environment
// file against the schema and classifies every entry for every platform.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the environment file without creating anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.envFile()
			if err != nil {
				return err
			}
			format, err := envfile.FormatOf(path)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
			}

			result, err := envfile.Validate(data, format)
			if err != nil {
				return err
			}
			if !result.Valid {
				for _, issue := range result.Issues {
					printError("%s", issue)
				}
				return &envfile.SchemaError{Issues: result.Issues}
			}

			doc, err := envfile.Parse(data, format)
			if err != nil {
				return err
			}
			env, err := doc.Environment()
			if err != nil {
				return err
			}

			printSuccess("%s is valid", path)
			for _, f := range doc.Fields {
				if f.IsList {
					printKeyValue(f.Key, plural(len(f.Items), "entry"))
				} else {
					printKeyValue(f.Key, f.Scalar)
				}
			}

			printNewline()
			fmt.Println(StyleTitle.Render("Requirements per platform"))
			for _, host := range []platform.Tag{platform.Linux, platform.MacOS, platform.Windows} {
				m, err := c.resolveManifest(cmd.Context(), env, host)
				if err != nil {
					return err
				}
				printDetail("%-6s %s", host, plural(len(m), "requirement"))
			}
			return nil
		},
	}
}
