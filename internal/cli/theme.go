package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmap/pkg/pipeline"
	"github.com/matzehuels/mindmap/pkg/theme"
)

// themeCommand prints the effective theme as TOML.
func (c *CLI) themeCommand() *cobra.Command {
	var opts pipeline.Options

	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Print the effective theme as TOML",
		Long: `Print the effective theme as TOML.

Without flags this is the built-in default; save it, edit what you need and
pass it back with --theme. With --theme the file is validated and printed
merged over the defaults.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			th, err := opts.ResolveTheme()
			if err != nil {
				return err
			}
			return theme.Encode(cmd.OutOrStdout(), th)
		},
	}

	cmd.Flags().StringVar(&opts.ThemePath, "theme", "", "theme TOML file to validate and merge")
	cmd.Flags().StringVar(&opts.LineStyle, "line-style", "", "override the connector style")
	return cmd
}
