package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tnguyen21/netscope/internal/theme"
)

func newThemesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List available themes",
		Long: `List the built-in theme and the theme files found in the theme
directory. The configured theme is marked with *.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			for _, name := range theme.Available(cfg.ThemeDir) {
				mark := " "
				if name == cfg.Theme {
					mark = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", mark, name)
			}
			return nil
		},
	}
}
