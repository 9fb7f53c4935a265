package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"quickswitch/internal/config"
)

// NewThemesCmd creates the themes command, which lists the available
// color themes.
func NewThemesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List available color themes",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListThemes() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}
