package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"quickswitch/internal/shell"
)

// NewInitCmd creates the init command, which prints the shell
// integration script for the named shell.
func NewInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "init <shell>",
		Short:     "Print the shell integration script",
		Long:      "Prints the wrapper functions (qs, qshs) for the given shell.\nSupported: " + strings.Join(shell.Supported, ", "),
		Args:      cobra.ExactArgs(1),
		ValidArgs: shell.Supported,
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := shell.InitScript(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), script)
			return nil
		},
	}
}
