package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alastai/grasch-lex/version"
)

func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Prints the version of grasch.",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), "grasch", version.Version)
			if version.GitHash != "" {
				fmt.Fprintln(cmd.OutOrStdout(), "Git:", version.GitHash)
			}
			if version.BuildDate != "" {
				fmt.Fprintln(cmd.OutOrStdout(), "Build date:", version.BuildDate)
			}
			return nil
		},
	}
}
