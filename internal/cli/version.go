package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iamvenkatgiri/AccessAI/internal/buildinfo"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmdOut(cmd), buildinfo.String())
		},
	}
}
