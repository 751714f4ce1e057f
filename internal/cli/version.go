package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arc-language/spralpkg"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "spralpkg version %s\n", spralpkg.Version)
		fmt.Fprintln(out, "SPRAL package builder")
		fmt.Fprintln(out, "https://github.com/arc-language/spralpkg")
	},
}
