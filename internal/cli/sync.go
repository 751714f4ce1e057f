package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Update the dependency registry",
	Long:  `Clone the configured registry_url and copy its deps/ tree into the deps path.`,
	Args:  cobra.NoArgs,
	RunE:  runSync,
}

func runSync(cmd *cobra.Command, args []string) error {
	m, err := newManager()
	if err != nil {
		return err
	}

	n, err := m.Sync(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Synced %d files into %s\n", n, config.DepsPath)
	return nil
}
