package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List known SPRAL versions",
	Long:  `List the SPRAL versions with known sources and the host platform details.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	m, err := newManager()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	plat := m.Host()
	fmt.Fprintf(out, "Platform: %s/%s\n\n", plat.OS, plat.Arch)

	fmt.Fprintf(out, "Versions:\n")
	for i, v := range m.Versions() {
		marker := " "
		if i == 0 {
			marker = "*"
		}
		fmt.Fprintf(out, "  %s %s\n", marker, v)
	}
	fmt.Fprintf(out, "\n* = default version\n")

	fmt.Fprintf(out, "\nSystem package tools: %v\n", plat.Available)

	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
