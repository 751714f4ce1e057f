package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show what the recipe would do",
	Long: `Resolve settings and options and print the normalized options, the
dependency and tool requirements, the Meson project options and the
package metadata. Nothing is fetched, built or written.

Examples:
  spralpkg inspect
  spralpkg inspect -o shared=True -s compiler=clang
  spralpkg inspect -o with_64bit_int=True -s os=Windows -s compiler=msvc`,
	Args: cobra.NoArgs,
	RunE: runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	m, err := newManager()
	if err != nil {
		return err
	}

	in, err := m.Inspect(cmd.Context())
	if err != nil {
		return err
	}

	out, err := yaml.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshaling inspection: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
