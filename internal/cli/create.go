package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Build and package SPRAL",
	Long: `Run the whole recipe: fetch and patch the sources, generate
pkg-config files for the registry dependencies, build with Meson,
install into the package folder and write package_info.toml.

Examples:
  spralpkg create
  spralpkg create -o shared=True -o with_openmp=False
  spralpkg create -c tools.system.package_manager:mode=install`,
	Args: cobra.NoArgs,
	RunE: runCreate,
}

var sourceCmd = &cobra.Command{
	Use:   "source",
	Short: "Fetch and patch the SPRAL sources",
	Args:  cobra.NoArgs,
	RunE:  runSource,
}

func runCreate(cmd *cobra.Command, args []string) error {
	m, err := newManager()
	if err != nil {
		return err
	}

	st, err := m.Create(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Package: %s\n", st.Recipe.Ref())
	fmt.Fprintf(out, "Folder: %s\n", st.Recipe.Paths.Package)
	fmt.Fprintf(out, "Metadata: %s\n", st.MetadataFile)
	if sp := st.SystemPackages; sp != nil && len(sp.Packages) > 0 {
		fmt.Fprintf(out, "System packages: %v\n", sp.Packages)
	}
	return nil
}

func runSource(cmd *cobra.Command, args []string) error {
	m, err := newManager()
	if err != nil {
		return err
	}

	st, err := m.Source(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Sources: %s\n", st.Recipe.Paths.Source)
	return nil
}
