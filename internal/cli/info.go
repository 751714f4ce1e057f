package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arc-language/spralpkg"
)

var infoCmd = &cobra.Command{
	Use:   "info [package-folder]",
	Short: "Show the metadata of a built package",
	Long:  `Display the package_info.toml of a package folder (default: the configured package path).`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	dir := config.PackagePath
	if len(args) == 1 {
		dir = args[0]
	}

	info, err := spralpkg.ReadPackageInfo(dir)
	if err != nil {
		return fmt.Errorf("reading package info: %w", err)
	}

	// Display info
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Package: %s\n", info.Ref())
	if info.Description != "" {
		fmt.Fprintf(out, "Description: %s\n", info.Description)
	}
	fmt.Fprintf(out, "License: %s\n", info.License)
	fmt.Fprintf(out, "pkg-config: %s\n", info.PkgConfig())
	fmt.Fprintf(out, "Libs: %s\n", strings.Join(info.Libs, " "))
	if len(info.SystemLibs) > 0 {
		fmt.Fprintf(out, "System libs: %s\n", strings.Join(info.SystemLibs, " "))
	}
	fmt.Fprintf(out, "Requires: %s\n", strings.Join(info.Requires, " "))
	for _, k := range sortedKeys(info.Options) {
		fmt.Fprintf(out, "Option %s: %s\n", k, info.Options[k])
	}

	return nil
}
