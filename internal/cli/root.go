// Package cli implements the spralpkg command line.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arc-language/spralpkg"
	"github.com/arc-language/spralpkg/pkg/core"
	"github.com/arc-language/spralpkg/pkg/logging"
	"github.com/arc-language/spralpkg/pkg/options"
)

var (
	cfgFile     string
	debug       bool
	logFormat   string
	version     string
	optionFlags []string
	settingFlag []string
	confFlags   []string
	config      *core.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "spralpkg",
	Short: "SPRAL package builder",
	Long: `spralpkg - SPRAL package builder

Builds the SPRAL sparse linear algebra library with Meson against
prebuilt metis, OpenBLAS and hwloc packages from a local registry,
and packages the result with its consumer metadata.`,
	Version:           spralpkg.Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initConfig,
}

// Execute executes the root command
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/spralpkg/config.yaml)")
	flags.BoolVar(&debug, "debug", false, "enable debug logging")
	flags.StringVar(&logFormat, "log-format", "", "log format: text or json")
	flags.StringVar(&version, "spral-version", "", "SPRAL version to build (default: newest known)")
	flags.StringArrayVarP(&optionFlags, "option", "o", nil, "recipe option name=value (repeatable)")
	flags.StringArrayVarP(&settingFlag, "setting", "s", nil, "setting key=value, e.g. compiler=clang (repeatable)")
	flags.StringArrayVarP(&confFlags, "conf", "c", nil, "conf key=value, e.g. tools.build:jobs=4 (repeatable)")

	// Add commands
	rootCmd.AddCommand(optionsCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(sourceCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig(cmd *cobra.Command, _ []string) error {
	var err error
	config, err = core.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Override config with flags
	if debug {
		config.Debug = true
	}
	if logFormat != "" {
		config.LogFormat = logFormat
	}
	if version != "" {
		config.Version = version
	}
	if err := mergeAssignments(config.Options, optionFlags); err != nil {
		return err
	}
	if err := mergeAssignments(config.Settings, settingFlag); err != nil {
		return err
	}
	if err := mergeAssignments(config.Conf, confFlags); err != nil {
		return err
	}

	logger := logging.SetDefault(config.LogFormat, "spralpkg", spralpkg.Version, config.Debug)
	cmd.SetContext(logging.WithLogger(cmd.Context(), logger))

	return nil
}

// mergeAssignments applies name=value flags over the config file values
func mergeAssignments[M ~map[string]string](dst M, assignments []string) error {
	values, err := options.ParseAssignments(assignments)
	if err != nil {
		return err
	}
	for k, v := range values {
		dst[k] = v
	}
	return nil
}

func newManager() (*spralpkg.Manager, error) {
	return spralpkg.NewManager(config)
}

// ExitCode maps an error to the process exit status
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, core.ErrConfiguration), errors.Is(err, core.ErrInvalidOption):
		return 2
	case errors.Is(err, core.ErrUpstreamBuild):
		return 3
	default:
		return 1
	}
}
