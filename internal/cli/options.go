package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/arc-language/spralpkg/pkg/options"
)

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List the recipe options",
	Long:  `List the options the recipe declares, their legal values and defaults.`,
	Args:  cobra.NoArgs,
	RunE:  runOptions,
}

func runOptions(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "OPTION\tVALUES\tDEFAULT\tDESCRIPTION")
	for _, d := range options.Declarations {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.Name, strings.Join(d.Values(), ","), options.FormatBool(d.Default), d.Description)
	}
	return w.Flush()
}
