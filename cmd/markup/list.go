package main

import (
	"github.com/spf13/cobra"

	"github.com/vango-dev/markup/internal/samples"
)

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the built-in sample documents",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, s := range samples.All() {
				info(cmd.OutOrStdout(), "%-12s %s", s.Name, s.Description)
			}
		},
	}
}
