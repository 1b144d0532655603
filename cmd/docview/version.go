package main

import (
	"fmt"

	"github.com/cristianoliveira/docview/cmd"
	"github.com/cristianoliveira/docview/internal/version"
	"github.com/spf13/cobra"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(versionFn func() string) *cobra.Command {
	if versionFn == nil {
		panic("NewVersionCmd: version dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Show the current version of docview.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "docview version %s\n", versionFn())
			return nil
		},
	}
}

func init() {
	cmd.RootCmd.AddCommand(NewVersionCmd(version.String))
}
