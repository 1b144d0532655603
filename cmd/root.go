// Package cmd holds the root command of the docview CLI.
package cmd

import (
	"fmt"
	"strings"

	"github.com/cristianoliveira/docview/internal/colors"
	"github.com/cristianoliveira/docview/internal/config"
	"github.com/cristianoliveira/docview/internal/logging"
	"github.com/cristianoliveira/docview/internal/version"
	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "docview",
	Short: "A terminal document viewer with presentation mode and forward search.",
	Long:  `A terminal document viewer with presentation mode and forward search.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.Load()
		colors.SetDebug(config.GetBool("debug", false))
		return logging.InitGlobal()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	defer func() { _ = logging.ShutdownGlobal() }()
	return RootCmd.Execute()
}

func init() {
	RootCmd.Version = version.String()

	// Hide the completion command
	RootCmd.CompletionOptions.HiddenDefaultCmd = true

	RootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != RootCmd {
			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(cmd.Long))
			fmt.Fprintln(cmd.OutOrStdout())
			fmt.Fprint(cmd.OutOrStdout(), cmd.UsageString())
			return
		}
		fmt.Fprint(cmd.OutOrStdout(), helpText(cmd))
	})
}

// commandOrder is the order commands are listed in the help text.
var commandOrder = []string{
	"view",
	"toc",
	"goto",
	"sync",
	"version",
}

func helpText(cmd *cobra.Command) string {
	var cmdLines []string
	for _, name := range commandOrder {
		var found *cobra.Command
		for _, c := range cmd.Commands() {
			if c.Name() == name {
				found = c
				break
			}
		}
		if found == nil {
			continue
		}
		cmdLines = append(cmdLines, fmt.Sprintf("    %-28s %s", found.Use, found.Short))
	}

	return fmt.Sprintf(`docview %s

A terminal document viewer with presentation mode and forward search.

USAGE:
    docview [COMMAND] [OPTIONS]

COMMANDS:
%s

OPTIONS:
    -h, --help      Show help message
`, version.String(), strings.Join(cmdLines, "\n"))
}
