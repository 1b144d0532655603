package main

import (
	"fmt"

	"github.com/cristianoliveira/docview/cmd"
	"github.com/cristianoliveira/docview/internal/document"
	"github.com/cristianoliveira/docview/internal/links"
	"github.com/cristianoliveira/docview/internal/logging"
	"github.com/cristianoliveira/docview/internal/toc"
	"github.com/spf13/cobra"
)

// dryRunSink records where a navigation would go without performing it.
type dryRunSink struct {
	current  int
	target   *toc.Target
	external string
}

func (s *dryRunSink) Navigate(target toc.Target) error {
	s.target = &target
	return nil
}

func (s *dryRunSink) OpenExternal(locator string) error {
	s.external = locator
	return nil
}

func (s *dryRunSink) CurrentPage() int { return s.current }

// NewGotoCmd creates the goto command.
func NewGotoCmd(load func(path string) (*document.Document, error)) *cobra.Command {
	var fromPage int

	gotoCmd := &cobra.Command{
		Use:   "goto <manifest> <name>",
		Short: "Resolve a destination name",
		Long: `Resolve a destination name the way the viewer does and print where it leads.

The name is tried as a named destination, then as a table of contents entry
(exact, then case-insensitive partial match), then as a page label.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := load(args[0])
			if err != nil {
				return err
			}
			sink := &dryRunSink{current: fromPage}
			resolver := links.New(doc, sink, logging.With("command", "goto"))
			match, err := resolver.GotoNamedDest(args[1])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "match: %s\n", match)
			switch {
			case sink.target != nil:
				fmt.Fprintf(out, "target: %s\n", sink.target)
			case sink.external != "":
				fmt.Fprintf(out, "external: %s\n", sink.external)
			}
			return nil
		},
	}
	gotoCmd.Flags().IntVar(&fromPage, "from", 1, "Page relative destinations start from")
	return gotoCmd
}

func init() {
	cmd.RootCmd.AddCommand(NewGotoCmd(document.Load))
}
