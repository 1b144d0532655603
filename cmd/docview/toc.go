package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/cristianoliveira/docview/cmd"
	"github.com/cristianoliveira/docview/internal/document"
	"github.com/cristianoliveira/docview/internal/toc"
	"github.com/spf13/cobra"
)

// NewTocCmd creates the toc command.
func NewTocCmd(load func(path string) (*document.Document, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "toc <manifest>",
		Short: "Print the table of contents",
		Long: `Print the table of contents of a document with the destination of
every entry. Entries without a destination are shown as section headings.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := load(args[0])
			if err != nil {
				return err
			}
			if doc.TocRoot() == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "no table of contents")
				return nil
			}
			writeToc(cmd.OutOrStdout(), doc.TocRoot())
			return nil
		},
	}
}

func writeToc(w io.Writer, root *toc.Node) {
	root.Walk(func(node *toc.Node, depth int) bool {
		if depth == 0 {
			return true
		}
		indent := strings.Repeat("  ", depth-1)
		if node.Dest == nil || node.Dest.Kind == toc.DestNone {
			fmt.Fprintf(w, "%s%s\n", indent, node.Name)
			return true
		}
		fmt.Fprintf(w, "%s%s  -> %s\n", indent, node.Name, describeDest(node.Dest))
		return true
	})
}

func describeDest(dest *toc.Destination) string {
	switch dest.Kind {
	case toc.DestScrollTo:
		if dest.Point.Y > 0 {
			return fmt.Sprintf("page %d line %d", dest.Page, dest.Point.Y)
		}
		return fmt.Sprintf("page %d", dest.Page)
	case toc.DestLaunchURL, toc.DestLaunchFile, toc.DestNamed:
		return fmt.Sprintf("%s %s", dest.Kind, dest.Value)
	}
	return dest.Kind.String()
}

func init() {
	cmd.RootCmd.AddCommand(NewTocCmd(document.Load))
}
