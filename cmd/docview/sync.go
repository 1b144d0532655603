package main

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/cristianoliveira/docview/cmd"
	"github.com/cristianoliveira/docview/internal/config"
	"github.com/cristianoliveira/docview/internal/synctex"
	"github.com/spf13/cobra"
)

type storeOpener func(path string) (*synctex.Store, error)

// syncDBPath returns the index path from the flag, falling back to the sync_db_path setting.
func syncDBPath(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if path := config.Get("sync_db_path", ""); path != "" {
		return path, nil
	}
	return "", fmt.Errorf("sync: index path is not configured")
}

// NewSyncCmd creates the sync command and its subcommands.
func NewSyncCmd(open storeOpener) *cobra.Command {
	var dbFlag string

	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Manage the forward/inverse search index",
		Long: `Manage the SQLite index that maps source lines to page regions.

Records are imported from tab-separated files with the columns
file, line, column, page, x, y, w, h. Lines starting with # are ignored.`,
	}
	syncCmd.PersistentFlags().StringVar(&dbFlag, "db", "", "Path of the sync index (default: sync_db_path setting)")

	withStore := func(run func(cmd *cobra.Command, store *synctex.Store, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			path, err := syncDBPath(dbFlag)
			if err != nil {
				return err
			}
			store, err := open(path)
			if err != nil {
				return err
			}
			defer store.Close()
			return run(cmd, store, args)
		}
	}

	var replace bool
	importCmd := &cobra.Command{
		Use:   "import <file.tsv>",
		Short: "Import sync records",
		Args:  cobra.ExactArgs(1),
		RunE: withStore(func(cmd *cobra.Command, store *synctex.Store, args []string) error {
			stats, err := store.Import(cmd.Context(), args[0], replace)
			if err != nil {
				return err
			}
			cmd.Printf("import completed\n")
			cmd.Printf("total=%d imported=%d skipped=%d\n", stats.TotalRows, stats.ImportedRows, stats.SkippedRows)
			for _, warning := range stats.Warnings {
				cmd.Printf("warning: %s\n", warning)
			}
			return nil
		}),
	}
	importCmd.Flags().BoolVar(&replace, "replace", false, "Replace the records of every imported source file")

	forwardCmd := &cobra.Command{
		Use:   "forward <source> <line>",
		Short: "Find the page regions of a source line",
		Args:  cobra.ExactArgs(2),
		RunE: withStore(func(cmd *cobra.Command, store *synctex.Store, args []string) error {
			line, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("sync forward: invalid line %q", args[1])
			}
			page, rects, err := store.Forward(cmd.Context(), args[0], line)
			if err != nil {
				return err
			}
			cmd.Printf("page %d\n", page)
			for _, r := range rects {
				cmd.Printf("  %s\n", formatRect(r))
			}
			return nil
		}),
	}

	inverseCmd := &cobra.Command{
		Use:   "inverse <page> <x> <y>",
		Short: "Find the source line of a page position",
		Args:  cobra.ExactArgs(3),
		RunE: withStore(func(cmd *cobra.Command, store *synctex.Store, args []string) error {
			nums := make([]int, len(args))
			for i, a := range args {
				n, err := strconv.Atoi(a)
				if err != nil {
					return fmt.Errorf("sync inverse: invalid number %q", a)
				}
				nums[i] = n
			}
			rec, err := store.Inverse(cmd.Context(), nums[0], image.Pt(nums[1], nums[2]))
			if err != nil {
				return err
			}
			cmd.Printf("%s:%d:%d\n", rec.File, rec.Line, rec.Column)
			return nil
		}),
	}

	clearCmd := &cobra.Command{
		Use:   "clear [source]",
		Short: "Remove sync records",
		Args:  cobra.MaximumNArgs(1),
		RunE: withStore(func(cmd *cobra.Command, store *synctex.Store, args []string) error {
			file := ""
			if len(args) == 1 {
				file = args[0]
			}
			if err := store.Clear(cmd.Context(), file); err != nil {
				return err
			}
			n, err := store.Count(cmd.Context())
			if err != nil {
				return err
			}
			cmd.Printf("%d records left\n", n)
			return nil
		}),
	}

	syncCmd.AddCommand(importCmd, forwardCmd, inverseCmd, clearCmd)
	return syncCmd
}

func formatRect(r image.Rectangle) string {
	return fmt.Sprintf("x=%d y=%d w=%d h=%d", r.Min.X, r.Min.Y, r.Dx(), r.Dy())
}

// parseSourceLocation parses "file:line". The file part may itself contain colons.
func parseSourceLocation(s string) (string, int, error) {
	idx := strings.LastIndex(s, ":")
	if idx <= 0 || idx == len(s)-1 {
		return "", 0, fmt.Errorf("invalid source location %q, want file:line", s)
	}
	line, err := strconv.Atoi(s[idx+1:])
	if err != nil || line < 1 {
		return "", 0, fmt.Errorf("invalid line in source location %q", s)
	}
	return s[:idx], line, nil
}

func init() {
	cmd.RootCmd.AddCommand(NewSyncCmd(synctex.Open))
}
