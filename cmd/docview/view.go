package main

import (
	"path/filepath"

	"github.com/cristianoliveira/docview/cmd"
	"github.com/cristianoliveira/docview/internal/config"
	"github.com/cristianoliveira/docview/internal/logging"
	"github.com/cristianoliveira/docview/internal/session"
	"github.com/cristianoliveira/docview/internal/settings"
	"github.com/cristianoliveira/docview/internal/synctex"
	"github.com/cristianoliveira/docview/internal/tui/app"
	"github.com/cristianoliveira/docview/internal/tui/state"
	"github.com/spf13/cobra"
)

type clientFactory func(searcher app.ForwardSearcher) app.Client

func defaultClient(searcher app.ForwardSearcher) app.Client {
	return app.NewDefaultClient(nil, nil, searcher)
}

// NewViewCmd creates the view command.
func NewViewCmd(newClient clientFactory, open storeOpener) *cobra.Command {
	var syncFlag, dbFlag string
	var fresh bool

	viewCmd := &cobra.Command{
		Use:   "view <manifest>...",
		Short: "Open documents in the terminal viewer",
		Long: `Open documents in the terminal viewer, one tab per manifest.

KEY BINDINGS:
    j/k h/l     Scroll
    n/p         Next/previous page
    home/end    First/last page
    g           Go to a named destination, TOC entry or page label
    /           Find text (prefix re: for a regex); ] and [ jump between matches
    t           Toggle the table of contents (J/K move, enter follows)
    c           Toggle continuous/single page layout
    F5          Presentation mode (b/w blank the screen, esc leaves)
    f           Full screen
    +/-         Zoom
    tab         Next tab; x closes the tab
    P           Print to a text file
    q           Quit

MOUSE:
    Left click follows links, left drag scrolls or selects text,
    ctrl+drag selects a rectangle, middle click starts smooth scrolling,
    alt+drag pans horizontally.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := app.ViewRequest{
				Paths: args,
				Options: state.Options{
					Session: session.OptionsFromConfig(),
					Opener:  state.NewOpener(config.Get("external_open", "launch")),
					Logger:  logging.GetGlobal(),
				},
			}
			if dir := config.Get("state_dir", ""); dir != "" {
				req.Options.PrintDir = filepath.Join(dir, "print")
			}
			if !fresh && config.GetBool("remember_state", true) {
				path := settings.Path()
				history, err := settings.LoadFrom(path)
				if err != nil {
					logging.Warn("ignoring document history", "path", path, "error", err)
					history = settings.DefaultSettings()
				}
				req.Options.History = history
				req.Options.HistoryPath = path
			}

			var searcher app.ForwardSearcher
			if syncFlag != "" {
				file, line, err := parseSourceLocation(syncFlag)
				if err != nil {
					return err
				}
				path, err := syncDBPath(dbFlag)
				if err != nil {
					return err
				}
				store, err := open(path)
				if err != nil {
					return err
				}
				defer store.Close()
				searcher = store
				req.Sync = &app.SourceLocation{File: file, Line: line}
			}

			client := newClient(searcher)
			model, err := client.CreateModel(cmd.Context(), req)
			if err != nil {
				return err
			}
			return client.RunProgram(model)
		},
	}
	viewCmd.Flags().StringVar(&syncFlag, "sync", "", "Mark the page regions of a source location (file:line)")
	viewCmd.Flags().StringVar(&dbFlag, "db", "", "Path of the sync index (default: sync_db_path setting)")
	viewCmd.Flags().BoolVar(&fresh, "fresh", false, "Start on the first page and do not remember where documents were left")
	return viewCmd
}

func init() {
	cmd.RootCmd.AddCommand(NewViewCmd(defaultClient, synctex.Open))
}
