// Package state is the bubbletea model of the document viewer window.
package state

import (
	"fmt"
	"image"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/docview/internal/background"
	"github.com/cristianoliveira/docview/internal/document"
	"github.com/cristianoliveira/docview/internal/errors"
	"github.com/cristianoliveira/docview/internal/logging"
	"github.com/cristianoliveira/docview/internal/ports"
	"github.com/cristianoliveira/docview/internal/scheduler"
	"github.com/cristianoliveira/docview/internal/session"
	"github.com/cristianoliveira/docview/internal/settings"
	"github.com/google/uuid"
)

const (
	defaultViewportWidth  = 80
	defaultViewportHeight = 22
	tocPanelWidth         = 30
	chromeLines           = 2
	statusClearDelay      = 5 * time.Second
	completionBuffer      = 8
)

// ForwardSearch is a location to mark when the viewer starts.
type ForwardSearch struct {
	Page  int
	Rects []image.Rectangle
}

// Options configures a Model.
type Options struct {
	Session session.Options
	// Opener handles URLs and file links. Defaults to launching them.
	Opener Opener
	Logger logging.Logger
	// ForwardSearch, when set, is marked on startup.
	ForwardSearch *ForwardSearch
	// PrintDir receives printed documents.
	PrintDir string
	// History restores where documents were left. Defaults to an empty history.
	History *settings.Settings
	// HistoryPath, when set, receives the history on quit.
	HistoryPath string
}

type promptKind int

const (
	promptNone promptKind = iota
	promptGoto
	promptFind
)

// Model represents the viewer window for bubbletea.
type Model struct {
	canvas       *Canvas
	window       *ports.MemoryWindow
	sched        *scheduler.Tea
	session      *session.Session
	errorHandler *errors.TUIHandler
	log          logging.Logger

	docs        map[uuid.UUID]*document.Document
	completions chan tea.Msg

	width  int
	height int

	pressing bool
	pressed  session.Button
	panning  bool

	prompt     textinput.Model
	promptKind promptKind
	toc        tocPanel
	hits       []document.Hit
	hitIdx     int

	statusMessage    errors.Message
	hasStatusMessage bool
	statusTok        scheduler.Token

	history     *settings.Settings
	historyPath string

	startup  *ForwardSearch
	printDir string
	quitting bool
}

// NewModel creates a viewer with one tab per document. The first document is shown.
func NewModel(docs []*document.Document, opts Options) (*Model, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("no documents to show")
	}
	if opts.Opener == nil {
		opts.Opener = LaunchOpener{}
	}
	log := logging.OrNop(opts.Logger)
	if opts.History == nil {
		opts.History = settings.DefaultSettings()
	}

	frame := image.Rect(0, 0, defaultViewportWidth, defaultViewportHeight+chromeLines)
	m := &Model{
		window:      ports.NewMemoryWindow(frame),
		sched:       scheduler.NewTea(),
		log:         log.With("component", "tui"),
		docs:        make(map[uuid.UUID]*document.Document, len(docs)),
		completions: make(chan tea.Msg, completionBuffer),
		width:       frame.Dx(),
		height:      frame.Dy(),
		prompt:      textinput.New(),
		history:     opts.History,
		historyPath: opts.HistoryPath,
		startup:     opts.ForwardSearch,
		printDir:    opts.PrintDir,
	}
	m.restoreWindow(docs[0])
	m.canvas = NewCanvas(m.window, opts.Opener, log)
	m.errorHandler = errors.NewTUIHandler(m.setStatus)

	sess, err := session.New(session.Deps{
		Renderer:  m.canvas,
		Layout:    m.canvas,
		Document:  m.canvas,
		Sink:      m.canvas,
		Window:    m.window,
		Scheduler: m.sched,
		Poster:    background.PosterFunc(func(msg tea.Msg) { m.completions <- msg }),
		Errors:    m.errorHandler,
		Logger:    log,
	}, opts.Session)
	if err != nil {
		return nil, err
	}
	m.session = sess

	var first uuid.UUID
	for i, doc := range docs {
		tab := sess.OpenTab(tabTitle(doc), doc.Path())
		m.docs[tab.ID] = doc
		if i == 0 {
			first = tab.ID
		}
	}
	if err := m.selectTab(first); err != nil {
		return nil, err
	}
	m.layout()
	return m, nil
}

func tabTitle(doc *document.Document) string {
	if doc.Title != "" {
		return doc.Title
	}
	return "untitled"
}

// Session returns the interaction session of the window.
func (m *Model) Session() *session.Session { return m.session }

// Canvas returns the page canvas.
func (m *Model) Canvas() *Canvas { return m.canvas }

// Window returns the window configuration.
func (m *Model) Window() ports.WindowHost { return m.window }

// Init initializes the TUI model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{waitForCompletion(m.completions)}
	if fs := m.startup; fs != nil {
		cmds = append(cmds, func() tea.Msg { return forwardSearchMsg{Page: fs.Page, Rects: fs.Rects} })
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleWindowSizeMsg(msg)
	case tea.KeyMsg:
		cmd = m.handleKeyMsg(msg)
	case tea.MouseMsg:
		m.handleMouseMsg(msg)
	case scheduler.FireMsg:
		m.sched.Dispatch(msg)
	case background.CompletionMsg:
		m.handleCompletion(msg)
		cmd = waitForCompletion(m.completions)
	case forwardSearchMsg:
		_ = m.session.ShowForwardSearch(msg.Page, msg.Rects)
	}
	if m.quitting {
		return m, tea.Quit
	}
	return m, tea.Batch(cmd, m.sched.Commands())
}

func (m *Model) handleWindowSizeMsg(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height
	screen := image.Rect(0, 0, msg.Width, msg.Height)
	m.window.SetMonitorRect(screen)
	if m.window.Style() == ports.StyleNormal {
		m.window.SetFrameRect(screen)
	}
	m.layout()
}

// chrome reports whether the tab bar and status line are shown.
func (m *Model) chrome() bool {
	return m.window.Style() == ports.StyleNormal
}

func (m *Model) tocShown() bool {
	return m.window.TocVisible() && m.toc.entries != nil
}

// canvasOrigin is the screen cell of the canvas' top-left corner.
func (m *Model) canvasOrigin() image.Point {
	var origin image.Point
	if m.tocShown() {
		origin.X = tocPanelWidth
	}
	if m.chrome() {
		origin.Y = 1
	}
	return origin
}

// layout sizes the canvas to the current window configuration.
func (m *Model) layout() {
	origin := m.canvasOrigin()
	height := m.height
	if m.chrome() {
		height -= chromeLines
	}
	m.canvas.Resize(m.width-origin.X, height)
	m.canvas.relayout()
	m.prompt.Width = max(m.width-12, 10)
}

func (m *Model) setStatus(msg errors.Message) {
	m.statusMessage = msg
	m.hasStatusMessage = true
	scheduler.Cancel(m.statusTok)
	m.statusTok = m.sched.After(statusClearDelay, func() {
		m.hasStatusMessage = false
		m.statusTok = nil
	})
}

func (m *Model) selectTab(id uuid.UUID) error {
	if err := m.session.SelectTab(id); err != nil {
		return err
	}
	doc := m.docs[id]
	if doc == m.canvas.DocumentModel() {
		return nil
	}
	m.rememberView()
	m.canvas.SetDocument(doc)
	m.toc = newTocPanel(doc.TocRoot())
	m.hits = nil
	m.session.CancelFind()
	m.layout()
	m.restorePage(doc)
	return nil
}

// cycleTab selects the tab delta positions away in the tab strip.
func (m *Model) cycleTab(delta int) {
	tabs := m.session.Tabs()
	active, ok := m.session.ActiveTab()
	if !ok || len(tabs) < 2 {
		return
	}
	idx := 0
	for i, t := range tabs {
		if t.ID == active.ID {
			idx = i
		}
	}
	next := tabs[(idx+delta+len(tabs))%len(tabs)]
	errors.Report(m.errorHandler, m.selectTab(next.ID))
}

// closeActiveTab closes the shown tab and quits after the last one.
func (m *Model) closeActiveTab() {
	active, ok := m.session.ActiveTab()
	if !ok {
		return
	}
	m.rememberView()
	next, err := m.session.CloseTab(active.ID)
	if err != nil {
		errors.Report(m.errorHandler, err)
		return
	}
	delete(m.docs, active.ID)
	if next == uuid.Nil {
		m.quit()
		return
	}
	errors.Report(m.errorHandler, m.selectTab(next))
}

func (m *Model) quit() {
	m.rememberView()
	m.saveHistory()
	m.session.Close()
	m.quitting = true
}

func (m *Model) handleCompletion(msg background.CompletionMsg) {
	if !m.session.TaskCompleted(msg) {
		return
	}
	switch {
	case msg.Canceled:
		m.errorHandler.Info(msg.Kind.String() + " canceled")
		return
	case msg.Err != nil:
		return
	}
	switch msg.Kind {
	case background.Find:
		hits, _ := msg.Result.([]document.Hit)
		m.hits = hits
		m.hitIdx = 0
		if len(hits) == 0 {
			m.errorHandler.Warning("no matches")
			return
		}
		m.errorHandler.Info(fmt.Sprintf("%d matches", len(hits)))
		m.gotoHit(0)
	case background.Print:
		if path, ok := msg.Result.(string); ok {
			m.errorHandler.Success("printed to " + path)
		}
	}
}

func (m *Model) gotoHit(delta int) {
	if len(m.hits) == 0 {
		return
	}
	m.hitIdx = (m.hitIdx + delta + len(m.hits)) % len(m.hits)
	hit := m.hits[m.hitIdx]
	_ = m.session.NavigateTo(hitTarget(hit))
}
