package state

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/docview/internal/background"
	"github.com/cristianoliveira/docview/internal/config"
	"github.com/cristianoliveira/docview/internal/document"
	"github.com/cristianoliveira/docview/internal/errors"
	"github.com/cristianoliveira/docview/internal/ports"
	"github.com/cristianoliveira/docview/internal/presentation"
	"github.com/cristianoliveira/docview/internal/toc"
)

// Zoom step of the + and - keys, as a pinch factor.
const zoomStep = 1.25

// handleKeyMsg dispatches a key press.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	if m.promptKind != promptNone {
		return m.handlePromptKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		m.quit()
	case "esc":
		m.handleEscape()
	case "j", "down":
		m.canvas.ScrollBy(0, 1)
	case "k", "up":
		m.canvas.ScrollBy(0, -1)
	case "h", "left":
		m.canvas.ScrollBy(-1, 0)
	case "l", "right":
		m.canvas.ScrollBy(1, 0)
	case "ctrl+d":
		m.canvas.ScrollBy(0, max(m.canvas.height/2, 1))
	case "ctrl+u":
		m.canvas.ScrollBy(0, -max(m.canvas.height/2, 1))
	case "n", " ", "pgdown":
		_ = m.session.GotoLink(&toc.Destination{Kind: toc.DestNextPage})
	case "p", "backspace", "pgup":
		_ = m.session.GotoLink(&toc.Destination{Kind: toc.DestPrevPage})
	case "home":
		_ = m.session.GotoLink(&toc.Destination{Kind: toc.DestFirstPage})
	case "end", "G":
		_ = m.session.GotoLink(&toc.Destination{Kind: toc.DestLastPage})
	case "g":
		return m.openPrompt(promptGoto, "goto: ")
	case "/":
		return m.openPrompt(promptFind, "find: ")
	case "]":
		m.gotoHit(1)
	case "[":
		m.gotoHit(-1)
	case "f5":
		m.enterPresentation(presentation.Enabled)
	case "f", "f11":
		errors.Report(m.errorHandler, m.session.ToggleFullScreen())
		m.layout()
	case "b", ".":
		m.togglePresentationBlank(presentation.BlackScreen)
	case "w", ",":
		m.togglePresentationBlank(presentation.WhiteScreen)
	case "t":
		m.toggleToc()
	case "c":
		m.toggleContinuous()
	case "J":
		m.toc.move(1, m.canvas.height)
	case "K":
		m.toc.move(-1, m.canvas.height)
	case "enter":
		m.followTocEntry()
	case "+", "=":
		m.zoom(zoomStep)
	case "-":
		m.zoom(1 / zoomStep)
	case "tab":
		m.cycleTab(1)
	case "shift+tab":
		m.cycleTab(-1)
	case "x":
		m.closeActiveTab()
	case "P":
		m.startPrint()
	}
	return nil
}

func (m *Model) handleEscape() {
	switch {
	case m.session.Presentation().Active():
		errors.Report(m.errorHandler, m.session.ExitPresentation())
		m.layout()
	case m.session.PrintInProgress():
		m.session.CancelPrint()
	case m.session.FindInProgress():
		m.session.CancelFind()
	case m.session.ForwardSearchPending():
		m.session.CancelForwardSearch()
	default:
		m.hits = nil
	}
}

func (m *Model) enterPresentation(state presentation.State) {
	errors.Report(m.errorHandler, m.session.EnterPresentation(state))
	m.layout()
}

// togglePresentationBlank blanks the screen while presenting.
func (m *Model) togglePresentationBlank(state presentation.State) {
	ctl := m.session.Presentation()
	var err error
	if state == presentation.BlackScreen {
		err = ctl.ToggleBlackScreen()
	} else {
		err = ctl.ToggleWhiteScreen()
	}
	errors.Report(m.errorHandler, err)
}

func (m *Model) toggleToc() {
	if m.session.Presentation().State() != presentation.Disabled {
		return
	}
	if m.toc.entries == nil {
		m.errorHandler.Info("document has no table of contents")
		return
	}
	m.window.SetTocVisible(!m.window.TocVisible())
	m.layout()
}

func (m *Model) toggleContinuous() {
	if m.window.DisplayMode() == ports.DisplayContinuous {
		m.window.SetDisplayMode(ports.DisplaySinglePage)
	} else {
		m.window.SetDisplayMode(ports.DisplayContinuous)
	}
	page := m.canvas.CurrentPage()
	m.layout()
	_ = m.canvas.Navigate(toc.Target{Page: page})
}

func (m *Model) followTocEntry() {
	if !m.tocShown() {
		return
	}
	entry, ok := m.toc.selected()
	if !ok || entry.node.Dest == nil || entry.node.Dest.Kind == toc.DestNone {
		return
	}
	_ = m.session.GotoLink(entry.node.Dest)
}

// zoom applies a keyboard zoom step as a pinch gesture.
func (m *Model) zoom(factor float64) {
	const base = 100.0
	m.session.ZoomStart(base)
	m.session.ZoomUpdate(base * factor)
	m.errorHandler.Info(fmt.Sprintf("zoom %.0f%%", m.window.Zoom()))
}

func (m *Model) openPrompt(kind promptKind, label string) tea.Cmd {
	m.promptKind = kind
	m.prompt.Prompt = label
	m.prompt.SetValue("")
	return m.prompt.Focus()
}

func (m *Model) closePrompt() {
	m.promptKind = promptNone
	m.prompt.Blur()
	m.prompt.SetValue("")
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.closePrompt()
		return nil
	case tea.KeyEnter:
		kind, value := m.promptKind, strings.TrimSpace(m.prompt.Value())
		m.closePrompt()
		m.submitPrompt(kind, value)
		return nil
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return cmd
}

func (m *Model) submitPrompt(kind promptKind, value string) {
	if value == "" {
		return
	}
	switch kind {
	case promptGoto:
		_, _ = m.session.GotoNamedDest(value)
	case promptFind:
		m.startFind(value)
	}
}

func (m *Model) startFind(query string) {
	doc := m.canvas.DocumentModel()
	work := func(ctx context.Context, _ *background.Task) (any, error) {
		return doc.Search(ctx, query)
	}
	if err := m.session.StartFind(work); err != nil {
		errors.Report(m.errorHandler, err)
		return
	}
	m.hits = nil
	m.errorHandler.Info("searching for " + query)
}

func (m *Model) startPrint() {
	doc := m.canvas.DocumentModel()
	dir := m.printDir
	if dir == "" {
		dir = filepath.Join(config.Get("state_dir", os.TempDir()), "print")
	}
	work := func(ctx context.Context, t *background.Task) (any, error) {
		return printDocument(ctx, t, doc, dir)
	}
	if err := m.session.StartPrint(work); err != nil {
		if errors.Is(err, errors.ErrAlreadyActive) {
			m.errorHandler.Warning("a print job is already running")
		}
		return
	}
	m.errorHandler.Info("printing " + tabTitle(doc))
}

// printDocument writes the pages of doc as plain text into dir.
func printDocument(ctx context.Context, t *background.Task, doc *document.Document, dir string) (string, error) {
	if err := os.MkdirAll(dir, config.FileModeDir); err != nil {
		return "", fmt.Errorf("create print dir: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(doc.Path()), filepath.Ext(doc.Path()))
	if name == "" || name == "." {
		name = "document"
	}
	path := filepath.Join(dir, name+".txt")

	var b strings.Builder
	for n := 1; n <= doc.PageCount(); n++ {
		if t.Canceled() || ctx.Err() != nil {
			return "", ctx.Err()
		}
		page, _ := doc.Page(n)
		fmt.Fprintf(&b, "\f-- page %d (%s) --\n", n, page.Label)
		for _, line := range page.Lines {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	if err := os.WriteFile(path, []byte(b.String()), config.FileModeFile); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

func hitTarget(hit document.Hit) toc.Target {
	return toc.Target{Page: hit.Page, Point: image.Pt(hit.Rect.Min.X, hit.Rect.Min.Y)}
}
