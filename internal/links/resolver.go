package links

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cristianoliveira/docview/internal/errors"
	"github.com/cristianoliveira/docview/internal/logging"
	"github.com/cristianoliveira/docview/internal/ports"
	"github.com/cristianoliveira/docview/internal/toc"
)

// Match tells which lookup rule resolved a name.
type Match int

const (
	MatchNone Match = iota
	MatchNamedDest
	MatchExact
	MatchPartial
	MatchPageLabel
)

func (m Match) String() string {
	switch m {
	case MatchNamedDest:
		return "named-dest"
	case MatchExact:
		return "exact"
	case MatchPartial:
		return "partial"
	case MatchPageLabel:
		return "page-label"
	default:
		return "none"
	}
}

// maxNamedDepth bounds chains of named destinations pointing at other names.
const maxNamedDepth = 8

// executableExts are file links that are never launched.
var executableExts = []string{
	".exe", ".com", ".bat", ".cmd", ".scr", ".pif", ".msi", ".vbs", ".js", ".jar", ".ps1", ".sh", ".app",
}

// Resolver turns destinations into navigation on a sink.
type Resolver struct {
	doc  ports.Document
	sink ports.NavigationSink
	log  logging.Logger
	stat func(string) (os.FileInfo, error)
}

// New returns a Resolver over doc emitting to sink.
func New(doc ports.Document, sink ports.NavigationSink, log logging.Logger) *Resolver {
	return &Resolver{doc: doc, sink: sink, log: logging.OrNop(log), stat: os.Stat}
}

// Lookup finds the destination for name without navigating. Names are tried
// as a document named destination, then as an exact TOC entry, then as a
// partial TOC entry, then as a page label.
func (r *Resolver) Lookup(name string) (*toc.Destination, Match, error) {
	if strings.TrimSpace(name) == "" {
		return nil, MatchNone, errors.New(errors.KindNotFound, "lookup", name, nil)
	}
	if dest, ok := r.doc.NamedDest(name); ok && dest != nil {
		return dest, MatchNamedDest, nil
	}
	root := r.doc.TocRoot()
	if node := FindTocItem(root, name, false); node != nil {
		return node.Dest, MatchExact, nil
	}
	if node := FindTocItem(root, name, true); node != nil {
		r.log.Debug("named dest partial match", "name", name, "entry", node.Name)
		return node.Dest, MatchPartial, nil
	}
	if page, ok := r.doc.PageByLabel(name); ok {
		return &toc.Destination{Kind: toc.DestScrollTo, Page: page}, MatchPageLabel, nil
	}
	return nil, MatchNone, errors.New(errors.KindNotFound, "lookup", name, nil)
}

// GotoNamedDest resolves name and follows its destination. On NotFound the
// sink is not called.
func (r *Resolver) GotoNamedDest(name string) (Match, error) {
	return r.gotoNamedDest(name, 0)
}

func (r *Resolver) gotoNamedDest(name string, depth int) (Match, error) {
	dest, match, err := r.Lookup(name)
	if err != nil {
		r.log.Info("named destination not found", "name", name)
		return MatchNone, err
	}
	if err := r.gotoLink(dest, depth); err != nil {
		return match, err
	}
	return match, nil
}

// GotoLink follows dest.
func (r *Resolver) GotoLink(dest *toc.Destination) error {
	return r.gotoLink(dest, 0)
}

func (r *Resolver) gotoLink(dest *toc.Destination, depth int) error {
	if dest == nil || dest.Kind == toc.DestNone {
		return errors.ErrInvalidState
	}
	switch dest.Kind {
	case toc.DestLaunchURL:
		return r.openURL(dest.Value)
	case toc.DestLaunchFile:
		return r.openFile(dest.Value)
	case toc.DestNamed:
		if depth >= maxNamedDepth {
			return errors.New(errors.KindNotFound, "goto named dest", dest.Value, fmt.Errorf("destination chain deeper than %d", maxNamedDepth))
		}
		_, err := r.gotoNamedDest(dest.Value, depth+1)
		return err
	}

	target, err := r.Target(dest)
	if err != nil {
		return err
	}
	r.log.Debug("navigate", "target", target.String(), "kind", dest.Kind.String())
	if err := r.sink.Navigate(target); err != nil {
		return fmt.Errorf("navigate to %s: %w", target, err)
	}
	return nil
}

// Target resolves an in-document destination. Page steps are taken from the
// sink's current page and clamped to the document.
func (r *Resolver) Target(dest *toc.Destination) (toc.Target, error) {
	count := r.doc.PageCount()
	switch dest.Kind {
	case toc.DestScrollTo:
		if dest.Page < 1 || (count > 0 && dest.Page > count) {
			return toc.Target{}, errors.New(errors.KindNotFound, "goto page", fmt.Sprint(dest.Page), nil)
		}
		return toc.Target{Page: dest.Page, Point: dest.Point}, nil
	case toc.DestFirstPage:
		return toc.Target{Page: 1}, nil
	case toc.DestLastPage:
		return toc.Target{Page: max(count, 1)}, nil
	case toc.DestNextPage, toc.DestPrevPage:
		page := r.sink.CurrentPage()
		if dest.Kind == toc.DestNextPage {
			page++
		} else {
			page--
		}
		if count > 0 {
			page = min(page, count)
		}
		return toc.Target{Page: max(page, 1)}, nil
	default:
		return toc.Target{}, errors.New(errors.KindInvalidState, "resolve target", dest.Kind.String(), nil)
	}
}

func (r *Resolver) openURL(locator string) error {
	if err := r.sink.OpenExternal(locator); err != nil {
		return errors.New(errors.KindOpenFailed, "open url", locator, err)
	}
	return nil
}

func (r *Resolver) openFile(path string) error {
	if path == "" {
		return errors.New(errors.KindNotFound, "open file", path, nil)
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.doc.Dir(), path)
	}
	path = filepath.Clean(path)
	if _, err := r.stat(path); err != nil {
		r.log.Info("linked file missing", "target", path)
		return errors.New(errors.KindNotFound, "open file", path, err)
	}
	if isExecutable(path) {
		r.log.Warn("refusing to launch executable", "target", path)
		return errors.New(errors.KindOpenFailed, "open file", path, fmt.Errorf("refusing to launch executable"))
	}
	if err := r.sink.OpenExternal(path); err != nil {
		return errors.New(errors.KindOpenFailed, "open file", path, err)
	}
	return nil
}

func isExecutable(path string) bool {
	return slices.Contains(executableExts, strings.ToLower(filepath.Ext(path)))
}
