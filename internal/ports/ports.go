// Package ports defines the collaborator interfaces the session core talks to.
// The core never holds platform handles; hosts implement these.
package ports

import (
	"fmt"
	"image"

	"github.com/cristianoliveira/docview/internal/toc"
)

// Renderer receives repaint and layout notifications. It never returns pixels.
type Renderer interface {
	// RequestRepaint asks for a repaint of region, or of everything when region is nil.
	RequestRepaint(region *image.Rectangle)
	RequestRendering(pageNo int)
	UpdateScrollbars(canvas image.Point)
	PageNoChanged(pageNo int)
	CleanUp()
}

// Layout answers hit-testing queries against the visible canvas and moves it.
type Layout interface {
	ScrollBy(dx, dy int)
	LinkAt(pt image.Point) (*toc.Destination, bool)
	OverText(pt image.Point) bool
	PageVisible(pageNo int) bool
}

// Document is the read-only view of a loaded document the resolver needs.
type Document interface {
	// TocRoot returns the synthetic root of the TOC tree, or nil without one.
	TocRoot() *toc.Node
	NamedDest(name string) (*toc.Destination, bool)
	PageByLabel(label string) (int, bool)
	PageCount() int
	// Dir is the directory relative file links are resolved against.
	Dir() string
}

// NavigationSink performs resolved navigation.
type NavigationSink interface {
	Navigate(target toc.Target) error
	OpenExternal(locator string) error
	CurrentPage() int
}

// WindowStyle is the frame style of the hosting window.
type WindowStyle int

const (
	StyleNormal WindowStyle = iota
	StyleBorderless
)

// Placement is the show state of the hosting window.
type Placement int

const (
	PlacementNormal Placement = iota
	PlacementMaximized
	PlacementMinimized
)

// DisplayMode is how pages are laid out on the canvas.
type DisplayMode int

const (
	DisplaySinglePage DisplayMode = iota
	DisplayFacing
	DisplayBookView
	DisplayContinuous
	DisplayContinuousFacing
	DisplayContinuousBookView
)

var displayModeNames = []string{"single", "facing", "book", "continuous", "continuous-facing", "continuous-book"}

func (m DisplayMode) String() string {
	if int(m) >= 0 && int(m) < len(displayModeNames) {
		return displayModeNames[m]
	}
	return "unknown"
}

// ParseDisplayMode returns the display mode called name.
func ParseDisplayMode(name string) (DisplayMode, error) {
	for i, n := range displayModeNames {
		if n == name {
			return DisplayMode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown display mode %q", name)
}

// ZoomFitPage is the virtual zoom that fits a whole page into the window.
const ZoomFitPage = -1.0

// WindowHost exposes the window configuration presentation mode saves and restores.
type WindowHost interface {
	Style() WindowStyle
	SetStyle(style WindowStyle)
	FrameRect() image.Rectangle
	SetFrameRect(rect image.Rectangle)
	Placement() Placement
	SetPlacement(p Placement)
	Zoom() float64
	SetZoom(zoom float64)
	DisplayMode() DisplayMode
	SetDisplayMode(mode DisplayMode)
	TocVisible() bool
	SetTocVisible(visible bool)
	// MonitorRect is the bounds of the monitor the window is on.
	MonitorRect() image.Rectangle
}
