package ports

import "image"

// MemoryWindow is a WindowHost that only records its configuration.
// Terminal hosts use it since they cannot restyle the real window.
type MemoryWindow struct {
	style     WindowStyle
	frame     image.Rectangle
	placement Placement
	zoom      float64
	mode      DisplayMode
	tocShown  bool
	monitor   image.Rectangle
}

var _ WindowHost = (*MemoryWindow)(nil)

// NewMemoryWindow returns a normal window filling frame on a monitor of the same size.
func NewMemoryWindow(frame image.Rectangle) *MemoryWindow {
	return &MemoryWindow{
		frame:   frame,
		zoom:    100,
		mode:    DisplayContinuous,
		monitor: frame,
	}
}

func (w *MemoryWindow) Style() WindowStyle              { return w.style }
func (w *MemoryWindow) SetStyle(style WindowStyle)      { w.style = style }
func (w *MemoryWindow) FrameRect() image.Rectangle      { return w.frame }
func (w *MemoryWindow) SetFrameRect(r image.Rectangle)  { w.frame = r }
func (w *MemoryWindow) Placement() Placement            { return w.placement }
func (w *MemoryWindow) SetPlacement(p Placement)        { w.placement = p }
func (w *MemoryWindow) Zoom() float64                   { return w.zoom }
func (w *MemoryWindow) SetZoom(zoom float64)            { w.zoom = zoom }
func (w *MemoryWindow) DisplayMode() DisplayMode        { return w.mode }
func (w *MemoryWindow) SetDisplayMode(mode DisplayMode) { w.mode = mode }
func (w *MemoryWindow) TocVisible() bool                { return w.tocShown }
func (w *MemoryWindow) SetTocVisible(visible bool)      { w.tocShown = visible }
func (w *MemoryWindow) MonitorRect() image.Rectangle    { return w.monitor }

// SetMonitorRect updates the monitor bounds, e.g. after a terminal resize.
func (w *MemoryWindow) SetMonitorRect(r image.Rectangle) { w.monitor = r }
