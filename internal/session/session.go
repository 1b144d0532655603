// Package session ties the per-window interaction components together.
//
// A Session owns the interaction machine, presentation controller,
// forward-search marker, tab history, link resolver and gesture tracker of a
// single window, and drives them from pointer input, navigation requests and
// scheduler callbacks. It is not safe for concurrent use: every method must
// run on the window's owning goroutine, and background completions reach it
// through TaskCompleted.
package session

import (
	"context"
	"fmt"
	"image"

	"github.com/cristianoliveira/docview/internal/background"
	"github.com/cristianoliveira/docview/internal/errors"
	"github.com/cristianoliveira/docview/internal/fwdsearch"
	"github.com/cristianoliveira/docview/internal/gesture"
	"github.com/cristianoliveira/docview/internal/interaction"
	"github.com/cristianoliveira/docview/internal/links"
	"github.com/cristianoliveira/docview/internal/logging"
	"github.com/cristianoliveira/docview/internal/ports"
	"github.com/cristianoliveira/docview/internal/presentation"
	"github.com/cristianoliveira/docview/internal/scheduler"
	"github.com/cristianoliveira/docview/internal/tabhistory"
	"github.com/google/uuid"
)

// Deps are the collaborators a Session talks to.
type Deps struct {
	Renderer  ports.Renderer
	Layout    ports.Layout
	Document  ports.Document
	Sink      ports.NavigationSink
	Window    ports.WindowHost
	Scheduler scheduler.Scheduler

	// Poster delivers background completions to the owner. Optional.
	Poster background.Poster
	// Errors surfaces navigation failures to the user. Optional.
	Errors errors.ErrorHandler
	Logger logging.Logger
}

func (d Deps) validate() error {
	switch {
	case d.Renderer == nil:
		return fmt.Errorf("session: renderer is required")
	case d.Layout == nil:
		return fmt.Errorf("session: layout is required")
	case d.Document == nil:
		return fmt.Errorf("session: document is required")
	case d.Sink == nil:
		return fmt.Errorf("session: navigation sink is required")
	case d.Window == nil:
		return fmt.Errorf("session: window host is required")
	case d.Scheduler == nil:
		return fmt.Errorf("session: scheduler is required")
	}
	return nil
}

// Session is the interaction state of one window.
type Session struct {
	deps Deps
	opts Options
	log  logging.Logger

	machine      *interaction.Machine
	gestures     *gesture.Tracker
	presentation *presentation.Controller
	marker       *fwdsearch.Marker
	history      *tabhistory.Stack[uuid.UUID]
	resolver     *links.Resolver

	tabs   []Tab
	active uuid.UUID

	selection    image.Rectangle
	hasSelection bool
	wheel        image.Point

	smoothTok  scheduler.Token
	repaintTok scheduler.Token
	fwdTok     scheduler.Token

	ctx       context.Context
	cancel    context.CancelFunc
	printTask *background.Task
	findTask  *background.Task

	closed bool
}

// markerSurface paints the forward-search marker.
type markerSurface struct {
	ports.Renderer
	layout ports.Layout
}

func (s markerSurface) PageVisible(pageNo int) bool { return s.layout.PageVisible(pageNo) }

// New creates a Session. Out-of-range Options fields fall back to DefaultOptions.
func New(deps Deps, opts Options) (*Session, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	opts = withDefaults(opts)
	log := logging.OrNop(deps.Logger).With("component", "session")

	machine := interaction.New(deps.Renderer,
		interaction.WithSlowdown(opts.SmoothScrollSlowdown),
		interaction.WithLogger(log),
	)
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		deps:         deps,
		opts:         opts,
		log:          log,
		machine:      machine,
		gestures:     gesture.New(machine, opts.PanThreshold, log),
		presentation: presentation.New(deps.Window, machine, deps.Renderer, log),
		marker:       fwdsearch.New(markerSurface{Renderer: deps.Renderer, layout: deps.Layout}, log),
		history:      tabhistory.New[uuid.UUID](),
		resolver:     links.New(deps.Document, deps.Sink, log),
		ctx:          ctx,
		cancel:       cancel,
	}
	return s, nil
}

func withDefaults(o Options) Options {
	d := DefaultOptions()
	if o.ClickThreshold < 0 {
		o.ClickThreshold = d.ClickThreshold
	}
	if o.PanThreshold <= 0 {
		o.PanThreshold = d.PanThreshold
	}
	if o.SmoothScrollSlowdown <= 0 {
		o.SmoothScrollSlowdown = d.SmoothScrollSlowdown
	}
	if o.SmoothScrollInterval <= 0 {
		o.SmoothScrollInterval = d.SmoothScrollInterval
	}
	if o.FwdSearchSteps <= 0 {
		o.FwdSearchSteps = d.FwdSearchSteps
	}
	if o.FwdSearchDecrement <= 0 {
		o.FwdSearchDecrement = d.FwdSearchDecrement
	}
	if o.FwdSearchInterval <= 0 {
		o.FwdSearchInterval = d.FwdSearchInterval
	}
	if o.FwdSearchTimeout < 0 {
		o.FwdSearchTimeout = d.FwdSearchTimeout
	}
	if o.RepaintDelay < 0 {
		o.RepaintDelay = 0
	}
	return o
}

// Close stops every timer and background job and releases the renderer.
// Later calls are no-ops.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	scheduler.Cancel(s.smoothTok)
	scheduler.Cancel(s.repaintTok)
	scheduler.Cancel(s.fwdTok)
	s.smoothTok, s.repaintTok, s.fwdTok = nil, nil, nil
	s.printTask.RequestCancel()
	s.findTask.RequestCancel()
	s.cancel()
	s.machine.End()
	s.deps.Renderer.CleanUp()
	s.log.Debug("session closed")
}

// Closed reports whether Close was called.
func (s *Session) Closed() bool { return s.closed }

// report surfaces err to the user and returns it unchanged.
func (s *Session) report(err error) error {
	if err != nil {
		errors.Report(s.deps.Errors, err)
	}
	return err
}

func (s *Session) Machine() *interaction.Machine           { return s.machine }
func (s *Session) Presentation() *presentation.Controller { return s.presentation }
func (s *Session) Marker() *fwdsearch.Marker               { return s.marker }
func (s *Session) Resolver() *links.Resolver               { return s.resolver }
func (s *Session) Options() Options                        { return s.opts }
