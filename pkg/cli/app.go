// Package cli implements a generic full-screen terminal app that hosts a
// single mouse-aware widget.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"syscall"

	"golang.org/x/sync/errgroup"

	"src.elv.sh/rangebar/pkg/cli/term"
	"src.elv.sh/rangebar/pkg/cli/tk"
	"src.elv.sh/rangebar/pkg/logutil"
	"src.elv.sh/rangebar/pkg/rangesel"
	"src.elv.sh/rangebar/pkg/sys"
	"src.elv.sh/rangebar/pkg/ui"
)

var logger = logutil.GetLogger("[cli] ")

// ErrAborted is returned by Run when the App is aborted, either by Abort or by
// a terminating signal.
var ErrAborted = errors.New("aborted")

// Pointer shapes set while a capture is held and after it is released.
const (
	grabbingPointer = "grabbing"
	defaultPointer  = "default"
)

// App represents a CLI app.
type App interface {
	// Run sets up the terminal and runs the event loop until Accept or Abort
	// is called, a terminating signal arrives or ctx is done. It restores the
	// terminal and releases any mouse capture before returning. This function
	// is not re-entrant.
	Run(ctx context.Context) error

	// Capture routes all mouse motion and button releases to l until the
	// returned function is called, and shows a grabbing pointer meanwhile.
	// It implements rangesel.Host.
	Capture(l rangesel.Listener) (release func())

	// MutateState mutates the state of the app.
	MutateState(f func(*State))
	// CopyState returns a copy of the a state.
	CopyState() State

	// Widget returns the main widget.
	Widget() tk.Widget

	// Accept causes Run to return nil. If this method is called when an event
	// is being handled, the main loop will exit after the handler returns.
	Accept()
	// Abort causes Run to return ErrAborted.
	Abort()

	// Redraw requests a redraw. It never blocks and can be called regardless of
	// whether the App is active or not.
	Redraw()
	// RedrawFull requests a full redraw. It never blocks and can be called
	// regardless of whether the App is active or not.
	RedrawFull()
	// Notify adds a note and requests a redraw.
	Notify(note ui.Text)
}

// AppSpec specifies the configuration and initial state for an App.
type AppSpec struct {
	TTY TTY
	// Shown above the widget.
	Header ui.Text
	// Builds the main widget. It is given the App so that the widget can use
	// it as its rangesel.Host.
	Widget func(App) tk.Widget
	// Bindings consulted when the widget does not handle a key.
	GlobalBindings tk.Bindings

	State State
}

// State represents mutable state of an App.
type State struct {
	// Notes shown below the widget, oldest first.
	Notes []ui.Text
}

// Maximum number of notes kept in State.
const maxNotes = 16

type app struct {
	loop *loop

	TTY            TTY
	Header         ui.Text
	GlobalBindings tk.Bindings

	StateMutex sync.RWMutex
	State      State

	widget tk.Widget

	captureMutex sync.Mutex
	captured     rangesel.Listener
	captureID    int

	// Lines taken by the header in the last redraw. Only accessed from the
	// loop.
	headerLines int
}

// NewApp creates a new App from the given specification.
func NewApp(spec AppSpec) App {
	lp := newLoop()
	a := &app{
		loop:           lp,
		TTY:            spec.TTY,
		Header:         spec.Header,
		GlobalBindings: spec.GlobalBindings,
		State:          spec.State,
	}
	if a.TTY == nil {
		a.TTY = NewTTY(os.Stdin, os.Stderr)
	}
	if a.GlobalBindings == nil {
		a.GlobalBindings = tk.DummyBindings{}
	}
	if spec.Widget != nil {
		a.widget = spec.Widget(a)
	}
	if a.widget == nil {
		a.widget = tk.Empty{}
	}
	lp.HandleCb(a.handle)
	lp.RedrawCb(a.redraw)
	return a
}

func (a *app) MutateState(f func(*State)) {
	a.StateMutex.Lock()
	defer a.StateMutex.Unlock()
	f(&a.State)
}

func (a *app) CopyState() State {
	a.StateMutex.RLock()
	defer a.StateMutex.RUnlock()
	return State{append([]ui.Text(nil), a.State.Notes...)}
}

func (a *app) Widget() tk.Widget { return a.widget }

func (a *app) Accept() { a.loop.Return(nil) }

func (a *app) Abort() { a.loop.Return(ErrAborted) }

func (a *app) Redraw() { a.loop.Redraw(false) }

func (a *app) RedrawFull() { a.loop.Redraw(true) }

func (a *app) Notify(note ui.Text) {
	a.MutateState(func(s *State) {
		s.Notes = append(s.Notes, note)
		if len(s.Notes) > maxNotes {
			s.Notes = s.Notes[len(s.Notes)-maxNotes:]
		}
	})
	a.Redraw()
}

func (a *app) Capture(l rangesel.Listener) func() {
	a.captureMutex.Lock()
	if a.captured != nil {
		logger.Warn("capture taken over by a new listener")
	}
	a.captureID++
	id := a.captureID
	a.captured = l
	a.captureMutex.Unlock()
	a.TTY.SetPointerShape(grabbingPointer)

	return func() {
		a.captureMutex.Lock()
		if a.captureID != id {
			a.captureMutex.Unlock()
			return
		}
		a.captured = nil
		a.captureID++
		a.captureMutex.Unlock()
		a.TTY.SetPointerShape(defaultPointer)
	}
}

func (a *app) capturedListener() rangesel.Listener {
	a.captureMutex.Lock()
	defer a.captureMutex.Unlock()
	return a.captured
}

// Ends a capture still held when the loop returns. The listener gets a
// PointerUp so that it can release the capture itself; a capture that
// survives that is dropped.
func (a *app) releaseDanglingCapture() {
	l := a.capturedListener()
	if l == nil {
		return
	}
	logger.Debug("ending capture held at teardown")
	l.PointerUp()

	a.captureMutex.Lock()
	stuck := a.captured != nil
	if stuck {
		a.captured = nil
		a.captureID++
	}
	a.captureMutex.Unlock()
	if stuck {
		logger.Warn("dropped a capture that was not released at teardown")
		a.TTY.SetPointerShape(defaultPointer)
	}
}

func (a *app) Run(ctx context.Context) (err error) {
	restore, err := a.TTY.Setup()
	if err != nil {
		return err
	}
	defer restore()

	done := make(chan struct{})
	g, gctx := errgroup.WithContext(ctx)
	sigCh := a.TTY.NotifySignals()

	g.Go(func() error {
		for {
			event, err := a.TTY.ReadEvent()
			if err == nil {
				if !a.loop.InputUntil(event, done) {
					return nil
				}
				continue
			}
			if errors.Is(err, term.ErrStopped) {
				return nil
			}
			select {
			case <-done:
				return nil
			default:
			}
			if term.IsReadErrorRecoverable(err) {
				logger.Debugf("recoverable read error: %v", err)
				continue
			}
			return fmt.Errorf("read terminal: %w", err)
		}
	})
	g.Go(func() error {
		for {
			select {
			case sig, ok := <-sigCh:
				if !ok || !a.loop.InputUntil(sig, done) {
					return nil
				}
			case <-done:
				return nil
			}
		}
	})
	g.Go(func() error {
		select {
		case <-gctx.Done():
			a.loop.Return(context.Cause(gctx))
		case <-done:
		}
		return nil
	})

	a.loop.Redraw(true)
	err = a.loop.Run()

	close(done)
	a.releaseDanglingCapture()
	a.TTY.CloseReader()
	a.TTY.StopSignals()
	if gErr := g.Wait(); gErr != nil {
		return gErr
	}
	return err
}

func (a *app) handle(e event) {
	switch e := e.(type) {
	case os.Signal:
		switch e {
		case syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM:
			logger.Debugf("aborting on %v", e)
			a.Abort()
		case sys.SIGWINCH:
			a.RedrawFull()
		}
	case term.MouseEvent:
		a.handleMouse(e)
	case term.Event:
		handled := a.widget.Handle(e)
		if !handled {
			handled = a.GlobalBindings.Handle(a.widget, e)
		}
		if !handled {
			if k, ok := e.(term.KeyEvent); ok {
				a.Notify(ui.T("Unbound key: " + ui.Key(k).String()))
			}
		}
	}
}

func (a *app) handleMouse(e term.MouseEvent) {
	// Terminal positions are 1-based and include the header.
	local := e
	local.Line = e.Line - 1 - a.headerLines
	local.Col = e.Col - 1

	if l := a.capturedListener(); l != nil {
		switch {
		case !e.Down:
			l.PointerUp()
		case e.Motion:
			l.PointerMove(float64(local.Col))
		}
		return
	}
	if local.Line < 0 {
		return
	}
	a.widget.Handle(local)
}

func (a *app) redraw(flag redrawFlag) {
	height, width := a.TTY.Size()
	if height < 1 || width < 1 {
		return
	}

	var buf *term.Buffer
	if len(a.Header) > 0 {
		buf = term.NewBufferBuilder(width).WriteStyled(a.Header).Buffer()
		if len(buf.Lines) >= height {
			// No room for the header.
			buf = nil
		}
	}
	a.headerLines = 0
	if buf != nil {
		a.headerLines = len(buf.Lines)
	}

	widgetHeight := max(1, min(a.widget.MaxHeight(width, height), height-a.headerLines))
	bufWidget := a.widget.Render(width, widgetHeight)
	if buf == nil {
		buf = bufWidget
	} else {
		buf.ExtendDown(bufWidget, true)
	}

	// Show as many of the latest notes as fit.
	notes := a.CopyState().Notes
	if room := height - len(buf.Lines); room > 0 && len(notes) > 0 {
		if len(notes) > room {
			notes = notes[len(notes)-room:]
		}
		buf.ExtendDown(renderNotes(notes, width), false)
	}
	buf.TrimToLines(0, height)

	if err := a.TTY.UpdateBuffer(buf, flag&fullRedraw != 0); err != nil {
		logger.Warnf("update buffer: %v", err)
	}
}

// Renders notes, one per line.
func renderNotes(notes []ui.Text, width int) *term.Buffer {
	bb := term.NewBufferBuilder(width)
	for i, note := range notes {
		if i > 0 {
			bb.Newline()
		}
		bb.WriteStyled(note)
	}
	return bb.Buffer()
}
