package tk

import (
	"strings"
	"sync"

	"src.elv.sh/rangebar/pkg/cli/term"
	"src.elv.sh/rangebar/pkg/rangesel"
	"src.elv.sh/rangebar/pkg/ui"
	"src.elv.sh/rangebar/pkg/wcwidth"
)

// RangeBar is a Widget for selecting a range with two handles. It renders as
// a single line:
//
//	[ low ] ├───●━━━━━━━━━●───┤ [ high ]
//
// The handles can be dragged with the mouse or moved with Left and Right. With
// a continuous domain, the numbers on both sides can also be edited.
type RangeBar interface {
	Widget
	// Controller returns the underlying controller.
	Controller() *rangesel.Controller
	// Geometry returns the position of the track in the last rendered
	// buffer, in cells. It is unavailable before the first Render and when
	// the width is too small to show the track.
	Geometry() (rangesel.Geometry, bool)
	// Close ends any drag in progress.
	Close()
	// MutateState mutates the state.
	MutateState(f func(*RangeBarState))
	// CopyState returns a copy of the state.
	CopyState() RangeBarState
}

// RangeBarSpec specifies the configuration and initial state for RangeBar.
type RangeBarSpec struct {
	// Key bindings.
	Bindings Bindings
	// Domain of the handles. Continuous domains get editable fields.
	Domain rangesel.Domain
	// Initial handle positions; see rangesel.ControllerSpec.
	Initial *rangesel.Range
	// Captures the mouse during drags.
	Host rangesel.Host
	// Stylings; zero fields are filled with defaults.
	Styles RangeBarStyles
	// Called after every committed change.
	OnChange func(rangesel.State)
	// State. Specifies the initial state if used in NewRangeBar.
	State RangeBarState
}

// RangeBarStyles contains the stylings used by RangeBar.
type RangeBarStyles struct {
	Track    ui.Styling
	Selected ui.Styling
	Handle   ui.Styling
	Focused  ui.Styling
	Error    ui.Styling
}

// DefaultRangeBarStyles are the stylings used when RangeBarSpec leaves them
// unset.
var DefaultRangeBarStyles = RangeBarStyles{
	Track:    ui.FgBrightBlack,
	Selected: ui.FgBlue,
	Handle:   ui.Stylings(ui.FgBlue, ui.Bold),
	Focused:  ui.Inverse,
	Error:    ui.FgRed,
}

func (s *RangeBarStyles) fillDefaults() {
	fill := func(p *ui.Styling, d ui.Styling) {
		if *p == nil {
			*p = d
		}
	}
	fill(&s.Track, DefaultRangeBarStyles.Track)
	fill(&s.Selected, DefaultRangeBarStyles.Selected)
	fill(&s.Handle, DefaultRangeBarStyles.Handle)
	fill(&s.Focused, DefaultRangeBarStyles.Focused)
	fill(&s.Error, DefaultRangeBarStyles.Error)
}

// RangeBarState keeps the mutable state of RangeBar. The handle positions
// live in the Controller.
type RangeBarState struct {
	// Side whose field and handle are focused.
	Focus rangesel.Side
	// Whether the focused field is being edited, and the text typed so far.
	Editing bool
	Pending string
	// Whether the last submitted edit was rejected.
	Rejected bool
}

type rangeBar struct {
	// Mutex for synchronizing access to the state.
	StateMutex sync.RWMutex
	RangeBarSpec

	ctrl       *rangesel.Controller
	fieldWidth int

	layoutMutex sync.Mutex
	layout      rangeBarLayout
}

// Layout of the last rendered line, in cells.
type rangeBarLayout struct {
	ok         bool
	trackLeft  int
	trackWidth int
	highField  int
}

// NewRangeBar builds a RangeBar from the given spec.
func NewRangeBar(spec RangeBarSpec) RangeBar {
	if spec.Bindings == nil {
		spec.Bindings = DummyBindings{}
	}
	if spec.OnChange == nil {
		spec.OnChange = func(rangesel.State) {}
	}
	spec.Styles.fillDefaults()
	w := &rangeBar{RangeBarSpec: spec}
	w.ctrl = rangesel.NewController(rangesel.ControllerSpec{
		Domain: spec.Domain, Initial: spec.Initial,
		Geometry: w.Geometry, Host: spec.Host,
		OnChange: func(s rangesel.State) { w.OnChange(s) },
	})
	w.fieldWidth = fieldWidth(spec.Domain)
	return w
}

// The width of the text in a field, enough for the label of every position.
func fieldWidth(d rangesel.Domain) int {
	width := 3
	lo, hi := d.Bounds()
	positions := []float64{lo, hi}
	if d.Discrete() {
		positions = positions[:0]
		for i := lo; i <= hi; i++ {
			positions = append(positions, i)
		}
	}
	for _, pos := range positions {
		width = max(width, wcwidth.Of(d.Label(pos)))
	}
	return width
}

// Cells taken by a field, including the brackets and padding.
func (w *rangeBar) fieldCells() int { return w.fieldWidth + 4 }

func (w *rangeBar) Controller() *rangesel.Controller { return w.ctrl }

func (w *rangeBar) Geometry() (rangesel.Geometry, bool) {
	w.layoutMutex.Lock()
	defer w.layoutMutex.Unlock()
	if !w.layout.ok {
		return rangesel.Geometry{}, false
	}
	return rangesel.Geometry{
		Left:  float64(w.layout.trackLeft),
		Width: float64(w.layout.trackWidth - 1),
	}, true
}

func (w *rangeBar) setLayout(l rangeBarLayout) {
	w.layoutMutex.Lock()
	defer w.layoutMutex.Unlock()
	w.layout = l
}

func (w *rangeBar) getLayout() rangeBarLayout {
	w.layoutMutex.Lock()
	defer w.layoutMutex.Unlock()
	return w.layout
}

func (w *rangeBar) Close() { w.ctrl.Close() }

func (w *rangeBar) Render(width, height int) *term.Buffer {
	state := w.CopyState()
	cs := w.ctrl.State()
	bb := term.NewBufferBuilder(width)

	// Two fields plus " ├" and "┤ " around the track.
	trackWidth := width - 2*w.fieldCells() - 4
	if trackWidth < 2 {
		w.setLayout(rangeBarLayout{})
		bb.Write(wcwidth.Trim(cs.Low.Label+" - "+cs.High.Label, width))
		return bb.Buffer()
	}

	w.writeField(bb, rangesel.Low, state, cs)
	bb.Write(" ├", w.Styles.Track)
	trackLeft := bb.Col
	Track{Low: cs.Low.Offset, High: cs.High.Offset,
		Focus: state.Focus, ShowFocus: true, Styles: w.Styles}.write(bb, trackWidth)
	bb.Write("┤ ", w.Styles.Track)
	highField := bb.Col
	w.writeField(bb, rangesel.High, state, cs)

	w.setLayout(rangeBarLayout{ok: true,
		trackLeft: trackLeft, trackWidth: trackWidth, highField: highField})
	return bb.Buffer()
}

func (w *rangeBar) writeField(bb *term.BufferBuilder, side rangesel.Side, state RangeBarState, cs rangesel.State) {
	focused := side == state.Focus
	text := cs.Handle(side).Label
	if focused && state.Editing {
		text = state.Pending
		if tw := wcwidth.Of(text); tw > w.fieldWidth {
			// Show the end of long input.
			text = string([]rune(text)[len([]rune(text))-w.fieldWidth:])
		}
	}
	var style ui.Styling
	switch {
	case focused && state.Rejected:
		style = ui.Stylings(w.Styles.Error, w.Styles.Focused)
	case focused:
		style = w.Styles.Focused
	}
	bb.Write("[ ")
	bb.WriteSpaces(w.fieldWidth-wcwidth.Of(text), style)
	bb.Write(text, style)
	if focused {
		bb.SetDotHere()
	}
	bb.Write(" ]")
}

func (w *rangeBar) MaxHeight(width, height int) int { return 1 }

func (w *rangeBar) Handle(event term.Event) bool {
	if w.Bindings.Handle(w, event) {
		return true
	}
	switch event := event.(type) {
	case term.KeyEvent:
		return w.handleKey(ui.Key(event))
	case term.MouseEvent:
		return w.handleMouse(event)
	}
	return false
}

func (w *rangeBar) handleKey(k ui.Key) bool {
	state := w.CopyState()
	switch k {
	case ui.K(ui.Tab), ui.K(ui.Tab, ui.Shift):
		w.MutateState(func(s *RangeBarState) {
			*s = RangeBarState{Focus: s.Focus.Other()}
		})
		return true
	case ui.K(ui.Left), ui.K(ui.Right):
		delta := 1
		if k.Rune == ui.Left {
			delta = -1
		}
		w.MutateState(func(s *RangeBarState) { *s = RangeBarState{Focus: s.Focus} })
		w.ctrl.Step(state.Focus, delta)
		return true
	case ui.K(ui.Enter):
		if !state.Editing {
			return false
		}
		if w.ctrl.ManualEntry(state.Focus, state.Pending) {
			w.MutateState(func(s *RangeBarState) { *s = RangeBarState{Focus: s.Focus} })
		} else {
			logger.Debugf("rejected %s entry %q", state.Focus, state.Pending)
			w.MutateState(func(s *RangeBarState) { s.Rejected = true })
		}
		return true
	case ui.K('[', ui.Ctrl): // Escape
		if !state.Editing {
			return false
		}
		w.MutateState(func(s *RangeBarState) { *s = RangeBarState{Focus: s.Focus} })
		return true
	case ui.K(ui.Backspace):
		if !state.Editing {
			return false
		}
		w.MutateState(func(s *RangeBarState) {
			r := []rune(s.Pending)
			if len(r) > 0 {
				r = r[:len(r)-1]
			}
			s.Pending = string(r)
			s.Editing = s.Pending != ""
			s.Rejected = false
		})
		return true
	}
	if k.Mod == 0 && isNumberRune(k.Rune) && !w.Domain.Discrete() {
		w.MutateState(func(s *RangeBarState) {
			s.Editing = true
			s.Pending += string(k.Rune)
			s.Rejected = false
		})
		return true
	}
	return false
}

func isNumberRune(r rune) bool {
	return ('0' <= r && r <= '9') || strings.ContainsRune(".-+eE", r)
}

func (w *rangeBar) handleMouse(ev term.MouseEvent) bool {
	if !ev.Down || ev.Motion || ev.Button != 0 || ev.Line != 0 {
		return false
	}
	l := w.getLayout()
	if !l.ok {
		return false
	}
	focus := func(side rangesel.Side) {
		w.MutateState(func(s *RangeBarState) {
			if s.Focus != side {
				*s = RangeBarState{Focus: side}
			}
		})
	}
	switch col := ev.Col; {
	case col < w.fieldCells():
		focus(rangesel.Low)
		return true
	case col >= l.highField:
		focus(rangesel.High)
		return true
	case l.trackLeft <= col && col < l.trackLeft+l.trackWidth:
		side, ok := w.handleAt(col-l.trackLeft, l.trackWidth)
		if !ok {
			return true
		}
		focus(side)
		w.ctrl.BeginDrag(side)
		return true
	}
	return false
}

// Returns the handle at a cell of the track. When both handles share the cell,
// the focused one wins.
func (w *rangeBar) handleAt(cell, trackWidth int) (rangesel.Side, bool) {
	cs := w.ctrl.State()
	onLow := handleCell(cs.Low.Offset, trackWidth) == cell
	onHigh := handleCell(cs.High.Offset, trackWidth) == cell
	switch {
	case onLow && onHigh:
		return w.CopyState().Focus, true
	case onLow:
		return rangesel.Low, true
	case onHigh:
		return rangesel.High, true
	}
	return rangesel.Low, false
}

func (w *rangeBar) MutateState(f func(*RangeBarState)) {
	w.StateMutex.Lock()
	defer w.StateMutex.Unlock()
	f(&w.State)
}

func (w *rangeBar) CopyState() RangeBarState {
	w.StateMutex.RLock()
	defer w.StateMutex.RUnlock()
	return w.State
}
