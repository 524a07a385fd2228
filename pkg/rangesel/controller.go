package rangesel

import (
	"math"
	"strconv"
	"strings"
	"sync"
)

// Range is a pair of handle positions.
type Range struct {
	Low, High float64
}

// ControllerSpec specifies the configuration and initial state for a
// Controller.
type ControllerSpec struct {
	// The domain of handle values. Must be a Domain returned by NewContinuous
	// or NewDiscrete.
	Domain Domain
	// Initial handle positions: values for a continuous domain, indices for a
	// discrete one. If nil or invalid, the handles start at the two ends of
	// the domain.
	Initial *Range
	// Returns the current bar geometry. If nil, or if it returns false,
	// pointer moves are ignored.
	Geometry func() (Geometry, bool)
	// Captures pointer events during drags. May be nil.
	Host Host
	// Called with the new state after every committed change.
	OnChange func(State)
}

// HandleState is the state of one handle, as reported to views.
type HandleState struct {
	// Value for a continuous domain, index for a discrete one.
	Position float64
	// Domain value at Position.
	Value float64
	// Offset from the left end of the bar as a percentage in [0, 100].
	Offset float64
	Label  string
}

// State is a snapshot of a Controller.
type State struct {
	Low, High HandleState
	Dragging  bool
	// The side being dragged; only meaningful when Dragging is true.
	Active Side
}

// Handle returns the state of the handle on the given side.
func (s State) Handle(side Side) HandleState {
	if side == High {
		return s.High
	}
	return s.Low
}

// Controller owns the committed handle positions. Every candidate position,
// whether it comes from a drag, manual entry or a step, goes through CanMove
// and ExceedsLimit before it is committed, so the committed positions always
// satisfy lo <= low < high <= hi, where lo and hi are the domain bounds.
//
// A rejected candidate leaves the state unchanged.
type Controller struct {
	domain   Domain
	geometry func() (Geometry, bool)
	onChange func(State)
	session  *Session

	mutex sync.Mutex
	pos   [2]float64
}

// NewController creates a new Controller from the given spec.
func NewController(spec ControllerSpec) *Controller {
	if spec.Geometry == nil {
		spec.Geometry = func() (Geometry, bool) { return Geometry{}, false }
	}
	if spec.OnChange == nil {
		spec.OnChange = func(State) {}
	}
	c := &Controller{domain: spec.Domain, geometry: spec.Geometry, onChange: spec.OnChange}
	lo, hi := spec.Domain.Bounds()
	c.pos = [2]float64{lo, hi}
	if r := spec.Initial; r != nil {
		if validInitial(spec.Domain, *r) {
			c.pos = [2]float64{r.Low, r.High}
		} else {
			logger.Warnf("initial range %v invalid for %v, using bounds", *r, spec.Domain)
		}
	}
	c.session = NewSession(spec.Host, c.dragMove, func() { c.onChange(c.State()) })
	return c
}

func validInitial(d Domain, r Range) bool {
	lo, hi := d.Bounds()
	if !CanMove(r.Low, lo, hi) || !CanMove(r.High, lo, hi) || r.Low >= r.High {
		return false
	}
	if d.Discrete() && (r.Low != math.Trunc(r.Low) || r.High != math.Trunc(r.High)) {
		return false
	}
	return true
}

// Domain returns the domain of the Controller.
func (c *Controller) Domain() Domain { return c.domain }

// Range returns the committed handle positions.
func (c *Controller) Range() Range {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return Range{c.pos[Low], c.pos[High]}
}

// State returns a snapshot of the Controller.
func (c *Controller) State() State {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.stateLocked()
}

func (c *Controller) stateLocked() State {
	st := State{Low: c.handleState(c.pos[Low]), High: c.handleState(c.pos[High])}
	if side, dragging := c.session.Active(); dragging {
		st.Dragging, st.Active = true, side
	}
	return st
}

func (c *Controller) handleState(pos float64) HandleState {
	return HandleState{
		Position: pos, Value: c.domain.Value(pos),
		Offset: c.domain.Offset(pos), Label: c.domain.Label(pos)}
}

// BeginDrag starts dragging the handle on the given side.
func (c *Controller) BeginDrag(side Side) {
	c.session.Begin(side)
	c.onChange(c.State())
}

// PointerMove moves the handle being dragged towards the pointer coordinate.
// It does nothing if no drag is in progress.
func (c *Controller) PointerMove(x float64) { c.session.Move(x) }

// PointerUp ends the drag in progress, if any.
func (c *Controller) PointerUp() { c.session.End() }

// Close ends any drag in progress and releases its capture.
func (c *Controller) Close() { c.session.Close() }

func (c *Controller) dragMove(side Side, x float64) {
	g, ok := c.geometry()
	if !ok {
		return
	}
	candidate, ok := MapPointer(x, g, c.domain.Size(), c.domain.Discrete())
	if !ok {
		return
	}
	if !c.domain.Discrete() {
		candidate += c.domain.min
	}
	c.propose(side, candidate)
}

// ManualEntry sets the handle on the given side from user-typed text. For a
// continuous domain the text is the new value; for a discrete domain it must
// be one of the domain values, and the handle moves to its first occurrence.
// It returns whether the entry was committed.
func (c *Controller) ManualEntry(side Side, raw string) bool {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || !finite(v) {
		return false
	}
	if c.domain.Discrete() {
		i, ok := c.domain.Index(v)
		if !ok {
			return false
		}
		v = float64(i)
	}
	return c.propose(side, v)
}

// Step moves the handle on the given side by delta units of a continuous
// domain, or delta indices of a discrete one. The target is clamped to the
// domain bounds. It returns whether the handle moved.
func (c *Controller) Step(side Side, delta int) bool {
	lo, hi := c.domain.Bounds()
	c.mutex.Lock()
	candidate := clamp(c.pos[side]+float64(delta), lo, hi)
	c.mutex.Unlock()
	return c.propose(side, candidate)
}

// Commits the candidate if it passes the limit policy. The check and the
// commit happen under one lock, so a candidate is always checked against the
// committed opposing position.
func (c *Controller) propose(side Side, candidate float64) bool {
	lo, hi := c.domain.Bounds()
	if !CanMove(candidate, lo, hi) {
		return false
	}
	c.mutex.Lock()
	if ExceedsLimit(candidate, c.pos[side.Other()], side) || candidate == c.pos[side] {
		c.mutex.Unlock()
		return false
	}
	c.pos[side] = candidate
	st := c.stateLocked()
	c.mutex.Unlock()
	c.onChange(st)
	return true
}
