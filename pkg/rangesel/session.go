package rangesel

import (
	"sync"

	"src.elv.sh/rangebar/pkg/logutil"
)

var logger = logutil.GetLogger("[rangesel] ")

// Listener receives pointer events captured for the duration of a drag.
type Listener interface {
	PointerMove(x float64)
	PointerUp()
}

// Host routes pointer events to a captured Listener, regardless of where the
// pointer is, and sets the pointer shape while the capture is held. The
// returned function releases the capture and resets the pointer shape.
type Host interface {
	Capture(l Listener) (release func())
}

// Session is the drag state machine. It is either idle or dragging one side.
//
// While dragging, the Session holds a capture from its Host and forwards
// captured moves to its move function. The capture is released exactly once,
// when the drag ends or the Session is closed.
type Session struct {
	host Host
	move func(Side, float64)
	end  func()

	mutex    sync.Mutex
	dragging bool
	side     Side
	release  func()
}

// NewSession creates an idle Session. The move function is called for every
// move during a drag, and the end function after every drag ends; either may
// be nil. The host may also be nil, in which case nothing is captured and only
// direct calls to Move and End drive the Session.
func NewSession(host Host, move func(Side, float64), end func()) *Session {
	if move == nil {
		move = func(Side, float64) {}
	}
	if end == nil {
		end = func() {}
	}
	return &Session{host: host, move: move, end: end}
}

// Active returns the side being dragged and whether a drag is in progress.
func (s *Session) Active() (Side, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.side, s.dragging
}

// Begin starts dragging the given side. If a drag is already in progress, it
// switches to the given side and keeps the existing capture.
func (s *Session) Begin(side Side) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.side = side
	if s.dragging {
		logger.Debugf("drag switched to %v", side)
		return
	}
	s.dragging = true
	release := func() {}
	if s.host != nil {
		if r := s.host.Capture(s); r != nil {
			release = r
		}
	}
	var once sync.Once
	s.release = func() { once.Do(release) }
	logger.Debugf("drag began on %v", side)
}

// Move forwards a pointer coordinate for the side being dragged. It does
// nothing when idle.
func (s *Session) Move(x float64) {
	side, dragging := s.Active()
	if !dragging {
		return
	}
	s.move(side, x)
}

// End finishes the drag and releases the capture. It does nothing when idle.
func (s *Session) End() {
	s.mutex.Lock()
	if !s.dragging {
		s.mutex.Unlock()
		return
	}
	s.dragging = false
	release := s.release
	s.release = nil
	s.mutex.Unlock()
	logger.Debug("drag ended")
	release()
	s.end()
}

// Close ends any drag in progress. It is safe to call any number of times.
func (s *Session) Close() { s.End() }

// PointerMove implements Listener by calling Move.
func (s *Session) PointerMove(x float64) { s.Move(x) }

// PointerUp implements Listener by calling End.
func (s *Session) PointerUp() { s.End() }
