package rangesel

// A Host that records captures.
type fakeHost struct {
	listener Listener
	captures int
	releases int
}

func (h *fakeHost) Capture(l Listener) func() {
	h.captures++
	h.listener = l
	return func() {
		h.releases++
		h.listener = nil
	}
}

// Delivers a pointer move to the captured listener, if any.
func (h *fakeHost) move(x float64) {
	if h.listener != nil {
		h.listener.PointerMove(x)
	}
}

// Delivers a pointer release to the captured listener, if any.
func (h *fakeHost) up() {
	if h.listener != nil {
		h.listener.PointerUp()
	}
}
