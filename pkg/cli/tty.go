package cli

import (
	"fmt"
	"os"
	"sync"

	"src.elv.sh/rangebar/pkg/cli/term"
	"src.elv.sh/rangebar/pkg/sys"
)

// TTY is the type the terminal dependency of the App needs to satisfy.
type TTY interface {
	// Setup sets up the terminal for the App: raw input, the alternate screen
	// and mouse reporting. The returned function undoes it.
	Setup() (restore func(), err error)

	// ReadEvent reads a terminal event. After CloseReader is called it returns
	// an error wrapping term.ErrStopped.
	ReadEvent() (term.Event, error)
	// CloseReader releases resources allocated for reading terminal events and
	// stops any outstanding ReadEvent call.
	CloseReader()

	// Size returns the height and width of the terminal.
	Size() (h, w int)
	// UpdateBuffer updates the terminal display to reflect the given buffer.
	UpdateBuffer(buf *term.Buffer, full bool) error
	// ClearScreen clears the terminal screen.
	ClearScreen()
	// SetPointerShape sets the shape of the mouse pointer.
	SetPointerShape(shape string)

	// NotifySignals start relaying signals and returns a channel on which
	// signals are delivered.
	NotifySignals() <-chan os.Signal
	// StopSignals stops the relaying of signals. After this function returns,
	// the channel returned by NotifySignals will no longer deliver signals.
	StopSignals()
}

type aTTY struct {
	in, out *os.File
	term.Writer

	readerMutex sync.Mutex
	r           term.Reader
	closed      bool

	sigCh chan os.Signal
}

// NewTTY returns a new TTY from input and output terminal files.
func NewTTY(in, out *os.File) TTY {
	return &aTTY{in: in, out: out, Writer: term.NewWriter(out)}
}

func (t *aTTY) Setup() (func(), error) {
	restore, err := term.Setup(t.in, t.out)
	if err != nil {
		return nil, err
	}
	t.readerMutex.Lock()
	t.closed = false
	t.readerMutex.Unlock()
	return func() {
		if err := restore(); err != nil {
			fmt.Fprintln(t.out, "failed to restore terminal properties:", err)
		}
	}, nil
}

func (t *aTTY) Size() (h, w int) {
	return sys.WinSize(t.out)
}

func (t *aTTY) reader() (term.Reader, error) {
	t.readerMutex.Lock()
	defer t.readerMutex.Unlock()
	if t.closed {
		return nil, term.ErrStopped
	}
	if t.r == nil {
		r, err := term.NewReader(t.in)
		if err != nil {
			return nil, err
		}
		t.r = r
	}
	return t.r, nil
}

func (t *aTTY) ReadEvent() (term.Event, error) {
	r, err := t.reader()
	if err != nil {
		return nil, err
	}
	return r.ReadEvent()
}

func (t *aTTY) CloseReader() {
	t.readerMutex.Lock()
	r := t.r
	t.r, t.closed = nil, true
	t.readerMutex.Unlock()
	if r != nil {
		r.Close()
	}
}

func (t *aTTY) NotifySignals() <-chan os.Signal {
	t.sigCh = sys.NotifySignals()
	return t.sigCh
}

func (t *aTTY) StopSignals() {
	if t.sigCh == nil {
		return
	}
	sys.StopSignals(t.sigCh)
	t.sigCh = nil
}
