//go:build unix

package term

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

const (
	enterAltScreen = "\033[?1049h"
	leaveAltScreen = "\033[?1049l"
	// Report button presses, releases and motion with a button held (1002),
	// encoded as SGR sequences (1006).
	enableMouse  = "\033[?1002h\033[?1006h"
	disableMouse = "\033[?1006l\033[?1002l"
	// Reset the pointer to the terminal's default shape.
	resetPointer = "\033]22;\007"

	setupSeq   = enterAltScreen + enableMouse + hideCursor
	restoreSeq = resetPointer + disableMouse + showCursor + leaveAltScreen
)

// Setup sets up the terminal for a full-screen mouse-driven UI: it puts the
// input terminal in raw mode, switches the output to the alternate screen and
// turns on mouse reporting. It returns a function that undoes all of these
// steps.
func Setup(in, out *os.File) (func() error, error) {
	fd := int(in.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("make raw: %w", err)
	}
	if _, err := out.WriteString(setupSeq); err != nil {
		term.Restore(fd, state)
		return nil, fmt.Errorf("write setup sequence: %w", err)
	}
	logger.Debug("terminal set up")

	return func() error {
		_, writeErr := out.WriteString(restoreSeq)
		restoreErr := term.Restore(fd, state)
		logger.Debug("terminal restored")
		if writeErr != nil {
			return fmt.Errorf("write restore sequence: %w", writeErr)
		}
		return restoreErr
	}, nil
}
