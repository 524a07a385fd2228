//go:build unix

package sys

import (
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

const sigWINCH = unix.SIGWINCH

func winSize(file *os.File) (row, col int) {
	col, row, err := term.GetSize(int(file.Fd()))
	if err != nil {
		return -1, -1
	}

	// Pick up a reasonable value for row and col
	// if they equal zero in special case,
	// e.g. serial console
	if col == 0 {
		col = 80
	}
	if row == 0 {
		row = 24
	}

	return row, col
}
