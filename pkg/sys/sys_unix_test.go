//go:build unix

package sys

import (
	"io"
	"testing"

	"github.com/creack/pty"

	"src.elv.sh/rangebar/pkg/must"
)

func TestWaitForRead(t *testing.T) {
	r0, w0 := must.Pipe()
	r1, w1 := must.Pipe()
	defer closeAll(r0, w0, r1, w1)

	w0.WriteString("x")
	ready, err := WaitForRead(-1, r0, r1)
	if err != nil {
		t.Error("WaitForRead errors:", err)
	}
	if !ready[0] {
		t.Error("Want ready[0]")
	}
	if ready[1] {
		t.Error("Don't want ready[1]")
	}
}

func TestWaitForRead_Timeout(t *testing.T) {
	r, w := must.Pipe()
	defer closeAll(r, w)

	ready, err := WaitForRead(0, r)
	if err != nil {
		t.Error("WaitForRead errors:", err)
	}
	if ready[0] {
		t.Error("Don't want ready[0]")
	}
}

func TestWinSizeAndIsATTY(t *testing.T) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skip("cannot open pty:", err)
	}
	defer closeAll(ptmx, tty)
	must.OK(pty.Setsize(ptmx, &pty.Winsize{Rows: 30, Cols: 100}))

	if !IsATTY(tty.Fd()) {
		t.Errorf("IsATTY(pty) -> false, want true")
	}
	if row, col := WinSize(tty); row != 30 || col != 100 {
		t.Errorf("WinSize -> (%d, %d), want (30, 100)", row, col)
	}
}

func TestWinSize_NotTerminal(t *testing.T) {
	r, w := must.Pipe()
	defer closeAll(r, w)

	if IsATTY(r.Fd()) {
		t.Errorf("IsATTY(pipe) -> true, want false")
	}
	if row, col := WinSize(r); row != -1 || col != -1 {
		t.Errorf("WinSize -> (%d, %d), want (-1, -1)", row, col)
	}
}

func closeAll(files ...io.Closer) {
	for _, file := range files {
		file.Close()
	}
}
