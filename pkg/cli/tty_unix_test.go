//go:build unix

package cli_test

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/creack/pty"
	"golang.org/x/sys/unix"

	. "src.elv.sh/rangebar/pkg/cli"
	"src.elv.sh/rangebar/pkg/cli/term"
	"src.elv.sh/rangebar/pkg/testutil"
)

func TestTTYSignal(t *testing.T) {
	tty := NewTTY(os.Stdin, os.Stderr)
	sigch := tty.NotifySignals()

	err := unix.Kill(unix.Getpid(), unix.SIGWINCH)
	if err != nil {
		t.Skip("cannot send SIGWINCH to myself:", err)
	}

	select {
	case sig := <-sigch:
		if sig != unix.SIGWINCH {
			t.Errorf("Got signal %v, want SIGWINCH", sig)
		}
	case <-time.After(testutil.Scaled(time.Second)):
		t.Fatal("SIGWINCH not delivered")
	}

	tty.StopSignals()

	if sig, ok := <-sigch; ok {
		t.Errorf("Got signal %v after StopSignals, want closed channel", sig)
	}
}

func TestTTY_ReadEventAndCloseReader(t *testing.T) {
	ptmx, tty := openPty(t)
	ttyIn := NewTTY(tty, tty)
	restore, err := ttyIn.Setup()
	if err != nil {
		t.Fatal(err)
	}
	defer restore()

	if _, err := ptmx.Write([]byte("x")); err != nil {
		t.Fatal(err)
	}
	event, err := ttyIn.ReadEvent()
	if err != nil || event != term.K('x') {
		t.Errorf("ReadEvent -> (%v, %v), want (%v, nil)", event, err, term.K('x'))
	}

	ttyIn.CloseReader()
	if _, err := ttyIn.ReadEvent(); !errors.Is(err, term.ErrStopped) {
		t.Errorf("ReadEvent after CloseReader -> %v, want ErrStopped", err)
	}
}

func TestTTY_Size(t *testing.T) {
	ptmx, tty := openPty(t)
	if err := pty.Setsize(ptmx, &pty.Winsize{Rows: 24, Cols: 80}); err != nil {
		t.Skip("cannot set pty size:", err)
	}
	if h, w := NewTTY(tty, tty).Size(); h != 24 || w != 80 {
		t.Errorf("Size -> (%v, %v), want (24, 80)", h, w)
	}
}

func openPty(t *testing.T) (ptmx, tty *os.File) {
	t.Helper()
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skip("cannot open pty:", err)
	}
	t.Cleanup(func() {
		ptmx.Close()
		tty.Close()
	})
	return ptmx, tty
}
