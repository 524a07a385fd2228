package clitest

import (
	"errors"
	"os"
	"reflect"
	"testing"

	"src.elv.sh/rangebar/pkg/cli"
	"src.elv.sh/rangebar/pkg/cli/term"
)

func TestFakeTTY_Setup(t *testing.T) {
	tty, ttyCtrl := NewFakeTTY()
	restoreCalled := 0
	ttyCtrl.SetSetup(func() { restoreCalled++ }, nil)

	restore, err := tty.Setup()
	if err != nil {
		t.Errorf("Setup -> error %v, want nil", err)
	}
	restore()
	if restoreCalled != 1 {
		t.Errorf("Setup did not return restore")
	}
}

func TestFakeTTY_Size(t *testing.T) {
	tty, ttyCtrl := NewFakeTTY()
	ttyCtrl.SetSize(20, 30)
	h, w := tty.Size()
	if h != 20 || w != 30 {
		t.Errorf("Size -> (%v, %v), want (20, 30)", h, w)
	}
}

func TestFakeTTY_Events(t *testing.T) {
	tty, ttyCtrl := NewFakeTTY()
	ttyCtrl.Inject(term.K('a'), term.K('b'))
	if event, err := tty.ReadEvent(); event != term.K('a') || err != nil {
		t.Errorf("Got (%v, %v), want (%v, nil)", event, err, term.K('a'))
	}
	if event, err := tty.ReadEvent(); event != term.K('b') || err != nil {
		t.Errorf("Got (%v, %v), want (%v, nil)", event, err, term.K('b'))
	}
}

func TestFakeTTY_CloseReader(t *testing.T) {
	tty, _ := NewFakeTTY()
	tty.CloseReader()
	// Closing twice is harmless.
	tty.CloseReader()
	if _, err := tty.ReadEvent(); !errors.Is(err, term.ErrStopped) {
		t.Errorf("ReadEvent after CloseReader -> error %v, want ErrStopped", err)
	}
}

func TestFakeTTY_Signals(t *testing.T) {
	tty, ttyCtrl := NewFakeTTY()
	signals := tty.NotifySignals()
	ttyCtrl.InjectSignal(os.Interrupt, os.Kill)
	signal := <-signals
	if signal != os.Interrupt {
		t.Errorf("Got signal %v, want %v", signal, os.Interrupt)
	}
	signal = <-signals
	if signal != os.Kill {
		t.Errorf("Got signal %v, want %v", signal, os.Kill)
	}
}

func TestFakeTTY_Buffer(t *testing.T) {
	buf1 := term.NewBufferBuilder(10).Write("buf 1").Buffer()
	buf2 := term.NewBufferBuilder(10).Write("buf 2").Buffer()

	tty, ttyCtrl := NewFakeTTY()

	if ttyCtrl.LastBuffer() != nil {
		t.Errorf("LastBuffer -> %v, want nil", ttyCtrl.LastBuffer())
	}

	tty.UpdateBuffer(buf1, true)
	if ttyCtrl.LastBuffer() != buf1 {
		t.Errorf("LastBuffer -> %v, want %v", ttyCtrl.LastBuffer(), buf1)
	}
	ttyCtrl.TestBuffer(t, buf1)

	tty.UpdateBuffer(buf2, false)
	if ttyCtrl.LastBuffer() != buf2 {
		t.Errorf("LastBuffer -> %v, want %v", ttyCtrl.LastBuffer(), buf2)
	}
	ttyCtrl.TestBuffer(t, buf2)
	// Cannot test the failure branch as that will fail the test

	wantBufs := []*term.Buffer{buf1, buf2}
	if !reflect.DeepEqual(ttyCtrl.BufferHistory(), wantBufs) {
		t.Errorf("BufferHistory did not return {buf1, buf2}")
	}
}

func TestFakeTTY_PointerShapes(t *testing.T) {
	tty, ttyCtrl := NewFakeTTY()
	tty.SetPointerShape("grabbing")
	tty.SetPointerShape("default")
	want := []string{"grabbing", "default"}
	if got := ttyCtrl.PointerShapes(); !reflect.DeepEqual(got, want) {
		t.Errorf("PointerShapes -> %v, want %v", got, want)
	}
}

func TestFakeTTY_ClearScreen(t *testing.T) {
	fakeTTY, ttyCtrl := NewFakeTTY()
	for i := 0; i < 5; i++ {
		if cleared := ttyCtrl.ScreenCleared(); cleared != i {
			t.Errorf("ScreenCleared -> %v, want %v", cleared, i)
		}
		fakeTTY.ClearScreen()
	}
}

func TestGetTTYCtrl_FakeTTY(t *testing.T) {
	fakeTTY, ttyCtrl := NewFakeTTY()
	if got, ok := GetTTYCtrl(fakeTTY); got != ttyCtrl || !ok {
		t.Errorf("-> %v, %v, want %v, %v", got, ok, ttyCtrl, true)
	}
}

func TestGetTTYCtrl_RealTTY(t *testing.T) {
	realTTY := cli.NewTTY(os.Stdin, os.Stderr)
	if _, ok := GetTTYCtrl(realTTY); ok {
		t.Errorf("-> _, true, want _, false")
	}
}
