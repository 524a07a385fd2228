package term

import (
	"strings"
	"testing"
)

func TestWriter_UpdateBuffer(t *testing.T) {
	sb := &strings.Builder{}
	testOutput := func(want string) {
		t.Helper()
		if sb.String() != want {
			t.Errorf("got %q, want %q", sb.String(), want)
		}
		sb.Reset()
	}

	w := NewWriter(sb)
	w.UpdateBuffer(NewBufferBuilder(10).Write("line 1").SetDotHere().Buffer(), false)
	testOutput(hideCursor + "\rline 1\r\033[6C" + showCursor)

	// Only the changed suffix is rewritten.
	w.UpdateBuffer(NewBufferBuilder(10).Write("line 2").SetDotHere().Buffer(), false)
	testOutput(hideCursor + "\r\033[5C\033[K2\r\033[6C" + showCursor)

	// A full refresh erases before writing.
	w.UpdateBuffer(NewBufferBuilder(10).Write("x").Buffer(), true)
	testOutput(hideCursor + "\r \033[J\rx\r" + showCursor)
}

func TestWriter_Cursor(t *testing.T) {
	sb := &strings.Builder{}
	w := NewWriter(sb)
	w.HideCursor()
	w.ShowCursor()
	w.ClearScreen()
	want := hideCursor + showCursor + "\033[H\033[2J"
	if sb.String() != want {
		t.Errorf("got %q, want %q", sb.String(), want)
	}
}

func TestWriter_SetPointerShape(t *testing.T) {
	sb := &strings.Builder{}
	NewWriter(sb).SetPointerShape("grabbing")
	if want := "\033]22;grabbing\007"; sb.String() != want {
		t.Errorf("got %q, want %q", sb.String(), want)
	}
}
