package tk

import (
	"testing"

	"src.elv.sh/rangebar/pkg/cli/term"
	"src.elv.sh/rangebar/pkg/ui"
)

func TestLabel_Render(t *testing.T) {
	testRender(t, []renderTest{
		{
			Name:  "styled text",
			Given: Label{ui.T("drag", ui.Bold)},
			Width: 10, Height: 2,
			Want: term.NewBufferBuilder(10).Write("drag", ui.Bold),
		},
		{
			Name:  "cropped to height",
			Given: Label{ui.T("a\nb\nc")},
			Width: 10, Height: 2,
			Want: term.NewBufferBuilder(10).Write("a\nb"),
		},
	})
}

func TestLabel_MaxHeight(t *testing.T) {
	if h := (Label{ui.T("a\nb\nc")}).MaxHeight(10, 1); h != 3 {
		t.Errorf("MaxHeight -> %d, want 3", h)
	}
	if (Label{}).Handle(term.K('a')) {
		t.Errorf("Label handled an event")
	}
}
