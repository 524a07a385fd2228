package tk

import (
	"src.elv.sh/rangebar/pkg/cli/term"
	"src.elv.sh/rangebar/pkg/rangesel"
	"src.elv.sh/rangebar/pkg/ui"
)

// Track is a Renderer for the bar of a RangeBar: a horizontal line with a
// handle at each end of the selected interval.
type Track struct {
	// Offsets of the handles, as percentages of the track.
	Low, High float64
	// Which handle is focused, if ShowFocus is true.
	Focus     rangesel.Side
	ShowFocus bool
	Styles    RangeBarStyles
}

const (
	trackRune    = "─"
	selectedRune = "━"
	handleRune   = "●"
)

// Render renders the track on one line of the given width.
func (t Track) Render(width, height int) *term.Buffer {
	bb := term.NewBufferBuilder(width)
	t.write(bb, width)
	return bb.Buffer()
}

func (t Track) write(bb *term.BufferBuilder, width int) {
	lowCell, highCell := handleCell(t.Low, width), handleCell(t.High, width)
	for i := 0; i < width; i++ {
		switch {
		case i == lowCell || i == highCell:
			side := rangesel.Low
			if i == highCell && (lowCell != highCell || t.Focus == rangesel.High) {
				side = rangesel.High
			}
			style := t.Styles.Handle
			if t.ShowFocus && side == t.Focus {
				style = ui.Stylings(style, t.Styles.Focused)
			}
			bb.Write(handleRune, style)
		case lowCell < i && i < highCell:
			bb.Write(selectedRune, t.Styles.Selected)
		default:
			bb.Write(trackRune, t.Styles.Track)
		}
	}
}

// Returns the cell of a handle at the given offset on a track of the given
// width. Offsets at or beyond the ends are flush with the first or last cell.
func handleCell(offset float64, width int) int {
	switch {
	case offset <= 0:
		return 0
	case offset >= 100:
		return width - 1
	}
	return int(offset/100*float64(width-1) + 0.5)
}
