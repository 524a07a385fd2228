// Package rangesel implements the interaction core of a dual-handle range
// selector: the limit policy, the mapping from pointer coordinates to handle
// positions, the drag session and the controller tying them together.
//
// Nothing in this package does I/O. Views feed it pointer and keyboard input
// and render the State it reports.
package rangesel

// Side identifies one of the two handles.
type Side uint8

// Possible values of Side.
const (
	Low Side = iota
	High
)

// Other returns the opposing side.
func (s Side) Other() Side {
	if s == Low {
		return High
	}
	return Low
}

func (s Side) String() string {
	switch s {
	case Low:
		return "low"
	case High:
		return "high"
	}
	return "?"
}
