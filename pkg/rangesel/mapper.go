package rangesel

import "math"

// Geometry is the horizontal extent of the bar, in the same units as pointer
// coordinates.
type Geometry struct {
	Left  float64
	Width float64
}

// MapPointer converts a pointer coordinate into a candidate position. For a
// discrete domain of domainSize values the result is an index in
// [0, domainSize-1]; otherwise it is in [0, domainSize]. Results are rounded
// half away from zero.
//
// The second return value is false when the geometry is unusable, which
// happens before the bar has been laid out.
func MapPointer(pointerX float64, bar Geometry, domainSize float64, discrete bool) (float64, bool) {
	if !(bar.Width > 0) || math.IsInf(bar.Width, 0) || !finite(pointerX) || !finite(bar.Left) {
		return 0, false
	}
	relative := clamp((pointerX-bar.Left)/bar.Width, 0, 1)
	if discrete {
		return math.Round(relative * (domainSize - 1)), true
	}
	return math.Round(relative * domainSize), true
}
