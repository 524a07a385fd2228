package rangesel

// CanMove reports whether a candidate lies within [domainMin, domainMax].
// Both ends are inclusive. NaN is never movable.
func CanMove(candidate, domainMin, domainMax float64) bool {
	return domainMin <= candidate && candidate <= domainMax
}

// ExceedsLimit reports whether moving the handle on the given side to the
// candidate would make it reach or cross the opposing handle. Equality counts
// as a violation, so committed handles are always strictly ordered.
func ExceedsLimit(candidate, opposing float64, side Side) bool {
	switch side {
	case Low:
		return candidate >= opposing
	case High:
		return candidate <= opposing
	}
	return true
}
