package rangesel

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrBadDomain is wrapped by errors returned from NewContinuous and
// NewDiscrete.
var ErrBadDomain = errors.New("bad domain")

// Domain is the set of legal handle values. It is either a continuous interval
// or a discrete list of values, in which case handle positions are indices
// into the list. A Domain is immutable.
type Domain struct {
	discrete bool
	min, max float64
	values   []float64
}

// NewContinuous returns a continuous Domain spanning [min, max].
func NewContinuous(min, max float64) (Domain, error) {
	if !finite(min) || !finite(max) {
		return Domain{}, fmt.Errorf("%w: non-finite bound in [%v, %v]", ErrBadDomain, min, max)
	}
	if min >= max {
		return Domain{}, fmt.Errorf("%w: min %v is not less than max %v", ErrBadDomain, min, max)
	}
	return Domain{min: min, max: max}, nil
}

// NewDiscrete returns a discrete Domain over the given values, which are
// copied. At least two values are needed.
func NewDiscrete(values []float64) (Domain, error) {
	if len(values) < 2 {
		return Domain{}, fmt.Errorf("%w: need at least 2 values, got %d", ErrBadDomain, len(values))
	}
	for i, v := range values {
		if !finite(v) {
			return Domain{}, fmt.Errorf("%w: value %d is %v", ErrBadDomain, i, v)
		}
	}
	return Domain{discrete: true, values: append([]float64(nil), values...)}, nil
}

// Discrete returns whether the domain is a list of values.
func (d Domain) Discrete() bool { return d.discrete }

// Bounds returns the smallest and largest handle position. For a discrete
// domain these are indices.
func (d Domain) Bounds() (lo, hi float64) {
	if d.discrete {
		return 0, float64(len(d.values) - 1)
	}
	return d.min, d.max
}

// Size is the domainSize argument to MapPointer: the number of values for a
// discrete domain and the width of the interval for a continuous one.
func (d Domain) Size() float64 {
	if d.discrete {
		return float64(len(d.values))
	}
	return d.max - d.min
}

// Values returns a copy of the values of a discrete domain, or nil for a
// continuous one.
func (d Domain) Values() []float64 {
	if !d.discrete {
		return nil
	}
	return append([]float64(nil), d.values...)
}

// Value converts a handle position to a domain value. The position must be
// within Bounds.
func (d Domain) Value(pos float64) float64 {
	if d.discrete {
		return d.values[int(pos)]
	}
	return pos
}

// Index returns the index of the first occurrence of v in a discrete domain.
func (d Domain) Index(v float64) (int, bool) {
	for i, x := range d.values {
		if x == v {
			return i, true
		}
	}
	return -1, false
}

// Offset returns the handle offset for a position, as a percentage of the bar
// clamped to [0, 100].
func (d Domain) Offset(pos float64) float64 {
	lo, hi := d.Bounds()
	if hi <= lo {
		return 0
	}
	return clamp((pos-lo)/(hi-lo)*100, 0, 100)
}

// Label formats the value at a position for display: two decimals for a
// discrete domain, a rounded integer for a continuous one.
func (d Domain) Label(pos float64) string {
	v := d.Value(pos)
	if d.discrete {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
	r := math.Round(v)
	if r == 0 {
		// Avoid "-0".
		r = 0
	}
	return strconv.FormatFloat(r, 'f', 0, 64)
}

func (d Domain) String() string {
	if d.discrete {
		return fmt.Sprintf("discrete%v", d.values)
	}
	return fmt.Sprintf("continuous[%v, %v]", d.min, d.max)
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

func clamp(f, lo, hi float64) float64 {
	switch {
	case f < lo:
		return lo
	case f > hi:
		return hi
	}
	return f
}
