package weft

import "math"

// Bounds holds a conservative interval for the value an integer expression
// can take. Each endpoint is tracked independently and an undefined endpoint
// means nothing is known on that side, so no sentinel values are reserved.
// The zero value carries no information.
//
// Bounds are only computed for signed integer types wide enough to be
// assumed overflow-free (see noOverflowInt); combining intervals across
// wrapping arithmetic would be unsound.
type Bounds struct {
	Min        int64
	Max        int64
	MinDefined bool
	MaxDefined bool
}

// NewBounds returns bounds with both endpoints defined.
func NewBounds(min, max int64) Bounds {
	assert(min <= max, "invalid bounds [%d,%d]", min, max)
	return Bounds{Min: min, Max: max, MinDefined: true, MaxDefined: true}
}

// addOverflows reports whether a+b overflows int64.
func addOverflows(a, b int64) bool {
	s := a + b
	return (a > 0 && b > 0 && s < 0) || (a < 0 && b < 0 && s >= 0)
}

// subOverflows reports whether a-b overflows int64.
func subOverflows(a, b int64) bool {
	s := a - b
	return (a >= 0 && b < 0 && s < 0) || (a < 0 && b > 0 && s >= 0)
}

// mulOverflows reports whether a*b overflows int64.
func mulOverflows(a, b int64) bool {
	if a == 0 || b == 0 {
		return false
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return true
	}
	return a*b/b != a
}

// addBounds combines intervals across addition. An endpoint whose sum would
// overflow int64 becomes undefined.
func addBounds(a, b Bounds) Bounds {
	var r Bounds
	if a.MinDefined && b.MinDefined && !addOverflows(a.Min, b.Min) {
		r.Min, r.MinDefined = a.Min+b.Min, true
	}
	if a.MaxDefined && b.MaxDefined && !addOverflows(a.Max, b.Max) {
		r.Max, r.MaxDefined = a.Max+b.Max, true
	}
	return r
}

// subBounds combines intervals across subtraction.
func subBounds(a, b Bounds) Bounds {
	var r Bounds
	if a.MinDefined && b.MaxDefined && !subOverflows(a.Min, b.Max) {
		r.Min, r.MinDefined = a.Min-b.Max, true
	}
	if a.MaxDefined && b.MinDefined && !subOverflows(a.Max, b.Min) {
		r.Max, r.MaxDefined = a.Max-b.Min, true
	}
	return r
}

// mulBounds combines intervals across multiplication. Both intervals must be
// fully defined; the result spans the four corner products.
func mulBounds(a, b Bounds) Bounds {
	if !a.MinDefined || !a.MaxDefined || !b.MinDefined || !b.MaxDefined {
		return Bounds{}
	}
	corners := [4][2]int64{
		{a.Min, b.Min},
		{a.Min, b.Max},
		{a.Max, b.Min},
		{a.Max, b.Max},
	}
	var min, max int64
	for i, c := range corners {
		if mulOverflows(c[0], c[1]) {
			return Bounds{}
		}
		p := c[0] * c[1]
		if i == 0 || p < min {
			min = p
		}
		if i == 0 || p > max {
			max = p
		}
	}
	return NewBounds(min, max)
}

// divBoundsConst combines an interval across Euclidean division by a
// positive constant.
func divBoundsConst(a Bounds, c int64) Bounds {
	assert(c > 0, "divBoundsConst requires a positive divisor, got %d", c)
	var r Bounds
	if a.MinDefined {
		r.Min, r.MinDefined = divImp(a.Min, c), true
	}
	if a.MaxDefined {
		r.Max, r.MaxDefined = divImp(a.Max, c), true
	}
	return r
}

// modBoundsConst bounds a Euclidean modulus by a positive constant. The
// result always lies in [0, c); a dividend already inside that range passes
// its own tighter interval through.
func modBoundsConst(a Bounds, c int64) Bounds {
	assert(c > 0, "modBoundsConst requires a positive divisor, got %d", c)
	if a.MinDefined && a.MaxDefined && a.Min >= 0 && a.Max < c {
		return a
	}
	return NewBounds(0, c-1)
}

// minBounds combines intervals across the min of two values. The lower
// endpoint needs both intervals; the upper endpoint tightens from either.
func minBounds(a, b Bounds) Bounds {
	var r Bounds
	if a.MinDefined && b.MinDefined {
		r.Min, r.MinDefined = a.Min, true
		if b.Min < r.Min {
			r.Min = b.Min
		}
	}
	if a.MaxDefined {
		r.Max, r.MaxDefined = a.Max, true
	}
	if b.MaxDefined && (!r.MaxDefined || b.Max < r.Max) {
		r.Max, r.MaxDefined = b.Max, true
	}
	return r
}

// maxBounds combines intervals across the max of two values.
func maxBounds(a, b Bounds) Bounds {
	var r Bounds
	if a.MaxDefined && b.MaxDefined {
		r.Max, r.MaxDefined = a.Max, true
		if b.Max > r.Max {
			r.Max = b.Max
		}
	}
	if a.MinDefined {
		r.Min, r.MinDefined = a.Min, true
	}
	if b.MinDefined && (!r.MinDefined || b.Min > r.Min) {
		r.Min, r.MinDefined = b.Min, true
	}
	return r
}

// unionBounds combines intervals for a value known to come from one of two
// sources, as with the branches of a select.
func unionBounds(a, b Bounds) Bounds {
	var r Bounds
	if a.MinDefined && b.MinDefined {
		r.Min, r.MinDefined = a.Min, true
		if b.Min < r.Min {
			r.Min = b.Min
		}
	}
	if a.MaxDefined && b.MaxDefined {
		r.Max, r.MaxDefined = a.Max, true
		if b.Max > r.Max {
			r.Max = b.Max
		}
	}
	return r
}
