package weft

import "github.com/benbjohnson/immutable"

// ModulusRemainder is an alignment fact: every value the analyzed
// expression can take is congruent to Remainder modulo Modulus. Modulus is
// at least 1 and 0 <= Remainder < Modulus. The pair (1, 0) is the
// no-information fact since every integer is congruent to 0 modulo 1.
type ModulusRemainder struct {
	Modulus   int64
	Remainder int64
}

// NewModulusRemainder returns an alignment fact, validating the
// representation invariant.
func NewModulusRemainder(modulus, remainder int64) ModulusRemainder {
	assert(modulus >= 1, "modulus must be at least 1, got %d", modulus)
	assert(remainder >= 0 && remainder < modulus, "remainder %d outside [0,%d)", remainder, modulus)
	return ModulusRemainder{Modulus: modulus, Remainder: remainder}
}

var unknownAlignment = ModulusRemainder{Modulus: 1, Remainder: 0}

// gcd returns the greatest common divisor of the absolute values of a and b.
func gcd(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// unifyAlignment returns a fact that holds for a value drawn from either of
// two congruence classes, as with the branches of a select or min/max.
func unifyAlignment(a, b ModulusRemainder) ModulusRemainder {
	m := gcd(gcd(a.Modulus, b.Modulus), a.Remainder-b.Remainder)
	return ModulusRemainder{Modulus: m, Remainder: modImp(a.Remainder, m)}
}

// modulusRemainder infers an alignment fact for a scalar integer expression
// under the facts recorded in align, which maps variable names to
// ModulusRemainder values and may be nil. The result is always sound: when
// nothing useful can be said it degrades to the no-information fact rather
// than guessing.
func modulusRemainder(expr Expr, align *immutable.SortedMap) ModulusRemainder {
	switch expr := expr.(type) {
	case *ConstExpr:
		if expr.Value == 0 {
			return unknownAlignment
		}
		m := expr.Value
		if m < 0 {
			m = -m
		}
		return ModulusRemainder{Modulus: m, Remainder: 0}

	case *VarExpr:
		if align != nil {
			if v, ok := align.Get(expr.Name); ok {
				return v.(ModulusRemainder)
			}
		}
		return unknownAlignment

	case *BinaryExpr:
		switch expr.Op {
		case ADD:
			if c, ok := constInt(expr.RHS); ok {
				return shiftAlignment(modulusRemainder(expr.LHS, align), c)
			}
			if c, ok := constInt(expr.LHS); ok {
				return shiftAlignment(modulusRemainder(expr.RHS, align), c)
			}
			a := modulusRemainder(expr.LHS, align)
			b := modulusRemainder(expr.RHS, align)
			m := gcd(a.Modulus, b.Modulus)
			if addOverflows(a.Remainder, b.Remainder) {
				return unknownAlignment
			}
			return ModulusRemainder{Modulus: m, Remainder: modImp(a.Remainder+b.Remainder, m)}

		case SUB:
			if c, ok := constInt(expr.RHS); ok {
				if c == minInt64 {
					return unknownAlignment
				}
				return shiftAlignment(modulusRemainder(expr.LHS, align), -c)
			}
			if c, ok := constInt(expr.LHS); ok {
				a := modulusRemainder(expr.RHS, align)
				if subOverflows(c, a.Remainder) {
					return unknownAlignment
				}
				return ModulusRemainder{Modulus: a.Modulus, Remainder: modImp(c-a.Remainder, a.Modulus)}
			}
			a := modulusRemainder(expr.LHS, align)
			b := modulusRemainder(expr.RHS, align)
			m := gcd(a.Modulus, b.Modulus)
			return ModulusRemainder{Modulus: m, Remainder: modImp(a.Remainder-b.Remainder, m)}

		case MUL:
			if c, ok := constInt(expr.RHS); ok {
				return scaleAlignment(modulusRemainder(expr.LHS, align), c)
			}
			if c, ok := constInt(expr.LHS); ok {
				return scaleAlignment(modulusRemainder(expr.RHS, align), c)
			}
			a := modulusRemainder(expr.LHS, align)
			b := modulusRemainder(expr.RHS, align)
			if a.Remainder == 0 && b.Remainder == 0 && !mulOverflows(a.Modulus, b.Modulus) {
				return ModulusRemainder{Modulus: a.Modulus * b.Modulus, Remainder: 0}
			}
			m := gcd(a.Modulus, b.Modulus)
			if mulOverflows(a.Remainder, b.Remainder) {
				return unknownAlignment
			}
			return ModulusRemainder{Modulus: m, Remainder: modImp(a.Remainder*b.Remainder, m)}

		case DIV:
			// Exact when the divisor divides both components of the fact:
			// x = k*m + r with c|m and c|r gives x/c = k*(m/c) + r/c.
			if c, ok := constInt(expr.RHS); ok && c > 0 {
				a := modulusRemainder(expr.LHS, align)
				if a.Modulus%c == 0 && a.Remainder%c == 0 {
					return ModulusRemainder{Modulus: a.Modulus / c, Remainder: a.Remainder / c}
				}
			}
			return unknownAlignment

		case MOD:
			// x congruent to r mod m implies x mod c congruent to r modulo
			// gcd(m, c).
			if c, ok := constInt(expr.RHS); ok && c > 0 {
				a := modulusRemainder(expr.LHS, align)
				d := gcd(a.Modulus, c)
				return ModulusRemainder{Modulus: d, Remainder: modImp(a.Remainder, d)}
			}
			return unknownAlignment

		case MIN, MAX:
			a := modulusRemainder(expr.LHS, align)
			b := modulusRemainder(expr.RHS, align)
			return unifyAlignment(a, b)

		default:
			return unknownAlignment
		}

	case *SelectExpr:
		a := modulusRemainder(expr.Then, align)
		b := modulusRemainder(expr.Else, align)
		return unifyAlignment(a, b)

	case *LetExpr:
		if noOverflowScalarInt(ExprType(expr.Value)) {
			fact := modulusRemainder(expr.Value, align)
			if align == nil {
				align = immutable.NewSortedMap(&stringComparer{})
			}
			align = align.Set(expr.Name, fact)
		} else if align != nil {
			align = align.Delete(expr.Name)
		}
		return modulusRemainder(expr.Body, align)

	default:
		return unknownAlignment
	}
}

// shiftAlignment adds a constant to a congruence class.
func shiftAlignment(a ModulusRemainder, c int64) ModulusRemainder {
	if addOverflows(a.Remainder, c) {
		return unknownAlignment
	}
	return ModulusRemainder{Modulus: a.Modulus, Remainder: modImp(a.Remainder+c, a.Modulus)}
}

// scaleAlignment multiplies a congruence class by a constant: x = k*m + r
// gives c*x = k*(c*m) + c*r, a fact modulo |c|*m.
func scaleAlignment(a ModulusRemainder, c int64) ModulusRemainder {
	ac := c
	if ac < 0 {
		if ac == minInt64 {
			return unknownAlignment
		}
		ac = -ac
	}
	if ac == 0 || mulOverflows(ac, a.Modulus) || mulOverflows(a.Remainder, c) {
		return unknownAlignment
	}
	m := ac * a.Modulus
	return ModulusRemainder{Modulus: m, Remainder: modImp(a.Remainder*c, m)}
}
