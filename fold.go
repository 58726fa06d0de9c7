package weft

import "math"

const minInt64 = math.MinInt64

// divImp implements Euclidean integer division: the quotient rounds toward
// negative infinity. Division by zero yields zero so evaluation stays total.
func divImp(a, b int64) int64 {
	if b == 0 {
		return 0
	}
	if a == math.MinInt64 && b == -1 {
		return math.MinInt64 // wraps
	}
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// modImp implements Euclidean modulus: the result takes the sign of the
// divisor, so a == b*divImp(a, b) + modImp(a, b) for nonzero b. Modulus by
// zero yields zero.
func modImp(a, b int64) int64 {
	if b == 0 {
		return 0
	}
	if a == math.MinInt64 && b == -1 {
		return 0
	}
	r := a % b
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r
}

// floatModImp implements floor-based float modulus, matching the integer
// convention that the result takes the sign of the divisor.
func floatModImp(a, b float64) float64 {
	return a - b*math.Floor(a/b)
}

// foldBinary evaluates op over two scalar constants of the same type.
// Integer results are normalized to the operand width and comparisons yield
// a scalar boolean constant.
func foldBinary(op BinaryOp, a, b Expr) Expr {
	t := ExprType(a)
	switch {
	case t.IsFloat():
		return foldFloat(op, t, a.(*FloatConstExpr).Value, b.(*FloatConstExpr).Value)
	case t.IsUInt() && !t.IsBool():
		return foldUInt(op, t, uint64(a.(*ConstExpr).Value), uint64(b.(*ConstExpr).Value))
	default:
		return foldInt(op, t, a.(*ConstExpr).Value, b.(*ConstExpr).Value)
	}
}

func foldInt(op BinaryOp, t Type, x, y int64) Expr {
	switch op {
	case ADD:
		return NewConstExpr(t, x+y)
	case SUB:
		return NewConstExpr(t, x-y)
	case MUL:
		return NewConstExpr(t, x*y)
	case DIV:
		return NewConstExpr(t, divImp(x, y))
	case MOD:
		return NewConstExpr(t, modImp(x, y))
	case MIN:
		if x < y {
			return NewConstExpr(t, x)
		}
		return NewConstExpr(t, y)
	case MAX:
		if x > y {
			return NewConstExpr(t, x)
		}
		return NewConstExpr(t, y)
	case EQ:
		return constBool(x == y, 1)
	case NE:
		return constBool(x != y, 1)
	case LT:
		return constBool(x < y, 1)
	case LE:
		return constBool(x <= y, 1)
	case GT:
		return constBool(x > y, 1)
	case GE:
		return constBool(x >= y, 1)
	case AND:
		return constBool(x != 0 && y != 0, 1)
	case OR:
		return constBool(x != 0 || y != 0, 1)
	default:
		panic("unreachable")
	}
}

func foldUInt(op BinaryOp, t Type, x, y uint64) Expr {
	switch op {
	case ADD:
		return NewConstExpr(t, int64(x+y))
	case SUB:
		return NewConstExpr(t, int64(x-y))
	case MUL:
		return NewConstExpr(t, int64(x*y))
	case DIV:
		if y == 0 {
			return NewConstExpr(t, 0)
		}
		return NewConstExpr(t, int64(x/y))
	case MOD:
		if y == 0 {
			return NewConstExpr(t, 0)
		}
		return NewConstExpr(t, int64(x%y))
	case MIN:
		if x < y {
			return NewConstExpr(t, int64(x))
		}
		return NewConstExpr(t, int64(y))
	case MAX:
		if x > y {
			return NewConstExpr(t, int64(x))
		}
		return NewConstExpr(t, int64(y))
	case EQ:
		return constBool(x == y, 1)
	case NE:
		return constBool(x != y, 1)
	case LT:
		return constBool(x < y, 1)
	case LE:
		return constBool(x <= y, 1)
	case GT:
		return constBool(x > y, 1)
	case GE:
		return constBool(x >= y, 1)
	case AND:
		return constBool(x != 0 && y != 0, 1)
	case OR:
		return constBool(x != 0 || y != 0, 1)
	default:
		panic("unreachable")
	}
}

func foldFloat(op BinaryOp, t Type, x, y float64) Expr {
	switch op {
	case ADD:
		return NewFloatConstExpr(t, x+y)
	case SUB:
		return NewFloatConstExpr(t, x-y)
	case MUL:
		return NewFloatConstExpr(t, x*y)
	case DIV:
		return NewFloatConstExpr(t, x/y)
	case MOD:
		return NewFloatConstExpr(t, floatModImp(x, y))
	case MIN:
		if x < y {
			return NewFloatConstExpr(t, x)
		}
		return NewFloatConstExpr(t, y)
	case MAX:
		if x > y {
			return NewFloatConstExpr(t, x)
		}
		return NewFloatConstExpr(t, y)
	case EQ:
		return constBool(x == y, 1)
	case NE:
		return constBool(x != y, 1)
	case LT:
		return constBool(x < y, 1)
	case LE:
		return constBool(x <= y, 1)
	case GT:
		return constBool(x > y, 1)
	case GE:
		return constBool(x >= y, 1)
	default:
		panic("unreachable")
	}
}

// foldConst folds op over two constant operands which may be broadcasts,
// preserving the lane count of the operands.
func foldConst(op BinaryOp, a, b Expr) Expr {
	lanes := ExprType(a).Lanes
	out := foldBinary(op, unwrapBroadcast(a), unwrapBroadcast(b))
	if lanes > 1 {
		return NewBroadcastExpr(out, lanes)
	}
	return out
}

// foldNot evaluates logical negation of a scalar boolean constant.
func foldNot(a Expr) Expr {
	return constBool(a.(*ConstExpr).Value == 0, 1)
}

// negateConst returns a scalar constant holding the negated value of c.
func negateConst(c Expr) Expr {
	switch c := c.(type) {
	case *ConstExpr:
		return NewConstExpr(c.Type, -c.Value)
	case *FloatConstExpr:
		return NewFloatConstExpr(c.Type, -c.Value)
	case *BroadcastExpr:
		return NewBroadcastExpr(negateConst(c.Value), c.Lanes)
	default:
		panic("unreachable")
	}
}
