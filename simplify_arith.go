package weft

// Rule tables for the arithmetic visitors. Rules are tried in order and the
// first match whose guard passes wins. Visitors canonicalize a lone
// constant onto the right hand side before matching, so the tables only
// spell the constant-on-right forms. Operations on two broadcasts pair
// into a broadcast of the scalar operation before any table is consulted,
// so a rule that binds a constant through a broadcast cannot strand the
// vector form short of its scalar reduction.

var addRules = []Rule{
	{
		Pattern: PatBinary(ADD, PatConst(0), PatConst(1)),
		Result:  func(m *Match) Expr { return foldConst(ADD, m.Const(0), m.Const(1)) },
	},
	{
		// x + 0 == x
		Pattern: PatBinary(ADD, PatAny(0), PatInt(0)),
		Result:  func(m *Match) Expr { return m.Expr(0) },
	},
	{
		// (x + c0) + c1 == x + (c0 + c1), exact for non-float arithmetic
		Pattern: PatBinary(ADD, PatBinary(ADD, PatAny(0), PatConst(0)), PatConst(1)),
		Guard:   func(m *Match) bool { return !ExprType(m.Expr(0)).IsFloat() },
		Result: func(m *Match) Expr {
			return NewBinaryExpr(ADD, m.Expr(0), foldConst(ADD, m.Const(0), m.Const(1)))
		},
	},
	{
		// (c0 - x) + c1 == (c0 + c1) - x, exact for non-float arithmetic
		Pattern: PatBinary(ADD, PatBinary(SUB, PatConst(0), PatAny(0)), PatConst(1)),
		Guard:   func(m *Match) bool { return !ExprType(m.Expr(0)).IsFloat() },
		Result: func(m *Match) Expr {
			return NewBinaryExpr(SUB, foldConst(ADD, m.Const(0), m.Const(1)), m.Expr(0))
		},
	},
	{
		// x + (0 - y) == x - y
		Pattern: PatBinary(ADD, PatAny(0), PatBinary(SUB, PatInt(0), PatAny(1))),
		Result:  func(m *Match) Expr { return NewBinaryExpr(SUB, m.Expr(0), m.Expr(1)) },
	},
	{
		// (x - y) + y == x, exact for non-float arithmetic
		Pattern: PatBinary(ADD, PatBinary(SUB, PatAny(0), PatAny(1)), PatAny(1)),
		Guard:   func(m *Match) bool { return !ExprType(m.Expr(0)).IsFloat() },
		Result:  func(m *Match) Expr { return m.Expr(0) },
	},
	{
		// y + (x - y) == x, exact for non-float arithmetic
		Pattern: PatBinary(ADD, PatAny(1), PatBinary(SUB, PatAny(0), PatAny(1))),
		Guard:   func(m *Match) bool { return !ExprType(m.Expr(0)).IsFloat() },
		Result:  func(m *Match) Expr { return m.Expr(0) },
	},
}

var subRules = []Rule{
	{
		Pattern: PatBinary(SUB, PatConst(0), PatConst(1)),
		Result:  func(m *Match) Expr { return foldConst(SUB, m.Const(0), m.Const(1)) },
	},
	{
		// x - x == 0
		Pattern: PatBinary(SUB, PatAny(0), PatAny(0)),
		Result:  func(m *Match) Expr { return MakeConst(ExprType(m.Subject()), 0) },
	},
	{
		// x - 0 == x
		Pattern: PatBinary(SUB, PatAny(0), PatInt(0)),
		Result:  func(m *Match) Expr { return m.Expr(0) },
	},
	{
		// (x + c0) - c1 == x + (c0 - c1), exact for non-float arithmetic
		Pattern: PatBinary(SUB, PatBinary(ADD, PatAny(0), PatConst(0)), PatConst(1)),
		Guard:   func(m *Match) bool { return !ExprType(m.Expr(0)).IsFloat() },
		Result: func(m *Match) Expr {
			return NewBinaryExpr(ADD, m.Expr(0), foldConst(SUB, m.Const(0), m.Const(1)))
		},
	},
	{
		// (c0 - x) - c1 == (c0 - c1) - x, exact for non-float arithmetic
		Pattern: PatBinary(SUB, PatBinary(SUB, PatConst(0), PatAny(0)), PatConst(1)),
		Guard:   func(m *Match) bool { return !ExprType(m.Expr(0)).IsFloat() },
		Result: func(m *Match) Expr {
			return NewBinaryExpr(SUB, foldConst(SUB, m.Const(0), m.Const(1)), m.Expr(0))
		},
	},
	{
		// c0 - (x + c1) == (c0 - c1) - x, exact for non-float arithmetic
		Pattern: PatBinary(SUB, PatConst(0), PatBinary(ADD, PatAny(0), PatConst(1))),
		Guard:   func(m *Match) bool { return !ExprType(m.Expr(0)).IsFloat() },
		Result: func(m *Match) Expr {
			return NewBinaryExpr(SUB, foldConst(SUB, m.Const(0), m.Const(1)), m.Expr(0))
		},
	},
	{
		// x - c0 == x + (-c0), so linear terms accumulate on addition
		Pattern: PatBinary(SUB, PatAny(0), PatConst(0)),
		Result: func(m *Match) Expr {
			return NewBinaryExpr(ADD, m.Expr(0), negateConst(m.Const(0)))
		},
	},
}

var mulRules = []Rule{
	{
		Pattern: PatBinary(MUL, PatConst(0), PatConst(1)),
		Result:  func(m *Match) Expr { return foldConst(MUL, m.Const(0), m.Const(1)) },
	},
	{
		// x * 0 == 0
		Pattern: PatBinary(MUL, PatAny(0), PatInt(0)),
		Result:  func(m *Match) Expr { return MakeConst(ExprType(m.Subject()), 0) },
	},
	{
		// x * 1 == x
		Pattern: PatBinary(MUL, PatAny(0), PatInt(1)),
		Result:  func(m *Match) Expr { return m.Expr(0) },
	},
	{
		// (x * c0) * c1 == x * (c0 * c1), exact for non-float arithmetic
		Pattern: PatBinary(MUL, PatBinary(MUL, PatAny(0), PatConst(0)), PatConst(1)),
		Guard:   func(m *Match) bool { return !ExprType(m.Expr(0)).IsFloat() },
		Result: func(m *Match) Expr {
			return NewBinaryExpr(MUL, m.Expr(0), foldConst(MUL, m.Const(0), m.Const(1)))
		},
	},
}

var divRules = []Rule{
	{
		Pattern: PatBinary(DIV, PatConst(0), PatConst(1)),
		Guard:   func(m *Match) bool { return !isConstValue(m.Const(1), 0) },
		Result:  func(m *Match) Expr { return foldConst(DIV, m.Const(0), m.Const(1)) },
	},
	{
		// x / 1 == x
		Pattern: PatBinary(DIV, PatAny(0), PatInt(1)),
		Result:  func(m *Match) Expr { return m.Expr(0) },
	},
	{
		// 0 / x == 0, with integer division by zero defined as zero
		Pattern: PatBinary(DIV, PatInt(0), PatAny(0)),
		Guard:   func(m *Match) bool { return !ExprType(m.Expr(0)).IsFloat() },
		Result:  func(m *Match) Expr { return MakeConst(ExprType(m.Subject()), 0) },
	},
}

var modRules = []Rule{
	{
		Pattern: PatBinary(MOD, PatConst(0), PatConst(1)),
		Guard:   func(m *Match) bool { return !isConstValue(m.Const(1), 0) },
		Result:  func(m *Match) Expr { return foldConst(MOD, m.Const(0), m.Const(1)) },
	},
	{
		// x % 1 == 0
		Pattern: PatBinary(MOD, PatAny(0), PatInt(1)),
		Result:  func(m *Match) Expr { return MakeConst(ExprType(m.Subject()), 0) },
	},
}

var minRules = []Rule{
	{
		Pattern: PatBinary(MIN, PatConst(0), PatConst(1)),
		Result:  func(m *Match) Expr { return foldConst(MIN, m.Const(0), m.Const(1)) },
	},
	{
		// min(x, x) == x
		Pattern: PatBinary(MIN, PatAny(0), PatAny(0)),
		Result:  func(m *Match) Expr { return m.Expr(0) },
	},
}

var maxRules = []Rule{
	{
		Pattern: PatBinary(MAX, PatConst(0), PatConst(1)),
		Result:  func(m *Match) Expr { return foldConst(MAX, m.Const(0), m.Const(1)) },
	},
	{
		// max(x, x) == x
		Pattern: PatBinary(MAX, PatAny(0), PatAny(0)),
		Result:  func(m *Match) Expr { return m.Expr(0) },
	},
}

func (s *Simplifier) visitAdd(op *BinaryExpr, b *Bounds) Expr {
	var ab, bb Bounds
	a := s.mutate(op.LHS, &ab)
	rhs := s.mutate(op.RHS, &bb)

	if b != nil && noOverflowInt(ExprType(a)) {
		*b = addBounds(ab, bb)
	}

	// Canonicalize a constant onto the right hand side.
	if isConst(a) && !isConst(rhs) {
		a, rhs = rhs, a
	}

	if out, ok := broadcastBinary(ADD, a, rhs); ok {
		return s.mutate(out, b)
	}
	subject := Expr(op)
	if a != op.LHS || rhs != op.RHS {
		subject = NewBinaryExpr(ADD, a, rhs)
	}
	if out, ok := Rewrite(subject, addRules); ok {
		return out
	}
	return subject
}

func (s *Simplifier) visitSub(op *BinaryExpr, b *Bounds) Expr {
	var ab, bb Bounds
	a := s.mutate(op.LHS, &ab)
	rhs := s.mutate(op.RHS, &bb)

	if b != nil && noOverflowInt(ExprType(a)) {
		*b = subBounds(ab, bb)
	}

	if out, ok := broadcastBinary(SUB, a, rhs); ok {
		return s.mutate(out, b)
	}
	subject := Expr(op)
	if a != op.LHS || rhs != op.RHS {
		subject = NewBinaryExpr(SUB, a, rhs)
	}
	if out, ok := Rewrite(subject, subRules); ok {
		return out
	}
	return subject
}

func (s *Simplifier) visitMul(op *BinaryExpr, b *Bounds) Expr {
	var ab, bb Bounds
	a := s.mutate(op.LHS, &ab)
	rhs := s.mutate(op.RHS, &bb)

	if b != nil && noOverflowInt(ExprType(a)) {
		*b = mulBounds(ab, bb)
	}

	if isConst(a) && !isConst(rhs) {
		a, rhs = rhs, a
	}

	if out, ok := broadcastBinary(MUL, a, rhs); ok {
		return s.mutate(out, b)
	}
	subject := Expr(op)
	if a != op.LHS || rhs != op.RHS {
		subject = NewBinaryExpr(MUL, a, rhs)
	}
	if out, ok := Rewrite(subject, mulRules); ok {
		return out
	}
	return subject
}

func (s *Simplifier) visitDiv(op *BinaryExpr, b *Bounds) Expr {
	var ab, bb Bounds
	a := s.mutate(op.LHS, &ab)
	rhs := s.mutate(op.RHS, &bb)

	t := ExprType(a)
	if b != nil && noOverflowInt(t) {
		if c, ok := constInt(rhs); ok && c > 0 {
			*b = divBoundsConst(ab, c)
		}
	}

	if out, ok := broadcastBinary(DIV, a, rhs); ok {
		return s.mutate(out, b)
	}
	subject := Expr(op)
	if a != op.LHS || rhs != op.RHS {
		subject = NewBinaryExpr(DIV, a, rhs)
	}
	if out, ok := Rewrite(subject, divRules); ok {
		return out
	}
	return subject
}

func (s *Simplifier) visitMod(op *BinaryExpr, b *Bounds) Expr {
	var ab, bb Bounds
	a := s.mutate(op.LHS, &ab)
	rhs := s.mutate(op.RHS, &bb)

	t := ExprType(a)
	if b != nil && noOverflowInt(t) {
		if c, ok := constInt(rhs); ok && c > 0 {
			*b = modBoundsConst(ab, c)
		}
	}

	if out, ok := broadcastBinary(MOD, a, rhs); ok {
		return s.mutate(out, b)
	}
	subject := Expr(op)
	if a != op.LHS || rhs != op.RHS {
		subject = NewBinaryExpr(MOD, a, rhs)
	}
	if out, ok := Rewrite(subject, modRules); ok {
		return out
	}

	// A dividend with known alignment reduces to its remainder.
	if c, ok := constInt(rhs); ok && c > 0 && noOverflowScalarInt(t) {
		if mr := modulusRemainder(a, s.alignment); mr.Modulus%c == 0 {
			return MakeConst(t, modImp(mr.Remainder, c))
		}
	}
	return subject
}

func (s *Simplifier) visitMin(op *BinaryExpr, b *Bounds) Expr {
	var ab, bb Bounds
	a := s.mutate(op.LHS, &ab)
	rhs := s.mutate(op.RHS, &bb)

	if b != nil && noOverflowInt(ExprType(a)) {
		*b = minBounds(ab, bb)
	}

	// The intervals may already order the operands.
	if ab.MaxDefined && bb.MinDefined && ab.Max <= bb.Min {
		return a
	}
	if bb.MaxDefined && ab.MinDefined && bb.Max <= ab.Min {
		return rhs
	}

	if isConst(a) && !isConst(rhs) {
		a, rhs = rhs, a
	}

	if out, ok := broadcastBinary(MIN, a, rhs); ok {
		return s.mutate(out, b)
	}
	subject := Expr(op)
	if a != op.LHS || rhs != op.RHS {
		subject = NewBinaryExpr(MIN, a, rhs)
	}
	if out, ok := Rewrite(subject, minRules); ok {
		return out
	}
	return subject
}

func (s *Simplifier) visitMax(op *BinaryExpr, b *Bounds) Expr {
	var ab, bb Bounds
	a := s.mutate(op.LHS, &ab)
	rhs := s.mutate(op.RHS, &bb)

	if b != nil && noOverflowInt(ExprType(a)) {
		*b = maxBounds(ab, bb)
	}

	if ab.MinDefined && bb.MaxDefined && bb.Max <= ab.Min {
		return a
	}
	if bb.MinDefined && ab.MaxDefined && ab.Max <= bb.Min {
		return rhs
	}

	if isConst(a) && !isConst(rhs) {
		a, rhs = rhs, a
	}

	if out, ok := broadcastBinary(MAX, a, rhs); ok {
		return s.mutate(out, b)
	}
	subject := Expr(op)
	if a != op.LHS || rhs != op.RHS {
		subject = NewBinaryExpr(MAX, a, rhs)
	}
	if out, ok := Rewrite(subject, maxRules); ok {
		return out
	}
	return subject
}
