package weft

// Ordering comparisons canonicalize onto strict less-than: le lowers to a
// negated lt, and gt/ge lower by swapping operands. The negation visitor
// flips comparisons back directly, without re-simplifying, which keeps the
// lowering from cycling; le detects the round trip and restores the
// original node.

var ltRules = []Rule{
	{
		Pattern: PatBinary(LT, PatConst(0), PatConst(1)),
		Result:  func(m *Match) Expr { return foldConst(LT, m.Const(0), m.Const(1)) },
	},
	{
		// x < x is never true
		Pattern: PatBinary(LT, PatAny(0), PatAny(0)),
		Result: func(m *Match) Expr {
			return constBool(false, ExprType(m.Subject()).Lanes)
		},
	},
	{
		// x + c0 < c1 == x < c1 - c0 when the shift cannot wrap
		Pattern: PatBinary(LT, PatBinary(ADD, PatAny(0), PatConst(0)), PatConst(1)),
		Guard:   func(m *Match) bool { return noOverflowInt(ExprType(m.Expr(0))) },
		Result: func(m *Match) Expr {
			return NewBinaryExpr(LT, m.Expr(0), foldConst(SUB, m.Const(1), m.Const(0)))
		},
	},
	{
		// c0 < x + c1 == c0 - c1 < x when the shift cannot wrap
		Pattern: PatBinary(LT, PatConst(0), PatBinary(ADD, PatAny(0), PatConst(1))),
		Guard:   func(m *Match) bool { return noOverflowInt(ExprType(m.Expr(0))) },
		Result: func(m *Match) Expr {
			return NewBinaryExpr(LT, foldConst(SUB, m.Const(0), m.Const(1)), m.Expr(0))
		},
	},
}

func (s *Simplifier) visitLT(op *BinaryExpr) Expr {
	var ab, bb Bounds
	a := s.mutate(op.LHS, &ab)
	rhs := s.mutate(op.RHS, &bb)
	lanes := ExprType(a).Lanes

	// The operand intervals may prove or disprove the comparison.
	if ab.MaxDefined && bb.MinDefined && ab.Max < bb.Min {
		return constBool(true, lanes)
	}
	if ab.MinDefined && bb.MaxDefined && ab.Min >= bb.Max {
		return constBool(false, lanes)
	}

	if out, ok := broadcastBinary(LT, a, rhs); ok {
		return s.mutate(out, nil)
	}
	subject := Expr(op)
	if a != op.LHS || rhs != op.RHS {
		subject = NewBinaryExpr(LT, a, rhs)
	}
	if out, ok := Rewrite(subject, ltRules); ok {
		return out
	}
	return subject
}

func (s *Simplifier) visitLE(op *BinaryExpr) Expr {
	mutated := s.mutate(NewNotExpr(NewBinaryExpr(LT, op.RHS, op.LHS)), nil)
	if le, ok := mutated.(*BinaryExpr); ok && le.Op == LE && le.LHS == op.LHS && le.RHS == op.RHS {
		return op
	}
	return mutated
}

func (s *Simplifier) visitGT(op *BinaryExpr) Expr {
	return s.mutate(NewBinaryExpr(LT, op.RHS, op.LHS), nil)
}

func (s *Simplifier) visitGE(op *BinaryExpr) Expr {
	return s.mutate(NewBinaryExpr(LE, op.RHS, op.LHS), nil)
}
