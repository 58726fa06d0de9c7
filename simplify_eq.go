package weft

// The equality visitor works on the canonical subject delta == 0, where
// delta is the simplified difference of the operands. Solve rules are
// returned as-is: re-simplifying an isolated x == c0 would reconstruct the
// difference and loop forever. Distribute rules build new structure whose
// pieces have not been visited yet, so their results are re-simplified.

var eqSolveRules = []Rule{
	{
		// c0 == 0 folds
		Pattern: PatBinary(EQ, PatConst(0), PatInt(0)),
		Result: func(m *Match) Expr {
			return constBool(isConstValue(m.Const(0), 0), ExprType(m.Subject()).Lanes)
		},
	},
	{
		// x + c0 == 0 isolates x
		Pattern: PatBinary(EQ, PatBinary(ADD, PatAny(0), PatConst(0)), PatInt(0)),
		Result: func(m *Match) Expr {
			return NewBinaryExpr(EQ, m.Expr(0), negateConst(m.Const(0)))
		},
	},
	{
		// c0 - x == 0 isolates x
		Pattern: PatBinary(EQ, PatBinary(SUB, PatConst(0), PatAny(0)), PatInt(0)),
		Result: func(m *Match) Expr {
			return NewBinaryExpr(EQ, m.Expr(0), m.Const(0))
		},
	},
}

var eqDistributeRules = []Rule{
	{
		// broadcast(x) == 0 distributes over the lanes
		Pattern: PatBinary(EQ, PatBroadcast(PatAny(0)), PatInt(0)),
		Result: func(m *Match) Expr {
			return NewBroadcastExpr(eqZero(m.Expr(0)), ExprType(m.Subject()).Lanes)
		},
	},
	{
		// x*y == 0 splits into either factor being zero, but only when no
		// wrapping product of nonzero factors could reach zero
		Pattern: PatBinary(EQ, PatBinary(MUL, PatAny(0), PatAny(1)), PatInt(0)),
		Guard:   func(m *Match) bool { return noOverflow(ExprType(m.Expr(0))) },
		Result: func(m *Match) Expr {
			return NewBinaryExpr(OR, eqZero(m.Expr(0)), eqZero(m.Expr(1)))
		},
	},
	{
		// select(x, 0, y) == 0 becomes x || y == 0
		Pattern: PatBinary(EQ, PatSelect(PatAny(0), PatInt(0), PatAny(1)), PatInt(0)),
		Guard:   condLanesMatch,
		Result: func(m *Match) Expr {
			return NewBinaryExpr(OR, m.Expr(0), eqZero(m.Expr(1)))
		},
	},
	{
		// select(x, c0, y) == 0 with c0 != 0 becomes !x && y == 0
		Pattern: PatBinary(EQ, PatSelect(PatAny(0), PatConst(0), PatAny(1)), PatInt(0)),
		Guard: func(m *Match) bool {
			return condLanesMatch(m) && !isConstValue(m.Const(0), 0)
		},
		Result: func(m *Match) Expr {
			return NewBinaryExpr(AND, NewNotExpr(m.Expr(0)), eqZero(m.Expr(1)))
		},
	},
	{
		// select(x, y, 0) == 0 becomes !x || y == 0
		Pattern: PatBinary(EQ, PatSelect(PatAny(0), PatAny(1), PatInt(0)), PatInt(0)),
		Guard:   condLanesMatch,
		Result: func(m *Match) Expr {
			return NewBinaryExpr(OR, NewNotExpr(m.Expr(0)), eqZero(m.Expr(1)))
		},
	},
	{
		// select(x, y, c0) == 0 with c0 != 0 becomes x && y == 0
		Pattern: PatBinary(EQ, PatSelect(PatAny(0), PatAny(1), PatConst(0)), PatInt(0)),
		Guard: func(m *Match) bool {
			return condLanesMatch(m) && !isConstValue(m.Const(0), 0)
		},
		Result: func(m *Match) Expr {
			return NewBinaryExpr(AND, m.Expr(0), eqZero(m.Expr(1)))
		},
	},
}

// condLanesMatch reports whether the select condition in wildcard slot 0
// has the subject's lane count. A scalar condition over vector branches
// cannot be combined with the distributed lane-wise comparison.
func condLanesMatch(m *Match) bool {
	return ExprType(m.Expr(0)).Lanes == ExprType(m.Subject()).Lanes
}

// eqZero returns the comparison x == 0 at the type of x.
func eqZero(x Expr) Expr {
	return NewBinaryExpr(EQ, x, MakeConst(ExprType(x), 0))
}

func (s *Simplifier) visitEQ(op *BinaryExpr, b *Bounds) Expr {
	if !maySimplify(ExprType(op.LHS)) {
		a := s.mutate(op.LHS, nil)
		rhs := s.mutate(op.RHS, nil)
		if a == op.LHS && rhs == op.RHS {
			return op
		}
		return NewBinaryExpr(EQ, a, rhs)
	}

	if ExprType(op.LHS).IsBool() {
		a := s.mutate(op.LHS, nil)
		rhs := s.mutate(op.RHS, nil)
		if isConstValue(rhs, 1) {
			return a
		} else if isConstValue(a, 1) {
			return rhs
		} else if isConstValue(rhs, 0) {
			return s.mutate(NewNotExpr(a), b)
		} else if isConstValue(a, 0) {
			return s.mutate(NewNotExpr(rhs), b)
		}
		if a == op.LHS && rhs == op.RHS {
			return op
		}
		return NewBinaryExpr(EQ, a, rhs)
	}

	lanes := ExprType(op.LHS).Lanes

	// Simplify the whole comparison as the difference of its sides.
	var db Bounds
	delta := s.mutate(NewBinaryExpr(SUB, op.LHS, op.RHS), &db)

	// An interval excluding zero disproves equality outright.
	if db.MinDefined && db.Min > 0 {
		return constBool(false, lanes)
	}
	if db.MaxDefined && db.Max < 0 {
		return constBool(false, lanes)
	}

	// So does a nonzero remainder against the difference's alignment.
	dt := ExprType(delta)
	if noOverflowScalarInt(dt) {
		if mr := modulusRemainder(delta, s.alignment); mr.Remainder != 0 {
			return constBool(false, 1)
		}
	}

	subject := NewBinaryExpr(EQ, delta, MakeConst(dt, 0))
	if out, ok := Rewrite(subject, eqSolveRules); ok {
		if CompareExpr(out, op) == 0 {
			return op
		}
		return out
	}
	if out, ok := Rewrite(subject, eqDistributeRules); ok {
		return s.mutate(out, b)
	}

	// A difference left as the untouched subtraction of the original
	// operands restores the original comparison.
	if sub, ok := delta.(*BinaryExpr); ok && sub.Op == SUB {
		if sub.LHS == op.LHS && sub.RHS == op.RHS {
			return op
		}
		return NewBinaryExpr(EQ, sub.LHS, sub.RHS)
	}
	if CompareExpr(subject, op) == 0 {
		return op
	}
	return subject
}

func (s *Simplifier) visitNE(op *BinaryExpr, b *Bounds) Expr {
	if !maySimplify(ExprType(op.LHS)) {
		a := s.mutate(op.LHS, nil)
		rhs := s.mutate(op.RHS, nil)
		if a == op.LHS && rhs == op.RHS {
			return op
		}
		return NewBinaryExpr(NE, a, rhs)
	}

	// Delegate to the equality visitor through negation.
	mutated := s.mutate(NewNotExpr(NewBinaryExpr(EQ, op.LHS, op.RHS)), b)
	if ne, ok := mutated.(*BinaryExpr); ok && ne.Op == NE && ne.LHS == op.LHS && ne.RHS == op.RHS {
		return op
	}
	return mutated
}
