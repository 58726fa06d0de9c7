package weft

// Comparison flips under negation are final: re-simplifying them would undo
// the le/gt/ge lowering and cycle. The sibling visitors rely on that when
// they detect an unchanged round trip and restore their original node.

var notRules = []Rule{
	{
		Pattern: PatNot(PatConst(0)),
		Result: func(m *Match) Expr {
			return constBool(isConstValue(m.Const(0), 0), ExprType(m.Subject()).Lanes)
		},
	},
	{
		// !!x == x
		Pattern: PatNot(PatNot(PatAny(0))),
		Result:  func(m *Match) Expr { return m.Expr(0) },
	},
	{
		// !(x == y) == x != y
		Pattern: PatNot(PatBinary(EQ, PatAny(0), PatAny(1))),
		Result:  func(m *Match) Expr { return NewBinaryExpr(NE, m.Expr(0), m.Expr(1)) },
	},
	{
		// !(x != y) == x == y
		Pattern: PatNot(PatBinary(NE, PatAny(0), PatAny(1))),
		Result:  func(m *Match) Expr { return NewBinaryExpr(EQ, m.Expr(0), m.Expr(1)) },
	},
	{
		// !(x < y) == y <= x
		Pattern: PatNot(PatBinary(LT, PatAny(0), PatAny(1))),
		Result:  func(m *Match) Expr { return NewBinaryExpr(LE, m.Expr(1), m.Expr(0)) },
	},
	{
		// !(x <= y) == y < x
		Pattern: PatNot(PatBinary(LE, PatAny(0), PatAny(1))),
		Result:  func(m *Match) Expr { return NewBinaryExpr(LT, m.Expr(1), m.Expr(0)) },
	},
}

func (s *Simplifier) visitNot(op *NotExpr) Expr {
	a := s.mutate(op.Expr, nil)

	subject := Expr(op)
	if a != op.Expr {
		subject = NewNotExpr(a)
	}
	if out, ok := Rewrite(subject, notRules); ok {
		return out
	}
	if nb, ok := a.(*BroadcastExpr); ok {
		return s.mutate(NewBroadcastExpr(NewNotExpr(nb.Value), nb.Lanes), nil)
	}
	return subject
}

var andRules = []Rule{
	{
		Pattern: PatBinary(AND, PatConst(0), PatConst(1)),
		Result:  func(m *Match) Expr { return foldConst(AND, m.Const(0), m.Const(1)) },
	},
	{
		// x && true == x
		Pattern: PatBinary(AND, PatAny(0), PatInt(1)),
		Result:  func(m *Match) Expr { return m.Expr(0) },
	},
	{
		// x && false == false
		Pattern: PatBinary(AND, PatAny(0), PatInt(0)),
		Result: func(m *Match) Expr {
			return constBool(false, ExprType(m.Subject()).Lanes)
		},
	},
	{
		// x && x == x
		Pattern: PatBinary(AND, PatAny(0), PatAny(0)),
		Result:  func(m *Match) Expr { return m.Expr(0) },
	},
}

var orRules = []Rule{
	{
		Pattern: PatBinary(OR, PatConst(0), PatConst(1)),
		Result:  func(m *Match) Expr { return foldConst(OR, m.Const(0), m.Const(1)) },
	},
	{
		// x || false == x
		Pattern: PatBinary(OR, PatAny(0), PatInt(0)),
		Result:  func(m *Match) Expr { return m.Expr(0) },
	},
	{
		// x || true == true
		Pattern: PatBinary(OR, PatAny(0), PatInt(1)),
		Result: func(m *Match) Expr {
			return constBool(true, ExprType(m.Subject()).Lanes)
		},
	},
	{
		// x || x == x
		Pattern: PatBinary(OR, PatAny(0), PatAny(0)),
		Result:  func(m *Match) Expr { return m.Expr(0) },
	},
}

func (s *Simplifier) visitAnd(op *BinaryExpr) Expr {
	a := s.mutate(op.LHS, nil)
	rhs := s.mutate(op.RHS, nil)

	// Canonicalize a constant onto the right hand side.
	if isConst(a) && !isConst(rhs) {
		a, rhs = rhs, a
	}

	if out, ok := broadcastBinary(AND, a, rhs); ok {
		return s.mutate(out, nil)
	}
	subject := Expr(op)
	if a != op.LHS || rhs != op.RHS {
		subject = NewBinaryExpr(AND, a, rhs)
	}
	if out, ok := Rewrite(subject, andRules); ok {
		return out
	}
	return subject
}

func (s *Simplifier) visitOr(op *BinaryExpr) Expr {
	a := s.mutate(op.LHS, nil)
	rhs := s.mutate(op.RHS, nil)

	if isConst(a) && !isConst(rhs) {
		a, rhs = rhs, a
	}

	if out, ok := broadcastBinary(OR, a, rhs); ok {
		return s.mutate(out, nil)
	}
	subject := Expr(op)
	if a != op.LHS || rhs != op.RHS {
		subject = NewBinaryExpr(OR, a, rhs)
	}
	if out, ok := Rewrite(subject, orRules); ok {
		return out
	}
	return subject
}

func (s *Simplifier) visitSelect(op *SelectExpr, b *Bounds) Expr {
	cond := s.mutate(op.Cond, nil)
	var tb, fb Bounds
	then := s.mutate(op.Then, &tb)
	els := s.mutate(op.Else, &fb)

	if IsConstTrue(cond) {
		if b != nil && noOverflowInt(ExprType(then)) {
			*b = tb
		}
		return then
	} else if IsConstFalse(cond) {
		if b != nil && noOverflowInt(ExprType(els)) {
			*b = fb
		}
		return els
	}

	// The result is drawn from one branch or the other.
	if b != nil && noOverflowInt(ExprType(then)) {
		*b = unionBounds(tb, fb)
	}
	if CompareExpr(then, els) == 0 {
		return then
	}
	if nc, ok := cond.(*NotExpr); ok {
		return s.mutate(NewSelectExpr(nc.Expr, els, then), b)
	}

	if cond == op.Cond && then == op.Then && els == op.Else {
		return op
	}
	return NewSelectExpr(cond, then, els)
}
