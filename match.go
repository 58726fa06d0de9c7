package weft

// Wildcard slot limits. Rules that need more distinct wildcards than this
// have outgrown the rewriter.
const (
	maxPatExprs  = 3
	maxPatConsts = 2
)

// Match holds the subexpressions captured by wildcards during a pattern
// match, along with the subject the pattern matched against.
type Match struct {
	subject Expr
	exprs   [maxPatExprs]Expr
	consts  [maxPatConsts]Expr
}

// Subject returns the expression the pattern was matched against.
func (m *Match) Subject() Expr { return m.subject }

// Expr returns the subexpression bound to wildcard slot i.
func (m *Match) Expr(i int) Expr { return m.exprs[i] }

// Const returns the constant bound to constant wildcard slot i. The bound
// expression is a scalar constant or a broadcast of one.
func (m *Match) Const(i int) Expr { return m.consts[i] }

// Pattern matches the shape of an expression, capturing wildcard bindings
// into a Match.
type Pattern interface {
	match(expr Expr, m *Match) bool
}

// Rule pairs a pattern with the result to produce when it matches. An
// optional guard runs after bindings are captured and vetoes the rule
// without stopping later rules from being tried.
type Rule struct {
	Pattern Pattern
	Guard   func(m *Match) bool
	Result  func(m *Match) Expr
}

// Rewrite tries each rule in order against expr and builds the result of
// the first rule whose pattern matches and whose guard passes. The second
// return is false if no rule applied.
func Rewrite(expr Expr, rules []Rule) (Expr, bool) {
	for i := range rules {
		m := Match{subject: expr}
		if !rules[i].Pattern.match(expr, &m) {
			continue
		}
		if rules[i].Guard != nil && !rules[i].Guard(&m) {
			continue
		}
		return rules[i].Result(&m), true
	}
	return nil, false
}

// PatAny returns a wildcard pattern binding slot i. A slot repeated within
// one pattern only matches structurally equal subexpressions.
func PatAny(i int) Pattern {
	assert(i >= 0 && i < maxPatExprs, "wildcard slot out of range: %d", i)
	return patAny{slot: i}
}

type patAny struct{ slot int }

func (p patAny) match(expr Expr, m *Match) bool {
	if bound := m.exprs[p.slot]; bound != nil {
		return CompareExpr(bound, expr) == 0
	}
	m.exprs[p.slot] = expr
	return true
}

// PatConst returns a wildcard matching a scalar constant or a broadcast of
// one, binding slot i.
func PatConst(i int) Pattern {
	assert(i >= 0 && i < maxPatConsts, "const wildcard slot out of range: %d", i)
	return patConst{slot: i}
}

type patConst struct{ slot int }

func (p patConst) match(expr Expr, m *Match) bool {
	if !IsConstExpr(unwrapBroadcast(expr)) {
		return false
	}
	if bound := m.consts[p.slot]; bound != nil {
		return CompareExpr(bound, expr) == 0
	}
	m.consts[p.slot] = expr
	return true
}

// PatInt returns a pattern matching an integer or float constant equal to
// value in every lane. No binding is captured.
func PatInt(value int64) Pattern { return patInt{value: value} }

type patInt struct{ value int64 }

func (p patInt) match(expr Expr, m *Match) bool {
	return isConstValue(expr, p.value)
}

// PatBinary returns a pattern matching a binary expression with the given
// operator. Symmetric comparisons (eq, ne) additionally match with their
// operands swapped.
func PatBinary(op BinaryOp, lhs, rhs Pattern) Pattern {
	return patBinary{op: op, lhs: lhs, rhs: rhs}
}

type patBinary struct {
	op  BinaryOp
	lhs Pattern
	rhs Pattern
}

func (p patBinary) match(expr Expr, m *Match) bool {
	e, ok := expr.(*BinaryExpr)
	if !ok || e.Op != p.op {
		return false
	}

	// Bindings from a failed operand ordering must not leak into the retry.
	saved := *m
	if p.lhs.match(e.LHS, m) && p.rhs.match(e.RHS, m) {
		return true
	}
	*m = saved

	if p.op != EQ && p.op != NE {
		return false
	}
	if p.lhs.match(e.RHS, m) && p.rhs.match(e.LHS, m) {
		return true
	}
	*m = saved
	return false
}

// PatNot returns a pattern matching logical negation.
func PatNot(x Pattern) Pattern { return patNot{x: x} }

type patNot struct{ x Pattern }

func (p patNot) match(expr Expr, m *Match) bool {
	e, ok := expr.(*NotExpr)
	return ok && p.x.match(e.Expr, m)
}

// PatBroadcast returns a pattern matching a broadcast of a scalar value.
func PatBroadcast(value Pattern) Pattern { return patBroadcast{value: value} }

type patBroadcast struct{ value Pattern }

func (p patBroadcast) match(expr Expr, m *Match) bool {
	e, ok := expr.(*BroadcastExpr)
	return ok && p.value.match(e.Value, m)
}

// PatSelect returns a pattern matching a select expression.
func PatSelect(cond, then, els Pattern) Pattern {
	return patSelect{cond: cond, then: then, els: els}
}

type patSelect struct {
	cond Pattern
	then Pattern
	els  Pattern
}

func (p patSelect) match(expr Expr, m *Match) bool {
	e, ok := expr.(*SelectExpr)
	if !ok {
		return false
	}
	return p.cond.match(e.Cond, m) && p.then.match(e.Then, m) && p.els.match(e.Else, m)
}
