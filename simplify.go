package weft

import (
	"strings"

	"github.com/benbjohnson/immutable"
)

// maxSimplifyPasses caps the fixed-point loop in Simplify. The rule set
// converges in a few passes; the cap guards against an oscillating rule
// pair introduced by mistake.
const maxSimplifyPasses = 8

// Simplify rewrites expr into an equivalent, usually cheaper form, assuming
// nothing about its free variables.
func Simplify(expr Expr) Expr {
	return NewSimplifier().Simplify(expr)
}

// CanProve returns true if expr simplifies to the constant true, assuming
// nothing about its free variables.
func CanProve(expr Expr) bool {
	return NewSimplifier().CanProve(expr)
}

// Simplifier rewrites expressions into equivalent cheaper forms. It carries
// scoped facts about variables (value substitutions, intervals, alignment)
// which let bindings push on entry and pop on exit during traversal.
// Callers may seed facts about free variables before simplifying.
//
// A Simplifier is not safe for concurrent use.
type Simplifier struct {
	subst     *immutable.SortedMap // variable name -> Expr
	varBounds *immutable.SortedMap // variable name -> Bounds
	alignment *immutable.SortedMap // variable name -> ModulusRemainder
}

// NewSimplifier returns a new instance of Simplifier.
func NewSimplifier() *Simplifier {
	return &Simplifier{
		subst:     immutable.NewSortedMap(&stringComparer{}),
		varBounds: immutable.NewSortedMap(&stringComparer{}),
		alignment: immutable.NewSortedMap(&stringComparer{}),
	}
}

// SetVarBounds records an interval fact about a free variable. The fact is
// only consulted for variables of overflow-safe signed integer type.
func (s *Simplifier) SetVarBounds(name string, b Bounds) {
	s.varBounds = s.varBounds.Set(name, b)
}

// SetVarAlignment records an alignment fact about a free variable.
func (s *Simplifier) SetVarAlignment(name string, mr ModulusRemainder) {
	s.alignment = s.alignment.Set(name, mr)
}

// Simplify rewrites expr to a fixed point: the result cannot be simplified
// further by another call. Returns expr itself if nothing applied.
func (s *Simplifier) Simplify(expr Expr) Expr {
	for i := 0; i < maxSimplifyPasses; i++ {
		next := s.mutate(expr, nil)
		if next == expr {
			break
		}
		expr = next
	}
	return expr
}

// SimplifyWithBounds simplifies expr and also reports the constant interval
// derived for the result, when the analysis produced one.
func (s *Simplifier) SimplifyWithBounds(expr Expr) (Expr, Bounds) {
	var b Bounds
	for i := 0; i < maxSimplifyPasses; i++ {
		b = Bounds{}
		next := s.mutate(expr, &b)
		if next == expr {
			break
		}
		expr = next
	}
	return expr, b
}

// CanProve returns true if the boolean expression expr simplifies to the
// constant true under the facts recorded on the simplifier.
func (s *Simplifier) CanProve(expr Expr) bool {
	assert(ExprType(expr).IsBool(), "can only prove boolean expressions, got %s", ExprType(expr))
	return IsConstTrue(s.Simplify(expr))
}

// ModulusRemainder infers an alignment fact for expr under the facts
// recorded on the simplifier. Expressions that are not scalar overflow-safe
// integers always yield the no-information fact.
func (s *Simplifier) ModulusRemainder(expr Expr) ModulusRemainder {
	if !noOverflowScalarInt(ExprType(expr)) {
		return unknownAlignment
	}
	return modulusRemainder(expr, s.alignment)
}

// mutate simplifies expr recursively. When b is non-nil the visitors also
// derive a constant interval for the returned value where the analysis
// supports one; callers must pass a zeroed Bounds. Visitors return the
// argument pointer itself when no change was made so that callers can
// detect no-change by identity.
func (s *Simplifier) mutate(expr Expr, b *Bounds) Expr {
	switch expr := expr.(type) {
	case *ConstExpr:
		if b != nil && noOverflowInt(expr.Type) {
			*b = NewBounds(expr.Value, expr.Value)
		}
		return expr
	case *FloatConstExpr:
		return expr
	case *VarExpr:
		return s.visitVar(expr, b)
	case *BinaryExpr:
		switch expr.Op {
		case ADD:
			return s.visitAdd(expr, b)
		case SUB:
			return s.visitSub(expr, b)
		case MUL:
			return s.visitMul(expr, b)
		case DIV:
			return s.visitDiv(expr, b)
		case MOD:
			return s.visitMod(expr, b)
		case MIN:
			return s.visitMin(expr, b)
		case MAX:
			return s.visitMax(expr, b)
		case EQ:
			return s.visitEQ(expr, b)
		case NE:
			return s.visitNE(expr, b)
		case LT:
			return s.visitLT(expr)
		case LE:
			return s.visitLE(expr)
		case GT:
			return s.visitGT(expr)
		case GE:
			return s.visitGE(expr)
		case AND:
			return s.visitAnd(expr)
		case OR:
			return s.visitOr(expr)
		default:
			panic("unreachable")
		}
	case *NotExpr:
		return s.visitNot(expr)
	case *SelectExpr:
		return s.visitSelect(expr, b)
	case *BroadcastExpr:
		return s.visitBroadcast(expr, b)
	case *LetExpr:
		return s.visitLet(expr, b)
	default:
		panic("unreachable")
	}
}

func (s *Simplifier) visitVar(op *VarExpr, b *Bounds) Expr {
	if value, ok := s.subst.Get(op.Name); ok {
		return s.mutate(value.(Expr), b)
	}
	if b != nil && noOverflowInt(op.Type) {
		if v, ok := s.varBounds.Get(op.Name); ok {
			*b = v.(Bounds)
		}
	}
	return op
}

func (s *Simplifier) visitBroadcast(op *BroadcastExpr, b *Bounds) Expr {
	// Every lane holds the scalar value so its interval passes through.
	value := s.mutate(op.Value, b)
	if value == op.Value {
		return op
	}
	return NewBroadcastExpr(value, op.Lanes)
}

// broadcastBinary collapses an operation on two broadcasts of the same lane
// count into a broadcast of the scalar operation. The caller re-simplifies
// the result so the scalar operation gets its own visit.
func broadcastBinary(op BinaryOp, a, b Expr) (Expr, bool) {
	ab, aok := a.(*BroadcastExpr)
	bb, bok := b.(*BroadcastExpr)
	if !aok || !bok || ab.Lanes != bb.Lanes {
		return nil, false
	}
	return NewBroadcastExpr(NewBinaryExpr(op, ab.Value, bb.Value), ab.Lanes), true
}

// stringComparer implements immutable.Comparer for string keys.
type stringComparer struct{}

// Compare returns -1, 0, or 1 if a is less than, equal to, or greater than b.
func (c *stringComparer) Compare(a, b interface{}) int {
	return strings.Compare(a.(string), b.(string))
}
