package weft_test

import (
	"math"
	"testing"

	"github.com/weftlang/weft"
)

func TestSimplifier_Bounds(t *testing.T) {
	check := func(t *testing.T, s *weft.Simplifier, expr weft.Expr, want weft.Bounds) {
		t.Helper()
		if _, got := s.SimplifyWithBounds(expr); got != want {
			t.Fatalf("unexpected bounds: %+v, want %+v", got, want)
		}
	}

	t.Run("MulCorners", func(t *testing.T) {
		// Mixed signs put both extremes on the a.Min corners: -3*7 = -21
		// and -3*-5 = 15.
		s := weft.NewSimplifier()
		s.SetVarBounds("a", weft.NewBounds(-3, 2))
		s.SetVarBounds("b", weft.NewBounds(-5, 7))
		expr := weft.NewBinaryExpr(weft.MUL, intVar("a"), intVar("b"))
		check(t, s, expr, weft.NewBounds(-21, 15))
	})
	t.Run("MulBothNegative", func(t *testing.T) {
		s := weft.NewSimplifier()
		s.SetVarBounds("a", weft.NewBounds(-4, -2))
		s.SetVarBounds("b", weft.NewBounds(-3, -1))
		expr := weft.NewBinaryExpr(weft.MUL, intVar("a"), intVar("b"))
		check(t, s, expr, weft.NewBounds(2, 12))
	})
	t.Run("MulOverflowUndefined", func(t *testing.T) {
		// MinInt64 * -1 has no int64 value, so the whole interval is
		// dropped rather than clamped.
		s := weft.NewSimplifier()
		s.SetVarBounds("a", weft.NewBounds(math.MinInt64, math.MinInt64))
		expr := weft.NewBinaryExpr(weft.MUL, intVar("a"), intConst(-1))
		check(t, s, expr, weft.Bounds{})
	})
	t.Run("MulUnboundedOperand", func(t *testing.T) {
		s := weft.NewSimplifier()
		s.SetVarBounds("a", weft.NewBounds(1, 2))
		expr := weft.NewBinaryExpr(weft.MUL, intVar("a"), intVar("q"))
		check(t, s, expr, weft.Bounds{})
	})
	t.Run("DivByConst", func(t *testing.T) {
		// Division rounds toward negative infinity on both endpoints.
		s := weft.NewSimplifier()
		s.SetVarBounds("a", weft.NewBounds(-10, 21))
		expr := weft.NewBinaryExpr(weft.DIV, intVar("a"), intConst(4))
		check(t, s, expr, weft.NewBounds(-3, 5))
	})
	t.Run("AddOverflowDropsEndpoint", func(t *testing.T) {
		// Only the overflowing endpoint goes undefined; the other survives.
		s := weft.NewSimplifier()
		s.SetVarBounds("a", weft.NewBounds(math.MinInt64, 0))
		expr := weft.NewBinaryExpr(weft.ADD, intVar("a"), intConst(-1))
		check(t, s, expr, weft.Bounds{Max: -1, MaxDefined: true})
	})
	t.Run("Min", func(t *testing.T) {
		// The upper endpoint tightens from either side even when neither
		// interval dominates the other.
		s := weft.NewSimplifier()
		s.SetVarBounds("a", weft.NewBounds(0, 5))
		s.SetVarBounds("b", weft.NewBounds(3, 4))
		expr := weft.NewBinaryExpr(weft.MIN, intVar("a"), intVar("b"))
		check(t, s, expr, weft.NewBounds(0, 4))
	})
	t.Run("Max", func(t *testing.T) {
		s := weft.NewSimplifier()
		s.SetVarBounds("a", weft.NewBounds(0, 5))
		s.SetVarBounds("b", weft.NewBounds(3, 4))
		expr := weft.NewBinaryExpr(weft.MAX, intVar("a"), intVar("b"))
		check(t, s, expr, weft.NewBounds(3, 5))
	})
	t.Run("SelectUnion", func(t *testing.T) {
		s := weft.NewSimplifier()
		s.SetVarBounds("a", weft.NewBounds(0, 5))
		s.SetVarBounds("b", weft.NewBounds(10, 20))
		expr := weft.NewSelectExpr(boolVar("p"), intVar("a"), intVar("b"))
		check(t, s, expr, weft.NewBounds(0, 20))
	})
	t.Run("SelectUnboundedBranch", func(t *testing.T) {
		// The union is only as good as its weaker branch.
		s := weft.NewSimplifier()
		s.SetVarBounds("a", weft.NewBounds(0, 5))
		expr := weft.NewSelectExpr(boolVar("p"), intVar("a"), intVar("q"))
		check(t, s, expr, weft.Bounds{})
	})
}
