package weft_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/weftlang/weft"
)

func intVar(name string) weft.Expr  { return weft.NewVarExpr(name, weft.Int(32)) }
func intConst(v int64) weft.Expr    { return weft.NewConstExpr(weft.Int(32), v) }
func boolVar(name string) weft.Expr { return weft.NewVarExpr(name, weft.Bool()) }

func TestSimplify_Add(t *testing.T) {
	t.Run("ConstFold", func(t *testing.T) {
		if diff := cmp.Diff(
			intConst(5),
			weft.Simplify(weft.NewBinaryExpr(weft.ADD, intConst(2), intConst(3))),
		); diff != "" {
			t.Fatal(diff)
		}
	})
	t.Run("AddZero", func(t *testing.T) {
		x := intVar("x")
		if out := weft.Simplify(weft.NewBinaryExpr(weft.ADD, x, intConst(0))); out != x {
			t.Fatalf("unexpected result: %s", out)
		}
	})
	t.Run("ConstToRight", func(t *testing.T) {
		out := weft.Simplify(weft.NewBinaryExpr(weft.ADD, intConst(5), intVar("x")))
		if s := out.String(); s != "(add (var x int32) (const 5 int32))" {
			t.Fatalf("unexpected result: %s", s)
		}
	})
	t.Run("Reassociate", func(t *testing.T) {
		out := weft.Simplify(weft.NewBinaryExpr(weft.ADD,
			weft.NewBinaryExpr(weft.ADD, intVar("x"), intConst(2)),
			intConst(3),
		))
		if s := out.String(); s != "(add (var x int32) (const 5 int32))" {
			t.Fatalf("unexpected result: %s", s)
		}
	})
	t.Run("SubCancel", func(t *testing.T) {
		x, y := intVar("x"), intVar("y")
		out := weft.Simplify(weft.NewBinaryExpr(weft.ADD, weft.NewBinaryExpr(weft.SUB, x, y), y))
		if out != x {
			t.Fatalf("unexpected result: %s", out)
		}
	})
	t.Run("SubCancelMirrored", func(t *testing.T) {
		x, y := intVar("x"), intVar("y")
		out := weft.Simplify(weft.NewBinaryExpr(weft.ADD, y, weft.NewBinaryExpr(weft.SUB, x, y)))
		if out != x {
			t.Fatalf("unexpected result: %s", out)
		}
	})
	t.Run("FloatSubKept", func(t *testing.T) {
		x := weft.NewVarExpr("x", weft.Float(32))
		y := weft.NewVarExpr("y", weft.Float(32))
		expr := weft.NewBinaryExpr(weft.ADD, weft.NewBinaryExpr(weft.SUB, x, y), y)
		if out := weft.Simplify(expr); out != expr {
			t.Fatalf("unexpected result: %s", out)
		}
	})
	t.Run("FloatShiftKept", func(t *testing.T) {
		// Folding the two constants together would change the rounding.
		x := weft.NewVarExpr("x", weft.Float(32))
		expr := weft.NewBinaryExpr(weft.ADD,
			weft.NewBinaryExpr(weft.ADD, x, weft.NewFloatConstExpr(weft.Float(32), 1.5)),
			weft.NewFloatConstExpr(weft.Float(32), 2.5),
		)
		if out := weft.Simplify(expr); out != expr {
			t.Fatalf("unexpected result: %s", out)
		}
	})
	t.Run("Broadcast", func(t *testing.T) {
		out := weft.Simplify(weft.NewBinaryExpr(weft.ADD,
			weft.NewBroadcastExpr(intVar("x"), 4),
			weft.NewBroadcastExpr(intConst(2), 4),
		))
		if s := out.String(); s != "(broadcast (add (var x int32) (const 2 int32)) 4)" {
			t.Fatalf("unexpected result: %s", s)
		}
	})
}

func TestSimplify_Sub(t *testing.T) {
	t.Run("SelfCancel", func(t *testing.T) {
		if diff := cmp.Diff(
			intConst(0),
			weft.Simplify(weft.NewBinaryExpr(weft.SUB, intVar("x"), intVar("x"))),
		); diff != "" {
			t.Fatal(diff)
		}
	})
	t.Run("FloatSelfCancel", func(t *testing.T) {
		x := weft.NewVarExpr("x", weft.Float(64))
		if diff := cmp.Diff(
			weft.NewFloatConstExpr(weft.Float(64), 0),
			weft.Simplify(weft.NewBinaryExpr(weft.SUB, x, x)),
		); diff != "" {
			t.Fatal(diff)
		}
	})
	t.Run("LiftToAdd", func(t *testing.T) {
		out := weft.Simplify(weft.NewBinaryExpr(weft.SUB, intVar("x"), intConst(5)))
		if s := out.String(); s != "(add (var x int32) (const -5 int32))" {
			t.Fatalf("unexpected result: %s", s)
		}
	})
	t.Run("SubZero", func(t *testing.T) {
		x := intVar("x")
		if out := weft.Simplify(weft.NewBinaryExpr(weft.SUB, x, intConst(0))); out != x {
			t.Fatalf("unexpected result: %s", out)
		}
	})
	t.Run("BroadcastLift", func(t *testing.T) {
		// The broadcasts pair before the constant lifts, so the lanes
		// collapse onto the scalar form instead of stranding a vector sum.
		out := weft.Simplify(weft.NewBinaryExpr(weft.SUB,
			weft.NewBroadcastExpr(intVar("x"), 4),
			weft.NewBroadcastExpr(intConst(5), 4),
		))
		if s := out.String(); s != "(broadcast (add (var x int32) (const -5 int32)) 4)" {
			t.Fatalf("unexpected result: %s", s)
		}
	})
}

func TestSimplify_Mul(t *testing.T) {
	t.Run("ByZero", func(t *testing.T) {
		if diff := cmp.Diff(
			intConst(0),
			weft.Simplify(weft.NewBinaryExpr(weft.MUL, intVar("x"), intConst(0))),
		); diff != "" {
			t.Fatal(diff)
		}
	})
	t.Run("ByOne", func(t *testing.T) {
		x := intVar("x")
		if out := weft.Simplify(weft.NewBinaryExpr(weft.MUL, x, intConst(1))); out != x {
			t.Fatalf("unexpected result: %s", out)
		}
	})
	t.Run("Reassociate", func(t *testing.T) {
		out := weft.Simplify(weft.NewBinaryExpr(weft.MUL,
			weft.NewBinaryExpr(weft.MUL, intVar("x"), intConst(2)),
			intConst(3),
		))
		if s := out.String(); s != "(mul (var x int32) (const 6 int32))" {
			t.Fatalf("unexpected result: %s", s)
		}
	})
}

func TestSimplify_Div(t *testing.T) {
	t.Run("ConstFold", func(t *testing.T) {
		// Division rounds toward negative infinity.
		if diff := cmp.Diff(
			intConst(-3),
			weft.Simplify(weft.NewBinaryExpr(weft.DIV, intConst(-7), intConst(3))),
		); diff != "" {
			t.Fatal(diff)
		}
	})
	t.Run("ByOne", func(t *testing.T) {
		x := intVar("x")
		if out := weft.Simplify(weft.NewBinaryExpr(weft.DIV, x, intConst(1))); out != x {
			t.Fatalf("unexpected result: %s", out)
		}
	})
	t.Run("ZeroNumerator", func(t *testing.T) {
		if diff := cmp.Diff(
			intConst(0),
			weft.Simplify(weft.NewBinaryExpr(weft.DIV, intConst(0), intVar("x"))),
		); diff != "" {
			t.Fatal(diff)
		}
	})
	t.Run("ByZeroKept", func(t *testing.T) {
		expr := weft.NewBinaryExpr(weft.DIV, intVar("x"), intConst(0))
		if out := weft.Simplify(expr); out != expr {
			t.Fatalf("unexpected result: %s", out)
		}
	})
}

func TestSimplify_Mod(t *testing.T) {
	t.Run("ConstFold", func(t *testing.T) {
		// The remainder takes the sign of the divisor.
		if diff := cmp.Diff(
			intConst(2),
			weft.Simplify(weft.NewBinaryExpr(weft.MOD, intConst(-7), intConst(3))),
		); diff != "" {
			t.Fatal(diff)
		}
	})
	t.Run("ByOne", func(t *testing.T) {
		if diff := cmp.Diff(
			intConst(0),
			weft.Simplify(weft.NewBinaryExpr(weft.MOD, intVar("x"), intConst(1))),
		); diff != "" {
			t.Fatal(diff)
		}
	})
	t.Run("Aligned", func(t *testing.T) {
		expr := weft.NewBinaryExpr(weft.MOD,
			weft.NewBinaryExpr(weft.MUL, intVar("x"), intConst(4)),
			intConst(2),
		)
		if diff := cmp.Diff(intConst(0), weft.Simplify(expr)); diff != "" {
			t.Fatal(diff)
		}
	})
	t.Run("NotAligned", func(t *testing.T) {
		expr := weft.NewBinaryExpr(weft.MOD,
			weft.NewBinaryExpr(weft.MUL, intVar("x"), intConst(4)),
			intConst(3),
		)
		if out := weft.Simplify(expr); out != expr {
			t.Fatalf("unexpected result: %s", out)
		}
	})
}

func TestSimplify_MinMax(t *testing.T) {
	t.Run("ConstFold", func(t *testing.T) {
		if diff := cmp.Diff(
			intConst(2),
			weft.Simplify(weft.NewBinaryExpr(weft.MIN, intConst(2), intConst(3))),
		); diff != "" {
			t.Fatal(diff)
		}
	})
	t.Run("Same", func(t *testing.T) {
		x := intVar("x")
		if out := weft.Simplify(weft.NewBinaryExpr(weft.MAX, x, x)); out != x {
			t.Fatalf("unexpected result: %s", out)
		}
	})
	t.Run("BoundsDominance", func(t *testing.T) {
		s := weft.NewSimplifier()
		s.SetVarBounds("x", weft.NewBounds(0, 10))
		s.SetVarBounds("y", weft.NewBounds(20, 30))
		x, y := intVar("x"), intVar("y")
		if out := s.Simplify(weft.NewBinaryExpr(weft.MIN, x, y)); out != x {
			t.Fatalf("unexpected min: %s", out)
		}
		if out := s.Simplify(weft.NewBinaryExpr(weft.MAX, x, y)); out != y {
			t.Fatalf("unexpected max: %s", out)
		}
	})
}

func TestSimplify_Compare(t *testing.T) {
	t.Run("ConstFold", func(t *testing.T) {
		if diff := cmp.Diff(
			weft.NewConstExpr(weft.Bool(), 1),
			weft.Simplify(weft.NewBinaryExpr(weft.LT, intConst(2), intConst(3))),
		); diff != "" {
			t.Fatal(diff)
		}
	})
	t.Run("UnsignedConstFold", func(t *testing.T) {
		// 0xffffffffffffffff is the largest uint64, not -1.
		if diff := cmp.Diff(
			weft.NewConstExpr(weft.Bool(), 0),
			weft.Simplify(weft.NewBinaryExpr(weft.LT,
				weft.NewConstExpr(weft.UInt(64), -1),
				weft.NewConstExpr(weft.UInt(64), 1),
			)),
		); diff != "" {
			t.Fatal(diff)
		}
	})
	t.Run("SelfNeverLess", func(t *testing.T) {
		if diff := cmp.Diff(
			weft.NewConstExpr(weft.Bool(), 0),
			weft.Simplify(weft.NewBinaryExpr(weft.LT, intVar("x"), intVar("x"))),
		); diff != "" {
			t.Fatal(diff)
		}
	})
	t.Run("ShiftConstAcross", func(t *testing.T) {
		out := weft.Simplify(weft.NewBinaryExpr(weft.LT,
			weft.NewBinaryExpr(weft.ADD, intVar("x"), intConst(3)),
			intConst(7),
		))
		if s := out.String(); s != "(lt (var x int32) (const 4 int32))" {
			t.Fatalf("unexpected result: %s", s)
		}
	})
	t.Run("LeKept", func(t *testing.T) {
		expr := weft.NewBinaryExpr(weft.LE, intVar("x"), intVar("y"))
		if out := weft.Simplify(expr); out != expr {
			t.Fatalf("unexpected result: %s", out)
		}
	})
	t.Run("GtLowered", func(t *testing.T) {
		out := weft.Simplify(weft.NewBinaryExpr(weft.GT, intVar("x"), intVar("y")))
		if s := out.String(); s != "(lt (var y int32) (var x int32))" {
			t.Fatalf("unexpected result: %s", s)
		}
	})
	t.Run("GeLowered", func(t *testing.T) {
		out := weft.Simplify(weft.NewBinaryExpr(weft.GE, intVar("x"), intVar("y")))
		if s := out.String(); s != "(le (var y int32) (var x int32))" {
			t.Fatalf("unexpected result: %s", s)
		}
	})
	t.Run("BoundsProve", func(t *testing.T) {
		s := weft.NewSimplifier()
		s.SetVarBounds("x", weft.NewBounds(0, 5))
		s.SetVarBounds("y", weft.NewBounds(10, 20))
		out := s.Simplify(weft.NewBinaryExpr(weft.GT, intVar("y"), intVar("x")))
		if diff := cmp.Diff(weft.NewConstExpr(weft.Bool(), 1), out); diff != "" {
			t.Fatal(diff)
		}
	})
	t.Run("Broadcast", func(t *testing.T) {
		out := weft.Simplify(weft.NewBinaryExpr(weft.LT,
			weft.NewBroadcastExpr(intVar("x"), 4),
			weft.NewBroadcastExpr(intVar("y"), 4),
		))
		if s := out.String(); s != "(broadcast (lt (var x int32) (var y int32)) 4)" {
			t.Fatalf("unexpected result: %s", s)
		}
	})
}

func TestSimplify_Logic(t *testing.T) {
	t.Run("NotFold", func(t *testing.T) {
		if diff := cmp.Diff(
			weft.NewConstExpr(weft.Bool(), 0),
			weft.Simplify(weft.NewNotExpr(weft.NewConstExpr(weft.Bool(), 1))),
		); diff != "" {
			t.Fatal(diff)
		}
	})
	t.Run("DoubleNot", func(t *testing.T) {
		p := boolVar("p")
		if out := weft.Simplify(weft.NewNotExpr(weft.NewNotExpr(p))); out != p {
			t.Fatalf("unexpected result: %s", out)
		}
	})
	t.Run("NotEqBecomesNe", func(t *testing.T) {
		out := weft.Simplify(weft.NewNotExpr(weft.NewBinaryExpr(weft.EQ, intVar("x"), intVar("y"))))
		if s := out.String(); s != "(ne (var x int32) (var y int32))" {
			t.Fatalf("unexpected result: %s", s)
		}
	})
	t.Run("NotLtBecomesLe", func(t *testing.T) {
		out := weft.Simplify(weft.NewNotExpr(weft.NewBinaryExpr(weft.LT, intVar("x"), intVar("y"))))
		if s := out.String(); s != "(le (var y int32) (var x int32))" {
			t.Fatalf("unexpected result: %s", s)
		}
	})
	t.Run("AndTrue", func(t *testing.T) {
		p := boolVar("p")
		expr := weft.NewBinaryExpr(weft.AND, weft.NewConstExpr(weft.Bool(), 1), p)
		if out := weft.Simplify(expr); out != p {
			t.Fatalf("unexpected result: %s", out)
		}
	})
	t.Run("AndFalse", func(t *testing.T) {
		if diff := cmp.Diff(
			weft.NewConstExpr(weft.Bool(), 0),
			weft.Simplify(weft.NewBinaryExpr(weft.AND, boolVar("p"), weft.NewConstExpr(weft.Bool(), 0))),
		); diff != "" {
			t.Fatal(diff)
		}
	})
	t.Run("OrSame", func(t *testing.T) {
		p := boolVar("p")
		if out := weft.Simplify(weft.NewBinaryExpr(weft.OR, p, boolVar("p"))); out != p {
			t.Fatalf("unexpected result: %s", out)
		}
	})
	t.Run("OrTrue", func(t *testing.T) {
		if diff := cmp.Diff(
			weft.NewConstExpr(weft.Bool(), 1),
			weft.Simplify(weft.NewBinaryExpr(weft.OR, boolVar("p"), weft.NewConstExpr(weft.Bool(), 1))),
		); diff != "" {
			t.Fatal(diff)
		}
	})
}

func TestSimplify_Select(t *testing.T) {
	t.Run("CondTrue", func(t *testing.T) {
		a := intVar("a")
		out := weft.Simplify(weft.NewSelectExpr(weft.NewConstExpr(weft.Bool(), 1), a, intVar("b")))
		if out != a {
			t.Fatalf("unexpected result: %s", out)
		}
	})
	t.Run("CondFalse", func(t *testing.T) {
		b := intVar("b")
		out := weft.Simplify(weft.NewSelectExpr(weft.NewConstExpr(weft.Bool(), 0), intVar("a"), b))
		if out != b {
			t.Fatalf("unexpected result: %s", out)
		}
	})
	t.Run("SameBranches", func(t *testing.T) {
		out := weft.Simplify(weft.NewSelectExpr(boolVar("p"), intVar("a"), intVar("a")))
		if s := out.String(); s != "(var a int32)" {
			t.Fatalf("unexpected result: %s", s)
		}
	})
	t.Run("NegatedCond", func(t *testing.T) {
		out := weft.Simplify(weft.NewSelectExpr(weft.NewNotExpr(boolVar("p")), intVar("a"), intVar("b")))
		if s := out.String(); s != "(select (var p bool) (var b int32) (var a int32))" {
			t.Fatalf("unexpected result: %s", s)
		}
	})
}

func TestSimplify_Let(t *testing.T) {
	t.Run("SubstituteTrivial", func(t *testing.T) {
		expr := weft.NewLetExpr("t", intConst(3),
			weft.NewBinaryExpr(weft.ADD, intVar("t"), intVar("t")),
		)
		if diff := cmp.Diff(intConst(6), weft.Simplify(expr)); diff != "" {
			t.Fatal(diff)
		}
	})
	t.Run("SubstituteVar", func(t *testing.T) {
		expr := weft.NewLetExpr("t", intVar("y"),
			weft.NewBinaryExpr(weft.LT, intVar("t"), intConst(10)),
		)
		out := weft.Simplify(expr)
		if s := out.String(); s != "(lt (var y int32) (const 10 int32))" {
			t.Fatalf("unexpected result: %s", s)
		}
	})
	t.Run("NonTrivialKept", func(t *testing.T) {
		expr := weft.NewLetExpr("t",
			weft.NewBinaryExpr(weft.MUL, intVar("x"), intVar("y")),
			weft.NewBinaryExpr(weft.ADD, intVar("t"), intConst(1)),
		)
		if out := weft.Simplify(expr); out != expr {
			t.Fatalf("unexpected result: %s", out)
		}
	})
	t.Run("UnusedDropped", func(t *testing.T) {
		expr := weft.NewLetExpr("t",
			weft.NewBinaryExpr(weft.MUL, intVar("x"), intVar("y")),
			intConst(5),
		)
		if diff := cmp.Diff(intConst(5), weft.Simplify(expr)); diff != "" {
			t.Fatal(diff)
		}
	})
	t.Run("BoundsFlowThroughBinding", func(t *testing.T) {
		// t = x % 8 lies in [0, 8) regardless of x.
		expr := weft.NewLetExpr("t",
			weft.NewBinaryExpr(weft.MOD, intVar("x"), intConst(8)),
			weft.NewBinaryExpr(weft.LT, intVar("t"), intConst(8)),
		)
		if diff := cmp.Diff(weft.NewConstExpr(weft.Bool(), 1), weft.Simplify(expr)); diff != "" {
			t.Fatal(diff)
		}
	})
	t.Run("InnerBindingShadows", func(t *testing.T) {
		s := weft.NewSimplifier()
		s.SetVarBounds("x", weft.NewBounds(0, 5))
		// The let rebinds x, so the outer interval cannot prove the body.
		expr := weft.NewLetExpr("x",
			weft.NewBinaryExpr(weft.MUL, intVar("y"), intVar("y")),
			weft.NewBinaryExpr(weft.LT, intVar("x"), intConst(10)),
		)
		out := s.Simplify(expr)
		if _, ok := out.(*weft.LetExpr); !ok {
			t.Fatalf("unexpected result: %s", out)
		}
	})
	t.Run("ScopeRestoredOnPanic", func(t *testing.T) {
		// The body uses the binding at the wrong width, which trips the
		// constructor assert mid-mutation. The binding must not survive
		// into later uses of the same simplifier.
		s := weft.NewSimplifier()
		bad := weft.NewLetExpr("t", intConst(3),
			weft.NewBinaryExpr(weft.ADD,
				weft.NewVarExpr("t", weft.Int(64)),
				weft.NewConstExpr(weft.Int(64), 1),
			),
		)
		panicked := func() (p bool) {
			defer func() { p = recover() != nil }()
			s.Simplify(bad)
			return false
		}()
		if !panicked {
			t.Fatal("expected the mismatched body to panic")
		}
		v := weft.NewVarExpr("t", weft.Int(32))
		if out := s.Simplify(v); out != v {
			t.Fatalf("unexpected result: %s", out)
		}
	})
}

func TestSimplify_Idempotent(t *testing.T) {
	exprs := []weft.Expr{
		weft.NewBinaryExpr(weft.ADD,
			weft.NewBinaryExpr(weft.MUL, intVar("x"), intConst(0)),
			weft.NewSelectExpr(boolVar("p"), intConst(3), intConst(4)),
		),
		weft.NewBinaryExpr(weft.EQ, intVar("x"), intConst(0)),
		weft.NewNotExpr(weft.NewBinaryExpr(weft.LT, intVar("x"), intVar("y"))),
		weft.NewBinaryExpr(weft.GE, intVar("x"), intVar("y")),
	}
	for _, expr := range exprs {
		out := weft.Simplify(expr)
		if again := weft.Simplify(out); again != out {
			t.Fatalf("not idempotent: %s -> %s", out, again)
		}
	}
}

// TestSimplify_Equivalence checks simplified expressions against the
// evaluator over a grid of assignments.
func TestSimplify_Equivalence(t *testing.T) {
	x, y, p := intVar("x"), intVar("y"), boolVar("p")
	exprs := []weft.Expr{
		weft.NewBinaryExpr(weft.ADD, weft.NewBinaryExpr(weft.ADD, x, intConst(2)), intConst(3)),
		weft.NewBinaryExpr(weft.ADD, weft.NewBinaryExpr(weft.SUB, x, y), y),
		weft.NewBinaryExpr(weft.SUB, x, intConst(5)),
		weft.NewBinaryExpr(weft.ADD,
			weft.NewBinaryExpr(weft.MUL, x, intConst(0)),
			weft.NewSelectExpr(weft.NewBinaryExpr(weft.LT, x, y), intConst(3), intConst(4)),
		),
		weft.NewBinaryExpr(weft.EQ, weft.NewBinaryExpr(weft.ADD, x, intConst(3)), intConst(8)),
		weft.NewNotExpr(weft.NewBinaryExpr(weft.LT, x, y)),
		weft.NewBinaryExpr(weft.MOD, weft.NewBinaryExpr(weft.MUL, x, intConst(4)), intConst(2)),
		weft.NewBinaryExpr(weft.GE, x, y),
		weft.NewSelectExpr(weft.NewNotExpr(p), x, y),
		weft.NewLetExpr("t", weft.NewBinaryExpr(weft.ADD, x, y),
			weft.NewBinaryExpr(weft.MUL, intVar("t"), intVar("t"))),
	}
	for _, expr := range exprs {
		simplified := weft.Simplify(expr)
		for xv := int64(-2); xv <= 2; xv++ {
			for yv := int64(-2); yv <= 2; yv++ {
				for pv := int64(0); pv <= 1; pv++ {
					ev := weft.NewEvaluator()
					ev.SetVar("x", intConst(xv))
					ev.SetVar("y", intConst(yv))
					ev.SetVar("p", weft.NewConstExpr(weft.Bool(), pv))

					want, err := ev.Eval(expr)
					if err != nil {
						t.Fatal(err)
					}
					got, err := ev.Eval(simplified)
					if err != nil {
						t.Fatal(err)
					}
					if weft.CompareExpr(want, got) != 0 {
						t.Fatalf("%s != %s at x=%d y=%d p=%d:\n  %s\n  %s",
							got, want, xv, yv, pv, expr, simplified)
					}
				}
			}
		}
	}
}

func TestSimplifier_CanProve(t *testing.T) {
	t.Run("Tautology", func(t *testing.T) {
		if !weft.NewSimplifier().CanProve(weft.NewBinaryExpr(weft.GE, intVar("x"), intVar("x"))) {
			t.Fatal("expected proof")
		}
	})
	t.Run("WithFacts", func(t *testing.T) {
		s := weft.NewSimplifier()
		s.SetVarBounds("x", weft.NewBounds(0, 10))
		if !s.CanProve(weft.NewBinaryExpr(weft.LT, intVar("x"), intConst(11))) {
			t.Fatal("expected proof")
		}
	})
	t.Run("Unprovable", func(t *testing.T) {
		if weft.NewSimplifier().CanProve(weft.NewBinaryExpr(weft.LT, intVar("x"), intVar("y"))) {
			t.Fatal("expected no proof")
		}
	})
	t.Run("FactsPersistAcrossCalls", func(t *testing.T) {
		s := weft.NewSimplifier()
		s.SetVarBounds("x", weft.NewBounds(4, 4))
		if !s.CanProve(weft.NewBinaryExpr(weft.LT, intVar("x"), intConst(5))) {
			t.Fatal("expected proof")
		}
		if !s.CanProve(weft.NewBinaryExpr(weft.GT, intVar("x"), intConst(3))) {
			t.Fatal("expected proof")
		}
	})
}

func TestSimplifier_SimplifyWithBounds(t *testing.T) {
	t.Run("Shifted", func(t *testing.T) {
		s := weft.NewSimplifier()
		s.SetVarBounds("x", weft.NewBounds(0, 10))
		expr := weft.NewBinaryExpr(weft.ADD, intVar("x"), intConst(5))
		out, b := s.SimplifyWithBounds(expr)
		if out != expr {
			t.Fatalf("unexpected result: %s", out)
		}
		if diff := cmp.Diff(weft.NewBounds(5, 15), b); diff != "" {
			t.Fatal(diff)
		}
	})
	t.Run("Mod", func(t *testing.T) {
		// The interval holds without any fact about the dividend.
		s := weft.NewSimplifier()
		expr := weft.NewBinaryExpr(weft.MOD, intVar("x"), intConst(8))
		out, b := s.SimplifyWithBounds(expr)
		if out != expr {
			t.Fatalf("unexpected result: %s", out)
		}
		if diff := cmp.Diff(weft.NewBounds(0, 7), b); diff != "" {
			t.Fatal(diff)
		}
	})
	t.Run("Unbounded", func(t *testing.T) {
		s := weft.NewSimplifier()
		if _, b := s.SimplifyWithBounds(intVar("x")); b.MinDefined || b.MaxDefined {
			t.Fatalf("unexpected bounds: %+v", b)
		}
	})
}
