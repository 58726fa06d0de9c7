package weft

import (
	"fmt"
	"strconv"
	"strings"
)

// Expr represents a node in the expression IR. Expressions are immutable
// once constructed; rewrites build new nodes and leave the originals intact.
type Expr interface {
	fmt.Stringer
	expr()
}

func (*ConstExpr) expr()      {}
func (*FloatConstExpr) expr() {}
func (*VarExpr) expr()        {}
func (*BinaryExpr) expr()     {}
func (*NotExpr) expr()        {}
func (*SelectExpr) expr()     {}
func (*BroadcastExpr) expr()  {}
func (*LetExpr) expr()        {}

// ExprType returns the type of the value the expression produces.
func ExprType(expr Expr) Type {
	switch expr := expr.(type) {
	case *ConstExpr:
		return expr.Type
	case *FloatConstExpr:
		return expr.Type
	case *VarExpr:
		return expr.Type
	case *BinaryExpr:
		if expr.Op.IsCompare() {
			return Bool().WithLanes(ExprType(expr.LHS).Lanes)
		}
		return ExprType(expr.LHS)
	case *NotExpr:
		return ExprType(expr.Expr)
	case *SelectExpr:
		return ExprType(expr.Then)
	case *BroadcastExpr:
		return ExprType(expr.Value).WithLanes(expr.Lanes)
	case *LetExpr:
		return ExprType(expr.Body)
	default:
		panic("unreachable")
	}
}

// BinaryOp represents a binary expression operation.
type BinaryOp int

// BinaryExpr operations.
const (
	arithmetic_op_begin = BinaryOp(iota)
	ADD
	SUB
	MUL
	DIV
	MOD
	MIN
	MAX
	arithmetic_op_end

	compare_op_begin
	EQ
	NE
	LT
	LE
	GT
	GE
	compare_op_end

	logical_op_begin
	AND
	OR
	logical_op_end
)

var binaryOps = [...]string{
	ADD: "add",
	SUB: "sub",
	MUL: "mul",
	DIV: "div",
	MOD: "mod",
	MIN: "min",
	MAX: "max",
	EQ:  "eq",
	NE:  "ne",
	LT:  "lt",
	LE:  "le",
	GT:  "gt",
	GE:  "ge",
	AND: "and",
	OR:  "or",
}

// String returns the string representation of the operation.
func (op BinaryOp) String() string {
	if op >= 0 && op < BinaryOp(len(binaryOps)) && binaryOps[op] != "" {
		return binaryOps[op]
	}
	return fmt.Sprintf("BinaryOp<%d>", int(op))
}

// ParseBinaryOp returns the operator whose name is s.
func ParseBinaryOp(s string) (BinaryOp, bool) {
	for op, name := range binaryOps {
		if name != "" && name == s {
			return BinaryOp(op), true
		}
	}
	return 0, false
}

// IsArithmetic returns true if op is an arithmetic operator.
func (op BinaryOp) IsArithmetic() bool {
	return op > arithmetic_op_begin && op < arithmetic_op_end
}

// IsCompare returns true if op is a comparison operator.
func (op BinaryOp) IsCompare() bool {
	return op > compare_op_begin && op < compare_op_end
}

// IsLogical returns true if op is a boolean connective.
func (op BinaryOp) IsLogical() bool {
	return op > logical_op_begin && op < logical_op_end
}

// ConstExpr represents an integer constant. The value is stored sign
// extended for signed types and masked to the bit width for unsigned types
// so that equal constants are represented by equal values.
type ConstExpr struct {
	Type  Type
	Value int64
}

// NewConstExpr returns a new instance of ConstExpr. The type must be a
// scalar integer type; vector constants are built by broadcasting a scalar.
func NewConstExpr(t Type, value int64) *ConstExpr {
	assert(t.IsScalar(), "const must be scalar, got %s", t)
	assert(t.IsInt() || t.IsUInt(), "const requires an integer type, got %s", t)
	return &ConstExpr{Type: t, Value: normalizeInt(t, value)}
}

// String returns the string representation of the expression.
func (e *ConstExpr) String() string {
	if e.Type.IsUInt() && !e.Type.IsBool() {
		return fmt.Sprintf("(const %d %s)", uint64(e.Value)&uintMask(e.Type.Bits), e.Type)
	}
	return fmt.Sprintf("(const %d %s)", e.Value, e.Type)
}

// normalizeInt truncates value to the bit width of t. Signed types keep the
// value sign extended, unsigned types keep it zero extended.
func normalizeInt(t Type, value int64) int64 {
	if t.Bits >= 64 {
		return value
	}
	if t.IsInt() {
		shift := uint(64 - t.Bits)
		return value << shift >> shift
	}
	return int64(uint64(value) & uintMask(t.Bits))
}

// uintMask returns a mask covering the low bits of an unsigned value.
func uintMask(bits int) uint64 {
	if bits >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(bits)) - 1
}

// FloatConstExpr represents a floating point constant.
type FloatConstExpr struct {
	Type  Type
	Value float64
}

// NewFloatConstExpr returns a new instance of FloatConstExpr.
func NewFloatConstExpr(t Type, value float64) *FloatConstExpr {
	assert(t.IsScalar(), "float const must be scalar, got %s", t)
	assert(t.IsFloat(), "float const requires a float type, got %s", t)
	return &FloatConstExpr{Type: t, Value: value}
}

// String returns the string representation of the expression.
func (e *FloatConstExpr) String() string {
	return fmt.Sprintf("(fconst %s %s)", strconv.FormatFloat(e.Value, 'g', -1, 64), e.Type)
}

// VarExpr represents a reference to a named value bound outside the
// expression or by an enclosing LetExpr.
type VarExpr struct {
	Name string
	Type Type
}

// NewVarExpr returns a new instance of VarExpr.
func NewVarExpr(name string, t Type) *VarExpr {
	assert(name != "", "variable name required")
	return &VarExpr{Name: name, Type: t}
}

// String returns the string representation of the expression.
func (e *VarExpr) String() string {
	return fmt.Sprintf("(var %s %s)", e.Name, e.Type)
}

// BinaryExpr represents an operation on two expressions.
type BinaryExpr struct {
	Op  BinaryOp
	LHS Expr
	RHS Expr
}

// NewBinaryExpr returns a new instance of BinaryExpr. Both operands must
// have the same type. Arithmetic and ordering operators additionally require
// a numeric type, logical operators a boolean type. Equality is defined for
// every type including handles.
func NewBinaryExpr(op BinaryOp, lhs, rhs Expr) Expr {
	lt, rt := ExprType(lhs), ExprType(rhs)
	assert(lt == rt, "operand type mismatch: %s %s %s", lt, op, rt)

	switch {
	case op.IsArithmetic():
		assert(lt.IsNumeric(), "arithmetic requires a numeric type, got %s", lt)
	case op == EQ || op == NE:
		// any type
	case op.IsCompare():
		assert(lt.IsNumeric(), "ordering requires a numeric type, got %s", lt)
	case op.IsLogical():
		assert(lt.IsBool(), "logical op requires a boolean type, got %s", lt)
	default:
		panic("unreachable")
	}
	return &BinaryExpr{Op: op, LHS: lhs, RHS: rhs}
}

// String returns the string representation of the expression.
func (e *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Op, e.LHS, e.RHS)
}

// NotExpr represents the logical negation of a boolean expression.
type NotExpr struct {
	Expr Expr
}

// NewNotExpr returns a new instance of NotExpr.
func NewNotExpr(expr Expr) Expr {
	assert(ExprType(expr).IsBool(), "not requires a boolean operand, got %s", ExprType(expr))
	return &NotExpr{Expr: expr}
}

// String returns the string representation of the expression.
func (e *NotExpr) String() string {
	return fmt.Sprintf("(not %s)", e.Expr)
}

// SelectExpr chooses between two values of the same type based on a boolean
// condition. With a vector condition the choice is made per lane.
type SelectExpr struct {
	Cond Expr
	Then Expr
	Else Expr
}

// NewSelectExpr returns a new instance of SelectExpr.
func NewSelectExpr(cond, then, els Expr) Expr {
	ct, tt, et := ExprType(cond), ExprType(then), ExprType(els)
	assert(ct.IsBool(), "select requires a boolean condition, got %s", ct)
	assert(tt == et, "select branch type mismatch: %s != %s", tt, et)
	assert(ct.Lanes == 1 || ct.Lanes == tt.Lanes, "select lane mismatch: %s vs %s", ct, tt)
	return &SelectExpr{Cond: cond, Then: then, Else: els}
}

// String returns the string representation of the expression.
func (e *SelectExpr) String() string {
	return fmt.Sprintf("(select %s %s %s)", e.Cond, e.Then, e.Else)
}

// BroadcastExpr replicates a scalar value across the lanes of a vector.
type BroadcastExpr struct {
	Value Expr
	Lanes int
}

// NewBroadcastExpr returns a new instance of BroadcastExpr.
func NewBroadcastExpr(value Expr, lanes int) Expr {
	assert(ExprType(value).IsScalar(), "broadcast requires a scalar value, got %s", ExprType(value))
	assert(lanes >= 2, "broadcast requires at least two lanes, got %d", lanes)
	return &BroadcastExpr{Value: value, Lanes: lanes}
}

// String returns the string representation of the expression.
func (e *BroadcastExpr) String() string {
	return fmt.Sprintf("(broadcast %s %d)", e.Value, e.Lanes)
}

// LetExpr binds the value of an expression to a name over a body
// expression. References to the name inside the body observe the bound
// value; an inner binding of the same name shadows the outer one.
type LetExpr struct {
	Name  string
	Value Expr
	Body  Expr
}

// NewLetExpr returns a new instance of LetExpr.
func NewLetExpr(name string, value, body Expr) Expr {
	assert(name != "", "let binding name required")
	return &LetExpr{Name: name, Value: value, Body: body}
}

// String returns the string representation of the expression.
func (e *LetExpr) String() string {
	return fmt.Sprintf("(let %s %s %s)", e.Name, e.Value, e.Body)
}

// MakeConst returns a constant expression of type t holding value in every
// lane. Float types receive the value converted to float64.
func MakeConst(t Type, value int64) Expr {
	var scalar Expr
	if t.IsFloat() {
		scalar = NewFloatConstExpr(t.Element(), float64(value))
	} else {
		scalar = NewConstExpr(t.Element(), value)
	}
	if t.Lanes > 1 {
		return NewBroadcastExpr(scalar, t.Lanes)
	}
	return scalar
}

// constBool returns the boolean constant v replicated across lanes.
func constBool(v bool, lanes int) Expr {
	value := int64(0)
	if v {
		value = 1
	}
	return MakeConst(Bool().WithLanes(lanes), value)
}

// IsConstExpr returns true if expr is a scalar integer or float constant.
func IsConstExpr(expr Expr) bool {
	switch expr.(type) {
	case *ConstExpr, *FloatConstExpr:
		return true
	default:
		return false
	}
}

// unwrapBroadcast returns the scalar beneath a broadcast, or expr itself.
func unwrapBroadcast(expr Expr) Expr {
	if b, ok := expr.(*BroadcastExpr); ok {
		return b.Value
	}
	return expr
}

// isConst returns true if expr is a scalar constant or a broadcast of one.
func isConst(expr Expr) bool {
	return IsConstExpr(unwrapBroadcast(expr))
}

// constInt returns the integer value of a constant expression, looking
// through a broadcast. The second return is false if expr is not an integer
// constant.
func constInt(expr Expr) (int64, bool) {
	if c, ok := unwrapBroadcast(expr).(*ConstExpr); ok {
		return c.Value, true
	}
	return 0, false
}

// constFloat returns the float value of a constant expression, looking
// through a broadcast.
func constFloat(expr Expr) (float64, bool) {
	if c, ok := unwrapBroadcast(expr).(*FloatConstExpr); ok {
		return c.Value, true
	}
	return 0, false
}

// isConstValue returns true if expr is a constant equal to value in every
// lane. Float constants compare against the converted value.
func isConstValue(expr Expr, value int64) bool {
	if v, ok := constInt(expr); ok {
		return v == value
	}
	if v, ok := constFloat(expr); ok {
		return v == float64(value)
	}
	return false
}

// IsConstTrue returns true if expr is a boolean constant holding true in
// every lane.
func IsConstTrue(expr Expr) bool {
	return ExprType(expr).IsBool() && isConstValue(expr, 1)
}

// IsConstFalse returns true if expr is a boolean constant holding false in
// every lane.
func IsConstFalse(expr Expr) bool {
	return ExprType(expr).IsBool() && isConstValue(expr, 0)
}

// CompareExpr returns an integer comparing two expressions. The result is 0
// if the expressions are structurally equal, and otherwise orders them by an
// arbitrary total order that is stable across processes.
func CompareExpr(a, b Expr) int {
	if a == nil && b != nil {
		return -1
	} else if a != nil && b == nil {
		return 1
	} else if a == nil && b == nil {
		return 0
	}

	if ak, bk := exprKind(a), exprKind(b); ak < bk {
		return -1
	} else if ak > bk {
		return 1
	}

	switch a := a.(type) {
	case *ConstExpr:
		return compareConstExpr(a, b.(*ConstExpr))
	case *FloatConstExpr:
		return compareFloatConstExpr(a, b.(*FloatConstExpr))
	case *VarExpr:
		return compareVarExpr(a, b.(*VarExpr))
	case *BroadcastExpr:
		return compareBroadcastExpr(a, b.(*BroadcastExpr))
	case *NotExpr:
		return CompareExpr(a.Expr, b.(*NotExpr).Expr)
	case *SelectExpr:
		return compareSelectExpr(a, b.(*SelectExpr))
	case *LetExpr:
		return compareLetExpr(a, b.(*LetExpr))
	case *BinaryExpr:
		return compareBinaryExpr(a, b.(*BinaryExpr))
	default:
		panic("unreachable")
	}
}

func compareType(a, b Type) int {
	if a.Kind != b.Kind {
		if a.Kind < b.Kind {
			return -1
		}
		return 1
	}
	if a.Bits != b.Bits {
		if a.Bits < b.Bits {
			return -1
		}
		return 1
	}
	if a.Lanes != b.Lanes {
		if a.Lanes < b.Lanes {
			return -1
		}
		return 1
	}
	return 0
}

func compareConstExpr(a, b *ConstExpr) int {
	if cmp := compareType(a.Type, b.Type); cmp != 0 {
		return cmp
	}
	if a.Value < b.Value {
		return -1
	} else if a.Value > b.Value {
		return 1
	}
	return 0
}

func compareFloatConstExpr(a, b *FloatConstExpr) int {
	if cmp := compareType(a.Type, b.Type); cmp != 0 {
		return cmp
	}
	if a.Value < b.Value {
		return -1
	} else if a.Value > b.Value {
		return 1
	}
	return 0
}

func compareVarExpr(a, b *VarExpr) int {
	if cmp := strings.Compare(a.Name, b.Name); cmp != 0 {
		return cmp
	}
	return compareType(a.Type, b.Type)
}

func compareBroadcastExpr(a, b *BroadcastExpr) int {
	if a.Lanes != b.Lanes {
		if a.Lanes < b.Lanes {
			return -1
		}
		return 1
	}
	return CompareExpr(a.Value, b.Value)
}

func compareSelectExpr(a, b *SelectExpr) int {
	if cmp := CompareExpr(a.Cond, b.Cond); cmp != 0 {
		return cmp
	}
	if cmp := CompareExpr(a.Then, b.Then); cmp != 0 {
		return cmp
	}
	return CompareExpr(a.Else, b.Else)
}

func compareLetExpr(a, b *LetExpr) int {
	if cmp := strings.Compare(a.Name, b.Name); cmp != 0 {
		return cmp
	}
	if cmp := CompareExpr(a.Value, b.Value); cmp != 0 {
		return cmp
	}
	return CompareExpr(a.Body, b.Body)
}

func compareBinaryExpr(a, b *BinaryExpr) int {
	if a.Op != b.Op {
		if a.Op < b.Op {
			return -1
		}
		return 1
	}
	if cmp := CompareExpr(a.LHS, b.LHS); cmp != 0 {
		return cmp
	}
	return CompareExpr(a.RHS, b.RHS)
}

func exprKind(expr Expr) int {
	switch expr.(type) {
	case *ConstExpr:
		return 1
	case *FloatConstExpr:
		return 2
	case *VarExpr:
		return 3
	case *BroadcastExpr:
		return 4
	case *NotExpr:
		return 5
	case *SelectExpr:
		return 6
	case *LetExpr:
		return 7
	case *BinaryExpr:
		return 8
	default:
		panic("unreachable")
	}
}

// ExprVisitor represents a visitor that can be passed to WalkExpr.
type ExprVisitor interface {
	// Executed for every visited node. Return false to skip the node's children.
	Visit(expr Expr) bool
}

// WalkExpr traverses an expression tree in depth-first preorder.
func WalkExpr(v ExprVisitor, expr Expr) {
	if !v.Visit(expr) {
		return
	}

	switch expr := expr.(type) {
	case *ConstExpr, *FloatConstExpr, *VarExpr:
		// nop
	case *BinaryExpr:
		WalkExpr(v, expr.LHS)
		WalkExpr(v, expr.RHS)
	case *NotExpr:
		WalkExpr(v, expr.Expr)
	case *SelectExpr:
		WalkExpr(v, expr.Cond)
		WalkExpr(v, expr.Then)
		WalkExpr(v, expr.Else)
	case *BroadcastExpr:
		WalkExpr(v, expr.Value)
	case *LetExpr:
		WalkExpr(v, expr.Value)
		WalkExpr(v, expr.Body)
	default:
		panic("unreachable")
	}
}

// exprUsesVar returns true if expr references the named variable. A LetExpr
// rebinding the same name shadows it for the extent of its body.
func exprUsesVar(expr Expr, name string) bool {
	switch expr := expr.(type) {
	case *ConstExpr, *FloatConstExpr:
		return false
	case *VarExpr:
		return expr.Name == name
	case *BinaryExpr:
		return exprUsesVar(expr.LHS, name) || exprUsesVar(expr.RHS, name)
	case *NotExpr:
		return exprUsesVar(expr.Expr, name)
	case *SelectExpr:
		return exprUsesVar(expr.Cond, name) || exprUsesVar(expr.Then, name) || exprUsesVar(expr.Else, name)
	case *BroadcastExpr:
		return exprUsesVar(expr.Value, name)
	case *LetExpr:
		if exprUsesVar(expr.Value, name) {
			return true
		}
		if expr.Name == name {
			return false // shadowed
		}
		return exprUsesVar(expr.Body, name)
	default:
		panic("unreachable")
	}
}
