package weft

import (
	"fmt"
	"strconv"
	"strings"
)

// TypeKind represents the scalar base kind of a type.
type TypeKind int

// Type kinds.
const (
	INT TypeKind = iota + 1
	UINT
	FLOAT
	HANDLE
)

// String returns the string representation of kind.
func (kind TypeKind) String() string {
	switch kind {
	case INT:
		return "int"
	case UINT:
		return "uint"
	case FLOAT:
		return "float"
	case HANDLE:
		return "handle"
	default:
		return fmt.Sprintf("TypeKind<%d>", int(kind))
	}
}

// Type represents the type of a value an expression produces. A type has a
// scalar base kind, a bit width, and a lane count. Scalar types have one
// lane; vector types have more than one, with every lane sharing the scalar
// element type.
type Type struct {
	Kind  TypeKind
	Bits  int
	Lanes int
}

// Int returns a signed integer type of the given bit width.
func Int(bits int) Type {
	assert(bits >= 1 && bits <= 64, "invalid int bit width: %d", bits)
	return Type{Kind: INT, Bits: bits, Lanes: 1}
}

// UInt returns an unsigned integer type of the given bit width.
func UInt(bits int) Type {
	assert(bits >= 1 && bits <= 64, "invalid uint bit width: %d", bits)
	return Type{Kind: UINT, Bits: bits, Lanes: 1}
}

// Float returns a floating point type of the given bit width.
func Float(bits int) Type {
	assert(bits == 32 || bits == 64, "invalid float bit width: %d", bits)
	return Type{Kind: FLOAT, Bits: bits, Lanes: 1}
}

// Bool returns the boolean type, represented as a one-bit unsigned integer.
func Bool() Type {
	return Type{Kind: UINT, Bits: 1, Lanes: 1}
}

// Handle returns an opaque pointer-sized type. Handles can be compared for
// equality but carry no arithmetic.
func Handle() Type {
	return Type{Kind: HANDLE, Bits: 64, Lanes: 1}
}

// WithLanes returns a copy of t with the given lane count.
func (t Type) WithLanes(lanes int) Type {
	assert(lanes >= 1, "invalid lane count: %d", lanes)
	t.Lanes = lanes
	return t
}

// Element returns the scalar element type of t.
func (t Type) Element() Type {
	t.Lanes = 1
	return t
}

// IsInt returns true if t is a signed integer type.
func (t Type) IsInt() bool { return t.Kind == INT }

// IsUInt returns true if t is an unsigned integer type.
func (t Type) IsUInt() bool { return t.Kind == UINT }

// IsFloat returns true if t is a floating point type.
func (t Type) IsFloat() bool { return t.Kind == FLOAT }

// IsHandle returns true if t is an opaque handle type.
func (t Type) IsHandle() bool { return t.Kind == HANDLE }

// IsBool returns true if t is a boolean (one-bit unsigned) type.
func (t Type) IsBool() bool { return t.Kind == UINT && t.Bits == 1 }

// IsScalar returns true if t has exactly one lane.
func (t Type) IsScalar() bool { return t.Lanes == 1 }

// IsVector returns true if t has more than one lane.
func (t Type) IsVector() bool { return t.Lanes > 1 }

// IsNumeric returns true if t supports arithmetic and ordering.
func (t Type) IsNumeric() bool {
	return t.Kind == INT || t.Kind == UINT || t.Kind == FLOAT
}

// String returns the string representation of t (e.g. "int32", "bool",
// "float32x4").
func (t Type) String() string {
	var buf strings.Builder
	if t.IsBool() {
		buf.WriteString("bool")
	} else {
		buf.WriteString(t.Kind.String())
		buf.WriteString(strconv.Itoa(t.Bits))
	}
	if t.Lanes > 1 {
		buf.WriteByte('x')
		buf.WriteString(strconv.Itoa(t.Lanes))
	}
	return buf.String()
}

// ParseType parses the representation produced by Type.String. Returns an
// error if s does not name a valid type.
func ParseType(s string) (Type, error) {
	name, lanes := s, 1
	if i := strings.LastIndexByte(s, 'x'); i > 0 {
		if n, err := strconv.Atoi(s[i+1:]); err == nil && n >= 1 {
			name, lanes = s[:i], n
		}
	}

	var t Type
	switch {
	case name == "bool":
		t = Bool()
	case name == "handle" || name == "handle64":
		t = Handle()
	case strings.HasPrefix(name, "int"):
		bits, err := strconv.Atoi(name[len("int"):])
		if err != nil || bits < 1 || bits > 64 {
			return Type{}, fmt.Errorf("invalid type: %q", s)
		}
		t = Int(bits)
	case strings.HasPrefix(name, "uint"):
		bits, err := strconv.Atoi(name[len("uint"):])
		if err != nil || bits < 1 || bits > 64 {
			return Type{}, fmt.Errorf("invalid type: %q", s)
		}
		t = UInt(bits)
	case strings.HasPrefix(name, "float"):
		bits, err := strconv.Atoi(name[len("float"):])
		if err != nil || (bits != 32 && bits != 64) {
			return Type{}, fmt.Errorf("invalid type: %q", s)
		}
		t = Float(bits)
	default:
		return Type{}, fmt.Errorf("invalid type: %q", s)
	}
	return t.WithLanes(lanes), nil
}

// noOverflowInt returns true if t is a signed integer type wide enough that
// the program is assumed never to overflow it. Simplifications that would be
// unsound under wrapping are restricted to these types. Unsigned and narrow
// signed integers have defined wrapping behavior instead.
func noOverflowInt(t Type) bool {
	return t.Kind == INT && t.Bits >= 32
}

// noOverflow returns true if arithmetic on t never wraps: floats and wide
// signed integers.
func noOverflow(t Type) bool {
	return t.Kind == FLOAT || noOverflowInt(t)
}

// noOverflowScalarInt returns true if t is a scalar type for which
// noOverflowInt holds.
func noOverflowScalarInt(t Type) bool {
	return t.Lanes == 1 && noOverflowInt(t)
}

// maySimplify returns true if values of t are eligible for algebraic
// simplification. Opaque handles only support identity comparison so their
// comparisons are left intact apart from recursing into operands.
func maySimplify(t Type) bool {
	return !t.IsHandle()
}
