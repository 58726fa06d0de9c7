// Package sexp parses the textual form of weft expressions. The syntax is
// the s-expression form produced by the String method of each node, so any
// expression can be printed and read back:
//
//	(const 3 int32)
//	(fconst 2.5 float64)
//	(var x int32x8)
//	(add (var x int32) (const 1 int32))
//	(not (eq (var x int32) (const 0 int32)))
//	(select (var p bool) (var a int32) (var b int32))
//	(broadcast (const 7 int32) 4)
//	(let t (mul (var x int32) (var x int32)) (add (var t int32) (const 1 int32)))
package sexp

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/weftlang/weft"
)

// Parse returns the expression encoded by input.
func Parse(input string) (weft.Expr, error) {
	p := &parser{input: input}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return nil, errors.Errorf("sexp: trailing input at offset %d", p.pos)
	}
	return expr, nil
}

type parser struct {
	input string
	pos   int
}

func (p *parser) parseExpr() (weft.Expr, error) {
	if err := p.expect("("); err != nil {
		return nil, err
	}
	head, err := p.atom()
	if err != nil {
		return nil, err
	}

	var expr weft.Expr
	switch head {
	case "const":
		expr, err = p.parseConst()
	case "fconst":
		expr, err = p.parseFloatConst()
	case "var":
		expr, err = p.parseVar()
	case "not":
		expr, err = p.parseNot()
	case "select":
		expr, err = p.parseSelect()
	case "broadcast":
		expr, err = p.parseBroadcast()
	case "let":
		expr, err = p.parseLet()
	default:
		op, ok := weft.ParseBinaryOp(head)
		if !ok {
			return nil, errors.Errorf("sexp: unknown form %q", head)
		}
		expr, err = p.parseBinary(op)
	}
	if err != nil {
		return nil, err
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *parser) parseConst() (weft.Expr, error) {
	lit, err := p.atom()
	if err != nil {
		return nil, err
	}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if !t.IsScalar() {
		return nil, errors.Errorf("sexp: constant type must be scalar, got %s", t)
	} else if !t.IsInt() && !t.IsUInt() {
		return nil, errors.Errorf("sexp: constant requires an integer type, got %s", t)
	}

	var value int64
	if t.IsBool() {
		value, err = strconv.ParseInt(lit, 10, 64)
		if err != nil || (value != 0 && value != 1) {
			return nil, errors.Errorf("sexp: boolean constant must be 0 or 1, got %q", lit)
		}
	} else if t.IsUInt() {
		u, err := strconv.ParseUint(lit, 10, t.Bits)
		if err != nil {
			return nil, errors.Errorf("sexp: invalid %s literal %q", t, lit)
		}
		value = int64(u)
	} else {
		value, err = strconv.ParseInt(lit, 10, t.Bits)
		if err != nil {
			return nil, errors.Errorf("sexp: invalid %s literal %q", t, lit)
		}
	}
	return weft.NewConstExpr(t, value), nil
}

func (p *parser) parseFloatConst() (weft.Expr, error) {
	lit, err := p.atom()
	if err != nil {
		return nil, err
	}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if !t.IsScalar() || !t.IsFloat() {
		return nil, errors.Errorf("sexp: float constant requires a scalar float type, got %s", t)
	}
	value, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return nil, errors.Errorf("sexp: invalid float literal %q", lit)
	}
	return weft.NewFloatConstExpr(t, value), nil
}

func (p *parser) parseVar() (weft.Expr, error) {
	name, err := p.atom()
	if err != nil {
		return nil, err
	}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return weft.NewVarExpr(name, t), nil
}

func (p *parser) parseBinary(op weft.BinaryOp) (weft.Expr, error) {
	lhs, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	rhs, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	lt, rt := weft.ExprType(lhs), weft.ExprType(rhs)
	if lt != rt {
		return nil, errors.Errorf("sexp: operand type mismatch: %s %s %s", lt, op, rt)
	}
	switch {
	case op.IsArithmetic() && !lt.IsNumeric():
		return nil, errors.Errorf("sexp: %s requires a numeric type, got %s", op, lt)
	case op == weft.EQ || op == weft.NE:
		// any type
	case op.IsCompare() && !lt.IsNumeric():
		return nil, errors.Errorf("sexp: %s requires a numeric type, got %s", op, lt)
	case op.IsLogical() && !lt.IsBool():
		return nil, errors.Errorf("sexp: %s requires a boolean type, got %s", op, lt)
	}
	return weft.NewBinaryExpr(op, lhs, rhs), nil
}

func (p *parser) parseNot() (weft.Expr, error) {
	operand, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if !weft.ExprType(operand).IsBool() {
		return nil, errors.Errorf("sexp: not requires a boolean operand, got %s", weft.ExprType(operand))
	}
	return weft.NewNotExpr(operand), nil
}

func (p *parser) parseSelect() (weft.Expr, error) {
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	then, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	els, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	ct, tt, et := weft.ExprType(cond), weft.ExprType(then), weft.ExprType(els)
	if !ct.IsBool() {
		return nil, errors.Errorf("sexp: select requires a boolean condition, got %s", ct)
	} else if tt != et {
		return nil, errors.Errorf("sexp: select branch type mismatch: %s != %s", tt, et)
	} else if ct.Lanes != 1 && ct.Lanes != tt.Lanes {
		return nil, errors.Errorf("sexp: select lane mismatch: %s vs %s", ct, tt)
	}
	return weft.NewSelectExpr(cond, then, els), nil
}

func (p *parser) parseBroadcast() (weft.Expr, error) {
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	lit, err := p.atom()
	if err != nil {
		return nil, err
	}
	lanes, err := strconv.Atoi(lit)
	if err != nil || lanes < 2 {
		return nil, errors.Errorf("sexp: invalid lane count %q", lit)
	}
	if !weft.ExprType(value).IsScalar() {
		return nil, errors.Errorf("sexp: broadcast requires a scalar value, got %s", weft.ExprType(value))
	}
	return weft.NewBroadcastExpr(value, lanes), nil
}

func (p *parser) parseLet() (weft.Expr, error) {
	name, err := p.atom()
	if err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return weft.NewLetExpr(name, value, body), nil
}

func (p *parser) parseType() (weft.Type, error) {
	tok, err := p.atom()
	if err != nil {
		return weft.Type{}, err
	}
	t, err := weft.ParseType(tok)
	if err != nil {
		return weft.Type{}, errors.Errorf("sexp: invalid type %q", tok)
	}
	return t, nil
}

// next returns the next token: "(", ")", or a run of atom characters.
func (p *parser) next() (string, error) {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return "", errors.New("sexp: unexpected end of input")
	}
	switch c := p.input[p.pos]; c {
	case '(', ')':
		p.pos++
		return string(c), nil
	default:
		start := p.pos
		for p.pos < len(p.input) && !isSpace(p.input[p.pos]) && p.input[p.pos] != '(' && p.input[p.pos] != ')' {
			p.pos++
		}
		return p.input[start:p.pos], nil
	}
}

func (p *parser) expect(tok string) error {
	got, err := p.next()
	if err != nil {
		return err
	} else if got != tok {
		return errors.Errorf("sexp: expected %q, found %q", tok, got)
	}
	return nil
}

// atom returns the next token, rejecting parentheses.
func (p *parser) atom() (string, error) {
	tok, err := p.next()
	if err != nil {
		return "", err
	} else if tok == "(" || tok == ")" {
		return "", errors.Errorf("sexp: expected atom, found %q", tok)
	}
	return tok, nil
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && isSpace(p.input[p.pos]) {
		p.pos++
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
