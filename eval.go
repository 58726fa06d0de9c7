package weft

import "fmt"

// Evaluator reduces expressions to constants under an assignment of their
// free variables. Division and modulus by zero evaluate to zero, matching
// the folding rules used during simplification.
type Evaluator struct {
	vars map[string]Expr
}

// NewEvaluator returns an evaluator with no variable bindings.
func NewEvaluator() *Evaluator {
	return &Evaluator{vars: make(map[string]Expr)}
}

// SetVar binds name to a constant value for subsequent evaluations.
func (e *Evaluator) SetVar(name string, value Expr) {
	assert(isConst(value), "eval: non-constant binding for %q", name)
	e.vars[name] = value
}

// Eval returns the constant value of expr. It returns an error if expr
// refers to a variable with no binding.
func (e *Evaluator) Eval(expr Expr) (Expr, error) {
	switch expr := expr.(type) {
	case *ConstExpr:
		return expr, nil
	case *FloatConstExpr:
		return expr, nil
	case *VarExpr:
		value, ok := e.vars[expr.Name]
		if !ok {
			return nil, fmt.Errorf("weft.Evaluator: unbound variable %q", expr.Name)
		} else if ExprType(value) != expr.Type {
			return nil, fmt.Errorf("weft.Evaluator: binding for %q has type %s, want %s", expr.Name, ExprType(value), expr.Type)
		}
		return value, nil
	case *BinaryExpr:
		lhs, err := e.Eval(expr.LHS)
		if err != nil {
			return nil, err
		}
		rhs, err := e.Eval(expr.RHS)
		if err != nil {
			return nil, err
		}
		return foldConst(expr.Op, lhs, rhs), nil
	case *NotExpr:
		value, err := e.Eval(expr.Expr)
		if err != nil {
			return nil, err
		}
		if bc, ok := value.(*BroadcastExpr); ok {
			return NewBroadcastExpr(foldNot(bc.Value), bc.Lanes), nil
		}
		return foldNot(value), nil
	case *SelectExpr:
		cond, err := e.Eval(expr.Cond)
		if err != nil {
			return nil, err
		}
		then, err := e.Eval(expr.Then)
		if err != nil {
			return nil, err
		}
		els, err := e.Eval(expr.Else)
		if err != nil {
			return nil, err
		}
		if IsConstTrue(cond) {
			return then, nil
		}
		return els, nil
	case *BroadcastExpr:
		value, err := e.Eval(expr.Value)
		if err != nil {
			return nil, err
		}
		return NewBroadcastExpr(value, expr.Lanes), nil
	case *LetExpr:
		value, err := e.Eval(expr.Value)
		if err != nil {
			return nil, err
		}
		prev, bound := e.vars[expr.Name]
		e.vars[expr.Name] = value
		body, err := e.Eval(expr.Body)
		if bound {
			e.vars[expr.Name] = prev
		} else {
			delete(e.vars, expr.Name)
		}
		if err != nil {
			return nil, err
		}
		return body, nil
	default:
		panic("unreachable")
	}
}
