package weft

// trivialBinding returns true if value is cheap enough to substitute into
// every use site rather than keep behind its binding.
func trivialBinding(value Expr) bool {
	switch value := value.(type) {
	case *ConstExpr, *FloatConstExpr, *VarExpr:
		return true
	case *BroadcastExpr:
		return isConst(value)
	default:
		return false
	}
}

func (s *Simplifier) visitLet(op *LetExpr, b *Bounds) Expr {
	var vb Bounds
	value := s.mutate(op.Value, &vb)
	vt := ExprType(value)

	// Facts about the bound name shadow any outer binding of the same
	// name for the duration of the body. Alignment is computed against
	// the outer scope, before the name is rebound. The restore is
	// deferred so a panic inside the body cannot leave the facts bound.
	prevSubst, prevBounds, prevAlign := s.subst, s.varBounds, s.alignment
	defer func() {
		s.subst, s.varBounds, s.alignment = prevSubst, prevBounds, prevAlign
	}()
	if trivialBinding(value) {
		s.subst = s.subst.Set(op.Name, value)
	} else {
		s.subst = s.subst.Delete(op.Name)
	}
	if noOverflowInt(vt) && (vb.MinDefined || vb.MaxDefined) {
		s.varBounds = s.varBounds.Set(op.Name, vb)
	} else {
		s.varBounds = s.varBounds.Delete(op.Name)
	}
	if noOverflowScalarInt(vt) {
		s.alignment = prevAlign.Set(op.Name, modulusRemainder(value, prevAlign))
	} else {
		s.alignment = prevAlign.Delete(op.Name)
	}

	body := s.mutate(op.Body, b)

	// Substitution or simplification may have removed every use.
	if !exprUsesVar(body, op.Name) {
		return body
	}
	if value == op.Value && body == op.Body {
		return op
	}
	return NewLetExpr(op.Name, value, body)
}
