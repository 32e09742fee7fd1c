package ir

// MutateChildren rebuilds s with every child expression rewritten by fe and
// every child statement rewritten by fs. It returns s itself when no child
// changed, so rewrites preserve node identity (and therefore sharing)
// wherever they make no change.
//
// This is the shared default behavior for tree-rewriting passes: a pass
// handles the node kinds it cares about in a type switch and calls
// MutateChildren for the rest.
func MutateChildren(s Stmt, fe func(Expr) Expr, fs func(Stmt) Stmt) Stmt {
	expr := func(e Expr) Expr {
		if e == nil {
			return nil
		}
		return fe(e)
	}
	stmt := func(t Stmt) Stmt {
		if t == nil {
			return nil
		}
		return fs(t)
	}

	switch op := s.(type) {
	case *LetStmt:
		value := expr(op.Value)
		body := stmt(op.Body)
		if value == op.Value && body == op.Body {
			return op
		}
		return &LetStmt{Name: op.Name, Value: value, Body: body}
	case *Store:
		predicate := expr(op.Predicate)
		value := expr(op.Value)
		index := expr(op.Index)
		if predicate == op.Predicate && value == op.Value && index == op.Index {
			return op
		}
		return &Store{Name: op.Name, Value: value, Index: index, Predicate: predicate}
	case *Atomic:
		body := stmt(op.Body)
		if body == op.Body {
			return op
		}
		return &Atomic{ProducerName: op.ProducerName, MutexName: op.MutexName, Body: body}
	case *Allocate:
		extents, extentsChanged := mutateExprs(op.Extents, expr)
		condition := expr(op.Condition)
		newExpr := expr(op.New)
		body := stmt(op.Body)
		if !extentsChanged && condition == op.Condition && newExpr == op.New && body == op.Body {
			return op
		}
		return &Allocate{
			Name:        op.Name,
			Type:        op.Type,
			Memory:      op.Memory,
			Extents:     extents,
			Condition:   condition,
			Body:        body,
			New:         newExpr,
			FreeRoutine: op.FreeRoutine,
		}
	case *ProducerConsumer:
		body := stmt(op.Body)
		if body == op.Body {
			return op
		}
		return &ProducerConsumer{Name: op.Name, IsProducer: op.IsProducer, Body: body}
	case *Block:
		first := stmt(op.First)
		rest := stmt(op.Rest)
		if first == op.First && rest == op.Rest {
			return op
		}
		return &Block{First: first, Rest: rest}
	case *Evaluate:
		value := expr(op.Value)
		if value == op.Value {
			return op
		}
		return &Evaluate{Value: value}
	case *For:
		min := expr(op.Min)
		extent := expr(op.Extent)
		body := stmt(op.Body)
		if min == op.Min && extent == op.Extent && body == op.Body {
			return op
		}
		return &For{Name: op.Name, Min: min, Extent: extent, Parallel: op.Parallel, Body: body}
	default:
		return s
	}
}

// MutateExprChildren rebuilds e with every child expression rewritten by fe,
// returning e itself when no child changed.
func MutateExprChildren(e Expr, fe func(Expr) Expr) Expr {
	expr := func(c Expr) Expr {
		if c == nil {
			return nil
		}
		return fe(c)
	}

	switch op := e.(type) {
	case *Load:
		predicate := expr(op.Predicate)
		index := expr(op.Index)
		if predicate == op.Predicate && index == op.Index {
			return op
		}
		return &Load{Name: op.Name, Index: index, Predicate: predicate, Type: op.Type}
	case *Add:
		a := expr(op.A)
		b := expr(op.B)
		if a == op.A && b == op.B {
			return op
		}
		return &Add{A: a, B: b}
	case *Mul:
		a := expr(op.A)
		b := expr(op.B)
		if a == op.A && b == op.B {
			return op
		}
		return &Mul{A: a, B: b}
	case *Let:
		value := expr(op.Value)
		body := expr(op.Body)
		if value == op.Value && body == op.Body {
			return op
		}
		return &Let{Name: op.Name, Value: value, Body: body}
	case *Call:
		args, changed := mutateExprs(op.Args, expr)
		if !changed {
			return op
		}
		return &Call{Name: op.Name, Args: args, Kind: op.Kind, Type: op.Type}
	default:
		// IntImm, Variable: leaves
		return e
	}
}

func mutateExprs(exprs []Expr, fe func(Expr) Expr) ([]Expr, bool) {
	changed := false
	out := exprs
	for i, e := range exprs {
		m := fe(e)
		if m != e && !changed {
			changed = true
			out = make([]Expr, len(exprs))
			copy(out, exprs[:i])
		}
		if changed {
			out[i] = m
		}
	}
	return out, changed
}
