package ir

// EachChild calls fn once for each direct child of n, in evaluation order.
// Nil children (optional predicates, empty bodies) are skipped.
//
// Passes that need per-kind behavior handle their kinds in a type switch and
// fall back to EachChild for everything else, so adding a node kind only
// requires updating this function and MutateChildren.
func EachChild(n Node, fn func(Node)) {
	visit := func(c Node) {
		if c == nil {
			return
		}
		fn(c)
	}

	switch op := n.(type) {
	case *IntImm, *Variable:
		// leaves
	case *Load:
		visit(op.Predicate)
		visit(op.Index)
	case *Add:
		visit(op.A)
		visit(op.B)
	case *Mul:
		visit(op.A)
		visit(op.B)
	case *Let:
		visit(op.Value)
		visit(op.Body)
	case *Call:
		for _, a := range op.Args {
			visit(a)
		}
	case *LetStmt:
		visit(op.Value)
		visit(op.Body)
	case *Store:
		visit(op.Predicate)
		visit(op.Value)
		visit(op.Index)
	case *Atomic:
		visit(op.Body)
	case *Allocate:
		for _, e := range op.Extents {
			visit(e)
		}
		visit(op.Condition)
		visit(op.New)
		visit(op.Body)
	case *ProducerConsumer:
		visit(op.Body)
	case *Block:
		visit(op.First)
		visit(op.Rest)
	case *Evaluate:
		visit(op.Value)
	case *For:
		visit(op.Min)
		visit(op.Extent)
		visit(op.Body)
	}
}

// Visited tracks the nodes already seen during one traversal instance.
// Keying by node identity is what keeps traversal linear over trees that
// share subexpressions.
type Visited map[Node]struct{}

// Seen records n and reports whether it had been recorded before.
func (v Visited) Seen(n Node) bool {
	if _, ok := v[n]; ok {
		return true
	}
	v[n] = struct{}{}
	return false
}

// Walk calls visit for every distinct node reachable from n, visiting each
// node object at most once even when it is referenced from several parents.
// visit returning false prunes the node's children.
func Walk(n Node, visit func(Node) bool) {
	seen := make(Visited)
	var rec func(Node)
	rec = func(n Node) {
		if n == nil || seen.Seen(n) {
			return
		}
		if !visit(n) {
			return
		}
		EachChild(n, rec)
	}
	rec(n)
}
