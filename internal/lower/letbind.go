package lower

import "github.com/loom-lang/loomc/internal/ir"

// hasLiftedLetBinding reports whether any store inside body whose target is
// in storeNames stores a value that refers, through the chain of let
// bindings active at that point, to one of the storeNames buffers.
//
// A hit means an earlier lowering step lifted a load of the shared buffer
// into an enclosing binding, so the region's update is no longer a single
// indivisible read-modify-write and its mutex must stay.
func hasLiftedLetBinding(body ir.Stmt, storeNames map[string]struct{}) bool {
	f := &liftedLetFinder{
		storeNames: storeNames,
		lets:       ir.NewScope[ir.Expr](),
		seen:       make(ir.Visited),
	}
	f.include(body)
	return f.found
}

type liftedLetFinder struct {
	storeNames map[string]struct{}
	lets       *ir.Scope[ir.Expr]
	seen       ir.Visited

	// insideStore is the target buffer of the store whose value is being
	// traversed, or "" outside any designated store value.
	insideStore string
	found       bool
}

func (f *liftedLetFinder) include(n ir.Node) {
	if n == nil || f.seen.Seen(n) {
		return
	}
	switch op := n.(type) {
	case *ir.Let:
		f.include(op.Value)
		f.lets.Push(op.Name, op.Value)
		f.include(op.Body)
		f.lets.Pop(op.Name)
	case *ir.LetStmt:
		f.include(op.Value)
		f.lets.Push(op.Name, op.Value)
		f.include(op.Body)
		f.lets.Pop(op.Name)
	case *ir.Variable:
		if f.insideStore != "" && ir.UsesVars(op, f.storeNames, f.lets) {
			f.found = true
		}
	case *ir.Store:
		f.include(op.Predicate)
		if _, designated := f.storeNames[op.Name]; designated {
			old := f.insideStore
			f.insideStore = op.Name
			f.include(op.Value)
			f.insideStore = old
		} else {
			f.include(op.Value)
		}
		f.include(op.Index)
	default:
		ir.EachChild(n, f.include)
	}
}
