package lower

import "github.com/loom-lang/loomc/internal/ir"

// protectedStore is the result of searching a scope body for a store that
// still needs mutex protection.
type protectedStore struct {
	found        bool
	producerName string
	mutexName    string
}

// findProtectedStore searches s for a store targeting one of the given
// buffers that sits inside an atomic region still requiring a lock. Nested
// atomic regions are searched too; a store only counts while the traversal
// is inside a lock-requiring region. When several regions enclose the store,
// the outermost one's producer and mutex names win.
func findProtectedStore(s ir.Stmt, targets map[string]struct{}) protectedStore {
	f := &protectedStoreFinder{targets: targets, seen: make(ir.Visited)}
	f.include(s)
	return f.protectedStore
}

type protectedStoreFinder struct {
	protectedStore

	targets  map[string]struct{}
	seen     ir.Visited
	inAtomic bool
}

func (f *protectedStoreFinder) include(n ir.Node) {
	if n == nil || f.seen.Seen(n) {
		return
	}
	switch op := n.(type) {
	case *ir.Atomic:
		if !f.found && op.MutexName != "" {
			old := f.inAtomic
			f.inAtomic = true
			f.include(op.Body)
			f.inAtomic = old
			if f.found {
				// A matching store is inside this region; record its
				// mutex. Enclosing regions overwrite on the way out.
				f.producerName = op.ProducerName
				f.mutexName = op.MutexName
			}
		} else {
			f.include(op.Body)
		}
	case *ir.Store:
		if f.inAtomic {
			if _, ok := f.targets[op.Name]; ok {
				f.found = true
			}
		}
		ir.EachChild(op, f.include)
	default:
		ir.EachChild(n, f.include)
	}
}

// firstStoreIndex returns the index expression of the first store found
// under s, or nil when s contains no store (a pure scalar reduction).
//
// Stores inside one atomic region are not cross-checked for equal indices:
// tuple-sibling buffers use indices built from their own strides and
// extents, which differ as expressions but agree in value because the
// siblings share one shape.
func firstStoreIndex(s ir.Stmt) ir.Expr {
	var index ir.Expr
	ir.Walk(s, func(n ir.Node) bool {
		if index != nil {
			return false
		}
		if st, ok := n.(*ir.Store); ok {
			index = st.Index
			return false
		}
		return true
	})
	return index
}
