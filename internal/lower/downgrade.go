package lower

import "github.com/loom-lang/loomc/internal/ir"

// downgradeAtomics clears the mutex name of every atomic region that
// provably does not need mutual exclusion, leaving it to compile to a bare
// hardware atomic. A region keeps its mutex iff some store value inside its
// body depends, through the active let bindings, on a buffer the body itself
// writes. Each region is decided independently; nested regions are always
// processed.
func downgradeAtomics(s ir.Stmt) ir.Stmt {
	d := &downgrader{}
	return d.mutateStmt(s)
}

type downgrader struct{}

func (d *downgrader) mutateStmt(s ir.Stmt) ir.Stmt {
	op, ok := s.(*ir.Atomic)
	if !ok {
		return ir.MutateChildren(s, d.mutateExpr, d.mutateStmt)
	}

	names := storeNames(op.Body)
	if hasLiftedLetBinding(op.Body, names) {
		// Can't remove the mutex. Keep the region as is, but still
		// rewrite nested regions.
		return ir.MutateChildren(op, d.mutateExpr, d.mutateStmt)
	}
	body := d.mutateStmt(op.Body)
	return &ir.Atomic{ProducerName: op.ProducerName, MutexName: "", Body: body}
}

func (d *downgrader) mutateExpr(e ir.Expr) ir.Expr {
	return ir.MutateExprChildren(e, d.mutateExpr)
}
