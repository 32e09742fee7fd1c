package lower

import (
	"github.com/loom-lang/loomc/internal/env"
	"github.com/loom-lang/loomc/internal/ir"
)

// AddAtomicMutex is the pipeline entry point. It first downgrades atomic
// regions that provably need no lock, then backs every surviving mutex name
// with exactly one mutex array and wraps each protected region in
// per-element lock/unlock calls.
//
// The returned tree preserves every mutex name it does not clear; no name is
// invented or renamed. The only failure is a lock-requiring region under a
// producer with neither an allocation node nor declared outputs (or a
// producer missing from the environment entirely), which aborts lowering.
func AddAtomicMutex(s ir.Stmt, environment env.Map) (ir.Stmt, error) {
	s = downgradeAtomics(s)
	return insertMutexes(s, environment)
}
