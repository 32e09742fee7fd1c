// Package env models the compiler's function environment: the read-only
// name→function mapping that lowering passes query. The atomic-mutex pass
// consults it only at producer/consumer nodes, to find the output buffers of
// functions that have no explicit allocation.
package env

import "github.com/loom-lang/loomc/internal/ir"

// Func describes one function visible to the lowering passes.
type Func struct {
	Name string

	// Outputs lists the function's declared output buffers, one per tuple
	// element. Tuple elements are assumed to share identical extents; the
	// mutex synthesizer sizes mutex arrays from the first element only.
	Outputs []OutputBuffer
}

// OutputBuffer is one declared output of a function.
type OutputBuffer struct {
	Name string

	// Extents holds one expression per dimension. Empty means scalar.
	Extents []ir.Expr
}

// Map is the function environment threaded through lowering. Passes treat
// it as read-only.
type Map map[string]Func
