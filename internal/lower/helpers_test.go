package lower

import (
	"github.com/loom-lang/loomc/internal/env"
	"github.com/loom-lang/loomc/internal/ir"
)

// Tree-building shorthands shared by the pass tests.

func c(n int64) *ir.IntImm { return ir.ConstInt(n) }

func v(name string) *ir.Variable {
	return &ir.Variable{Name: name, Type: ir.Int32}
}

func load(name string, index ir.Expr) *ir.Load {
	return &ir.Load{Name: name, Index: index, Type: ir.Int32}
}

func add(a, b ir.Expr) *ir.Add { return &ir.Add{A: a, B: b} }

func storeTo(name string, value, index ir.Expr) *ir.Store {
	return &ir.Store{Name: name, Value: value, Index: index}
}

func outputFunc(name string, extents []ir.Expr, buffers ...string) env.Func {
	f := env.Func{Name: name}
	for _, b := range buffers {
		f.Outputs = append(f.Outputs, env.OutputBuffer{Name: b, Extents: extents})
	}
	return f
}
