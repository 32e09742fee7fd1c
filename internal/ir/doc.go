// Package ir defines the statement-level intermediate representation that
// Loom's lowering passes operate on.
//
// The IR is an immutable tree of nodes that may share subexpressions (a DAG):
// earlier lowering steps freely alias subtrees, so every node type here is
// pointer-shaped and all traversal helpers memoize by node identity. Two
// sealed interfaces partition the node set:
//
//   - Expr: values (immediates, variables, loads, arithmetic, calls, lets)
//   - Stmt: effects (stores, blocks, loops, allocations, atomic regions)
//
// The marker-method pattern seals both interfaces to this package and keeps
// type switches in the passes exhaustive.
package ir
