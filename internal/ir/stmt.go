package ir

// Stmt is an effectful node.
//
// This is a sealed interface - only types in this package implement it.
type Stmt interface {
	Node
	stmtNode()
}

// LetStmt binds Name to Value within a statement body.
type LetStmt struct {
	Name  string
	Value Expr
	Body  Stmt
}

// Store writes Value to Index of the named buffer when Predicate holds.
type Store struct {
	Name      string
	Value     Expr
	Index     Expr
	Predicate Expr // nil means unconditional
}

// Atomic marks Body as an indivisible update to shared state.
//
// MutexName names the mutex array protecting the update; the empty string
// means no lock is required and the region compiles to a bare hardware
// atomic. The downgrade analyzer may clear MutexName but never invents or
// renames one.
type Atomic struct {
	ProducerName string
	MutexName    string
	Body         Stmt
}

// Allocate declares a named buffer live for the duration of Body.
//
// New, when non-nil, is evaluated to produce the allocation instead of the
// default allocator, and FreeRoutine names the routine invoked on every exit
// from the scope, normal or abrupt. The mutex synthesizer uses this pair to
// tie mutex-array creation and teardown to the owning scope.
type Allocate struct {
	Name        string
	Type        Type
	Memory      MemoryKind
	Extents     []Expr
	Condition   Expr
	Body        Stmt
	New         Expr   // nil for default allocation
	FreeRoutine string // "" for default deallocation
}

// ProducerConsumer wraps the producing or consuming phase of a named
// computation. Outputs have no Allocate node, so producer markers double as
// the allocation scope for their mutex arrays.
type ProducerConsumer struct {
	Name       string
	IsProducer bool
	Body       Stmt
}

// Block sequences two statements.
type Block struct {
	First Stmt
	Rest  Stmt
}

// Evaluate executes an expression for its side effect.
type Evaluate struct {
	Value Expr
}

// For is a serial or parallel loop over [Min, Min+Extent).
type For struct {
	Name     string
	Min      Expr
	Extent   Expr
	Parallel bool
	Body     Stmt
}

func (*LetStmt) node()          {}
func (*Store) node()            {}
func (*Atomic) node()           {}
func (*Allocate) node()         {}
func (*ProducerConsumer) node() {}
func (*Block) node()            {}
func (*Evaluate) node()         {}
func (*For) node()              {}

func (*LetStmt) stmtNode()          {}
func (*Store) stmtNode()            {}
func (*Atomic) stmtNode()           {}
func (*Allocate) stmtNode()         {}
func (*ProducerConsumer) stmtNode() {}
func (*Block) stmtNode()            {}
func (*Evaluate) stmtNode()         {}
func (*For) stmtNode()              {}

// Seq folds a list of statements into nested Blocks. It returns nil for an
// empty list and the statement itself for a single-element list.
func Seq(stmts ...Stmt) Stmt {
	if len(stmts) == 0 {
		return nil
	}
	s := stmts[len(stmts)-1]
	for i := len(stmts) - 2; i >= 0; i-- {
		s = &Block{First: stmts[i], Rest: s}
	}
	return s
}
