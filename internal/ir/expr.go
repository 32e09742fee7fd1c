package ir

// Node is implemented by every IR node.
type Node interface {
	node()
}

// Expr is a value-producing node.
//
// This is a sealed interface - only types in this package implement it.
type Expr interface {
	Node
	exprNode()
}

// IntImm is an integer immediate.
type IntImm struct {
	Value int64
	Type  Type
}

// Variable references a value bound elsewhere: a let binding, a loop
// variable, or a runtime handle such as a mutex array.
type Variable struct {
	Name string
	Type Type
}

// Load reads one element of a named buffer.
type Load struct {
	Name      string
	Index     Expr
	Predicate Expr // nil means unconditional
	Type      Type
}

// Add is integer or float addition.
type Add struct {
	A, B Expr
}

// Mul is integer or float multiplication.
type Mul struct {
	A, B Expr
}

// Let binds Name to Value within Body. Bindings nest and shadow.
type Let struct {
	Name  string
	Value Expr
	Body  Expr
}

// Call invokes a named routine with an argument list.
type Call struct {
	Name string
	Args []Expr
	Kind CallKind
	Type Type
}

func (*IntImm) node()   {}
func (*Variable) node() {}
func (*Load) node()     {}
func (*Add) node()      {}
func (*Mul) node()      {}
func (*Let) node()      {}
func (*Call) node()     {}

func (*IntImm) exprNode()   {}
func (*Variable) exprNode() {}
func (*Load) exprNode()     {}
func (*Add) exprNode()      {}
func (*Mul) exprNode()      {}
func (*Let) exprNode()      {}
func (*Call) exprNode()     {}

// ConstInt returns an int32 immediate.
func ConstInt(v int64) *IntImm {
	return &IntImm{Value: v, Type: Int32}
}

// ConstTrue returns the boolean immediate used for unconditional
// allocations and stores.
func ConstTrue() *IntImm {
	return &IntImm{Value: 1, Type: Bool}
}
