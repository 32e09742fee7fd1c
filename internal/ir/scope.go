package ir

// Scope tracks the let bindings active at a point during a traversal.
//
// Push and Pop follow stack discipline: a traversal pushes a binding on
// entering a let body and pops it on the way out. The innermost binding for
// a name shadows outer ones; Pop removes only the innermost.
type Scope[V any] struct {
	table map[string][]V
}

// NewScope returns an empty scope.
func NewScope[V any]() *Scope[V] {
	return &Scope[V]{table: make(map[string][]V)}
}

// Push binds name to v, shadowing any existing binding.
func (s *Scope[V]) Push(name string, v V) {
	s.table[name] = append(s.table[name], v)
}

// Pop removes the innermost binding for name. Popping a name that is not
// bound indicates a traversal bug and panics.
func (s *Scope[V]) Pop(name string) {
	stack := s.table[name]
	if len(stack) == 0 {
		panic("ir.Scope: pop of unbound name " + name)
	}
	if len(stack) == 1 {
		delete(s.table, name)
		return
	}
	s.table[name] = stack[:len(stack)-1]
}

// Contains reports whether name is currently bound.
func (s *Scope[V]) Contains(name string) bool {
	return len(s.table[name]) > 0
}

// Get returns the innermost binding for name.
func (s *Scope[V]) Get(name string) (V, bool) {
	stack := s.table[name]
	if len(stack) == 0 {
		var zero V
		return zero, false
	}
	return stack[len(stack)-1], true
}
