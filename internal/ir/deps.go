package ir

// UsesVars reports whether e references any name in names, either directly
// through a variable or a buffer load, or transitively through the supplied
// scope of active let bindings: a variable bound by an enclosing let is
// chased into that let's value.
//
// Lets nested inside e itself are pushed onto lets for the duration of their
// body, so the test stays sound when the expression carries its own
// bindings. lets is restored to its initial state before returning.
func UsesVars(e Expr, names map[string]struct{}, lets *Scope[Expr]) bool {
	u := &varUse{names: names, lets: lets, seen: make(Visited)}
	u.include(e)
	return u.found
}

type varUse struct {
	names map[string]struct{}
	lets  *Scope[Expr]
	seen  Visited
	found bool
}

func (u *varUse) include(n Node) {
	if n == nil || u.found || u.seen.Seen(n) {
		return
	}
	switch op := n.(type) {
	case *Variable:
		u.name(op.Name)
	case *Load:
		u.name(op.Name)
		EachChild(op, u.include)
	case *Let:
		u.include(op.Value)
		u.lets.Push(op.Name, op.Value)
		u.include(op.Body)
		u.lets.Pop(op.Name)
	default:
		EachChild(n, u.include)
	}
}

func (u *varUse) name(name string) {
	if _, ok := u.names[name]; ok {
		u.found = true
		return
	}
	if value, ok := u.lets.Get(name); ok {
		u.include(value)
	}
}
