package lower

import (
	"github.com/loom-lang/loomc/internal/env"
	"github.com/loom-lang/loomc/internal/ir"
)

// Runtime primitives for mutex arrays. All four are external calls; the
// runtime guarantees that destroying an array force-releases any locks still
// held by a thread that terminated abruptly inside a region.
const (
	MutexArrayCreateFn  = "loom_mutex_array_create"
	MutexArrayDestroyFn = "loom_mutex_array_destroy"
	MutexArrayLockFn    = "loom_mutex_array_lock"
	MutexArrayUnlockFn  = "loom_mutex_array_unlock"
)

// insertMutexes backs every atomic region that still names a mutex with a
// mutex array allocated at an enclosing scope, and wraps the region's body
// in indexed lock/unlock calls.
func insertMutexes(s ir.Stmt, environment env.Map) (ir.Stmt, error) {
	m := &mutexInserter{env: environment, allocated: make(map[string]struct{})}
	out := m.mutateStmt(s)
	if m.err != nil {
		return nil, m.err
	}
	return out, nil
}

type mutexInserter struct {
	env env.Map

	// allocated is the set of mutex names already backed by an array.
	// Tuple outputs share one mutex name across several buffers and
	// allocation sites; the first site wins.
	allocated map[string]struct{}

	err error
}

// allocateMutexArray wraps body in a scoped declaration of a mutex array
// with count elements: created on entry via an external call, bound to
// mutexName for the duration of body, and destroyed on every exit path from
// the scope, normal or abrupt.
func (m *mutexInserter) allocateMutexArray(mutexName string, count ir.Expr, body ir.Stmt) ir.Stmt {
	create := &ir.Call{
		Name: MutexArrayCreateFn,
		Args: []ir.Expr{count},
		Kind: ir.CallExtern,
		Type: ir.Handle,
	}
	return &ir.Allocate{
		Name:        mutexName,
		Type:        ir.Handle,
		Memory:      ir.MemStack,
		Condition:   ir.ConstTrue(),
		Body:        body,
		New:         create,
		FreeRoutine: MutexArrayDestroyFn,
	}
}

func (m *mutexInserter) mutateStmt(s ir.Stmt) ir.Stmt {
	if m.err != nil {
		return s
	}
	switch op := s.(type) {
	case *ir.Allocate:
		return m.mutateAllocate(op)
	case *ir.ProducerConsumer:
		return m.mutateProducerConsumer(op)
	case *ir.Atomic:
		return m.mutateAtomic(op)
	default:
		return ir.MutateChildren(s, m.mutateExpr, m.mutateStmt)
	}
}

func (m *mutexInserter) mutateExpr(e ir.Expr) ir.Expr {
	return ir.MutateExprChildren(e, m.mutateExpr)
}

// mutateAllocate anchors a mutex array at a buffer allocation when the
// allocation's body contains a lock-requiring atomic store to that buffer.
func (m *mutexInserter) mutateAllocate(op *ir.Allocate) ir.Stmt {
	ps := findProtectedStore(op.Body, map[string]struct{}{op.Name: {}})
	if !ps.found {
		// No atomic region in here needs a mutex for this buffer.
		return ir.MutateChildren(op, m.mutateExpr, m.mutateStmt)
	}
	if _, done := m.allocated[ps.mutexName]; done {
		// Another site already allocated this mutex.
		return ir.MutateChildren(op, m.mutateExpr, m.mutateStmt)
	}
	m.allocated[ps.mutexName] = struct{}{}

	body := m.mutateStmt(op.Body)

	// One lock per buffer element: size the array to the product of the
	// declared extents. No extents means a scalar buffer, count 1.
	count := ir.Expr(ir.ConstInt(1))
	for _, e := range op.Extents {
		count = &ir.Mul{A: count, B: e}
	}
	body = m.allocateMutexArray(ps.mutexName, count, body)

	return &ir.Allocate{
		Name:        op.Name,
		Type:        op.Type,
		Memory:      op.Memory,
		Extents:     op.Extents,
		Condition:   op.Condition,
		Body:        body,
		New:         op.New,
		FreeRoutine: op.FreeRoutine,
	}
}

// mutateProducerConsumer anchors mutex arrays for output functions, which
// have no Allocate node of their own.
func (m *mutexInserter) mutateProducerConsumer(op *ir.ProducerConsumer) ir.Stmt {
	if !op.IsProducer {
		return ir.MutateChildren(op, m.mutateExpr, m.mutateStmt)
	}

	fn, ok := m.env[op.Name]
	if !ok {
		m.err = &PassError{
			Code:     ErrCodeUnknownProducer,
			Producer: op.Name,
			Message:  "producer is not in the function environment",
		}
		return op
	}
	if len(fn.Outputs) == 0 {
		m.err = &PassError{
			Code:     ErrCodeProducerNoOutputs,
			Producer: op.Name,
			Message: "found a producer node that contains an atomic node that requires a mutex lock, " +
				"but has no allocation node and is not an output function; this is not supported",
		}
		return op
	}

	targets := make(map[string]struct{}, len(fn.Outputs))
	for _, out := range fn.Outputs {
		targets[out.Name] = struct{}{}
	}

	ps := findProtectedStore(op.Body, targets)
	if !ps.found {
		return ir.MutateChildren(op, m.mutateExpr, m.mutateStmt)
	}
	if _, done := m.allocated[ps.mutexName]; done {
		return ir.MutateChildren(op, m.mutateExpr, m.mutateStmt)
	}
	m.allocated[ps.mutexName] = struct{}{}

	// All tuple elements of one function share the same extents, so the
	// first output buffer sizes the array for the whole group.
	out := fn.Outputs[0]
	count := ir.Expr(ir.ConstInt(1))
	for _, e := range out.Extents {
		count = &ir.Mul{A: count, B: e}
	}

	body := m.mutateStmt(op.Body)
	body = m.allocateMutexArray(ps.mutexName, count, body)
	return &ir.ProducerConsumer{Name: op.Name, IsProducer: true, Body: body}
}

// mutateAtomic wraps a lock-requiring region's body in lock and unlock calls
// indexed by the element being updated.
func (m *mutexInserter) mutateAtomic(op *ir.Atomic) ir.Stmt {
	if op.MutexName == "" {
		return ir.MutateChildren(op, m.mutateExpr, m.mutateStmt)
	}

	index := firstStoreIndex(op.Body)
	if index == nil {
		// Scalar reduction with no store: a single lock at index 0.
		index = ir.ConstInt(0)
	}

	body := m.mutateStmt(op.Body)

	mutexArray := &ir.Variable{Name: op.MutexName, Type: ir.Handle}
	lock := &ir.Evaluate{Value: &ir.Call{
		Name: MutexArrayLockFn,
		Args: []ir.Expr{mutexArray, index},
		Kind: ir.CallExtern,
		Type: ir.Int32,
	}}
	unlock := &ir.Evaluate{Value: &ir.Call{
		Name: MutexArrayUnlockFn,
		Args: []ir.Expr{mutexArray, index},
		Kind: ir.CallExtern,
		Type: ir.Int32,
	}}

	// Lock strictly before the body, unlock strictly after it on the
	// normal path. If the body unwinds while holding the lock, the mutex
	// array's destruction at its owning scope releases it.
	body = &ir.Block{
		First: lock,
		Rest:  &ir.Block{First: body, Rest: unlock},
	}
	return &ir.Atomic{ProducerName: op.ProducerName, MutexName: op.MutexName, Body: body}
}
