package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrint_Store(t *testing.T) {
	s := &Store{
		Name:  "hist",
		Value: &Add{A: &Variable{Name: "t", Type: Int32}, B: ConstInt(1)},
		Index: &Variable{Name: "x", Type: Int32},
	}
	assert.Equal(t, "hist[x] = (t + 1)\n", Print(s))
}

func TestPrint_StoreWithPredicate(t *testing.T) {
	s := &Store{
		Name:      "hist",
		Value:     ConstInt(0),
		Index:     ConstInt(3),
		Predicate: &Variable{Name: "p", Type: Bool},
	}
	assert.Equal(t, "hist[3] = 0 if p\n", Print(s))
}

func TestPrint_AtomicWithAndWithoutMutex(t *testing.T) {
	body := &Store{Name: "b", Value: ConstInt(1), Index: ConstInt(0)}

	withMutex := &Atomic{ProducerName: "f", MutexName: "m", Body: body}
	assert.Equal(t, "atomic (m) {\n  b[0] = 1\n}\n", Print(withMutex))

	without := &Atomic{ProducerName: "f", Body: body}
	assert.Equal(t, "atomic {\n  b[0] = 1\n}\n", Print(without))
}

func TestPrint_AllocateWithInitializerAndFreeRoutine(t *testing.T) {
	a := &Allocate{
		Name:      "m",
		Type:      Handle,
		Memory:    MemStack,
		Condition: ConstTrue(),
		New: &Call{
			Name: "loom_mutex_array_create",
			Args: []Expr{ConstInt(64)},
			Kind: CallExtern,
			Type: Handle,
		},
		FreeRoutine: "loom_mutex_array_destroy",
		Body:        &Evaluate{Value: ConstInt(0)},
	}
	want := "allocate m[handle] in stack = loom_mutex_array_create(64) free loom_mutex_array_destroy {\n" +
		"  0\n" +
		"}\n"
	assert.Equal(t, want, Print(a))
}

func TestPrint_BlocksFlatten(t *testing.T) {
	s := Seq(
		&Evaluate{Value: ConstInt(1)},
		&Evaluate{Value: ConstInt(2)},
		&Evaluate{Value: ConstInt(3)},
	)
	assert.Equal(t, "1\n2\n3\n", Print(s))
}

func TestPrint_ParallelFor(t *testing.T) {
	f := &For{
		Name:     "x",
		Min:      ConstInt(0),
		Extent:   ConstInt(8),
		Parallel: true,
		Body:     &Evaluate{Value: &Variable{Name: "x", Type: Int32}},
	}
	assert.Equal(t, "parallel for x in [0, 8) {\n  x\n}\n", Print(f))
}

func TestPrint_LetStmtAndExprLet(t *testing.T) {
	s := &LetStmt{
		Name:  "t",
		Value: &Load{Name: "hist", Index: &Variable{Name: "x", Type: Int32}, Type: Int32},
		Body:  &Evaluate{Value: &Let{Name: "u", Value: ConstInt(2), Body: &Variable{Name: "u", Type: Int32}}},
	}
	assert.Equal(t, "let t = hist[x]\n(let u = 2 in u)\n", Print(s))
}

func TestHash_StableAndDistinct(t *testing.T) {
	a := &Store{Name: "a", Value: ConstInt(1), Index: ConstInt(0)}
	b := &Store{Name: "b", Value: ConstInt(1), Index: ConstInt(0)}
	aAgain := &Store{Name: "a", Value: ConstInt(1), Index: ConstInt(0)}

	assert.Equal(t, Hash(a), Hash(aAgain))
	assert.NotEqual(t, Hash(a), Hash(b))
	assert.Len(t, Hash(a), 64)
}
