package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalk_VisitsEveryNode(t *testing.T) {
	store := &Store{
		Name:  "buf",
		Value: &Add{A: &Variable{Name: "t", Type: Int32}, B: ConstInt(1)},
		Index: &Variable{Name: "x", Type: Int32},
	}

	var kinds []string
	Walk(store, func(n Node) bool {
		switch n.(type) {
		case *Store:
			kinds = append(kinds, "store")
		case *Add:
			kinds = append(kinds, "add")
		case *Variable:
			kinds = append(kinds, "var")
		case *IntImm:
			kinds = append(kinds, "int")
		}
		return true
	})

	assert.Equal(t, []string{"store", "add", "var", "int", "var"}, kinds)
}

func TestWalk_SharedSubexpressionVisitedOnce(t *testing.T) {
	// The same index expression object hangs off two stores: a DAG, not a
	// tree. A naive walk would visit it twice.
	shared := &Add{A: &Variable{Name: "x", Type: Int32}, B: ConstInt(1)}
	block := &Block{
		First: &Store{Name: "a", Value: ConstInt(0), Index: shared},
		Rest:  &Store{Name: "b", Value: ConstInt(0), Index: shared},
	}

	visits := 0
	Walk(block, func(n Node) bool {
		if n == Node(shared) {
			visits++
		}
		return true
	})
	assert.Equal(t, 1, visits)
}

func TestWalk_PruneSkipsChildren(t *testing.T) {
	atomic := &Atomic{
		ProducerName: "f",
		Body:         &Store{Name: "buf", Value: ConstInt(1), Index: ConstInt(0)},
	}

	sawStore := false
	Walk(atomic, func(n Node) bool {
		if _, ok := n.(*Store); ok {
			sawStore = true
		}
		_, isAtomic := n.(*Atomic)
		return !isAtomic
	})
	assert.False(t, sawStore)
}

func TestWalk_NilChildrenSkipped(t *testing.T) {
	// Store with nil predicate, allocate with nil condition and new.
	alloc := &Allocate{
		Name: "buf",
		Type: Int32,
		Body: &Store{Name: "buf", Value: ConstInt(1), Index: ConstInt(0)},
	}

	require.NotPanics(t, func() {
		Walk(alloc, func(n Node) bool { return true })
	})
}

func TestSeq(t *testing.T) {
	a := &Evaluate{Value: ConstInt(1)}
	b := &Evaluate{Value: ConstInt(2)}
	c := &Evaluate{Value: ConstInt(3)}

	assert.Nil(t, Seq())
	assert.Equal(t, Stmt(a), Seq(a))

	s := Seq(a, b, c)
	block, ok := s.(*Block)
	require.True(t, ok)
	assert.Equal(t, Stmt(a), block.First)
	inner, ok := block.Rest.(*Block)
	require.True(t, ok)
	assert.Equal(t, Stmt(b), inner.First)
	assert.Equal(t, Stmt(c), inner.Rest)
}
