package ir

import "fmt"

// TypeCode distinguishes the scalar type families the IR can carry.
type TypeCode uint8

const (
	// TypeInt is a signed integer.
	TypeInt TypeCode = iota

	// TypeUInt is an unsigned integer.
	TypeUInt

	// TypeFloat is an IEEE float.
	TypeFloat

	// TypeHandle is an opaque runtime pointer (mutex arrays, buffers).
	TypeHandle
)

// Type is a scalar element type: a type family plus a bit width.
type Type struct {
	Code TypeCode
	Bits int
}

// Common types used by the lowering passes.
var (
	Int32   = Type{Code: TypeInt, Bits: 32}
	Int64   = Type{Code: TypeInt, Bits: 64}
	Float32 = Type{Code: TypeFloat, Bits: 32}
	Bool    = Type{Code: TypeUInt, Bits: 1}
	Handle  = Type{Code: TypeHandle, Bits: 64}
)

// String renders the type in the printer's notation, e.g. "int32", "handle".
func (t Type) String() string {
	switch t.Code {
	case TypeInt:
		return fmt.Sprintf("int%d", t.Bits)
	case TypeUInt:
		if t.Bits == 1 {
			return "bool"
		}
		return fmt.Sprintf("uint%d", t.Bits)
	case TypeFloat:
		return fmt.Sprintf("float%d", t.Bits)
	case TypeHandle:
		return "handle"
	default:
		return fmt.Sprintf("type(%d,%d)", t.Code, t.Bits)
	}
}

// MemoryKind says where an allocation lives.
type MemoryKind uint8

const (
	// MemAuto lets the backend pick a location.
	MemAuto MemoryKind = iota

	// MemHeap forces a heap allocation.
	MemHeap

	// MemStack forces a stack allocation.
	MemStack
)

// String renders the memory kind in the printer's notation.
func (m MemoryKind) String() string {
	switch m {
	case MemAuto:
		return "auto"
	case MemHeap:
		return "heap"
	case MemStack:
		return "stack"
	default:
		return fmt.Sprintf("memory(%d)", m)
	}
}

// CallKind distinguishes how a Call is resolved.
type CallKind uint8

const (
	// CallExtern is a call to a runtime or user routine by symbol name.
	CallExtern CallKind = iota

	// CallIntrinsic is a compiler-internal operation.
	CallIntrinsic
)
