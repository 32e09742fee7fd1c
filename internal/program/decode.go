// Package program decodes YAML program descriptions into IR statement
// trees. The CLI reads programs in this form, and tests use it for fixtures.
//
// Every node is a map with a "node" key naming its kind plus the kind's
// fields. Expression positions accept two shorthands: a bare integer decodes
// to an int32 immediate and a bare string to a variable reference.
package program

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/loom-lang/loomc/internal/ir"
)

// Decode parses a YAML program into an IR statement tree.
func Decode(data []byte) (ir.Stmt, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse program: %w", err)
	}
	return decodeStmt(raw, "$")
}

func decodeStmt(v any, path string) (ir.Stmt, error) {
	m, kind, err := nodeKind(v, path)
	if err != nil {
		return nil, err
	}

	switch kind {
	case "block":
		items, err := getList(m, "stmts", path)
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			return nil, fmt.Errorf("%s: block needs at least one statement", path)
		}
		stmts := make([]ir.Stmt, len(items))
		for i, item := range items {
			stmts[i], err = decodeStmt(item, fmt.Sprintf("%s.stmts[%d]", path, i))
			if err != nil {
				return nil, err
			}
		}
		return ir.Seq(stmts...), nil

	case "let":
		name, err := getString(m, "name", path)
		if err != nil {
			return nil, err
		}
		value, err := decodeExpr(m["value"], path+".value")
		if err != nil {
			return nil, err
		}
		body, err := decodeStmt(m["body"], path+".body")
		if err != nil {
			return nil, err
		}
		return &ir.LetStmt{Name: name, Value: value, Body: body}, nil

	case "store":
		name, err := getString(m, "name", path)
		if err != nil {
			return nil, err
		}
		value, err := decodeExpr(m["value"], path+".value")
		if err != nil {
			return nil, err
		}
		index, err := decodeExpr(m["index"], path+".index")
		if err != nil {
			return nil, err
		}
		predicate, err := decodeOptionalExpr(m, "predicate", path)
		if err != nil {
			return nil, err
		}
		return &ir.Store{Name: name, Value: value, Index: index, Predicate: predicate}, nil

	case "atomic":
		producer, err := getString(m, "producer", path)
		if err != nil {
			return nil, err
		}
		mutex, _ := m["mutex"].(string) // optional; "" means no lock required
		body, err := decodeStmt(m["body"], path+".body")
		if err != nil {
			return nil, err
		}
		return &ir.Atomic{ProducerName: producer, MutexName: mutex, Body: body}, nil

	case "allocate":
		name, err := getString(m, "name", path)
		if err != nil {
			return nil, err
		}
		elem, err := getString(m, "elem", path)
		if err != nil {
			return nil, err
		}
		typ, err := parseType(elem, path+".elem")
		if err != nil {
			return nil, err
		}
		memory := ir.MemAuto
		if s, ok := m["memory"].(string); ok {
			memory, err = parseMemory(s, path+".memory")
			if err != nil {
				return nil, err
			}
		}
		var extents []ir.Expr
		if _, ok := m["extents"]; ok {
			items, err := getList(m, "extents", path)
			if err != nil {
				return nil, err
			}
			extents = make([]ir.Expr, len(items))
			for i, item := range items {
				extents[i], err = decodeExpr(item, fmt.Sprintf("%s.extents[%d]", path, i))
				if err != nil {
					return nil, err
				}
			}
		}
		condition, err := decodeOptionalExpr(m, "condition", path)
		if err != nil {
			return nil, err
		}
		body, err := decodeStmt(m["body"], path+".body")
		if err != nil {
			return nil, err
		}
		return &ir.Allocate{
			Name:      name,
			Type:      typ,
			Memory:    memory,
			Extents:   extents,
			Condition: condition,
			Body:      body,
		}, nil

	case "produce", "consume":
		name, err := getString(m, "name", path)
		if err != nil {
			return nil, err
		}
		body, err := decodeStmt(m["body"], path+".body")
		if err != nil {
			return nil, err
		}
		return &ir.ProducerConsumer{Name: name, IsProducer: kind == "produce", Body: body}, nil

	case "evaluate":
		value, err := decodeExpr(m["value"], path+".value")
		if err != nil {
			return nil, err
		}
		return &ir.Evaluate{Value: value}, nil

	case "for":
		name, err := getString(m, "name", path)
		if err != nil {
			return nil, err
		}
		min, err := decodeExpr(m["min"], path+".min")
		if err != nil {
			return nil, err
		}
		extent, err := decodeExpr(m["extent"], path+".extent")
		if err != nil {
			return nil, err
		}
		parallel, _ := m["parallel"].(bool)
		body, err := decodeStmt(m["body"], path+".body")
		if err != nil {
			return nil, err
		}
		return &ir.For{Name: name, Min: min, Extent: extent, Parallel: parallel, Body: body}, nil

	default:
		return nil, fmt.Errorf("%s: unknown statement kind %q", path, kind)
	}
}

func decodeExpr(v any, path string) (ir.Expr, error) {
	// Scalar shorthands.
	switch s := v.(type) {
	case int:
		return ir.ConstInt(int64(s)), nil
	case int64:
		return ir.ConstInt(s), nil
	case string:
		return &ir.Variable{Name: s, Type: ir.Int32}, nil
	}

	m, kind, err := nodeKind(v, path)
	if err != nil {
		return nil, err
	}

	switch kind {
	case "int":
		n, ok := asInt(m["value"])
		if !ok {
			return nil, fmt.Errorf("%s: int node needs an integer value", path)
		}
		return ir.ConstInt(n), nil

	case "var":
		name, err := getString(m, "name", path)
		if err != nil {
			return nil, err
		}
		return &ir.Variable{Name: name, Type: ir.Int32}, nil

	case "load":
		name, err := getString(m, "name", path)
		if err != nil {
			return nil, err
		}
		index, err := decodeExpr(m["index"], path+".index")
		if err != nil {
			return nil, err
		}
		predicate, err := decodeOptionalExpr(m, "predicate", path)
		if err != nil {
			return nil, err
		}
		return &ir.Load{Name: name, Index: index, Predicate: predicate, Type: ir.Int32}, nil

	case "add", "mul":
		a, err := decodeExpr(m["a"], path+".a")
		if err != nil {
			return nil, err
		}
		b, err := decodeExpr(m["b"], path+".b")
		if err != nil {
			return nil, err
		}
		if kind == "add" {
			return &ir.Add{A: a, B: b}, nil
		}
		return &ir.Mul{A: a, B: b}, nil

	case "let":
		name, err := getString(m, "name", path)
		if err != nil {
			return nil, err
		}
		value, err := decodeExpr(m["value"], path+".value")
		if err != nil {
			return nil, err
		}
		body, err := decodeExpr(m["body"], path+".body")
		if err != nil {
			return nil, err
		}
		return &ir.Let{Name: name, Value: value, Body: body}, nil

	case "call":
		name, err := getString(m, "name", path)
		if err != nil {
			return nil, err
		}
		var args []ir.Expr
		if _, ok := m["args"]; ok {
			items, err := getList(m, "args", path)
			if err != nil {
				return nil, err
			}
			args = make([]ir.Expr, len(items))
			for i, item := range items {
				args[i], err = decodeExpr(item, fmt.Sprintf("%s.args[%d]", path, i))
				if err != nil {
					return nil, err
				}
			}
		}
		return &ir.Call{Name: name, Args: args, Kind: ir.CallExtern, Type: ir.Int32}, nil

	default:
		return nil, fmt.Errorf("%s: unknown expression kind %q", path, kind)
	}
}

func decodeOptionalExpr(m map[string]any, key, path string) (ir.Expr, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, nil
	}
	return decodeExpr(v, path+"."+key)
}

func nodeKind(v any, path string) (map[string]any, string, error) {
	m, ok := toStringMap(v)
	if !ok {
		return nil, "", fmt.Errorf("%s: expected a node map, got %T", path, v)
	}
	kind, ok := m["node"].(string)
	if !ok {
		return nil, "", fmt.Errorf("%s: node kind is required", path)
	}
	return m, kind, nil
}

func toStringMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			s, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[s] = val
		}
		return out, true
	default:
		return nil, false
	}
}

func getString(m map[string]any, key, path string) (string, error) {
	s, ok := m[key].(string)
	if !ok || s == "" {
		return "", fmt.Errorf("%s: %q is required", path, key)
	}
	return s, nil
}

func getList(m map[string]any, key, path string) ([]any, error) {
	items, ok := m[key].([]any)
	if !ok {
		return nil, fmt.Errorf("%s: %q must be a list", path, key)
	}
	return items, nil
}

func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	default:
		return 0, false
	}
}

func parseType(s, path string) (ir.Type, error) {
	switch s {
	case "int32":
		return ir.Int32, nil
	case "int64":
		return ir.Int64, nil
	case "float32":
		return ir.Float32, nil
	case "bool":
		return ir.Bool, nil
	case "handle":
		return ir.Handle, nil
	default:
		return ir.Type{}, fmt.Errorf("%s: unknown element type %q", path, s)
	}
}

func parseMemory(s, path string) (ir.MemoryKind, error) {
	switch s {
	case "auto":
		return ir.MemAuto, nil
	case "heap":
		return ir.MemHeap, nil
	case "stack":
		return ir.MemStack, nil
	default:
		return 0, fmt.Errorf("%s: unknown memory kind %q", path, s)
	}
}
