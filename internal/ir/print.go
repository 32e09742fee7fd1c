package ir

import (
	"fmt"
	"strings"
)

// Print renders a node in the IR's canonical textual form.
//
// The rendering is deterministic: the same tree always prints to the same
// bytes. Golden tests, the CLI and content hashing all consume this one
// form, so any change here invalidates recorded golden files and cached
// lowering results.
func Print(n Node) string {
	var p printer
	switch v := n.(type) {
	case Stmt:
		p.stmt(v, 0)
	case Expr:
		p.buf.WriteString(p.expr(v))
		p.buf.WriteByte('\n')
	}
	return p.buf.String()
}

type printer struct {
	buf strings.Builder
}

func (p *printer) line(indent int, s string) {
	for i := 0; i < indent; i++ {
		p.buf.WriteString("  ")
	}
	p.buf.WriteString(s)
	p.buf.WriteByte('\n')
}

func (p *printer) stmt(s Stmt, indent int) {
	switch op := s.(type) {
	case *LetStmt:
		p.line(indent, fmt.Sprintf("let %s = %s", op.Name, p.expr(op.Value)))
		p.stmt(op.Body, indent)
	case *Store:
		text := fmt.Sprintf("%s[%s] = %s", op.Name, p.expr(op.Index), p.expr(op.Value))
		if op.Predicate != nil {
			text += " if " + p.expr(op.Predicate)
		}
		p.line(indent, text)
	case *Atomic:
		if op.MutexName == "" {
			p.line(indent, "atomic {")
		} else {
			p.line(indent, fmt.Sprintf("atomic (%s) {", op.MutexName))
		}
		p.stmt(op.Body, indent+1)
		p.line(indent, "}")
	case *Allocate:
		var b strings.Builder
		fmt.Fprintf(&b, "allocate %s[%s", op.Name, op.Type)
		for _, e := range op.Extents {
			fmt.Fprintf(&b, " * %s", p.expr(e))
		}
		fmt.Fprintf(&b, "] in %s", op.Memory)
		if op.Condition != nil {
			if imm, ok := op.Condition.(*IntImm); !ok || imm.Value != 1 || imm.Type != Bool {
				fmt.Fprintf(&b, " if %s", p.expr(op.Condition))
			}
		}
		if op.New != nil {
			fmt.Fprintf(&b, " = %s", p.expr(op.New))
		}
		if op.FreeRoutine != "" {
			fmt.Fprintf(&b, " free %s", op.FreeRoutine)
		}
		b.WriteString(" {")
		p.line(indent, b.String())
		p.stmt(op.Body, indent+1)
		p.line(indent, "}")
	case *ProducerConsumer:
		if op.IsProducer {
			p.line(indent, fmt.Sprintf("produce %s {", op.Name))
		} else {
			p.line(indent, fmt.Sprintf("consume %s {", op.Name))
		}
		p.stmt(op.Body, indent+1)
		p.line(indent, "}")
	case *Block:
		p.stmt(op.First, indent)
		p.stmt(op.Rest, indent)
	case *Evaluate:
		p.line(indent, p.expr(op.Value))
	case *For:
		kw := "for"
		if op.Parallel {
			kw = "parallel for"
		}
		p.line(indent, fmt.Sprintf("%s %s in [%s, %s) {", kw, op.Name, p.expr(op.Min), p.expr(op.Extent)))
		p.stmt(op.Body, indent+1)
		p.line(indent, "}")
	case nil:
		// empty body
	}
}

func (p *printer) expr(e Expr) string {
	switch op := e.(type) {
	case *IntImm:
		return fmt.Sprintf("%d", op.Value)
	case *Variable:
		return op.Name
	case *Load:
		text := fmt.Sprintf("%s[%s]", op.Name, p.expr(op.Index))
		if op.Predicate != nil {
			text += " if " + p.expr(op.Predicate)
		}
		return text
	case *Add:
		return fmt.Sprintf("(%s + %s)", p.expr(op.A), p.expr(op.B))
	case *Mul:
		return fmt.Sprintf("(%s * %s)", p.expr(op.A), p.expr(op.B))
	case *Let:
		return fmt.Sprintf("(let %s = %s in %s)", op.Name, p.expr(op.Value), p.expr(op.Body))
	case *Call:
		args := make([]string, len(op.Args))
		for i, a := range op.Args {
			args[i] = p.expr(a)
		}
		return fmt.Sprintf("%s(%s)", op.Name, strings.Join(args, ", "))
	case nil:
		return ""
	default:
		return fmt.Sprintf("<%T>", e)
	}
}
