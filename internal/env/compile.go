package env

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/token"

	"github.com/loom-lang/loomc/internal/ir"
)

// CompileError reports a malformed function declaration.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// CompileFunc parses a CUE function declaration into a Func.
// Uses CUE SDK's Go API directly (not CLI subprocess).
//
// The CUE value should be the function struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`function: hist: { outputs: [{name: "hist", extents: [64]}] }`)
//	f, err := CompileFunc(v.LookupPath(cue.ParsePath("function.hist")))
//
// Extent entries may be integers or strings; a string names a variable bound
// elsewhere in the program (loop sizes resolved at runtime).
func CompileFunc(v cue.Value) (*Func, error) {
	if err := v.Err(); err != nil {
		return nil, &CompileError{Field: "function", Message: err.Error(), Pos: v.Pos()}
	}

	f := &Func{}

	// Function name comes from the struct label (the path selector).
	labels := v.Path().Selectors()
	if len(labels) > 0 {
		f.Name = labels[len(labels)-1].String()
	}

	// Outputs are optional: a function with none simply cannot anchor a
	// mutex array, which the lowering pass reports if it ever needs to.
	outputsVal := v.LookupPath(cue.ParsePath("outputs"))
	if !outputsVal.Exists() {
		return f, nil
	}

	iter, err := outputsVal.List()
	if err != nil {
		return nil, &CompileError{Field: "outputs", Message: "outputs must be a list", Pos: outputsVal.Pos()}
	}
	for iter.Next() {
		out, err := compileOutput(iter.Value())
		if err != nil {
			return nil, err
		}
		f.Outputs = append(f.Outputs, *out)
	}

	return f, nil
}

func compileOutput(v cue.Value) (*OutputBuffer, error) {
	nameVal := v.LookupPath(cue.ParsePath("name"))
	if !nameVal.Exists() {
		return nil, &CompileError{Field: "outputs.name", Message: "output buffer name is required", Pos: v.Pos()}
	}
	name, err := nameVal.String()
	if err != nil {
		return nil, &CompileError{Field: "outputs.name", Message: err.Error(), Pos: nameVal.Pos()}
	}

	out := &OutputBuffer{Name: name}

	extentsVal := v.LookupPath(cue.ParsePath("extents"))
	if !extentsVal.Exists() {
		return out, nil
	}
	iter, err := extentsVal.List()
	if err != nil {
		return nil, &CompileError{Field: "outputs.extents", Message: "extents must be a list", Pos: extentsVal.Pos()}
	}
	for iter.Next() {
		extent, err := compileExtent(iter.Value())
		if err != nil {
			return nil, err
		}
		out.Extents = append(out.Extents, extent)
	}

	return out, nil
}

func compileExtent(v cue.Value) (ir.Expr, error) {
	switch v.Kind() {
	case cue.IntKind:
		n, err := v.Int64()
		if err != nil {
			return nil, &CompileError{Field: "outputs.extents", Message: err.Error(), Pos: v.Pos()}
		}
		return ir.ConstInt(n), nil
	case cue.StringKind:
		name, err := v.String()
		if err != nil {
			return nil, &CompileError{Field: "outputs.extents", Message: err.Error(), Pos: v.Pos()}
		}
		return &ir.Variable{Name: name, Type: ir.Int32}, nil
	default:
		return nil, &CompileError{
			Field:   "outputs.extents",
			Message: fmt.Sprintf("extent must be an int or a variable name, got %s", v.Kind()),
			Pos:     v.Pos(),
		}
	}
}
