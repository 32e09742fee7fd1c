package env

import (
	"errors"
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loom-lang/loomc/internal/ir"
)

func compileAt(t *testing.T, src, path string) cue.Value {
	t.Helper()
	ctx := cuecontext.New()
	v := ctx.CompileString(src)
	require.NoError(t, v.Err())
	return v.LookupPath(cue.ParsePath(path))
}

func TestCompileFunc_FullDeclaration(t *testing.T) {
	v := compileAt(t, `function: hist: {
		outputs: [{name: "hist", extents: [64, "n"]}]
	}`, "function.hist")

	f, err := CompileFunc(v)
	require.NoError(t, err)
	assert.Equal(t, "hist", f.Name)
	require.Len(t, f.Outputs, 1)

	out := f.Outputs[0]
	assert.Equal(t, "hist", out.Name)
	require.Len(t, out.Extents, 2)

	imm, ok := out.Extents[0].(*ir.IntImm)
	require.True(t, ok)
	assert.Equal(t, int64(64), imm.Value)

	variable, ok := out.Extents[1].(*ir.Variable)
	require.True(t, ok)
	assert.Equal(t, "n", variable.Name)
}

func TestCompileFunc_TupleOutputs(t *testing.T) {
	v := compileAt(t, `function: f: {
		outputs: [
			{name: "out0", extents: [16, 8]},
			{name: "out1", extents: [16, 8]},
		]
	}`, "function.f")

	f, err := CompileFunc(v)
	require.NoError(t, err)
	require.Len(t, f.Outputs, 2)
	assert.Equal(t, "out0", f.Outputs[0].Name)
	assert.Equal(t, "out1", f.Outputs[1].Name)
}

func TestCompileFunc_NoOutputs(t *testing.T) {
	v := compileAt(t, `function: g: {}`, "function.g")

	f, err := CompileFunc(v)
	require.NoError(t, err)
	assert.Equal(t, "g", f.Name)
	assert.Empty(t, f.Outputs)
}

func TestCompileFunc_ScalarOutput(t *testing.T) {
	v := compileAt(t, `function: acc: {
		outputs: [{name: "acc"}]
	}`, "function.acc")

	f, err := CompileFunc(v)
	require.NoError(t, err)
	require.Len(t, f.Outputs, 1)
	assert.Empty(t, f.Outputs[0].Extents)
}

func TestCompileFunc_MissingOutputName(t *testing.T) {
	v := compileAt(t, `function: f: {
		outputs: [{extents: [4]}]
	}`, "function.f")

	_, err := CompileFunc(v)
	require.Error(t, err)

	var ce *CompileError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "outputs.name", ce.Field)
}

func TestCompileFunc_BadExtentKind(t *testing.T) {
	v := compileAt(t, `function: f: {
		outputs: [{name: "f", extents: [true]}]
	}`, "function.f")

	_, err := CompileFunc(v)
	require.Error(t, err)

	var ce *CompileError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "outputs.extents", ce.Field)
	assert.Contains(t, ce.Message, "extent must be an int or a variable name")
}

func TestCompileFunc_OutputsNotAList(t *testing.T) {
	v := compileAt(t, `function: f: {outputs: "nope"}`, "function.f")

	_, err := CompileFunc(v)
	require.Error(t, err)

	var ce *CompileError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "outputs", ce.Field)
}
