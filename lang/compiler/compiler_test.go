package compiler_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/veld-lang/veld/lang/compiler"
	"github.com/veld-lang/veld/lang/parser"
)

func mustCompile(t *testing.T, src string) (*compiler.CodeObject, *compiler.Globals) {
	t.Helper()
	ch, err := parser.Parse("test", src)
	require.NoError(t, err)
	globals := compiler.NewGlobals()
	co, err := compiler.Compile(globals, ch)
	require.NoError(t, err)
	return co, globals
}

func opcodes(co *compiler.CodeObject) []compiler.Opcode {
	var ops []compiler.Opcode
	for _, inst := range compiler.Decode(co.Code) {
		ops = append(ops, inst.Op)
	}
	return ops
}

func TestCompileEndsInHalt(t *testing.T) {
	co, _ := mustCompile(t, `1;`)
	ops := opcodes(co)
	require.Equal(t, compiler.HALT, ops[len(ops)-1])
}

func TestCompileConstantDedup(t *testing.T) {
	co, _ := mustCompile(t, `var x = 1; var y = 1; x;`)
	count := 0
	for _, c := range co.Constants {
		if c.Kind == compiler.ConstNumber {
			count++
		}
	}
	require.Equal(t, 1, count, "the literal 1 should be deduplicated across both declarations")
}

func TestCompileTopLevelVarIsGlobal(t *testing.T) {
	_, globals := mustCompile(t, `var x = 5; x;`)
	_, ok := globals.Resolve("x")
	require.True(t, ok, "top-level var must bind a global slot")
}

func TestCompileShadowing(t *testing.T) {
	co, globals := mustCompile(t, `var x=5; { var x=10; x=x+5; } x;`)
	_, ok := globals.Resolve("x")
	require.True(t, ok)
	// the inner x must have claimed a distinct local slot, not reused the
	// outer (global) binding
	require.NotEmpty(t, co.LocalNames)
}

func TestCompileJumpsLandOnInstructionBoundaries(t *testing.T) {
	co, _ := mustCompile(t, `if (5 > 10) {1;} else {2;}`)
	bounds := map[int]bool{}
	for _, inst := range compiler.Decode(co.Code) {
		bounds[inst.Offset] = true
	}
	for _, inst := range compiler.Decode(co.Code) {
		if compiler.IsJump(inst.Op) {
			require.True(t, bounds[inst.Operand] || inst.Operand == len(co.Code),
				"jump at %d targets %d, not an instruction boundary", inst.Offset, inst.Operand)
		}
	}
}

func TestCompileShortCircuitHasNoDup(t *testing.T) {
	co, _ := mustCompile(t, `var a=false; var b=(a && (1/0 > 0)); b;`)
	for _, op := range opcodes(co) {
		require.NotEqual(t, compiler.DUP, op, "short-circuit lowering must not duplicate the left operand")
	}
}

func TestCompileFunctionDeclBindsCodeConstant(t *testing.T) {
	co, globals := mustCompile(t, `func fact(n){ if (n==0) {return 1;} else {return n*fact(n-1);} } fact(5);`)
	_, ok := globals.Resolve("fact")
	require.True(t, ok)
	var found *compiler.CodeObject
	for _, c := range co.Constants {
		if c.Kind == compiler.ConstCode {
			found = c.Code
		}
	}
	require.NotNil(t, found)
	require.Equal(t, "fact", found.Name)
	require.Equal(t, 1, found.NumParams)
}

func TestCompileArrayLiteral(t *testing.T) {
	co, _ := mustCompile(t, `[1, 2, 3];`)
	var arrayOps, setOps int
	for _, op := range opcodes(co) {
		switch op {
		case compiler.ARRAY:
			arrayOps++
		case compiler.ARRAY_SET:
			setOps++
		}
	}
	require.Equal(t, 1, arrayOps)
	require.Equal(t, 3, setOps)
}

func TestCompileUndefinedVariable(t *testing.T) {
	ch, err := parser.Parse("test", `x;`)
	require.NoError(t, err)
	_, err = compiler.Compile(compiler.NewGlobals(), ch)
	require.Error(t, err)
	var cerr *compiler.CompileError
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, compiler.UndefinedVariable, cerr.Kind)
}

func TestCompileRedeclaration(t *testing.T) {
	ch, err := parser.Parse("test", `{ var x=1; var x=2; }`)
	require.NoError(t, err)
	_, err = compiler.Compile(compiler.NewGlobals(), ch)
	require.Error(t, err)
	var cerr *compiler.CompileError
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, compiler.Redeclaration, cerr.Kind)
}

func TestCompileFunctionEndsInReturn(t *testing.T) {
	co, _ := mustCompile(t, `func f(){ 1; } f();`)
	var found *compiler.CodeObject
	for _, c := range co.Constants {
		if c.Kind == compiler.ConstCode {
			found = c.Code
		}
	}
	require.NotNil(t, found)
	ops := opcodes(found)
	require.Equal(t, compiler.RETURN, ops[len(ops)-1])
}
