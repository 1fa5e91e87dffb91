package parser

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/veld-lang/veld/lang/ast"
)

func TestParseExprPrecedence(t *testing.T) {
	ch, err := Parse("t", "1 + 2 * 3;")
	require.NoError(t, err)
	require.Len(t, ch.Block.Stmts, 1)
	es := ch.Block.Stmts[0].(*ast.ExprStmt)
	bin := es.X.(*ast.Binary)
	require.Equal(t, "+", bin.Op.String())
	rhs := bin.Y.(*ast.Binary)
	require.Equal(t, "*", rhs.Op.String())
}

func TestParseIfElseDanglingElse(t *testing.T) {
	ch, err := Parse("t", "if (1) if (2) 3; else 4;")
	require.NoError(t, err)
	outer := ch.Block.Stmts[0].(*ast.If)
	inner := outer.Then.(*ast.If)
	require.NotNil(t, inner.Else)
	require.Nil(t, outer.Else)
}

func TestParseFuncAndCall(t *testing.T) {
	ch, err := Parse("t", `func add(a, b) { return a + b; } add(1, 2);`)
	require.NoError(t, err)
	require.Len(t, ch.Block.Stmts, 2)
	fd := ch.Block.Stmts[0].(*ast.FuncDecl)
	require.Equal(t, "add", fd.Name)
	require.Equal(t, []string{"a", "b"}, fd.Params)
	call := ch.Block.Stmts[1].(*ast.ExprStmt).X.(*ast.Call)
	require.Equal(t, "add", call.Fn.(*ast.Ident).Name)
	require.Len(t, call.Args, 2)
}

func TestParseArrayAndIndex(t *testing.T) {
	ch, err := Parse("t", `var a = [1, 2, 3]; a[0] = 9;`)
	require.NoError(t, err)
	decl := ch.Block.Stmts[0].(*ast.VarDecl)
	arr := decl.Value.(*ast.ArrayLit)
	require.Len(t, arr.Elems, 3)
	assign := ch.Block.Stmts[1].(*ast.Assign)
	idx := assign.Target.(*ast.Index)
	require.Equal(t, "a", idx.X.(*ast.Ident).Name)
}

func TestParseForLoop(t *testing.T) {
	ch, err := Parse("t", `for (var i = 0; i < 10; i = i + 1) { i; }`)
	require.NoError(t, err)
	f := ch.Block.Stmts[0].(*ast.For)
	require.NotNil(t, f.Init)
	require.NotNil(t, f.Cond)
	require.NotNil(t, f.Update)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse("t", "var x = ;")
	require.Error(t, err)

	_, err = Parse("t", "1 = 2;")
	require.Error(t, err)
}
