package machine_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/veld-lang/veld/lang/compiler"
	"github.com/veld-lang/veld/lang/machine"
	"github.com/veld-lang/veld/lang/parser"
)

func run(t *testing.T, src string) (machine.Value, *bytes.Buffer) {
	t.Helper()
	ch, err := parser.Parse("test", src)
	require.NoError(t, err)
	globals := compiler.NewGlobals()
	var out bytes.Buffer
	rt := machine.NewGlobals(globals)
	machine.RegisterBuiltins(rt, &out, 1)
	co, err := compiler.Compile(globals, ch)
	require.NoError(t, err)
	rt.Sync()
	vm := machine.New(rt, machine.WithOutput(&out))
	v, err := vm.Exec(co)
	require.NoError(t, err)
	return v, &out
}

func runErr(t *testing.T, src string) error {
	t.Helper()
	ch, err := parser.Parse("test", src)
	require.NoError(t, err)
	globals := compiler.NewGlobals()
	rt := machine.NewGlobals(globals)
	co, err := compiler.Compile(globals, ch)
	require.NoError(t, err)
	vm := machine.New(rt)
	_, err = vm.Exec(co)
	return err
}

func TestVMIfElse(t *testing.T) {
	v, _ := run(t, `
		var x = 5;
		var y = 0;
		if (x > 3) { y = 1; } else { y = 2; }
		y;
	`)
	require.Equal(t, machine.Number(1), v)
}

func TestVMShadowing(t *testing.T) {
	v, _ := run(t, `
		var x = 1;
		{
			var x = 2;
			x = x + 10;
		}
		x;
	`)
	require.Equal(t, machine.Number(1), v)
}

func TestVMWhileLoopSum(t *testing.T) {
	v, _ := run(t, `
		var i = 0;
		var sum = 0;
		while (i < 5) {
			sum = sum + i;
			i = i + 1;
		}
		sum;
	`)
	require.Equal(t, machine.Number(10), v)
}

func TestVMRecursiveFactorial(t *testing.T) {
	v, _ := run(t, `
		func fact(n) {
			if (n == 0) { return 1; } else { return n * fact(n - 1); }
		}
		fact(5);
	`)
	require.Equal(t, machine.Number(120), v)
}

func TestVMShortCircuitAnd(t *testing.T) {
	v, _ := run(t, `
		var a = false;
		var b = "hello";
		a && b;
	`)
	require.Equal(t, machine.Bool(false), v)
}

func TestVMShortCircuitOr(t *testing.T) {
	v, _ := run(t, `
		var a = 0;
		var b = "hello";
		a || b;
	`)
	require.Equal(t, machine.Str("hello"), v)
}

func TestVMStringConcat(t *testing.T) {
	v, _ := run(t, `"foo" + "bar";`)
	require.Equal(t, machine.Str("foobar"), v)
}

func TestVMStringPlusNumberIsTypeError(t *testing.T) {
	err := runErr(t, `"foo" + 1;`)
	require.Error(t, err)
	var rerr *machine.RuntimeError
	require.ErrorAs(t, err, &rerr)
	require.Equal(t, machine.TypeError, rerr.Kind)
}

func TestVMDivisionByZero(t *testing.T) {
	err := runErr(t, `1 / 0;`)
	require.Error(t, err)
	var rerr *machine.RuntimeError
	require.ErrorAs(t, err, &rerr)
	require.Equal(t, machine.DivisionByZero, rerr.Kind)
}

func TestVMBubbleSortArray(t *testing.T) {
	v, _ := run(t, `
		var a = [5, 3, 1, 4, 2];
		var n = 5;
		var i = 0;
		while (i < n) {
			var j = 0;
			while (j < n - i - 1) {
				if (a[j] > a[j + 1]) {
					var tmp = a[j];
					a[j] = a[j + 1];
					a[j + 1] = tmp;
				}
				j = j + 1;
			}
			i = i + 1;
		}
		a;
	`)
	arr, ok := v.(*machine.Array)
	require.True(t, ok)
	require.Equal(t, 5, arr.Len())
	for i, want := range []float64{1, 2, 3, 4, 5} {
		elem, ok := arr.Get(i)
		require.True(t, ok)
		require.Equal(t, machine.Number(want), elem)
	}
}

func TestVMPrintBuiltin(t *testing.T) {
	_, out := run(t, `print("hi");`)
	require.Contains(t, out.String(), "hi")
}

func TestVMNotCallable(t *testing.T) {
	err := runErr(t, `var x = 5; x();`)
	require.Error(t, err)
	var rerr *machine.RuntimeError
	require.ErrorAs(t, err, &rerr)
	require.Equal(t, machine.NotCallable, rerr.Kind)
}

func TestVMIndexOutOfRange(t *testing.T) {
	err := runErr(t, `var a = [1, 2]; a[5];`)
	require.Error(t, err)
	var rerr *machine.RuntimeError
	require.ErrorAs(t, err, &rerr)
	require.Equal(t, machine.IndexOutOfRange, rerr.Kind)
}
