package machine

import (
	"fmt"
	"io"

	"golang.org/x/exp/rand"
)

// RegisterBuiltins installs the host-provided natives onto globals, bound
// to w for print's output and seeded from seed for random's generator
// (§9 recommends dedicated Native values over sentinel code objects for
// exactly this: builtins that need to touch the host, not the VM).
func RegisterBuiltins(globals *Globals, w io.Writer, seed uint64) {
	rng := rand.New(rand.NewSource(seed))

	globals.RegisterNative("print", func(args []Value) (Value, error) {
		strs := make([]any, len(args))
		for i, a := range args {
			strs[i] = a.String()
		}
		fmt.Fprintln(w, strs...)
		return Nil, nil
	})

	globals.RegisterNative("random", func(args []Value) (Value, error) {
		if len(args) != 1 {
			return nil, typeErrorf("random expects 1 argument, got %d", len(args))
		}
		max, ok := args[0].(Number)
		if !ok {
			return nil, typeErrorf("random expects a number, got %s", args[0].Type())
		}
		if max < 0 {
			max = -max
		}
		// Uniform in [-max, max].
		v := rng.Float64()*2*float64(max) - float64(max)
		return Number(v), nil
	})
}
