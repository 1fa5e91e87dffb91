// Package machine implements the stack virtual machine that executes
// lang/compiler's bytecode: the runtime value representation, the globals
// table, call frames, and the fetch-decode-dispatch loop.
package machine

// Value is implemented by every runtime value the VM can push, store, or
// pass as an argument: Number, Bool, Nil, Str, *Array, *Code and *Native.
type Value interface {
	// String returns a human-readable rendering, used by the print builtin
	// and by error messages.
	String() string

	// Type names the value's kind, for type-error messages.
	Type() string
}

// Ordered is implemented by value types that support <, >, ==, and friends
// against another value of the same concrete type. Comparison across
// different concrete types is a type-error, per §4.3.
type Ordered interface {
	Value
	// Cmp compares the receiver to y, which is guaranteed to be the same
	// concrete type. It returns negative, zero, or positive as the receiver
	// is less than, equal to, or greater than y.
	Cmp(y Value) int
}

// Callable is implemented by values that CALL may invoke: *Code (a compiled
// function) and *Native (a host-supplied builtin).
type Callable interface {
	Value
	Name() string
}
