package machine

import "fmt"

// NativeFunc is the signature of a host-supplied builtin.
type NativeFunc func(args []Value) (Value, error)

// Native is a host builtin bound to a global name. It is a dedicated value
// variant rather than a sentinel code object matched by name: matching by
// name is fragile (a user function named print would shadow the real
// one), so a builtin carries its own identity instead.
type Native struct {
	name string
	fn   NativeFunc
}

var (
	_ Value    = (*Native)(nil)
	_ Callable = (*Native)(nil)
)

// NewNative wraps fn as a callable host builtin named name.
func NewNative(name string, fn NativeFunc) *Native {
	return &Native{name: name, fn: fn}
}

func (n *Native) String() string { return fmt.Sprintf("<native %s>", n.name) }
func (n *Native) Type() string   { return "native" }
func (n *Native) Name() string   { return n.name }

// Call invokes the wrapped host function.
func (n *Native) Call(args []Value) (Value, error) { return n.fn(args) }
