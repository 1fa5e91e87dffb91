package machine

import (
	"fmt"

	"github.com/veld-lang/veld/lang/compiler"
)

// Code is a first-class callable value wrapping a compiled function (or the
// root "main" unit). Two Code values are equal only by identity: the
// compiler never emits the same *compiler.CodeObject twice.
type Code struct {
	co *compiler.CodeObject
}

var (
	_ Value    = (*Code)(nil)
	_ Callable = (*Code)(nil)
)

// NewCode wraps a compiled code object as a runtime value.
func NewCode(co *compiler.CodeObject) *Code { return &Code{co: co} }

func (c *Code) String() string { return fmt.Sprintf("<function %s>", c.co.Name) }
func (c *Code) Type() string   { return "code" }
func (c *Code) Name() string   { return c.co.Name }

// CodeObject returns the compiled form this value wraps, for the VM's own
// call handling.
func (c *Code) CodeObject() *compiler.CodeObject { return c.co }
