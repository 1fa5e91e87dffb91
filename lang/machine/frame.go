package machine

import "github.com/veld-lang/veld/lang/compiler"

// Frame is one in-progress call: the code object being executed, the
// instruction pointer within it, and a flat array of local slots
// initialised to Nil (§3, "Call frame (run-time)").
type Frame struct {
	code   *compiler.CodeObject
	ip     int
	locals []Value
}

func newFrame(co *compiler.CodeObject) *Frame {
	locals := make([]Value, co.MaxLocalSlots())
	for i := range locals {
		locals[i] = Nil
	}
	return &Frame{code: co, locals: locals}
}
