package machine

import "github.com/veld-lang/veld/lang/compiler"

// Globals is the run-time half of the global-variable table: it shares a
// *compiler.Globals (name -> slot index) with the compiler and stores the
// value at each slot (§3, "Global slot"). A slot's index, once handed out
// by the shared compiler.Globals, is never reused.
type Globals struct {
	names *compiler.Globals
	slots []Value
}

// NewGlobals wraps names. Builtins are registered on the result with
// RegisterNative (or RegisterBuiltins) before a program is compiled against
// names, so that the compiler resolves references to them.
func NewGlobals(names *compiler.Globals) *Globals {
	g := &Globals{names: names}
	g.sync()
	return g
}

// sync grows the value slice to match any slots compilation has defined
// since the last call (compiling a chunk against g.names may define new
// globals for top-level `var` and `func` declarations).
func (g *Globals) sync() {
	for len(g.slots) < g.names.Len() {
		g.slots = append(g.slots, Nil)
	}
}

// Get returns the value at slot idx.
func (g *Globals) Get(idx uint32) Value { return g.slots[idx] }

// Set assigns the value at slot idx.
func (g *Globals) Set(idx uint32, v Value) { g.slots[idx] = v }

// RegisterNative defines name as a global bound to a host builtin, ready to
// be resolved by a subsequent compilation against the same Globals.
func (g *Globals) RegisterNative(name string, fn NativeFunc) {
	idx := g.names.Define(name)
	g.sync()
	g.slots[idx] = NewNative(name, fn)
}

// Sync picks up any global slots that compilation has defined since the
// last call. VM.Exec calls it before running a chunk; callers may also call
// it directly after compiling.
func (g *Globals) Sync() { g.sync() }
