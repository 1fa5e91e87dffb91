package compiler

import "github.com/dolthub/swiss"

// Globals is the compile-time half of the engine's global-variable table:
// an append-only map from name to a stable slot index, shared between the
// compiler (which resolves GET_GLOBAL/SET_GLOBAL targets and defines new
// names for top-level `var` and `func` declarations) and the VM's own
// runtime Globals (lang/machine/globals.go), which stores the values at
// those same indices. Once an index is handed out it never changes, so
// GET_GLOBAL/SET_GLOBAL operands compiled against one Globals instance stay
// valid for that instance's lifetime.
type Globals struct {
	index *swiss.Map[string, uint32]
	names []string
}

// NewGlobals returns an empty Globals table.
func NewGlobals() *Globals {
	return &Globals{index: swiss.NewMap[string, uint32](16)}
}

// Resolve returns the slot index for name, if it has been defined.
func (g *Globals) Resolve(name string) (uint32, bool) {
	return g.index.Get(name)
}

// Define returns the slot index for name, creating a new slot if one does
// not already exist. Defining an existing name is a no-op on its identity:
// the original index is returned.
func (g *Globals) Define(name string) uint32 {
	if idx, ok := g.index.Get(name); ok {
		return idx
	}
	idx := uint32(len(g.names))
	g.names = append(g.names, name)
	g.index.Put(name, idx)
	return idx
}

// Len returns the number of global slots defined so far.
func (g *Globals) Len() int { return len(g.names) }

// Name returns the name bound to slot idx.
func (g *Globals) Name(idx uint32) string { return g.names[idx] }

// Names returns the defined global names in slot order. The caller must not
// modify the result.
func (g *Globals) Names() []string { return g.names }
