package compiler

import "github.com/dolthub/swiss"

// ref is what a name resolves to within the compile-time scope stack: either
// a local slot of the current function, or a global slot (used for
// top-level `var` declarations and function bindings, which must be visible
// from any frame).
type ref struct {
	global bool
	slot   uint32
}

// scope is one entry of the compile-time scope stack: a map from name to
// slot reference, pushed on block entry and on function entry and popped on
// exit (§3, "Scope (compile-time only)"). It exists only during
// compilation; the VM resolves everything to integer slot indices ahead of
// time and never consults it.
type scope struct {
	names *swiss.Map[string, ref]
}

func newScope() *scope {
	return &scope{names: swiss.NewMap[string, ref](8)}
}

// scopeStack resolves identifiers innermost-out within one function body.
type scopeStack struct {
	frames []*scope
}

func (s *scopeStack) push() { s.frames = append(s.frames, newScope()) }

func (s *scopeStack) pop() { s.frames = s.frames[:len(s.frames)-1] }

func (s *scopeStack) depth() int { return len(s.frames) }

// declareLocal binds name to slot in the innermost scope. It returns false,
// leaving the existing binding in place, if name was already declared in
// that same innermost scope (a redeclaration error at the call site).
func (s *scopeStack) declareLocal(name string, slot uint32) bool {
	return s.declare(name, ref{slot: slot})
}

// declareGlobal records, in the innermost scope, that name resolves to a
// global slot. Used for top-level `var` declarations: they still
// participate in scope hygiene (shadowing, redeclaration) even though their
// storage lives in the globals table.
func (s *scopeStack) declareGlobal(name string, slot uint32) bool {
	return s.declare(name, ref{global: true, slot: slot})
}

func (s *scopeStack) declare(name string, r ref) bool {
	top := s.frames[len(s.frames)-1]
	if _, ok := top.names.Get(name); ok {
		return false
	}
	top.names.Put(name, r)
	return true
}

// existsInInnermost reports whether name is already bound in the innermost
// scope, without searching outward.
func (s *scopeStack) existsInInnermost(name string) bool {
	top := s.frames[len(s.frames)-1]
	_, ok := top.names.Get(name)
	return ok
}

// resolve searches the scope stack innermost-out for name.
func (s *scopeStack) resolve(name string) (ref, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if r, ok := s.frames[i].names.Get(name); ok {
			return r, true
		}
	}
	return ref{}, false
}
