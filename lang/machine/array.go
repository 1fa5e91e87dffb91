package machine

import "strings"

// Array is a growable, ordered, mutable-in-place sequence of values. It is
// a heap object: two Array values are equal only if they are the same
// object (§3), which Go's pointer identity gives for free.
type Array struct {
	elems []Value
}

var _ Value = (*Array)(nil)

// NewArray returns an empty array, the result of the ARRAY instruction.
func NewArray() *Array { return &Array{} }

func (a *Array) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range a.elems {
		if i > 0 {
			b.WriteString(", ")
		}
		if s, ok := v.(Str); ok {
			b.WriteString(s.GoString())
		} else {
			b.WriteString(v.String())
		}
	}
	b.WriteByte(']')
	return b.String()
}

func (a *Array) Type() string { return "array" }

func (a *Array) Len() int { return len(a.elems) }

// Get returns the element at i, per ARRAY_GET. idx-out-of-range on any i
// outside [0, len).
func (a *Array) Get(i int) (Value, bool) {
	if i < 0 || i >= len(a.elems) {
		return nil, false
	}
	return a.elems[i], true
}

// Set assigns a[i] = v. Per the roundtrip invariant (§8), i == len(a) grows
// the array by one (the mechanism array literals rely on to build up their
// elements); any other out-of-range i fails.
func (a *Array) Set(i int, v Value) bool {
	switch {
	case i >= 0 && i < len(a.elems):
		a.elems[i] = v
		return true
	case i == len(a.elems):
		a.elems = append(a.elems, v)
		return true
	default:
		return false
	}
}
