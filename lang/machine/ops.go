package machine

import (
	"fmt"

	"github.com/veld-lang/veld/lang/compiler"
)

// opError is an error produced by an arithmetic/comparison helper, carrying
// enough to classify it as a RuntimeError once the VM attaches the code
// object name and instruction offset active when it was raised.
type opError struct {
	kind ErrorKind
	msg  string
}

func (e *opError) Error() string { return e.msg }

func typeErrorf(format string, args ...any) error {
	return &opError{kind: TypeError, msg: fmt.Sprintf(format, args...)}
}

// Truth implements the truthiness mapping of §4.3: nil and false are
// falsy; the number zero is falsy; the empty string is falsy; everything
// else (including arrays and code/native values) is truthy.
func Truth(v Value) bool {
	switch v := v.(type) {
	case NilType:
		return false
	case Bool:
		return bool(v)
	case Number:
		return v != 0
	case Str:
		return v != ""
	default:
		return true
	}
}

// Add implements the ADD instruction: numeric addition, string
// concatenation, or a type-error for any other combination.
func Add(l, r Value) (Value, error) {
	switch l := l.(type) {
	case Number:
		if r, ok := r.(Number); ok {
			return l + r, nil
		}
	case Str:
		if r, ok := r.(Str); ok {
			return l + r, nil
		}
	}
	return nil, typeErrorf("cannot add %s and %s", l.Type(), r.Type())
}

// arith implements SUB/MUL/DIV, which require two numbers.
func arith(op byte, l, r Value) (Value, error) {
	ln, ok1 := l.(Number)
	rn, ok2 := r.(Number)
	if !ok1 || !ok2 {
		return nil, typeErrorf("arithmetic on non-numbers (%s, %s)", l.Type(), r.Type())
	}
	switch op {
	case '-':
		return ln - rn, nil
	case '*':
		return ln * rn, nil
	case '/':
		if rn == 0 {
			return nil, &opError{kind: DivisionByZero, msg: "division by zero"}
		}
		return ln / rn, nil
	}
	panic("unreachable")
}

func Sub(l, r Value) (Value, error) { return arith('-', l, r) }
func Mul(l, r Value) (Value, error) { return arith('*', l, r) }
func Div(l, r Value) (Value, error) { return arith('/', l, r) }

// evalCompare maps a compiler.CompareKind to the boolean predicate applied
// to an Ordered.Cmp result.
func evalCompare(kind compiler.CompareKind, cmp int) bool {
	switch kind {
	case compiler.CompareLT:
		return cmp < 0
	case compiler.CompareGT:
		return cmp > 0
	case compiler.CompareEQ:
		return cmp == 0
	case compiler.CompareGE:
		return cmp >= 0
	case compiler.CompareLE:
		return cmp <= 0
	case compiler.CompareNE:
		return cmp != 0
	}
	panic("unreachable")
}

// Compare implements the COMPARE instruction: numbers compare numerically,
// strings lexicographically; any other combination is a type-error.
func Compare(kind compiler.CompareKind, l, r Value) (bool, error) {
	lo, ok1 := l.(Ordered)
	ro, ok2 := r.(Ordered)
	if !ok1 || !ok2 || lo.Type() != ro.Type() {
		return false, typeErrorf("cannot compare %s and %s", l.Type(), r.Type())
	}
	return evalCompare(kind, lo.Cmp(r)), nil
}
