package compiler

import "fmt"

// ConstKind tags the variant held by a Constant.
type ConstKind uint8

//nolint:revive
const (
	ConstNumber ConstKind = iota
	ConstString
	ConstBool
	ConstCode
)

// Constant is one entry of a CodeObject's constant pool. Numbers, strings
// and booleans are deduplicated on insertion; nested CodeObjects (compiled
// function bodies) are always appended, per §4.2's constant-pool rules.
//
// Constant intentionally holds no machine.Value: the compiler package must
// not depend on the machine package (which depends on compiler for Opcode
// and CodeObject), so the VM converts each Constant into a runtime value
// when it executes CONST.
type Constant struct {
	Kind   ConstKind
	Number float64
	Str    string
	Bool   bool
	Code   *CodeObject
}

func (c Constant) String() string {
	switch c.Kind {
	case ConstNumber:
		return fmt.Sprintf("%v", c.Number)
	case ConstString:
		return fmt.Sprintf("%q", c.Str)
	case ConstBool:
		return fmt.Sprintf("%v", c.Bool)
	case ConstCode:
		return fmt.Sprintf("<code %s>", c.Code.Name)
	default:
		return "<invalid constant>"
	}
}

// MaxConstants is the hard limit on the number of entries in a single code
// object's constant pool: the CONST/CALL-adjacent operand width for
// constant indices is one byte (§4.2).
const MaxConstants = 256

// MaxLocals mirrors MaxConstants: a code object's GET_LOCAL/SET_LOCAL
// operand is also a single byte.
const MaxLocals = 256

// A CodeObject is the compiled form of one function (or the top-level
// program, conventionally named "main"). It is immutable once returned by
// Compile.
type CodeObject struct {
	// Name is a display name: "main" for the top-level unit, the function
	// name otherwise.
	Name string

	// Constants is the code object's constant pool, addressed by the 1-byte
	// operand of CONST.
	Constants []Constant

	// Code is the dense instruction stream.
	Code []byte

	// LocalNames maps a local-slot index to the source variable name, for
	// disassembly and error messages only; it plays no role at runtime.
	LocalNames []string

	// NumParams is the number of leading local slots that are function
	// parameters.
	NumParams int
}

// MaxLocalSlots is the number of local slots this function needs, i.e. one past
// the highest slot index ever assigned.
func (c *CodeObject) MaxLocalSlots() int { return len(c.LocalNames) }
