// Package compiler lowers a resolved AST to the linear bytecode executed by
// the lang/machine stack VM: it owns scope resolution, constant-pool
// deduplication and jump back-patching.
package compiler

import "fmt"

// Opcode is a single byte identifying an instruction. Every opcode has a
// fixed operand width (declared in operandWidth) and a fixed effect on the
// depth of the VM's operand stack (declared in stackEffect), per the
// engine's instruction set contract: a compiler and a disassembler built
// independently from this table must agree on both.
type Opcode uint8

//nolint:revive
const (
	HALT Opcode = iota
	CONST
	NIL
	ADD
	SUB
	MUL
	DIV
	COMPARE
	JUMP
	JUMP_IF_FALSE
	JUMP_IF_FALSE_OR_POP
	JUMP_IF_TRUE_OR_POP
	DUP
	LOGICAL_NOT
	GET_GLOBAL
	SET_GLOBAL
	GET_LOCAL
	SET_LOCAL
	ARRAY
	ARRAY_GET
	ARRAY_SET
	CALL
	RETURN

	maxOpcode
)

var opcodeNames = [...]string{
	HALT:                 "halt",
	CONST:                "const",
	NIL:                  "nil",
	ADD:                  "add",
	SUB:                  "sub",
	MUL:                  "mul",
	DIV:                  "div",
	COMPARE:              "compare",
	JUMP:                 "jump",
	JUMP_IF_FALSE:        "jump_if_false",
	JUMP_IF_FALSE_OR_POP: "jump_if_false_or_pop",
	JUMP_IF_TRUE_OR_POP:  "jump_if_true_or_pop",
	DUP:                  "dup",
	LOGICAL_NOT:          "logical_not",
	GET_GLOBAL:           "get_global",
	SET_GLOBAL:           "set_global",
	GET_LOCAL:            "get_local",
	SET_LOCAL:            "set_local",
	ARRAY:                "array",
	ARRAY_GET:            "array_get",
	ARRAY_SET:            "array_set",
	CALL:                 "call",
	RETURN:               "return",
}

func (op Opcode) String() string {
	if op < maxOpcode {
		return opcodeNames[op]
	}
	return fmt.Sprintf("illegal opcode (%d)", byte(op))
}

// operandWidth is the number of bytes of operand data that follow the
// opcode byte, per §4.1's operand-width table. Opcodes not listed here take
// no operand.
var operandWidth = [...]int{
	CONST:         1,
	COMPARE:       1,
	JUMP:          2,
	JUMP_IF_FALSE: 2,
	JUMP_IF_FALSE_OR_POP: 2,
	JUMP_IF_TRUE_OR_POP:  2,
	GET_GLOBAL: 1,
	SET_GLOBAL: 1,
	GET_LOCAL:  1,
	SET_LOCAL:  1,
	CALL:       1,
}

// OperandWidth returns the number of operand bytes that follow op.
func OperandWidth(op Opcode) int { return operandWidth[op] }

// IsJump reports whether op carries a 2-byte absolute jump target.
func IsJump(op Opcode) bool {
	switch op {
	case JUMP, JUMP_IF_FALSE, JUMP_IF_FALSE_OR_POP, JUMP_IF_TRUE_OR_POP:
		return true
	default:
		return false
	}
}

// InstructionLen returns the total encoded length (opcode byte plus
// operand) of op.
func InstructionLen(op Opcode) int { return 1 + OperandWidth(op) }

// stackEffect records each opcode's net effect on the operand stack depth,
// as a table of the instruction set contract; the compiler does not consult
// it while emitting code. CALL's effect depends on its argc operand and is
// given by CallStackEffect.
var stackEffect = [...]int{
	HALT:                 0,
	CONST:                +1,
	NIL:                  +1,
	ADD:                  -1,
	SUB:                  -1,
	MUL:                  -1,
	DIV:                  -1,
	COMPARE:              -1,
	JUMP:                 0,
	JUMP_IF_FALSE:        -1,
	JUMP_IF_FALSE_OR_POP: 0, // -1 on fall-through, 0 on jump
	JUMP_IF_TRUE_OR_POP:  0,
	DUP:                  +1,
	LOGICAL_NOT:          0,
	GET_GLOBAL:           +1,
	SET_GLOBAL:           -1,
	GET_LOCAL:            +1,
	SET_LOCAL:            -1,
	ARRAY:                +1,
	ARRAY_GET:            -1,
	ARRAY_SET:            -2,
	RETURN:               -1,
}

// CallStackEffect returns CALL's net stack effect for the given argc: argc
// arguments and the callable are popped, one result is pushed.
func CallStackEffect(argc int) int { return -argc }

// CompareKind is the 1-byte operand of the COMPARE instruction.
type CompareKind uint8

//nolint:revive
const (
	CompareLT CompareKind = iota
	CompareGT
	CompareEQ
	CompareGE
	CompareLE
	CompareNE
)

var compareNames = [...]string{
	CompareLT: "<", CompareGT: ">", CompareEQ: "==",
	CompareGE: ">=", CompareLE: "<=", CompareNE: "!=",
}

func (k CompareKind) String() string {
	if int(k) < len(compareNames) {
		return compareNames[k]
	}
	return fmt.Sprintf("illegal compare kind (%d)", byte(k))
}
