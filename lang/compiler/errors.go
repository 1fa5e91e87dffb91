package compiler

import (
	"fmt"

	"github.com/veld-lang/veld/lang/token"
)

// ErrorKind classifies a CompileError, per §7's compile-time error kinds.
type ErrorKind uint8

//nolint:revive
const (
	UndefinedVariable ErrorKind = iota
	Redeclaration
	UnknownOperator
	TooManyConstants
	TooManyLocals
	MalformedAST
)

var errorKindNames = [...]string{
	UndefinedVariable: "undefined-variable",
	Redeclaration:     "redeclaration",
	UnknownOperator:   "unknown-operator",
	TooManyConstants:  "too-many-constants",
	TooManyLocals:     "too-many-locals",
	MalformedAST:      "malformed-ast",
}

func (k ErrorKind) String() string { return errorKindNames[k] }

// CompileError is a fatal error detected while lowering the AST to
// bytecode. It carries the symbolic location (name, position) that caused
// it, per §7's requirement that compiler errors include one.
type CompileError struct {
	Kind    ErrorKind
	Pos     token.Pos
	Symbol  string // variable/function name involved, if any
	Message string
}

func (e *CompileError) Error() string {
	l, c := e.Pos.LineCol()
	if e.Symbol != "" {
		return fmt.Sprintf("%d:%d: %s: %s: %s", l, c, e.Kind, e.Symbol, e.Message)
	}
	return fmt.Sprintf("%d:%d: %s: %s", l, c, e.Kind, e.Message)
}

func errUndefinedVariable(pos token.Pos, name string) error {
	return &CompileError{Kind: UndefinedVariable, Pos: pos, Symbol: name, Message: "undefined variable"}
}

func errRedeclaration(pos token.Pos, name string) error {
	return &CompileError{Kind: Redeclaration, Pos: pos, Symbol: name, Message: "already declared in this scope"}
}

func errTooManyConstants(pos token.Pos) error {
	return &CompileError{Kind: TooManyConstants, Pos: pos, Message: fmt.Sprintf("constant pool exceeds %d entries", MaxConstants)}
}

func errTooManyLocals(pos token.Pos) error {
	return &CompileError{Kind: TooManyLocals, Pos: pos, Message: fmt.Sprintf("function exceeds %d local slots", MaxLocals)}
}

func errMalformedAST(pos token.Pos, detail string) error {
	return &CompileError{Kind: MalformedAST, Pos: pos, Message: detail}
}

func errUnknownOperator(pos token.Pos, op string) error {
	return &CompileError{Kind: UnknownOperator, Pos: pos, Symbol: op, Message: "unknown operator"}
}
