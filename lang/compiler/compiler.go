package compiler

import (
	"github.com/veld-lang/veld/lang/ast"
	"github.com/veld-lang/veld/lang/token"
)

// Compile lowers a parsed chunk to a "main" code object, resolving symbols
// against globals (which the caller may have pre-populated with builtins).
// Top-level `var` declarations bind into globals rather than a local slot of
// the root frame: functions have no access to an enclosing frame's locals,
// so anything a function needs to see from outside its own parameters must
// live in globals, and `main` is otherwise compiled exactly like any other
// function body (§9, "variable declared at the top level").
func Compile(globals *Globals, ch *ast.Chunk) (*CodeObject, error) {
	pc := &pcomp{globals: globals}
	return pc.compileFunction("main", nil, ch.Block, true)
}

// pcomp is shared state across every code object compiled for one program:
// just the globals table, since code objects are otherwise independent.
type pcomp struct {
	globals *Globals
}

// fcomp is the compiler state for a single code object (the top-level
// program or one function body): the code object being emitted into, the
// scope stack, and a running count of local slots allocated so far.
type fcomp struct {
	pc     *pcomp
	co     *CodeObject
	scopes scopeStack
	isMain bool
}

func (pc *pcomp) compileFunction(name string, params []string, body *ast.Block, isMain bool) (*CodeObject, error) {
	fc := &fcomp{
		pc:     pc,
		co:     &CodeObject{Name: name, NumParams: len(params)},
		isMain: isMain,
	}
	fc.scopes.push()
	for _, p := range params {
		slot := fc.allocLocal(p)
		fc.scopes.declareLocal(p, slot)
	}
	if err := fc.block(body); err != nil {
		return nil, err
	}
	fc.scopes.pop()

	if isMain {
		fc.emitOp(HALT)
	} else if !fc.endsInReturn() {
		fc.emitOp(NIL)
		fc.emitOp(RETURN)
	}
	return fc.co, nil
}

// endsInReturn reports whether the code object's last emitted instruction is
// RETURN, per the "return-slot coverage" invariant: a function either ends
// in an explicit RETURN, or the compiler appends one.
func (fc *fcomp) endsInReturn() bool {
	insts := Decode(fc.co.Code)
	if len(insts) == 0 {
		return false
	}
	return insts[len(insts)-1].Op == RETURN
}

// --- emission helpers ---

func (fc *fcomp) here() int { return len(fc.co.Code) }

func (fc *fcomp) emitOp(op Opcode) int {
	off := fc.here()
	fc.co.Code = append(fc.co.Code, byte(op))
	return off
}

func (fc *fcomp) emitByteOp(op Opcode, operand byte) int {
	off := fc.here()
	fc.co.Code = append(fc.co.Code, byte(op), operand)
	return off
}

// emitJump emits op followed by a 2-byte placeholder and returns the offset
// of the placeholder, to be passed to patchJump once the target is known.
func (fc *fcomp) emitJump(op Opcode) int {
	fc.co.Code = append(fc.co.Code, byte(op), 0, 0)
	return fc.here() - 2
}

// patchJump writes the current code offset, big-endian, into the 2-byte
// placeholder at placeholderOff.
func (fc *fcomp) patchJump(placeholderOff int) {
	target := uint16(fc.here())
	fc.co.Code[placeholderOff] = byte(target >> 8)
	fc.co.Code[placeholderOff+1] = byte(target)
}

func (fc *fcomp) allocLocal(name string) uint32 {
	slot := uint32(len(fc.co.LocalNames))
	fc.co.LocalNames = append(fc.co.LocalNames, name)
	return slot
}

// addConstant returns the index of a constant equal to c in the current
// code object's pool, appending a new entry (deduplicated for everything but
// nested code objects) if none exists.
func (fc *fcomp) addConstant(pos token.Pos, c Constant) (byte, error) {
	if c.Kind != ConstCode {
		for i, existing := range fc.co.Constants {
			if existing == c {
				return byte(i), nil
			}
		}
	}
	if len(fc.co.Constants) >= MaxConstants {
		return 0, errTooManyConstants(pos)
	}
	fc.co.Constants = append(fc.co.Constants, c)
	return byte(len(fc.co.Constants) - 1), nil
}

func (fc *fcomp) emitConstNumber(pos token.Pos, v float64) error {
	idx, err := fc.addConstant(pos, Constant{Kind: ConstNumber, Number: v})
	if err != nil {
		return err
	}
	fc.emitByteOp(CONST, idx)
	return nil
}

func (fc *fcomp) emitConstString(pos token.Pos, v string) error {
	idx, err := fc.addConstant(pos, Constant{Kind: ConstString, Str: v})
	if err != nil {
		return err
	}
	fc.emitByteOp(CONST, idx)
	return nil
}

func (fc *fcomp) emitConstBool(pos token.Pos, v bool) error {
	idx, err := fc.addConstant(pos, Constant{Kind: ConstBool, Bool: v})
	if err != nil {
		return err
	}
	fc.emitByteOp(CONST, idx)
	return nil
}

// --- statements ---

// block pushes a fresh scope frame, lowers each statement, and pops the
// frame; locals (and top-level globals) introduced within are not visible
// outside (§4.2, "Block {...}").
func (fc *fcomp) block(b *ast.Block) error {
	fc.scopes.push()
	defer fc.scopes.pop()
	for _, s := range b.Stmts {
		if err := fc.stmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (fc *fcomp) stmt(s ast.Stmt) error {
	switch s := s.(type) {
	case *ast.Block:
		return fc.block(s)
	case *ast.ExprStmt:
		return fc.expr(s.X)
	case *ast.VarDecl:
		return fc.varDecl(s)
	case *ast.Assign:
		return fc.assignStmt(s)
	case *ast.If:
		return fc.ifStmt(s)
	case *ast.While:
		return fc.whileStmt(s)
	case *ast.For:
		return fc.forStmt(s)
	case *ast.FuncDecl:
		return fc.funcDecl(s)
	case *ast.Return:
		return fc.returnStmt(s)
	default:
		pos, _ := s.Span()
		return errMalformedAST(pos, "unknown statement node")
	}
}

// varDecl lowers `var x = e`. At the outermost scope of `main` it binds a
// global; everywhere else (nested blocks, function bodies) it allocates a
// local slot. Either way it still participates in scope hygiene: a
// redeclaration in the same innermost scope is an error.
func (fc *fcomp) varDecl(s *ast.VarDecl) error {
	if err := fc.expr(s.Value); err != nil {
		return err
	}
	if fc.scopes.existsInInnermost(s.Name) {
		return errRedeclaration(s.Start, s.Name)
	}
	// main's outermost scope is depth 2: compileFunction pushes the
	// function-level scope and block pushes the body's own scope on top.
	if fc.isMain && fc.scopes.depth() == 2 {
		idx := fc.pc.globals.Define(s.Name)
		fc.scopes.declareGlobal(s.Name, idx)
		fc.emitByteOp(SET_GLOBAL, byte(idx))
		return nil
	}
	if len(fc.co.LocalNames) >= MaxLocals {
		return errTooManyLocals(s.Start)
	}
	slot := fc.allocLocal(s.Name)
	fc.scopes.declareLocal(s.Name, slot)
	fc.emitByteOp(SET_LOCAL, byte(slot))
	return nil
}

func (fc *fcomp) assignStmt(s *ast.Assign) error {
	switch target := s.Target.(type) {
	case *ast.Ident:
		if err := fc.expr(s.Value); err != nil {
			return err
		}
		return fc.store(target.Start, target.Name)
	case *ast.Index:
		if err := fc.expr(target.X); err != nil {
			return err
		}
		if err := fc.expr(target.I); err != nil {
			return err
		}
		if err := fc.expr(s.Value); err != nil {
			return err
		}
		fc.emitOp(ARRAY_SET)
		return nil
	default:
		pos, _ := s.Span()
		return errMalformedAST(pos, "invalid assignment target")
	}
}

// store resolves name innermost-out and emits the matching store
// instruction, consuming the value already on top of the stack.
func (fc *fcomp) store(pos token.Pos, name string) error {
	if r, ok := fc.scopes.resolve(name); ok {
		if r.global {
			fc.emitByteOp(SET_GLOBAL, byte(r.slot))
		} else {
			fc.emitByteOp(SET_LOCAL, byte(r.slot))
		}
		return nil
	}
	if idx, ok := fc.pc.globals.Resolve(name); ok {
		fc.emitByteOp(SET_GLOBAL, byte(idx))
		return nil
	}
	return errUndefinedVariable(pos, name)
}

// ifStmt lowers both the with-else and without-else forms of §4.2. The
// without-else form inserts NIL on the false path so that the two paths
// converging at end_addr leave matching stack depths.
func (fc *fcomp) ifStmt(s *ast.If) error {
	if err := fc.expr(s.Cond); err != nil {
		return err
	}
	elseJump := fc.emitJump(JUMP_IF_FALSE)
	if err := fc.stmt(s.Then); err != nil {
		return err
	}
	endJump := fc.emitJump(JUMP)
	fc.patchJump(elseJump)
	if s.Else != nil {
		if err := fc.stmt(s.Else); err != nil {
			return err
		}
	} else {
		fc.emitOp(NIL)
	}
	fc.patchJump(endJump)
	return nil
}

func (fc *fcomp) whileStmt(s *ast.While) error {
	loopStart := fc.here()
	if err := fc.expr(s.Cond); err != nil {
		return err
	}
	exitJump := fc.emitJump(JUMP_IF_FALSE)
	if err := fc.stmt(s.Body); err != nil {
		return err
	}
	fc.emitAbsJump(loopStart)
	fc.patchJump(exitJump)
	return nil
}

func (fc *fcomp) forStmt(s *ast.For) error {
	// A `for` header opens its own scope so that `for (var i=0; ...)`
	// shadows cleanly and `i` disappears once the loop is compiled.
	fc.scopes.push()
	defer fc.scopes.pop()

	if s.Init != nil {
		if err := fc.stmt(s.Init); err != nil {
			return err
		}
	}
	loopStart := fc.here()
	var exitJump int
	hasExit := s.Cond != nil
	if hasExit {
		if err := fc.expr(s.Cond); err != nil {
			return err
		}
		exitJump = fc.emitJump(JUMP_IF_FALSE)
	}
	if err := fc.stmt(s.Body); err != nil {
		return err
	}
	if s.Update != nil {
		if err := fc.stmt(s.Update); err != nil {
			return err
		}
	}
	fc.emitAbsJump(loopStart)
	if hasExit {
		fc.patchJump(exitJump)
	}
	return nil
}

// emitAbsJump emits an unconditional JUMP to an already-known absolute
// target, used for the back-edge of loops (no back-patching needed).
func (fc *fcomp) emitAbsJump(target int) {
	off := fc.emitJump(JUMP)
	fc.patchJumpTo(off, target)
}

func (fc *fcomp) patchJumpTo(placeholderOff, target int) {
	t := uint16(target)
	fc.co.Code[placeholderOff] = byte(t >> 8)
	fc.co.Code[placeholderOff+1] = byte(t)
}

// funcDecl compiles f's body into its own code object, then binds f as a
// global holding that code object as a CONST (§4.2). Functions see only
// their own parameters/locals and globals; they never capture an enclosing
// fcomp's scope stack.
func (fc *fcomp) funcDecl(s *ast.FuncDecl) error {
	// The global slot must exist before the body is compiled: a recursive
	// call to s.Name from inside its own body resolves through the
	// globals fallback in load/store (fc.pc.globals.Resolve), which only
	// succeeds once Define has run. Defining first and compiling second
	// makes recursive calls work in one pass; a call to a function declared
	// later in the source still fails with undefined-variable.
	idx := fc.pc.globals.Define(s.Name)
	if !fc.scopes.existsInInnermost(s.Name) {
		fc.scopes.declareGlobal(s.Name, idx)
	}
	callee, err := fc.pc.compileFunction(s.Name, s.Params, s.Body, false)
	if err != nil {
		return err
	}
	constIdx, err := fc.addConstant(s.Start, Constant{Kind: ConstCode, Code: callee})
	if err != nil {
		return err
	}
	fc.emitByteOp(CONST, constIdx)
	fc.emitByteOp(SET_GLOBAL, byte(idx))
	return nil
}

func (fc *fcomp) returnStmt(s *ast.Return) error {
	if s.Value != nil {
		if err := fc.expr(s.Value); err != nil {
			return err
		}
	} else {
		fc.emitOp(NIL)
	}
	fc.emitOp(RETURN)
	return nil
}

// --- expressions ---

func (fc *fcomp) expr(e ast.Expr) error {
	switch e := e.(type) {
	case *ast.NumberLit:
		return fc.emitConstNumber(e.Start, e.Value)
	case *ast.StringLit:
		return fc.emitConstString(e.Start, e.Value)
	case *ast.BoolLit:
		return fc.emitConstBool(e.Start, e.Value)
	case *ast.NilLit:
		fc.emitOp(NIL)
		return nil
	case *ast.Ident:
		return fc.load(e.Start, e.Name)
	case *ast.Unary:
		return fc.unary(e)
	case *ast.Binary:
		return fc.binary(e)
	case *ast.Logical:
		return fc.logical(e)
	case *ast.Call:
		return fc.call(e)
	case *ast.ArrayLit:
		return fc.arrayLit(e)
	case *ast.Index:
		if err := fc.expr(e.X); err != nil {
			return err
		}
		if err := fc.expr(e.I); err != nil {
			return err
		}
		fc.emitOp(ARRAY_GET)
		return nil
	default:
		pos, _ := e.Span()
		return errMalformedAST(pos, "unknown expression node")
	}
}

func (fc *fcomp) load(pos token.Pos, name string) error {
	if r, ok := fc.scopes.resolve(name); ok {
		if r.global {
			fc.emitByteOp(GET_GLOBAL, byte(r.slot))
		} else {
			fc.emitByteOp(GET_LOCAL, byte(r.slot))
		}
		return nil
	}
	if idx, ok := fc.pc.globals.Resolve(name); ok {
		fc.emitByteOp(GET_GLOBAL, byte(idx))
		return nil
	}
	return errUndefinedVariable(pos, name)
}

func (fc *fcomp) unary(e *ast.Unary) error {
	if e.Op != token.NOT {
		return errUnknownOperator(e.OpPos, e.Op.String())
	}
	if err := fc.expr(e.X); err != nil {
		return err
	}
	fc.emitOp(LOGICAL_NOT)
	return nil
}

func (fc *fcomp) binary(e *ast.Binary) error {
	if err := fc.expr(e.X); err != nil {
		return err
	}
	if err := fc.expr(e.Y); err != nil {
		return err
	}
	switch e.Op {
	case token.PLUS:
		fc.emitOp(ADD)
	case token.MINUS:
		fc.emitOp(SUB)
	case token.STAR:
		fc.emitOp(MUL)
	case token.SLASH:
		fc.emitOp(DIV)
	case token.LT:
		fc.emitByteOp(COMPARE, byte(CompareLT))
	case token.GT:
		fc.emitByteOp(COMPARE, byte(CompareGT))
	case token.EQL:
		fc.emitByteOp(COMPARE, byte(CompareEQ))
	case token.GE:
		fc.emitByteOp(COMPARE, byte(CompareGE))
	case token.LE:
		fc.emitByteOp(COMPARE, byte(CompareLE))
	case token.NEQ:
		fc.emitByteOp(COMPARE, byte(CompareNE))
	default:
		return errUnknownOperator(e.OpPos, e.Op.String())
	}
	return nil
}

// logical lowers `&&`/`||` without an intervening DUP: JUMP_IF_FALSE_OR_POP
// and JUMP_IF_TRUE_OR_POP already inspect the value already on the stack,
// leaving it untouched on the short-circuit path and popping it only when
// falling through to evaluate the right operand. An earlier draft of this
// sequence duplicated the left operand before the jump, which only made
// sense paired with an opcode that pops on both branches; §9 fixes the
// opcode to leave-on-jump/pop-on-fall-through, which makes that DUP both
// unnecessary and wrong (it would leave two values on the short-circuit
// path instead of one).
func (fc *fcomp) logical(e *ast.Logical) error {
	if err := fc.expr(e.X); err != nil {
		return err
	}
	var op Opcode
	switch e.Op {
	case token.AND:
		op = JUMP_IF_FALSE_OR_POP
	case token.OR:
		op = JUMP_IF_TRUE_OR_POP
	default:
		pos, _ := e.Span()
		return errUnknownOperator(pos, e.Op.String())
	}
	end := fc.emitJump(op)
	if err := fc.expr(e.Y); err != nil {
		return err
	}
	fc.patchJump(end)
	return nil
}

func (fc *fcomp) call(e *ast.Call) error {
	if err := fc.expr(e.Fn); err != nil {
		return err
	}
	for _, a := range e.Args {
		if err := fc.expr(a); err != nil {
			return err
		}
	}
	fc.emitByteOp(CALL, byte(len(e.Args)))
	return nil
}

// arrayLit lowers `[e0, e1, ...]`: ARRAY, then for each element DUP the
// array, push the index constant, lower the element, ARRAY_SET. The array
// itself is left on the stack as the literal's value.
func (fc *fcomp) arrayLit(e *ast.ArrayLit) error {
	fc.emitOp(ARRAY)
	for i, elem := range e.Elems {
		fc.emitOp(DUP)
		if err := fc.emitConstNumber(e.Start, float64(i)); err != nil {
			return err
		}
		if err := fc.expr(elem); err != nil {
			return err
		}
		fc.emitOp(ARRAY_SET)
	}
	return nil
}
