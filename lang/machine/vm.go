package machine

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/veld-lang/veld/lang/compiler"
)

// Default capacities, ported from the reference engine's STACK_LIMIT and
// MAX_FRAMES constants (original_source/virtual_machine/vm.h).
const (
	DefaultStackLimit = 512
	DefaultMaxFrames  = 64
)

// VM is a stack machine executing compiled code objects against a shared
// value stack, a call-frame stack, and a globals table. It holds no
// reference to the compiler beyond the code objects and globals handed to
// it: once compiled, a program is opaque bytecode to the VM.
type VM struct {
	globals    *Globals
	stack      []Value
	stackLimit int
	frames     []*Frame
	maxFrames  int
	out        io.Writer
}

// Option configures a VM at construction time.
type Option func(*VM)

// WithStackLimit overrides DefaultStackLimit.
func WithStackLimit(n int) Option { return func(vm *VM) { vm.stackLimit = n } }

// WithMaxFrames overrides DefaultMaxFrames.
func WithMaxFrames(n int) Option { return func(vm *VM) { vm.maxFrames = n } }

// WithOutput sets the VM's output writer (default os.Stdout). The VM itself
// does not write to it; the print builtin writes to the writer passed to
// RegisterBuiltins.
func WithOutput(w io.Writer) Option { return func(vm *VM) { vm.out = w } }

// New constructs a VM sharing globals with whatever compiler.Globals it was
// built from. Builtins should already have been registered on globals
// before any code was compiled against it.
func New(globals *Globals, opts ...Option) *VM {
	vm := &VM{
		globals:    globals,
		stackLimit: DefaultStackLimit,
		maxFrames:  DefaultMaxFrames,
		out:        os.Stdout,
	}
	for _, opt := range opts {
		opt(vm)
	}
	vm.stack = make([]Value, 0, vm.stackLimit)
	vm.frames = make([]*Frame, 0, vm.maxFrames)
	return vm
}

func (vm *VM) push(v Value) error {
	if len(vm.stack) >= vm.stackLimit {
		return vm.fail(StackOverflow, "value stack exceeds %d entries", vm.stackLimit)
	}
	vm.stack = append(vm.stack, v)
	return nil
}

func (vm *VM) pop() (Value, error) {
	n := len(vm.stack)
	if n == 0 {
		return nil, vm.fail(StackUnderflow, "pop from an empty value stack")
	}
	v := vm.stack[n-1]
	vm.stack = vm.stack[:n-1]
	return v, nil
}

func (vm *VM) peek() (Value, error) {
	n := len(vm.stack)
	if n == 0 {
		return nil, vm.fail(StackUnderflow, "peek at an empty value stack")
	}
	return vm.stack[n-1], nil
}

func (vm *VM) frame() *Frame { return vm.frames[len(vm.frames)-1] }

func (vm *VM) fail(kind ErrorKind, format string, args ...any) error {
	name, offset := "<none>", 0
	if len(vm.frames) > 0 {
		fr := vm.frame()
		name, offset = fr.code.Name, fr.ip
	}
	return newRuntimeError(kind, name, offset, format, args...)
}

func (vm *VM) failOp(err error) error {
	oe, ok := err.(*opError)
	if !ok {
		return err
	}
	return vm.fail(oe.kind, "%s", oe.msg)
}

// Exec runs co to completion, starting a fresh call-frame stack over it,
// and returns the value left on top of the value stack at HALT (or the
// value returned from the root frame), or Nil if the stack ended empty.
func (vm *VM) Exec(co *compiler.CodeObject) (Value, error) {
	vm.globals.Sync()
	vm.stack = vm.stack[:0]
	vm.frames = vm.frames[:0]
	vm.frames = append(vm.frames, newFrame(co))
	return vm.run()
}

func (vm *VM) run() (Value, error) {
	for {
		fr := vm.frame()
		code := fr.code.Code
		if fr.ip >= len(code) {
			return nil, vm.fail(UndefinedOpcode, "ran off the end of %s", fr.code.Name)
		}
		op := compiler.Opcode(code[fr.ip])
		fr.ip++

		switch op {
		case compiler.HALT:
			return vm.peekOrNil(), nil

		case compiler.CONST:
			idx := vm.readByte(fr)
			v, err := vm.constant(fr, int(idx))
			if err != nil {
				return nil, err
			}
			if err := vm.push(v); err != nil {
				return nil, err
			}

		case compiler.NIL:
			if err := vm.push(Nil); err != nil {
				return nil, err
			}

		case compiler.ADD, compiler.SUB, compiler.MUL, compiler.DIV:
			if err := vm.binaryArith(op); err != nil {
				return nil, err
			}

		case compiler.COMPARE:
			kind := compiler.CompareKind(vm.readByte(fr))
			r, err := vm.pop()
			if err != nil {
				return nil, err
			}
			l, err := vm.pop()
			if err != nil {
				return nil, err
			}
			res, err := Compare(kind, l, r)
			if err != nil {
				return nil, vm.failOp(err)
			}
			if err := vm.push(Bool(res)); err != nil {
				return nil, err
			}

		case compiler.JUMP:
			fr.ip = vm.readAddr(fr)

		case compiler.JUMP_IF_FALSE:
			addr := vm.readAddr(fr)
			cond, err := vm.pop()
			if err != nil {
				return nil, err
			}
			if !Truth(cond) {
				fr.ip = addr
			}

		case compiler.JUMP_IF_FALSE_OR_POP:
			addr := vm.readAddr(fr)
			top, err := vm.peek()
			if err != nil {
				return nil, err
			}
			if !Truth(top) {
				fr.ip = addr
			} else {
				vm.pop() //nolint:errcheck // just peeked, cannot underflow
			}

		case compiler.JUMP_IF_TRUE_OR_POP:
			addr := vm.readAddr(fr)
			top, err := vm.peek()
			if err != nil {
				return nil, err
			}
			if Truth(top) {
				fr.ip = addr
			} else {
				vm.pop() //nolint:errcheck // just peeked, cannot underflow
			}

		case compiler.DUP:
			top, err := vm.peek()
			if err != nil {
				return nil, err
			}
			if err := vm.push(top); err != nil {
				return nil, err
			}

		case compiler.LOGICAL_NOT:
			v, err := vm.pop()
			if err != nil {
				return nil, err
			}
			if err := vm.push(Bool(!Truth(v))); err != nil {
				return nil, err
			}

		case compiler.GET_GLOBAL:
			idx := vm.readByte(fr)
			if err := vm.push(vm.globals.Get(uint32(idx))); err != nil {
				return nil, err
			}

		case compiler.SET_GLOBAL:
			idx := vm.readByte(fr)
			v, err := vm.pop()
			if err != nil {
				return nil, err
			}
			vm.globals.Set(uint32(idx), v)

		case compiler.GET_LOCAL:
			idx := vm.readByte(fr)
			if err := vm.push(fr.locals[idx]); err != nil {
				return nil, err
			}

		case compiler.SET_LOCAL:
			idx := vm.readByte(fr)
			v, err := vm.pop()
			if err != nil {
				return nil, err
			}
			fr.locals[idx] = v

		case compiler.ARRAY:
			if err := vm.push(NewArray()); err != nil {
				return nil, err
			}

		case compiler.ARRAY_GET:
			i, err := vm.pop()
			if err != nil {
				return nil, err
			}
			a, err := vm.pop()
			if err != nil {
				return nil, err
			}
			v, err := vm.arrayGet(a, i)
			if err != nil {
				return nil, err
			}
			if err := vm.push(v); err != nil {
				return nil, err
			}

		case compiler.ARRAY_SET:
			v, err := vm.pop()
			if err != nil {
				return nil, err
			}
			i, err := vm.pop()
			if err != nil {
				return nil, err
			}
			a, err := vm.pop()
			if err != nil {
				return nil, err
			}
			arr, err := vm.arraySet(a, i, v)
			if err != nil {
				return nil, err
			}
			if err := vm.push(arr); err != nil {
				return nil, err
			}

		case compiler.CALL:
			argc := int(vm.readByte(fr))
			if err := vm.call(argc); err != nil {
				return nil, err
			}

		case compiler.RETURN:
			done, result, err := vm.ret()
			if err != nil {
				return nil, err
			}
			if done {
				return result, nil
			}

		default:
			return nil, vm.fail(UndefinedOpcode, "opcode %d is not defined", op)
		}
	}
}

func (vm *VM) peekOrNil() Value {
	if len(vm.stack) == 0 {
		return Nil
	}
	return vm.stack[len(vm.stack)-1]
}

func (vm *VM) readByte(fr *Frame) byte {
	b := fr.code.Code[fr.ip]
	fr.ip++
	return b
}

func (vm *VM) readAddr(fr *Frame) int {
	addr := binary.BigEndian.Uint16(fr.code.Code[fr.ip : fr.ip+2])
	fr.ip += 2
	return int(addr)
}

func (vm *VM) constant(fr *Frame, idx int) (Value, error) {
	c := fr.code.Constants[idx]
	switch c.Kind {
	case compiler.ConstNumber:
		return Number(c.Number), nil
	case compiler.ConstString:
		return Str(c.Str), nil
	case compiler.ConstBool:
		return Bool(c.Bool), nil
	case compiler.ConstCode:
		return NewCode(c.Code), nil
	default:
		return nil, vm.fail(UndefinedOpcode, "unknown constant kind %d", c.Kind)
	}
}

func (vm *VM) binaryArith(op compiler.Opcode) error {
	r, err := vm.pop()
	if err != nil {
		return err
	}
	l, err := vm.pop()
	if err != nil {
		return err
	}
	var result Value
	switch op {
	case compiler.ADD:
		result, err = Add(l, r)
	case compiler.SUB:
		result, err = Sub(l, r)
	case compiler.MUL:
		result, err = Mul(l, r)
	case compiler.DIV:
		result, err = Div(l, r)
	}
	if err != nil {
		return vm.failOp(err)
	}
	return vm.push(result)
}

func (vm *VM) arrayGet(a, i Value) (Value, error) {
	arr, ok := a.(*Array)
	if !ok {
		return nil, vm.fail(TypeError, "index into non-array (%s)", a.Type())
	}
	idx, ok := i.(Number)
	if !ok {
		return nil, vm.fail(TypeError, "array index must be a number, got %s", i.Type())
	}
	v, ok := arr.Get(int(idx))
	if !ok {
		return nil, vm.fail(IndexOutOfRange, "index %v out of range for array of length %d", idx, arr.Len())
	}
	return v, nil
}

func (vm *VM) arraySet(a, i, v Value) (Value, error) {
	arr, ok := a.(*Array)
	if !ok {
		return nil, vm.fail(TypeError, "index into non-array (%s)", a.Type())
	}
	idx, ok := i.(Number)
	if !ok {
		return nil, vm.fail(TypeError, "array index must be a number, got %s", i.Type())
	}
	if !arr.Set(int(idx), v) {
		return nil, vm.fail(IndexOutOfRange, "index %v out of range for array of length %d", idx, arr.Len())
	}
	return arr, nil
}

// call implements the CALL protocol of §4.3: pop argc arguments and the
// callable, then either invoke a Native directly or push a new Frame over
// a Code value.
func (vm *VM) call(argc int) error {
	n := len(vm.stack)
	if n < argc+1 {
		return vm.fail(StackUnderflow, "call expects %d arguments and a callable", argc)
	}
	args := append([]Value(nil), vm.stack[n-argc:n]...)
	callee := vm.stack[n-argc-1]
	vm.stack = vm.stack[:n-argc-1]

	switch c := callee.(type) {
	case *Native:
		result, err := c.Call(args)
		if err != nil {
			return vm.fail(TypeError, "%s", err)
		}
		return vm.push(result)
	case *Code:
		if len(vm.frames) >= vm.maxFrames {
			return vm.fail(FrameOverflow, "call depth exceeds %d frames", vm.maxFrames)
		}
		co := c.CodeObject()
		fr := newFrame(co)
		for i := 0; i < co.NumParams && i < len(args); i++ {
			fr.locals[i] = args[i]
		}
		vm.frames = append(vm.frames, fr)
		return nil
	default:
		return vm.fail(NotCallable, "value of type %s is not callable", callee.Type())
	}
}

// ret implements the RETURN protocol of §4.3: pop the return value and the
// current frame; if no frame remains, that value is exec's result, else it
// is pushed onto the caller's stack and the caller resumes.
func (vm *VM) ret() (done bool, result Value, err error) {
	v, err := vm.pop()
	if err != nil {
		return false, nil, err
	}
	vm.frames = vm.frames[:len(vm.frames)-1]
	if len(vm.frames) == 0 {
		return true, v, nil
	}
	if err := vm.push(v); err != nil {
		return false, nil, err
	}
	return false, nil, nil
}
