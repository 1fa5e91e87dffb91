// Package disasm renders a compiled code object as human-readable text,
// following the original engine's disassembler in showing decoded operand
// values rather than bare opcode mnemonics.
package disasm

import (
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"golang.org/x/exp/slices"

	"github.com/veld-lang/veld/lang/compiler"
)

// Code writes co's disassembly to w, and recurses into every nested code
// object reachable through its constant pool (one function's bytecode
// reads as one contiguous listing, not a forest the caller has to chase).
func Code(w io.Writer, co *compiler.CodeObject) error {
	return code(w, co, map[*compiler.CodeObject]bool{})
}

func code(w io.Writer, co *compiler.CodeObject, seen map[*compiler.CodeObject]bool) error {
	if seen[co] {
		return nil
	}
	seen[co] = true

	if _, err := fmt.Fprintf(w, "== %s ==\n", co.Name); err != nil {
		return err
	}
	for _, inst := range compiler.Decode(co.Code) {
		if err := compiler.WriteInstruction(w, co, inst); err != nil {
			return err
		}
	}

	var nested []*compiler.CodeObject
	for _, c := range co.Constants {
		if c.Kind == compiler.ConstCode {
			nested = append(nested, c.Code)
		}
	}
	for _, n := range nested {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		if err := code(w, n, seen); err != nil {
			return err
		}
	}
	return nil
}

// Constants writes a verbose dump of co's constant pool using go-spew, for
// the `disasm --verbose` CLI flag: CONST operands alone don't show a nested code
// object's own constants, locals, or the rest of its shape.
func Constants(w io.Writer, co *compiler.CodeObject) {
	cfg := spew.ConfigState{Indent: "  ", DisableMethods: true}
	cfg.Fdump(w, co.Constants)
}

// Globals writes the program's global-slot table in deterministic,
// name-sorted order, independent of definition order (which reflects
// nothing but the order declarations happened to appear in the source).
func Globals(w io.Writer, g *compiler.Globals) error {
	names := append([]string(nil), g.Names()...)
	slices.Sort(names)
	for _, name := range names {
		idx, _ := g.Resolve(name)
		if _, err := fmt.Fprintf(w, "%4d  %s\n", idx, name); err != nil {
			return err
		}
	}
	return nil
}
