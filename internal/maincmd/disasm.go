package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/veld-lang/veld/lang/compiler"
	"github.com/veld-lang/veld/lang/disasm"
	"github.com/veld-lang/veld/lang/parser"
)

// Disasm compiles each file and prints its bytecode disassembly without
// executing it, the same "compile but don't run" path the reference
// engine's own standalone compiler driver offered.
func (c *Cmd) Disasm(ctx context.Context, stdio mainer.Stdio, args []string) error {
	for _, file := range args {
		if err := disasmFile(stdio, file, c.Verbose); err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			return err
		}
	}
	return nil
}

func disasmFile(stdio mainer.Stdio, file string, verbose bool) error {
	src, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	ch, err := parser.Parse(file, string(src))
	if err != nil {
		return err
	}
	globals := compiler.NewGlobals()
	co, err := compiler.Compile(globals, ch)
	if err != nil {
		return err
	}
	if err := disasm.Code(stdio.Stdout, co); err != nil {
		return err
	}
	if verbose {
		disasm.Constants(stdio.Stdout, co)
		if err := disasm.Globals(stdio.Stdout, globals); err != nil {
			return err
		}
	}
	return nil
}
