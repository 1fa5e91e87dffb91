package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/veld-lang/veld/internal/config"
	"github.com/veld-lang/veld/lang/compiler"
	"github.com/veld-lang/veld/lang/machine"
	"github.com/veld-lang/veld/lang/parser"
)

// Run compiles and executes each file in turn, printing the value left on
// top of the stack when each one halts.
func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	for _, file := range args {
		if err := runFile(stdio, cfg, file); err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			return err
		}
	}
	return nil
}

func runFile(stdio mainer.Stdio, cfg config.VM, file string) error {
	src, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	ch, err := parser.Parse(file, string(src))
	if err != nil {
		return err
	}

	globals := compiler.NewGlobals()
	rt := machine.NewGlobals(globals)
	machine.RegisterBuiltins(rt, stdio.Stdout, cfg.RandomSeed)

	co, err := compiler.Compile(globals, ch)
	if err != nil {
		return err
	}
	rt.Sync()

	opts := append(cfg.Options(), machine.WithOutput(stdio.Stdout))
	vm := machine.New(rt, opts...)
	v, err := vm.Exec(co)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdio.Stdout, v.String())
	return nil
}
