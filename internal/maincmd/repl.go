package maincmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"
	"github.com/mna/mainer"

	"github.com/veld-lang/veld/internal/config"
	"github.com/veld-lang/veld/lang/compiler"
	"github.com/veld-lang/veld/lang/machine"
	"github.com/veld-lang/veld/lang/parser"
)

// Repl starts an interactive session, registered as a google/subcommands
// command (in the style of the informatter-nilan example's cmd_repl.go)
// even though it's reached through the same mainer dispatch as every
// other veld subcommand: one line at a time, compiled and executed
// against globals and a VM that persist across the session, so a `var`
// or `func` declared on one line is visible on the next.
func (c *Cmd) Repl(ctx context.Context, stdio mainer.Stdio, args []string) error {
	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return err
	}

	cmdr := subcommands.NewCommander(flag.NewFlagSet("veld-repl", flag.ContinueOnError), "repl")
	session := &replCmd{stdio: stdio, cfg: cfg}
	cmdr.Register(session, "")
	if status := cmdr.Execute(ctx); status != subcommands.ExitSuccess {
		return fmt.Errorf("repl exited with status %v", status)
	}
	return nil
}

type replCmd struct {
	stdio mainer.Stdio
	cfg   config.VM
}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "start an interactive read-eval-print loop" }
func (*replCmd) Usage() string    { return "repl:\n  Start an interactive veld session.\n" }
func (*replCmd) SetFlags(*flag.FlagSet) {}

func (r *replCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "veld> ",
		Stdin:           io.NopCloser(r.stdio.Stdin),
		Stdout:          r.stdio.Stdout,
		Stderr:          r.stdio.Stderr,
		HistoryLimit:    1000,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintln(r.stdio.Stderr, err)
		return subcommands.ExitFailure
	}
	defer rl.Close()

	globals := compiler.NewGlobals()
	rt := machine.NewGlobals(globals)
	machine.RegisterBuiltins(rt, r.stdio.Stdout, r.cfg.RandomSeed)
	vm := machine.New(rt, r.cfg.Options()...)

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return subcommands.ExitSuccess
		}
		if err != nil {
			fmt.Fprintln(r.stdio.Stderr, err)
			return subcommands.ExitFailure
		}
		if line == "" {
			continue
		}

		ch, err := parser.Parse("repl", line)
		if err != nil {
			fmt.Fprintln(r.stdio.Stderr, err)
			continue
		}
		co, err := compiler.Compile(globals, ch)
		if err != nil {
			fmt.Fprintln(r.stdio.Stderr, err)
			continue
		}
		rt.Sync()
		v, err := vm.Exec(co)
		if err != nil {
			fmt.Fprintln(r.stdio.Stderr, err)
			continue
		}
		fmt.Fprintln(r.stdio.Stdout, v.String())
	}
}
