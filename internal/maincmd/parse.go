package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/veld-lang/veld/lang/ast"
	"github.com/veld-lang/veld/lang/parser"
	"github.com/veld-lang/veld/lang/token"
)

// Parse runs the parser phase over each file and prints the resulting
// abstract syntax tree.
func (c *Cmd) Parse(ctx context.Context, stdio mainer.Stdio, args []string) error {
	for _, file := range args {
		if err := parseFile(stdio, file); err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			return err
		}
	}
	return nil
}

func parseFile(stdio mainer.Stdio, file string) error {
	src, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	ch, err := parser.Parse(file, string(src))
	if err != nil {
		return err
	}
	p := ast.Printer{
		Output: stdio.Stdout,
		File:   token.NewFile(file),
		Pos:    token.PosLong,
	}
	return p.Print(ch)
}
