package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/veld-lang/veld/lang/scanner"
	"github.com/veld-lang/veld/lang/token"
)

// Tokenize runs just the scanner phase over each file and prints the
// resulting token stream, one token per line.
func (c *Cmd) Tokenize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	for _, file := range args {
		if err := tokenizeFile(stdio, file); err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			return err
		}
	}
	return nil
}

func tokenizeFile(stdio mainer.Stdio, file string) error {
	src, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	f := token.NewFile(file)
	sc := scanner.New(string(src))
	for {
		tok, err := sc.Next()
		if err != nil {
			return err
		}
		fmt.Fprintf(stdio.Stdout, "%s: %s", token.Format(f, tok.Pos, token.PosLong), tok.Kind)
		if tok.Lit != "" {
			fmt.Fprintf(stdio.Stdout, " %s", tok.Lit)
		}
		fmt.Fprintln(stdio.Stdout)
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}
