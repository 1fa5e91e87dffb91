package ast

import (
	"fmt"
	"io"
	"strings"

	"github.com/veld-lang/veld/lang/token"
)

// Printer writes a human-readable, indented dump of a Chunk, mostly useful
// for the CLI's `parse` debug command.
type Printer struct {
	Output io.Writer
	File   *token.File
	Pos    token.PosMode
}

// Print writes a dump of ch to p.Output.
func (p *Printer) Print(ch *Chunk) error {
	pw := &printWalk{p: p}
	if ch.Block != nil {
		pw.block(ch.Block, 0)
	}
	return pw.err
}

type printWalk struct {
	p   *Printer
	err error
}

func (pw *printWalk) line(depth int, format string, args ...interface{}) {
	if pw.err != nil {
		return
	}
	_, err := fmt.Fprintf(pw.p.Output, "%s%s\n", strings.Repeat("  ", depth), fmt.Sprintf(format, args...))
	if err != nil {
		pw.err = err
	}
}

func (pw *printWalk) pos(n Node) string {
	if pw.p.Pos == token.PosNone {
		return ""
	}
	s, _ := n.Span()
	return " @" + token.Format(pw.p.File, s, pw.p.Pos)
}

func (pw *printWalk) block(b *Block, depth int) {
	pw.line(depth, "block%s", pw.pos(b))
	for _, s := range b.Stmts {
		pw.stmt(s, depth+1)
	}
}

func (pw *printWalk) stmt(s Stmt, depth int) {
	switch s := s.(type) {
	case *ExprStmt:
		pw.line(depth, "expr-stmt%s", pw.pos(s))
		pw.expr(s.X, depth+1)
	case *VarDecl:
		pw.line(depth, "var %s%s", s.Name, pw.pos(s))
		pw.expr(s.Value, depth+1)
	case *Assign:
		pw.line(depth, "assign%s", pw.pos(s))
		pw.expr(s.Target, depth+1)
		pw.expr(s.Value, depth+1)
	case *If:
		pw.line(depth, "if%s", pw.pos(s))
		pw.expr(s.Cond, depth+1)
		pw.stmt(s.Then, depth+1)
		if s.Else != nil {
			pw.stmt(s.Else, depth+1)
		}
	case *While:
		pw.line(depth, "while%s", pw.pos(s))
		pw.expr(s.Cond, depth+1)
		pw.stmt(s.Body, depth+1)
	case *For:
		pw.line(depth, "for%s", pw.pos(s))
		if s.Init != nil {
			pw.stmt(s.Init, depth+1)
		}
		if s.Cond != nil {
			pw.expr(s.Cond, depth+1)
		}
		if s.Update != nil {
			pw.stmt(s.Update, depth+1)
		}
		pw.stmt(s.Body, depth+1)
	case *FuncDecl:
		pw.line(depth, "func %s(%s)%s", s.Name, strings.Join(s.Params, ", "), pw.pos(s))
		pw.block(s.Body, depth+1)
	case *Return:
		pw.line(depth, "return%s", pw.pos(s))
		if s.Value != nil {
			pw.expr(s.Value, depth+1)
		}
	case *Block:
		pw.block(s, depth)
	default:
		pw.line(depth, "<unknown stmt %T>", s)
	}
}

func (pw *printWalk) expr(e Expr, depth int) {
	switch e := e.(type) {
	case *NumberLit:
		pw.line(depth, "number %v%s", e.Value, pw.pos(e))
	case *StringLit:
		pw.line(depth, "string %q%s", e.Value, pw.pos(e))
	case *BoolLit:
		pw.line(depth, "bool %v%s", e.Value, pw.pos(e))
	case *NilLit:
		pw.line(depth, "nil%s", pw.pos(e))
	case *Ident:
		pw.line(depth, "ident %s%s", e.Name, pw.pos(e))
	case *Unary:
		pw.line(depth, "unary %s%s", e.Op, pw.pos(e))
		pw.expr(e.X, depth+1)
	case *Binary:
		pw.line(depth, "binary %s%s", e.Op, pw.pos(e))
		pw.expr(e.X, depth+1)
		pw.expr(e.Y, depth+1)
	case *Logical:
		pw.line(depth, "logical %s%s", e.Op, pw.pos(e))
		pw.expr(e.X, depth+1)
		pw.expr(e.Y, depth+1)
	case *Call:
		pw.line(depth, "call%s", pw.pos(e))
		pw.expr(e.Fn, depth+1)
		for _, a := range e.Args {
			pw.expr(a, depth+1)
		}
	case *ArrayLit:
		pw.line(depth, "array%s", pw.pos(e))
		for _, el := range e.Elems {
			pw.expr(el, depth+1)
		}
	case *Index:
		pw.line(depth, "index%s", pw.pos(e))
		pw.expr(e.X, depth+1)
		pw.expr(e.I, depth+1)
	default:
		pw.line(depth, "<unknown expr %T>", e)
	}
}
