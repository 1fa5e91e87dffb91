// Package parser implements a recursive-descent parser that turns a token
// stream from lang/scanner into the lang/ast tree consumed by the compiler.
// Like the scanner, it is a supporting collaborator rather than part of the
// compiler/VM core.
package parser

import (
	"fmt"

	"github.com/veld-lang/veld/lang/ast"
	"github.com/veld-lang/veld/lang/scanner"
	"github.com/veld-lang/veld/lang/token"
)

// A ParseError describes a syntax error at a source position.
type ParseError struct {
	Pos token.Pos
	Msg string
}

func (e *ParseError) Error() string {
	l, c := e.Pos.LineCol()
	return fmt.Sprintf("%d:%d: %s", l, c, e.Msg)
}

// Parser holds the state of one parse.
type Parser struct {
	sc   *scanner.Scanner
	tok  scanner.Tok
	name string
}

// Parse parses src and returns the resulting Chunk, whose Name is set to
// name. Parse errors report line:col only, without the name.
func Parse(name, src string) (*ast.Chunk, error) {
	p := &Parser{sc: scanner.New(src), name: name}
	if err := p.next(); err != nil {
		return nil, err
	}
	block, err := p.stmtsUntil(token.EOF)
	if err != nil {
		return nil, err
	}
	return &ast.Chunk{Name: name, Block: block, EOF: p.tok.Pos}, nil
}

func (p *Parser) next() error {
	tok, err := p.sc.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *Parser) at(kind token.Token) bool { return p.tok.Kind == kind }

func (p *Parser) expect(kind token.Token) (scanner.Tok, error) {
	if p.tok.Kind != kind {
		return scanner.Tok{}, &ParseError{Pos: p.tok.Pos, Msg: fmt.Sprintf("expected %s, got %s", kind, p.tok.Kind)}
	}
	tok := p.tok
	return tok, p.next()
}

func (p *Parser) stmtsUntil(end token.Token) (*ast.Block, error) {
	start := p.tok.Pos
	b := &ast.Block{Start: start}
	for !p.at(end) {
		s, err := p.statement()
		if err != nil {
			return nil, err
		}
		b.Stmts = append(b.Stmts, s)
	}
	b.End = p.tok.Pos
	return b, nil
}

func (p *Parser) block() (*ast.Block, error) {
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	b, err := p.stmtsUntil(token.RBRACE)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return b, nil
}

// blockOrStmt parses an `if`/`while`/`for` body: either a braced block or a
// single statement without braces. A single statement is returned as is, not
// wrapped in a Block, so it does not open a scope of its own.
func (p *Parser) blockOrStmt() (ast.Stmt, error) {
	if p.at(token.LBRACE) {
		return p.block()
	}
	return p.statement()
}

func (p *Parser) statement() (ast.Stmt, error) {
	switch p.tok.Kind {
	case token.LBRACE:
		return p.block()
	case token.VAR:
		return p.varDecl()
	case token.IF:
		return p.ifStmt()
	case token.WHILE:
		return p.whileStmt()
	case token.FOR:
		return p.forStmt()
	case token.FUNC:
		return p.funcDecl()
	case token.RETURN:
		return p.returnStmt()
	default:
		return p.simpleStmt()
	}
}

func (p *Parser) varDecl() (ast.Stmt, error) {
	start := p.tok.Pos
	if _, err := p.next(); err != nil { // consume 'var'
		return nil, err
	}
	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ASSIGN); err != nil {
		return nil, err
	}
	val, err := p.expr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMI); err != nil {
		return nil, err
	}
	return &ast.VarDecl{Start: start, Name: name.Lit, Value: val}, nil
}

func (p *Parser) ifStmt() (ast.Stmt, error) {
	start := p.tok.Pos
	if err := p.next(); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.expr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	then, err := p.blockOrStmt()
	if err != nil {
		return nil, err
	}
	n := &ast.If{Start: start, Cond: cond, Then: then}
	if p.at(token.ELSE) {
		if err := p.next(); err != nil {
			return nil, err
		}
		// Dangling else binds to the nearest unmatched `if`: since this is
		// plain recursive descent, the innermost open `if` is always the one
		// currently being parsed, so a following `else` always attaches here.
		els, err := p.blockOrStmt()
		if err != nil {
			return nil, err
		}
		n.Else = els
	}
	return n, nil
}

func (p *Parser) whileStmt() (ast.Stmt, error) {
	start := p.tok.Pos
	if err := p.next(); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.expr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.blockOrStmt()
	if err != nil {
		return nil, err
	}
	return &ast.While{Start: start, Cond: cond, Body: body}, nil
}

func (p *Parser) forStmt() (ast.Stmt, error) {
	start := p.tok.Pos
	if err := p.next(); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}

	var init ast.Stmt
	if !p.at(token.SEMI) {
		var err error
		init, err = p.forClauseStmt()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.SEMI); err != nil {
		return nil, err
	}

	var cond ast.Expr
	if !p.at(token.SEMI) {
		var err error
		cond, err = p.expr()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.SEMI); err != nil {
		return nil, err
	}

	var update ast.Stmt
	if !p.at(token.RPAREN) {
		var err error
		update, err = p.forClauseStmt()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}

	body, err := p.blockOrStmt()
	if err != nil {
		return nil, err
	}
	return &ast.For{Start: start, Init: init, Cond: cond, Update: update, Body: body}, nil
}

// forClauseStmt parses the init/update clauses of a for loop, which are
// var-decls or assignment/expression statements without a trailing semicolon.
func (p *Parser) forClauseStmt() (ast.Stmt, error) {
	if p.at(token.VAR) {
		start := p.tok.Pos
		if err := p.next(); err != nil {
			return nil, err
		}
		name, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.ASSIGN); err != nil {
			return nil, err
		}
		val, err := p.expr()
		if err != nil {
			return nil, err
		}
		return &ast.VarDecl{Start: start, Name: name.Lit, Value: val}, nil
	}
	return p.assignOrExprStmtNoSemi()
}

func (p *Parser) funcDecl() (ast.Stmt, error) {
	start := p.tok.Pos
	if err := p.next(); err != nil {
		return nil, err
	}
	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var params []string
	for !p.at(token.RPAREN) {
		if len(params) > 0 {
			if _, err := p.expect(token.COMMA); err != nil {
				return nil, err
			}
		}
		pn, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		params = append(params, pn.Lit)
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &ast.FuncDecl{Start: start, Name: name.Lit, Params: params, Body: body}, nil
}

func (p *Parser) returnStmt() (ast.Stmt, error) {
	start := p.tok.Pos
	if err := p.next(); err != nil {
		return nil, err
	}
	n := &ast.Return{Start: start}
	if !p.at(token.SEMI) {
		val, err := p.expr()
		if err != nil {
			return nil, err
		}
		n.Value = val
	}
	if _, err := p.expect(token.SEMI); err != nil {
		return nil, err
	}
	return n, nil
}

// simpleStmt parses `target = expr;` or `expr;`.
func (p *Parser) simpleStmt() (ast.Stmt, error) {
	s, err := p.assignOrExprStmtNoSemi()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMI); err != nil {
		return nil, err
	}
	return s, nil
}

func (p *Parser) assignOrExprStmtNoSemi() (ast.Stmt, error) {
	e, err := p.expr()
	if err != nil {
		return nil, err
	}
	if p.at(token.ASSIGN) {
		if err := p.next(); err != nil {
			return nil, err
		}
		switch e.(type) {
		case *ast.Ident, *ast.Index:
		default:
			return nil, &ParseError{Pos: p.tok.Pos, Msg: "invalid assignment target"}
		}
		val, err := p.expr()
		if err != nil {
			return nil, err
		}
		return &ast.Assign{Target: e, Value: val}, nil
	}
	return &ast.ExprStmt{X: e}, nil
}
