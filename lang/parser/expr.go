package parser

import (
	"fmt"

	"github.com/veld-lang/veld/lang/ast"
	"github.com/veld-lang/veld/lang/token"
)

// Operator precedence, lowest to highest.
const (
	precLowest = iota
	precOr
	precAnd
	precEquality   // == !=
	precComparison // < <= > >=
	precAdditive   // + -
	precMultiplicative
	precUnary
)

func precedenceOf(tok token.Token) int {
	switch tok {
	case token.OR:
		return precOr
	case token.AND:
		return precAnd
	case token.EQL, token.NEQ:
		return precEquality
	case token.LT, token.LE, token.GT, token.GE:
		return precComparison
	case token.PLUS, token.MINUS:
		return precAdditive
	case token.STAR, token.SLASH:
		return precMultiplicative
	default:
		return precLowest
	}
}

func (p *Parser) expr() (ast.Expr, error) {
	return p.binary(precLowest)
}

func (p *Parser) binary(minPrec int) (ast.Expr, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		opTok := p.tok.Kind
		prec := precedenceOf(opTok)
		if prec == precLowest || prec < minPrec {
			return left, nil
		}
		opPos := p.tok.Pos
		if err := p.next(); err != nil {
			return nil, err
		}
		right, err := p.binary(prec + 1)
		if err != nil {
			return nil, err
		}
		if opTok == token.AND || opTok == token.OR {
			left = &ast.Logical{Op: opTok, X: left, Y: right}
		} else {
			left = &ast.Binary{OpPos: opPos, Op: opTok, X: left, Y: right}
		}
	}
}

func (p *Parser) unary() (ast.Expr, error) {
	if p.tok.Kind == token.NOT || p.tok.Kind == token.MINUS {
		op := p.tok.Kind
		pos := p.tok.Pos
		if err := p.next(); err != nil {
			return nil, err
		}
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		if op == token.MINUS {
			// Desugar unary minus to `0 - x`, there is no dedicated negation
			// opcode in the instruction set.
			return &ast.Binary{OpPos: pos, Op: token.MINUS, X: &ast.NumberLit{Start: pos, Value: 0}, Y: x}, nil
		}
		return &ast.Unary{OpPos: pos, Op: op, X: x}, nil
	}
	return p.postfix()
}

func (p *Parser) postfix() (ast.Expr, error) {
	e, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.tok.Kind {
		case token.LPAREN:
			if err := p.next(); err != nil {
				return nil, err
			}
			var args []ast.Expr
			for !p.at(token.RPAREN) {
				if len(args) > 0 {
					if _, err := p.expect(token.COMMA); err != nil {
						return nil, err
					}
				}
				a, err := p.expr()
				if err != nil {
					return nil, err
				}
				args = append(args, a)
			}
			rparen, err := p.expect(token.RPAREN)
			if err != nil {
				return nil, err
			}
			e = &ast.Call{Fn: e, Args: args, RParen: rparen.Pos}
		case token.LBRACK:
			if err := p.next(); err != nil {
				return nil, err
			}
			idx, err := p.expr()
			if err != nil {
				return nil, err
			}
			rbrack, err := p.expect(token.RBRACK)
			if err != nil {
				return nil, err
			}
			e = &ast.Index{X: e, I: idx, RBrack: rbrack.Pos}
		default:
			return e, nil
		}
	}
}

func (p *Parser) primary() (ast.Expr, error) {
	tok := p.tok
	switch tok.Kind {
	case token.NUMBER:
		if err := p.next(); err != nil {
			return nil, err
		}
		return &ast.NumberLit{Start: tok.Pos, Value: tok.Number, Raw: tok.Lit}, nil
	case token.STRING:
		if err := p.next(); err != nil {
			return nil, err
		}
		return &ast.StringLit{Start: tok.Pos, End: tok.Pos, Value: tok.Lit}, nil
	case token.TRUE, token.FALSE:
		if err := p.next(); err != nil {
			return nil, err
		}
		return &ast.BoolLit{Start: tok.Pos, Value: tok.Kind == token.TRUE}, nil
	case token.NIL:
		if err := p.next(); err != nil {
			return nil, err
		}
		return &ast.NilLit{Start: tok.Pos}, nil
	case token.IDENT:
		if err := p.next(); err != nil {
			return nil, err
		}
		return &ast.Ident{Start: tok.Pos, Name: tok.Lit}, nil
	case token.LPAREN:
		if err := p.next(); err != nil {
			return nil, err
		}
		e, err := p.expr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return e, nil
	case token.LBRACK:
		start := tok.Pos
		if err := p.next(); err != nil {
			return nil, err
		}
		var elems []ast.Expr
		for !p.at(token.RBRACK) {
			if len(elems) > 0 {
				if _, err := p.expect(token.COMMA); err != nil {
					return nil, err
				}
			}
			e, err := p.expr()
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
		}
		end, err := p.expect(token.RBRACK)
		if err != nil {
			return nil, err
		}
		return &ast.ArrayLit{Start: start, End: end.Pos, Elems: elems}, nil
	default:
		return nil, &ParseError{Pos: tok.Pos, Msg: fmt.Sprintf("unexpected token %s", tok.Kind)}
	}
}
