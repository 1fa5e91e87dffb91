package ast

import "github.com/veld-lang/veld/lang/token"

// Expr is implemented by every expression node. Every expression lowers to
// code that leaves exactly one value on the VM's operand stack.
type Expr interface {
	Node
	exprNode()
}

type (
	// NumberLit is a numeric literal, always stored as a float64.
	NumberLit struct {
		Start token.Pos
		Value float64
		Raw   string
	}

	// StringLit is a double-quoted string literal.
	StringLit struct {
		Start token.Pos
		End   token.Pos
		Value string
	}

	// BoolLit is the `true` or `false` literal.
	BoolLit struct {
		Start token.Pos
		Value bool
	}

	// NilLit is the `nil` literal.
	NilLit struct {
		Start token.Pos
	}

	// Ident is a reference to a variable or function name.
	Ident struct {
		Start token.Pos
		Name  string
	}

	// Unary is a unary operator expression. The only supported operator is
	// logical not (!).
	Unary struct {
		OpPos token.Pos
		Op    token.Token
		X     Expr
	}

	// Binary is a binary arithmetic or comparison expression.
	Binary struct {
		OpPos token.Pos
		Op    token.Token
		X, Y  Expr
	}

	// Logical is a short-circuiting && or || expression.
	Logical struct {
		Op   token.Token
		X, Y Expr
	}

	// Call is a function call expression, f(args...).
	Call struct {
		Fn     Expr
		Args   []Expr
		RParen token.Pos
	}

	// ArrayLit is an array literal, [e0, e1, ...].
	ArrayLit struct {
		Start, End token.Pos
		Elems      []Expr
	}

	// Index is an array indexing expression, a[i].
	Index struct {
		X      Expr
		I      Expr
		RBrack token.Pos
	}
)

func (*NumberLit) exprNode() {}
func (*StringLit) exprNode() {}
func (*BoolLit) exprNode()   {}
func (*NilLit) exprNode()    {}
func (*Ident) exprNode()     {}
func (*Unary) exprNode()     {}
func (*Binary) exprNode()    {}
func (*Logical) exprNode()   {}
func (*Call) exprNode()      {}
func (*ArrayLit) exprNode()  {}
func (*Index) exprNode()     {}

func (n *NumberLit) Span() (token.Pos, token.Pos) { return n.Start, n.Start }
func (n *NumberLit) Walk(Visitor)                 {}

func (n *StringLit) Span() (token.Pos, token.Pos) { return n.Start, n.End }
func (n *StringLit) Walk(Visitor)                 {}

func (n *BoolLit) Span() (token.Pos, token.Pos) { return n.Start, n.Start }
func (n *BoolLit) Walk(Visitor)                 {}

func (n *NilLit) Span() (token.Pos, token.Pos) { return n.Start, n.Start }
func (n *NilLit) Walk(Visitor)                 {}

func (n *Ident) Span() (token.Pos, token.Pos) { return n.Start, n.Start }
func (n *Ident) Walk(Visitor)                 {}

func (n *Unary) Span() (token.Pos, token.Pos) {
	_, e := n.X.Span()
	return n.OpPos, e
}
func (n *Unary) Walk(v Visitor) { Walk(v, n.X) }

func (n *Binary) Span() (token.Pos, token.Pos) {
	s, _ := n.X.Span()
	_, e := n.Y.Span()
	return s, e
}
func (n *Binary) Walk(v Visitor) { Walk(v, n.X); Walk(v, n.Y) }

func (n *Logical) Span() (token.Pos, token.Pos) {
	s, _ := n.X.Span()
	_, e := n.Y.Span()
	return s, e
}
func (n *Logical) Walk(v Visitor) { Walk(v, n.X); Walk(v, n.Y) }

func (n *Call) Span() (token.Pos, token.Pos) {
	s, _ := n.Fn.Span()
	return s, n.RParen
}
func (n *Call) Walk(v Visitor) {
	Walk(v, n.Fn)
	for _, a := range n.Args {
		Walk(v, a)
	}
}

func (n *ArrayLit) Span() (token.Pos, token.Pos) { return n.Start, n.End }
func (n *ArrayLit) Walk(v Visitor) {
	for _, e := range n.Elems {
		Walk(v, e)
	}
}

func (n *Index) Span() (token.Pos, token.Pos) {
	s, _ := n.X.Span()
	return s, n.RBrack
}
func (n *Index) Walk(v Visitor) { Walk(v, n.X); Walk(v, n.I) }
