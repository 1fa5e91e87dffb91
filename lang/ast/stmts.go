package ast

import "github.com/veld-lang/veld/lang/token"

// Stmt is implemented by every statement node. A well-formed statement
// leaves the VM's operand stack depth unchanged.
type Stmt interface {
	Node
	stmtNode()
}

type (
	// ExprStmt is an expression evaluated for its side effects; its value is
	// discarded.
	ExprStmt struct {
		X Expr
	}

	// VarDecl is `var name = expr;`.
	VarDecl struct {
		Start token.Pos
		Name  string
		Value Expr
	}

	// Assign is `target = expr;` where target is an Ident or an Index.
	Assign struct {
		Target Expr
		Value  Expr
	}

	// If is `if (cond) Then [else Else]`.
	If struct {
		Start      token.Pos
		Cond       Expr
		Then, Else Stmt
	}

	// While is `while (cond) Body`.
	While struct {
		Start token.Pos
		Cond  Expr
		Body  Stmt
	}

	// For is `for (init; cond; update) Body`. Init, Cond and Update may each be
	// nil.
	For struct {
		Start  token.Pos
		Init   Stmt
		Cond   Expr
		Update Stmt
		Body   Stmt
	}

	// FuncDecl is `func name(params...) { Body }`.
	FuncDecl struct {
		Start  token.Pos
		Name   string
		Params []string
		Body   *Block
	}

	// Return is `return expr?;`.
	Return struct {
		Start token.Pos
		Value Expr // nil if bare `return;`
	}
)

func (*ExprStmt) stmtNode() {}
func (*VarDecl) stmtNode()  {}
func (*Assign) stmtNode()   {}
func (*If) stmtNode()       {}
func (*While) stmtNode()    {}
func (*For) stmtNode()      {}
func (*FuncDecl) stmtNode() {}
func (*Return) stmtNode()   {}

func (n *ExprStmt) Span() (token.Pos, token.Pos) { return n.X.Span() }
func (n *ExprStmt) Walk(v Visitor)               { Walk(v, n.X) }

func (n *VarDecl) Span() (token.Pos, token.Pos) {
	_, e := n.Value.Span()
	return n.Start, e
}
func (n *VarDecl) Walk(v Visitor) { Walk(v, n.Value) }

func (n *Assign) Span() (token.Pos, token.Pos) {
	s, _ := n.Target.Span()
	_, e := n.Value.Span()
	return s, e
}
func (n *Assign) Walk(v Visitor) { Walk(v, n.Target); Walk(v, n.Value) }

func (n *If) Span() (token.Pos, token.Pos) {
	e := n.Start
	if n.Else != nil {
		_, e = n.Else.Span()
	} else {
		_, e = n.Then.Span()
	}
	return n.Start, e
}
func (n *If) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Then)
	if n.Else != nil {
		Walk(v, n.Else)
	}
}

func (n *While) Span() (token.Pos, token.Pos) {
	_, e := n.Body.Span()
	return n.Start, e
}
func (n *While) Walk(v Visitor) { Walk(v, n.Cond); Walk(v, n.Body) }

func (n *For) Span() (token.Pos, token.Pos) {
	_, e := n.Body.Span()
	return n.Start, e
}
func (n *For) Walk(v Visitor) {
	if n.Init != nil {
		Walk(v, n.Init)
	}
	if n.Cond != nil {
		Walk(v, n.Cond)
	}
	if n.Update != nil {
		Walk(v, n.Update)
	}
	Walk(v, n.Body)
}

func (n *FuncDecl) Span() (token.Pos, token.Pos) {
	_, e := n.Body.Span()
	return n.Start, e
}
func (n *FuncDecl) Walk(v Visitor) { Walk(v, n.Body) }

func (n *Return) Span() (token.Pos, token.Pos) {
	if n.Value != nil {
		_, e := n.Value.Span()
		return n.Start, e
	}
	return n.Start, n.Start
}
func (n *Return) Walk(v Visitor) {
	if n.Value != nil {
		Walk(v, n.Value)
	}
}
