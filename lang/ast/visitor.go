package ast

// VisitDirection indicates whether a call to Visit enters or exits a node.
type VisitDirection int

const (
	VisitEnter VisitDirection = iota
	VisitExit
)

// Visitor defines the method to implement to walk an AST with Walk. A node's
// children can be skipped by returning a nil Visitor from Visit.
type Visitor interface {
	Visit(n Node, dir VisitDirection) (w Visitor)
}

// VisitorFunc is a function implementing the Visitor interface, called only
// on VisitEnter.
type VisitorFunc func(n Node) bool

func (f VisitorFunc) Visit(n Node, dir VisitDirection) Visitor {
	if dir == VisitExit {
		return nil
	}
	if f(n) {
		return f
	}
	return nil
}

// Walk visits node and its descendants with v, calling Visit on enter and
// exit of each node.
func Walk(v Visitor, node Node) {
	if node == nil {
		return
	}
	if v = v.Visit(node, VisitEnter); v == nil {
		return
	}
	node.Walk(v)
	v.Visit(node, VisitExit)
}
