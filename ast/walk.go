package ast

import "iter"

// Visitor defines the interface for AST traversal. If Visit returns nil,
// children of the node are not visited. Otherwise, the returned Visitor
// is used to visit children.
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses an AST in depth-first order. It starts by calling
// v.Visit(node); if the returned visitor w is not nil, Walk is invoked
// recursively with visitor w for each of the non-nil children of node.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}

	// Walk children based on node type
	switch n := node.(type) {
	case *Program:
		for _, stmt := range n.Stmts {
			Walk(v, stmt)
		}

	// Statements
	case *Var:
		if n.Pattern != nil {
			Walk(v, n.Pattern)
		}
		if n.Value != nil {
			Walk(v, n.Value)
		}
	case *Bind:
		if n.Pattern != nil {
			Walk(v, n.Pattern)
		}
		if n.Value != nil {
			Walk(v, n.Value)
		}
	case *Guard:
		if n.Cond != nil {
			Walk(v, n.Cond)
		}
	case *Return:
		if n.Value != nil {
			Walk(v, n.Value)
		}
	case *ExprStmt:
		if n.X != nil {
			Walk(v, n.X)
		}
	case *Block:
		for _, stmt := range n.Stmts {
			Walk(v, stmt)
		}
	case *Assign:
		if n.Name != nil {
			Walk(v, n.Name)
		}
		if n.Index != nil {
			Walk(v, n.Index)
		}
		if n.Value != nil {
			Walk(v, n.Value)
		}
	case *SetAttr:
		if n.X != nil {
			Walk(v, n.X)
		}
		if n.Value != nil {
			Walk(v, n.Value)
		}
	case *StructDecl:
		for _, f := range n.Fields {
			Walk(v, f)
		}

	// Error recovery nodes
	case *BadExpr:
		// No children
	case *BadStmt:
		// No children

	// Expressions
	case *Ident:
		// No children
	case *Int:
		// No children
	case *Float:
		// No children
	case *Bool:
		// No children
	case *Nil:
		// No children
	case *String:
		// No children
	case *Prefix:
		if n.X != nil {
			Walk(v, n.X)
		}
	case *Infix:
		if n.X != nil {
			Walk(v, n.X)
		}
		if n.Y != nil {
			Walk(v, n.Y)
		}
	case *If:
		if n.Cond != nil {
			Walk(v, n.Cond)
		}
		if n.Consequence != nil {
			Walk(v, n.Consequence)
		}
		if n.Alternative != nil {
			Walk(v, n.Alternative)
		}
	case *Call:
		if n.Fun != nil {
			Walk(v, n.Fun)
		}
		for _, arg := range n.Args {
			Walk(v, arg)
		}
	case *GetAttr:
		if n.X != nil {
			Walk(v, n.X)
		}
	case *ObjectCall:
		if n.X != nil {
			Walk(v, n.X)
		}
		if n.Call != nil {
			Walk(v, n.Call)
		}
	case *Index:
		if n.X != nil {
			Walk(v, n.X)
		}
		if n.Index != nil {
			Walk(v, n.Index)
		}
	case *Tuple:
		for _, el := range n.Elems {
			Walk(v, el)
		}
	case *Range:
		if n.Low != nil {
			Walk(v, n.Low)
		}
		if n.High != nil {
			Walk(v, n.High)
		}
	case *Comprehension:
		if n.Body != nil {
			Walk(v, n.Body)
		}
	case *List:
		for _, item := range n.Items {
			Walk(v, item)
		}
	case *Map:
		for _, pair := range n.Items {
			if pair.Key != nil {
				Walk(v, pair.Key)
			}
			Walk(v, pair.Value)
		}
	case *StructLit:
		if n.Name != nil {
			Walk(v, n.Name)
		}
		for _, f := range n.Fields {
			if f.Name != nil {
				Walk(v, f.Name)
			}
			if f.Value != nil {
				Walk(v, f.Value)
			}
		}
	case *Func:
		if n.Name != nil {
			Walk(v, n.Name)
		}
		for _, param := range n.Params {
			Walk(v, param.Name)
		}
		if n.Body != nil {
			Walk(v, n.Body)
		}

	// Patterns
	case *IdentPattern:
		// No children
	case *TuplePattern:
		for _, el := range n.Elems {
			Walk(v, el)
		}
	case *StructPattern:
		if n.Name != nil {
			Walk(v, n.Name)
		}
		for _, el := range n.Positional {
			Walk(v, el)
		}
		for _, f := range n.Fields {
			if f.Key != nil {
				Walk(v, f.Key)
			}
			if f.Value != nil {
				Walk(v, f.Value)
			}
		}
	}
}

// Inspect traverses an AST in depth-first order. It calls f(node) for each
// node; if f returns true, Inspect invokes f recursively for each of the
// non-nil children of node.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Preorder returns an iterator over all the nodes of the AST rooted at node
// in depth-first preorder.
func Preorder(root Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		ok := true
		Inspect(root, func(n Node) bool {
			if !ok {
				return false
			}
			if n == nil {
				return false
			}
			if !yield(n) {
				ok = false
				return false
			}
			return true
		})
	}
}
