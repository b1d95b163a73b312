package ast

// Walk visits n and its descendants in pre-order. If fn returns false the
// children of that node are skipped.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range Children(n) {
		Walk(c, fn)
	}
}

// Children returns the direct child nodes of n in source order.
func Children(n Node) []Node {
	switch n := n.(type) {
	case *Root:
		return []Node{n.Stmt}
	case *Assignment:
		return []Node{n.Type, n.Value}
	case *FuncDef:
		return []Node{n.ReturnType, n.Args}
	case *FuncArg:
		return []Node{n.Type}
	case *ParenExpr:
		return []Node{n.Inner}
	case *BinaryExpr:
		return []Node{n.Left, n.Right}
	case interface{ children() []Node }:
		return n.children()
	default:
		return nil
	}
}
