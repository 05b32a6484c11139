package ast

// Walk visits node and its descendants in pre-order.  If fn returns false the
// children of the current node are skipped.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}
	switch n := node.(type) {
	case *Root:
		for _, decl := range n.Declarations {
			Walk(decl, fn)
		}
	case *Block:
		for _, stmt := range n.Statements {
			Walk(stmt, fn)
		}
	case *FunDeclaration:
		for _, param := range n.Parameters {
			Walk(param, fn)
		}
		if n.ReturnType != nil {
			Walk(n.ReturnType, fn)
		}
		if n.Body != nil {
			Walk(n.Body, fn)
		}
	case *Parameter:
		if n.Type != nil {
			Walk(n.Type, fn)
		}
	case *VarDeclaration:
		if n.Type != nil {
			Walk(n.Type, fn)
		}
		if n.Initializer != nil {
			Walk(n.Initializer, fn)
		}
	case *StructDeclaration:
		for _, field := range n.Fields {
			Walk(field, fn)
		}
	case *FieldDeclaration:
		if n.Type != nil {
			Walk(n.Type, fn)
		}
	case *Call:
		for _, arg := range n.ArgTypes {
			Walk(arg, fn)
		}
	}
}
