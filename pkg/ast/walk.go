package ast

// Inspect traverses the tree rooted at node depth-first, calling f for each
// node. Children are skipped when f returns false.
func Inspect(node Node, f func(Node) bool) {
	if node == nil || !f(node) {
		return
	}
	for _, child := range children(node) {
		Inspect(child, f)
	}
}

func children(node Node) []Node {
	switch n := node.(type) {
	case *Program:
		return []Node{n.Body}
	case *Stmts:
		out := make([]Node, 0, len(n.Body))
		for _, stmt := range n.Body {
			out = append(out, stmt)
		}
		return out
	case *UnaryExpr:
		return []Node{n.Operand}
	case *BinaryExpr:
		return []Node{n.Left, n.Right}
	case *CallExpr:
		return []Node{n.Callee, n.Args}
	case *Arguments:
		out := make([]Node, 0, len(n.Values))
		for _, v := range n.Values {
			out = append(out, v)
		}
		return out
	case *MemberExpr:
		return []Node{n.Object, n.Index}
	case *ListLiteral:
		out := make([]Node, 0, len(n.Elements))
		for _, el := range n.Elements {
			out = append(out, el)
		}
		return out
	case *WaveDeclaration:
		return []Node{n.Waveform, n.Freq, n.Phase, n.Vol, n.Pan}
	case *AssignStmt:
		return []Node{n.Target, n.Value}
	case *ForStmt:
		return []Node{n.Iterator, n.Start, n.End, n.Body}
	case *IfStmt:
		return []Node{n.Condition, n.Body}
	case *FunctionDeclaration:
		return []Node{n.Name, n.Params, n.Body}
	case *Parameters:
		out := make([]Node, 0, len(n.Names))
		for _, id := range n.Names {
			out = append(out, id)
		}
		return out
	case *ReturnStmt:
		return []Node{n.Value}
	default:
		return nil
	}
}
