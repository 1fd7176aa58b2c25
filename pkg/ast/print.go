package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Fprint writes an indented outline of the tree rooted at node.
func Fprint(w io.Writer, node Node) error {
	p := &printer{w: w}
	p.node("", node, 0)
	return p.err
}

// Sprint returns the outline Fprint would write.
func Sprint(node Node) string {
	var b strings.Builder
	_ = Fprint(&b, node)
	return b.String()
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(depth int, label, text string) {
	if p.err != nil {
		return
	}
	indent := strings.Repeat("  ", depth)
	if label != "" {
		text = label + ": " + text
	}
	_, p.err = fmt.Fprintf(p.w, "%s%s\n", indent, text)
}

func (p *printer) node(label string, node Node, depth int) {
	if node == nil {
		p.line(depth, label, "<nil>")
		return
	}
	switch n := node.(type) {
	case *Program:
		p.line(depth, label, "Program")
		p.node("", n.Body, depth+1)
	case *Stmts:
		p.line(depth, label, "Stmts")
		for _, stmt := range n.Body {
			p.node("", stmt, depth+1)
		}
	case *NumericLiteral:
		p.line(depth, label, "NumericLiteral "+strconv.FormatFloat(n.Value, 'g', -1, 64))
	case *StringLiteral:
		p.line(depth, label, "StringLiteral "+strconv.Quote(n.Value))
	case *Identifier:
		p.line(depth, label, "Identifier "+n.Name)
	case *UnaryExpr:
		p.line(depth, label, "UnaryExpr "+n.Operator)
		p.node("", n.Operand, depth+1)
	case *BinaryExpr:
		p.line(depth, label, "BinaryExpr "+n.Operator)
		p.node("", n.Left, depth+1)
		p.node("", n.Right, depth+1)
	case *CallExpr:
		p.line(depth, label, "CallExpr "+n.Callee.Name)
		p.node("", n.Args, depth+1)
	case *Arguments:
		p.line(depth, label, "Arguments")
		for _, arg := range n.Values {
			p.node("", arg, depth+1)
		}
	case *Parameters:
		names := make([]string, 0, len(n.Names))
		for _, id := range n.Names {
			names = append(names, id.Name)
		}
		p.line(depth, label, "Parameters ("+strings.Join(names, ", ")+")")
	case *MemberExpr:
		p.line(depth, label, "MemberExpr")
		p.node("object", n.Object, depth+1)
		p.node("index", n.Index, depth+1)
	case *ListLiteral:
		p.line(depth, label, "ListLiteral")
		for _, el := range n.Elements {
			p.node("", el, depth+1)
		}
	case *WaveDeclaration:
		p.line(depth, label, "WaveDeclaration")
		p.node("waveform", n.Waveform, depth+1)
		p.node("freq", n.Freq, depth+1)
		p.node("phase", n.Phase, depth+1)
		p.node("vol", n.Vol, depth+1)
		p.node("pan", n.Pan, depth+1)
	case *AssignStmt:
		p.line(depth, label, "AssignStmt")
		p.node("target", n.Target, depth+1)
		p.node("value", n.Value, depth+1)
	case *ForStmt:
		p.line(depth, label, "ForStmt "+n.Iterator.Name)
		p.node("start", n.Start, depth+1)
		p.node("end", n.End, depth+1)
		p.node("body", n.Body, depth+1)
	case *IfStmt:
		p.line(depth, label, "IfStmt")
		p.node("condition", n.Condition, depth+1)
		p.node("body", n.Body, depth+1)
	case *FunctionDeclaration:
		p.line(depth, label, "FunctionDeclaration "+n.Name.Name)
		p.node("", n.Params, depth+1)
		p.node("body", n.Body, depth+1)
	case *ReturnStmt:
		p.line(depth, label, "ReturnStmt")
		p.node("", n.Value, depth+1)
	default:
		p.line(depth, label, string(node.NodeType()))
	}
}
