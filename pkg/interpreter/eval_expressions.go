package interpreter

import (
	"math"

	"github.com/Zirconova/azurite/pkg/ast"
	"github.com/Zirconova/azurite/pkg/runtime"
)

func (i *Interpreter) evaluateExpression(node ast.Expression) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.NumericLiteral:
		return runtime.NumberValue{Val: n.Value}, nil
	case *ast.StringLiteral:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.Identifier:
		return i.evaluateIdentifier(n)
	case *ast.CallExpr:
		result, err := i.evaluateCall(n)
		if err != nil {
			return nil, err
		}
		if result == nil {
			return nil, i.errorf(n, "non-returning function cannot be evaluated")
		}
		return result, nil
	case *ast.MemberExpr:
		cell, err := i.evaluateMemberCell(n)
		if err != nil {
			return nil, err
		}
		return cell.Value, nil
	case *ast.BinaryExpr:
		return i.evaluateBinaryExpression(n)
	case *ast.UnaryExpr:
		return i.evaluateUnaryExpression(n)
	case *ast.ListLiteral:
		return i.evaluateListLiteral(n)
	case *ast.WaveDeclaration:
		return i.evaluateWaveDeclaration(n)
	case nil:
		return nil, i.errorf(nil, "missing expression")
	default:
		return nil, i.errorf(node, "unsupported expression %s", node.NodeType())
	}
}

// evaluateIdentifier resolves a variable. A wave binding yields its next
// sample rather than the wave itself.
func (i *Interpreter) evaluateIdentifier(id *ast.Identifier) (runtime.Value, error) {
	value, err := i.scopes.LookupVar(id.Name)
	if err != nil {
		return nil, i.wrap(id, err)
	}
	if wave, ok := value.(*runtime.WaveValue); ok {
		sample, err := i.sampleAndAdvance(wave, id)
		if err != nil {
			return nil, err
		}
		return runtime.NumberValue{Val: sample}, nil
	}
	return value, nil
}

// evaluateMemberCell resolves list[index] to the cell itself so assignment
// can write through it.
func (i *Interpreter) evaluateMemberCell(member *ast.MemberExpr) (*runtime.Cell, error) {
	object, err := i.evaluateExpression(member.Object)
	if err != nil {
		return nil, err
	}
	list, ok := object.(*runtime.ListValue)
	if !ok {
		return nil, i.errorf(member, "only lists can be indexed")
	}
	indexVal, err := i.evaluateExpression(member.Index)
	if err != nil {
		return nil, err
	}
	index, ok := indexVal.(runtime.NumberValue)
	if !ok {
		return nil, i.errorf(member.Index, "list index must be number")
	}
	if math.IsNaN(index.Val) || index.Val < 0 || index.Val >= float64(list.Len()) {
		return nil, i.errorf(member.Index, "list index out of range")
	}
	return list.At(int(index.Val)), nil
}

// evaluateBinaryExpression always evaluates both operands, left first.
func (i *Interpreter) evaluateBinaryExpression(expr *ast.BinaryExpr) (runtime.Value, error) {
	left, err := i.evaluateExpression(expr.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluateExpression(expr.Right)
	if err != nil {
		return nil, err
	}

	switch ast.BinaryOperatorCategory(expr.Operator) {
	case ast.OperatorArithmetic, ast.OperatorComparison:
		l, okL := left.(runtime.NumberValue)
		r, okR := right.(runtime.NumberValue)
		if !okL || !okR {
			return nil, i.errorf(expr, "arithmetic or comparison expressions must use numbers only")
		}
		return i.applyNumeric(expr, l.Val, r.Val)
	case ast.OperatorLogical:
		if expr.Operator == "&" {
			return runtime.BoolValue{Val: left.Truth() && right.Truth()}, nil
		}
		return runtime.BoolValue{Val: left.Truth() || right.Truth()}, nil
	default:
		return nil, i.errorf(expr, "unknown operator %s", expr.Operator)
	}
}

func (i *Interpreter) applyNumeric(expr *ast.BinaryExpr, l, r float64) (runtime.Value, error) {
	switch expr.Operator {
	case "+":
		return runtime.NumberValue{Val: l + r}, nil
	case "-":
		return runtime.NumberValue{Val: l - r}, nil
	case "*":
		return runtime.NumberValue{Val: l * r}, nil
	case "/":
		return runtime.NumberValue{Val: l / r}, nil
	case "%":
		return runtime.NumberValue{Val: math.Mod(l, r)}, nil
	case "^":
		return runtime.NumberValue{Val: math.Pow(l, r)}, nil
	case "==":
		return runtime.BoolValue{Val: l == r}, nil
	case "!=":
		return runtime.BoolValue{Val: l != r}, nil
	case ">":
		return runtime.BoolValue{Val: l > r}, nil
	case "<":
		return runtime.BoolValue{Val: l < r}, nil
	case ">=":
		return runtime.BoolValue{Val: l >= r}, nil
	case "<=":
		return runtime.BoolValue{Val: l <= r}, nil
	default:
		return nil, i.errorf(expr, "unknown operator %s", expr.Operator)
	}
}

func (i *Interpreter) evaluateUnaryExpression(expr *ast.UnaryExpr) (runtime.Value, error) {
	operand, err := i.evaluateExpression(expr.Operand)
	if err != nil {
		return nil, err
	}
	switch expr.Operator {
	case "!":
		return runtime.BoolValue{Val: !operand.Truth()}, nil
	case "+", "-":
		num, ok := operand.(runtime.NumberValue)
		if !ok {
			return nil, i.errorf(expr, "arithmetic unary expressions must use numbers only")
		}
		if expr.Operator == "-" {
			return runtime.NumberValue{Val: -num.Val}, nil
		}
		return num, nil
	default:
		return nil, i.errorf(expr, "unknown operator %s", expr.Operator)
	}
}

func (i *Interpreter) evaluateListLiteral(list *ast.ListLiteral) (runtime.Value, error) {
	values := make([]runtime.Value, 0, len(list.Elements))
	for _, el := range list.Elements {
		v, err := i.evaluateExpression(el)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return i.collector.NewList(values), nil
}
