package interpreter

import (
	"errors"
	"math"

	"github.com/Zirconova/azurite/pkg/ast"
	"github.com/Zirconova/azurite/pkg/runtime"
)

// evaluateStatements runs stmts in order and stops at the first return.
// The result is non-nil only when a return is propagating.
func (i *Interpreter) evaluateStatements(stmts *ast.Stmts) (runtime.Value, error) {
	if stmts == nil {
		return nil, nil
	}
	for _, stmt := range stmts.Body {
		result, err := i.evaluateStatement(stmt)
		if err != nil {
			return nil, err
		}
		if result != nil {
			return result, nil
		}
	}
	return nil, nil
}

func (i *Interpreter) evaluateStatement(node ast.Statement) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.Stmts:
		return i.evaluateStatements(n)
	case *ast.AssignStmt:
		return nil, i.evaluateAssignment(n)
	case *ast.FunctionDeclaration:
		return nil, i.evaluateFunctionDeclaration(n)
	case *ast.IfStmt:
		return i.evaluateIfStatement(n)
	case *ast.ForStmt:
		return i.evaluateForStatement(n)
	case *ast.ReturnStmt:
		return i.evaluateReturnStatement(n)
	case *ast.CallExpr:
		_, err := i.evaluateCall(n)
		return nil, err
	case ast.Expression:
		_, err := i.evaluateExpression(n)
		return nil, err
	default:
		return nil, i.errorf(node, "unsupported statement %s", node.NodeType())
	}
}

func (i *Interpreter) evaluateAssignment(assign *ast.AssignStmt) error {
	switch target := assign.Target.(type) {
	case *ast.Identifier:
		value, err := i.evaluateExpression(assign.Value)
		if err != nil {
			return err
		}
		i.scopes.SetVar(target.Name, value)
		return nil
	case *ast.MemberExpr:
		cell, err := i.evaluateMemberCell(target)
		if err != nil {
			return err
		}
		value, err := i.evaluateExpression(assign.Value)
		if err != nil {
			return err
		}
		i.collector.Assign(cell, value)
		return nil
	default:
		return i.errorf(assign, "invalid assignment target")
	}
}

func (i *Interpreter) evaluateFunctionDeclaration(decl *ast.FunctionDeclaration) error {
	ref := runtime.NewFunctionRef(decl)
	ref.OnFree = func(r *runtime.FunctionRef) {
		i.log.DebugContext(i.ctx, "function freed", "name", r.Name)
	}
	if i.tracker != nil {
		i.tracker.Track(ref)
	}
	i.log.DebugContext(i.ctx, "function declared", "name", ref.Name, "params", len(decl.ParamNames()))
	return i.wrap(decl, i.scopes.SetFunc(ref.Name, ref))
}

func (i *Interpreter) evaluateIfStatement(stmt *ast.IfStmt) (runtime.Value, error) {
	cond, err := i.evaluateExpression(stmt.Condition)
	if err != nil {
		return nil, err
	}
	if !cond.Truth() {
		return nil, nil
	}
	return i.evaluateStatements(stmt.Body)
}

// evaluateForStatement binds the iterator to each integer in
// [trunc(start), end) inside a scope of its own.
func (i *Interpreter) evaluateForStatement(loop *ast.ForStmt) (runtime.Value, error) {
	startVal, err := i.evaluateExpression(loop.Start)
	if err != nil {
		return nil, err
	}
	endVal, err := i.evaluateExpression(loop.End)
	if err != nil {
		return nil, err
	}
	start, okStart := startVal.(runtime.NumberValue)
	end, okEnd := endVal.(runtime.NumberValue)
	if !okStart || !okEnd {
		return nil, i.errorf(loop.Start, "for loop bounds must be numbers")
	}

	i.scopes.Push()
	result, err := i.runLoop(loop, math.Trunc(start.Val), end.Val)
	return result, i.popScope(err)
}

func (i *Interpreter) runLoop(loop *ast.ForStmt, start, end float64) (runtime.Value, error) {
	for k := start; k < end; k++ {
		if err := i.interrupted(); err != nil {
			return nil, err
		}
		i.scopes.DefineLocal(loop.Iterator.Name, runtime.NumberValue{Val: k})
		result, err := i.evaluateStatements(loop.Body)
		if err != nil || result != nil {
			return result, err
		}
	}
	return nil, nil
}

func (i *Interpreter) evaluateReturnStatement(stmt *ast.ReturnStmt) (runtime.Value, error) {
	if stmt.Value == nil {
		return nil, i.errorf(stmt, "return requires a value")
	}
	return i.evaluateExpression(stmt.Value)
}

// popScope closes the innermost scope, keeping err as the primary failure.
func (i *Interpreter) popScope(err error) error {
	popErr := i.scopes.Pop()
	if popErr == nil {
		return err
	}
	if err == nil {
		return popErr
	}
	return errors.Join(err, popErr)
}
