package interpreter

import (
	"strconv"

	"github.com/Zirconova/azurite/pkg/ast"
	"github.com/Zirconova/azurite/pkg/runtime"
)

// evaluateCall evaluates the arguments in the caller's scope, then runs the
// builtin or user function inside a fresh scope. The result is nil when the
// callee returned nothing.
func (i *Interpreter) evaluateCall(call *ast.CallExpr) (runtime.Value, error) {
	name := call.Callee.Name
	native, isBuiltin := builtins[name]

	args, err := i.evaluateArguments(call, isBuiltin && native.rawFirst)
	if err != nil {
		return nil, err
	}

	if isBuiltin {
		if native.arity >= 0 && len(args) != native.arity {
			return nil, i.errorf(call, "%s expects %s, got %d", name, pluralArgs(native.arity), len(args))
		}
		i.scopes.Push()
		result, err := native.impl(i, call, args)
		return result, i.popScope(err)
	}

	ref, err := i.lookupFunc(name)
	if err != nil {
		return nil, i.wrap(call.Callee, err)
	}
	params := ref.Decl.ParamNames()
	if len(params) != len(args) {
		return nil, i.errorf(call.Args, "length of argument list does not match parameter list")
	}

	i.scopes.Push()
	i.callStack = append(i.callStack, call)
	for idx, param := range params {
		i.scopes.DefineLocal(param, args[idx])
	}
	result, err := i.evaluateStatements(ref.Decl.Body)
	i.callStack = i.callStack[:len(i.callStack)-1]
	return result, i.popScope(err)
}

// evaluateArguments evaluates call arguments left to right. With rawFirst a
// bare identifier in first position is passed as bound, so a wave reaches
// the callee without being sampled.
func (i *Interpreter) evaluateArguments(call *ast.CallExpr, rawFirst bool) ([]runtime.Value, error) {
	exprs := call.ArgumentValues()
	args := make([]runtime.Value, 0, len(exprs))
	for idx, expr := range exprs {
		if id, ok := expr.(*ast.Identifier); ok && rawFirst && idx == 0 {
			value, err := i.scopes.LookupVar(id.Name)
			if err != nil {
				return nil, i.wrap(id, err)
			}
			args = append(args, value)
			continue
		}
		value, err := i.evaluateExpression(expr)
		if err != nil {
			return nil, err
		}
		args = append(args, value)
	}
	return args, nil
}

func pluralArgs(n int) string {
	if n == 1 {
		return "1 argument"
	}
	return strconv.Itoa(n) + " arguments"
}
