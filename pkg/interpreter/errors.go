package interpreter

import (
	"fmt"

	"github.com/Zirconova/azurite/pkg/ast"
)

// RuntimeError is a failure raised while evaluating a node. Calls holds
// the active user function calls, outermost first.
type RuntimeError struct {
	Message string
	Node    ast.Node
	Calls   []*ast.CallExpr
	Err     error
}

func (e *RuntimeError) Error() string {
	return e.Message
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// Span is the source range of the failing node.
func (e *RuntimeError) Span() ast.Span {
	if e.Node == nil {
		return ast.Span{}
	}
	return e.Node.Span()
}

func (i *Interpreter) errorf(node ast.Node, format string, args ...any) error {
	return &RuntimeError{
		Message: fmt.Sprintf(format, args...),
		Node:    node,
		Calls:   i.snapshotCalls(),
	}
}

// wrap attaches node to err unless err already carries a location.
func (i *Interpreter) wrap(node ast.Node, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*RuntimeError); ok {
		return err
	}
	return &RuntimeError{
		Message: err.Error(),
		Node:    node,
		Calls:   i.snapshotCalls(),
		Err:     err,
	}
}

func (i *Interpreter) snapshotCalls() []*ast.CallExpr {
	if len(i.callStack) == 0 {
		return nil
	}
	return append([]*ast.CallExpr(nil), i.callStack...)
}
