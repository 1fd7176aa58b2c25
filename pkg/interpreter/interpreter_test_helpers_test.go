package interpreter

import (
	"bytes"
	"context"
	"testing"

	"github.com/Zirconova/azurite/pkg/parser"
)

func newTestInterpreter(opts ...Option) (*Interpreter, *bytes.Buffer) {
	var out bytes.Buffer
	opts = append([]Option{WithStdout(&out), WithSeed(1)}, opts...)
	return New(opts...), &out
}

func runSource(t *testing.T, interp *Interpreter, source string) error {
	t.Helper()
	prog, err := parser.ParseProgram(source)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return interp.EvaluateProgram(context.Background(), prog)
}

func mustRun(t *testing.T, source string, opts ...Option) (*Interpreter, string) {
	t.Helper()
	interp, out := newTestInterpreter(opts...)
	if err := runSource(t, interp, source); err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	return interp, out.String()
}

func expectRuntimeError(t *testing.T, source, message string) *RuntimeError {
	t.Helper()
	interp, _ := newTestInterpreter()
	err := runSource(t, interp, source)
	if err == nil {
		t.Fatalf("expected error %q for %q", message, source)
	}
	rtErr, ok := err.(*RuntimeError)
	if !ok {
		t.Fatalf("expected *RuntimeError for %q, got %T (%v)", source, err, err)
	}
	if rtErr.Message != message {
		t.Fatalf("message for %q = %q, want %q", source, rtErr.Message, message)
	}
	if depth := interp.Scopes().Depth(); depth != 1 {
		t.Fatalf("expected scopes unwound after error, depth %d", depth)
	}
	return rtErr
}
