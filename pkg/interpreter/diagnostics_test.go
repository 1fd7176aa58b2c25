package interpreter

import (
	"errors"
	"testing"

	"github.com/Zirconova/azurite/pkg/driver"
)

func TestRuntimeDiagnosticIncludesCallSites(t *testing.T) {
	interp, _ := newTestInterpreter(WithSourcePath("song.az"))
	err := runSource(t, interp, "func get(l) {\n  return l[5]\n}\nget([1])")
	if err == nil {
		t.Fatalf("expected runtime error")
	}
	diag := interp.BuildRuntimeDiagnostic(err)
	if diag.Location != (driver.Location{Path: "song.az", Line: 2, Column: 12}) {
		t.Fatalf("unexpected location %+v", diag.Location)
	}
	want := "runtime: song.az:2:12 list index out of range\nnote: song.az:4:1 called from here"
	if got := DescribeRuntimeDiagnostic(diag); got != want {
		t.Fatalf("diagnostic = %q, want %q", got, want)
	}
}

func TestRuntimeDiagnosticWithoutPath(t *testing.T) {
	interp, _ := newTestInterpreter()
	err := runSource(t, interp, "x = 1\ny = x + z")
	want := "runtime: line 2, column 9 undeclared variable z"
	if got := DescribeRuntimeDiagnostic(interp.BuildRuntimeDiagnostic(err)); got != want {
		t.Fatalf("diagnostic = %q, want %q", got, want)
	}
}

func TestRuntimeDiagnosticForeignError(t *testing.T) {
	interp, _ := newTestInterpreter()
	diag := interp.BuildRuntimeDiagnostic(errors.New("disk full"))
	if got := DescribeRuntimeDiagnostic(diag); got != "runtime: disk full" {
		t.Fatalf("unexpected diagnostic %q", got)
	}
}
