package ast

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWaveDeclarationDefaults(t *testing.T) {
	wave := Wave(WaveSpec{Freq: Num(440)})

	call, ok := wave.Waveform.(*CallExpr)
	if !ok || call.Callee.Name != "sin" {
		t.Fatalf("expected default waveform sin(x), got %#v", wave.Waveform)
	}
	args := call.ArgumentValues()
	if len(args) != 1 {
		t.Fatalf("expected one argument in default waveform, got %d", len(args))
	}
	if id, ok := args[0].(*Identifier); !ok || id.Name != "x" {
		t.Fatalf("expected default waveform argument x, got %#v", args[0])
	}
	if lit, ok := wave.Freq.(*NumericLiteral); !ok || lit.Value != 440 {
		t.Fatalf("expected freq 440, got %#v", wave.Freq)
	}
	cases := map[string]struct {
		expr Expression
		want float64
	}{
		"phase": {wave.Phase, 0},
		"vol":   {wave.Vol, 1},
		"pan":   {wave.Pan, 0},
	}
	for label, tc := range cases {
		lit, ok := tc.expr.(*NumericLiteral)
		if !ok || lit.Value != tc.want {
			t.Fatalf("%s default mismatch: got %#v, want %v", label, tc.expr, tc.want)
		}
	}
}

func TestBinaryOperatorCategory(t *testing.T) {
	tests := []struct {
		op   string
		want OperatorCategory
	}{
		{"+", OperatorArithmetic},
		{"^", OperatorArithmetic},
		{"%", OperatorArithmetic},
		{"<=", OperatorComparison},
		{"!=", OperatorComparison},
		{"&", OperatorLogical},
		{"|", OperatorLogical},
		{"=", OperatorUnknown},
	}
	for _, tc := range tests {
		if got := BinaryOperatorCategory(tc.op); got != tc.want {
			t.Fatalf("category(%q) = %s, want %s", tc.op, got, tc.want)
		}
	}
}

func TestSetSpanAndCover(t *testing.T) {
	id := ID("x")
	span := Span{Start: Position{Line: 2, Column: 3}, End: Position{Line: 2, Column: 4}}
	SetSpan(id, span)
	if id.Span() != span {
		t.Fatalf("span not applied: %+v", id.Span())
	}
	SetSpan(nil, span)

	other := Span{Start: Position{Line: 1, Column: 9}, End: Position{Line: 1, Column: 12}}
	got := Cover(span, other)
	want := Span{Start: Position{Line: 1, Column: 9}, End: Position{Line: 2, Column: 4}}
	if got != want {
		t.Fatalf("cover mismatch: got %+v, want %+v", got, want)
	}
	if Cover(ZeroSpan(), span) != span {
		t.Fatalf("cover should ignore empty spans")
	}
}

func TestSprintOutline(t *testing.T) {
	prog := Prog(
		Assign(ID("a"), List(Num(1), Num(2))),
		For("i", Num(0), Num(3),
			Call("print", Index(ID("a"), ID("i"))),
		),
	)
	want := `Program
  Stmts
    AssignStmt
      target: Identifier a
      value: ListLiteral
        NumericLiteral 1
        NumericLiteral 2
    ForStmt i
      start: NumericLiteral 0
      end: NumericLiteral 3
      body: Stmts
        CallExpr print
          Arguments
            MemberExpr
              object: Identifier a
              index: Identifier i
`
	if diff := cmp.Diff(want, Sprint(prog)); diff != "" {
		t.Fatalf("outline mismatch (-want +got):\n%s", diff)
	}
}

func TestInspectVisitsCallees(t *testing.T) {
	wave := Wave(WaveSpec{
		Freq: Bin("*", Call("pitch", ID("x")), Num(2)),
		Vol:  Call("env", Call("clip", ID("x"))),
	})
	var callees []string
	Inspect(wave, func(n Node) bool {
		if call, ok := n.(*CallExpr); ok {
			callees = append(callees, call.Callee.Name)
		}
		return true
	})
	want := []string{"sin", "pitch", "env", "clip"}
	if diff := cmp.Diff(want, callees); diff != "" {
		t.Fatalf("callee order mismatch (-want +got):\n%s", diff)
	}
}
