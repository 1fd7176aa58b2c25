package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Zirconova/azurite/pkg/ast"
)

func checkSpan(t testing.TB, label string, span ast.Span, startLine, startCol, endLine, endCol int) {
	t.Helper()
	if span.Start.Line != startLine || span.Start.Column != startCol {
		t.Fatalf("%s start span mismatch: got (%d,%d), want (%d,%d)", label, span.Start.Line, span.Start.Column, startLine, startCol)
	}
	if span.End.Line != endLine || span.End.Column != endCol {
		t.Fatalf("%s end span mismatch: got (%d,%d), want (%d,%d)", label, span.End.Line, span.End.Column, endLine, endCol)
	}
}

func mustParse(t *testing.T, source string) *ast.Program {
	t.Helper()
	prog, err := ParseProgram(source)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return prog
}

func assertOutline(t *testing.T, source string, want *ast.Program) {
	t.Helper()
	got := mustParse(t, source)
	if diff := cmp.Diff(ast.Sprint(want), ast.Sprint(got)); diff != "" {
		t.Fatalf("AST mismatch (-want +got):\n%s", diff)
	}
}

func TestParseOperatorPrecedence(t *testing.T) {
	assertOutline(t, "x = 1 + 2 * 3 ^ 2 < 4 | a & !b",
		ast.Prog(
			ast.Assign(ast.ID("x"),
				ast.Bin("|",
					ast.Bin("<",
						ast.Bin("+", ast.Num(1), ast.Bin("*", ast.Num(2), ast.Bin("^", ast.Num(3), ast.Num(2)))),
						ast.Num(4),
					),
					ast.Bin("&", ast.ID("a"), ast.Un("!", ast.ID("b"))),
				),
			),
		),
	)
}

func TestParseLeftAssociativity(t *testing.T) {
	assertOutline(t, "10 - 4 - 3\n2 ^ 3 ^ 2",
		ast.Prog(
			ast.Bin("-", ast.Bin("-", ast.Num(10), ast.Num(4)), ast.Num(3)),
			ast.Bin("^", ast.Bin("^", ast.Num(2), ast.Num(3)), ast.Num(2)),
		),
	)
}

func TestParseUnaryBindsTighterThanPower(t *testing.T) {
	assertOutline(t, "-2 ^ 2",
		ast.Prog(ast.Bin("^", ast.Un("-", ast.Num(2)), ast.Num(2))),
	)
}

func TestParseStatements(t *testing.T) {
	source := `
# build a list and walk it
a = [1, 2,
     3]
a[0] = 5
func add(x, y) {
  return x + y
}
for i(0, 3) {
  if a[i] > 1 {
    print(add(a[i], 1))
  }
}
`
	assertOutline(t, source,
		ast.Prog(
			ast.Assign(ast.ID("a"), ast.List(ast.Num(1), ast.Num(2), ast.Num(3))),
			ast.Assign(ast.Index(ast.ID("a"), ast.Num(0)), ast.Num(5)),
			ast.Fn("add", []string{"x", "y"},
				ast.Ret(ast.Bin("+", ast.ID("x"), ast.ID("y"))),
			),
			ast.For("i", ast.Num(0), ast.Num(3),
				ast.If(ast.Bin(">", ast.Index(ast.ID("a"), ast.ID("i")), ast.Num(1)),
					ast.Call("print", ast.Call("add", ast.Index(ast.ID("a"), ast.ID("i")), ast.Num(1))),
				),
			),
		),
	)
}

func TestParseSingleLineBlock(t *testing.T) {
	assertOutline(t, "for i(0,3){ print(i) }",
		ast.Prog(ast.For("i", ast.Num(0), ast.Num(3), ast.Call("print", ast.ID("i")))),
	)
}

func TestParseWaveDeclaration(t *testing.T) {
	source := "w = Wave(freq: 440,\n  vol: 0.5 * env(x),\n  waveform: saw(x))"
	assertOutline(t, source,
		ast.Prog(
			ast.Assign(ast.ID("w"), ast.Wave(ast.WaveSpec{
				Waveform: ast.Call("saw", ast.ID("x")),
				Freq:     ast.Num(440),
				Vol:      ast.Bin("*", ast.Num(0.5), ast.Call("env", ast.ID("x"))),
			})),
		),
	)
}

func TestParseWaveDefaults(t *testing.T) {
	prog := mustParse(t, "Wave()")
	wave, ok := prog.Body.Body[0].(*ast.WaveDeclaration)
	if !ok {
		t.Fatalf("expected wave declaration, got %T", prog.Body.Body[0])
	}
	want := ast.Sprint(ast.Wave(ast.WaveSpec{}))
	if diff := cmp.Diff(want, ast.Sprint(wave)); diff != "" {
		t.Fatalf("default wave mismatch (-want +got):\n%s", diff)
	}
	checkSpan(t, "default waveform", wave.Waveform.Span(), 1, 1, 1, 7)
}

func TestParseSpans(t *testing.T) {
	prog := mustParse(t, "x = 1\nfunc f(a) {\n  return a * 2\n}")
	assign := prog.Body.Body[0].(*ast.AssignStmt)
	checkSpan(t, "assign", assign.Span(), 1, 1, 1, 6)
	fn := prog.Body.Body[1].(*ast.FunctionDeclaration)
	checkSpan(t, "function", fn.Span(), 2, 1, 4, 2)
	ret := fn.Body.Body[0].(*ast.ReturnStmt)
	checkSpan(t, "return", ret.Span(), 3, 3, 3, 15)
	checkSpan(t, "product", ret.Value.Span(), 3, 10, 3, 15)
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		source     string
		message    string
		line, col  int
		incomplete bool
	}{
		{"Wave(amp: 1)", "unrecognized wave function specifier 'amp'", 1, 6, false},
		{"1 = 2", "invalid assignment target", 1, 3, false},
		{"x = 1 2", "expected newline after statement, found '2'", 1, 7, false},
		{"}", "unexpected '}'", 1, 1, false},
		{"for (0, 1) {}", "expected identifier in for loop header", 1, 5, false},
		{"if x {\n  print(x)", "expected '}' at end of block", 2, 11, true},
		{"x = (1 +", "unexpected end of input", 1, 9, true},
	}
	for _, tc := range cases {
		_, err := ParseProgram(tc.source)
		if err == nil {
			t.Fatalf("expected error for %q", tc.source)
		}
		syntaxErr, ok := err.(*SyntaxError)
		if !ok {
			t.Fatalf("expected *SyntaxError for %q, got %T", tc.source, err)
		}
		if syntaxErr.Message != tc.message {
			t.Fatalf("message for %q = %q, want %q", tc.source, syntaxErr.Message, tc.message)
		}
		if syntaxErr.Pos.Line != tc.line || syntaxErr.Pos.Column != tc.col {
			t.Fatalf("position for %q = %d:%d, want %d:%d", tc.source, syntaxErr.Pos.Line, syntaxErr.Pos.Column, tc.line, tc.col)
		}
		if IsIncomplete(err) != tc.incomplete {
			t.Fatalf("incomplete for %q = %v, want %v", tc.source, IsIncomplete(err), tc.incomplete)
		}
	}
}
