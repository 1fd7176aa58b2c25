package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func tokenKinds(tokens []Token) []TokenKind {
	kinds := make([]TokenKind, 0, len(tokens))
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}
	return kinds
}

func TestTokenizeOperatorsAndKeywords(t *testing.T) {
	tokens, err := Tokenize("for i(0, 3) { x = a[i] <= 2 != !b }")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	want := []TokenKind{
		TokenFor, TokenIdentifier, TokenLParen, TokenNumber, TokenComma, TokenNumber, TokenRParen,
		TokenLBrace, TokenIdentifier, TokenEquals, TokenIdentifier, TokenLBracket, TokenIdentifier,
		TokenRBracket, TokenComparison, TokenNumber, TokenComparison, TokenLogical, TokenIdentifier,
		TokenRBrace, TokenNewline, TokenEOF,
	}
	if diff := cmp.Diff(want, tokenKinds(tokens)); diff != "" {
		t.Fatalf("token kinds mismatch (-want +got):\n%s", diff)
	}
	if tokens[14].Text != "<=" || tokens[16].Text != "!=" || tokens[17].Text != "!" {
		t.Fatalf("unexpected operator texts: %q %q %q", tokens[14].Text, tokens[16].Text, tokens[17].Text)
	}
}

func TestTokenizePositions(t *testing.T) {
	tokens, err := Tokenize("a = 1\n  Wave(freq: .5)")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	wave := tokens[4]
	if wave.Kind != TokenWave {
		t.Fatalf("expected Wave keyword, got %s", wave.Kind)
	}
	if wave.Start.Line != 2 || wave.Start.Column != 3 || wave.End.Column != 7 {
		t.Fatalf("unexpected Wave position: %+v..%+v", wave.Start, wave.End)
	}
	num := tokens[8]
	if num.Kind != TokenNumber || num.Text != ".5" {
		t.Fatalf("expected number .5, got %s %q", num.Kind, num.Text)
	}
}

func TestTokenizeStringsAndComments(t *testing.T) {
	tokens, err := Tokenize(`print("a\"b\n") # trailing comment`)
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	want := []TokenKind{TokenIdentifier, TokenLParen, TokenString, TokenRParen, TokenNewline, TokenEOF}
	if diff := cmp.Diff(want, tokenKinds(tokens)); diff != "" {
		t.Fatalf("token kinds mismatch (-want +got):\n%s", diff)
	}
	if tokens[2].Text != "a\"b\n" {
		t.Fatalf("unexpected string contents %q", tokens[2].Text)
	}
}

func TestTokenizeErrors(t *testing.T) {
	cases := map[string]string{
		"x = 1.2.3": "invalid number",
		"x = .":     "invalid number",
		`x = "open`: "unterminated string literal",
		"x = 1 ; 2": `unexpected character ';'`,
		`x = "\q"`:  `unknown escape sequence \q`,
	}
	for src, want := range cases {
		_, err := Tokenize(src)
		if err == nil {
			t.Fatalf("expected error for %q", src)
		}
		syntaxErr, ok := err.(*SyntaxError)
		if !ok {
			t.Fatalf("expected *SyntaxError for %q, got %T", src, err)
		}
		if syntaxErr.Message != want {
			t.Fatalf("message for %q = %q, want %q", src, syntaxErr.Message, want)
		}
	}
}
