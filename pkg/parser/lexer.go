package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Zirconova/azurite/pkg/ast"
)

// Tokenize splits source into tokens. The stream always ends with a
// Newline token followed by EOF so the last statement is terminated.
func Tokenize(source string) ([]Token, error) {
	lx := &lexer{src: []rune(source), line: 1, col: 1}
	return lx.run()
}

type lexer struct {
	src    []rune
	pos    int
	line   int
	col    int
	tokens []Token
}

func (lx *lexer) at() rune {
	if lx.pos >= len(lx.src) {
		return 0
	}
	return lx.src[lx.pos]
}

func (lx *lexer) peek() rune {
	if lx.pos+1 >= len(lx.src) {
		return 0
	}
	return lx.src[lx.pos+1]
}

func (lx *lexer) here() ast.Position {
	return ast.Position{Line: lx.line, Column: lx.col}
}

func (lx *lexer) advance() rune {
	r := lx.src[lx.pos]
	lx.pos++
	if r == '\n' {
		lx.line++
		lx.col = 1
	} else {
		lx.col++
	}
	return r
}

func (lx *lexer) emit(kind TokenKind, text string, start ast.Position) {
	lx.tokens = append(lx.tokens, Token{Kind: kind, Text: text, Start: start, End: lx.here()})
}

func (lx *lexer) errorf(pos ast.Position, format string, args ...any) error {
	return &SyntaxError{Message: fmt.Sprintf(format, args...), Pos: pos}
}

func (lx *lexer) run() ([]Token, error) {
	for lx.pos < len(lx.src) {
		start := lx.here()
		r := lx.at()
		switch {
		case r == '\n':
			lx.advance()
			lx.emit(TokenNewline, "\n", start)
		case r == ' ' || r == '\t' || r == '\r':
			lx.advance()
		case r == '#':
			for lx.pos < len(lx.src) && lx.at() != '\n' {
				lx.advance()
			}
		case strings.ContainsRune("+-*/%^", r):
			lx.advance()
			lx.emit(TokenArithmetic, string(r), start)
		case r == '<' || r == '>' || r == '=' || r == '!':
			lx.lexOperator(start)
		case r == '&' || r == '|':
			lx.advance()
			lx.emit(TokenLogical, string(r), start)
		case r == '"':
			if err := lx.lexString(start); err != nil {
				return nil, err
			}
		case isDigit(r) || r == '.':
			if err := lx.lexNumber(start); err != nil {
				return nil, err
			}
		case isLetter(r):
			lx.lexWord(start)
		default:
			if kind, ok := punctuation[r]; ok {
				lx.advance()
				lx.emit(kind, string(r), start)
				continue
			}
			return nil, lx.errorf(start, "unexpected character %q", r)
		}
	}
	end := lx.here()
	lx.tokens = append(lx.tokens,
		Token{Kind: TokenNewline, Text: "\n", Start: end, End: end},
		Token{Kind: TokenEOF, Start: end, End: end},
	)
	return lx.tokens, nil
}

var punctuation = map[rune]TokenKind{
	'(': TokenLParen,
	')': TokenRParen,
	'{': TokenLBrace,
	'}': TokenRBrace,
	'[': TokenLBracket,
	']': TokenRBracket,
	',': TokenComma,
	':': TokenColon,
}

func (lx *lexer) lexOperator(start ast.Position) {
	r := lx.advance()
	if lx.at() == '=' {
		lx.advance()
		lx.emit(TokenComparison, string(r)+"=", start)
		return
	}
	switch r {
	case '=':
		lx.emit(TokenEquals, "=", start)
	case '!':
		lx.emit(TokenLogical, "!", start)
	default:
		lx.emit(TokenComparison, string(r), start)
	}
}

func (lx *lexer) lexNumber(start ast.Position) error {
	var b strings.Builder
	dots := 0
	for lx.pos < len(lx.src) && (isDigit(lx.at()) || lx.at() == '.') {
		if lx.at() == '.' {
			dots++
			if dots > 1 {
				return lx.errorf(start, "invalid number")
			}
		}
		b.WriteRune(lx.advance())
	}
	text := b.String()
	if _, err := strconv.ParseFloat(text, 64); err != nil {
		return lx.errorf(start, "invalid number")
	}
	lx.emit(TokenNumber, text, start)
	return nil
}

func (lx *lexer) lexWord(start ast.Position) {
	var b strings.Builder
	for lx.pos < len(lx.src) && (isLetter(lx.at()) || isDigit(lx.at()) || lx.at() == '_') {
		b.WriteRune(lx.advance())
	}
	word := b.String()
	if kind, ok := keywords[word]; ok {
		lx.emit(kind, word, start)
		return
	}
	lx.emit(TokenIdentifier, word, start)
}

func (lx *lexer) lexString(start ast.Position) error {
	lx.advance()
	var b strings.Builder
	for {
		if lx.pos >= len(lx.src) || lx.at() == '\n' {
			return lx.errorf(start, "unterminated string literal")
		}
		r := lx.advance()
		if r == '"' {
			break
		}
		if r != '\\' {
			b.WriteRune(r)
			continue
		}
		if lx.pos >= len(lx.src) {
			return lx.errorf(start, "unterminated string literal")
		}
		esc := lx.advance()
		switch esc {
		case '"', '\\':
			b.WriteRune(esc)
		case 'n':
			b.WriteRune('\n')
		case 't':
			b.WriteRune('\t')
		default:
			return lx.errorf(start, "unknown escape sequence \\%c", esc)
		}
	}
	lx.emit(TokenString, b.String(), start)
	return nil
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
