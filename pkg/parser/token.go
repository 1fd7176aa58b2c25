package parser

import (
	"fmt"

	"github.com/Zirconova/azurite/pkg/ast"
)

// TokenKind classifies a lexeme.
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenNewline
	TokenNumber
	TokenString
	TokenIdentifier
	TokenFor
	TokenIf
	TokenFunc
	TokenReturn
	TokenWave
	TokenArithmetic
	TokenComparison
	TokenLogical
	TokenEquals
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenComma
	TokenColon
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:        "EOF",
	TokenNewline:    "Newline",
	TokenNumber:     "Number",
	TokenString:     "String",
	TokenIdentifier: "Identifier",
	TokenFor:        "For",
	TokenIf:         "If",
	TokenFunc:       "Func",
	TokenReturn:     "Return",
	TokenWave:       "Wave",
	TokenArithmetic: "Arithmetic",
	TokenComparison: "Comparison",
	TokenLogical:    "Logical",
	TokenEquals:     "Equals",
	TokenLParen:     "LParen",
	TokenRParen:     "RParen",
	TokenLBrace:     "LBrace",
	TokenRBrace:     "RBrace",
	TokenLBracket:   "LBracket",
	TokenRBracket:   "RBracket",
	TokenComma:      "Comma",
	TokenColon:      "Colon",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

var keywords = map[string]TokenKind{
	"for":    TokenFor,
	"if":     TokenIf,
	"func":   TokenFunc,
	"return": TokenReturn,
	"Wave":   TokenWave,
}

// Token is a lexeme with its source range. End is exclusive.
type Token struct {
	Kind  TokenKind
	Text  string
	Start ast.Position
	End   ast.Position
}

func (t Token) describe() string {
	switch t.Kind {
	case TokenEOF:
		return "end of input"
	case TokenNewline:
		return "newline"
	case TokenString:
		return fmt.Sprintf("string %q", t.Text)
	default:
		return fmt.Sprintf("'%s'", t.Text)
	}
}

func (t Token) span() ast.Span {
	return ast.Span{Start: t.Start, End: t.End}
}
