package parser

import (
	"fmt"

	"github.com/Zirconova/azurite/pkg/ast"
)

// Parser is a recursive-descent parser over a token stream.
type Parser struct {
	tokens []Token
	pos    int
}

// ParseProgram lexes and parses a complete source file.
func ParseProgram(source string) (*ast.Program, error) {
	tokens, err := Tokenize(source)
	if err != nil {
		return nil, err
	}
	return NewParser(tokens).Program()
}

func NewParser(tokens []Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != TokenEOF {
		tokens = append(tokens, Token{Kind: TokenEOF})
	}
	return &Parser{tokens: tokens}
}

// Program parses statements until EOF.
func (p *Parser) Program() (*ast.Program, error) {
	start := p.at().Start
	body, err := p.statements()
	if err != nil {
		return nil, err
	}
	if p.at().Kind != TokenEOF {
		return nil, p.unexpected()
	}
	prog := ast.NewProgram(body)
	ast.SetSpan(prog, ast.Span{Start: start, End: p.at().End})
	return prog, nil
}

func (p *Parser) at() Token {
	return p.tokens[p.pos]
}

func (p *Parser) peek() Token {
	if p.pos+1 < len(p.tokens) {
		return p.tokens[p.pos+1]
	}
	return p.tokens[len(p.tokens)-1]
}

func (p *Parser) eat() Token {
	tok := p.tokens[p.pos]
	if tok.Kind != TokenEOF {
		p.pos++
	}
	return tok
}

// prevEnd is the end position of the most recently consumed token.
func (p *Parser) prevEnd() ast.Position {
	if p.pos == 0 {
		return p.at().Start
	}
	return p.tokens[p.pos-1].End
}

func (p *Parser) finish(node ast.Node, start ast.Position) {
	ast.SetSpan(node, ast.Span{Start: start, End: p.prevEnd()})
}

func (p *Parser) skipNewlines() {
	for p.at().Kind == TokenNewline {
		p.eat()
	}
}

// atEnd reports whether only newlines remain before EOF.
func (p *Parser) atEnd() bool {
	for i := p.pos; i < len(p.tokens); i++ {
		switch p.tokens[i].Kind {
		case TokenNewline:
			continue
		case TokenEOF:
			return true
		default:
			return false
		}
	}
	return true
}

func (p *Parser) errorf(format string, args ...any) error {
	return &SyntaxError{
		Message:    fmt.Sprintf(format, args...),
		Pos:        p.at().Start,
		Incomplete: p.atEnd(),
	}
}

func (p *Parser) unexpected() error {
	if p.atEnd() {
		return p.errorf("unexpected end of input")
	}
	return p.errorf("unexpected %s", p.at().describe())
}

func (p *Parser) expect(kind TokenKind, msg string) (Token, error) {
	if p.at().Kind != kind {
		return Token{}, p.errorf("%s", msg)
	}
	return p.eat(), nil
}
