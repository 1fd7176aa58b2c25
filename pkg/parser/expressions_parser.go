package parser

import (
	"strconv"
	"strings"

	"github.com/Zirconova/azurite/pkg/ast"
)

func (p *Parser) expression() (ast.Expression, error) {
	return p.binary(0)
}

// Binary precedence levels, lowest first. Every level is left-associative.
var precedence = []struct {
	kind TokenKind
	ops  string
}{
	{TokenLogical, "|"},
	{TokenLogical, "&"},
	{TokenComparison, ""},
	{TokenArithmetic, "+-"},
	{TokenArithmetic, "*/%"},
	{TokenArithmetic, "^"},
}

func atLevel(level int, tok Token) bool {
	want := precedence[level]
	if tok.Kind != want.kind {
		return false
	}
	return want.ops == "" || strings.Contains(want.ops, tok.Text)
}

func (p *Parser) binary(level int) (ast.Expression, error) {
	if level == len(precedence) {
		return p.unary()
	}
	start := p.at().Start
	left, err := p.binary(level + 1)
	if err != nil {
		return nil, err
	}
	for atLevel(level, p.at()) {
		op := p.eat()
		right, err := p.binary(level + 1)
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryExpr(op.Text, left, right)
		p.finish(left, start)
	}
	return left, nil
}

func (p *Parser) unary() (ast.Expression, error) {
	tok := p.at()
	isUnary := (tok.Kind == TokenArithmetic && (tok.Text == "+" || tok.Text == "-")) ||
		(tok.Kind == TokenLogical && tok.Text == "!")
	if !isUnary {
		return p.postfix()
	}
	p.eat()
	operand, err := p.unary()
	if err != nil {
		return nil, err
	}
	expr := ast.NewUnaryExpr(tok.Text, operand)
	p.finish(expr, tok.Start)
	return expr, nil
}

// postfix parses a primary followed by any number of [index] suffixes.
func (p *Parser) postfix() (ast.Expression, error) {
	start := p.at().Start
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.at().Kind == TokenLBracket {
		p.eat()
		index, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRBracket, "expected ']' after index"); err != nil {
			return nil, err
		}
		expr = ast.NewMemberExpr(expr, index)
		p.finish(expr, start)
	}
	return expr, nil
}

func (p *Parser) primary() (ast.Expression, error) {
	tok := p.at()
	switch tok.Kind {
	case TokenNumber:
		p.eat()
		value, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return nil, &SyntaxError{Message: "invalid number", Pos: tok.Start}
		}
		lit := ast.NewNumericLiteral(value)
		ast.SetSpan(lit, tok.span())
		return lit, nil
	case TokenString:
		p.eat()
		lit := ast.NewStringLiteral(tok.Text)
		ast.SetSpan(lit, tok.span())
		return lit, nil
	case TokenIdentifier:
		if p.peek().Kind == TokenLParen {
			return p.call()
		}
		p.eat()
		id := ast.NewIdentifier(tok.Text)
		ast.SetSpan(id, tok.span())
		return id, nil
	case TokenWave:
		return p.wave()
	case TokenLBracket:
		return p.list()
	case TokenLParen:
		p.eat()
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRParen, "expected ')'"); err != nil {
			return nil, err
		}
		return inner, nil
	default:
		return nil, p.unexpected()
	}
}

func (p *Parser) call() (*ast.CallExpr, error) {
	nameTok := p.eat()
	callee := ast.NewIdentifier(nameTok.Text)
	ast.SetSpan(callee, nameTok.span())
	args, err := p.arguments()
	if err != nil {
		return nil, err
	}
	call := ast.NewCallExpr(callee, args)
	p.finish(call, nameTok.Start)
	return call, nil
}

func (p *Parser) arguments() (*ast.Arguments, error) {
	open, err := p.expect(TokenLParen, "expected '('")
	if err != nil {
		return nil, err
	}
	p.skipNewlines()
	var values []ast.Expression
	for p.at().Kind != TokenRParen {
		arg, err := p.expression()
		if err != nil {
			return nil, err
		}
		values = append(values, arg)
		p.skipNewlines()
		if p.at().Kind != TokenComma {
			break
		}
		p.eat()
		p.skipNewlines()
	}
	if _, err := p.expect(TokenRParen, "expected ')' after arguments"); err != nil {
		return nil, err
	}
	args := ast.NewArguments(values)
	p.finish(args, open.Start)
	return args, nil
}

func (p *Parser) list() (*ast.ListLiteral, error) {
	start := p.eat().Start
	p.skipNewlines()
	var elements []ast.Expression
	for p.at().Kind != TokenRBracket {
		el, err := p.expression()
		if err != nil {
			return nil, err
		}
		elements = append(elements, el)
		p.skipNewlines()
		if p.at().Kind != TokenComma {
			break
		}
		p.eat()
		p.skipNewlines()
	}
	if _, err := p.expect(TokenRBracket, "expected ']' at end of list"); err != nil {
		return nil, err
	}
	lit := ast.NewListLiteral(elements)
	p.finish(lit, start)
	return lit, nil
}

// wave parses Wave(label: expr, ...). Omitted labels take their defaults and
// a repeated label keeps the last expression.
func (p *Parser) wave() (*ast.WaveDeclaration, error) {
	start := p.eat().Start
	if _, err := p.expect(TokenLParen, "expected '(' after Wave"); err != nil {
		return nil, err
	}
	p.skipNewlines()
	fields := make(map[string]ast.Expression, len(ast.WaveLabels))
	for p.at().Kind == TokenIdentifier {
		label := p.at()
		if !isWaveLabel(label.Text) {
			return nil, p.errorf("unrecognized wave function specifier '%s'", label.Text)
		}
		p.eat()
		if _, err := p.expect(TokenColon, "expected ':' after wave label"); err != nil {
			return nil, err
		}
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		fields[label.Text] = expr
		p.skipNewlines()
		if p.at().Kind != TokenComma {
			break
		}
		p.eat()
		p.skipNewlines()
	}
	if _, err := p.expect(TokenRParen, "expected ')' at end of Wave declaration"); err != nil {
		return nil, err
	}
	decl := ast.NewWaveDeclaration(fields["waveform"], fields["freq"], fields["phase"], fields["vol"], fields["pan"])
	p.finish(decl, start)
	span := decl.Span()
	for _, label := range ast.WaveLabels {
		if _, ok := fields[label]; !ok {
			defaultSpans(waveField(decl, label), span)
		}
	}
	return decl, nil
}

func isWaveLabel(name string) bool {
	for _, label := range ast.WaveLabels {
		if label == name {
			return true
		}
	}
	return false
}

func waveField(decl *ast.WaveDeclaration, label string) ast.Expression {
	switch label {
	case "waveform":
		return decl.Waveform
	case "freq":
		return decl.Freq
	case "phase":
		return decl.Phase
	case "vol":
		return decl.Vol
	default:
		return decl.Pan
	}
}

// defaultSpans points synthesized default expressions at the declaration.
func defaultSpans(expr ast.Expression, span ast.Span) {
	ast.SetSpan(expr, span)
	if call, ok := expr.(*ast.CallExpr); ok {
		ast.SetSpan(call.Callee, span)
		ast.SetSpan(call.Args, span)
		for _, arg := range call.ArgumentValues() {
			ast.SetSpan(arg, span)
		}
	}
}
