package parser

import (
	"github.com/Zirconova/azurite/pkg/ast"
)

// statements parses until EOF or a closing brace, which is left unconsumed.
func (p *Parser) statements() (*ast.Stmts, error) {
	p.skipNewlines()
	start := p.at().Start
	var body []ast.Statement
	for {
		p.skipNewlines()
		if k := p.at().Kind; k == TokenEOF || k == TokenRBrace {
			break
		}
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
		switch p.at().Kind {
		case TokenNewline:
			p.eat()
		case TokenRBrace, TokenEOF:
		default:
			return nil, p.errorf("expected newline after statement, found %s", p.at().describe())
		}
	}
	stmts := ast.NewStmts(body)
	p.finish(stmts, start)
	return stmts, nil
}

func (p *Parser) statement() (ast.Statement, error) {
	switch p.at().Kind {
	case TokenIf:
		return p.ifStatement()
	case TokenFor:
		return p.forStatement()
	case TokenFunc:
		return p.functionDeclaration()
	case TokenReturn:
		return p.returnStatement()
	}
	start := p.at().Start
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if p.at().Kind != TokenEquals {
		return expr, nil
	}
	switch expr.(type) {
	case *ast.Identifier, *ast.MemberExpr:
	default:
		return nil, p.errorf("invalid assignment target")
	}
	p.eat()
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	assign := ast.NewAssignStmt(expr, value)
	p.finish(assign, start)
	return assign, nil
}

func (p *Parser) block() (*ast.Stmts, error) {
	if _, err := p.expect(TokenLBrace, "expected '{' at start of block"); err != nil {
		return nil, err
	}
	body, err := p.statements()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRBrace, "expected '}' at end of block"); err != nil {
		return nil, err
	}
	return body, nil
}

func (p *Parser) ifStatement() (*ast.IfStmt, error) {
	start := p.eat().Start
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	stmt := ast.NewIfStmt(cond, body)
	p.finish(stmt, start)
	return stmt, nil
}

func (p *Parser) forStatement() (*ast.ForStmt, error) {
	start := p.eat().Start
	iterator, err := p.identifier("expected identifier in for loop header")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenLParen, "expected '(' after loop iterator"); err != nil {
		return nil, err
	}
	from, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenComma, "expected ',' between loop bounds"); err != nil {
		return nil, err
	}
	to, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRParen, "expected ')' after loop bounds"); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	stmt := ast.NewForStmt(iterator, from, to, body)
	p.finish(stmt, start)
	return stmt, nil
}

func (p *Parser) functionDeclaration() (*ast.FunctionDeclaration, error) {
	start := p.eat().Start
	name, err := p.identifier("expected identifier in function header")
	if err != nil {
		return nil, err
	}
	params, err := p.parameters()
	if err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	decl := ast.NewFunctionDeclaration(name, params, body)
	p.finish(decl, start)
	return decl, nil
}

func (p *Parser) parameters() (*ast.Parameters, error) {
	open, err := p.expect(TokenLParen, "expected '(' after function name")
	if err != nil {
		return nil, err
	}
	var names []*ast.Identifier
	if p.at().Kind != TokenRParen {
		for {
			id, err := p.identifier("expected parameter name")
			if err != nil {
				return nil, err
			}
			names = append(names, id)
			if p.at().Kind != TokenComma {
				break
			}
			p.eat()
		}
	}
	if _, err := p.expect(TokenRParen, "expected ')' after parameters"); err != nil {
		return nil, err
	}
	params := ast.NewParameters(names)
	p.finish(params, open.Start)
	return params, nil
}

func (p *Parser) returnStatement() (*ast.ReturnStmt, error) {
	start := p.eat().Start
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	stmt := ast.NewReturnStmt(value)
	p.finish(stmt, start)
	return stmt, nil
}

func (p *Parser) identifier(msg string) (*ast.Identifier, error) {
	tok, err := p.expect(TokenIdentifier, msg)
	if err != nil {
		return nil, err
	}
	id := ast.NewIdentifier(tok.Text)
	ast.SetSpan(id, tok.span())
	return id, nil
}
