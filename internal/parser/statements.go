package parser

import (
	"github.com/gosimpl-lang/gosimpl/internal/ast"
	"github.com/gosimpl-lang/gosimpl/internal/errors"
	"github.com/gosimpl-lang/gosimpl/internal/token"
)

// parseStatement dispatches on the current token to the right statement
// rule (spec.md §4.6 "Statement grammar").
func (p *Parser) parseStatement() (ast.Statement, *errors.Error) {
	switch p.cur.Kind {
	case token.LET:
		return p.parseLet()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.FOR:
		return p.parseFor()
	case token.DEF:
		return p.parseDef()
	case token.RETURN:
		return p.parseReturn()
	case token.OBJECT:
		return p.parseObject()
	case token.AT:
		return p.parseDirective()
	case token.LBRACE:
		return p.parseBlock()
	case token.ILLEGAL:
		return nil, p.errAt("%s", p.cur.Literal)
	default:
		return p.parseExpressionStatement()
	}
}

// parseBody parses a single statement or a brace-delimited block, per
// spec.md §4.6 "A STATEMENT is either a single statement or a ... block".
func (p *Parser) parseBody() (ast.Statement, *errors.Error) {
	wasTop := p.atTopLevel
	p.atTopLevel = false
	defer func() { p.atTopLevel = wasTop }()
	if p.cur.Kind == token.LBRACE {
		return p.parseBlock()
	}
	return p.parseStatement()
}

func (p *Parser) parseBlock() (*ast.BlockStatement, *errors.Error) {
	pos := p.cur.Pos
	if err := p.expect(token.LBRACE, "'{'"); err != nil {
		return nil, err
	}
	block := &ast.BlockStatement{Base: ast.NewBase(pos)}
	for p.cur.Kind != token.RBRACE {
		if p.cur.Kind == token.EOF {
			return nil, p.errAt("unexpected end of input, expected '}'")
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, stmt)
	}
	if err := p.expect(token.RBRACE, "'}'"); err != nil {
		return nil, err
	}
	return block, nil
}

func (p *Parser) parseLet() (*ast.LetStatement, *errors.Error) {
	pos := p.cur.Pos
	p.advance() // consume 'let'
	if p.cur.Kind != token.IDENT {
		return nil, p.errAt("expected identifier after 'let', found %q", p.cur.Literal)
	}
	name := p.cur.Literal
	p.advance()

	stmt := &ast.LetStatement{Name: name, Base: ast.NewBase(pos)}
	if p.curIsOp("=") {
		p.advance()
		val, err := p.parseExpression(assign)
		if err != nil {
			return nil, err
		}
		stmt.Value = val
	}
	if err := p.expect(token.SEMICOLON, "';'"); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseExpressionStatement() (*ast.ExpressionStatement, *errors.Error) {
	pos := p.cur.Pos
	expr, err := p.parseExpression(lowest)
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.SEMICOLON, "';'"); err != nil {
		return nil, err
	}
	return &ast.ExpressionStatement{Expr: expr, Base: ast.NewBase(pos)}, nil
}

func (p *Parser) parseIf() (*ast.IfStatement, *errors.Error) {
	pos := p.cur.Pos
	stmt := &ast.IfStatement{Base: ast.NewBase(pos)}

	for {
		p.advance() // consume 'if' or 'else' 'if'
		if err := p.expect(token.LPAREN, "'('"); err != nil {
			return nil, err
		}
		cond, err := p.parseExpression(lowest)
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.RPAREN, "')'"); err != nil {
			return nil, err
		}
		body, err := p.parseBody()
		if err != nil {
			return nil, err
		}
		stmt.Clauses = append(stmt.Clauses, ast.IfClause{Cond: cond, Body: body})

		if p.cur.Kind == token.ELSE && p.peek.Kind == token.IF {
			p.advance() // consume 'else', leaving 'if' as cur for the loop's advance()
			continue
		}
		break
	}

	if p.cur.Kind == token.ELSE {
		p.advance()
		elseBody, err := p.parseBody()
		if err != nil {
			return nil, err
		}
		stmt.Else = elseBody
	}
	return stmt, nil
}

func (p *Parser) parseWhile() (*ast.WhileStatement, *errors.Error) {
	pos := p.cur.Pos
	p.advance() // consume 'while'
	if err := p.expect(token.LPAREN, "'('"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(lowest)
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.RPAREN, "')'"); err != nil {
		return nil, err
	}
	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStatement{Cond: cond, Body: body, Base: ast.NewBase(pos)}, nil
}

func (p *Parser) parseFor() (*ast.ForStatement, *errors.Error) {
	pos := p.cur.Pos
	p.advance() // consume 'for'
	if err := p.expect(token.LPAREN, "'('"); err != nil {
		return nil, err
	}
	init, err := p.parseLet()
	if err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(lowest)
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.SEMICOLON, "';'"); err != nil {
		return nil, err
	}
	step, err := p.parseExpression(lowest)
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.RPAREN, "')'"); err != nil {
		return nil, err
	}
	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	return &ast.ForStatement{Init: init, Cond: cond, Step: step, Body: body, Base: ast.NewBase(pos)}, nil
}

// parseDef parses `def NAME (ARG_LIST) STMT`. spec.md §4.6: legal only at
// top-level scope; nested `def` is a ParseError.
func (p *Parser) parseDef() (*ast.DefStatement, *errors.Error) {
	pos := p.cur.Pos
	if !p.atTopLevel {
		return nil, p.errAt("'def' is only permitted at top-level scope")
	}
	p.advance() // consume 'def'
	if p.cur.Kind != token.IDENT {
		return nil, p.errAt("expected function name after 'def', found %q", p.cur.Literal)
	}
	name := p.cur.Literal
	p.advance()

	if err := p.expect(token.LPAREN, "'('"); err != nil {
		return nil, err
	}
	var params []ast.Param
	for p.cur.Kind != token.RPAREN {
		if p.cur.Kind != token.IDENT {
			return nil, p.errAt("expected parameter name, found %q", p.cur.Literal)
		}
		param := ast.Param{Name: p.cur.Literal, Type: "any"}
		p.advance()
		if p.cur.Kind == token.IS {
			p.advance()
			if p.cur.Kind != token.IDENT {
				return nil, p.errAt("expected type name after 'is', found %q", p.cur.Literal)
			}
			param.Type = p.cur.Literal
			p.advance()
		}
		params = append(params, param)
		if p.cur.Kind == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	if err := p.expect(token.RPAREN, "')'"); err != nil {
		return nil, err
	}

	wasTop := p.atTopLevel
	p.atTopLevel = false
	body, err := p.parseBlock()
	p.atTopLevel = wasTop
	if err != nil {
		return nil, err
	}
	return &ast.DefStatement{Name: name, Params: params, Body: body, Base: ast.NewBase(pos)}, nil
}

func (p *Parser) parseReturn() (*ast.ReturnStatement, *errors.Error) {
	pos := p.cur.Pos
	p.advance() // consume 'return'
	stmt := &ast.ReturnStatement{Base: ast.NewBase(pos)}
	if p.cur.Kind != token.SEMICOLON {
		val, err := p.parseExpression(lowest)
		if err != nil {
			return nil, err
		}
		stmt.Value = val
	}
	if err := p.expect(token.SEMICOLON, "';'"); err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseObject parses `object NAME [inherits PARENT] { MEMBERS }` (spec.md
// §4.6 "Object definition").
func (p *Parser) parseObject() (*ast.ObjectStatement, *errors.Error) {
	pos := p.cur.Pos
	p.advance() // consume 'object'
	if p.cur.Kind != token.IDENT {
		return nil, p.errAt("expected type name after 'object', found %q", p.cur.Literal)
	}
	stmt := &ast.ObjectStatement{Name: p.cur.Literal, Base: ast.NewBase(pos)}
	p.advance()

	if p.cur.Kind == token.INHERITS {
		p.advance()
		if p.cur.Kind != token.IDENT {
			return nil, p.errAt("expected parent type name after 'inherits', found %q", p.cur.Literal)
		}
		stmt.Parent = p.cur.Literal
		p.advance()
	}

	if err := p.expect(token.LBRACE, "'{'"); err != nil {
		return nil, err
	}
	for p.cur.Kind != token.RBRACE {
		if p.cur.Kind != token.IDENT {
			return nil, p.errAt("expected member name, found %q", p.cur.Literal)
		}
		member := ast.ObjectMember{Name: p.cur.Literal}
		p.advance()
		if p.curIsOp("=") {
			p.advance()
			val, err := p.parseExpression(assign)
			if err != nil {
				return nil, err
			}
			member.Default = val
		}
		if err := p.expect(token.SEMICOLON, "';'"); err != nil {
			return nil, err
		}
		stmt.Members = append(stmt.Members, member)
	}
	if err := p.expect(token.RBRACE, "'}'"); err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseDirective parses `@import NAME` or `@loadlib "PATH"` (spec.md §4.6,
// §6), each optionally followed by ';'. The directive keyword itself lexes
// as a plain IDENT following '@'.
func (p *Parser) parseDirective() (ast.Statement, *errors.Error) {
	pos := p.cur.Pos
	p.advance() // consume '@'
	if p.cur.Kind != token.IDENT {
		return nil, p.errAt("expected directive name after '@', found %q", p.cur.Literal)
	}
	switch p.cur.Literal {
	case "import":
		p.advance()
		if p.cur.Kind != token.IDENT {
			return nil, p.errAt("expected module name after '@import', found %q", p.cur.Literal)
		}
		name := p.cur.Literal
		p.advance()
		if p.cur.Kind == token.SEMICOLON {
			p.advance() // an optional ';' may close the directive
		}
		return &ast.ImportStatement{Name: name, Base: ast.NewBase(pos)}, nil
	case "loadlib":
		p.advance()
		if p.cur.Kind != token.STRING {
			return nil, p.errAt("expected a quoted path after '@loadlib', found %q", p.cur.Literal)
		}
		path := p.cur.Literal
		p.advance()
		if p.cur.Kind == token.SEMICOLON {
			p.advance() // an optional ';' may close the directive
		}
		return &ast.LoadLibStatement{Path: path, Base: ast.NewBase(pos)}, nil
	default:
		return nil, p.errAt("unknown directive %q", p.cur.Literal)
	}
}
