// Package parser implements the Pratt-style expression/statement parser
// (C6 of SPEC_FULL.md). Grounded on the teacher's internal/parser
// precedence-climbing structure (a single Parser type carrying a
// two-token lookahead and a prefix/infix table keyed by token), but the
// grammar itself is gosimpl's own, much smaller one (spec.md §4.6).
package parser

import (
	"strconv"

	"github.com/gosimpl-lang/gosimpl/internal/ast"
	"github.com/gosimpl-lang/gosimpl/internal/errors"
	"github.com/gosimpl-lang/gosimpl/internal/lexer"
	"github.com/gosimpl-lang/gosimpl/internal/token"
)

// precedence levels, lowest to highest (spec.md §4.6). assign sits below
// everything so that `a = b || c` parses as `a = (b || c)`.
const (
	lowest = iota
	assign
	or  // || && &
	cmp // == != < <= > >=
	add // + -
	mul // * / %
	pow // ^
)

var binaryPrecedence = map[string]int{
	"||": or, "&&": or, "&": or,
	"==": cmp, "!=": cmp, "<": cmp, "<=": cmp, ">": cmp, ">=": cmp,
	"+": add, "-": add,
	"*": mul, "/": mul, "%": mul,
	"^": pow,
}

// Parser turns a token stream into an *ast.Program. It is not reusable
// across inputs; construct a fresh one per parse via New.
type Parser struct {
	lex *lexer.Lexer

	cur  token.Token
	peek token.Token

	atTopLevel bool // false once inside any def/if/while/for/object body
}

// New constructs a Parser over src, lexing it on demand.
func New(src string) *Parser {
	p := &Parser{lex: lexer.New(src), atTopLevel: true}
	// prime cur/peek; a lex error on the very first token is stashed as an
	// ILLEGAL token, as advance does, so the first real call reports it.
	first, err := p.lex.NextToken()
	if err != nil {
		first = token.Token{Kind: token.ILLEGAL, Literal: err.Error(), Pos: err.Pos}
	}
	p.peek = first
	p.advance()
	return p
}

// ParseProgram parses the entire input, stopping at the first error
// (spec.md §4.6 "Failure: ParseError ... on any rule violation").
func ParseProgram(src string) (*ast.Program, *errors.Error) {
	p := New(src)
	prog := &ast.Program{}
	for p.cur.Kind != token.EOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, stmt)
	}
	return prog, nil
}

func (p *Parser) advance() {
	p.cur = p.peek
	next, err := p.lex.NextToken()
	if err != nil {
		// surface lexer errors lazily: stash an ILLEGAL token carrying the
		// error's message so the next parse step reports it with position.
		p.peek = token.Token{Kind: token.ILLEGAL, Literal: err.Error(), Pos: err.Pos}
		return
	}
	p.peek = next
}

func (p *Parser) curIsOp(lit string) bool {
	return p.cur.Kind == token.OP && p.cur.Literal == lit
}

func (p *Parser) errAt(format string, args ...any) *errors.Error {
	return errors.At(errors.ParseError, p.cur.Pos, format, args...)
}

// expect verifies p.cur is of kind and advances past it; otherwise it
// raises a ParseError.
func (p *Parser) expect(kind token.Kind, what string) *errors.Error {
	if p.cur.Kind != kind {
		if p.cur.Kind == token.EOF {
			return p.errAt("expected %s, found %q", what, "EOF")
		}
		return p.errAt("expected %s, found %q", what, p.cur.Literal)
	}
	p.advance()
	return nil
}

func (p *Parser) expectOp(lit string) *errors.Error {
	if !p.curIsOp(lit) {
		return p.errAt("expected %q, found %q", lit, p.cur.Literal)
	}
	p.advance()
	return nil
}

// ---- expression parsing ----

// parseExpression is the precedence-climbing core: it parses a prefix
// (nud) term, then repeatedly folds in infix/postfix operators whose
// precedence exceeds minPrec.
func (p *Parser) parseExpression(minPrec int) (ast.Expr, *errors.Error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}

	for {
		switch {
		case p.curIsOp("=") && assign > minPrec:
			left, err = p.parseAssign(left)
		case p.cur.Kind == token.OP && binaryPrecedence[p.cur.Literal] > minPrec:
			left, err = p.parseBinary(left, binaryPrecedence[p.cur.Literal])
		case p.curIsOp("++") || p.curIsOp("--"):
			left, err = p.parsePostfixIncDec(left)
		case p.curIsOp("..."):
			left, err = p.parseExpand(left)
		default:
			return left, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func (p *Parser) parseBinary(left ast.Expr, prec int) (ast.Expr, *errors.Error) {
	op := p.cur.Literal
	pos := p.cur.Pos
	p.advance()
	// '^' is conventionally right-associative (2^3^2 == 2^(3^2)); every
	// other binary operator here is left-associative.
	rightPrec := prec
	if op == "^" {
		rightPrec = prec - 1
	}
	right, err := p.parseExpression(rightPrec)
	if err != nil {
		return nil, err
	}
	return &ast.BinaryExpr{Op: op, Left: left, Right: right, Base: ast.NewBase(pos)}, nil
}

func (p *Parser) parseAssign(left ast.Expr) (ast.Expr, *errors.Error) {
	path, ok := left.(*ast.IdentifierPath)
	if !ok {
		return nil, p.errAt("left-hand side of '=' must be an identifier path")
	}
	pos := p.cur.Pos
	p.advance() // consume '='
	value, err := p.parseExpression(assign - 1)
	if err != nil {
		return nil, err
	}
	return &ast.AssignExpr{Target: path, Value: value, Base: ast.NewBase(pos)}, nil
}

func (p *Parser) parsePostfixIncDec(left ast.Expr) (ast.Expr, *errors.Error) {
	path, ok := left.(*ast.IdentifierPath)
	if !ok {
		return nil, p.errAt("%q requires an identifier path operand", p.cur.Literal)
	}
	op := p.cur.Literal
	pos := p.cur.Pos
	p.advance()
	return &ast.IncDecExpr{Op: op, Target: path, Postfix: true, Base: ast.NewBase(pos)}, nil
}

func (p *Parser) parseExpand(left ast.Expr) (ast.Expr, *errors.Error) {
	pos := p.cur.Pos
	p.advance() // consume '...'
	return &ast.ExpandExpr{Value: left, Base: ast.NewBase(pos)}, nil
}

// parsePrefix parses an atom or a prefix operator application: number,
// string, `new`-expression, identifier (with postfix chain/call), `&NAME`,
// prefix `++`/`--`, and synthesized unary minus (spec.md §9 note 2 / §14.2).
func (p *Parser) parsePrefix() (ast.Expr, *errors.Error) {
	pos := p.cur.Pos
	switch {
	case p.cur.Kind == token.NUMBER:
		n, convErr := strconv.ParseFloat(p.cur.Literal, 64)
		if convErr != nil {
			return nil, p.errAt("invalid number literal %q", p.cur.Literal)
		}
		p.advance()
		return &ast.NumberLiteral{Value: n, Base: ast.NewBase(pos)}, nil

	case p.cur.Kind == token.STRING:
		s := p.cur.Literal
		p.advance()
		return &ast.StringLiteral{Value: s, Base: ast.NewBase(pos)}, nil

	case p.cur.Kind == token.IDENT:
		return p.parseIdentOrCall()

	case p.cur.Kind == token.NEW:
		return p.parseNewExpr()

	case p.curIsOp("&"):
		p.advance()
		if p.cur.Kind != token.IDENT {
			return nil, p.errAt("expected identifier after '&', found %q", p.cur.Literal)
		}
		name := p.cur.Literal
		p.advance()
		return &ast.AddressOfExpr{Name: name, Base: ast.NewBase(pos)}, nil

	case p.curIsOp("++") || p.curIsOp("--"):
		op := p.cur.Literal
		p.advance()
		operand, err := p.parseExpression(add)
		if err != nil {
			return nil, err
		}
		path, ok := operand.(*ast.IdentifierPath)
		if !ok {
			return nil, p.errAt("%q requires an identifier path operand", op)
		}
		return &ast.IncDecExpr{Op: op, Target: path, Postfix: false, Base: ast.NewBase(pos)}, nil

	case p.curIsOp("-"):
		p.advance()
		operand, err := p.parseExpression(mul)
		if err != nil {
			return nil, err
		}
		zero := &ast.NumberLiteral{Value: 0, Base: ast.NewBase(pos)}
		return &ast.BinaryExpr{Op: "-", Left: zero, Right: operand, Base: ast.NewBase(pos)}, nil
	}

	if p.cur.Kind == token.LPAREN {
		p.advance()
		inner, err := p.parseExpression(lowest)
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.RPAREN, "')'"); err != nil {
			return nil, err
		}
		return inner, nil
	}

	if p.cur.Kind == token.ILLEGAL {
		return nil, p.errAt("%s", p.cur.Literal)
	}
	return nil, p.errAt("unexpected token %q", p.cur.Literal)
}

// parseIdentOrCall parses an identifier atom: either an immediate call
// `NAME(ARGS)`, or an identifier path built from `.NAME`/`[INDEX]`
// postfixes (spec.md §4.6 "Postfix operators attached to an identifier
// atom").
func (p *Parser) parseIdentOrCall() (ast.Expr, *errors.Error) {
	pos := p.cur.Pos
	name := p.cur.Literal
	p.advance()

	if p.cur.Kind == token.LPAREN {
		return p.parseCallArgs(name, pos)
	}

	path := &ast.IdentifierPath{Name: name, Base: ast.NewBase(pos)}
	for {
		switch {
		case p.cur.Kind == token.DOT:
			p.advance()
			if p.cur.Kind != token.IDENT {
				return nil, p.errAt("expected field name after '.', found %q", p.cur.Literal)
			}
			fpos := p.cur.Pos
			path.Accessors = append(path.Accessors, &ast.FieldAccessor{Name: p.cur.Literal, Base: ast.NewBase(fpos)})
			p.advance()
		case p.cur.Kind == token.LBRACKET:
			p.advance()
			idx, err := p.parseExpression(lowest)
			if err != nil {
				return nil, err
			}
			if err := p.expect(token.RBRACKET, "']'"); err != nil {
				return nil, err
			}
			path.Accessors = append(path.Accessors, &ast.IndexAccessor{Index: idx})
		default:
			return path, nil
		}
	}
}

func (p *Parser) parseCallArgs(name string, pos token.Position) (ast.Expr, *errors.Error) {
	if err := p.expect(token.LPAREN, "'('"); err != nil {
		return nil, err
	}
	call := &ast.CallExpr{Name: name, Base: ast.NewBase(pos)}
	for p.cur.Kind != token.RPAREN {
		arg, err := p.parseExpression(assign)
		if err != nil {
			return nil, err
		}
		spread := false
		if expand, ok := arg.(*ast.ExpandExpr); ok {
			arg = expand.Value
			spread = true
		}
		call.Args = append(call.Args, arg)
		call.Spread = append(call.Spread, spread)
		if p.cur.Kind == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	if err := p.expect(token.RPAREN, "')'"); err != nil {
		return nil, err
	}
	return call, nil
}

// parseNewExpr parses `new TYPE { ... }`, `new { ... }`, or `new [ ... ]`
// (spec.md §4.6 "Initializer lists").
func (p *Parser) parseNewExpr() (ast.Expr, *errors.Error) {
	pos := p.cur.Pos
	p.advance() // consume 'new'

	if p.cur.Kind == token.LBRACKET {
		return p.parseNewArray(pos)
	}

	typeName := ""
	if p.cur.Kind == token.IDENT {
		typeName = p.cur.Literal
		p.advance()
	}

	fields, err := p.parseFieldInits()
	if err != nil {
		return nil, err
	}
	if typeName == "" {
		return &ast.NewBlobExpr{Fields: fields, Base: ast.NewBase(pos)}, nil
	}
	return &ast.NewInstanceExpr{Type: typeName, Fields: fields, Base: ast.NewBase(pos)}, nil
}

func (p *Parser) parseNewArray(pos token.Position) (ast.Expr, *errors.Error) {
	if err := p.expect(token.LBRACKET, "'['"); err != nil {
		return nil, err
	}
	arr := &ast.NewArrayExpr{Base: ast.NewBase(pos)}
	for p.cur.Kind != token.RBRACKET {
		el, err := p.parseExpression(assign)
		if err != nil {
			return nil, err
		}
		arr.Elements = append(arr.Elements, el)
		if p.cur.Kind == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	if err := p.expect(token.RBRACKET, "']'"); err != nil {
		return nil, err
	}
	return arr, nil
}

func (p *Parser) parseFieldInits() ([]ast.FieldInit, *errors.Error) {
	if err := p.expect(token.LBRACE, "'{'"); err != nil {
		return nil, err
	}
	var fields []ast.FieldInit
	for p.cur.Kind != token.RBRACE {
		if p.cur.Kind != token.IDENT {
			return nil, p.errAt("expected field name, found %q", p.cur.Literal)
		}
		name := p.cur.Literal
		p.advance()
		if err := p.expectOp("="); err != nil {
			return nil, err
		}
		val, err := p.parseExpression(assign)
		if err != nil {
			return nil, err
		}
		fields = append(fields, ast.FieldInit{Name: name, Value: val})
		if p.cur.Kind == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	if err := p.expect(token.RBRACE, "'}'"); err != nil {
		return nil, err
	}
	return fields, nil
}
