package parser

import (
	"github.com/akashmaji946/mypl/ast"
	"github.com/akashmaji946/mypl/token"
)

var literalKinds = map[token.Kind]bool{
	token.INT_VAL:    true,
	token.DOUBLE_VAL: true,
	token.STRING_VAL: true,
	token.BOOL_VAL:   true,
}

var binOpKinds = map[token.Kind]bool{
	token.PLUS: true, token.MINUS: true, token.TIMES: true, token.DIVIDE: true,
	token.AND: true, token.OR: true,
	token.EQUAL: true, token.NOT_EQUAL: true,
	token.LESS: true, token.GREATER: true, token.LESS_EQ: true, token.GREATER_EQ: true,
}

// parseExpr implements:
//
//	Expr ::= 'not'? Primary (BinOp Expr)?
//
// Note this is deliberately NOT precedence climbing: a chain like
// `1 + 2 * 3` produces Expr(1, '+', Expr(2, '*', Expr(3))) and the
// checker/codegen evaluate it exactly as parsed, right-leaning and at
// uniform precedence (spec.md §4.2, §9).
func (p *Parser) parseExpr() (*ast.Expr, error) {
	notOp, err := p.match(token.NOT)
	if err != nil {
		return nil, err
	}
	first, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	e := &ast.Expr{NotOp: notOp, First: first}
	opTok, isOp, err := p.tryBinOp()
	if err != nil {
		return nil, err
	}
	if isOp {
		rest, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		e.Op = &opTok
		e.Rest = rest
	}
	return e, nil
}

// tryBinOp consumes and returns the current token if it is one of
// BinOp's kinds.
func (p *Parser) tryBinOp() (token.Token, bool, error) {
	tok, err := p.current()
	if err != nil {
		return token.Token{}, false, err
	}
	if !binOpKinds[tok.Kind] {
		return token.Token{}, false, nil
	}
	if err := p.advance(); err != nil {
		return token.Token{}, false, err
	}
	return tok, true, nil
}

// parsePrimary implements:
//
//	Primary ::= '(' Expr ')' | RValue
func (p *Parser) parsePrimary() (ast.Term, error) {
	tok, err := p.current()
	if err != nil {
		return nil, err
	}
	if tok.Kind == token.LPAREN {
		if err := p.advance(); err != nil {
			return nil, err
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return &ast.ComplexTerm{Expr: e}, nil
	}
	rv, err := p.parseRValue()
	if err != nil {
		return nil, err
	}
	return &ast.SimpleTerm{RValue: rv}, nil
}

// parseRValue implements:
//
//	RValue ::= Literal | 'null' | 'new' NewTail | ID (CallTail | VarTail)
func (p *Parser) parseRValue() (ast.RValue, error) {
	tok, err := p.current()
	if err != nil {
		return nil, err
	}
	switch {
	case literalKinds[tok.Kind] || tok.Kind == token.NULL_VAL:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.SimpleRValue{Value: tok}, nil
	case tok.Kind == token.NEW:
		return p.parseNewRValue()
	case tok.Kind == token.ID:
		return p.parseIDRValue()
	default:
		return nil, p.fail("expected a value")
	}
}

// parseNewRValue implements:
//
//	NewTail ::= BaseType '[' Expr ']' | ID '(' Args? ')' | ID '[' Expr ']'
func (p *Parser) parseNewRValue() (*ast.NewRValue, error) {
	if _, err := p.expect(token.NEW); err != nil {
		return nil, err
	}
	tok, err := p.current()
	if err != nil {
		return nil, err
	}
	if baseTypeKinds[tok.Kind] {
		if err := p.advance(); err != nil {
			return nil, err
		}
		sizeExpr, err := p.parseBracketedExpr()
		if err != nil {
			return nil, err
		}
		return &ast.NewRValue{TypeName: tok, ArrayExpr: sizeExpr}, nil
	}
	name, err := p.expect(token.ID)
	if err != nil {
		return nil, err
	}
	next, err := p.current()
	if err != nil {
		return nil, err
	}
	if next.Kind == token.LBRACKET {
		sizeExpr, err := p.parseBracketedExpr()
		if err != nil {
			return nil, err
		}
		return &ast.NewRValue{TypeName: name, ArrayExpr: sizeExpr}, nil
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	hasArgs, err := p.check(token.RPAREN)
	if err != nil {
		return nil, err
	}
	var args []*ast.Expr
	if !hasArgs {
		args, err = p.parseArgs()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return &ast.NewRValue{TypeName: name, StructParams: args}, nil
}

// parseBracketedExpr implements `'[' Expr ']'`.
func (p *Parser) parseBracketedExpr() (*ast.Expr, error) {
	if _, err := p.expect(token.LBRACKET); err != nil {
		return nil, err
	}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RBRACKET); err != nil {
		return nil, err
	}
	return e, nil
}

// parseIDRValue implements the `ID (CallTail | VarTail)` half of
// RValue. VarTail and LValueTail share exactly the same shape, so the
// path is parsed with parseLValuePath.
func (p *Parser) parseIDRValue() (ast.RValue, error) {
	head, err := p.expect(token.ID)
	if err != nil {
		return nil, err
	}
	next, err := p.current()
	if err != nil {
		return nil, err
	}
	if next.Kind == token.LPAREN {
		return p.parseCallExpr(head)
	}
	path, err := p.parseLValuePath(head)
	if err != nil {
		return nil, err
	}
	return &ast.VarRValue{Path: path}, nil
}
