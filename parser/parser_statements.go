package parser

import (
	"github.com/akashmaji946/mypl/ast"
	"github.com/akashmaji946/mypl/token"
)

// parseStmt implements:
//
//	Stmt ::= VarDecl ';' | AssignOrCall ';' | ReturnStmt ';'
//	       | IfStmt | WhileStmt | ForStmt | TryStmt
func (p *Parser) parseStmt() (ast.Stmt, error) {
	tok, err := p.current()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case token.TRY:
		return p.parseTryStmt()
	case token.WHILE:
		return p.parseWhileStmt()
	case token.IF:
		return p.parseIfStmt()
	case token.FOR:
		return p.parseForStmt()
	case token.RETURN:
		rs, err := p.parseReturnStmt()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.SEMICOLON); err != nil {
			return nil, err
		}
		return rs, nil
	case token.ARRAY, token.INT_TYPE, token.DOUBLE_TYPE, token.BOOL_TYPE, token.STRING_TYPE:
		vd, err := p.parseVarDecl()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.SEMICOLON); err != nil {
			return nil, err
		}
		return vd, nil
	case token.ID:
		return p.parseIDLedStmt()
	default:
		return nil, p.fail("expected a statement")
	}
}

// parseIDLedStmt resolves the one grammar ambiguity that needs two
// tokens of lookahead: an ID starting a statement is either the type
// name of a struct-typed VarDecl (`Point p = ...`), or the target of a
// call or assignment (AssignOrCall).
func (p *Parser) parseIDLedStmt() (ast.Stmt, error) {
	head, err := p.expect(token.ID)
	if err != nil {
		return nil, err
	}
	next, err := p.current()
	if err != nil {
		return nil, err
	}
	if next.Kind == token.ID {
		vd, err := p.finishVarDecl(ast.DataType{TypeName: head})
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.SEMICOLON); err != nil {
			return nil, err
		}
		return vd, nil
	}
	if next.Kind == token.LPAREN {
		call, err := p.parseCallExpr(head)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.SEMICOLON); err != nil {
			return nil, err
		}
		return call, nil
	}
	assign, err := p.parseAssignStmt(head)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return assign, nil
}

// parseVarDecl implements the DataType-led half of:
//
//	VarDecl ::= DataType ID ('=' Expr)?
func (p *Parser) parseVarDecl() (*ast.VarDecl, error) {
	dt, err := p.parseDataType()
	if err != nil {
		return nil, err
	}
	return p.finishVarDecl(dt)
}

// finishVarDecl consumes the ID and optional initializer once the
// DataType (however it was produced) is already in hand.
func (p *Parser) finishVarDecl(dt ast.DataType) (*ast.VarDecl, error) {
	name, err := p.expect(token.ID)
	if err != nil {
		return nil, err
	}
	vd := &ast.VarDecl{VarDef: &ast.VarDef{Type: dt, Name: name}}
	hasInit, err := p.match(token.ASSIGN)
	if err != nil {
		return nil, err
	}
	if hasInit {
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		vd.Expr = expr
	}
	return vd, nil
}

// parseAssignStmt implements the `LValueTail '=' Expr` half of
// AssignOrCall, given the already-consumed head identifier.
func (p *Parser) parseAssignStmt(head token.Token) (*ast.AssignStmt, error) {
	path, err := p.parseLValuePath(head)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ASSIGN); err != nil {
		return nil, err
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.AssignStmt{LValue: path, Expr: expr}, nil
}

// parseLValuePath implements:
//
//	LValueTail ::= ('[' Expr ']')? ('.' ID ('[' Expr ']')?)*
//
// returning the full dotted/indexed path including the head element.
func (p *Parser) parseLValuePath(head token.Token) ([]*ast.VarRef, error) {
	first := &ast.VarRef{Name: head}
	hasIdx, err := p.match(token.LBRACKET)
	if err != nil {
		return nil, err
	}
	if hasIdx {
		idx, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RBRACKET); err != nil {
			return nil, err
		}
		first.ArrayExpr = idx
	}
	path := []*ast.VarRef{first}
	for {
		hasDot, err := p.match(token.DOT)
		if err != nil {
			return nil, err
		}
		if !hasDot {
			return path, nil
		}
		name, err := p.expect(token.ID)
		if err != nil {
			return nil, err
		}
		step := &ast.VarRef{Name: name}
		hasIdx, err := p.match(token.LBRACKET)
		if err != nil {
			return nil, err
		}
		if hasIdx {
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RBRACKET); err != nil {
				return nil, err
			}
			step.ArrayExpr = idx
		}
		path = append(path, step)
	}
}

// parseCallExpr implements:
//
//	CallTail ::= '(' Args? ')'
//
// given the already-consumed function-name token.
func (p *Parser) parseCallExpr(funName token.Token) (*ast.CallExpr, error) {
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
	return &ast.CallExpr{FunName: funName, Args: args}, nil
}

// parseArgs implements:
//
//	Args ::= Expr (',' Expr)*
func (p *Parser) parseArgs() ([]*ast.Expr, error) {
	var args []*ast.Expr
	for {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, e)
		more, err := p.match(token.COMMA)
		if err != nil {
			return nil, err
		}
		if !more {
			return args, nil
		}
	}
}

// parseParenExpr implements `'(' Expr ')'`, used by if/elseif/while
// conditions.
func (p *Parser) parseParenExpr() (*ast.Expr, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return e, nil
}

// parseIfStmt implements:
//
//	IfStmt ::= 'if' '(' Expr ')' Block
//	           ('elseif' '(' Expr ')' Block)* ('else' Block)?
func (p *Parser) parseIfStmt() (*ast.IfStmt, error) {
	if _, err := p.expect(token.IF); err != nil {
		return nil, err
	}
	cond, err := p.parseParenExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt := &ast.IfStmt{IfPart: &ast.BasicIf{Condition: cond, Stmts: body}}
	for {
		isElseif, err := p.match(token.ELSEIF)
		if err != nil {
			return nil, err
		}
		if !isElseif {
			break
		}
		c, err := p.parseParenExpr()
		if err != nil {
			return nil, err
		}
		b, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.ElseIfs = append(stmt.ElseIfs, &ast.BasicIf{Condition: c, Stmts: b})
	}
	isElse, err := p.match(token.ELSE)
	if err != nil {
		return nil, err
	}
	if isElse {
		b, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.ElseStmts = b
	}
	return stmt, nil
}

// parseWhileStmt implements:
//
//	WhileStmt ::= 'while' '(' Expr ')' Block
func (p *Parser) parseWhileStmt() (*ast.WhileStmt, error) {
	if _, err := p.expect(token.WHILE); err != nil {
		return nil, err
	}
	cond, err := p.parseParenExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Condition: cond, Stmts: body}, nil
}

// parseForStmt implements:
//
//	ForStmt ::= 'for' '(' VarDecl ';' Expr ';' AssignStmt ')' Block
func (p *Parser) parseForStmt() (*ast.ForStmt, error) {
	if _, err := p.expect(token.FOR); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	vd, err := p.parseVarDecl()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	head, err := p.expect(token.ID)
	if err != nil {
		return nil, err
	}
	assign, err := p.parseAssignStmt(head)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.ForStmt{VarDecl: vd, Condition: cond, AssignStmt: assign, Stmts: body}, nil
}

// parseTryStmt implements:
//
//	TryStmt ::= 'try' Block 'catch' Block
func (p *Parser) parseTryStmt() (*ast.TryCatchStmt, error) {
	if _, err := p.expect(token.TRY); err != nil {
		return nil, err
	}
	tryBody, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.CATCH); err != nil {
		return nil, err
	}
	catchBody, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.TryCatchStmt{TryStmts: tryBody, CatchStmts: catchBody}, nil
}

// parseReturnStmt implements:
//
//	ReturnStmt ::= 'return' Expr
//
// A bare `return;` fails inside parseExpr, since ';' cannot start a
// Primary.
func (p *Parser) parseReturnStmt() (*ast.ReturnStmt, error) {
	if _, err := p.expect(token.RETURN); err != nil {
		return nil, err
	}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.ReturnStmt{Expr: e}, nil
}
