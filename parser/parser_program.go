package parser

import (
	"github.com/akashmaji946/mypl/ast"
	"github.com/akashmaji946/mypl/token"
)

// parseStructDef implements:
//
//	StructDef ::= 'struct' ID '{' Field* '}'
//	Field     ::= DataType ID ';'
func (p *Parser) parseStructDef() (*ast.StructDef, error) {
	if _, err := p.expect(token.STRUCT); err != nil {
		return nil, err
	}
	name, err := p.expect(token.ID)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	sd := &ast.StructDef{Name: name}
	for {
		ok, err := p.check(token.RBRACE)
		if err != nil {
			return nil, err
		}
		if ok {
			break
		}
		dt, err := p.parseDataType()
		if err != nil {
			return nil, err
		}
		fname, err := p.expect(token.ID)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.SEMICOLON); err != nil {
			return nil, err
		}
		sd.Fields = append(sd.Fields, &ast.VarDef{Type: dt, Name: fname})
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return sd, nil
}

// parseFunDef implements:
//
//	FunDef ::= (DataType | 'void') ID '(' Params? ')' '{' Stmt* '}'
func (p *Parser) parseFunDef() (*ast.FunDef, error) {
	isVoid, err := p.check(token.VOID_TYPE)
	if err != nil {
		return nil, err
	}
	var retType ast.DataType
	if isVoid {
		tok, err := p.expect(token.VOID_TYPE)
		if err != nil {
			return nil, err
		}
		retType = ast.DataType{TypeName: tok}
	} else {
		retType, err = p.parseDataType()
		if err != nil {
			return nil, err
		}
	}
	name, err := p.expect(token.ID)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var params []*ast.VarDef
	hasParen, err := p.check(token.RPAREN)
	if err != nil {
		return nil, err
	}
	if !hasParen {
		params, err = p.parseParams()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	stmts, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.FunDef{ReturnType: retType, Name: name, Params: params, Stmts: stmts}, nil
}

// parseParams implements:
//
//	Params ::= Param (',' Param)*
//	Param  ::= DataType ID
func (p *Parser) parseParams() ([]*ast.VarDef, error) {
	var params []*ast.VarDef
	for {
		dt, err := p.parseDataType()
		if err != nil {
			return nil, err
		}
		name, err := p.expect(token.ID)
		if err != nil {
			return nil, err
		}
		params = append(params, &ast.VarDef{Type: dt, Name: name})
		more, err := p.match(token.COMMA)
		if err != nil {
			return nil, err
		}
		if !more {
			return params, nil
		}
	}
}

// parseDataType implements:
//
//	DataType ::= BaseType | ID | 'array' (BaseType | ID)
//	BaseType ::= 'int' | 'double' | 'bool' | 'string'
func (p *Parser) parseDataType() (ast.DataType, error) {
	isArray, err := p.match(token.ARRAY)
	if err != nil {
		return ast.DataType{}, err
	}
	tok, err := p.current()
	if err != nil {
		return ast.DataType{}, err
	}
	if baseTypeKinds[tok.Kind] || tok.Kind == token.ID {
		if err := p.advance(); err != nil {
			return ast.DataType{}, err
		}
		return ast.DataType{IsArray: isArray, TypeName: tok}, nil
	}
	return ast.DataType{}, p.fail("expected a type name")
}

// parseBlock implements:
//
//	Block ::= '{' Stmt* '}'
func (p *Parser) parseBlock() ([]ast.Stmt, error) {
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	var stmts []ast.Stmt
	for {
		atEnd, err := p.check(token.RBRACE)
		if err != nil {
			return nil, err
		}
		if atEnd {
			break
		}
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return stmts, nil
}
