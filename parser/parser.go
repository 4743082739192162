/*
File : mypl/parser/parser.go

Package parser implements a hand-written recursive-descent parser for
MyPL with exactly one token of lookahead. Unlike a Pratt/precedence-
climbing parser, binary operators are not ranked against each other:
Expr always parses as `first [op rest]`, so `1 * 2 + 3` parses as
`1 * (2 + 3)` — the grammar is deliberately flat and right-leaning.
Parsing fails fast: the first unexpected token raises a
mplerr.ParserError and parsing stops, it does not collect and continue.
*/
package parser

import (
	"github.com/akashmaji946/mypl/ast"
	"github.com/akashmaji946/mypl/lexer"
	"github.com/akashmaji946/mypl/mplerr"
	"github.com/akashmaji946/mypl/token"
)

// Parser drives recursive descent over a MyPL token stream. The grammar
// itself needs only one token of lookahead (spec.md §4.2), but
// distinguishing a variable declaration with a struct type (`ID ID`)
// from a call or assignment (`ID '(' ...` / `ID '[' ...` / `ID '.' ...`
// / `ID '=' ...`) takes a second token — buf holds whatever lookahead a
// production needs, filled lazily from the lexer. Comment tokens are
// filtered out before the parser ever sees them.
type Parser struct {
	lex *lexer.Lexer
	buf []token.Token
}

// New creates a Parser over the given source text.
func New(src string) *Parser {
	return &Parser{lex: lexer.New(src)}
}

// fill ensures the lookahead buffer holds at least n tokens.
func (p *Parser) fill(n int) error {
	for len(p.buf) < n {
		tok, err := p.lex.NextToken()
		if err != nil {
			return err
		}
		if tok.Kind == token.COMMENT {
			continue
		}
		p.buf = append(p.buf, tok)
	}
	return nil
}

// advance discards the current token, shifting the next one into its
// place.
func (p *Parser) advance() error {
	if err := p.fill(1); err != nil {
		return err
	}
	p.buf = p.buf[1:]
	return nil
}

// current returns the lookahead token.
func (p *Parser) current() (token.Token, error) {
	if err := p.fill(1); err != nil {
		return token.Token{}, err
	}
	return p.buf[0], nil
}

// peekNext returns the token one past current without consuming
// anything.
func (p *Parser) peekNext() (token.Token, error) {
	if err := p.fill(2); err != nil {
		return token.Token{}, err
	}
	return p.buf[1], nil
}

// check reports whether the current token has the given kind.
func (p *Parser) check(kind token.Kind) (bool, error) {
	tok, err := p.current()
	if err != nil {
		return false, err
	}
	return tok.Kind == kind, nil
}

// match consumes the current token if it has the given kind and reports
// whether it did.
func (p *Parser) match(kind token.Kind) (bool, error) {
	ok, err := p.check(kind)
	if err != nil || !ok {
		return false, err
	}
	if err := p.advance(); err != nil {
		return false, err
	}
	return true, nil
}

// expect consumes the current token, requiring it to have the given
// kind, or raises a mplerr.ParserError naming what was expected.
func (p *Parser) expect(kind token.Kind) (token.Token, error) {
	tok, err := p.current()
	if err != nil {
		return token.Token{}, err
	}
	if tok.Kind != kind {
		return token.Token{}, mplerr.NewParserError("expected "+string(kind), tok.Lexeme, tok.Line, tok.Column)
	}
	if err := p.advance(); err != nil {
		return token.Token{}, err
	}
	return tok, nil
}

// fail raises a mplerr.ParserError at the current token with a custom
// message.
func (p *Parser) fail(message string) error {
	tok, err := p.current()
	if err != nil {
		return err
	}
	return mplerr.NewParserError(message, tok.Lexeme, tok.Line, tok.Column)
}

var baseTypeKinds = map[token.Kind]bool{
	token.INT_TYPE:    true,
	token.DOUBLE_TYPE: true,
	token.BOOL_TYPE:   true,
	token.STRING_TYPE: true,
}

// Parse consumes the entire token stream and returns the root Program
// node, or the first mplerr.ParserError / mplerr.LexerError encountered.
func Parse(src string) (*ast.Program, error) {
	p := New(src)
	return p.parseProgram()
}

// parseProgram implements:
//
//	Program ::= (StructDef | FunDef)* EOS
func (p *Parser) parseProgram() (*ast.Program, error) {
	prog := &ast.Program{}
	for {
		tok, err := p.current()
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case token.EOS:
			return prog, nil
		case token.STRUCT:
			sd, err := p.parseStructDef()
			if err != nil {
				return nil, err
			}
			prog.Structs = append(prog.Structs, sd)
		default:
			fd, err := p.parseFunDef()
			if err != nil {
				return nil, err
			}
			prog.Funs = append(prog.Funs, fd)
		}
	}
}
